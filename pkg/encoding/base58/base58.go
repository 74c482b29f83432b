/*
Package base58 converts hex-encoded byte strings to and from the Base58 form
used for Chain33 addresses.

Chain33 stores Base58 digits least significant first, so both directions take
a littleEndian flag that is true for every on-chain value. In little endian
mode the output matches the common Bitcoin-style Base58 string: leading zero
bytes become leading '1' characters followed by the digits of the remaining
value, most significant first. Big endian mode is the same string reversed.
*/
package base58

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
)

// Alphabet is the set of digits used by the codec, index 0 is '1'.
const Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// ErrOddLength is returned for hex input that doesn't describe whole bytes.
var ErrOddLength = errors.New("odd length hex string")

// Encode converts hex string (with or without 0x prefix) into Base58.
func Encode(h string, littleEndian bool) (string, error) {
	h = strings.TrimPrefix(strings.TrimPrefix(h, "0x"), "0X")
	if len(h) == 0 {
		return "", nil
	}
	if len(h)%2 != 0 {
		return "", ErrOddLength
	}
	b, err := hex.DecodeString(h)
	if err != nil {
		return "", fmt.Errorf("invalid hex: %w", err)
	}
	res := base58.Encode(b)
	if !littleEndian {
		res = reverse(res)
	}
	return res, nil
}

// Decode converts Base58 string into lowercase hex without any prefix. Every
// leading '1' (trailing one in big endian mode) yields a "00" byte.
func Decode(s string, littleEndian bool) (string, error) {
	if len(s) == 0 {
		return "", nil
	}
	if !littleEndian {
		s = reverse(s)
	}
	for i, r := range s {
		if !strings.ContainsRune(Alphabet, r) {
			return "", fmt.Errorf("invalid base58 character %q at %d", r, i)
		}
	}
	b, err := base58.Decode(s)
	if err != nil {
		return "", fmt.Errorf("invalid base58 string: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// EncodeLE is Encode in the default little endian mode.
func EncodeLE(h string) (string, error) {
	return Encode(h, true)
}

// DecodeLE is Decode in the default little endian mode.
func DecodeLE(s string) (string, error) {
	return Decode(s, true)
}

func reverse(s string) string {
	r := []byte(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}

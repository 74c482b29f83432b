/*
Package address translates between the 0x-prefixed hex form of an account
(the one EVM contracts see) and the Base58 form used by Chain33 itself.
*/
package address

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/chain33-go/chain33/pkg/encoding/base58"
)

const (
	// Version is the address version byte prepended to account hash.
	Version byte = 0x00
	// HashLen is the length of account hash in bytes.
	HashLen = 20

	checksumLen = 4
)

// ErrChecksum is returned when the Base58 address has wrong checksum.
var ErrChecksum = errors.New("address checksum mismatch")

// FromEVM converts hex address (with or without 0x) into Chain33 address.
func FromEVM(evm string) (string, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(strings.ToLower(evm), "0x"))
	if err != nil {
		return "", fmt.Errorf("invalid hex address: %w", err)
	}
	if len(b) != HashLen {
		return "", fmt.Errorf("invalid address length %d", len(b))
	}
	payload := append([]byte{Version}, b...)
	sum := chainhash.DoubleHashB(payload)
	return base58.EncodeLE(hex.EncodeToString(append(payload, sum[:checksumLen]...)))
}

// ToEVM converts Chain33 address into 0x-prefixed lowercase hex address.
func ToEVM(addr string) (string, error) {
	h, err := base58.DecodeLE(addr)
	if err != nil {
		return "", err
	}
	b, err := hex.DecodeString(h)
	if err != nil {
		return "", err
	}
	if len(b) != 1+HashLen+checksumLen {
		return "", fmt.Errorf("invalid address length %d", len(b))
	}
	if b[0] != Version {
		return "", fmt.Errorf("unexpected address version %d", b[0])
	}
	payload := b[:1+HashLen]
	if sum := chainhash.DoubleHashB(payload); !bytes.Equal(sum[:checksumLen], b[1+HashLen:]) {
		return "", ErrChecksum
	}
	return "0x" + hex.EncodeToString(payload[1:]), nil
}

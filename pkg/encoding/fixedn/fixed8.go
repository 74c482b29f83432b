/*
Package fixedn handles Chain33 asset amounts. Nodes operate with integer
amounts in the smallest units, one coin (or token) is 10^8 of them.
*/
package fixedn

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	precision = 8
	decimals  = 100000000
)

// ErrInvalidFormat is returned for strings that are not decimal numbers.
var ErrInvalidFormat = errors.New("invalid amount format")

// Fixed8 is an amount in the smallest units, it's printed and parsed as a
// decimal number of coins.
type Fixed8 int64

// String implements the Stringer interface.
func (f Fixed8) String() string {
	buf := new(strings.Builder)
	val := int64(f)
	if val < 0 {
		buf.WriteRune('-')
		val = -val
	}
	buf.WriteString(strconv.FormatInt(val/decimals, 10))
	val %= decimals
	if val > 0 {
		buf.WriteRune('.')
		str := strconv.FormatInt(val, 10)
		for i := len(str); i < precision; i++ {
			buf.WriteRune('0')
		}
		buf.WriteString(strings.TrimRight(str, "0"))
	}
	return buf.String()
}

// IntegralValue returns whole coins of f.
func (f Fixed8) IntegralValue() int64 {
	return int64(f) / decimals
}

// FractionalValue returns a fractional part of f in the smallest units. It
// has the same sign as f.
func (f Fixed8) FractionalValue() int32 {
	return int32(int64(f) % decimals)
}

// Fixed8FromInt64 returns amount of val whole coins.
func Fixed8FromInt64(val int64) Fixed8 {
	return Fixed8(decimals * val)
}

// Fixed8FromString parses decimal number of coins with up to 8 fractional
// digits.
func Fixed8FromString(s string) (Fixed8, error) {
	orig := s
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	ip, fp, hasDot := strings.Cut(s, ".")
	if ip == "" || (hasDot && fp == "") || len(fp) > precision {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, orig)
	}
	fp += strings.Repeat("0", precision-len(fp))
	for _, part := range []string{ip, fp} {
		if strings.IndexFunc(part, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, orig)
		}
	}
	whole, err := strconv.ParseInt(ip, 10, 64)
	if err != nil || whole > (1<<63-1)/decimals {
		return 0, fmt.Errorf("%w: %q is out of range", ErrInvalidFormat, orig)
	}
	frac, _ := strconv.ParseInt(fp, 10, 64)
	val := whole*decimals + frac
	if val < 0 {
		return 0, fmt.Errorf("%w: %q is out of range", ErrInvalidFormat, orig)
	}
	if neg {
		val = -val
	}
	return Fixed8(val), nil
}

// UnmarshalJSON implements the json unmarshaller interface. It accepts
// integer amounts in the smallest units both as numbers and strings, the way
// nodes return them.
func (f *Fixed8) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidFormat, data)
	}
	*f = Fixed8(v)
	return nil
}

// MarshalJSON implements the json marshaller interface.
func (f Fixed8) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(int64(f), 10)), nil
}

// UnmarshalYAML implements the yaml unmarshaler interface, YAML values are
// decimal numbers of coins.
func (f *Fixed8) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	err := unmarshal(&s)
	if err != nil {
		return err
	}
	p, err := Fixed8FromString(s)
	if err != nil {
		return err
	}
	*f = p
	return nil
}

// MarshalYAML implements the yaml marshaller interface.
func (f Fixed8) MarshalYAML() (any, error) {
	return f.String(), nil
}

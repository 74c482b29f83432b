package flags

import (
	"flag"
	"strings"

	"github.com/chain33-go/chain33/pkg/encoding/address"
	"github.com/urfave/cli"
)

// Address is a Chain33 account address with flag.Value methods. Both the
// Base58 form and the 0x-prefixed hex (EVM) form are accepted, the value is
// always kept in Base58.
type Address struct {
	IsSet bool
	Value string
}

// AddressFlag is a flag with type Address.
type AddressFlag struct {
	Name  string
	Usage string
	Value Address
}

var (
	_ flag.Value = (*Address)(nil)
	_ cli.Flag   = AddressFlag{}
)

// String implements the fmt.Stringer interface.
func (a Address) String() string {
	return a.Value
}

// Set implements the flag.Value interface.
func (a *Address) Set(s string) error {
	addr, err := ParseAddress(s)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	a.IsSet = true
	a.Value = addr
	return nil
}

// IsSet checks if flag was set to a non-default value.
func (f AddressFlag) IsSet() bool {
	return f.Value.IsSet
}

// String returns a readable representation of this value
// (for usage defaults).
func (f AddressFlag) String() string {
	var names []string
	eachName(f.Name, func(name string) {
		names = append(names, getNameHelp(name))
	})

	return strings.Join(names, ", ") + "\t" + f.Usage
}

// GetName returns the name of the flag.
func (f AddressFlag) GetName() string {
	return f.Name
}

// Apply populates the flag given the flag set and environment.
func (f AddressFlag) Apply(set *flag.FlagSet) {
	eachName(f.Name, func(name string) {
		set.Var(&f.Value, name, f.Usage)
	})
}

// AddressFromContext returns the address given for the flag name.
func AddressFromContext(ctx *cli.Context, name string) Address {
	v, ok := ctx.Generic(name).(*Address)
	if !ok {
		return Address{}
	}
	return *v
}

// ParseAddress parses a Base58 address (checking its checksum) or an EVM
// hex address and returns it in Base58.
func ParseAddress(s string) (string, error) {
	const hexLen = 2 * address.HashLen
	trimmed := strings.TrimPrefix(s, "0x")
	if strings.HasPrefix(s, "0x") || len(trimmed) == hexLen {
		return address.FromEVM(trimmed)
	}
	if _, err := address.ToEVM(s); err != nil {
		return "", err
	}
	return s, nil
}

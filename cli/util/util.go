package util

import (
	"fmt"

	"github.com/chain33-go/chain33/pkg/encoding/address"
	"github.com/chain33-go/chain33/pkg/encoding/base58"
	"github.com/urfave/cli"
)

var bigEndianFlag = cli.BoolFlag{
	Name:  "big-endian, b",
	Usage: "use reversed (big endian) character order",
}

// NewCommands returns offline helper commands for chain33-cli.
func NewCommands() []cli.Command {
	return []cli.Command{
		{
			Name:  "base58",
			Usage: "Base58 encoding helpers",
			Subcommands: []cli.Command{
				{
					Name:      "encode",
					Usage:     "Encode hex string to Base58",
					UsageText: "encode [--big-endian] <hex>",
					Action:    encode,
					Flags:     []cli.Flag{bigEndianFlag},
				},
				{
					Name:      "decode",
					Usage:     "Decode Base58 string to hex",
					UsageText: "decode [--big-endian] <base58>",
					Action:    decode,
					Flags:     []cli.Flag{bigEndianFlag},
				},
			},
		},
		{
			Name:  "address",
			Usage: "Address conversion helpers",
			Subcommands: []cli.Command{
				{
					Name:      "from-evm",
					Usage:     "Convert EVM hex address to chain address",
					UsageText: "from-evm <0x...>",
					Action:    fromEVM,
				},
				{
					Name:      "to-evm",
					Usage:     "Convert chain address to EVM hex address",
					UsageText: "to-evm <address>",
					Action:    toEVM,
				},
			},
		},
	}
}

func singleArg(ctx *cli.Context) (string, error) {
	if ctx.NArg() != 1 {
		return "", cli.NewExitError(fmt.Errorf("exactly one argument is expected, got %d", ctx.NArg()), 1)
	}
	return ctx.Args().First(), nil
}

func run(ctx *cli.Context, f func(string) (string, error)) error {
	arg, err := singleArg(ctx)
	if err != nil {
		return err
	}
	res, err := f(arg)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	fmt.Fprintln(ctx.App.Writer, res)
	return nil
}

func encode(ctx *cli.Context) error {
	return run(ctx, func(s string) (string, error) {
		return base58.Encode(s, !ctx.Bool("big-endian"))
	})
}

func decode(ctx *cli.Context) error {
	return run(ctx, func(s string) (string, error) {
		return base58.Decode(s, !ctx.Bool("big-endian"))
	})
}

func fromEVM(ctx *cli.Context) error {
	return run(ctx, address.FromEVM)
}

func toEVM(ctx *cli.Context) error {
	return run(ctx, address.ToEVM)
}

package transfer

import (
	"fmt"
	"strings"

	"github.com/chain33-go/chain33/cli/flags"
	"github.com/chain33-go/chain33/cli/input"
	"github.com/chain33-go/chain33/cli/options"
	"github.com/urfave/cli"
)

// NewCommands returns 'transfer' command.
func NewCommands() []cli.Command {
	txFlags := append([]cli.Flag{
		flags.AddressFlag{
			Name:  "to",
			Usage: "recipient address (Base58 or 0x-prefixed hex)",
		},
		flags.Fixed8Flag{
			Name:  "amount",
			Usage: "amount to transfer in coins",
		},
		flags.Fixed8Flag{
			Name:  "fee",
			Usage: "transaction fee in coins (ignored on parallel chains)",
		},
		cli.StringFlag{
			Name:  "note",
			Usage: "transaction note",
		},
		cli.StringFlag{
			Name:  "key, k",
			Usage: "sender private key (prompted for if not set)",
		},
	}, options.Chain...)
	return []cli.Command{{
		Name:  "transfer",
		Usage: "Transfer assets",
		Subcommands: []cli.Command{
			{
				Name:      "coins",
				Usage:     "Transfer base coins",
				UsageText: "coins --to <address> --amount <coins> [--fee <coins>] [--note <text>] [--key <key>]",
				Action:    transferCoins,
				Flags:     txFlags,
			},
			{
				Name:      "token",
				Usage:     "Transfer tokens",
				UsageText: "token --symbol <symbol> --to <address> --amount <coins> [--fee <coins>] [--note <text>] [--key <key>]",
				Action:    transferToken,
				Flags: append([]cli.Flag{cli.StringFlag{
					Name:  "symbol",
					Usage: "token symbol",
				}}, txFlags...),
			},
		},
	}}
}

func getKey(ctx *cli.Context) (string, error) {
	if key := ctx.String("key"); key != "" {
		return key, nil
	}
	key, err := input.ReadPassword("Enter private key > ")
	if err != nil {
		return "", fmt.Errorf("error reading private key: %w", err)
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", fmt.Errorf("private key is empty")
	}
	return key, nil
}

func transferCoins(ctx *cli.Context) error {
	return doTransfer(ctx, "")
}

func transferToken(ctx *cli.Context) error {
	symbol := ctx.String("symbol")
	if symbol == "" {
		return cli.NewExitError("token symbol is missing", 1)
	}
	return doTransfer(ctx, symbol)
}

func doTransfer(ctx *cli.Context, symbol string) error {
	to := flags.AddressFromContext(ctx, "to")
	if !to.IsSet {
		return cli.NewExitError("recipient address is missing", 1)
	}
	amount := int64(flags.Fixed8FromContext(ctx, "amount"))
	fee := int64(flags.Fixed8FromContext(ctx, "fee"))
	if amount <= 0 {
		return cli.NewExitError("amount must be positive", 1)
	}
	key, err := getKey(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	gctx, cancel := options.GetTimeoutContext(ctx)
	defer cancel()
	s, log, ec := options.GetSDK(gctx, ctx)
	if ec != nil {
		return ec
	}
	defer func() { _ = log.Sync() }()
	defer s.Close()

	var hash string
	if symbol == "" {
		hash, err = s.Transfer.Coins(to.Value, amount, key, fee, ctx.String("note"))
	} else {
		hash, err = s.Transfer.Token(to.Value, symbol, amount, key, fee, ctx.String("note"))
	}
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	fmt.Fprintln(ctx.App.Writer, hash)
	return nil
}

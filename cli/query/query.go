package query

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/chain33-go/chain33/cli/options"
	"github.com/chain33-go/chain33/pkg/rpcclient/balance"
	"github.com/urfave/cli"
)

// NewCommands returns 'query' command.
func NewCommands() []cli.Command {
	return []cli.Command{{
		Name:  "query",
		Usage: "Query node state",
		Subcommands: []cli.Command{
			{
				Name:      "balance",
				Usage:     "Show coin (or token) balances of addresses",
				UsageText: "balance [--token <symbol>] <address> [<address>...]",
				Action:    queryBalance,
				Flags: append([]cli.Flag{
					cli.StringFlag{
						Name:  "token, t",
						Usage: "token symbol, base coins are shown if not set",
					},
				}, options.Chain...),
			},
			{
				Name:      "tx",
				Usage:     "Show transaction by hash",
				UsageText: "tx <hash>",
				Action:    queryTx,
				Flags:     options.Chain,
			},
			{
				Name:   "version",
				Usage:  "Show node version",
				Action: queryVersion,
				Flags:  options.Chain,
			},
		},
	}}
}

func queryBalance(ctx *cli.Context) error {
	addrs := ctx.Args()
	if len(addrs) == 0 {
		return cli.NewExitError("address is missing", 1)
	}
	gctx, cancel := options.GetTimeoutContext(ctx)
	defer cancel()
	s, log, ec := options.GetSDK(gctx, ctx)
	if ec != nil {
		return ec
	}
	defer func() { _ = log.Sync() }()
	defer s.Close()

	var (
		accs []balance.Account
		err  error
	)
	if symbol := ctx.String("token"); symbol != "" {
		accs, err = s.Balance.Token(symbol, addrs...)
	} else {
		accs, err = s.Balance.Coins(addrs...)
	}
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	tw := tabwriter.NewWriter(ctx.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Address\tBalance\tFrozen")
	for _, a := range accs {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", a.Addr, a.Balance, a.Frozen)
	}
	return tw.Flush()
}

func queryTx(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.NewExitError("transaction hash is missing", 1)
	}
	gctx, cancel := options.GetTimeoutContext(ctx)
	defer cancel()
	s, log, ec := options.GetSDK(gctx, ctx)
	if ec != nil {
		return ec
	}
	defer func() { _ = log.Sync() }()
	defer s.Close()

	tx, err := s.Transfer.Query(ctx.Args().First())
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	return dumpJSON(ctx.App.Writer, tx)
}

func queryVersion(ctx *cli.Context) error {
	gctx, cancel := options.GetTimeoutContext(ctx)
	defer cancel()
	s, log, ec := options.GetSDK(gctx, ctx)
	if ec != nil {
		return ec
	}
	defer func() { _ = log.Sync() }()
	defer s.Close()

	v, err := s.Chain.Version()
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	tw := tabwriter.NewWriter(ctx.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Title:\t%s\n", v.Title)
	fmt.Fprintf(tw, "App:\t%s\n", v.App)
	fmt.Fprintf(tw, "Chain33:\t%s\n", v.Chain33)
	fmt.Fprintf(tw, "LocalDb:\t%s\n", v.LocalDb)
	fmt.Fprintf(tw, "ChainID:\t%d\n", v.ChainID)
	return tw.Flush()
}

func dumpJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

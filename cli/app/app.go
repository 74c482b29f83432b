package app

import (
	"fmt"
	"os"
	"runtime"

	"github.com/chain33-go/chain33/cli/query"
	"github.com/chain33-go/chain33/cli/transfer"
	"github.com/chain33-go/chain33/cli/util"
	"github.com/chain33-go/chain33/pkg/config"
	"github.com/urfave/cli"
)

func versionPrinter(c *cli.Context) {
	_, _ = fmt.Fprintf(c.App.Writer, "chain33-cli\nVersion: %s\nGoVersion: %s\n",
		config.Version,
		runtime.Version(),
	)
}

// New creates a chain33-cli instance of [cli.App] with all commands included.
func New() *cli.App {
	cli.VersionPrinter = versionPrinter
	ctl := cli.NewApp()
	ctl.Name = "chain33-cli"
	ctl.Version = config.Version
	ctl.Usage = "Go client for Chain33 nodes"
	ctl.ErrWriter = os.Stdout

	ctl.Commands = append(ctl.Commands, util.NewCommands()...)
	ctl.Commands = append(ctl.Commands, query.NewCommands()...)
	ctl.Commands = append(ctl.Commands, transfer.NewCommands()...)
	return ctl
}

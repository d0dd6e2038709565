// Command ledgerctl manages the expense ledger from the terminal, reading and
// writing the same store the web server uses.
package main

import (
	"context"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"expensetracker/internal/cli"
	"expensetracker/internal/config"
	"expensetracker/internal/ledger"
	"expensetracker/internal/log"
)

// runContext is handed to every command's Run method.
type runContext struct {
	ctx      context.Context
	ledger   *ledger.Ledger
	out      io.Writer
	currency string
}

var commands struct {
	LogLevel string `help:"Log level (debug, info, warn, error)." default:"warn" env:"LEDGERCTL_LOG_LEVEL"`

	Add        addCmd        `cmd:"" help:"Add an expense."`
	List       listCmd       `cmd:"" help:"List expenses, newest first."`
	Delete     deleteCmd     `cmd:"" help:"Delete an expense by id."`
	Summary    summaryCmd    `cmd:"" help:"Show the total and per-category totals."`
	Categories categoriesCmd `cmd:"" help:"List the selectable categories."`
	Reset      resetCmd      `cmd:"" help:"Remove every expense."`
	Export     exportCmd     `cmd:"" help:"Write the persisted JSON ledger."`
}

func main() {
	kctx := kong.Parse(&commands,
		kong.Name("ledgerctl"),
		kong.Description("Manage the expense ledger."),
		kong.UsageOnError(),
	)

	cfg, err := cli.LoadConfig()
	kctx.FatalIfErrorf(err)

	logCfg := *cfg
	logCfg.LogLevel = commands.LogLevel
	logger := cli.SetupLogger(&logCfg, os.Stderr).WithComponent(log.ComponentCLI)

	ctx := context.Background()
	l, cleanup, err := cli.OpenLedger(ctx, cfg, logger)
	kctx.FatalIfErrorf(err)

	err = kctx.Run(newRunContext(ctx, l, os.Stdout, cfg))
	if cerr := cleanup(); cerr != nil {
		logger.Warn("Backend cleanup error", log.FieldError, cerr)
	}
	kctx.FatalIfErrorf(err)
}

func newRunContext(ctx context.Context, l *ledger.Ledger, out io.Writer, cfg *config.Config) *runContext {
	return &runContext{ctx: ctx, ledger: l, out: out, currency: cfg.CurrencySymbol}
}

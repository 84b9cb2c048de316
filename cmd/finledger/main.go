// finledger tracks personal income and expenses in a local ledger.
//
// Without a subcommand it starts the interactive menu; subcommands run
// one operation and exit.
package main

import (
	"github.com/alecthomas/kong"

	"finledger/internal/cli"
	"finledger/internal/export"
	"finledger/internal/log"
	"finledger/internal/services"
)

var cmds struct {
	Menu    menuCmd    `cmd:"" default:"1" help:"Interactive menu (default)."`
	Balance balanceCmd `cmd:"" help:"Print the current balance."`
	Report  reportCmd  `cmd:"" help:"Print the report for one month."`
	Trend   trendCmd   `cmd:"" help:"Print the 12-month trend for a year."`
	Alerts  alertsCmd  `cmd:"" help:"Check budgets against a month's spending."`
	Export  exportCmd  `cmd:"" help:"Export the ledger to a file."`
	Backup  backupCmd  `cmd:"" help:"Write a timestamped backup of the ledger."`
	Restore restoreCmd `cmd:"" help:"Replace the ledger with a JSON export."`
}

// appContext holds what every command needs.
type appContext struct {
	svc       *services.FinanceService
	exporter  *export.Exporter
	backupDir string
	logger    *log.Logger
}

func main() {
	kctx := kong.Parse(&cmds,
		kong.Name("finledger"),
		kong.Description("Personal finance ledger with budgets and reports."))

	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig(cli.SetupLogger("info"))
	logger := cli.SetupLogger(cfg.LogLevel)

	repo := cli.OpenBackend(logger, cfg)
	defer repo.Close()

	app := &appContext{
		svc:       services.NewFinanceService(repo, logger),
		exporter:  export.NewExporter(repo, logger),
		backupDir: cfg.BackupDir,
		logger:    logger,
	}

	kctx.FatalIfErrorf(kctx.Run(app))
}

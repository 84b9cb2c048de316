package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"finledger/internal/ui"
)

type menuCmd struct{}

func (c *menuCmd) Run(app *appContext) error {
	console := ui.NewConsole(app.svc, app.exporter, app.backupDir, os.Stdin, os.Stdout)
	return console.Run(context.Background())
}

type balanceCmd struct{}

func (c *balanceCmd) Run(app *appContext) error {
	balance, err := app.svc.CurrentBalance(context.Background())
	if err != nil {
		return err
	}
	ui.RenderBalance(os.Stdout, balance)
	return nil
}

type reportCmd struct {
	Year  int `help:"Year to report on." default:"0"`
	Month int `help:"Month to report on (1-12)." default:"0"`
}

func (c *reportCmd) Run(app *appContext) error {
	year, month := defaultYearMonth(c.Year, c.Month)
	rep, err := app.svc.MonthlyReport(context.Background(), year, month)
	if err != nil {
		return err
	}
	ui.RenderMonthlyReport(os.Stdout, rep)
	return nil
}

type trendCmd struct {
	Year int `help:"Year to chart." default:"0"`
}

func (c *trendCmd) Run(app *appContext) error {
	year := c.Year
	if year == 0 {
		year = time.Now().Year()
	}
	trend, err := app.svc.YearlyTrend(context.Background(), year)
	if err != nil {
		return err
	}
	ui.RenderTrend(os.Stdout, trend)
	return nil
}

type alertsCmd struct {
	Year  int `help:"Year to check." default:"0"`
	Month int `help:"Month to check (1-12)." default:"0"`
}

func (c *alertsCmd) Run(app *appContext) error {
	year, month := defaultYearMonth(c.Year, c.Month)
	alerts, err := app.svc.BudgetAlerts(context.Background(), year, month)
	if err != nil {
		return err
	}
	ui.RenderAlerts(os.Stdout, alerts)
	return nil
}

type exportCmd struct {
	Format string `help:"Export format." enum:"json,table" default:"json"`
	Out    string `arg:"" help:"Destination file."`
}

func (c *exportCmd) Run(app *appContext) error {
	ctx := context.Background()
	switch c.Format {
	case "table":
		return app.exporter.Table(ctx, c.Out)
	default:
		return app.exporter.JSON(ctx, c.Out)
	}
}

type backupCmd struct{}

func (c *backupCmd) Run(app *appContext) error {
	target, err := app.exporter.BackupTo(context.Background(), app.backupDir)
	if err != nil {
		return err
	}
	fmt.Println("Backup written to", target)
	return nil
}

type restoreCmd struct {
	File string `arg:"" help:"JSON export to restore from."`
}

func (c *restoreCmd) Run(app *appContext) error {
	return app.exporter.Restore(context.Background(), c.File)
}

// defaultYearMonth fills missing flags with the current month.
func defaultYearMonth(year, month int) (int, int) {
	now := time.Now()
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	return year, month
}

package main

import (
	"fmt"
	"text/tabwriter"

	"teampulse/internal/config"
	"teampulse/internal/core/domain"
	"teampulse/internal/core/services"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := openDataSource(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer closeDataSource(ds)

		if !ds.Persistent() {
			logger.Warn("memory data source has no schema to migrate")
		}
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the admin agent and the starter mission catalog",
	Long: `Creates the admin from ADMIN_EMAIL and ADMIN_PASSWORD and loads the starter
missions into an empty catalog. Existing data is left untouched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := openDataSource(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer closeDataSource(ds)

		return config.NewSeeder(ds.Agents, ds.Missions, cfg.Admin, logger.Named("seed")).Run(cmd.Context())
	},
}

var closeMonthCmd = &cobra.Command{
	Use:   "close-month [YYYY-MM]",
	Short: "Close a month and freeze its ranking",
	Long: `Ranks every active agent for the month and writes the archive.
Without an argument the month before the current one is closed, which is
what the scheduler does. A closed month cannot be closed again.`,
	Example: `  teampulse close-month
  teampulse close-month 2026-01`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCloseMonth,
}

func runCloseMonth(cmd *cobra.Command, args []string) error {
	var month *domain.MonthTag
	if len(args) == 1 {
		m, err := domain.ParseMonthTag(args[0])
		if err != nil {
			return err
		}
		month = &m
	}

	ctx := cmd.Context()
	ds, err := openDataSource(ctx, false)
	if err != nil {
		return err
	}
	defer closeDataSource(ds)

	svc := services.New(ds, cfg, newPublisher(), nil, domain.SystemMonthClock(cfg.Location()), logger)
	defer closeNotifications(svc)

	var detail *services.ArchiveDetail
	if month != nil {
		detail, err = svc.Archives.CloseMonth(ctx, *month, "")
	} else {
		detail, err = svc.Archives.ClosePreviousMonth(ctx)
	}
	if err != nil {
		return err
	}
	if detail == nil {
		logger.Info("nothing to close", zap.String("month", svc.Actions.CurrentMonth().Previous().String()))
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Closed %s\n", detail.Archive.MonthTag)
	fmt.Fprintln(w, "RANK\tAGENT\tPOINTS\tBONUS")
	for _, r := range detail.Rows {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\n", r.Rank, r.FullName, r.PointsTotal, r.BonusAmount)
	}
	return w.Flush()
}

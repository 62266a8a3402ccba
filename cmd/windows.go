package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/planwise/planwise/core/schedule"
	"github.com/planwise/planwise/infra/logger"
)

var minUsers int

var windowsCmd = &cobra.Command{
	Use:   "windows",
	Short: "List shared free-time windows for a scope",
	RunE:  windows,
}

func init() {
	windowsCmd.Flags().IntVar(&minUsers, "min-users", 2, "minimum simultaneous participants")
	rootCmd.AddCommand(windowsCmd)
}

func windows(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := newService(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("windows-command").Errorf("service close: %v", err)
		}
	}()

	opts := svc.Options()
	out, err := svc.CommonWindowsForScope(ctx, scopeName, schedule.CommonWindowQuery{
		MinRequiredUsers:   minUsers,
		MinDurationMinutes: opts.MinDurationMinutes,
		StartDate:          opts.StartDate,
		EndDate:            opts.EndDate,
	})
	if err != nil {
		return fmt.Errorf("common windows: %w", err)
	}
	return printJSON(out)
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/planwise/planwise/infra/logger"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Report availability patterns for a scope",
	RunE:  analyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func analyze(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := newService(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("analyze-command").Errorf("service close: %v", err)
		}
	}()

	report, err := svc.AnalyzeScope(ctx, scopeName, svc.Options())
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}
	return printJSON(report)
}

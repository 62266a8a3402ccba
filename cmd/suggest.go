package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/planwise/planwise/infra/logger"
	"github.com/planwise/planwise/pkg/export"
)

var suggestFormat string

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Rank meeting-time candidates for a scope",
	RunE:  suggest,
}

func init() {
	suggestCmd.Flags().StringVar(&suggestFormat, "format", "json", "output format (json or csv)")
	rootCmd.AddCommand(suggestCmd)
}

func suggest(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := newService(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("suggest-command").Errorf("service close: %v", err)
		}
	}()

	ranked, err := svc.SuggestForScope(ctx, scopeName, svc.Options())
	if err != nil {
		return fmt.Errorf("suggest: %w", err)
	}
	switch suggestFormat {
	case "csv":
		return export.WriteCSV(os.Stdout, ranked)
	case "json":
		return export.WriteJSON(os.Stdout, ranked)
	default:
		return fmt.Errorf("unknown output format %q", suggestFormat)
	}
}

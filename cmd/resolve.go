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

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Check suggested slots against committed events and propose alternatives",
	RunE:  resolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

func resolve(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := newService(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("resolve-command").Errorf("service close: %v", err)
		}
	}()

	opts := svc.Options()
	proposed, err := svc.SuggestForScope(ctx, scopeName, opts)
	if err != nil {
		return fmt.Errorf("suggest: %w", err)
	}
	resolutions, err := svc.ResolveForScope(ctx, scopeName, proposed, opts)
	if err != nil {
		return fmt.Errorf("resolve: %w", err)
	}
	return printJSON(resolutions)
}

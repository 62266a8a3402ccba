package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/planwise/planwise/app"
	"github.com/planwise/planwise/config"
	"github.com/planwise/planwise/infra/logger"
)

var (
	cfgPath     string
	fixturePath string
	scopeName   string
)

var rootCmd = &cobra.Command{
	Use:   "planwise",
	Short: "Availability-driven meeting time optimizer",
	RunE:  run,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
	rootCmd.PersistentFlags().StringVarP(&fixturePath, "fixture", "f", "", "availability fixture file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVarP(&scopeName, "scope", "s", "default", "availability scope")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := newService(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()
	return svc.Run(ctx)
}

// newService builds the service from the config file and seeds it with the
// fixture when one is given.
func newService(ctx context.Context) (*app.Service, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return nil, err
	}
	if fixturePath != "" {
		if err := seedFixture(ctx, svc.Store(), fixturePath); err != nil {
			_ = svc.Close()
			return nil, fmt.Errorf("seed fixture: %w", err)
		}
	}
	return svc, nil
}

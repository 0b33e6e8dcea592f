package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/vocidicassinoprotonme-hash/turni-lavoro-pwa/pkg/app"
	"github.com/vocidicassinoprotonme-hash/turni-lavoro-pwa/pkg/config"
	"github.com/vocidicassinoprotonme-hash/turni-lavoro-pwa/pkg/logging"
	"github.com/vocidicassinoprotonme-hash/turni-lavoro-pwa/pkg/scheduler"
	"go.uber.org/zap"
)

// cli carries the state shared by all subcommands
type cli struct {
	verbose    bool
	configPath string

	app *app.App
}

func main() {
	config.LoadDotEnv()
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "turni",
		Short:         "Manage the shift calendar and estimate monthly pay",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			level := cfg.LogLevel
			if c.verbose {
				level = "debug"
			}
			logger, err := logging.New(level)
			if err != nil {
				return err
			}
			c.app, err = app.Open(cfg, logger)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.app != nil {
				_ = c.app.Log.Sync()
			}
		},
	}
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "debug logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "YAML config file (default $TURNI_CONFIG)")

	root.AddCommand(
		c.typesCmd(),
		c.rotateCmd(),
		c.setCmd(),
		c.clearCmd(),
		c.assignCmd(),
		c.noteCmd(),
		c.statsCmd(),
		c.payCmd(),
		c.exportCmd(),
		c.importCmd(),
		c.reportCmd(),
		c.passwdCmd(),
	)
	return root
}

// update loads the state, applies fn and saves it. Nothing is saved if fn fails.
func (c *cli) update(fn func(*scheduler.Scheduler) error) error {
	s, err := c.app.Repo.Load()
	if err != nil {
		return err
	}
	if err := fn(s); err != nil {
		return err
	}
	if err := c.app.Repo.Save(s); err != nil {
		return err
	}
	c.app.Log.Debug("State saved", zap.Int("shifts", len(s.Shifts())))
	return nil
}

func parseMonth(s string) (int, time.Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return 0, 0, fmt.Errorf("month %q must be YYYY-MM", s)
	}
	return t.Year(), t.Month(), nil
}

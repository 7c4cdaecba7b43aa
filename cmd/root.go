// Package cmd holds the command line of the dock shell.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/cansyan/dock/internal/config"
)

// options is shared by every subcommand. It is filled in by the root
// command's PersistentPreRunE.
type options struct {
	cfgFile string
	v       *viper.Viper
	cfg     *config.Config
}

// NewRootCmd builds the command tree with a fresh viper instance.
func NewRootCmd() *cobra.Command {
	o := &options{v: viper.New()}
	root := &cobra.Command{
		Use:           "dock",
		Short:         "A terminal shell of dockable panels.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.initConfig()
		},
	}
	root.PersistentFlags().StringVarP(&o.cfgFile, "config", "c", "", "config file (default is ./dock.yaml)")
	root.AddCommand(newRunCmd(o), newGeometryCmd(o))
	return root
}

// initConfig reads in the config file and ENV variables if set.
func (o *options) initConfig() error {
	config.SetDefaults(o.v)
	config.BindEnv(o.v)
	if o.cfgFile != "" {
		o.v.SetConfigFile(o.cfgFile)
	} else {
		o.v.AddConfigPath(".")
		o.v.SetConfigName("dock")
		o.v.SetConfigType("yaml")
	}
	if err := o.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; proceed with defaults/env vars
	}
	cfg, err := config.Load(o.v)
	if err != nil {
		return err
	}
	o.cfg = cfg
	return nil
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		zap.L().Error("command failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

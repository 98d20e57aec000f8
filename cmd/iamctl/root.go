package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/iota-uz/iam-console/pkg/configuration"
)

type globalOptions struct {
	APIURL  string
	Timeout time.Duration
	Debug   bool
}

// apiURL falls back to IAM_API_URL from the environment files.
func (o *globalOptions) apiURL() string {
	if o.APIURL != "" {
		return o.APIURL
	}
	return configuration.Use().APIURL
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	cmd := &cobra.Command{
		Use:           "iamctl",
		Short:         "Inspect and maintain the IAM console",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.APIURL, "api-url", "", "console base URL (default $IAM_API_URL)")
	cmd.PersistentFlags().DurationVar(&opts.Timeout, "timeout", 30*time.Second, "request timeout")
	cmd.PersistentFlags().BoolVar(&opts.Debug, "debug", false, "log HTTP traffic")

	cmd.AddCommand(newListCmd(opts))
	cmd.AddCommand(newMigrateCmd())
	cmd.AddCommand(newSeedCmd())
	return cmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

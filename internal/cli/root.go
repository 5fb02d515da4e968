package cli

import (
	"github.com/spf13/cobra"

	"callcenter/internal/config"
)

// Version is set at build time with -ldflags "-X callcenter/internal/cli.Version=...".
var Version = "dev"

type RootOptions struct {
	ConfigPath string
}

func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "callcenter",
		Short: "Call center CRM backend",
		Long:  "Serves the retailer outreach API: tasks, call logging, retailer directory and supervisor reports.",
	}
	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", config.DefaultPath, "path to the YAML config")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewVersionCommand())
	return cmd
}

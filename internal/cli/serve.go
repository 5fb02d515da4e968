package cli

import (
	"github.com/spf13/cobra"

	"callcenter/internal/app"
	"callcenter/internal/config"
)

func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:          "serve",
		Short:        "Run the HTTP API",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(rootOpts.ConfigPath)
			if err != nil {
				return err
			}
			if port != 0 {
				cfg.Server.Port = port
			}
			return app.Run(cfg)
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "override server.port")
	return cmd
}

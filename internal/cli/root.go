package cli

import (
	"github.com/spf13/cobra"

	"catalogadmin.cl/app/internal/config"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Catalog admin maintenance commands",
		Long:          "catalogctl seeds products, uploads product images and inspects the configured sections.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newSectionsCmd())
	cmd.AddCommand(newSeedCmd())
	cmd.AddCommand(newUploadCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}

func defaults() config.Config { return config.Load() }

// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "authgate",
	Short: "authgate is an identity and session gateway",
	Long: `authgate is an identity and session gateway providing local password
authentication, OAuth2/OIDC federation against configurable providers and
JWT session issuance for downstream services.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

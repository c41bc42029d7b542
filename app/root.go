// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "authgate",
	Short: "authgate is an OpenID Connect authentication gateway",
	Long: `authgate is an OpenID Connect authentication gateway that fronts a
backend application. It runs the OAuth2 Authorization Code flow against a
configured provider, verifies issued identity tokens against the provider's
key set and gates protected routes on a server-side session.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

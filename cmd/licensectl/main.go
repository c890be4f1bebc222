// licensectl runs the driving-license testing records API and the operator
// tasks around it: schema migration, catalog seeding and account creation.
package main

import (
	"os"

	"github.com/spf13/cobra"

	_ "github.com/smartlicense/license-api/docs"
)

var version = "dev" // set by the linker

// @title           Driving License Testing API
// @version         1.0
// @description     Accounts, profiles, stations and driving test bookings for a licensing authority.
// @BasePath        /
// @securityDefinitions.basic BasicAuth
func main() {
	if err := rootCmd.Execute(); err != nil {
		// cobra already printed the error.
		os.Exit(1)
	}
}

var rootCmd *cobra.Command

func init() {
	rootCmd = newRootCmd()
}

// newRootCmd builds the command tree. Tests call it to get a fresh instance.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "licensectl",
		Short: "Driving-license testing records service and operator tools.",
		Long: `licensectl serves the driving-license testing records API.

Configuration comes from environment variables (STORE_DRIVER, MONGO_URI,
DATABASE_URL, REDIS_ADDR, ...). Running without a subcommand starts the server.`,
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	cmd.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newSeedCmd(),
		newCreateUserCmd(),
	)
	return cmd
}

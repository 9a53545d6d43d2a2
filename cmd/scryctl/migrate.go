package main

import (
	"database/sql"

	"github.com/spf13/cobra"

	"github.com/phrazzld/scry-cardgen/internal/platform/postgres"
)

func newMigrateCmd(env *cliEnv) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status|version]",
		Short:     "Run database schema migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{postgres.MigrateUp, postgres.MigrateDown, postgres.MigrateStatus, postgres.MigrateVersion},
		RunE: func(cmd *cobra.Command, args []string) error {
			return env.withDB(cmd.Context(), func(db *sql.DB) error {
				return postgres.Migrate(cmd.Context(), db, args[0], env.log)
			})
		},
	}
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := a.runtime(cmd.Context())
			if err != nil {
				return err
			}

			applied, err := rt.Migrate(cmd.Context())
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			p, err := a.printer(cmd.OutOrStdout())
			if err != nil {
				return err
			}

			rows := make([]row, 0, len(applied))
			for _, name := range applied {
				rows = append(rows, row{label: "applied", value: name})
			}
			if len(applied) == 0 {
				rows = append(rows, row{label: "status", value: "up to date"})
			}
			return p.print(map[string]interface{}{"applied": applied}, rows)
		},
	}
}

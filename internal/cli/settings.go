package cli

import (
	"github.com/spf13/cobra"

	"github.com/Pesokrava/ratingfy/internal/domain"
)

func (a *app) settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Display settings commands",
	}

	cmd.AddCommand(a.settingsShowCmd(), a.settingsSetCmd())
	return cmd
}

func (a *app) settingsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <shop>",
		Short: "Show the display settings of a shop",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := a.runtime(cmd.Context())
			if err != nil {
				return err
			}

			settings, err := rt.Accounts.Settings(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printSettings(cmd, settings)
		},
	}
}

func (a *app) settingsSetCmd() *cobra.Command {
	var serialKey string
	var update domain.Settings

	cmd := &cobra.Command{
		Use:   "set <shop>",
		Short: "Change display settings; omitted flags keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := a.runtime(cmd.Context())
			if err != nil {
				return err
			}

			saved, err := rt.Accounts.UpdateSettings(cmd.Context(), args[0], serialKey, update)
			if err != nil {
				return err
			}
			return a.printSettings(cmd, saved)
		},
	}

	cmd.Flags().StringVar(&serialKey, "serialkey", "", "account serial key")
	cmd.Flags().StringVar(&update.Status, "status", "", "enabled or disabled")
	cmd.Flags().StringVar(&update.DisplayStyle, "display-style", "", "storefront widget style")
	cmd.Flags().StringVar(&update.ReviewLimit, "review-limit", "", "maximum reviews shown per product")
	cmd.Flags().StringVar(&update.ReviewDisplayHeading, "display-heading", "", "heading above the review list")
	cmd.Flags().StringVar(&update.ReviewFormHeading, "form-heading", "", "heading above the submission form")
	_ = cmd.MarkFlagRequired("serialkey")

	return cmd
}

func (a *app) printSettings(cmd *cobra.Command, s domain.Settings) error {
	p, err := a.printer(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return p.print(s, []row{
		{label: "status", value: s.Status},
		{label: "displayStyle", value: s.DisplayStyle},
		{label: "reviewLimit", value: s.ReviewLimit},
		{label: "reviewDisplayHeading", value: s.ReviewDisplayHeading},
		{label: "reviewFormHeading", value: s.ReviewFormHeading},
	})
}

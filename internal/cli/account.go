package cli

import (
	"github.com/spf13/cobra"

	"github.com/Pesokrava/ratingfy/internal/domain"
	"github.com/Pesokrava/ratingfy/internal/usecase/account"
)

func (a *app) accountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Tenant account commands",
	}

	cmd.AddCommand(
		a.accountShowCmd(),
		a.accountCreateCmd(),
		a.accountDeleteCmd(),
	)
	return cmd
}

func (a *app) accountShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <shop>",
		Short: "Show the account of a shop",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := a.runtime(cmd.Context())
			if err != nil {
				return err
			}

			acc, err := rt.Accounts.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printAccount(cmd, acc)
		},
	}
}

func (a *app) accountCreateCmd() *cobra.Command {
	var username, email string

	cmd := &cobra.Command{
		Use:   "create <shop>",
		Short: "Register a shop with default settings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := a.runtime(cmd.Context())
			if err != nil {
				return err
			}

			acc, created, err := rt.Accounts.Create(cmd.Context(), account.CreateInput{
				Shop:     args[0],
				Username: username,
				Email:    email,
			})
			if err != nil {
				return err
			}
			if !created {
				cmd.PrintErrln("shop is already registered")
			}
			return a.printAccount(cmd, acc)
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "contact name")
	cmd.Flags().StringVar(&email, "email", "", "contact email")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func (a *app) accountDeleteCmd() *cobra.Command {
	var serialKey string

	cmd := &cobra.Command{
		Use:   "delete <shop>",
		Short: "Delete an account with all its settings and reviews",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := a.runtime(cmd.Context())
			if err != nil {
				return err
			}

			if err := rt.Accounts.Delete(cmd.Context(), args[0], serialKey); err != nil {
				return err
			}

			p, err := a.printer(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			shop := domain.NormalizeShop(args[0])
			return p.print(
				map[string]interface{}{"deleted": shop},
				[]row{{label: "deleted", value: shop}},
			)
		},
	}

	cmd.Flags().StringVar(&serialKey, "serialkey", "", "account serial key")
	_ = cmd.MarkFlagRequired("serialkey")

	return cmd
}

func (a *app) printAccount(cmd *cobra.Command, acc *domain.Account) error {
	p, err := a.printer(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return p.print(acc, []row{
		{label: "shop", value: acc.Shop},
		{label: "serialkey", value: acc.SerialKey},
		{label: "username", value: acc.Username},
		{label: "email", value: acc.Email},
		{label: "plan", value: acc.Plan},
		{label: "created", value: acc.CreatedAt.Format("2006-01-02 15:04:05")},
	})
}

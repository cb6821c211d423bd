// Package cli implements ratingctl, the operator command line for schema
// migrations and tenant maintenance.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Pesokrava/ratingfy/internal/domain"
	"github.com/Pesokrava/ratingfy/internal/usecase/account"
)

// AccountService is the part of the account use case the CLI drives
type AccountService interface {
	Get(ctx context.Context, shop string) (*domain.Account, error)
	Create(ctx context.Context, in account.CreateInput) (*domain.Account, bool, error)
	Delete(ctx context.Context, shop, serialKey string) error
	Settings(ctx context.Context, shop string) (domain.Settings, error)
	UpdateSettings(ctx context.Context, shop, serialKey string, update domain.Settings) (domain.Settings, error)
}

// Runtime holds the backends a command runs against
type Runtime struct {
	Accounts AccountService
	Migrate  func(ctx context.Context) ([]string, error)
	Close    func()
}

// Opener builds the runtime once flags are parsed
type Opener func(ctx context.Context) (*Runtime, error)

type app struct {
	open   Opener
	format string
	rt     *Runtime
}

// NewRootCmd assembles the command tree. Backends are opened lazily so
// --help works without a database.
func NewRootCmd(open Opener) *cobra.Command {
	a := &app{open: open}

	root := &cobra.Command{
		Use:           "ratingctl",
		Short:         "Ratingfy operator CLI",
		Long:          "Run database migrations and inspect or repair tenant accounts and their display settings.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.rt != nil && a.rt.Close != nil {
				a.rt.Close()
			}
		},
	}

	root.PersistentFlags().StringVarP(&a.format, "output", "o", "text", "output format (text, json)")

	root.AddCommand(
		a.migrateCmd(),
		a.accountCmd(),
		a.settingsCmd(),
	)

	return root
}

// runtime opens the backends on first use
func (a *app) runtime(ctx context.Context) (*Runtime, error) {
	if a.rt != nil {
		return a.rt, nil
	}
	rt, err := a.open(ctx)
	if err != nil {
		return nil, err
	}
	a.rt = rt
	return rt, nil
}

func (a *app) printer(w io.Writer) (*printer, error) {
	switch a.format {
	case formatText, formatJSON:
		return &printer{format: a.format, w: w}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", a.format)
	}
}

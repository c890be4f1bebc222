package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/smartlicense/license-api/internal/core/domain"
	"github.com/smartlicense/license-api/internal/core/ports"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply schema migrations",
		Long:  `Creates the PostgreSQL tables or MongoDB indexes for the configured store driver, then seeds the security question catalog.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer a.close(context.Background())
			return a.migrate(cmd.Context())
		},
	}
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the default security questions and stations",
		Long:  `Inserts every default security question and testing station that is missing. Existing rows are matched by text or name and left untouched.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, false)
			if err != nil {
				return err
			}
			defer a.close(context.Background())

			if err := a.migrate(ctx); err != nil {
				return err
			}
			n, err := a.stations.SeedStations(ctx)
			if err != nil {
				return fmt.Errorf("seed stations: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d station(s) inserted\n", n)
			return nil
		},
	}
}

type createUserFlags struct {
	username string
	email    string
	role     string
	password string
}

func newCreateUserCmd() *cobra.Command {
	var f createUserFlags

	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create an account",
		Long: `Creates an account with the given role. When --password is omitted the
password is read from the terminal without echo.`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return f.validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := resolvePassword(f.password, cmd.ErrOrStderr(), readTerminalPassword)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			a, err := newApp(ctx, false)
			if err != nil {
				return err
			}
			defer a.close(context.Background())

			if err := a.migrate(ctx); err != nil {
				return err
			}
			u, err := a.identity.CreateUser(ctx, ports.CreateUserInput{
				Username: f.username,
				Password: password,
				Email:    f.email,
				Role:     f.role,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created user %d (%s, %s)\n", u.ID, u.Username, u.Role)
			return nil
		},
	}

	cmd.Flags().StringVarP(&f.username, "username", "u", "", "account username (required)")
	cmd.Flags().StringVarP(&f.email, "email", "e", "", "account email (required)")
	cmd.Flags().StringVarP(&f.role, "role", "r", domain.RoleAdmin, "one of: "+strings.Join(domain.Roles, ", "))
	cmd.Flags().StringVarP(&f.password, "password", "p", "", "account password; prompted when empty")
	return cmd
}

func (f createUserFlags) validate() error {
	switch {
	case strings.TrimSpace(f.username) == "":
		return errors.New("--username is required")
	case strings.TrimSpace(f.email) == "":
		return errors.New("--email is required")
	case !domain.ValidRole(f.role):
		return fmt.Errorf("--role must be one of: %s", strings.Join(domain.Roles, ", "))
	}
	return nil
}

// resolvePassword returns flagValue when set, otherwise prompts on out and
// reads a password with read.
func resolvePassword(flagValue string, out io.Writer, read func() ([]byte, error)) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	fmt.Fprint(out, "Password: ")
	b, err := read()
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	if len(b) == 0 {
		return "", errors.New("password must not be empty")
	}
	return string(b), nil
}

func readTerminalPassword() ([]byte, error) {
	return term.ReadPassword(int(os.Stdin.Fd()))
}

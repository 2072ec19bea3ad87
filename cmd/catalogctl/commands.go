package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ErlanBelekov/bookstore-catalog/internal/bootstrap"
	"github.com/ErlanBelekov/bookstore-catalog/internal/credential"
	"github.com/ErlanBelekov/bookstore-catalog/internal/domain"
	"github.com/ErlanBelekov/bookstore-catalog/internal/email"
	"github.com/ErlanBelekov/bookstore-catalog/internal/infrastructure/postgres"
	"github.com/ErlanBelekov/bookstore-catalog/internal/usecase"
	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type ctlConfig struct {
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`
	BcryptCost  int    `env:"BCRYPT_COST" envDefault:"12"`
}

func loadConfig() (*ctlConfig, error) {
	var cfg ctlConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Operator tasks for the bookstore catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newMigrateCmd(), newSellerCmd())
	return root
}

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or revert schema migrations",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				if err := postgres.MigrateUp(cfg.DatabaseURL); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
				return nil
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Revert the most recent migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				if err := postgres.MigrateDown(cfg.DatabaseURL); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "last migration reverted")
				return nil
			},
		},
	)
	return cmd
}

func newSellerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seller",
		Short: "Manage sellers",
	}

	var in usecase.RegisterSellerInput
	create := &cobra.Command{
		Use:   "create",
		Short: "Register a seller; the password is read from the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			password, err := readPassword(cmd.InOrStdin(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			in.Password = password

			logger := bootstrap.NewLogger("local", slog.LevelWarn)
			store, closeStore, err := bootstrap.OpenStore(cmd.Context(), bootstrap.StoreOptions{
				Kind:        bootstrap.StorePostgres,
				DatabaseURL: cfg.DatabaseURL,
			}, logger)
			if err != nil {
				return err
			}
			defer closeStore()

			hasher, err := credential.NewHasher(cfg.BcryptCost)
			if err != nil {
				return err
			}
			sellers := usecase.NewSellerUsecase(store, hasher, email.NewLogSender(logger), logger)

			seller, err := sellers.RegisterSeller(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seller %d created (%s)\n", seller.ID, seller.Email)
			return nil
		},
	}
	create.Flags().StringVar(&in.FirstName, "first-name", "", "seller first name")
	create.Flags().StringVar(&in.LastName, "last-name", "", "seller last name")
	create.Flags().StringVar(&in.Email, "email", "", "seller email, used as the login")
	for _, f := range []string{"first-name", "last-name", "email"} {
		_ = create.MarkFlagRequired(f)
	}

	cmd.AddCommand(create)
	return cmd
}

// readPassword prompts without echo on a terminal and reads one line otherwise,
// so the command also works with piped input.
func readPassword(in io.Reader, prompt io.Writer) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(prompt, "Password: ")
		raw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return validPassword(string(raw))
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return validPassword(strings.TrimRight(line, "\r\n"))
}

func validPassword(p string) (string, error) {
	if p == "" {
		return "", errors.New("password must not be empty")
	}
	if len(p) > credential.MaxPasswordBytes {
		return "", domain.ErrPasswordTooLong
	}
	return p, nil
}

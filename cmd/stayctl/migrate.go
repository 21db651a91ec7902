package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"

	"stayos/internal/config"
)

func migrateCmd() *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or revert database migrations",
	}
	cmd.PersistentFlags().StringVar(&source, "source", "file://db/migrations", "migration source URL")

	open := func() (*migrate.Migrate, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		m, err := migrate.New(source, cfg.DB.DSN())
		if err != nil {
			return nil, fmt.Errorf("failed to create migrate instance: %w", err)
		}
		return m, nil
	}

	run := func(use, short string, args cobra.PositionalArgs, fn func(m *migrate.Migrate, args []string) error) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  args,
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := open()
				if err != nil {
					return err
				}
				defer func() { _, _ = m.Close() }()
				return fn(m, args)
			},
		}
	}

	cmd.AddCommand(
		run("up", "Apply all pending migrations", cobra.NoArgs, func(m *migrate.Migrate, _ []string) error {
			if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
				return fmt.Errorf("migration up failed: %w", err)
			}
			fmt.Println("migrations applied successfully")
			return nil
		}),
		run("down", "Revert all migrations", cobra.NoArgs, func(m *migrate.Migrate, _ []string) error {
			if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
				return fmt.Errorf("migration down failed: %w", err)
			}
			fmt.Println("migrations reverted successfully")
			return nil
		}),
		run("steps N", "Apply (N>0) or revert (N<0) N migrations", cobra.ExactArgs(1), func(m *migrate.Migrate, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid steps argument: %w", err)
			}
			if err := m.Steps(n); err != nil && !errors.Is(err, migrate.ErrNoChange) {
				return fmt.Errorf("migration steps failed: %w", err)
			}
			fmt.Printf("applied %d migration steps\n", n)
			return nil
		}),
		run("version", "Print the current schema version", cobra.NoArgs, func(m *migrate.Migrate, _ []string) error {
			version, dirty, err := m.Version()
			if err != nil {
				return fmt.Errorf("failed to get version: %w", err)
			}
			fmt.Printf("version: %d, dirty: %v\n", version, dirty)
			return nil
		}),
	)
	return cmd
}

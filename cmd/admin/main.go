// Copyright (c) 2026 Setrini Inmobiliaria. All rights reserved.

// Command admin provisions back-office accounts and manages the schema.
//
// # Usage
//
//	admin create --email marile@example.com --name "Marile" --role admin
//	admin migrate up
//	admin migrate down --steps 1
//	admin migrate status
//
// The password is read from ADMIN_PASSWORD or, when unset, from the first line of stdin.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/setrini/inmobiliaria/internal/platform/config"
	"github.com/setrini/inmobiliaria/internal/platform/constants"
	"github.com/setrini/inmobiliaria/internal/platform/migration"
	pgstore "github.com/setrini/inmobiliaria/internal/platform/postgres"
	"github.com/setrini/inmobiliaria/internal/platform/sec"
	"github.com/setrini/inmobiliaria/internal/users/auth"
)

// passwordEnv names the variable that carries the new account's password.
const passwordEnv = "ADMIN_PASSWORD"

const usage = `usage:
  admin create --email <email> [--name <name>] [--role admin|editor]
  admin migrate up|status
  admin migrate down [--steps n]`

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil)).With(slog.String("app", constants.AppName))

	if err := run(os.Args[1:], os.Stdin, os.Stdout, logger); err != nil {
		fmt.Fprintln(os.Stderr, "admin:", err)
		os.Exit(1)
	}
}

// createOptions are the flags of the create subcommand.
type createOptions struct {
	Email       string
	DisplayName string
	Role        string
}

// parseCreate parses the create subcommand flags.
func parseCreate(args []string) (createOptions, error) {
	var options createOptions

	flags := pflag.NewFlagSet("create", pflag.ContinueOnError)
	flags.StringVarP(&options.Email, "email", "e", "", "account email (required)")
	flags.StringVarP(&options.DisplayName, "name", "n", "", "display name")
	flags.StringVarP(&options.Role, "role", "r", string(sec.RoleEditor), "role: admin or editor")

	if err := flags.Parse(args); err != nil {
		return options, err
	}
	if options.Email == "" {
		return options, errors.New("--email is required")
	}
	return options, nil
}

// readPassword prefers the environment and falls back to one line of input.
func readPassword(stdin io.Reader) (string, error) {
	if password := os.Getenv(passwordEnv); password != "" {
		return password, nil
	}

	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}

	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", fmt.Errorf("no password: set %s or pipe it on stdin", passwordEnv)
	}
	return password, nil
}

func run(args []string, stdin io.Reader, stdout io.Writer, logger *slog.Logger) error {
	if len(args) == 0 {
		return errors.New(usage)
	}

	switch args[0] {
	case "create":
		return runCreate(args[1:], stdin, stdout, logger)
	case "migrate":
		return runMigrate(args[1:], stdout, logger)
	default:
		return errors.New(usage)
	}
}

func runCreate(args []string, stdin io.Reader, stdout io.Writer, logger *slog.Logger) error {
	options, err := parseCreate(args)
	if err != nil {
		return err
	}

	password, err := readPassword(stdin)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	// Sessions and tokens are not needed to provision an account.
	service := auth.NewService(auth.NewAdminRepository(pool), nil, nil, logger)

	admin, err := service.CreateAdmin(ctx, auth.CreateAdminInput{
		Email:       options.Email,
		Password:    password,
		DisplayName: options.DisplayName,
		Role:        sec.UserRole(options.Role),
	})
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(stdout, "created %s (%s) id=%s\n", admin.Email, admin.Role, admin.ID)
	return err
}

// migrateOptions are the arguments of the migrate subcommand.
type migrateOptions struct {
	Action string
	Steps  int
}

// parseMigrate reads "up", "status" or "down [--steps n]".
func parseMigrate(args []string) (migrateOptions, error) {
	options := migrateOptions{Steps: 1}

	flags := pflag.NewFlagSet("migrate", pflag.ContinueOnError)
	flags.IntVarP(&options.Steps, "steps", "s", 1, "migrations to roll back")
	if err := flags.Parse(args); err != nil {
		return options, err
	}

	if flags.NArg() != 1 {
		return options, errors.New(usage)
	}
	options.Action = flags.Arg(0)

	switch options.Action {
	case "up", "status":
	case "down":
		if options.Steps < 1 {
			return options, errors.New("--steps must be at least 1")
		}
	default:
		return options, errors.New(usage)
	}
	return options, nil
}

func runMigrate(args []string, stdout io.Writer, logger *slog.Logger) error {
	options, err := parseMigrate(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	runner, err := migration.NewRunner(cfg.DatabaseURL, cfg.MigrationPath, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := runner.Close(); closeErr != nil {
			logger.Warn("migration_close_failed", slog.Any("error", closeErr))
		}
	}()

	switch options.Action {
	case "up":
		err = runner.Up()
	case "down":
		err = runner.Steps(-options.Steps)
	}
	if err != nil {
		return err
	}

	status, err := runner.Status()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, formatStatus(status))
	return err
}

func formatStatus(status migration.Status) string {
	if status.Empty {
		return "version=none"
	}
	return "version=" + strconv.FormatUint(uint64(status.Version), 10) + " dirty=" + strconv.FormatBool(status.Dirty)
}

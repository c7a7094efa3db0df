package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/riskibarqy/fpl-league-sync/db"
	"github.com/riskibarqy/fpl-league-sync/internal/app"
	"github.com/riskibarqy/fpl-league-sync/internal/config"
	"github.com/riskibarqy/fpl-league-sync/internal/platform/logging"
)

var errUsage = errors.New("usage")

// command is one migration subcommand. args excludes the command name.
type command struct {
	usage string
	run   func(m *migrate.Migrate, args []string, out io.Writer, logger *logging.Logger) error
}

var commands = map[string]command{
	"up":      {usage: "up", run: cmdUp},
	"down":    {usage: "down [steps=1]", run: cmdDown},
	"version": {usage: "version", run: cmdVersion},
	"force":   {usage: "force <version>", run: cmdForce},
	"goto":    {usage: "goto <version>", run: cmdGoto},
}

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Output: os.Stderr,
		Fields: []any{"command", "migration"},
	})

	if err := run(cfg, logger, os.Args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			printUsage(os.Stderr)
			os.Exit(2)
		}
		logger.Error("migration failed", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}

func run(cfg config.Config, logger *logging.Logger, args []string) error {
	cmd, ok := commands[strings.ToLower(strings.TrimSpace(args[0]))]
	if !ok {
		return errUsage
	}

	m, source, err := newMigrator(app.DatabaseURL(cfg))
	if err != nil {
		return err
	}
	defer closeMigrator(m, logger)

	logger.Debug("migration source selected", "source", source)
	return cmd.run(m, args[1:], os.Stdout, logger)
}

// newMigrator reads migrations from MIGRATIONS_DIR when set, otherwise from
// the copy embedded at build time.
func newMigrator(databaseURL string) (*migrate.Migrate, string, error) {
	if dir := strings.TrimSpace(os.Getenv("MIGRATIONS_DIR")); dir != "" {
		abs, err := migrationsDir(dir)
		if err != nil {
			return nil, "", err
		}
		sourceURL := "file://" + filepath.ToSlash(abs)
		m, err := migrate.New(sourceURL, databaseURL)
		if err != nil {
			return nil, "", fmt.Errorf("create migrator: %w", err)
		}
		return m, sourceURL, nil
	}

	driver, err := iofs.New(db.Migrations, "migrations")
	if err != nil {
		return nil, "", fmt.Errorf("open embedded migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", driver, databaseURL)
	if err != nil {
		return nil, "", fmt.Errorf("create migrator: %w", err)
	}
	return m, "embedded", nil
}

func migrationsDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve MIGRATIONS_DIR: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("MIGRATIONS_DIR: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("MIGRATIONS_DIR %s is not a directory", abs)
	}
	return abs, nil
}

func cmdUp(m *migrate.Migrate, _ []string, _ io.Writer, logger *logging.Logger) error {
	if err := migrationResult(m.Up(), logger); err != nil {
		return err
	}
	logger.Info("migrations applied")
	return nil
}

func cmdDown(m *migrate.Migrate, args []string, _ io.Writer, logger *logging.Logger) error {
	steps, err := parseSteps(args)
	if err != nil {
		return err
	}
	if err := migrationResult(m.Steps(-steps), logger); err != nil {
		return err
	}
	logger.Info("migrations rolled back", "steps", steps)
	return nil
}

func cmdVersion(m *migrate.Migrate, _ []string, out io.Writer, _ *logging.Logger) error {
	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		_, err = fmt.Fprintln(out, "version: none\ndirty: false")
		return err
	case err != nil:
		return fmt.Errorf("read version: %w", err)
	}
	_, err = fmt.Fprintf(out, "version: %d\ndirty: %t\n", version, dirty)
	return err
}

func cmdForce(m *migrate.Migrate, args []string, _ io.Writer, logger *logging.Logger) error {
	if len(args) == 0 {
		return fmt.Errorf("force: %w", errUsage)
	}
	version, err := parseVersion(args[0])
	if err != nil {
		return err
	}
	if err := m.Force(version); err != nil {
		return fmt.Errorf("force version %d: %w", version, err)
	}
	logger.Info("migration version forced", "version", version)
	return nil
}

func cmdGoto(m *migrate.Migrate, args []string, _ io.Writer, logger *logging.Logger) error {
	if len(args) == 0 {
		return fmt.Errorf("goto: %w", errUsage)
	}
	target, err := parseTarget(args[0])
	if err != nil {
		return err
	}
	if err := migrationResult(m.Migrate(target), logger); err != nil {
		return err
	}
	logger.Info("migrated", "version", target)
	return nil
}

func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	steps, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil || steps <= 0 {
		return 0, fmt.Errorf("down steps must be a positive integer, got %q", args[0])
	}
	return steps, nil
}

// parseVersion reads a force target; golang-migrate takes it as int.
func parseVersion(raw string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value < 0 {
		return 0, fmt.Errorf("version must be a non-negative integer, got %q", raw)
	}
	return value, nil
}

func parseTarget(raw string) (uint, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 0)
	if err != nil {
		return 0, fmt.Errorf("invalid target version %q: %w", raw, err)
	}
	return uint(value), nil
}

func migrationResult(err error, logger *logging.Logger) error {
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migration changes")
		return nil
	}
	return err
}

func closeMigrator(m *migrate.Migrate, logger *logging.Logger) {
	srcErr, dbErr := m.Close()
	if srcErr != nil {
		logger.Warn("close migration source failed", "error", srcErr)
	}
	if dbErr != nil {
		logger.Warn("close migration db failed", "error", dbErr)
	}
}

func printUsage(w io.Writer) {
	name := filepath.Base(os.Args[0])
	fmt.Fprintf(w, "usage: %s <command> [args]\ncommands:\n", name)
	for _, key := range []string{"up", "down", "version", "force", "goto"} {
		fmt.Fprintf(w, "  %s %s\n", name, commands[key].usage)
	}
	fmt.Fprintln(w, "MIGRATIONS_DIR overrides the embedded migrations.")
}

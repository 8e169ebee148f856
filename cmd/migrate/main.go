package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/Viniciusgrn/forFunOrganizado/internal/users"
	"github.com/Viniciusgrn/forFunOrganizado/pkg/config"
	"github.com/Viniciusgrn/forFunOrganizado/pkg/db"
	"github.com/Viniciusgrn/forFunOrganizado/pkg/logger"
	"github.com/Viniciusgrn/forFunOrganizado/pkg/migrate"
	"github.com/joho/godotenv"
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "migrate"})

	_ = godotenv.Load()

	cmd := flag.String("cmd", "up", "migration command: up|down|status|version|create|validate|seed")
	dir := flag.String("dir", "", "goose migrations directory (default: per-dialect subdir of "+migrate.DefaultDir+")")
	name := flag.String("name", "", "migration name (for create)")
	version := flag.String("version", "", "target version (YYYYMMDDHHMMSS) for -cmd=version")

	flag.Parse()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "migrate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx = logg.WithFields(context.Background(), map[string]any{
		"env": cfg.App.Env,
		"cmd": *cmd,
		"dir": *dir,
	})

	// Commands that do not require a database.
	switch *cmd {
	case "create":
		if *name == "" {
			fmt.Fprintln(os.Stderr, "missing -name for create")
			os.Exit(1)
		}
		target := *dir
		if target == "" {
			// New migrations need a file per dialect; default to postgres
			// and pass -dir for the sqlite variant.
			target = migrate.DirForDialect(migrate.DialectPostgres)
		}
		path, err := migrate.CreateSQLMigration(target, *name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to create migration: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("created migration:", path)
		return

	case "validate":
		targets := []string{*dir}
		if *dir == "" {
			targets = []string{
				migrate.DirForDialect(migrate.DialectPostgres),
				migrate.DirForDialect(migrate.DialectSQLite),
			}
		}
		for _, target := range targets {
			if err := migrate.ValidateDir(target); err != nil {
				fmt.Fprintf(os.Stderr, "migration validation failed: %v\n", err)
				os.Exit(1)
			}
		}
		fmt.Println("migration validation passed")
		return
	}

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	requireResource(ctx, logg, "database", err)
	defer dbClient.Close()

	sqlDB, err := dbClient.DB().DB()
	requireResource(ctx, logg, "sql database", err)

	dialect := migrate.DialectPostgres
	if cfg.DB.IsSQLite() {
		dialect = migrate.DialectSQLite
	}
	if *dir == "" {
		*dir = migrate.DirForDialect(dialect)
	}

	logg.Info(ctx, "migrate ready")

	switch *cmd {
	case "up", "down", "status":
		if err := migrate.Run(ctx, sqlDB, dialect, *dir, *cmd); err != nil {
			fmt.Fprintf(os.Stderr, "goose %s failed: %v\n", *cmd, err)
			os.Exit(1)
		}

	case "seed":
		created, err := users.EnsureAdmin(ctx, users.NewRepository(dbClient.DB()), cfg.Admin, cfg.Password)
		if err != nil {
			fmt.Fprintf(os.Stderr, "admin seed failed: %v\n", err)
			os.Exit(1)
		}
		if created {
			fmt.Println("admin account created:", cfg.Admin.Username)
		} else {
			fmt.Println("admin account already present:", cfg.Admin.Username)
		}

	case "version":
		if *version == "" {
			fmt.Fprintln(os.Stderr, "missing -version for version command")
			os.Exit(1)
		}
		if err := migrate.MigrateToVersion(ctx, sqlDB, dialect, *dir, *version); err != nil {
			fmt.Fprintf(os.Stderr, "goose version migrate failed: %v\n", err)
			os.Exit(1)
		}

	default:
		fmt.Fprintln(os.Stderr, "unknown -cmd value:", *cmd)
		os.Exit(1)
	}
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}

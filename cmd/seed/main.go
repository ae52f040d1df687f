package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/minhasantafonte/santafonte-backend/config"
	"github.com/minhasantafonte/santafonte-backend/internal/app/repository"
	"github.com/minhasantafonte/santafonte-backend/internal/app/service"
	"github.com/minhasantafonte/santafonte-backend/internal/db"
	"github.com/minhasantafonte/santafonte-backend/pkg/logger"
	"github.com/urfave/cli/v3"
	"gorm.io/gorm"
)

func main() {
	logger.Initialize(logger.Config{Level: "info", Format: "console", EnableColor: true})

	if err := newApp().Run(context.Background(), os.Args); err != nil {
		logger.Fatal("Command failed", err)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "santafonte-seed",
		Usage: "Database maintenance for the Santa Fonte store",
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "Run database migrations",
				Action: withDB(func(_ context.Context, _ *cli.Command, gdb *gorm.DB) error {
					if err := db.MigrateDB(gdb); err != nil {
						return err
					}
					logger.Info("Migration complete")
					return nil
				}),
			},
			{
				Name:  "seed",
				Usage: "Insert the default catalog, options and articles into an empty database",
				Action: withDB(func(_ context.Context, _ *cli.Command, gdb *gorm.DB) error {
					if err := db.MigrateDB(gdb); err != nil {
						return err
					}
					if err := db.SeedDB(gdb); err != nil {
						return err
					}
					logger.Info("Seed complete")
					return nil
				}),
			},
			{
				Name:      "import-products",
				Usage:     "Import products from an XLSX sheet",
				ArgsUsage: "<xlsx_file_path>",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "dry-run", Usage: "parse the sheet without writing"},
				},
				Action: withDB(func(_ context.Context, cmd *cli.Command, gdb *gorm.DB) error {
					path := cmd.Args().First()
					if path == "" {
						return fmt.Errorf("missing xlsx file path")
					}
					f, err := os.Open(path)
					if err != nil {
						return fmt.Errorf("failed to open %s: %w", path, err)
					}
					defer f.Close()

					productService := service.NewProductService(repository.NewProductRepository(gdb))
					if err := productService.Load(); err != nil {
						return err
					}
					report, err := importProducts(productService, f, cmd.Bool("dry-run"))
					if err != nil {
						return err
					}
					for _, reason := range report.Skipped {
						logger.Warn("Row skipped", map[string]interface{}{"reason": reason})
					}
					logger.Info("Import finished", map[string]interface{}{
						"imported": report.Imported,
						"skipped":  len(report.Skipped),
						"dry_run":  cmd.Bool("dry-run"),
					})
					return nil
				}),
			},
			{
				Name:      "export-sales",
				Usage:     "Export the sales board to an XLSX file",
				ArgsUsage: "[xlsx_file_path]",
				Action: withDB(func(_ context.Context, cmd *cli.Command, gdb *gorm.DB) error {
					path := cmd.Args().First()
					if path == "" {
						path = fmt.Sprintf("vendas-%s.xlsx", time.Now().Format("2006-01-02"))
					}
					saleService := service.NewSaleService(repository.NewSaleRepository(gdb), nil, nil)
					if err := saleService.Load(); err != nil {
						return err
					}
					f, err := os.Create(path)
					if err != nil {
						return fmt.Errorf("failed to create %s: %w", path, err)
					}
					defer f.Close()
					if err := saleService.Export(f); err != nil {
						return err
					}
					logger.Info("Sales exported", map[string]interface{}{
						"path":  path,
						"count": len(saleService.List()),
					})
					return nil
				}),
			},
			{
				Name:  "create-admin",
				Usage: "Create the admin account when none exists",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "password", Required: true},
				},
				Action: withDB(func(_ context.Context, cmd *cli.Command, gdb *gorm.DB) error {
					authService := service.NewAuthService(
						repository.NewAdminUserRepository(gdb),
						service.NewMemoryTokenBlacklist(),
						"",
						0,
						0,
					)
					created, err := authService.EnsureAdmin(cmd.String("email"), cmd.String("password"))
					if err != nil {
						return err
					}
					logger.Info("Admin account ready", map[string]interface{}{
						"email":   cmd.String("email"),
						"created": created,
					})
					return nil
				}),
			},
		},
	}
}

type dbAction func(ctx context.Context, cmd *cli.Command, gdb *gorm.DB) error

// withDB opens the configured database around a command action.
func withDB(action dbAction) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := db.Initialize(&cfg.Database); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()
		return action(ctx, cmd, db.GetDB())
	}
}

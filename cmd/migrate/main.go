// Command migrate applies the SQL migrations with Atlas and optionally
// provisions an administrator account.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"station-booking/internal/domain/user"
	"station-booking/internal/infra"
	"station-booking/internal/infra/db"
	"station-booking/internal/infra/repository"
	"station-booking/internal/pkg/config"
	"station-booking/internal/pkg/errs"
	"station-booking/internal/pkg/password"

	"ariga.io/atlas-go-sdk/atlasexec"
	"github.com/spf13/pflag"
)

type options struct {
	dir           string
	atlasBin      string
	dryRun        bool
	adminEmail    string
	adminName     string
	adminPassword string
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errs.Is(err, pflag.ErrHelp) {
			return
		}
		slog.Error("マイグレーションに失敗しました", "error", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var opts options
	flagSet := pflag.NewFlagSet("migrate", pflag.ContinueOnError)
	flagSet.StringVar(&opts.dir, "dir", "migrations", "directory holding the versioned SQL migrations")
	flagSet.StringVar(&opts.atlasBin, "atlas", "atlas", "path to the atlas binary")
	flagSet.BoolVar(&opts.dryRun, "dry-run", false, "print pending migrations without applying them")
	flagSet.StringVar(&opts.adminEmail, "admin-email", "", "create an administrator with this email after migrating")
	flagSet.StringVar(&opts.adminName, "admin-name", "Administrator", "display name of the administrator")
	flagSet.StringVar(&opts.adminPassword, "admin-password", os.Getenv("ADMIN_PASSWORD"), "administrator password (default $ADMIN_PASSWORD)")
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := apply(ctx, cfg.DB, opts); err != nil {
		return err
	}
	if opts.adminEmail == "" || opts.dryRun {
		return nil
	}
	return createAdmin(ctx, cfg, opts)
}

func apply(ctx context.Context, dbCfg config.DBConfig, opts options) error {
	workdir, err := atlasexec.NewWorkingDir(
		atlasexec.WithMigrations(os.DirFS(opts.dir)),
	)
	if err != nil {
		return errs.Wrap(err, "failed to load migrations")
	}
	defer workdir.Close()

	client, err := atlasexec.NewClient(workdir.Path(), opts.atlasBin)
	if err != nil {
		return errs.Wrap(err, "failed to initialize atlas client")
	}

	res, err := client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{
		URL:    dbCfg.BuildDSN(),
		DryRun: opts.dryRun,
	})
	if err != nil {
		return errs.Wrap(err, "failed to apply migrations")
	}

	for _, f := range res.Applied {
		slog.Info("マイグレーション実行完了", "file", f.Name, "dry_run", opts.dryRun)
	}
	slog.Info("マイグレーションが完了しました", "current", res.Current, "target", res.Target, "applied", len(res.Applied))
	return nil
}

func createAdmin(ctx context.Context, cfg config.Config, opts options) error {
	email, err := user.NewEmail(opts.adminEmail)
	if err != nil {
		return err
	}
	name, err := user.NewName(opts.adminName)
	if err != nil {
		return err
	}
	if _, err := user.NewPassword(opts.adminPassword); err != nil {
		return errs.Wrap(err, "--admin-password")
	}
	hash, err := password.NewHasher(cfg.Store.BcryptCost).Hash(opts.adminPassword)
	if err != nil {
		return err
	}

	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		return err
	}
	defer cleanup()

	admin := user.NewUser(email, name, hash, user.RoleAdmin, time.Now())
	err = repository.NewUserRepository(pool).Create(ctx, admin)
	if infra.IsKind(err, infra.KindDuplicateKey) {
		slog.Info("管理者は既に存在します", "email", email.Value())
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create administrator: %w", err)
	}
	slog.Info("管理者を作成しました", "email", email.Value(), "id", admin.ID())
	return nil
}

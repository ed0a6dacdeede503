package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"user-roles-api/internal/core/config"
	"user-roles-api/internal/core/database"
	"user-roles-api/internal/core/logger"
	"user-roles-api/internal/repo"
)

// 运维命令：建表、灌角色、查看角色
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type env struct {
	cfgPath string
	log     *zap.Logger
	db      *gorm.DB
	cleanup func()
}

func (e *env) open() error {
	cfg, err := config.Read(e.cfgPath)
	if err != nil {
		return err
	}
	e.log, e.cleanup = logger.New(cfg.Log)
	e.db, err = database.NewGorm(database.OptsFrom(cfg.DB), e.log)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	return nil
}

func (e *env) close() {
	if e.db != nil {
		if sqlDB, err := e.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if e.cleanup != nil {
		e.cleanup()
	}
}

func newRootCmd() *cobra.Command {
	e := &env{}
	root := &cobra.Command{
		Use:          "admin",
		Short:        "user-roles-api provisioning commands",
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			_ = godotenv.Load()
			if e.cfgPath == "" {
				e.cfgPath = os.Getenv("CONFIG_PATH")
			}
			return e.open()
		},
		PersistentPostRun: func(*cobra.Command, []string) { e.close() },
	}
	root.PersistentFlags().StringVarP(&e.cfgPath, "config", "c", "", "config file (default $CONFIG_PATH or ./configs/config.local.yaml)")

	root.AddCommand(migrateCmd(e), seedRolesCmd(e), rolesCmd(e))
	return root
}

func migrateCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "create or update the users, roles and role_user tables",
		RunE: func(*cobra.Command, []string) error {
			if err := database.Migrate(e.db); err != nil {
				return err
			}
			e.log.Info("migrate done")
			return nil
		},
	}
}

func seedRolesCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "seed-roles",
		Short: "insert the reference roles (idempotent)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, err := database.SeedRoles(cmd.Context(), e.db)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d role(s) inserted\n", n)
			return nil
		},
	}
}

func rolesCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "roles",
		Short: "list roles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			roles, err := repo.NewRoleRepo(e.db, e.log).List(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME")
			for _, r := range roles {
				fmt.Fprintf(w, "%d\t%s\n", r.ID, r.Name)
			}
			return w.Flush()
		},
	}
}

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/beluleung/ISOM5260-project/pkg/database"
)

func migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "执行数据库迁移后退出",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, logger, err := bootstrap()
			if err != nil {
				return err
			}
			defer logger.Sync()

			db, err := database.NewDB(&cfg.Database, logger)
			if err != nil {
				return fmt.Errorf("数据库连接失败: %w", err)
			}
			defer database.Close(db)

			sqlDB, err := db.DB()
			if err != nil {
				return fmt.Errorf("获取底层 sql.DB 失败: %w", err)
			}
			return database.RunMigrations(sqlDB, logger)
		},
	}
}

func healthcheckCommand() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "healthcheck",
		Short: "检查数据库是否可达，不可达时以非零状态退出",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := bootstrap()
			if err != nil {
				return err
			}
			defer logger.Sync()

			db, err := database.NewDB(&cfg.Database, logger)
			if err != nil {
				return fmt.Errorf("数据库连接失败: %w", err)
			}
			defer database.Close(db)

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			if err := database.HealthCheck(ctx, db); err != nil {
				return fmt.Errorf("数据库不可达: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "连通性检查超时")
	return cmd
}

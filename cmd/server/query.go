package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/beluleung/ISOM5260-project/internal/repository"
	"github.com/beluleung/ISOM5260-project/internal/service"
	"github.com/beluleung/ISOM5260-project/pkg/database"
)

func queryCommand() *cobra.Command {
	var (
		format  string
		outPath string
	)

	cmd := &cobra.Command{
		Use:   `query "<SELECT ...>"`,
		Short: "执行只读即席查询，可导出为 csv / xlsx",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			repo := repository.NewRepository(db,
				repository.WithStatementTimeout(cfg.Query.StatementTimeout),
				repository.WithReadOnlyRole(cfg.Query.ReadOnlyRole),
			)
			svc := service.NewService(repo, nil, logger)
			ctx := context.Background()

			// 未指定格式：结果以 CSV 文本打印到标准输出
			if format == "" {
				result, err := svc.Report.RunReadOnlyQuery(ctx, args[0])
				if err != nil {
					return err
				}
				return service.WriteQueryCSV(cmd.OutOrStdout(), result)
			}

			file, err := svc.Export.ExportQuery(ctx, args[0], format)
			if err != nil {
				return err
			}
			if outPath == "" {
				outPath = file.Filename
			}
			if err := os.WriteFile(outPath, file.Data.Bytes(), 0o644); err != nil {
				return fmt.Errorf("写入导出文件失败: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "已导出到 %s\n", outPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "导出格式：csv 或 xlsx")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "导出文件路径（默认使用生成的文件名）")
	return cmd
}

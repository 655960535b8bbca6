package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/beluleung/ISOM5260-project/config"
	applogger "github.com/beluleung/ISOM5260-project/pkg/logger"
)

const programName = "club-server"

// configFile --config 指定的配置文件路径，为空时按默认路径查找
var configFile string

func main() {
	// .env 不存在时忽略
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:           programName,
		Short:         "康乐会会员与活动报名服务",
		SilenceUsage:  true,
		SilenceErrors: true,
		// 不带子命令时等同于 serve
		RunE: func(cmd *cobra.Command, args []string) error {
			return serveRun(cmd, args)
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "配置文件路径（默认查找 ./config/config.yaml）")

	rootCmd.AddCommand(
		serveCommand(),
		migrateCommand(),
		healthcheckCommand(),
		queryCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", programName, err)
		os.Exit(1)
	}
}

// bootstrap 加载配置并初始化日志，所有子命令共用
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("加载配置失败: %w", err)
	}

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("初始化日志失败: %w", err)
	}

	return cfg, logger, nil
}

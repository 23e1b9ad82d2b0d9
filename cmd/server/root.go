package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jengzang/risk-heatmap-go/internal/config"
	"github.com/jengzang/risk-heatmap-go/pkg/logger"
)

type rootOptions struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "riesgo",
		Short:         "API de mapa de calor de riesgo delictivo",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// 默认启动服务
			return runServe(cmd.Context(), opts)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "YAML config file (overrides RIESGO_CONFIG)")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		newServeCmd(opts),
		newPredictCmd(opts),
		newZonesCmd(),
	)
	return cmd
}

// loadConfig 加载配置并初始化日志
func loadConfig(opts *rootOptions) (*config.Config, *zap.Logger, error) {
	if opts.configPath != "" {
		os.Setenv("RIESGO_CONFIG", opts.configPath)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}

	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

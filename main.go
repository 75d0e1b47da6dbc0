package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ByLCY/koma/config"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCommand(os.Stderr).ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app 保存各子命令共享的状态。
type app struct {
	logger     *log.Logger
	cfg        config.Config
	configPath string
	verbose    bool
}

func newRootCommand(logOut io.Writer) *cobra.Command {
	a := &app{
		logger: log.NewWithOptions(logOut, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           log.InfoLevel,
		}),
	}

	root := &cobra.Command{
		Use:           "koma",
		Short:         "把分镜脚本合成为灰度漫画页",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if a.verbose {
				a.logger.SetLevel(log.DebugLevel)
			}
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			cmd.SetContext(log.WithContext(cmd.Context(), a.logger))
			return nil
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "输出调试日志")
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "配置文件路径（默认 ./"+config.DefaultPath+"）")

	root.AddCommand(a.composeCommand())
	root.AddCommand(a.layoutCommand())
	root.AddCommand(a.manifestCommand())
	return root
}

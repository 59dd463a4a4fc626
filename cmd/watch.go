package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	tt "github.com/gnolang/inclint/internal/types"
	"github.com/gnolang/inclint/lint"
)

var watchCmd = &cobra.Command{
	Use:   "watch [paths...]",
	Short: "Lint files again every time they change",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}

		// timeout does not apply, watching runs until interrupted
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		engine, err := newEngine()
		if err != nil {
			logger.Fatal("Failed to initialize lint engine", zap.Error(err))
		}

		report := func(filename string, issues []tt.Issue) {
			if len(issues) == 0 {
				fmt.Printf("%s: no issues\n", filename)
				return
			}
			printFileIssues(logger, filename, issues, os.Stdout)
		}

		logger.Info("Watching for changes", zap.Strings("paths", args))
		if err := lint.Watch(ctx, logger, engine, args, report); err != nil {
			logger.Fatal("Watch failed", zap.Error(err))
		}
	},
}

func init() {
	watchCmd.Flags().StringVar(&ignoreRules, "ignore", "", "Comma-separated list of lint rules to ignore")
	watchCmd.Flags().StringVar(&ignorePaths, "ignore-paths", "", "Comma-separated list of paths to ignore")
}

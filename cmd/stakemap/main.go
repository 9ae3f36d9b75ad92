package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stakemap/internal/cli"
	"github.com/matzehuels/stakemap/pkg/errors"
)

// Exit codes. 130 matches the shell's SIGINT convention.
const (
	exitError    = 1
	exitUsage    = 2
	exitCanceled = 130
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	cancel()
	os.Exit(exitCode(err))
}

func run(ctx context.Context) error {
	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.SilenceErrors = true

	verbose := root.PersistentFlags().BoolP("verbose", "v", false, "enable verbose logging")
	loadConfig := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if *verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		return loadConfig(cmd, args)
	}

	return root.ExecuteContext(ctx)
}

// exitCode reports err on stderr and maps it to a process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case stderrors.Is(err, context.Canceled):
		return exitCanceled
	}

	fmt.Fprintln(os.Stderr, "error:", errors.UserMessage(err))
	for _, d := range errors.Details(err) {
		fmt.Fprintln(os.Stderr, "  -", d)
	}

	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidViewMode, errors.ErrCodeInvalidLayout,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidConfig:
		return exitUsage
	default:
		return exitError
	}
}

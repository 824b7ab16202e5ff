package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/aasgraph/internal/cli"
	aaserrors "github.com/matzehuels/aasgraph/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cli.New(os.Stderr, cli.LogInfo).RootCommand().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		fmt.Fprintln(os.Stderr, aaserrors.UserMessage(err))
		os.Exit(exitCode(err))
	}
}

// exitCode maps error codes to exit statuses: 2 for bad input, 1 otherwise.
func exitCode(err error) int {
	switch aaserrors.GetCode(err) {
	case aaserrors.ErrCodeInvalidInput, aaserrors.ErrCodeMalformedValue:
		return 2
	}
	return 1
}

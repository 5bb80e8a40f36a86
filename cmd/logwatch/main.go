package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	os.Exit(run(context.Background()))
}

func run(ctx context.Context) int {
	err := newRootCommand().ExecuteContext(ctx)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		// interrupted follow or serve; nothing to report
		return 1
	default:
		fmt.Fprintln(os.Stderr, "logwatch:", err)
		return 1
	}
}

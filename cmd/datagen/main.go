package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	app := newApp()
	if err := newRootCommand(app).ExecuteContext(context.Background()); err != nil {
		if !errors.Is(err, errContradiction) {
			fmt.Fprintln(os.Stderr, "datagen:", err)
		}
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errContradiction):
		return 2
	default:
		return 1
	}
}

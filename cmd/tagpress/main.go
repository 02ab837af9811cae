package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		// An interrupt already means the user asked to stop; stay quiet.
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "tagpress: %v\n", err)
		}
		os.Exit(1)
	}
}

// Command fitcheck computes Body Mass Index and keeps a short history of
// past results. It runs as an HTTP server or as a one-shot CLI.
package main

import (
	"context"
	"os"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

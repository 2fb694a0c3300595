// Command todo is an interactive terminal client for the todo API.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/todo-app/internal/client"
)

// apiURL is set at build time with -ldflags "-X main.apiURL=...".
var apiURL = client.DefaultBaseURL

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, in io.Reader, out, errOut io.Writer) int {
	fs := flag.NewFlagSet("todo", flag.ContinueOnError)
	fs.SetOutput(errOut)
	base := fs.String("api", apiURL, "base URL of the todo API")
	debug := fs.Bool("debug", false, "log request failures to stderr")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger := zap.NewNop()
	if *debug {
		l, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return 1
		}
		logger = l
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := client.NewStore(client.NewHTTPClient(*base, nil), logger)
	if err := client.NewConsole(store).Run(ctx, in, out); err != nil && ctx.Err() == nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return 1
	}
	return 0
}

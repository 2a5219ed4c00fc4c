// Command jokecli is a terminal front end for the joke service.
//
//	jokecli -url http://localhost:8080
//
// It keeps the same session state as the web page: one current joke and a
// list of favorites that disappears when the program exits.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sakif/jokebox/internal/client"
)

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "base URL of the joke server")
	timeout := flag.Duration("timeout", 10*time.Second, "per-request timeout")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api := client.New(*baseURL, client.WithHTTPClient(newHTTPClient(*timeout)))
	if err := run(ctx, os.Stdin, os.Stdout, api); err != nil {
		fmt.Fprintln(os.Stderr, "jokecli:", err)
		os.Exit(1)
	}
}

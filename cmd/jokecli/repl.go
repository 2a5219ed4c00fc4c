package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sakif/jokebox/internal/client"
	"github.com/sakif/jokebox/internal/model"
)

// API is the slice of *client.Client the REPL uses.
type API interface {
	client.RandomFetcher
	Submit(ctx context.Context, text, category string) (*model.Joke, error)
	Categories(ctx context.Context) ([]model.Category, error)
}

const help = `commands:
  new               show another joke
  fav               save the current joke to favorites
  unfav <id>        remove a favorite
  list              show favorites
  cats              list categories
  add <text> [| category]   submit a joke
  help              show this help
  quit              exit`

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// readLines scans in on its own goroutine so run can stop on ctx while a read
// is blocked. lines is closed at EOF, after errc has received the scan error.
func readLines(in io.Reader, done <-chan struct{}) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		errc <- scanner.Err()
	}()
	return lines, errc
}

// run reads commands from in until EOF, "quit" or ctx is done.
func run(ctx context.Context, in io.Reader, out io.Writer, api API) error {
	session := client.NewSession(api)

	fmt.Fprintln(out, session.NextJoke(ctx))

	done := make(chan struct{})
	defer close(done)
	lines, errc := readLines(in, done)

	for {
		fmt.Fprint(out, "> ")

		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return nil
		case l, ok := <-lines:
			if !ok {
				fmt.Fprintln(out)
				return <-errc
			}
			line = l
		}

		cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
		arg = strings.TrimSpace(arg)

		switch strings.ToLower(cmd) {
		case "":
		case "new", "n":
			fmt.Fprintln(out, session.NextJoke(ctx))
		case "fav", "f":
			fav, ok := session.AddFavorite()
			if !ok {
				fmt.Fprintln(out, "nothing to save")
				continue
			}
			fmt.Fprintf(out, "saved %s\n", fav.ID)
		case "unfav", "u":
			if arg == "" {
				fmt.Fprintln(out, "usage: unfav <id>")
				continue
			}
			if !session.RemoveFavorite(arg) {
				fmt.Fprintf(out, "no favorite %s\n", arg)
				continue
			}
			fmt.Fprintf(out, "removed %s\n", arg)
		case "list", "l":
			favs := session.Favorites()
			if len(favs) == 0 {
				fmt.Fprintln(out, "no favorites yet")
				continue
			}
			for _, f := range favs {
				fmt.Fprintf(out, "%s  %s\n", f.ID, f.Text)
			}
		case "cats":
			cats, err := api.Categories(ctx)
			if err != nil {
				fmt.Fprintln(out, "error:", err)
				continue
			}
			for _, c := range cats {
				fmt.Fprintf(out, "%-12s %d\n", c.Name, c.Count)
			}
		case "add":
			text, category, _ := strings.Cut(arg, "|")
			joke, err := api.Submit(ctx, strings.TrimSpace(text), strings.TrimSpace(category))
			if err != nil {
				var apiErr *client.APIError
				if errors.As(err, &apiErr) && apiErr.Message != "" {
					fmt.Fprintln(out, "rejected:", apiErr.Message)
					continue
				}
				fmt.Fprintln(out, "error:", err)
				continue
			}
			fmt.Fprintf(out, "added #%d (%s)\n", joke.ID, joke.Category)
		case "help", "h", "?":
			fmt.Fprintln(out, help)
		case "quit", "q", "exit":
			return nil
		default:
			fmt.Fprintf(out, "unknown command %q, try help\n", cmd)
		}
	}
}

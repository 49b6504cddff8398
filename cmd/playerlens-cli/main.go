package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ajeebtech/playerlens/pkg/client"
	"github.com/ajeebtech/playerlens/pkg/models"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "playerlens-cli",
		Usage: "Search players and view their stats panels from the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api",
				Usage:   "PlayerLens API base URL",
				Value:   "http://localhost:8080",
				EnvVars: []string{"PLAYERLENS_URL"},
			},
			&cli.StringFlag{
				Name:  "prefix",
				Usage: "API route prefix",
				Value: "/api",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Per-request timeout",
				Value: 10 * time.Second,
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "List players whose name contains TERM",
				ArgsUsage: "TERM",
				Action:    searchCommand,
			},
			{
				Name:   "stats",
				Usage:  "Render the stats panels for one player",
				Action: statsCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "id",
						Usage: "List serial number",
					},
					&cli.StringFlag{
						Name:  "name",
						Usage: "Player name",
					},
					&cli.StringFlag{
						Name:  "panel",
						Usage: "OVERVIEW, TRENDS, STATS or FORM (default: all)",
					},
				},
			},
			{
				Name:   "browse",
				Usage:  "Interactive search: type to search, :N to open a result, :q to quit",
				Action: browseCommand,
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:  "debounce",
						Usage: "Delay after the last keystroke before searching",
						Value: client.DefaultDebounce,
					},
					&cli.IntFlag{
						Name:  "min-chars",
						Usage: "Shortest input that triggers a search",
						Value: client.DefaultMinChars,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}

func newClient(c *cli.Context) (*client.Client, error) {
	return client.New(c.String("api"),
		client.WithAPIPrefix(c.String("prefix")),
		client.WithHTTPClient(&http.Client{Timeout: c.Duration("timeout")}),
	)
}

func searchCommand(c *cli.Context) error {
	term := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(term) == "" {
		return fmt.Errorf("search term is required")
	}

	api, err := newClient(c)
	if err != nil {
		return err
	}

	results, err := api.Search(c.Context, term)
	if err != nil {
		return err
	}

	printResults(os.Stdout, results)
	return nil
}

func statsCommand(c *cli.Context) error {
	api, err := newClient(c)
	if err != nil {
		return err
	}

	var s *models.PlayerStats
	switch {
	case c.String("id") != "":
		s, err = api.StatsByID(c.Context, c.String("id"))
	case c.String("name") != "":
		s, err = api.StatsByName(c.Context, c.String("name"))
	default:
		return fmt.Errorf("--id or --name is required")
	}
	if err != nil {
		return err
	}

	panels := client.Panels
	if p := c.String("panel"); p != "" {
		panel, err := client.ParsePanel(p)
		if err != nil {
			return err
		}
		panels = []client.Panel{panel}
	}

	return renderAll(os.Stdout, s, panels)
}

func browseCommand(c *cli.Context) error {
	api, err := newClient(c)
	if err != nil {
		return err
	}

	ac := client.NewAutocomplete(api,
		client.WithDebounce(c.Duration("debounce")),
		client.WithMinChars(c.Int("min-chars")),
	)
	defer ac.Close()

	var (
		mu     sync.Mutex
		latest []models.SearchResult
	)

	go func() {
		for {
			select {
			case <-ac.Done():
				return
			case s := <-ac.Suggestions():
				switch {
				case s.Loading:
					fmt.Printf("… searching %q\n", s.Query)
				case s.Err != nil:
					fmt.Printf("⚠️  search failed: %v\n", s.Err)
				default:
					mu.Lock()
					latest = s.Results
					mu.Unlock()
					if s.Query != "" && len(s.Results) == 0 {
						fmt.Println("  no players found")
					}
					printResults(os.Stdout, s.Results)
				}
			}
		}
	}()

	fmt.Println("Type a name to search, :N to open result N, :q to quit")
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()

		if !strings.HasPrefix(line, ":") {
			ac.Type(line)
			continue
		}

		cmd := strings.TrimSpace(strings.TrimPrefix(line, ":"))
		if cmd == "q" {
			return nil
		}

		n, err := strconv.Atoi(cmd)
		mu.Lock()
		results := latest
		mu.Unlock()
		if err != nil || n < 1 || n > len(results) {
			fmt.Printf("⚠️  pick a result between 1 and %d\n", len(results))
			continue
		}

		ctx, cancel := context.WithTimeout(c.Context, 10*time.Second)
		s, err := api.StatsByID(ctx, results[n-1].ID)
		cancel()
		if err != nil {
			fmt.Printf("⚠️  %v\n", err)
			continue
		}
		if err := renderAll(os.Stdout, s, client.Panels); err != nil {
			return err
		}
	}

	return scanner.Err()
}

func printResults(w io.Writer, results []models.SearchResult) {
	for i, r := range results {
		fmt.Fprintf(w, "  %2d. %-28s %-8s %s  (id %s)\n", i+1, r.Name, r.Team, r.Country, r.ID)
	}
}

func renderAll(w io.Writer, s *models.PlayerStats, panels []client.Panel) error {
	client.RenderInfo(w, s)
	for _, p := range panels {
		fmt.Fprintln(w)
		if err := client.RenderPanel(w, s, p); err != nil {
			return err
		}
	}
	return nil
}

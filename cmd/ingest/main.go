// Command ingest is the terminal client for the GeoCortex API: it uploads
// spreadsheets, lists and browses stored records, and runs geocode lookups.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"geocortex/pkg/api"
	"geocortex/pkg/logger"
)

const defaultServer = "http://localhost:4000"

const usage = `usage: ingest [-server URL] [-timeout D] [-rate N] [-burst N] [-log LEVEL] <command> [args]

  -server defaults to $GEOCORTEX_SERVER or ` + defaultServer + `
  -rate and -burst pace requests to stay under the server's per-client limit

commands:
  upload FILE   ingest a .csv or .xlsx file row by row
  list          print the record list
  view          print the map viewport and markers as JSON
  browse        interactive list with record details
  delete ID     delete one record
  clear         delete every record
  geocode ID    look up a record's address
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("ingest", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, usage) }

	server := fs.String("server", envOr("GEOCORTEX_SERVER", defaultServer), "API base URL")
	timeout := fs.Duration("timeout", 30*time.Second, "per-request timeout")
	perMinute := fs.Float64("rate", 600, "requests per minute, 0 disables pacing")
	burst := fs.Int("burst", 10, "requests allowed in a burst")
	level := fs.String("log", envOr("LOG_LEVEL", "INFO"), "log level")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	logger.InitLogger(stderr, *level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli{
		client: api.NewClient(*server, *timeout, api.WithRateLimit(*perMinute, *burst)),
		out:    stdout,
	}
	app.records = api.NewRecordCache(app.client)

	if err := app.dispatch(ctx, fs.Arg(0), fs.Args()[1:]); err != nil {
		if err == errUsage {
			fs.Usage()
			return 2
		}
		logger.GlobalLogger.Errorf("%s: %v", fs.Arg(0), err)
		return 1
	}
	return 0
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

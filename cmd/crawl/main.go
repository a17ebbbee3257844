package main

import (
	"cmp"
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"

	"github.com/avolkov/castboard/app/cfg"
	"github.com/avolkov/castboard/app/crawl"
)

type options struct {
	Profile   string `long:"profile" description:"Site profile YAML file with selector paths"`
	Workers   int    `long:"workers" env:"WORKER_COUNT" default:"4" description:"Number of fetch workers"`
	QueueSize int    `long:"queue-size" default:"300" description:"Pending task queue capacity"`
	Delay     int    `long:"delay" default:"1000" description:"Inter-request delay in milliseconds"`
	Timeout   int    `long:"timeout" default:"30" description:"HTTP timeout in seconds"`
	UserAgent string `long:"user-agent" env:"USER_AGENT" description:"User agent string for HTTP requests"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`

	Args struct {
		StartURL   string `positional-arg-name:"START_URL" description:"List page to crawl from"`
		OutputFile string `positional-arg-name:"OUTPUT_FILE" description:"File to append (actor, title) records to"`
	} `positional-args:"yes" required:"yes"`
}

func main() {
	var opts options

	parser := flags.NewParser(&opts, flags.Default)
	parser.Usage = "[OPTIONS] START_URL OUTPUT_FILE"

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return
		}
		os.Exit(2)
	}

	logLevel := slog.LevelInfo
	if opts.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	profile := crawl.DefaultProfile()
	if opts.Profile != "" {
		var err error
		profile, err = crawl.LoadProfile(opts.Profile)
		if err != nil {
			log.Fatalf("Failed to load site profile: %v", err)
		}
		slog.Info("Site profile loaded", "path", opts.Profile)
	}

	sink, err := crawl.NewFileSink(opts.Args.OutputFile)
	if err != nil {
		log.Fatalf("Failed to open output file: %v", err)
	}

	httpClient := &http.Client{
		Timeout: time.Duration(opts.Timeout) * time.Second,
	}
	userAgent := cmp.Or(opts.UserAgent, cfg.DefaultUserAgent)

	fetcher := crawl.NewFetcher(httpClient, userAgent, time.Duration(opts.Delay)*time.Millisecond)
	extractor := crawl.NewExtractor(profile)
	runner := crawl.NewRunner(fetcher, extractor, sink, opts.Workers, opts.QueueSize)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("Starting crawl", "start_url", opts.Args.StartURL, "output", opts.Args.OutputFile, "workers", opts.Workers)

	stats, runErr := runner.Run(ctx, opts.Args.StartURL)

	if err := sink.Close(); err != nil {
		slog.Error("Failed to close output file", "error", err)
		os.Exit(1)
	}

	slog.Info("Crawl finished",
		"completed", stats.Completed,
		"dropped", stats.Dropped,
		"records", stats.Records)

	if runErr != nil {
		slog.Error("Crawl aborted", "error", runErr)
		os.Exit(1)
	}
}

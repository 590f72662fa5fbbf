// Command-line entry point for the avherald scraper.
//
// Subcommands
// -----------
//
//	scrape  - crawl listing pages, parse headlines and store incidents
//	parse   - parse headline text from a file/stdin and output JSON
//	stats   - print grouped airline/aircraft incident counts
//	serve   - serve stored incidents over a REST API
//
// Most flags default from environment variables (BASE_URL,
// DATABASE_FILE_PATH, MAX_PAGES_TO_SCRAPE, REQUEST_DELAY_SECONDS,
// SHOW_DETAILS, NATS_URL, POSTGRES_*) so deployments can configure the
// scraper without wrapper scripts.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"avherald_scraper/internal/api"
	"avherald_scraper/internal/feed"
	"avherald_scraper/internal/headline"
	"avherald_scraper/internal/incident"
	"avherald_scraper/internal/observability"
	"avherald_scraper/internal/scraper"
	"avherald_scraper/internal/storage"
)

func usage(w io.Writer) {
	fmt.Fprintln(w, "avherald_scraper - commands:")
	fmt.Fprintln(w, "  scrape  - crawl avherald.com and store incidents")
	fmt.Fprintln(w, "  parse   - parse headlines from a file/stdin, output JSON")
	fmt.Fprintln(w, "  stats   - print incident counts by airline/aircraft")
	fmt.Fprintln(w, "  serve   - serve stored incidents over HTTP")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  avherald_scraper scrape [-base-url URL] [-db PATH] [-max-pages N] [-delay SECONDS] [-nats URL] [-archive]")
	fmt.Fprintln(w, "  avherald_scraper parse [-input headlines.txt] [-output out.json] [-pretty]")
	fmt.Fprintln(w, "  avherald_scraper stats [-db PATH] [-mode airline|aircraft|both] [-limit N]")
	fmt.Fprintln(w, "  avherald_scraper serve [-db PATH] [-port N]")
	fmt.Fprintln(w, "")
}

func main() {
	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}
	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "scrape":
		runScrape(os.Args[2:])
	case "parse":
		runParse(os.Args[2:])
	case "stats":
		runStats(os.Args[2:])
	case "serve":
		runServe(os.Args[2:])
	case "-h", "--help", "help":
		usage(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		usage(os.Stderr)
		os.Exit(2)
	}
}

// storeFlags bundles the backend-selection flags shared by subcommands.
type storeFlags struct {
	backend    *string
	sqlitePath *string
	pgHost     *string
	pgPort     *int
	pgUser     *string
	pgPassword *string
	pgDatabase *string
}

func addStoreFlags(fs *flag.FlagSet) *storeFlags {
	cfg := storage.DefaultConfig()
	return &storeFlags{
		backend:    fs.String("backend", envOrDefault("STORAGE_BACKEND", "sqlite"), "Storage backend: sqlite or postgres"),
		sqlitePath: fs.String("db", envOrDefault("DATABASE_FILE_PATH", cfg.SQLitePath), "SQLite database file path"),
		pgHost:     fs.String("pg-host", envOrDefault("POSTGRES_HOST", cfg.Postgres.Host), "PostgreSQL host"),
		pgPort:     fs.Int("pg-port", envOrDefaultInt("POSTGRES_PORT", cfg.Postgres.Port), "PostgreSQL port"),
		pgUser:     fs.String("pg-user", envOrDefault("POSTGRES_USER", cfg.Postgres.User), "PostgreSQL user"),
		pgPassword: fs.String("pg-password", envOrDefault("POSTGRES_PASSWORD", cfg.Postgres.Password), "PostgreSQL password"),
		pgDatabase: fs.String("pg-database", envOrDefault("POSTGRES_DATABASE", cfg.Postgres.Database), "PostgreSQL database"),
	}
}

func (f *storeFlags) open(ctx context.Context) (storage.IncidentStore, error) {
	switch *f.backend {
	case "sqlite":
		return storage.OpenSQLite(*f.sqlitePath)
	case "postgres":
		return storage.OpenPostgres(ctx, storage.PostgresConfig{
			Host:     *f.pgHost,
			Port:     *f.pgPort,
			User:     *f.pgUser,
			Password: *f.pgPassword,
			Database: *f.pgDatabase,
		})
	default:
		return nil, fmt.Errorf("unknown backend %q (valid: sqlite, postgres)", *f.backend)
	}
}

func runScrape(args []string) {
	fs := flag.NewFlagSet("scrape", flag.ExitOnError)
	baseURL := fs.String("base-url", envOrDefault("BASE_URL", "https://avherald.com"), "Listing base URL")
	maxPages := fs.Int("max-pages", envOrDefaultInt("MAX_PAGES_TO_SCRAPE", 20), "Maximum pages to crawl")
	delay := fs.Int("delay", envOrDefaultInt("REQUEST_DELAY_SECONDS", 3), "Delay between page requests in seconds")
	verbose := fs.Bool("verbose", envOrDefaultBool("SHOW_DETAILS", true), "Print progress details")
	natsURL := fs.String("nats", envOrDefault("NATS_URL", ""), "NATS URL to publish new incidents to (empty = disabled)")
	subject := fs.String("subject", envOrDefault("NATS_SUBJECT", feed.DefaultSubject), "NATS subject for new incidents")
	archive := fs.Bool("archive", false, "Mirror new incidents into a ClickHouse archive")
	chHost := fs.String("ch-host", envOrDefault("CLICKHOUSE_HOST", "localhost"), "ClickHouse host")
	chPort := fs.Int("ch-port", envOrDefaultInt("CLICKHOUSE_PORT", 9000), "ClickHouse port")
	chUser := fs.String("ch-user", envOrDefault("CLICKHOUSE_USER", "default"), "ClickHouse user")
	chPassword := fs.String("ch-password", envOrDefault("CLICKHOUSE_PASSWORD", ""), "ClickHouse password")
	chDatabase := fs.String("ch-database", envOrDefault("CLICKHOUSE_DATABASE", "avherald"), "ClickHouse database")
	sf := addStoreFlags(fs)
	_ = fs.Parse(args)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	store, err := sf.open(ctx)
	if err != nil {
		fatalf("open store: %v", err)
	}
	defer func() { _ = store.Close() }()

	var publisher *feed.Publisher
	if *natsURL != "" {
		publisher, err = feed.Connect(*natsURL, *subject)
		if err != nil {
			fatalf("connect feed: %v", err)
		}
		defer publisher.Close()
	}

	var archiveDB *storage.ClickHouseDB
	if *archive {
		archiveDB, err = storage.OpenClickHouse(ctx, storage.ClickHouseConfig{
			Host:     *chHost,
			Port:     *chPort,
			User:     *chUser,
			Password: *chPassword,
			Database: *chDatabase,
		})
		if err != nil {
			fatalf("open archive: %v", err)
		}
		defer func() { _ = archiveDB.Close() }()
	}

	metrics := observability.NewMetrics()
	parser := headline.NewParser(headline.DefaultCatalog())
	parser.Verbose = *verbose
	s := scraper.New(*baseURL, parser, metrics)
	s.Verbose = *verbose

	totalInserted, totalSkipped := 0, 0
	sink := func(ctx context.Context, incidents []incident.Incident) error {
		var fresh []incident.Incident
		for _, inc := range incidents {
			ok, err := store.InsertIncident(ctx, inc)
			if err != nil {
				return err
			}
			if ok {
				fresh = append(fresh, inc)
				metrics.IncidentsInserted.Inc()
			} else {
				metrics.IncidentsSkipped.Inc()
			}
		}
		totalInserted += len(fresh)
		totalSkipped += len(incidents) - len(fresh)

		if publisher != nil {
			if err := publisher.PublishAll(fresh); err != nil {
				log.Printf("feed publish failed: %v", err)
			}
		}
		if archiveDB != nil {
			if err := archiveDB.ArchiveIncidents(ctx, fresh); err != nil {
				log.Printf("archive failed: %v", err)
			}
		}
		if *verbose {
			log.Printf("inserted %d incidents, skipped %d (already stored)", len(fresh), len(incidents)-len(fresh))
		}
		return nil
	}

	stats, err := s.Crawl(ctx, scraper.CrawlConfig{
		MaxPages: *maxPages,
		Delay:    time.Duration(*delay) * time.Second,
	}, sink)
	if err != nil {
		fatalf("crawl: %v", err)
	}

	log.Printf("finished: %d pages, %d headlines, %d incidents (%d new, %d skipped)",
		stats.Pages, stats.Headlines, stats.Incidents, totalInserted, totalSkipped)
}

// ParseOut pairs a raw headline with its parsed entries for JSON output.
type ParseOut struct {
	Headline string           `json:"headline"`
	Entries  []headline.Entry `json:"entries"`
}

func runParse(args []string) {
	fs := flag.NewFlagSet("parse", flag.ExitOnError)
	inPath := fs.String("input", "", "Input file with one headline per line (default: stdin)")
	outPath := fs.String("output", "", "Output JSON file (default: stdout)")
	pretty := fs.Bool("pretty", false, "Pretty-print JSON output")
	verbose := fs.Bool("verbose", false, "Print diagnostics for degraded parses")
	_ = fs.Parse(args)

	var r io.Reader = os.Stdin
	if *inPath != "" {
		f, err := os.Open(*inPath)
		if err != nil {
			fatalf("open input: %v", err)
		}
		defer f.Close()
		r = f
	}

	parser := headline.NewParser(headline.DefaultCatalog())
	parser.Verbose = *verbose

	out := make([]ParseOut, 0, 64)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		out = append(out, ParseOut{Headline: line, Entries: parser.ProcessTitle(line)})
	}
	if err := scanner.Err(); err != nil {
		fatalf("read input: %v", err)
	}

	var w io.Writer = os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			fatalf("create output: %v", err)
		}
		defer f.Close()
		w = f
	}

	var enc []byte
	var err error
	if *pretty {
		enc, err = json.MarshalIndent(out, "", "  ")
	} else {
		enc, err = json.Marshal(out)
	}
	if err != nil {
		fatalf("encode output: %v", err)
	}
	_, _ = w.Write(enc)
	if w == os.Stdout {
		_, _ = w.Write([]byte("\n"))
	}
}

func runStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	mode := fs.String("mode", "both", "Which counts to print: airline, aircraft or both")
	limit := fs.Int("limit", 0, "Show only the top N rows (0 = all)")
	sf := addStoreFlags(fs)
	_ = fs.Parse(args)

	if *mode != "airline" && *mode != "aircraft" && *mode != "both" {
		fatalf("invalid mode %q (valid: airline, aircraft, both)", *mode)
	}

	ctx := context.Background()
	store, err := sf.open(ctx)
	if err != nil {
		fatalf("open store: %v", err)
	}
	defer func() { _ = store.Close() }()

	if *mode == "airline" || *mode == "both" {
		printCounts(ctx, store, "airline", *limit)
	}
	if *mode == "aircraft" || *mode == "both" {
		printCounts(ctx, store, "aircraft", *limit)
	}
}

func printCounts(ctx context.Context, store storage.IncidentStore, column string, limit int) {
	counts, err := store.CountBy(ctx, column, limit)
	if err != nil {
		fatalf("count by %s: %v", column, err)
	}
	fmt.Printf("\nIncidents by %s:\n", column)
	if len(counts) == 0 {
		fmt.Println("  (no data)")
		return
	}
	for _, c := range counts {
		fmt.Printf("  %s %d\n", c.Label, c.Total)
	}
}

func runServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	port := fs.Int("port", envOrDefaultInt("API_PORT", 8081), "HTTP port for the API server")
	sf := addStoreFlags(fs)
	_ = fs.Parse(args)

	ctx := context.Background()
	store, err := sf.open(ctx)
	if err != nil {
		fatalf("open store: %v", err)
	}
	defer func() { _ = store.Close() }()

	if err := api.NewServer(store, *port).Run(); err != nil {
		fatalf("serve: %v", err)
	}
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrDefaultInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("warning: invalid integer for %s=%q, falling back to %d", key, v, fallback)
		return fallback
	}
	return n
}

func envOrDefaultBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	log.Printf("warning: invalid boolean for %s=%q, falling back to %v", key, v, fallback)
	return fallback
}

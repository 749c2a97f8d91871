package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/supportlens/ticketlens/internal/config"
	"github.com/supportlens/ticketlens/internal/dataset"
	"github.com/supportlens/ticketlens/internal/engine"
	"github.com/supportlens/ticketlens/internal/service"
	"github.com/supportlens/ticketlens/internal/store"
	"github.com/supportlens/ticketlens/pkg/cache"
)

func main() {
	_ = godotenv.Load(".env")

	var (
		datasetID = flag.String("dataset", "", "dataset id from the registry")
		query     = flag.String("query", "analytics", "query to run: analytics, list or flags")
		vertical  = flag.String("vertical", "", "filter: exact vertical")
		product   = flag.String("product", "", "filter: exact product")
		status    = flag.String("status", "", "filter: exact status")
		priority  = flag.String("priority", "", "filter: exact priority")
		source    = flag.String("source", "", "filter: exact source")
		search    = flag.String("search", "", "filter: free-text over ticket id and product")
		sev1Only  = flag.Bool("sev1", false, "filter: SEV1 tickets only")
		patterns  = flag.String("patterns", "", "filter: comma-separated pattern ids, all required")
		sortKey   = flag.String("sort", string(service.SortByPatterns), "list sort: patterns, updated or created")
		offset    = flag.Int("offset", 0, "list page offset")
		limit     = flag.Int("limit", 50, "list page size")
		ticketID  = flag.Int("ticket", 0, "ticket id for the flags query")
	)
	flag.Parse()

	cfg := config.LoadFromEnv()

	logger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	registry, err := dataset.LoadRegistry(cfg.DatasetsFile)
	if err != nil {
		logger.Fatal("Failed to load dataset registry", zap.Error(err))
	}

	var resultCache engine.Cacher
	if cfg.CacheEnabled {
		c, err := cache.New(ctx, cache.WithAddress(cfg.RedisAddr))
		if err != nil {
			logger.Fatal("Failed to connect result cache", zap.Error(err))
		}
		defer c.Close()
		resultCache = c
	}

	eng := engine.New(registry, store.New(logger), resultCache, logger, cfg.CacheTTL)

	if *datasetID == "" {
		logger.Fatal("A dataset id is required", zap.Strings("available", registry.IDs()))
	}

	f := service.Filter{
		Vertical: *vertical,
		Product:  *product,
		Status:   *status,
		Priority: *priority,
		Source:   *source,
		Search:   *search,
		Sev1Only: *sev1Only,
	}
	if *patterns != "" {
		f.Patterns = service.FilterPatterns(strings.Split(*patterns, ","))
	}

	var result any
	switch *query {
	case "analytics":
		result, err = eng.GetAnalytics(ctx, *datasetID, f)
	case "list":
		result, err = eng.ListTickets(ctx, *datasetID, f, service.SortKey(*sortKey), *offset, *limit)
	case "flags":
		result, err = eng.GetDerivedFlags(ctx, *datasetID, *ticketID)
	default:
		logger.Fatal("Unknown query", zap.String("query", *query))
	}
	if err != nil {
		logger.Fatal("Query failed", zap.String("query", *query), zap.Error(err))
	}

	out := json.NewEncoder(os.Stdout)
	out.SetIndent("", "  ")
	if err := out.Encode(result); err != nil {
		fmt.Fprintf(os.Stderr, "encode result: %v\n", err)
		os.Exit(1)
	}
}

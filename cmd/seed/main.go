package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"

	"github.com/landlordlink/landlordlink-services/api/internal/config"
	"github.com/landlordlink/landlordlink-services/api/internal/server"
	"github.com/landlordlink/landlordlink-services/api/internal/submission/application"
	"github.com/landlordlink/landlordlink-services/api/internal/submission/domain"
)

type seedOptions struct {
	leadCount  int
	demoCount  int
	randomSeed int64
}

var (
	firstNames     = []string{"Jane", "Sam", "Priya", "Tom", "Aisha", "Oliver", "Mei", "Lucas"}
	lastNames      = []string{"Doe", "Patel", "Nguyen", "Smith", "Okafor", "Brown", "Garcia"}
	companies      = []string{"Acme Lettings", "Northside Homes", "Harbour Property Co", "Elm Street Rentals"}
	portfolioSizes = []string{"1-10", "11-50", "51-200", "200+"}
	sources        = []string{"hero", "mid-cta", "pricing", "footer"}
)

func main() {
	opts := parseFlags()
	cfg := config.Load()
	logger := cfg.ServerLog

	ctx := context.Background()
	store, err := server.OpenStore(ctx, cfg)
	if err != nil {
		logger.Fatalf("ストアの初期化に失敗しました: %v", err)
	}
	if closer, ok := store.(interface{ Disconnect(context.Context) error }); ok {
		defer func() {
			if err := closer.Disconnect(ctx); err != nil {
				logger.Printf("ストア切断時にエラー: %v", err)
			}
		}()
	}

	svc := application.NewSubmissionService(application.Config{Store: store, StoreTimeout: cfg.StoreTimeout})
	rng := rand.New(rand.NewSource(opts.randomSeed))

	if err := seed(ctx, logger, svc, domain.EntityLead, opts.leadCount, func() map[string]any { return samplePayload(rng, true) }); err != nil {
		logger.Fatalf("lead の投入に失敗しました: %v", err)
	}
	if err := seed(ctx, logger, svc, domain.EntityDemoRequest, opts.demoCount, func() map[string]any { return samplePayload(rng, false) }); err != nil {
		logger.Fatalf("demorequest の投入に失敗しました: %v", err)
	}
}

func parseFlags() seedOptions {
	var opts seedOptions
	flag.IntVar(&opts.leadCount, "leads", 5, "number of sample leads to insert")
	flag.IntVar(&opts.demoCount, "demos", 2, "number of sample demo requests to insert")
	flag.Int64Var(&opts.randomSeed, "seed", 42, "random seed for sample data")
	flag.Parse()

	if opts.leadCount < 0 || opts.demoCount < 0 {
		fmt.Fprintln(os.Stderr, "counts must be zero or positive")
		os.Exit(2)
	}
	return opts
}

func seed(ctx context.Context, logger *log.Logger, svc application.SubmissionService, entity domain.EntityType, count int, payload func() map[string]any) error {
	for i := 0; i < count; i++ {
		receipt, err := svc.Submit(ctx, entity, payload())
		if err != nil {
			return err
		}
		logger.Printf("inserted %s id=%s", receipt.Collection, receipt.ID)
	}
	return nil
}

// samplePayload builds a raw form body; optional fields are left out at random so both shapes get stored.
func samplePayload(rng *rand.Rand, lead bool) map[string]any {
	first := pick(rng, firstNames)
	last := pick(rng, lastNames)
	payload := map[string]any{
		"name":  first + " " + last,
		"email": fmt.Sprintf("%s.%s+%d@example.com", strings.ToLower(first), strings.ToLower(last), rng.Intn(10000)),
	}
	if rng.Intn(2) == 0 {
		payload["company"] = pick(rng, companies)
	}
	if rng.Intn(2) == 0 {
		payload["portfolio_size"] = pick(rng, portfolioSizes)
	}
	if rng.Intn(3) == 0 {
		payload["message"] = "Looking to move our rent collection online."
	}
	payload["source"] = pick(rng, sources)
	if lead && rng.Intn(2) == 0 {
		payload["preference"] = string(domain.PreferenceDemo)
	}
	return payload
}

func pick(rng *rand.Rand, values []string) string {
	return values[rng.Intn(len(values))]
}

// README: Entry point; loads config, wires providers, AI and services, starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"giftgenie/internal/ai"
	"giftgenie/internal/cache"
	"giftgenie/internal/config"
	httptransport "giftgenie/internal/http"
	"giftgenie/internal/infra"
	"giftgenie/internal/modules/blog"
	"giftgenie/internal/modules/gifts"
	"giftgenie/internal/modules/usage"
	"giftgenie/internal/providers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var generator ai.Generator
	if cfg.AI.GeminiKey != "" {
		gemini, err := ai.NewGeminiGenerator(ctx, cfg.AI.GeminiKey, cfg.AI.Model)
		if err != nil {
			log.Fatalf("gemini init: %v", err)
		}
		defer gemini.Close()
		generator = gemini
	} else {
		log.Println("GEMINI_API_KEY not set; gift generation disabled")
	}

	var provider providers.Provider
	switch cfg.Gifts.Provider {
	case config.ProviderAllegro:
		provider = providers.NewAllegroClient(
			cfg.Allegro.ClientID, cfg.Allegro.ClientSecret,
			cfg.Allegro.APIURL, cfg.Allegro.AuthURL)
	default:
		provider = providers.NewCeneoClient(
			cfg.Ceneo.APIKey, cfg.Ceneo.PartnerID, cfg.Ceneo.APIURL)
	}

	var usageSvc *usage.Service
	if cfg.DB.DSN != "" {
		dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			log.Fatal(err)
		}
		defer dbPool.Close()
		usageSvc = usage.NewService(usage.NewStore(dbPool))
	} else {
		log.Println("GIFT_DB_DSN not set; usage quota and logging disabled")
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = infra.NewRedis(cfg.Redis.Addr)
		defer redisClient.Close()
	}

	giftSvc := gifts.NewService(generator, provider, cache.New(), cfg.Gifts.Provider)
	blogSvc := blog.NewService(cfg.Blog.Dir)

	handler := httptransport.NewRouter(httptransport.RouterDeps{
		Gifts:     giftSvc,
		Usage:     usageSvc,
		Blog:      blogSvc,
		Redis:     redisClient,
		Model:     cfg.AI.Model,
		PerMinute: cfg.RateLimit.PerMinute,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Printf("listening on %s (provider=%s)", cfg.HTTP.Addr, cfg.Gifts.Provider)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

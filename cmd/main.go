package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	_ "github.com/joho/godotenv/autoload"

	"adforge/pkg/adgen"
	"adforge/pkg/cache"
	"adforge/pkg/config"
	"adforge/pkg/inference"
	"adforge/pkg/marketing"
	"adforge/pkg/queue"
	"adforge/pkg/queue/stability"
	"adforge/pkg/research"
	"adforge/pkg/server"
	"adforge/pkg/store"
)

func main() {
	ctx, done := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config", "err", err)
	}

	inf, err := inference.New(cfg.Provider, cfg.APIKey(), cfg.Model())
	if err != nil {
		log.Fatal("inference", "err", err)
	}
	if cfg.Provider == "openai" && cfg.OpenAIKey == "" {
		// No key means a local OpenAI-compatible endpoint.
		if openAI, ok := inf.(*inference.OpenAI); ok {
			openAI.ChangeBaseURL("http://localhost:1234/v1")
			openAI.SetModel("")
			log.Info("no OPENAI_API_KEY set, using local endpoint")
		}
	}

	st, err := store.Open(cfg.StorePath)
	if err != nil {
		log.Fatal("open store", "path", cfg.StorePath, "err", err)
	}

	manager := cache.NewManager(st, cache.WithExpiry(cfg.CacheTTL))

	researcher := research.NewAgent(inf, research.NewTavily(cfg.TavilyKey), manager)
	marketer := marketing.NewAgent(inf, manager, st, cfg.NumCampaigns)

	var imageQueue queue.Queue
	if cfg.StabilityKey != "" {
		q := stability.New(cfg.StabilityKey)
		q.Start()
		defer q.Stop()
		imageQueue = q
	} else {
		log.Warn("no STABILITY_API_KEY set, image generation disabled")
	}

	creative := adgen.NewCreativeAgent(inf, manager)
	orchestrator := adgen.NewOrchestrator(creative, imageQueue, cfg.OutputDir)

	srv := server.NewServer(ctx, researcher, marketer, orchestrator, manager, st)

	finishedShutDown := make(chan struct{})
	go func() {
		<-ctx.Done()
		if err := srv.Shutdown(context.Background()); err != nil {
			log.Error("shutdown", "err", err)
		}
		done()
		close(finishedShutDown)
	}()

	if err := srv.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server", "err", err)
	}
	<-finishedShutDown
}

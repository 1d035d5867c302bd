package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ritanks-GrowthHacker/SA-Ticketing-sub001/internal/access"
	"github.com/ritanks-GrowthHacker/SA-Ticketing-sub001/internal/comments"
	"github.com/ritanks-GrowthHacker/SA-Ticketing-sub001/internal/config"
	"github.com/ritanks-GrowthHacker/SA-Ticketing-sub001/internal/database"
	"github.com/ritanks-GrowthHacker/SA-Ticketing-sub001/internal/handlers"
	"github.com/ritanks-GrowthHacker/SA-Ticketing-sub001/internal/notify"
	"github.com/ritanks-GrowthHacker/SA-Ticketing-sub001/internal/repository"
	"github.com/ritanks-GrowthHacker/SA-Ticketing-sub001/internal/repository/memory"
	"github.com/ritanks-GrowthHacker/SA-Ticketing-sub001/internal/repository/postgres"
	"github.com/ritanks-GrowthHacker/SA-Ticketing-sub001/internal/router"
	"github.com/ritanks-GrowthHacker/SA-Ticketing-sub001/pkg/logger"
)

func main() {
	// config + logger
	cfg := config.Load()
	l := logger.New(cfg.Env)

	// storage: postgres, or the in-process backend for local runs
	var commentRepo repository.CommentRepository
	var factsLoader repository.AccessFactsLoader
	if cfg.DBURL == "memory" {
		mem := memory.NewStore()
		commentRepo, factsLoader = mem, mem
		l.Warn().Msg("running on the in-memory backend; data will not survive a restart")
	} else {
		pool, err := database.Open(context.Background(), cfg)
		if err != nil {
			l.Fatal().Err(err).Msg("db connect failed")
		}
		defer pool.Close()
		if err := database.Migrate(context.Background(), pool); err != nil {
			l.Fatal().Err(err).Msg("db migrate failed")
		}
		commentRepo = postgres.NewCommentRepo(pool)
		factsLoader = postgres.NewAccessRepo(pool)
	}

	// core
	resolver := access.NewResolver(factsLoader)
	store := comments.NewStore(commentRepo, resolver)

	var notifier notify.Notifier
	if cfg.WebhookURL != "" {
		notifier = notify.NewWebhook(cfg.WebhookURL)
	} else {
		notifier = notify.NewLog(l)
	}

	// http
	ch := handlers.NewCommentHTTP(store, notifier, l)
	r := router.New(l, cfg, ch)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		l.Info().Str("addr", srv.Addr).Msg("api listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Fatal().Err(err).Msg("server error")
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	l.Info().Msg("shutdown complete")
}

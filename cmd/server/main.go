package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/johnmikes100/concierge/internal/adapters/apiclient"
	"github.com/johnmikes100/concierge/internal/adapters/memory"
	resendadapter "github.com/johnmikes100/concierge/internal/adapters/resend"
	sqliteadapter "github.com/johnmikes100/concierge/internal/adapters/sqlite"
	"github.com/johnmikes100/concierge/internal/config"
	"github.com/johnmikes100/concierge/internal/handlers"
	"github.com/johnmikes100/concierge/internal/ports"
	"github.com/johnmikes100/concierge/internal/submission"
	"github.com/johnmikes100/concierge/internal/survey"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	var store ports.SessionStore
	switch cfg.SessionStore {
	case config.StoreMemory:
		store = memory.NewSessions()
	default:
		repo, err := sqliteadapter.New(cfg.DBPath)
		if err != nil {
			log.Fatalf("failed to open database: %v", err)
		}
		defer repo.Close()
		store = repo
	}

	mailer, err := resendadapter.New(resendadapter.Config{
		APIKey:  cfg.ResendAPIKey,
		Timeout: cfg.SendTimeout,
	})
	if err != nil {
		log.Fatalf("failed to create mailer: %v", err)
	}
	if cfg.ResendAPIKey == "" {
		slog.Warn("RESEND_API_KEY is not set; every send will fail")
	}

	svc := submission.New(submission.Config{
		From:             cfg.From,
		AdminAddress:     cfg.AdminEmail,
		AttachSummaryPDF: cfg.AttachPDF,
	}, mailer)

	h := handlers.New(store, svc, survey.WithTransitionDelay(cfg.TransitionDelay))
	if cfg.SubmitURL != "" {
		h.UseSubmitter(&apiclient.Client{
			BaseURL: cfg.SubmitURL,
			HTTP:    &http.Client{Timeout: 2 * cfg.SendTimeout},
		})
		slog.Info("survey submissions forwarded", "url", cfg.SubmitURL)
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctrlc
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	slog.Info("Concierge running", "url", "http://localhost:"+cfg.Port, "store", cfg.SessionStore, "db", cfg.DBPath)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server closed", "err", err)
		os.Exit(1)
	}
	slog.Info("server closed")
}

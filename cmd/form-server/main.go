package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"admissions-forms/internal/catalogue"
	"admissions-forms/internal/common/aws"
	"admissions-forms/internal/common/config"
	"admissions-forms/internal/common/database"
	"admissions-forms/internal/common/logger"
	"admissions-forms/internal/mailer"
	"admissions-forms/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format)
	log.Info("starting form server", map[string]interface{}{
		"app":         cfg.App.Name,
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redis, err := connectRedis(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Error("redis unavailable, exiting", nil)
		os.Exit(1)
	}
	defer redis.Close()

	cat, err := catalogue.Load(cfg.Catalogue.Path)
	if err != nil {
		log.Error("catalogue load failed, exiting", map[string]interface{}{"error": err})
		os.Exit(1)
	}
	log.Info("programme catalogue loaded", map[string]interface{}{
		"programmes": len(cat.Programmes),
		"levels":     cat.Levels(),
	})

	var mail mailer.Mailer
	if cfg.AWS.SES.Enabled {
		sesClient, err := aws.NewSESClient(ctx, cfg.AWS.Region)
		if err != nil {
			log.Error("SES client init failed, exiting", map[string]interface{}{"error": err})
			os.Exit(1)
		}
		mail = mailer.NewSESMailer(sesClient, log)
	} else {
		log.Warn("SES disabled, emails will be logged only", nil)
		mail = mailer.NewLogMailer(log)
	}

	srv := server.New(server.Options{
		Logger:         log,
		Mailer:         mail,
		Redis:          redis,
		Catalogue:      cat,
		RecipientEmail: cfg.Forms.RecipientEmail,
		FromEmail:      cfg.Forms.FromEmail,
		AllowedOrigin:  cfg.Server.AllowedOrigin,
		DraftTTL:       time.Duration(cfg.Forms.DraftTTL) * time.Second,
		AppName:        cfg.App.Name,
		AppVersion:     cfg.App.Version,
	})

	httpSrv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      srv.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: time.Duration(cfg.Server.RequestTimeout) * time.Millisecond,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", map[string]interface{}{"addr": httpSrv.Addr})
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received", nil)
	case err := <-errCh:
		log.Error("server stopped unexpectedly", map[string]interface{}{"error": err})
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", map[string]interface{}{"error": err})
	}
	log.Info("form server stopped", nil)
}

// connectRedis pings with backoff so a restarting Redis container does not
// take the server down with it.
func connectRedis(ctx context.Context, cfg *config.Config, log logger.Logger) (*database.RedisClient, error) {
	client, err := database.NewRedis(cfg.Database.Redis)
	if err != nil {
		return nil, err
	}

	backoff := time.Second
	for attempt := 1; attempt <= 5; attempt++ {
		if err = client.Ping(ctx); err == nil {
			log.Info("redis connected", map[string]interface{}{"address": cfg.Database.Redis.Address})
			return client, nil
		}
		log.Warn("redis ping failed, retrying", map[string]interface{}{
			"attempt": attempt,
			"error":   err,
		})
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return nil, err
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"newscaster/internal/ai"
	"newscaster/internal/httpapi"
	"newscaster/internal/mailer"
	"newscaster/internal/news"
	"newscaster/internal/newsapi"
	"newscaster/internal/notify"
	"newscaster/internal/podcast"
	"newscaster/internal/redisclient"
	"newscaster/internal/storage"
	"newscaster/internal/user"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		// Redis client
		rdb := redisclient.New(cfg.Redis)
		defer rdb.Close()
		store := storage.NewRedisStore(rdb)

		if cfg.NewsAPI.APIKey == "" {
			return fmt.Errorf("newsapi config missing: set newsapi.api_key in config.yaml")
		}
		if cfg.OpenAI.APIKey == "" {
			return fmt.Errorf("openai config missing: set openai.api_key in config.yaml")
		}

		aiClient, err := ai.NewOpenAI(ai.Config{
			APIKey:         cfg.OpenAI.APIKey,
			Model:          cfg.OpenAI.Model,
			BaseURL:        cfg.OpenAI.BaseURL,
			SummaryAPIKey:  cfg.OpenAI.SummaryAPIKey,
			SummaryModel:   cfg.OpenAI.SummaryModel,
			SummaryBaseURL: cfg.OpenAI.SummaryBaseURL,
			SpeechModel:    cfg.OpenAI.SpeechModel,
			SpeechVoice:    cfg.OpenAI.SpeechVoice,
		})
		if err != nil {
			return err
		}

		searcher := newsapi.NewClient(cfg.NewsAPI.BaseURL, cfg.NewsAPI.APIKey)
		fetcher := news.NewFetcher(searcher, cfg.NewsAPI.PageSize)
		newsSvc := news.NewService(store, fetcher, aiClient)
		podcastSvc := podcast.NewService(store, aiClient, aiClient)

		mail := mailer.New(cfg.Mail.APIKey, cfg.Mail.Sender)
		notifier := notify.New(store, newsSvc, mail, cfg.Mail.DigestSubject)
		userSvc := user.NewService(store, podcastSvc, notifier, mail)

		api := httpapi.NewServer(userSvc, newsSvc, podcastSvc)
		srv := &http.Server{
			Addr:    cfg.Server.Addr,
			Handler: api.Router(),
		}

		// Signal handling for systemd
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
		errc := make(chan error, 1)
		go func() {
			slog.Info("serve: listening", "addr", cfg.Server.Addr)
			errc <- srv.ListenAndServe()
		}()

		select {
		case s := <-sigc:
			slog.Info("serve: received signal, shutting down", "signal", s.String())
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		case err := <-errc:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

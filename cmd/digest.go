package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"newscaster/internal/ai"
	"newscaster/internal/mailer"
	"newscaster/internal/news"
	"newscaster/internal/newsapi"
	"newscaster/internal/notify"
	"newscaster/internal/redisclient"
	"newscaster/internal/storage"

	"github.com/spf13/cobra"
)

// digestCmd sends one digest email on demand, bypassing the login gate.
var digestCmd = &cobra.Command{
	Use:   "digest <username>",
	Short: "Send a news digest email to a user now",
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) < 1 {
			return errors.New("requires <username>")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if cfg.Mail.APIKey == "" || cfg.Mail.Sender == "" {
			return fmt.Errorf("mail config missing: set mail.api_key and mail.sender in config.yaml")
		}

		rdb := redisclient.New(cfg.Redis)
		defer rdb.Close()
		store := storage.NewRedisStore(rdb)

		aiClient, err := ai.NewOpenAI(ai.Config{
			APIKey:         cfg.OpenAI.APIKey,
			Model:          cfg.OpenAI.Model,
			BaseURL:        cfg.OpenAI.BaseURL,
			SummaryAPIKey:  cfg.OpenAI.SummaryAPIKey,
			SummaryModel:   cfg.OpenAI.SummaryModel,
			SummaryBaseURL: cfg.OpenAI.SummaryBaseURL,
		})
		if err != nil {
			return err
		}

		searcher := newsapi.NewClient(cfg.NewsAPI.BaseURL, cfg.NewsAPI.APIKey)
		fetcher := news.NewFetcher(searcher, cfg.NewsAPI.PageSize)
		newsSvc := news.NewService(store, fetcher, aiClient)
		mail := mailer.New(cfg.Mail.APIKey, cfg.Mail.Sender)
		notifier := notify.New(store, newsSvc, mail, cfg.Mail.DigestSubject)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		username := args[0]
		u, err := store.GetUser(ctx, username)
		if err != nil {
			return err
		}
		// clear the gate so the send is unconditional
		u.LastEmailSent = nil
		notifier.MaybeSendDigest(ctx, u)
		fmt.Fprintf(cmd.OutOrStdout(), "Digest attempted for %s\n", username)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(digestCmd)
}

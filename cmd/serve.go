package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/reeses-sketch/WTF-is-this-site/config"
	"github.com/reeses-sketch/WTF-is-this-site/internal/analyzer"
	"github.com/reeses-sketch/WTF-is-this-site/internal/api"
	"github.com/reeses-sketch/WTF-is-this-site/internal/fetcher"
	"github.com/reeses-sketch/WTF-is-this-site/internal/playground"
	"github.com/reeses-sketch/WTF-is-this-site/internal/slack"
	"github.com/reeses-sketch/WTF-is-this-site/internal/store"
)

// serveCmd is the cobra command that starts the API server
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "start the api server",
	Run: func(cmd *cobra.Command, _ []string) {
		err := serve(cmd.Context())
		cobra.CheckErr(err)
	},
}

// init registers the serve command and its flags on the root command
func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.PersistentFlags().String("config", "./config/.config.yaml", "config file location")
}

// serve initializes dependencies and starts the API server
func serve(ctx context.Context) error {
	cfgPath := k.String("config")

	cfg, err := config.Load(&cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	cfg.Server.Debug = k.Bool("debug")
	cfg.Server.Pretty = k.Bool("pretty")

	st, err := store.Open(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}

	defer func() { _ = st.Close() }()

	eng, err := setupAnalyzer(cfg)
	if err != nil {
		return fmt.Errorf("setting up analyzer: %w", err)
	}

	pg, err := playground.New(setupFetcher(cfg), st)
	if err != nil {
		return fmt.Errorf("setting up playground: %w", err)
	}

	slackClient := setupSlack(cfg)

	handler := api.NewRouter(api.RouterConfig{
		Analyzer:    eng,
		Store:       st,
		Playground:  pg,
		Notifier:    slackClient,
		TokenSecret: cfg.Auth.TokenSecret,
		MaxBodySize: cfg.Server.MaxBodySize,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Listen,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownGracePeriod)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown error")
		}
	}()

	log.Info().Str("listen", cfg.Server.Listen).Str("storage", cfg.Storage.Path).Msg("starting site analysis service")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}

	return nil
}

// setupFetcher builds the outbound HTTP client from config
func setupFetcher(cfg *config.Config) *fetcher.Client {
	opts := []fetcher.Option{
		fetcher.WithTimeout(cfg.Analyzer.FetchTimeout),
		fetcher.WithMaxBodyBytes(cfg.Analyzer.MaxBodyBytes),
	}

	if cfg.Analyzer.UserAgent != "" {
		opts = append(opts, fetcher.WithUserAgent(cfg.Analyzer.UserAgent))
	}

	return fetcher.New(opts...)
}

// setupAnalyzer builds the analysis engine from config
func setupAnalyzer(cfg *config.Config) (*analyzer.Analyzer, error) {
	return analyzer.New(
		setupFetcher(cfg),
		analyzer.WithBulkConcurrency(cfg.Analyzer.BulkConcurrency),
		analyzer.WithBulkRate(cfg.Analyzer.BulkRate),
	)
}

// setupSlack initializes the Slack webhook client from config, returning nil when unconfigured
func setupSlack(cfg *config.Config) *slack.Client {
	if cfg.Slack.WebhookURL == "" {
		log.Info().Msg("slack notifications not configured, skipping")
		return nil
	}

	client, err := slack.New(
		cfg.Slack.WebhookURL,
		slack.WithHTTPClient(&http.Client{Timeout: cfg.Slack.RequestTimeout}),
	)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize slack client")
		return nil
	}

	log.Info().Msg("slack notifications configured")

	return client
}

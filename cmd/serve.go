// cmd/serve.go
package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/tlycrimson/bot-website-api/internal/config"
	"github.com/tlycrimson/bot-website-api/internal/db"
	"github.com/tlycrimson/bot-website-api/internal/log"
	"github.com/tlycrimson/bot-website-api/internal/oauth"
	"github.com/tlycrimson/bot-website-api/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Bot API server",
	Long:  `Starts the HTTP server with the Discord login flow and the roster API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		// CLI flags override the environment
		if cmd.Flags().Changed("db") {
			cfg.DBPath, _ = cmd.Flags().GetString("db")
		}
		if cmd.Flags().Changed("port") {
			cfg.Port, _ = cmd.Flags().GetInt("port")
		}
		if cmd.Flags().Changed("host") {
			cfg.Host, _ = cmd.Flags().GetString("host")
		}

		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		log.Init(&log.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

		database, err := db.New(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer database.Close()

		// Run migrations in case schema is outdated
		if err := database.RunMigrations(); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		origins, err := oauth.NewOriginSet(cfg.AllowedOrigins, cfg.DefaultOrigin)
		if err != nil {
			return fmt.Errorf("invalid origin configuration: %w", err)
		}
		if origins.Permissive() {
			log.Warn("no frontend origins configured; any redirect origin will be accepted")
		}

		states, err := newStateStore(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer states.Close()

		provider := oauth.NewDiscordProvider(oauth.Config{
			ClientID:     cfg.Discord.ClientID,
			ClientSecret: cfg.Discord.ClientSecret,
			RedirectURL:  cfg.Discord.RedirectURI,
		})

		srv := server.New(database, server.Config{
			JWTSecret:  cfg.JWTSecret,
			SessionTTL: cfg.SessionTTL,
			Provider:   provider,
			States:     states,
			Origins:    origins,
		})

		errCh := make(chan error, 1)
		go func() {
			if cfg.HTTPSDomain != "" {
				fmt.Printf("Starting Bot API with HTTPS for %s\n", cfg.HTTPSDomain)
				errCh <- srv.ListenAndServeHTTPS(cfg.HTTPSDomain, cfg.HTTPSCertDir)
				return
			}
			addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
			fmt.Printf("Starting Bot API on %s\n", addr)
			fmt.Printf("  Login:       http://%s/auth/login\n", addr)
			fmt.Printf("  Leaderboard: http://%s/leaderboard\n", addr)
			errCh <- srv.ListenAndServe(addr)
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			if err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		case sig := <-quit:
			log.Info("shutting down", "signal", sig.String())
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		}
	},
}

// newStateStore builds the pending-login store named by configuration.
func newStateStore(ctx context.Context, cfg *config.Config) (oauth.StateStore, error) {
	switch cfg.StateBackend {
	case "redis":
		return oauth.NewRedisStore(ctx, oauth.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, cfg.StateTTL)
	default:
		return oauth.NewMemoryStore(cfg.StateTTL), nil
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("db", "", "Path to database file (overrides BOTAPI_DB_PATH)")
	serveCmd.Flags().IntP("port", "p", 0, "Port to listen on (overrides BOTAPI_PORT)")
	serveCmd.Flags().String("host", "", "Host to bind to (overrides BOTAPI_HOST)")
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/eringen/folio"
)

// configKeys are the folio.Config fields settable from folio.yaml or
// FOLIO_* environment variables.
var configKeys = []string{
	"name", "url", "description", "addr", "public_dir", "data_url",
	"fetch_timeout", "contact_key", "contact_endpoint", "session_secret",
	"cookie_secure",
}

// loadConfig reads .env, then folio.yaml (or cfgFile), then FOLIO_* variables.
// Later sources win.
func loadConfig(cfgFile string) (folio.Config, error) {
	var cfg folio.Config
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("folio")
		v.SetConfigType("yaml")
	}
	v.SetEnvPrefix("FOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range configKeys {
		if err := v.BindEnv(key); err != nil {
			return cfg, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || cfgFile != "" {
			return cfg, fmt.Errorf("read config: %w", err)
		}
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func newServeCmd() *cobra.Command {
	var (
		cfgFile string
		debug   bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the site",
		Long: `Serve the site over HTTP. Configuration comes from .env, an optional
folio.yaml, and FOLIO_* environment variables (FOLIO_SESSION_SECRET is
required, FOLIO_CONTACT_KEY enables the contact form).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cfgFile)
			if err != nil {
				return err
			}
			log, err := newLogger(debug)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			app := folio.New(cfg, folio.WithLogger(log))
			defer app.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() { errc <- app.Start() }()

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
			}
			log.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := app.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			return <-errc
		},
	}
	cmd.Flags().StringVar(&cfgFile, "config", "", "config file (default is ./folio.yaml)")
	cmd.Flags().BoolVar(&debug, "debug", false, "human-readable debug logging")
	return cmd
}

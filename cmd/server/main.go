package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"github.com/jrsteele09/eduflow/auth"
	"github.com/jrsteele09/eduflow/auth/flowrepo"
	"github.com/jrsteele09/eduflow/classroom/googleclassroom"
	"github.com/jrsteele09/eduflow/credential"
	"github.com/jrsteele09/eduflow/internal/config"
	"github.com/jrsteele09/eduflow/internal/metrics"
	"github.com/jrsteele09/eduflow/server"
	"github.com/jrsteele09/eduflow/sessions"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const sessionSweepInterval = 10 * time.Minute

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("failed to load .env")
	}
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Error running server")
	}
	log.Info().Msg("Server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Msgf("Recovered from panic: %v", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c, err := config.New()
	if err != nil {
		return err
	}
	setupLogging(c)
	displayAppname(c.GetAppName())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	creds, closeCreds, err := openCredentialRepo(c)
	if err != nil {
		return err
	}
	defer closeCreds()

	oauthConfig, err := loadOAuthConfig(c)
	if err != nil {
		return err
	}

	m := metrics.New()
	gateConfig := auth.GateConfig{
		Provider:    oauthConfig,
		Credentials: creds,
		Flows:       flowrepo.NewInMemoryRepo(),
		Scopes:      oauthConfig.Scopes,
		RevokeURL:   c.GetRevokeURL(),
		Metrics:     m,
	}
	if issuer := c.GetOIDCIssuer(); issuer != "" {
		gateConfig.Verifier = auth.NewLazyVerifier(issuer, oauthConfig.ClientID)
	}
	gate, err := auth.NewGate(gateConfig)
	if err != nil {
		return err
	}

	handler, err := server.New(c, server.Dependencies{
		Gate:       gate,
		Sessions:   sessions.NewInMemoryRepo(),
		Classrooms: googleclassroom.NewFactory(),
		Metrics:    m,
	})
	if err != nil {
		return err
	}
	go handler.SweepSessions(ctx, sessionSweepInterval)

	httpServer := &http.Server{
		Addr:              c.GetPort(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() { serveErr <- listenAndServe(httpServer) }()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}
	return shutdown(httpServer)
}

func setupLogging(c config.Config) {
	level, err := zerolog.ParseLevel(config.GetEnv("LOG_LEVEL", "info"))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if c.GetEnv() == config.EnvDev {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

// openCredentialRepo returns the configured credential store and a func that releases it.
func openCredentialRepo(c config.Config) (credential.Repo, func(), error) {
	if c.GetCredentialStore() == config.CredentialStoreBolt {
		if err := os.MkdirAll(c.GetDataFolder(), 0o700); err != nil {
			return nil, nil, fmt.Errorf("create data folder: %w", err)
		}
		repo, err := credential.OpenBoltRepo(filepath.Join(c.GetDataFolder(), "credential.db"))
		if err != nil {
			return nil, nil, err
		}
		return repo, func() {
			if err := repo.Close(); err != nil {
				log.Err(err).Msg("failed to close credential store")
			}
		}, nil
	}

	repo, err := credential.NewFileRepo(c.GetCredentialPath())
	if err != nil {
		return nil, nil, err
	}
	return repo, func() {}, nil
}

func loadOAuthConfig(c config.Config) (*oauth2.Config, error) {
	secrets, err := os.ReadFile(c.GetClientSecretsFile())
	if err != nil {
		return nil, fmt.Errorf("read client secrets %s: %w", c.GetClientSecretsFile(), err)
	}
	oauthConfig, err := google.ConfigFromJSON(secrets, c.GetScopes()...)
	if err != nil {
		return nil, fmt.Errorf("parse client secrets: %w", err)
	}
	oauthConfig.RedirectURL = c.GetRedirectURL()
	return oauthConfig, nil
}

func listenAndServe(server *http.Server) error {
	log.Info().Msgf("Server listening on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/moonblokz/telemetry-cli/internal/hubsim/apikey"
	"github.com/moonblokz/telemetry-cli/internal/hubsim/config"
	"github.com/moonblokz/telemetry-cli/internal/hubsim/handler"
	"github.com/moonblokz/telemetry-cli/internal/hubsim/relay"
	"github.com/moonblokz/telemetry-cli/internal/hubsim/server"
	"github.com/moonblokz/telemetry-cli/internal/hubsim/store"
	"github.com/moonblokz/telemetry-cli/internal/infra/buildinfo"
	"github.com/moonblokz/telemetry-cli/internal/infra/shutdown"
	"github.com/moonblokz/telemetry-cli/internal/infra/tlsroots"
	"github.com/moonblokz/telemetry-cli/internal/telemetry/logger"
	"github.com/moonblokz/telemetry-cli/internal/telemetry/metric"
)

const shutdownTimeout = 10 * time.Second

func newApp() *cli.App {
	return &cli.App{
		Name:    "telemetry-hubsim",
		Usage:   "Local telemetry hub simulator",
		Version: buildinfo.String(),
		Commands: []*cli.Command{
			serveCommand(),
			hashKeyCommand(),
		},
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the hub simulator",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file (TOML or YAML)",
				EnvVars: []string{"TELEMETRY_HUB_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "listen",
				Usage: "Override the listen address",
			},
		},
		Action: func(c *cli.Context) error {
			overrides := map[string]any{}
			if c.IsSet("listen") {
				overrides["listen"] = c.String("listen")
			}
			cfg, err := config.Load(c.String("config"), overrides)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			log, err := logger.New(logger.Config{
				Level:  cfg.Log.Level,
				Format: cfg.Log.Format,
				Output: c.App.ErrWriter,
			})
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			logger.SetDefault(log)

			return serve(cfg, log)
		},
	}
}

// hub is a wired simulator instance.
type hub struct {
	router http.Handler
	relay  relay.Relay
	store  *store.Store
}

func newHub(cfg *config.HubConfig, log logger.Logger) (*hub, error) {
	slogger := logger.Slog(log)
	metrics := metric.NewRegistry()

	st := store.New(cfg.Retention)
	metrics.MustRegister(st.Collector())

	h := &hub{store: st}
	if cfg.MQTT.Enabled() {
		rl, err := relay.Dial(relay.Options{
			Broker:   cfg.MQTT.Broker,
			ClientID: cfg.MQTT.Client,
			Username: cfg.MQTT.Username,
			Password: cfg.MQTT.Password,
			Topic:    cfg.MQTT.Topic,
			QoS:      byte(cfg.MQTT.QoS),
			Timeout:  cfg.MQTT.Timeout,
		}, log.With("component", "relay"))
		if err != nil {
			return nil, fmt.Errorf("init relay: %w", err)
		}
		h.relay = rl
	}

	h.router = server.NewRouter(&server.RouterConfig{
		Handler:    handler.New(st, h.relay, metrics, slogger),
		Verifier:   apikey.NewVerifier(cfg.API.Key, cfg.API.Hash),
		Metrics:    metrics,
		Logger:     log,
		RateLimit:  cfg.Rate.Limit,
		RateBurst:  cfg.Rate.Burst,
		TrustProxy: cfg.Proxy.Trusted,
	})
	return h, nil
}

func serve(cfg *config.HubConfig, log logger.Logger) error {
	log.Info("starting telemetry-hubsim",
		"version", buildinfo.Version,
		"config", config.Sanitize(cfg))

	h, err := newHub(cfg, log)
	if err != nil {
		return err
	}

	httpServer := server.New(cfg.Listen, h.router)
	shutdownHandler := shutdown.NewHandler(shutdownTimeout)

	listen := httpServer.ListenAndServe
	if cfg.TLS.Enabled() {
		certs, err := tlsroots.NewWatcher(cfg.TLS.Cert, cfg.TLS.Key,
			tlsroots.WithLogger(logger.Slog(log.With("component", "tls"))))
		if err != nil {
			return fmt.Errorf("load certificate: %w", err)
		}
		certs.StartAsync()
		shutdownHandler.OnShutdown(func(context.Context) error {
			certs.Stop()
			return nil
		})
		listen = func() error { return httpServer.ListenAndServeTLS(certs.ServerConfig()) }
	}

	// Hooks run in reverse order: HTTP first, then the relay.
	if h.relay != nil {
		shutdownHandler.OnShutdown(func(context.Context) error {
			log.Info("closing relay")
			return h.relay.Close()
		})
	}
	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("shutting down HTTP server")
		return httpServer.Shutdown(ctx)
	})

	serveErr := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", "addr", cfg.Listen, "tls", cfg.TLS.Enabled())
		if err := listen(); err != nil {
			log.Error("HTTP server error", "error", err)
			serveErr <- err
			shutdownHandler.Trigger()
		}
	}()

	if err := shutdownHandler.Wait(); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}

	select {
	case err := <-serveErr:
		return err
	default:
	}

	log.Info("server stopped gracefully")
	return nil
}

func hashKeyCommand() *cli.Command {
	return &cli.Command{
		Name:      "hash-key",
		Usage:     "Print the argon2id hash of an API key for api.hash",
		ArgsUsage: "[key]",
		Description: "Reads the key from the first argument, or from the first line of\n" +
			"standard input when no argument is given.",
		Action: func(c *cli.Context) error {
			key, err := readKey(c)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			hash, err := apikey.Hash(key)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, hash)
			return nil
		},
	}
}

func readKey(c *cli.Context) (string, error) {
	if c.NArg() > 1 {
		return "", errors.New("hash-key takes at most one argument")
	}

	key := c.Args().First()
	if c.NArg() == 0 {
		line, err := bufio.NewReader(c.App.Reader).ReadString('\n')
		if err != nil && line == "" {
			return "", errors.New("no key given")
		}
		key = line
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return "", errors.New("key must not be empty")
	}
	return key, nil
}

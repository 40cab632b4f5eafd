package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/jbdamask/dinebot/pkg/agent"
	"github.com/jbdamask/dinebot/pkg/config"
	"github.com/jbdamask/dinebot/pkg/events"
	"github.com/jbdamask/dinebot/pkg/llm"
	"github.com/jbdamask/dinebot/pkg/logging"
	"github.com/jbdamask/dinebot/pkg/store"
	"github.com/jbdamask/dinebot/pkg/tools"
)

// app holds the components every subcommand shares.
type app struct {
	cfg        *config.Config
	log        *logrus.Logger
	store      *store.JSONStore
	publisher  events.Publisher
	dispatcher *tools.Dispatcher
	resolver   *agent.Resolver
}

func newApp(path string) (*app, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return buildApp(cfg, logging.New(cfg.LogLevel, cfg.LogFormat))
}

func buildApp(cfg *config.Config, log *logrus.Logger) (*app, error) {
	client, err := llm.NewClient(cfg.Provider, cfg.APIKey, cfg.BaseURL, cfg.Model)
	if err != nil {
		return nil, err
	}
	if cfg.Offline() {
		log.Warn("no API key configured, running offline")
	}

	var pub events.Publisher = events.NopPublisher{}
	if cfg.RabbitMQURL != "" {
		pub = events.NewAMQPPublisher(cfg.RabbitMQURL, "")
	}
	pub = events.Logged(pub, log)

	st := store.NewJSONStore(cfg.DataDir)
	dispatcher := tools.NewDispatcher(tools.NewDefaultRegistry(st, pub), log)

	resolver := agent.New(client, dispatcher,
		agent.WithLogger(log),
		agent.WithTimeout(cfg.RequestTimeout),
	)

	return &app{
		cfg:        cfg,
		log:        log,
		store:      st,
		publisher:  pub,
		dispatcher: dispatcher,
		resolver:   resolver,
	}, nil
}

// switchModel points the resolver at a catalog model. The key comes from
// the environment variable of the model's provider.
func (a *app) switchModel(modelID string) error {
	info := llm.GetModelByID(modelID)
	if info == nil {
		return fmt.Errorf("unknown model %q", modelID)
	}

	key := a.cfg.APIKey
	baseURL := a.cfg.BaseURL
	if info.Provider != a.cfg.Provider {
		key = lookupEnv(llm.APIKeyEnv(info.Provider))
		baseURL = ""
	}
	if key == "" {
		return fmt.Errorf("%s is not set", llm.APIKeyEnv(info.Provider))
	}

	client, err := llm.NewClient(info.Provider, key, baseURL, info.APIModel)
	if err != nil {
		return err
	}
	a.resolver.SetClient(client)
	a.log.WithField("model", modelID).Info("model switched")
	return nil
}

func (a *app) close() {
	if err := a.publisher.Close(); err != nil {
		a.log.WithError(err).Warn("failed to close event publisher")
	}
}

func lookupEnv(name string) string {
	if name == "" {
		return ""
	}
	return os.Getenv(name)
}

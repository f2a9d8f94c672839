package main

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/Gobusters/ectoinject"
	"github.com/Gobusters/ectoinject/ectocontainer"
	"github.com/Gobusters/ectoinject/lifecycles"
	"github.com/Gobusters/ectoinject/loglevel"
	"github.com/Gobusters/ectologger"
	"github.com/Ramsey-B/fern/config"
	"github.com/Ramsey-B/fern/pkg/cache"
	"github.com/Ramsey-B/fern/pkg/httpclient"
	"github.com/Ramsey-B/fern/pkg/logging"
	"github.com/Ramsey-B/fern/pkg/parser"
	"github.com/Ramsey-B/fern/pkg/ratelimit"
	"github.com/Ramsey-B/fern/pkg/service"
	"github.com/google/uuid"
)

// offlineService names the service that parses documents handed to it and
// never fetches.
const offlineService = "offline"

type commandContext struct {
	configFlag *string
	localeFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     ectologger.Logger
	loggerErr  error

	containerOnce sync.Once
	containerID   string
	containerErr  error
}

func newCommandContext(configFlag, localeFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		localeFlag: localeFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.localeFlag != nil && strings.TrimSpace(*c.localeFlag) != "" {
			cfg.Locale = strings.TrimSpace(*c.localeFlag)
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (ectologger.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, _, c.loggerErr = logging.New(cfg)
	})
	return c.logger, c.loggerErr
}

// newParser returns a parser tagging records with the configured locale
func newParser(cfg *config.Config, logger ectologger.Logger) *parser.Parser {
	return parser.New(
		parser.WithLogger(logger),
		parser.WithLocale(func() string { return cfg.Locale }),
	)
}

// ensureContainer registers the dependencies shared by every command in a
// container of their own, so several commands can run in one process.
func (c *commandContext) ensureContainer() (string, error) {
	c.containerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.containerErr = err
			return
		}
		logger, err := c.ensureLogger()
		if err != nil {
			c.containerErr = err
			return
		}

		container, err := ectoinject.NewDIContainer(ectocontainer.DIContainerConfig{
			ID: "fern-" + uuid.NewString(),
			LoggerConfig: &ectocontainer.DIContainerLoggerConfig{
				Prefix:   "fern",
				LogLevel: loglevel.WARN,
				Enabled:  false,
			},
		})
		if err != nil {
			c.containerErr = err
			return
		}

		c.containerErr = register(container, cfg, logger)
		c.containerID = container.GetContainerID()
	})
	return c.containerID, c.containerErr
}

func register(container ectocontainer.DIContainer, cfg *config.Config, logger ectologger.Logger) error {
	if err := ectoinject.RegisterInstance[*config.Config](container, cfg); err != nil {
		return err
	}
	if err := ectoinject.RegisterInstance[ectologger.Logger](container, logger); err != nil {
		return err
	}

	p := newParser(cfg, logger)
	if err := ectoinject.RegisterInstance[*parser.Parser](container, p); err != nil {
		return err
	}

	return ectoinject.RegisterInstanceFunc[*service.Service](container, lifecycles.Singleton, func(context.Context) (any, error) {
		return service.New(service.Config{Locale: cfg.Locale}, nil, nil, p, logger), nil
	}, offlineService)
}

// resolve returns the dependency of type T registered under name, or the
// unnamed one when name is empty.
func resolve[T any](ctx context.Context, c *commandContext, name string) (T, error) {
	var zero T

	id, err := c.ensureContainer()
	if err != nil {
		return zero, err
	}
	ctx, err = ectoinject.SetActiveContainer(ctx, id)
	if err != nil {
		return zero, err
	}

	_, value, err := ectoinject.GetNamedDependency[T](ctx, name)
	return value, err
}

// newStore returns the redis store when enabled, the in-memory LRU otherwise.
func newStore(cfg *config.Config, logger ectologger.Logger) (cache.Store, func() error, error) {
	if !cfg.RedisEnabled {
		store := cache.NewMemoryStore(cache.MemoryConfig{
			MaxSize: cfg.CacheMaxSize,
			TTL:     cfg.CacheTTL(),
		})
		return store, func() error { return nil }, nil
	}

	store, err := cache.NewRedisStore(cache.RedisConfig{
		Host:      cfg.RedisHost,
		Port:      cfg.RedisPort,
		Password:  cfg.RedisPassword,
		DB:        cfg.RedisDB,
		TTL:       cfg.CacheTTL(),
		KeyPrefix: cfg.AppName + ":",
	}, logger)
	if err != nil {
		return nil, nil, err
	}
	return store, store.Close, nil
}

// newLimiter paces page requests, across instances when the cache is
// shared through Redis.
func newLimiter(cfg *config.Config, store cache.Store) ratelimit.Limiter {
	if cfg.FetchRequestsPerMinute == 0 {
		return nil
	}
	if redisStore, ok := store.(*cache.RedisStore); ok {
		return ratelimit.NewRedisLimiter(redisStore.Redis(), cfg.AppName+":ratelimit:", int64(cfg.FetchRequestsPerMinute), time.Minute)
	}
	return ratelimit.NewKeyedLimiter(cfg.FetchRequestsPerMinute, cfg.FetchBurst)
}

func newFetcher(cfg *config.Config, logger ectologger.Logger, limiter ratelimit.Limiter) *httpclient.Client {
	clientConfig := httpclient.DefaultConfig()
	clientConfig.Timeout = cfg.RequestTimeout()
	clientConfig.UserAgent = cfg.UserAgent
	clientConfig.VerifySSL = cfg.VerifySSL
	clientConfig.MaxResponseSize = int64(cfg.MaxResponseBytes)
	clientConfig.Limiter = limiter
	return httpclient.NewClient(clientConfig, logger)
}

// newService wires a service against the live site. store may be nil.
func (c *commandContext) newService(ctx context.Context, store cache.Store) (*service.Service, error) {
	cfg, logger, err := c.setup(ctx)
	if err != nil {
		return nil, err
	}
	p, err := resolve[*parser.Parser](ctx, c, "")
	if err != nil {
		return nil, err
	}

	return service.New(
		service.Config{Locale: cfg.Locale},
		newFetcher(cfg, logger, newLimiter(cfg, store)),
		store,
		p,
		logger,
	), nil
}

// offline returns the service that parses documents without fetching.
func (c *commandContext) offline(ctx context.Context) (*service.Service, error) {
	return resolve[*service.Service](ctx, c, offlineService)
}

// setup returns the config and logger every command needs
func (c *commandContext) setup(ctx context.Context) (*config.Config, ectologger.Logger, error) {
	cfg, err := resolve[*config.Config](ctx, c, "")
	if err != nil {
		return nil, nil, err
	}
	logger, err := resolve[ectologger.Logger](ctx, c, "")
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// withLookupService runs fn against a service backed by the configured
// cache.
func (c *commandContext) withLookupService(ctx context.Context, fn func(context.Context, *service.Service) error) error {
	cfg, logger, err := c.setup(ctx)
	if err != nil {
		return err
	}

	store, closeStore, err := newStore(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	svc, err := c.newService(ctx, store)
	if err != nil {
		return err
	}
	return fn(ctx, svc)
}

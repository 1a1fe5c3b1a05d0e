package main

import (
	"context"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/turtacn/CineMood/internal/application/recommendation"
	"github.com/turtacn/CineMood/internal/config"
	"github.com/turtacn/CineMood/internal/infrastructure/database/redis"
	"github.com/turtacn/CineMood/internal/infrastructure/dataset"
	"github.com/turtacn/CineMood/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/CineMood/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/CineMood/internal/infrastructure/storage/minio"
	httpserver "github.com/turtacn/CineMood/internal/interfaces/http"
	"github.com/turtacn/CineMood/internal/interfaces/http/handlers"
	"github.com/turtacn/CineMood/internal/interfaces/http/middleware"
)

const uptimeInterval = 15 * time.Second

// application owns every long-lived component of the API server.
type application struct {
	cfg       *config.Config
	logger    logging.Logger
	collector prometheus.MetricsCollector
	metrics   *prometheus.AppMetrics
	holder    *dataset.Holder
	watcher   *dataset.Watcher
	redis     *redis.Client
	limiter   *middleware.KeyedLimiter
	server    *httpserver.Server
	started   time.Time
}

// newApplication builds the component graph. The initial dataset load is
// attempted here; a failure is logged and the server starts with an empty
// table.
func newApplication(ctx context.Context, cfg *config.Config, logger logging.Logger) (*application, error) {
	a := &application{cfg: cfg, logger: logger, started: time.Now()}

	// --- Metrics ---
	if cfg.Metrics.Enabled {
		collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
			Namespace:            cfg.Metrics.Namespace,
			EnableProcessMetrics: true,
			EnableGoMetrics:      true,
		}, logger)
		if err != nil {
			return nil, err
		}
		a.collector = collector
	} else {
		a.collector = prometheus.NewNoopCollector()
	}
	a.metrics = prometheus.NewAppMetrics(a.collector)

	var checkers []handlers.HealthChecker

	// --- Dataset ---
	source, storeChecker, err := a.datasetSource(ctx)
	if err != nil {
		a.close()
		return nil, err
	}
	if storeChecker != nil {
		checkers = append(checkers, storeChecker)
	}
	a.holder = dataset.NewHolder(source, logger.Named("dataset"), dataset.WithMetrics(a.metrics))
	if err := a.holder.Reload(ctx); err != nil {
		logger.Warn("Starting without a dataset; recommendations will report it missing", logging.Err(err))
	}
	checkers = append(checkers, handlers.DatasetChecker(a.holder))

	if cfg.Dataset.Watch && cfg.Dataset.Source == config.SourceFile {
		w, err := dataset.NewWatcher(a.holder, cfg.Dataset.Path, cfg.Dataset.WatchDebounce, logger.Named("watcher"))
		if err != nil {
			a.close()
			return nil, err
		}
		a.watcher = w
	}

	// --- Result cache ---
	opts := []recommendation.Option{recommendation.WithMetrics(a.metrics)}
	if cfg.Redis.Enabled {
		client, err := redis.NewClient(&redis.RedisConfig{
			Addrs:        []string{cfg.Redis.Addr},
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		}, logger.Named("redis"))
		if err != nil {
			a.close()
			return nil, err
		}
		a.redis = client
		cache := redis.NewRedisCache(client, logger.Named("cache"),
			redis.WithPrefix(cfg.Redis.KeyPrefix),
			redis.WithDefaultTTL(cfg.Redis.TTL),
			redis.WithTTLJitter(cfg.Redis.TTLJitter),
		)
		opts = append(opts, recommendation.WithCache(cache))
		checkers = append(checkers, &redisHealthAdapter{client: client})
	}

	svc := recommendation.NewService(a.holder, recommendation.Config{
		Limit:         cfg.Recommendation.Limit,
		MinConfidence: cfg.Recommendation.MinConfidence,
		CacheTTL:      cfg.Redis.TTL,
	}, logger.Named("recommendation"), opts...)

	// --- HTTP ---
	health := handlers.NewHealthHandler(version, checkers...).
		WithObserver(func(component string, healthy bool) {
			prometheus.RecordHealth(a.metrics, component, healthy)
		})

	routerCfg := httpserver.RouterConfig{
		EmotionHandler: handlers.NewEmotionHandler(svc, a.holder, logger.Named("http"), cfg.Server.MaxBodySize),
		HealthHandler:  health,
		CORS:           middleware.CORS(corsConfig(cfg.CORS)),
		Logging:        middleware.RequestLogging(logger.Named("access"), middleware.DefaultLoggingConfig()),
	}
	if cfg.Metrics.Enabled {
		routerCfg.Metrics = middleware.Metrics(a.metrics)
		routerCfg.MetricsHandler = a.collector.Handler()
		routerCfg.MetricsPath = cfg.Metrics.Path
	}
	if cfg.RateLimit.Enabled {
		rl := middleware.DefaultRateLimitConfig()
		rl.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		rl.BurstSize = cfg.RateLimit.Burst
		rl.SkipPaths = append(rl.SkipPaths, cfg.Metrics.Path)
		a.limiter = middleware.NewKeyedLimiter(rl.RequestsPerSecond, rl.BurstSize, rl.CleanupInterval)
		routerCfg.RateLimit = middleware.RateLimit(a.limiter, rl)
	}

	a.server = httpserver.NewServer(httpserver.ServerConfig{
		Addr:            cfg.Server.Addr(),
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		IdleTimeout:     cfg.Server.IdleTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}, httpserver.NewRouter(routerCfg), logger.Named("server"))

	return a, nil
}

// datasetSource selects the dataset source from configuration. For MinIO it
// also returns a health checker for the object store.
func (a *application) datasetSource(ctx context.Context) (dataset.Source, handlers.HealthChecker, error) {
	if a.cfg.Dataset.Source != config.SourceMinIO {
		return dataset.NewFileSource(a.cfg.Dataset.Path), nil, nil
	}
	m := a.cfg.MinIO
	client, err := minio.NewMinIOClient(ctx, &minio.MinIOConfig{
		Endpoint:        m.Endpoint,
		AccessKeyID:     m.AccessKey,
		SecretAccessKey: m.SecretKey,
		UseSSL:          m.UseSSL,
		Region:          m.Region,
		Bucket:          m.Bucket,
		Object:          m.Object,
	}, a.logger.Named("minio"))
	if err != nil {
		return nil, nil, err
	}
	return dataset.NewObjectSource(client, client.Object()), &minioHealthAdapter{client: client}, nil
}

func corsConfig(c config.CORSConfig) middleware.CORSConfig {
	out := middleware.DefaultCORSConfig()
	if len(c.AllowedOrigins) > 0 {
		out.AllowedOrigins = c.AllowedOrigins
	}
	if len(c.AllowedMethods) > 0 {
		out.AllowedMethods = c.AllowedMethods
	}
	if len(c.AllowedHeaders) > 0 {
		out.AllowedHeaders = c.AllowedHeaders
	}
	if c.MaxAge > 0 {
		out.MaxAge = c.MaxAge
	}
	return out
}

// run serves on ln until ctx is cancelled, then shuts the server down. The
// dataset watcher and uptime gauge run alongside the server.
func (a *application) run(ctx context.Context, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.server.Serve(ln)
	})
	g.Go(func() error {
		<-gctx.Done()
		return a.server.Stop(context.Background())
	})
	if a.watcher != nil {
		g.Go(func() error {
			a.watcher.Run(gctx)
			return nil
		})
	}
	g.Go(func() error {
		a.recordUptime(gctx)
		return nil
	})

	err := g.Wait()
	a.close()
	return err
}

func (a *application) recordUptime(ctx context.Context) {
	gauge := a.metrics.ServiceUptime.WithLabelValues("apiserver")
	ticker := time.NewTicker(uptimeInterval)
	defer ticker.Stop()
	for {
		gauge.Set(time.Since(a.started).Seconds())
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// handler exposes the root handler for tests.
func (a *application) handler() http.Handler {
	return a.server.Handler()
}

func (a *application) close() {
	if a.limiter != nil {
		a.limiter.Stop()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("Redis close failed", logging.Err(err))
		}
	}
}

//Personal.AI order the ending

package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/extra/redisotel/v8"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/2beens/aitrainer/internal/auth"
	"github.com/2beens/aitrainer/internal/avatars"
	"github.com/2beens/aitrainer/internal/bodymetrics"
	"github.com/2beens/aitrainer/internal/coachai"
	"github.com/2beens/aitrainer/internal/config"
	"github.com/2beens/aitrainer/internal/contact"
	"github.com/2beens/aitrainer/internal/db"
	"github.com/2beens/aitrainer/internal/diets"
	"github.com/2beens/aitrainer/internal/geoip"
	"github.com/2beens/aitrainer/internal/middleware"
	"github.com/2beens/aitrainer/internal/misc"
	"github.com/2beens/aitrainer/internal/telemetry/metrics"
	"github.com/2beens/aitrainer/internal/telemetry/tracing"
	"github.com/2beens/aitrainer/internal/tips"
	"github.com/2beens/aitrainer/internal/users"
	"github.com/2beens/aitrainer/internal/workouts"
)

const serviceName = "aitrainer"

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config         *config.Config
	secrets        *config.Secrets
	dbPool         *pgxpool.Pool
	redisClient    *redis.Client
	quotesManager  *misc.QuotesManager
	avatarStore    avatars.Store
	countryLookup  *geoip.Resolver
	coachClient    *coachai.Client
	tokenManager   *auth.TokenManager
	authService    *auth.Service
	loginChecker   *auth.LoginChecker
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	Secrets                 *config.Secrets
	VersionInfo             string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config
	secrets := params.Secrets

	avatarStore, err := newAvatarStore(cfg, secrets)
	if err != nil {
		return nil, fmt.Errorf("create avatar store: %w", err)
	}

	quotesManager, err := misc.NewDefaultQuoteManager()
	if err != nil {
		return nil, fmt.Errorf("create quotes manager: %w", err)
	}

	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, serviceName)
	if err != nil {
		return nil, fmt.Errorf("setup honeycomb: %w", err)
	}

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		DBUser:         cfg.PostgresUser,
		DBPassword:     secrets.PostgresPassword,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		otelShutdown()
		return nil, fmt.Errorf("create new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		dbPool.Close()
		otelShutdown()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	if err := db.Migrate(ctx, dbPool); err != nil {
		dbPool.Close()
		otelShutdown()
		return nil, fmt.Errorf("migrate db: %w", err)
	}

	dbStatsCollector := pgxpoolprometheus.NewCollector(dbPool, map[string]string{"db_name": cfg.PostgresDBName})
	promRegistry := metrics.SetupPrometheus(dbStatsCollector)
	metricsManager := metrics.NewManager(serviceName, "main", promRegistry)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: secrets.RedisPassword,
		DB:       0, // use default DB
	})
	if params.HoneycombTracingEnabled {
		rdb.AddHook(redisotel.NewTracingHook())
	}

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Printf("redis ping: %s", rdbStatus.Val())
	}

	tracedHttpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   cfg.OpenAITimeout(),
	}
	if secrets.OpenAIAPIKey == "" {
		log.Warnln("openai api key not set, plan generation will fail")
	}
	coachClient := coachai.NewClient(
		cfg.OpenAIBaseURL,
		secrets.OpenAIAPIKey,
		cfg.OpenAIModel,
		tracedHttpClient,
		metricsManager,
	)

	var countryLookup *geoip.Resolver
	if secrets.IpInfoAPIKey != "" {
		ipInfoClient, err := geoip.NewIpInfoClient(
			cfg.IpInfoBaseURL,
			secrets.IpInfoAPIKey,
			&http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport), Timeout: 10 * time.Second},
		)
		if err != nil {
			s := &Server{dbPool: dbPool, redisClient: rdb, otelShutdown: otelShutdown}
			s.closeResources()
			return nil, fmt.Errorf("create ipinfo client: %w", err)
		}
		countryLookup = geoip.NewResolver(ipInfoClient, rdb)
	} else {
		log.Warnln("ipinfo token not set, signup country will not be resolved")
	}

	tokenManager := auth.NewTokenManager(secrets.JWTSecret, cfg.TokenTTL())

	s := &Server{
		config:         cfg,
		secrets:        secrets,
		versionInfo:    params.VersionInfo,
		dbPool:         dbPool,
		redisClient:    rdb,
		quotesManager:  quotesManager,
		avatarStore:    avatarStore,
		countryLookup:  countryLookup,
		coachClient:    coachClient,
		tokenManager:   tokenManager,
		authService:    auth.NewAuthService(tokenManager, rdb),
		loginChecker:   auth.NewLoginChecker(tokenManager, rdb),
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}

	return s, nil
}

func newAvatarStore(cfg *config.Config, secrets *config.Secrets) (avatars.Store, error) {
	switch cfg.AvatarStore {
	case config.AvatarStoreCloudinary:
		if secrets.CloudinaryURL == "" {
			return nil, errors.New("cloudinary avatar store selected, but CLOUDINARY_URL is not set")
		}
		return avatars.NewCloudinaryStore(secrets.CloudinaryURL, cfg.CloudinaryFolder)
	default:
		return avatars.NewDiskStore(cfg.UploadsDir)
	}
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware(serviceName))

	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)

	misc.NewHandler(s.quotesManager, s.versionInfo).SetupRoutes(r)

	// countryLookup is typed, pass an untyped nil so the handler sees no resolver
	var countries interface {
		RequestCountry(ctx context.Context, r *http.Request) (string, error)
	}
	if s.countryLookup != nil {
		countries = s.countryLookup
	}
	usersRepo := users.NewRepo(s.dbPool)
	users.NewHandler(usersRepo, s.authService, countries, s.avatarStore, s.metricsManager).SetupRoutes(r)

	if diskStore, ok := s.avatarStore.(*avatars.DiskStore); ok {
		diskStore.SetupRoutes(r)
	}

	workoutsService := workouts.NewService(
		workouts.NewRepo(s.dbPool),
		workouts.NewInsightsRepo(s.dbPool),
		s.coachClient,
		s.metricsManager,
	)
	workouts.NewHandler(workoutsService).SetupRoutes(r)

	diets.NewHandler(diets.NewRepo(s.dbPool), s.coachClient, s.metricsManager).SetupRoutes(r)

	tipsService := tips.NewService(
		workoutsService,
		s.coachClient,
		tips.NewHistoryRepo(s.dbPool),
		s.config.TipsCacheSizeMB,
		s.config.TipsCacheTTL(),
		s.metricsManager,
	)
	tips.NewHandler(tipsService).SetupRoutes(r)

	mailer := contact.NewSMTPMailer(
		s.config.SMTPHost,
		s.config.SMTPPort,
		s.secrets.SMTPEmail,
		s.secrets.SMTPPassword,
	)
	contact.NewHandler(mailer, s.metricsManager).SetupRoutes(r)

	bodymetrics.NewHandler().SetupRoutes(r)

	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "DELETE", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.loginChecker, usersRepo)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(rateLimitRoutes(reqRateLimiter, s.metricsManager, map[string]int{
		"signup":  s.config.LoginRateLimitAllowedPerMin,
		"login":   s.config.LoginRateLimitAllowedPerMin,
		"contact": s.config.ContactRateLimitAllowedPerMin,
	}))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

// rateLimitRoutes applies the redis rate limiter only to the named routes.
func rateLimitRoutes(
	limiter middleware.RequestRateLimiter,
	metricsManager *metrics.Manager,
	allowedPerMin map[string]int,
) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		limited := make(map[string]http.Handler, len(allowedPerMin))
		for routeName, perMin := range allowedPerMin {
			limited[routeName] = middleware.RateLimit(limiter, metricsManager, routeName, perMin)(next)
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// preflight requests are not counted
			if r.Method != http.MethodOptions {
				if route := mux.CurrentRoute(r); route != nil {
					if h, ok := limited[route.GetName()]; ok {
						h.ServeHTTP(w, r)
						return
					}
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (s *Server) Serve(ctx context.Context, host string, port int) {
	router := s.routerSetup()

	go s.authService.RunCleanup(ctx, s.config.SessionsCleanupInterval())

	ipAndPort := net.JoinHostPort(host, fmt.Sprintf("%d", port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: s.config.OpenAITimeout() + 15*time.Second,
		ReadTimeout:  15 * time.Second,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{
			EnableOpenMetrics: true,
		},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Handler:      metricsRouter,
		Addr:         metricsAddr,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	go func() {
		log.Infof(" > metrics listening on: [%s]", metricsAddr)
		if err := s.metricsHttpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("metrics server error: %s", err)
		}
	}()

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	go s.lifeSignal(ctx)
}

func (s *Server) lifeSignal(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.metricsManager.GaugeLifeSignal.Set(float64(time.Now().Unix()))
		}
	}
}

func (s *Server) GracefulShutdown() {
	log.Debugln("graceful shutdown initiated ...")

	s.closeResources()

	sentry.Flush(2 * time.Second)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
	}
	log.Warnln("server shut down")

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
	}
	log.Warnln("metrics server shut down")
}

func (s *Server) closeResources() {
	if s.otelShutdown != nil {
		s.otelShutdown()
	}

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		s.dbPool.Close()
	}
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}

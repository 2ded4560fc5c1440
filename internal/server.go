package internal

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/2beens/fitcoach/internal/auth"
	"github.com/2beens/fitcoach/internal/checkins"
	checkinsmcp "github.com/2beens/fitcoach/internal/checkins/mcp"
	"github.com/2beens/fitcoach/internal/coach"
	"github.com/2beens/fitcoach/internal/coach/generator"
	"github.com/2beens/fitcoach/internal/config"
	"github.com/2beens/fitcoach/internal/db"
	"github.com/2beens/fitcoach/internal/middleware"
	"github.com/2beens/fitcoach/internal/misc"
	"github.com/2beens/fitcoach/internal/nutrition"
	"github.com/2beens/fitcoach/internal/prefs"
	"github.com/2beens/fitcoach/internal/progress"
	"github.com/2beens/fitcoach/internal/telemetry/metrics"
	metricsmiddleware "github.com/2beens/fitcoach/internal/telemetry/metrics/middleware"
	"github.com/2beens/fitcoach/internal/telemetry/tracing"
	"github.com/2beens/fitcoach/internal/users"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config       *config.Config
	dbPool       *pgxpool.Pool
	photosStore  *progress.DiskStore // progress photo files live on disk, metadata in postgres
	linesManager *coach.LinesManager
	generator    *generator.Generator // nil when the model API key is not set
	timezones    *users.TimezoneResolver

	redisClient  *redis.Client
	loginChecker *auth.LoginChecker
	authService  *auth.Service

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	GeminiAPIKey            string
	IpInfoAPIKey            string
	VersionInfo             string
	RedisPassword           string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": "fitcoach_db"},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("backend", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0) // will be set to 1 when all is set and ran

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	authService := auth.NewAuthService(auth.DefaultTTL, rdb)
	go func() {
		for range time.Tick(time.Hour * 8) {
			authService.ScanAndClean(ctx)
		}
	}()

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "fitcoach-backend", rdb)
	if err != nil {
		return nil, err
	}

	tracedHttpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	var timezones *users.TimezoneResolver
	if params.IpInfoAPIKey == "" {
		log.Warn("ip info api key not set, signup timezone detection is off")
	} else {
		timezones = users.NewTimezoneResolver(tracedHttpClient, params.IpInfoAPIKey)
	}

	photosStore, err := progress.NewDiskStore(params.Config.PhotosRootPath)
	if err != nil {
		return nil, fmt.Errorf("new photos disk store: %w", err)
	}

	var gen *generator.Generator
	if params.GeminiAPIKey == "" {
		log.Warn("gemini api key not set, coach chat is off, check-in summaries fall back to the canned recap")
	} else {
		gen, err = generator.New(
			ctx,
			params.GeminiAPIKey,
			params.Config.GeminiModel,
			generator.NewJobsRepo(dbPool),
			metricsManager,
		)
		if err != nil {
			return nil, fmt.Errorf("new summary generator: %w", err)
		}
	}

	s := &Server{
		config:      params.Config,
		dbPool:      dbPool,
		photosStore: photosStore,
		generator:   gen,
		timezones:   timezones,
		versionInfo: params.VersionInfo,

		redisClient:  rdb,
		authService:  authService,
		loginChecker: auth.NewLoginChecker(auth.DefaultTTL, rdb),

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}

	linesCsvFile, err := os.Open(params.Config.CoachLinesCsvPath)
	if err != nil {
		return nil, fmt.Errorf("open coach lines file: %w", err)
	}
	defer func() {
		if err := linesCsvFile.Close(); err != nil {
			log.Warnf("close coach lines csv file: %s", err)
		}
	}()

	s.linesManager, err = coach.NewLinesManager(csv.NewReader(linesCsvFile))
	if err != nil {
		return nil, fmt.Errorf("failed to create coach lines manager: %s", err)
	}

	return s, nil
}

func (s *Server) routerSetup() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	usersRepo := users.NewRepo(s.dbPool)
	prefsStore := prefs.NewRedisStore(s.redisClient)

	usersHandler := users.NewHandler(usersRepo, prefsStore, s.timezones)
	usersHandler.SetupRoutes(r.PathPrefix("/users").Subrouter())

	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)
	miscHandler := misc.NewHandler(usersRepo, s.authService, s.versionInfo)
	miscHandler.SetupRoutes(r, reqRateLimiter, s.metricsManager, s.config.LoginRateLimitAllowedPerMin)

	nutritionRepo := nutrition.NewRepo(s.dbPool)
	nutritionHandler := nutrition.NewHandler(nutritionRepo, usersRepo, s.metricsManager)
	nutritionHandler.SetupRoutes(r.PathPrefix("/nutrition").Subrouter())

	progressRepo := progress.NewRepo(s.dbPool)
	progressHandler := progress.NewHandler(
		progressRepo,
		s.photosStore,
		nutritionRepo,
		usersRepo,
		s.metricsManager,
	)
	progressHandler.SetupRoutes(r.PathPrefix("/progress").Subrouter())

	checkinsRepo := checkins.NewRepo(s.dbPool)
	var (
		checkinsService *checkins.Service
		coachHandler    *coach.Handler
	)
	if s.generator != nil {
		userContext := newUserContextBuilder(usersRepo, checkinsRepo, nutritionRepo)
		checkinsService = checkins.NewService(
			checkinsRepo,
			progressRepo,
			usersRepo,
			prefsStore,
			s.generator,
			userContext,
			s.config.RecapCacheSizeMb,
			s.metricsManager,
		)
		coachHandler = coach.NewHandler(s.generator, userContext, s.linesManager)
	} else {
		checkinsService = checkins.NewService(
			checkinsRepo,
			progressRepo,
			usersRepo,
			prefsStore,
			nil,
			nil,
			s.config.RecapCacheSizeMb,
			s.metricsManager,
		)
		coachHandler = coach.NewHandler(nil, nil, s.linesManager)
	}
	checkinsHandler := checkins.NewHandler(checkinsService)
	checkinsHandler.SetupRoutes(r.PathPrefix("/checkins").Subrouter())
	coachHandler.SetupRoutes(r.PathPrefix("/coach").Subrouter())

	// MCP clients go through the same server and the same token auth
	mcpServer := checkinsmcp.NewServer(s.dbPool, checkinsService)
	r.PathPrefix("/mcp").Handler(mcpsdk.NewStreamableHTTPHandler(
		func(*http.Request) *mcpsdk.Server { return mcpServer },
		nil,
	))

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.loginChecker)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r, nil
}

func (s *Server) Serve(host string, port int) {
	router, err := s.routerSetup()
	if err != nil {
		log.Fatalf("failed to setup router: %s", err)
	}

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", metricsmiddleware.
		New(s.promRegistry, nil).
		WrapHandler("/metrics", promhttp.HandlerFor(
			s.promRegistry,
			promhttp.HandlerOpts{}),
		))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	// TODO: probably not needed to be set explicitly
	s.metricsManager.GaugeLifeSignal.Set(0)

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown http server")
	}
	log.Warnln("server shut down")

	if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown metrics http server")
	}
	log.Warnln("metrics server shut down")
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

package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/liftlog-app/liftlog/internal/clock"
	"github.com/liftlog-app/liftlog/internal/config"
	"github.com/liftlog-app/liftlog/internal/db"
	"github.com/liftlog-app/liftlog/internal/middleware"
	"github.com/liftlog-app/liftlog/internal/notifications"
	"github.com/liftlog-app/liftlog/internal/sessions"
	"github.com/liftlog-app/liftlog/internal/telemetry/metrics"
	metricsmiddleware "github.com/liftlog-app/liftlog/internal/telemetry/metrics/middleware"
	"github.com/liftlog-app/liftlog/internal/telemetry/tracing"
	"github.com/liftlog-app/liftlog/internal/templates"
	"github.com/liftlog-app/liftlog/internal/timers"
	"github.com/liftlog-app/liftlog/pkg"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	deviceToken       string // shared secret provisioned to the ios app
	versionInfo       string

	config *config.Config
	dbPool *pgxpool.Pool

	redisClient *redis.Client

	timerCoordinator *timers.Coordinator
	pushScheduler    *notifications.DelayedScheduler
	sessionHistory   *sessions.History

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	DeviceToken             string
	PushToken               string
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
		map[string]string{"db_name": "liftlog_db"},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("liftlog", "main", promRegistry)
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

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "liftlog-backend", rdb)
	if err != nil {
		return nil, err
	}

	tracedHttpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	var pushSender notifications.Sender
	if params.Config.PushWebhookURL != "" {
		pushSender = notifications.NewWebhookSender(
			params.Config.PushWebhookURL,
			params.PushToken,
			tracedHttpClient,
		)
	} else {
		log.Warnln("push webhook url not set, rest notifications will be dropped")
		pushSender = notifications.NoopSender{}
	}
	pushScheduler := notifications.NewDelayedScheduler(pushSender, metricsManager)

	timerOpts := []timers.Option{
		timers.WithRestNotification(
			params.Config.RestNotificationTitle,
			params.Config.RestNotificationBody,
		),
	}
	if params.Config.TimerTickMillis > 0 {
		timerOpts = append(
			timerOpts,
			timers.WithTickInterval(time.Duration(params.Config.TimerTickMillis)*time.Millisecond),
		)
	}
	timerCoordinator := timers.NewCoordinator(
		clock.System(),
		timers.NewRedisSnapshotStore(rdb),
		pushScheduler,
		metricsManager,
		timerOpts...,
	)

	sessionHistory := sessions.NewHistory(
		sessions.NewRepo(dbPool),
		params.Config.ExerciseHistoryWindow,
	)

	s := &Server{
		config:      params.Config,
		dbPool:      dbPool,
		deviceToken: params.DeviceToken,
		versionInfo: params.VersionInfo,

		redisClient: rdb,

		timerCoordinator: timerCoordinator,
		pushScheduler:    pushScheduler,
		sessionHistory:   sessionHistory,

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}

	return s, nil
}

func (s *Server) routerSetup() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	r.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		pkg.WriteTextResponseOK(w, "I'm OK, thanks ;)")
	}).Methods("GET", "POST", "OPTIONS").Name("root")
	r.HandleFunc("/ping", func(w http.ResponseWriter, _ *http.Request) {
		pkg.WriteTextResponseOK(w, "pong")
	}).Methods("GET").Name("ping")
	r.HandleFunc("/version", func(w http.ResponseWriter, _ *http.Request) {
		pkg.WriteTextResponseOK(w, s.versionInfo)
	}).Methods("GET").Name("version")

	templatesHandler := templates.NewHandler(templates.NewRepo(s.dbPool))
	r.HandleFunc("/templates", templatesHandler.HandleCreate).Methods("POST", "OPTIONS").Name("new-template")
	r.HandleFunc("/templates", templatesHandler.HandleList).Methods("GET", "OPTIONS").Name("list-templates")
	r.HandleFunc("/templates/{id}", templatesHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-template")
	r.HandleFunc("/templates/{id}", templatesHandler.HandleRename).Methods("PUT", "OPTIONS").Name("rename-template")
	r.HandleFunc("/templates/{id}", templatesHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-template")
	r.HandleFunc("/templates/{id}/exercise", templatesHandler.HandleAddExercise).Methods("POST", "OPTIONS").Name("new-template-exercise")
	r.HandleFunc("/templates/{id}/exercise/move", templatesHandler.HandleMoveExercise).Methods("PUT", "OPTIONS").Name("move-template-exercise")
	r.HandleFunc("/templates/{id}/exercise/{exerciseId}", templatesHandler.HandleUpdateExercise).Methods("PUT", "OPTIONS").Name("update-template-exercise")
	r.HandleFunc("/templates/{id}/exercise/{exerciseId}", templatesHandler.HandleRemoveExercise).Methods("DELETE", "OPTIONS").Name("remove-template-exercise")
	r.HandleFunc("/templates/{id}/warmups", templatesHandler.HandleGetWarmups).Methods("GET", "OPTIONS").Name("get-template-warmups")
	r.HandleFunc("/templates/{id}/warmups", templatesHandler.HandleSetWarmups).Methods("PUT", "OPTIONS").Name("set-template-warmups")
	r.HandleFunc("/templates/{id}/warmups/{index}", templatesHandler.HandleDeleteWarmup).Methods("DELETE", "OPTIONS").Name("delete-template-warmup")

	sessionsRepo := sessions.NewRepo(s.dbPool)
	sessionInstantiator := sessions.NewInstantiator(
		templates.NewRepo(s.dbPool),
		sessionsRepo,
		s.sessionHistory,
		clock.System(),
		s.metricsManager,
	)
	sessionsHandler := sessions.NewHandler(
		sessionsRepo,
		sessionInstantiator,
		s.timerCoordinator,
		s.sessionHistory,
		s.metricsManager,
	)

	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)

	// session instantiation hits templates and the whole set history, so
	// it gets its own rate limited subrouter
	startSubrouter := r.PathPrefix("/sessions/start").Subrouter()
	startSubrouter.
		HandleFunc("/template/{templateId}", sessionsHandler.HandleStartFromTemplate).
		Methods("POST", "OPTIONS").Name("start-session-from-template")
	startSubrouter.
		HandleFunc("/blank", sessionsHandler.HandleCreateBlank).
		Methods("POST", "OPTIONS").Name("start-blank-session")
	startSubrouter.Use(middleware.RateLimit(
		reqRateLimiter,
		"session-start",
		s.config.SessionStartRateLimitAllowedPerMin,
		s.metricsManager,
	))
	startSubrouter.Use(middleware.Cors())

	r.HandleFunc("/sessions", sessionsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-sessions")
	r.HandleFunc("/sessions/progress", sessionsHandler.HandleProgress).Methods("GET", "OPTIONS").Name("exercise-progress")
	r.HandleFunc("/sessions/exercise/{exerciseId}/set", sessionsHandler.HandleAddSet).Methods("POST", "OPTIONS").Name("new-session-set")
	r.HandleFunc("/sessions/set/{setId}", sessionsHandler.HandleUpdateSet).Methods("PUT", "OPTIONS").Name("update-session-set")
	r.HandleFunc("/sessions/{id}", sessionsHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-session")
	r.HandleFunc("/sessions/{id}", sessionsHandler.HandleCancel).Methods("DELETE", "OPTIONS").Name("cancel-session")
	r.HandleFunc("/sessions/{id}/exercise", sessionsHandler.HandleAddExercise).Methods("POST", "OPTIONS").Name("new-session-exercise")
	r.HandleFunc("/sessions/{id}/finish", sessionsHandler.HandleFinish).Methods("POST", "OPTIONS").Name("finish-session")

	timersHandler := timers.NewHandler(s.timerCoordinator)
	timersHandler.SetupRoutes(r)

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.deviceToken)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r, nil
}

func (s *Server) Serve(ctx context.Context, host string, port int) {
	if err := s.timerCoordinator.Restore(ctx); err != nil {
		log.Errorf("failed to restore timer state: %s", err)
	}
	s.timerCoordinator.Start(ctx)

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

	s.metricsManager.GaugeLifeSignal.Set(0)

	s.otelShutdown()
	log.Trace("otel shut down ...")

	// the workout and rest countdown state survives in the snapshot store,
	// pending push notifications do not
	s.timerCoordinator.Stop()
	s.pushScheduler.StopAll()

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

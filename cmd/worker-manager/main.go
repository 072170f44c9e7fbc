// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"recruitment-workers/internal/common/camunda"
	"recruitment-workers/internal/common/config"
	"recruitment-workers/internal/common/database"
	"recruitment-workers/internal/common/logger"
	"recruitment-workers/internal/common/observability"
	"recruitment-workers/internal/common/validation"
	"recruitment-workers/internal/recruitment"
	"recruitment-workers/internal/repository/cache"
	"recruitment-workers/internal/repository/postgres"
	"recruitment-workers/internal/repository/search"
	"recruitment-workers/pkg/registry"

	// Application lifecycle workers
	ana "recruitment-workers/internal/workers/recruitment/application-next-actions"
	atj "recruitment-workers/internal/workers/recruitment/apply-to-job"
	eva "recruitment-workers/internal/workers/recruitment/evaluate-application"

	// Skill test workers
	gtd "recruitment-workers/internal/workers/recruitment/get-test-detail"
	ltr "recruitment-workers/internal/workers/recruitment/list-test-results"
	sst "recruitment-workers/internal/workers/recruitment/start-skill-test"
	sub "recruitment-workers/internal/workers/recruitment/submit-skill-test"

	// Job posting workers
	ast "recruitment-workers/internal/workers/recruitment/add-skill-test"
	cj "recruitment-workers/internal/workers/recruitment/close-job"
	crj "recruitment-workers/internal/workers/recruitment/create-job"
	soj "recruitment-workers/internal/workers/recruitment/search-open-jobs"
	uj "recruitment-workers/internal/workers/recruitment/update-job"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := logger.New("info", "console")
		boot.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.Observability.ServiceName)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var zeebe *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebe, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			ConnectionTimeout:      10 * time.Second,
			RequestTimeout:         config.GetDuration(cfg.Camunda.RequestTimeout),
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch, nil)
		if err != nil {
			return err
		}
		return esClient.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Init Redis with retry ---
	var rdb *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		rdb, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return rdb.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer rdb.Close()
	zapLog.Info("Redis connected successfully")

	// --- Activity registry and schema validation ---
	reg, err := registry.Default()
	if err != nil {
		zapLog.Fatal("activity registry load failed", zap.Error(err))
	}
	validator, err := validation.NewValidator(reg)
	if err != nil {
		zapLog.Fatal("schema compilation failed", zap.Error(err))
	}
	runner := camunda.NewJobRunner(validator, obs, log)

	// --- Lifecycle engine ---
	service := recruitment.NewService(
		postgres.NewStore(pg),
		cache.NewSkillTestCache(rdb.GetClient(), cfg.Recruitment.CacheTTL()),
		search.NewJobIndex(esClient.Client, cfg.Database.Elasticsearch.JobsIndex),
		recruitment.Config{
			DefaultTestDuration:   cfg.Recruitment.DefaultTestDuration,
			DefaultTestTotalScore: cfg.Recruitment.DefaultTestTotalScore,
			InterviewTimeLayouts:  cfg.Recruitment.InterviewTimeLayouts,
			SearchResultLimit:     cfg.Recruitment.SearchResultLimit,
		},
		log,
	)

	// timeout resolves a handler's execution deadline: catalogue first, package default otherwise.
	timeout := func(taskType string, fallback time.Duration) time.Duration {
		if activity, ok := reg.Find(taskType); ok {
			return activity.TimeoutDuration(fallback)
		}
		return fallback
	}

	// --- Register workers ---
	handlers := map[string]camunda.JobHandler{
		atj.TaskType: atj.NewHandler(&atj.Config{Timeout: timeout(atj.TaskType, atj.LoadConfig().Timeout)}, service, runner, log),
		ana.TaskType: ana.NewHandler(&ana.Config{Timeout: timeout(ana.TaskType, ana.LoadConfig().Timeout)}, service, runner, log),
		eva.TaskType: eva.NewHandler(&eva.Config{Timeout: timeout(eva.TaskType, eva.LoadConfig().Timeout)}, service, runner, log),
		sst.TaskType: sst.NewHandler(&sst.Config{Timeout: timeout(sst.TaskType, sst.LoadConfig().Timeout)}, service, runner, log),
		sub.TaskType: sub.NewHandler(&sub.Config{Timeout: timeout(sub.TaskType, sub.LoadConfig().Timeout)}, service, runner, log),
		gtd.TaskType: gtd.NewHandler(&gtd.Config{Timeout: timeout(gtd.TaskType, gtd.LoadConfig().Timeout)}, service, runner, log),
		ltr.TaskType: ltr.NewHandler(&ltr.Config{Timeout: timeout(ltr.TaskType, ltr.LoadConfig().Timeout)}, service, runner, log),
		crj.TaskType: crj.NewHandler(&crj.Config{Timeout: timeout(crj.TaskType, crj.LoadConfig().Timeout)}, service, runner, log),
		ast.TaskType: ast.NewHandler(&ast.Config{Timeout: timeout(ast.TaskType, ast.LoadConfig().Timeout)}, service, runner, log),
		uj.TaskType:  uj.NewHandler(&uj.Config{Timeout: timeout(uj.TaskType, uj.LoadConfig().Timeout)}, service, runner, log),
		cj.TaskType:  cj.NewHandler(&cj.Config{Timeout: timeout(cj.TaskType, cj.LoadConfig().Timeout)}, service, runner, log),
		soj.TaskType: soj.NewHandler(&soj.Config{Timeout: timeout(soj.TaskType, soj.LoadConfig().Timeout)}, service, runner, log),
	}

	var workers []worker.JobWorker
	for _, taskType := range reg.TaskTypes() {
		handler, ok := handlers[taskType]
		if !ok {
			zapLog.Warn("no handler for registered task type", zap.String("taskType", taskType))
			continue
		}
		if jw := camunda.StartWorker(zeebe.GetClient(), taskType, config.GetWorkerConfig(cfg, taskType), handler, log); jw != nil {
			workers = append(workers, jw)
		}
	}
	zapLog.Info("Workers registered", zap.Int("count", len(workers)))

	// --- Health & Metrics Server ---
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{}
		status := http.StatusOK
		probe := func(name string, check func(context.Context) error) {
			checkCtx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
			defer cancel()
			if err := check(checkCtx); err != nil {
				checks[name] = err.Error()
				status = http.StatusServiceUnavailable
				return
			}
			checks[name] = "ok"
		}
		probe("zeebe", zeebe.HealthCheck)
		probe("postgres", pg.Ping)
		probe("redis", rdb.Ping)

		checks["time"] = time.Now().Format(time.RFC3339)
		if status == http.StatusOK {
			checks["status"] = "ready"
		} else {
			checks["status"] = "not ready"
		}
		writeStatus(w, status, checks)
	})
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              cfg.Observability.MetricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, jw := range workers {
		jw.Close()
	}
	for _, jw := range workers {
		jw.AwaitClose()
	}

	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping Health/Metrics server", zap.Error(err))
	}
	if err := zeebe.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func writeStatus(w http.ResponseWriter, status int, body map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

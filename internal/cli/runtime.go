package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"github.com/shaiso/Kannon/internal/config"
	"github.com/shaiso/Kannon/internal/domain"
	"github.com/shaiso/Kannon/internal/lock"
	"github.com/shaiso/Kannon/internal/mq"
	"github.com/shaiso/Kannon/internal/pipeline"
	"github.com/shaiso/Kannon/internal/repo"
	"github.com/shaiso/Kannon/internal/sink"
	"github.com/shaiso/Kannon/internal/source"
	"github.com/shaiso/Kannon/internal/statusapi"
	"github.com/shaiso/Kannon/internal/strategy"
	"github.com/shaiso/Kannon/internal/telemetry"
	"github.com/shaiso/Kannon/internal/worker"
)

// shutdownTimeout: время на остановку сервера состояния.
const shutdownTimeout = 10 * time.Second

// Runtime: подключения и общие компоненты одной команды.
type Runtime struct {
	cfg    *config.Config
	logger *slog.Logger

	registry *prometheus.Registry
	metrics  *telemetry.Metrics
	tracker  *statusapi.Tracker
	server   *statusapi.Server

	pool    *pgxpool.Pool
	journal *repo.Journal
	conn    *mq.Connection
	redis   *redis.Client

	// executable: путь к бинарнику для воркеров-процессов.
	executable func() (string, error)
}

// Open подключает бэкенды, которые нужны конфигурации: PostgreSQL при
// заданном db-url, RabbitMQ при runtime=process.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Runtime, error) {
	if logger == nil {
		logger = slog.Default()
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	rt := &Runtime{
		cfg:        cfg,
		logger:     logger,
		registry:   registry,
		metrics:    telemetry.NewMetrics(registry),
		tracker:    statusapi.NewTracker(),
		executable: os.Executable,
	}

	if cfg.DBURL != "" {
		pool, err := repo.NewPool(ctx, cfg.DBURL)
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		if err := repo.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		rt.pool = pool
		rt.journal = repo.NewJournal(pool)
		logger.Info("connected to database")
	}

	if cfg.Runtime == config.RuntimeProcess {
		conn, err := mq.NewConnection(cfg.BrokerURL, logger)
		if err != nil {
			rt.Close()
			return nil, fmt.Errorf("connect broker: %w", err)
		}
		rt.conn = conn
	}

	return rt, nil
}

// Close освобождает подключения.
func (r *Runtime) Close() {
	if r.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		if err := r.server.Shutdown(ctx); err != nil {
			r.logger.Warn("status server shutdown error", "error", err)
		}
		cancel()
	}
	if r.conn != nil {
		if err := r.conn.Close(); err != nil {
			r.logger.Warn("broker close error", "error", err)
		}
	}
	if r.redis != nil {
		r.redis.Close()
	}
	if r.pool != nil {
		r.pool.Close()
	}
}

// Pool возвращает пул PostgreSQL или nil, если db-url не задан.
func (r *Runtime) Pool() *pgxpool.Pool {
	return r.pool
}

// Tracker возвращает снимок текущего run'а.
func (r *Runtime) Tracker() *statusapi.Tracker {
	return r.tracker
}

// StartServer запускает сервер состояния, если задан metrics-addr.
func (r *Runtime) StartServer() error {
	if r.cfg.MetricsAddr == "" {
		return nil
	}

	server := statusapi.New(statusapi.Config{
		Addr:     r.cfg.MetricsAddr,
		Tracker:  r.tracker,
		Gatherer: r.registry,
		Logger:   r.logger,
	})
	if err := server.Start(); err != nil {
		return fmt.Errorf("start status server: %w", err)
	}
	r.server = server
	return nil
}

// RunBatch выполняет один пакет задач по конфигурации.
//
// Каталог вывода создаётся один раз до первой задачи. Run
// отслеживается Tracker'ом и, при наличии БД, журналом.
func (r *Runtime) RunBatch(ctx context.Context) (*domain.Run, *strategy.Summary, error) {
	cfg := r.cfg

	style, err := domain.ParseStyle(cfg.Style)
	if err != nil {
		return nil, nil, err
	}
	scope, err := worker.ParseScope(cfg.Exclusive)
	if err != nil {
		return nil, nil, err
	}

	run := domain.NewRun(cfg.Dataset, style, cfg.Output, cfg.Iterations, cfg.Parallel)
	logger := telemetry.WithRunID(r.logger, run.ID.String())

	if err := sink.EnsureDir(cfg.Output); err != nil {
		return run, nil, err
	}

	body, err := pipeline.Default(cfg.Output, style, logger)
	if err != nil {
		return run, nil, err
	}

	launcher, err := r.launcher(logger)
	if err != nil {
		return run, nil, err
	}

	st, err := strategy.New(strategy.Config{
		Parallel: cfg.Parallel,
		RunID:    run.ID,
		Body:     body,
		Launcher: launcher,
		Scope:    scope,
		Recorder: r.recorder(),
		Metrics:  r.metrics,
		Logger:   logger,
	})
	if err != nil {
		return run, nil, err
	}

	tasks := source.BuildTasks(cfg.Dataset, cfg.Iterations)

	run.MarkRunning()
	r.tracker.Begin(run)
	if r.journal != nil {
		if err := r.journal.RunCreated(ctx, run); err != nil {
			logger.Warn("failed to journal run", "error", err)
		}
	}

	logger.Info("run started",
		"dataset", cfg.Dataset,
		"style", style,
		"tasks", len(tasks),
		"workers", cfg.Parallel,
		"runtime", cfg.Runtime,
	)

	summary, runErr := st.Run(ctx, tasks)
	if runErr != nil {
		run.MarkFailed(runErr)
	} else {
		run.MarkSucceeded()
	}

	var results []worker.Result
	if summary != nil {
		results = summary.Results
	}
	r.tracker.End(run, results)

	if r.journal != nil {
		if err := r.journal.RunUpdated(context.WithoutCancel(ctx), run); err != nil {
			logger.Warn("failed to journal run result", "error", err)
		}
	}

	if runErr != nil {
		return run, summary, runErr
	}

	logger.Info("All tasks completed.", "tasks", len(tasks), "duration", summary.Duration())
	return run, summary, nil
}

// ServeWorker потребляет очередь run'а в брокере до sentinel'а.
// Эксклюзивная область разделяется воркерами через Redis.
func (r *Runtime) ServeWorker(ctx context.Context, runID uuid.UUID, id int) (*worker.Report, error) {
	cfg := r.cfg
	report := &worker.Report{WorkerID: id}

	if r.conn == nil {
		return report, errors.New("worker needs a broker connection")
	}

	style, err := domain.ParseStyle(cfg.Style)
	if err != nil {
		return report, err
	}
	scope, err := worker.ParseScope(cfg.Exclusive)
	if err != nil {
		return report, err
	}

	logger := telemetry.WithRunID(r.logger, runID.String())

	client, err := r.connectRedis(ctx)
	if err != nil {
		return report, err
	}

	body, err := pipeline.Default(cfg.Output, style, logger)
	if err != nil {
		return report, err
	}

	w := worker.New(worker.Config{
		ID:    id,
		RunID: runID,
		Queue: mq.NewRunQueue(r.conn, runID, logger),
		Body:  body,
		Gate: lock.NewRedisGate(client, lock.RedisConfig{
			Key:    runID.String(),
			TTL:    cfg.LockTTL,
			Logger: logger,
		}),
		Scope:    scope,
		Recorder: r.recorder(),
		Metrics:  r.metrics,
		Logger:   logger,
	})

	return w.Run(ctx)
}

func (r *Runtime) connectRedis(ctx context.Context) (*redis.Client, error) {
	if r.redis != nil {
		return r.redis, nil
	}

	client := redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: ping redis %s: %w", lock.ErrLockAcquire, r.cfg.RedisAddr, err)
	}

	r.redis = client
	return client, nil
}

// recorder собирает Tracker и журнал (если есть) в один Recorder.
func (r *Runtime) recorder() worker.Recorder {
	if r.journal == nil {
		return r.tracker
	}
	return worker.Recorders(r.tracker, r.journal)
}

// launcher возвращает ExecLauncher для runtime=process; nil означает
// воркеров-горутин.
func (r *Runtime) launcher(logger *slog.Logger) (strategy.Launcher, error) {
	if r.cfg.Runtime != config.RuntimeProcess || r.cfg.Parallel == 0 {
		return nil, nil
	}

	exe, err := r.executable()
	if err != nil {
		return nil, fmt.Errorf("%w: locate executable: %w", strategy.ErrLaunch, err)
	}

	return strategy.NewExecLauncher(strategy.ExecConfig{
		Command: []string{exe, "worker"},
		Args:    WorkerArgs(r.cfg),
		Env:     WorkerEnv(r.cfg),
		Conn:    r.conn,
		Logger:  logger,
	}), nil
}

// WorkerArgs возвращает флаги, общие для всех воркеров-процессов run'а.
func WorkerArgs(cfg *config.Config) []string {
	return []string{
		"--" + config.KeyStyle, cfg.Style,
		"--" + config.KeyOutput, cfg.Output,
		"--" + config.KeyExclusive, cfg.Exclusive,
		"--" + config.KeyRedisAddr, cfg.RedisAddr,
		"--" + config.KeyLockTTL, cfg.LockTTL.String(),
		"--" + config.KeyLogLevel, cfg.LogLevel,
		"--" + config.KeyLogFormat, cfg.LogFormat,
	}
}

// WorkerEnv передаёт воркерам адреса с учётными данными через
// окружение, а не через argv.
func WorkerEnv(cfg *config.Config) []string {
	env := []string{config.EnvPrefix + "_BROKER_URL=" + cfg.BrokerURL}
	if cfg.DBURL != "" {
		env = append(env, config.EnvPrefix+"_DB_URL="+cfg.DBURL)
	}
	return env
}

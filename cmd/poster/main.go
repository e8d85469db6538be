package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"oryx-daily/internal/config"
	"oryx-daily/internal/domain/entity"
	"oryx-daily/internal/infra/condenser"
	"oryx-daily/internal/infra/feed"
	"oryx-daily/internal/infra/slack"
	workerPkg "oryx-daily/internal/infra/worker"
	"oryx-daily/internal/scheduler"
	"oryx-daily/internal/usecase/digest"
	"oryx-daily/internal/usecase/post"
)

// Exit codes for one-shot runs.
const (
	exitOK     = 0
	exitFailed = 1 // at least one channel failed
	exitConfig = 2 // configuration invalid, nothing attempted
)

func main() {
	once := flag.Bool("once", false, "post one digest immediately and exit")
	daemon := flag.Bool("daemon", false, "run the scheduler loop, posting daily")
	flag.Parse()

	logger := initLogger()

	daemonMode, err := selectMode(*once, *daemon)
	if err != nil {
		logger.Error("invalid invocation", slog.Any("error", err))
		os.Exit(exitConfig)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration invalid", slog.Any("error", err))
		os.Exit(exitConfig)
	}
	logger.Info("configuration loaded",
		slog.Int("channels", len(cfg.Channels)),
		slog.String("post_at", cfg.Schedule.String()),
		slog.String("digest_source", cfg.Digest.Source))

	metrics := workerPkg.NewPosterMetrics()
	settings := workerPkg.LoadSettingsFromEnv(logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The generator binding is resolved exactly once; daemon runs reuse it
	// for the process lifetime.
	binding := resolveGenerator(logger, cfg.Digest)
	svc := post.NewService(
		binding,
		condenser.FromEnv(condenser.LoadSettings()),
		slack.NewClient(slack.Config{BotToken: cfg.BotToken}),
		digest.Options{Hours: cfg.Digest.WindowHours, VerifiedOnly: cfg.Digest.VerifiedOnly},
	)

	if daemonMode {
		os.Exit(runDaemon(ctx, logger, cfg, settings, metrics, svc))
	}
	os.Exit(runOnce(ctx, cfg, settings, svc))
}

// selectMode maps the flag pair to a run mode. The poster is a scheduler
// first: a plain invocation runs the daemon loop, and one-shot posting is
// the explicit --once case (for operators driving it from an external cron).
func selectMode(once, daemon bool) (daemonMode bool, err error) {
	if once && daemon {
		return false, errors.New("--once and --daemon are mutually exclusive")
	}
	return !once, nil
}

// runOnce executes a single digest run and maps the outcomes to an exit
// code: 0 when every channel was sent, 1 otherwise.
func runOnce(ctx context.Context, cfg *config.Config, settings workerPkg.Settings, svc *post.Service) int {
	runCtx, cancel := context.WithTimeout(ctx, settings.RunTimeout)
	defer cancel()

	outcomes := svc.RunAll(runCtx, time.Now().In(cfg.Schedule.Location), cfg.Channels)

	code := exitOK
	for _, o := range outcomes {
		if !o.Sent() {
			code = exitFailed
		}
	}
	return code
}

// runDaemon serves health and metrics endpoints and fires a run at each
// scheduled time until the process receives SIGINT or SIGTERM.
func runDaemon(ctx context.Context, logger *slog.Logger, cfg *config.Config, settings workerPkg.Settings, metrics *workerPkg.PosterMetrics, svc *post.Service) int {
	startMetricsServer(ctx, logger, settings.MetricsPort)

	healthServer := workerPkg.NewHealthServer(addr(settings.HealthPort), logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()

	daemon := scheduler.NewDaemon(cfg.Schedule, settings.RunTimeout, func(runCtx context.Context, fireAt time.Time) {
		metrics.RecordFire()
		svc.RunAll(runCtx, fireAt, cfg.Channels)
	})
	daemon.OnSchedule = metrics.SetNextFire

	healthServer.SetReady(true)
	err := daemon.Run(ctx)
	healthServer.SetReady(false)

	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("daemon stopped with error", slog.Any("error", err))
		return exitFailed
	}
	logger.Info("shutdown complete")
	return exitOK
}

// resolveGenerator builds the generator resolution order from the digest
// settings. A shared fetcher backs both feed generators so circuit breaker
// state spans the whole run.
func resolveGenerator(logger *slog.Logger, settings config.DigestSettings) digest.Binding {
	fetcher := feed.NewFetcher(&http.Client{Timeout: 30 * time.Second})

	gnews := digest.Candidate{
		Name:   "gnews",
		Source: entity.DigestSourcePrimary,
		New:    func() (digest.Generator, error) { return feed.NewGoogleNews(fetcher), nil },
	}
	curated := digest.Candidate{
		Name:   "curated",
		Source: entity.DigestSourcePrimary,
		New:    func() (digest.Generator, error) { return feed.NewCurated(fetcher), nil },
	}

	var candidates []digest.Candidate
	switch settings.Source {
	case "curated":
		candidates = []digest.Candidate{curated, gnews}
	case "placeholder":
		candidates = nil
	default: // "gnews"
		candidates = []digest.Candidate{gnews, curated}
	}

	return digest.Resolve(logger, candidates)
}

// initLogger configures the process-wide structured JSON logger.
func initLogger() *slog.Logger {
	level := slog.LevelInfo
	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}

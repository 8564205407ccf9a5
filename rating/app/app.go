package app

import (
	"context"
	stdLog "log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Astemirdum/driver-rating/pkg/kafka"
	"github.com/Astemirdum/driver-rating/pkg/logger"
	"github.com/Astemirdum/driver-rating/pkg/storage"
	"github.com/Astemirdum/driver-rating/rating/config"
	"github.com/Astemirdum/driver-rating/rating/internal/handler"
	"github.com/Astemirdum/driver-rating/rating/internal/model"
	"github.com/Astemirdum/driver-rating/rating/internal/queue"
	"github.com/Astemirdum/driver-rating/rating/internal/repository"
	"github.com/Astemirdum/driver-rating/rating/internal/server"
	"github.com/Astemirdum/driver-rating/rating/internal/service"
	"github.com/Astemirdum/driver-rating/rating/migrations"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func Run(cfg *config.Config) {
	log, closeLog, err := logger.NewLogger(cfg.Log, "rating")
	if err != nil {
		stdLog.Fatal("logger ", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg, log)
	stop()
	if err != nil {
		log.Error("rating", zap.Error(err))
		closeLog()
		os.Exit(1)
	}
	log.Info("Graceful shutdown finished")
	closeLog()
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	repo, closeRepo, err := newRepository(ctx, &cfg.Database, log)
	if err != nil {
		return errors.Wrap(err, "repository")
	}
	defer closeRepo()

	var opts []service.Option
	if cfg.Kafka.Enabled() {
		producer, err := kafka.NewProducer(cfg.Kafka)
		if err != nil {
			return errors.Wrap(err, "kafka producer")
		}
		q := queue.NewEnqueuer(producer, queue.NewCircuitBreaker(), log)
		defer func() {
			if err := q.Close(); err != nil {
				log.Error("kafka producer close", zap.Error(err))
			}
		}()
		opts = append(opts, service.WithPublisher(q))
	}
	svc := service.NewService(repo, log, opts...)

	h := handler.New(svc, log, handler.WithAPIRateLimit(cfg.Server.APIRateLimit))
	srv := server.NewServer(cfg.Server, h.NewRouter())

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http server start ON: ", zap.String("addr", srv.Addr()))
		return srv.Run()
	})
	g.Go(func() error {
		<-gCtx.Done()
		log.Debug("Graceful shutdown", zap.Error(context.Cause(gCtx)))
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Stop(closeCtx)
	})
	return g.Wait()
}

// newRepository picks the store named by the database URL. The returned
// close func is always safe to call.
func newRepository(ctx context.Context, cfg *storage.Config, log *zap.Logger) (repository.Repository, func(), error) {
	if storage.IsMemory(cfg.URL) {
		var seed []model.CreateRating
		if cfg.SeedFixtures {
			seed = repository.Fixtures()
		}
		log.Info("using in-process store", zap.Int("seeded", len(seed)))
		return repository.NewMemory(seed...), func() {}, nil
	}

	db, err := storage.Open(ctx, cfg, migrations.MigrationFiles, log)
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() {
		if err := db.Close(); err != nil {
			log.Error("db close", zap.Error(err))
		}
	}
	repo, err := repository.NewRepository(db, log)
	if err != nil {
		closeDB()
		return nil, nil, err
	}
	log.Info("using database store", zap.String("dialect", string(db.Dialect)))
	return repo, closeDB, nil
}

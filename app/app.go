package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rentora/rental-service/config"
	fleetHandler "github.com/rentora/rental-service/internal/fleet/handler"
	fleetRepo "github.com/rentora/rental-service/internal/fleet/repository"
	fleetService "github.com/rentora/rental-service/internal/fleet/service"
	"github.com/rentora/rental-service/internal/handler"
	identityHandler "github.com/rentora/rental-service/internal/identity/handler"
	identityRepo "github.com/rentora/rental-service/internal/identity/repository"
	identityService "github.com/rentora/rental-service/internal/identity/service"
	reservationHandler "github.com/rentora/rental-service/internal/reservation/handler"
	reservationRepo "github.com/rentora/rental-service/internal/reservation/repository"
	reservationService "github.com/rentora/rental-service/internal/reservation/service"
	"github.com/rentora/rental-service/internal/server"
	statsHandler "github.com/rentora/rental-service/internal/stats/handler"
	statsRepo "github.com/rentora/rental-service/internal/stats/repository"
	statsService "github.com/rentora/rental-service/internal/stats/service"
	"github.com/rentora/rental-service/migrations"
	"github.com/rentora/rental-service/pkg/kafka"
	"github.com/rentora/rental-service/pkg/logger"
	"github.com/rentora/rental-service/pkg/postgres"
)

func Run(cfg *config.Config) error {
	log := logger.NewLogger(cfg.Log, "rental")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	db, err := postgres.NewPostgresDB(ctx, &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		return fmt.Errorf("db init %v", err)
	}
	pool, err := postgres.NewPool(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("pgx pool init %v", err)
	}

	idRepo, err := identityRepo.NewRepository(db, log)
	if err != nil {
		return fmt.Errorf("repo identity %v", err)
	}
	idSvc := identityService.NewService(idRepo, log)
	if err := idSvc.EnsureAdmin(ctx, cfg.Admin.Name, cfg.Admin.Email, cfg.Admin.License, cfg.Admin.Password); err != nil {
		return fmt.Errorf("seed admin %v", err)
	}

	flRepo, err := fleetRepo.NewRepository(db, log)
	if err != nil {
		return fmt.Errorf("repo fleet %v", err)
	}
	flSvc := fleetService.NewService(flRepo, log)

	producer, err := kafka.NewProducer(cfg.Kafka)
	if err != nil {
		log.Warn("kafka producer unavailable, booking events disabled", zap.Error(err))
	}

	rsRepo, err := reservationRepo.NewRepository(db, log)
	if err != nil {
		return fmt.Errorf("repo reservation %v", err)
	}
	rsSvc := reservationService.NewService(rsRepo, idSvc, flSvc, producer, log)

	stRepo, err := statsRepo.NewRepository(pool, log)
	if err != nil {
		return fmt.Errorf("repo stats %v", err)
	}
	stSvc := statsService.NewService(stRepo, log)

	h := handler.New(
		identityHandler.New(idSvc, log),
		fleetHandler.New(flSvc, log),
		reservationHandler.New(rsSvc, log),
		statsHandler.New(stSvc, log),
	)

	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if producer != nil {
		consumer, err := kafka.NewConsumer(cfg.Kafka, kafka.StatsConsumerGroup)
		if err != nil {
			log.Warn("kafka consumer unavailable, stats disabled", zap.Error(err))
		} else {
			g.Go(func() error {
				kafka.Consume(gCtx, consumer, statsHandler.NewConsumer(stSvc.Record, log), kafka.BookingTopic, log)
				return consumer.Close()
			})
		}
	}

	<-gCtx.Done()
	log.Debug("Graceful shutdown")

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err := srv.Stop(closeCtx); err != nil {
		log.Error("srv.Stop", zap.Error(err))
	}
	if err := g.Wait(); err != nil {
		log.Debug("shutdown", zap.Error(err))
	}
	if producer != nil {
		_ = producer.Close()
	}
	pool.Close()
	if err := db.Close(); err != nil {
		log.Error("db.Close", zap.Error(err))
	}
	log.Info("Graceful shutdown finished")
	return nil
}

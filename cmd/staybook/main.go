package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"staybook/internal/app/bookings"
	"staybook/internal/domain/booking"
	"staybook/internal/domain/reservation"
	"staybook/internal/infra/broker/kafka"
	"staybook/internal/infra/config"
	"staybook/internal/infra/db/mongo"
	ginserver "staybook/internal/infra/http/gin"
	"staybook/internal/infra/obs"
	"staybook/internal/infra/storage/memory"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration invalid", "error", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.Env)

	store, ready, err := buildStore(cfg, logger)
	if err != nil {
		logger.Error("reservation store init failed", "error", err)
		os.Exit(1)
	}

	var events bookings.EventSink
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
		if err != nil {
			logger.Error("kafka producer init failed", "error", err)
			os.Exit(1)
		}
		defer producer.Close()
		events = kafka.EventPublisher{Producer: producer, TopicPrefix: cfg.KafkaTopicPrefix}
		logger.Info("kafka events enabled", "brokers", cfg.KafkaBrokers)
	}

	service := &bookings.Service{
		Store:  store,
		Rules:  booking.StayRules{MinNights: cfg.MinStayNights, MaxNights: cfg.MaxStayNights},
		Events: events,
		Logger: logger,
	}

	server := ginserver.NewServer(cfg,
		obs.Middleware{Logger: logger},
		obs.HealthHandlers{Ready: ready},
		ginserver.Handlers{
			Booking:        ginserver.BookingHandler{Service: service},
			Reservation:    ginserver.ReservationHandler{Service: service},
			AuthMiddleware: ginserver.AuthMiddleware{Secret: []byte(cfg.JWTSecret)}.Handle,
		})

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "store", cfg.StoreMode)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

func buildStore(cfg config.Config, logger *slog.Logger) (reservation.Store, func() error, error) {
	switch cfg.StoreMode {
	case "mongo":
		client, err := mongo.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, nil, err
		}
		ready := func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return client.Ping(ctx)
		}
		return mongo.NewReservationRepository(client.DB), ready, nil
	default:
		logger.Info("using in-memory reservation store")
		return memory.NewReservationStore(), func() error { return nil }, nil
	}
}

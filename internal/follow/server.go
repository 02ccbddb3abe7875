package follow

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"microblog/internal/database"
	"microblog/internal/events"
)

// Server bundles the follow service HTTP server with the resources it
// owns, so the main can shut everything down in order.
type Server struct {
	Port string

	httpServer *http.Server
	db         database.Service
	producer   *events.Producer
}

// NewServer wires the follow service: database pool, optional Kafka
// producer, service, router.
func NewServer(ctx context.Context, logger *slog.Logger) (*Server, error) {
	port := getEnv("FOLLOW_SERVICE_PORT", "8085")

	db, err := database.New(ctx)
	if err != nil {
		return nil, err
	}

	var producer *events.Producer
	var publisher events.Publisher
	if cfg, cfgErr := events.LoadConfig(); cfgErr != nil {
		logger.Info("event publishing disabled", "reason", cfgErr)
	} else if p, prodErr := events.NewProducer(cfg, logger); prodErr != nil {
		logger.Warn("kafka producer unavailable", "error", prodErr)
	} else {
		producer = p
		publisher = p
	}

	svc := NewService(NewRepository(db), publisher, logger)

	return &Server{
		Port:     port,
		db:       db,
		producer: producer,
		httpServer: &http.Server{
			Addr:         ":" + port,
			Handler:      SetupRouter(svc),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}, nil
}

func (s *Server) Addr() string {
	return s.httpServer.Addr
}

func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown stops accepting requests, then flushes the producer and closes
// the pool.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	if s.producer != nil {
		s.producer.Close()
	}
	s.db.Close()
	return err
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

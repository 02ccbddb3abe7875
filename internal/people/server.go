package people

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"microblog/internal/database"
	"microblog/internal/storage"
)

type Server struct {
	Port string

	httpServer *http.Server
	db         database.Service
}

// NewServer wires the people service: database pool, optional avatar
// storage, service, router.
func NewServer(ctx context.Context, logger *slog.Logger) (*Server, error) {
	port := getEnv("PEOPLE_SERVICE_PORT", "8086")

	db, err := database.New(ctx)
	if err != nil {
		return nil, err
	}

	avatars, err := storage.New(ctx)
	if err != nil {
		logger.Info("avatar storage disabled", "reason", err)
		avatars = nil
	}

	svc := NewService(NewRepository(db), avatars, logger)

	return &Server{
		Port: port,
		db:   db,
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

func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	s.db.Close()
	return err
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

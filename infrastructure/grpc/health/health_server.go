package health

import (
	"context"
	"hybrid-guard/runtime"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// ScorerService is the name probes use to ask specifically about the scorer.
const ScorerService = "hybridguard.Scorer"

type SnapshotProvider interface {
	Current() *runtime.ModelSnapshot
}

// Server reports SERVING once a model snapshot is published and NOT_SERVING before.
type Server struct {
	*grpchealth.Server
	models   SnapshotProvider
	interval time.Duration
	log      *slog.Logger
}

func NewServer(models SnapshotProvider, interval time.Duration, log *slog.Logger) *Server {
	s := &Server{Server: grpchealth.NewServer(), models: models, interval: interval, log: log}
	s.Refresh()
	return s
}

func (s *Server) Register(g *grpc.Server) {
	grpc_health_v1.RegisterHealthServer(g, s.Server)
}

// Refresh aligns the reported status with the registry.
func (s *Server) Refresh() grpc_health_v1.HealthCheckResponse_ServingStatus {
	status := grpc_health_v1.HealthCheckResponse_NOT_SERVING
	if s.models.Current() != nil {
		status = grpc_health_v1.HealthCheckResponse_SERVING
	}
	s.SetServingStatus("", status)
	s.SetServingStatus(ScorerService, status)
	return status
}

// Run polls the registry so reloads triggered elsewhere show up in probes.
func (s *Server) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	last := s.Refresh()
	for {
		select {
		case <-ctx.Done():
			s.Shutdown()
			return ctx.Err()
		case <-ticker.C:
			if status := s.Refresh(); status != last {
				s.log.Info("Health status changed", "from", last, "to", status)
				last = status
			}
		}
	}
}

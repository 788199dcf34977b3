package grpc_server

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

const ServiceName = "byway.Store"

// HealthServer reports SERVING for the store while probe succeeds.
type HealthServer struct {
	srv      *grpc.Server
	health   *health.Server
	probe    func(ctx context.Context) error
	interval time.Duration
	log      *slog.Logger
}

func NewHealthServer(probe func(ctx context.Context) error, interval time.Duration, log *slog.Logger) *HealthServer {
	hs := health.NewServer()
	srv := grpc.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	reflection.Register(srv)

	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	return &HealthServer{srv: srv, health: hs, probe: probe, interval: interval, log: log}
}

func (s *HealthServer) Server() *grpc.Server {
	return s.srv
}

// Check runs the probe once and publishes the result for both the store
// service and the server-wide "" entry.
func (s *HealthServer) Check(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	status := healthpb.HealthCheckResponse_SERVING
	if err := s.probe(ctx); err != nil {
		s.log.Warn("health probe failed", "error", err)
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	s.health.SetServingStatus(ServiceName, status)
	s.health.SetServingStatus("", status)
	return status
}

// Watch re-probes every interval until ctx is done.
func (s *HealthServer) Watch(ctx context.Context) {
	s.Check(ctx)
	t := time.NewTicker(s.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			probeCtx, cancel := context.WithTimeout(ctx, s.interval)
			s.Check(probeCtx)
			cancel()
		}
	}
}

// Stop marks everything NOT_SERVING and drains in-flight calls.
func (s *HealthServer) Stop() {
	s.health.Shutdown()
	s.srv.GracefulStop()
}

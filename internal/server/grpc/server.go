// Package grpc runs the gRPC health endpoint used by orchestrator probes.
// The serving status follows periodic database pings.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/librarylite/internal/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type GRPCServer struct {
	address  string
	db       Pinger
	interval time.Duration
	health   *health.Server
	logger   logging.Logger
}

func NewGRPCServer(a string, db Pinger, interval time.Duration, l logging.Logger) *GRPCServer {
	return &GRPCServer{
		address:  a,
		db:       db,
		interval: interval,
		health:   health.NewServer(),
		logger:   l.With("module", "grpc_server"),
	}
}

func (s *GRPCServer) Run(ctx context.Context) error {
	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.serve(ctx, listen)
}

func (s *GRPCServer) serve(ctx context.Context, listen net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor))
	healthpb.RegisterHealthServer(srv, s.health)

	s.check(ctx)
	go s.watch(ctx)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil {
		return err
	}
	return nil
}

func (s *GRPCServer) watch(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.check(ctx)
		}
	}
}

// check pings the database and updates the overall serving status.
func (s *GRPCServer) check(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, s.interval)
	defer cancel()

	st := healthpb.HealthCheckResponse_SERVING
	if err := s.db.PingContext(pingCtx); err != nil {
		if ctx.Err() != nil {
			return
		}
		s.logger.Warn(ctx, "database ping failed", "error", err)
		st = healthpb.HealthCheckResponse_NOT_SERVING
	}
	s.health.SetServingStatus("", st)
}

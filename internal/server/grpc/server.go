// Package grpc exposes the Petzy services over gRPC.
package grpc

import (
	"context"
	"net"

	"google.golang.org/grpc"

	"github.com/dmitrijs2005/petzy/internal/logging"
	"github.com/dmitrijs2005/petzy/internal/prefs"
	pb "github.com/dmitrijs2005/petzy/internal/proto"
	"github.com/dmitrijs2005/petzy/internal/server/hub"
	"github.com/dmitrijs2005/petzy/internal/server/models"
	"github.com/dmitrijs2005/petzy/internal/server/services"
)

type userSvc interface {
	Register(ctx context.Context, username, petName string, salt, verifier []byte) (*models.User, error)
	GetSalt(ctx context.Context, username string) ([]byte, error)
	Login(ctx context.Context, username string, verifierCandidate []byte) (*services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
}

type documentSvc interface {
	Get(ctx context.Context, id string) (*models.Document, error)
	CreateOrMerge(ctx context.Context, id string, fields map[string]any) (int64, error)
	PartialUpdate(ctx context.Context, id string, writes []prefs.Write) (int64, error)
	Subscribe(id string) *hub.Subscription
	Unsubscribe(sub *hub.Subscription)
}

type catalogSvc interface {
	List(ctx context.Context) ([]*models.Companion, error)
	ResolveModelURL(ctx context.Context, petID string) (*services.ResolvedCompanion, error)
}

type GRPCServer struct {
	pb.UnimplementedPetzyServiceServer
	address   string
	users     userSvc
	documents documentSvc
	catalog   catalogSvc
	logger    logging.Logger
	jwtSecret []byte
}

func NewGRPCServer(a string, l logging.Logger, us userSvc, ds documentSvc, cs catalogSvc, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		users:     us,
		documents: ds,
		catalog:   cs,
		jwtSecret: []byte(secretKey),
	}
}

// Run serves until ctx is cancelled. Subscribe streams never finish on
// their own, so shutdown uses Stop, which cancels them.
func (s *GRPCServer) Run(ctx context.Context) error {

	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(s.accessTokenInterceptor),
		grpc.ChainStreamInterceptor(s.streamAccessTokenInterceptor),
	)

	pb.RegisterPetzyServiceServer(srv, s)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.Stop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}

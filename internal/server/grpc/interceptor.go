package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/petzy/internal/common"
	pb "github.com/dmitrijs2005/petzy/internal/proto"
	"github.com/dmitrijs2005/petzy/internal/server/auth"
	"github.com/dmitrijs2005/petzy/internal/server/metrics"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// protectedMethods require a valid access token.
var protectedMethods = map[string]bool{
	pb.PetzyService_GetDocument_FullMethodName:           true,
	pb.PetzyService_CreateOrMergeDocument_FullMethodName: true,
	pb.PetzyService_PartialUpdateDocument_FullMethodName: true,
	pb.PetzyService_Subscribe_FullMethodName:             true,
	pb.PetzyService_ListCompanions_FullMethodName:        true,
	pb.PetzyService_ResolveModelURL_FullMethodName:       true,
}

// ClaimsFromContext returns the token claims stored by the interceptors.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*auth.Claims)
	return c, ok
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	if !protectedMethods[info.FullMethod] {
		return handler(ctx, req)
	}

	ctx, err := s.authenticate(ctx)
	if err != nil {
		return nil, err
	}
	return handler(ctx, req)
}

func (s *GRPCServer) streamAccessTokenInterceptor(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	if !protectedMethods[info.FullMethod] {
		return handler(srv, ss)
	}

	ctx, err := s.authenticate(ss.Context())
	if err != nil {
		return err
	}
	return handler(srv, &authedStream{ServerStream: ss, ctx: ctx})
}

// authenticate validates the access_token metadata and stores its claims.
func (s *GRPCServer) authenticate(ctx context.Context) (context.Context, error) {
	var accessToken string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		values := md.Get(common.AccessTokenHeaderName)
		if len(values) > 0 {
			accessToken = values[0]
		}
	}
	if len(accessToken) == 0 {
		metrics.AuthFailure("missing_token")
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	claims, err := auth.ParseToken(accessToken, s.jwtSecret)
	if err != nil {
		metrics.AuthFailure("invalid_token")
		if errors.Is(err, common.ErrTokenExpired) {
			return nil, status.Error(codes.Unauthenticated, "token expired")
		}
		return nil, status.Error(codes.Unauthenticated, "invalid token")
	}

	return context.WithValue(ctx, claimsKey, claims), nil
}

// authorizeDocument allows access only to the caller's own document, whose
// id is the normalized username carried in the token.
func authorizeDocument(ctx context.Context, id string) error {
	claims, ok := ClaimsFromContext(ctx)
	if !ok {
		return status.Error(codes.Unauthenticated, "missing token")
	}
	if id == "" {
		return status.Error(codes.InvalidArgument, "document id is required")
	}
	if id != claims.UserName {
		metrics.AuthFailure("forbidden")
		return status.Error(codes.PermissionDenied, "document belongs to another user")
	}
	return nil
}

type authedStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *authedStream) Context() context.Context { return s.ctx }

package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/petzy/internal/common"
	"github.com/dmitrijs2005/petzy/internal/prefs"
	pb "github.com/dmitrijs2005/petzy/internal/proto"
)

const (
	defaultBaseBackoff = 500 * time.Millisecond
	defaultMaxBackoff  = 30 * time.Second
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      pb.PetzyServiceClient

	mu           sync.RWMutex
	accessToken  string
	refreshToken string

	// reconnect backoff of subscriptions
	baseBackoff time.Duration
	maxBackoff  time.Duration
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) tokens() (string, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken, s.refreshToken
}

func (s *GRPCClient) setTokens(access, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = access
	s.refreshToken = refresh
}

func isTokenExpired(err error) bool {
	st, ok := status.FromError(err)
	if !ok {
		return false
	}
	return st.Code() == codes.Unauthenticated && st.Message() == common.ErrTokenExpired.Error()
}

// refreshTokens swaps the refresh token for a new pair.
func (s *GRPCClient) refreshTokens(ctx context.Context) error {
	_, refresh := s.tokens()
	if refresh == "" {
		return ErrUnauthorized
	}

	resp, err := s.client.RefreshToken(ctx, &pb.RefreshTokenRequest{RefreshToken: refresh})
	if err != nil {
		return err
	}

	s.setTokens(resp.GetAccessToken(), resp.GetRefreshToken())
	return nil
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	access, _ := s.tokens()
	err := invoker(withAccessToken(ctx, access), method, req, reply, cc, opts...)
	if err == nil || !isTokenExpired(err) {
		return err
	}

	if rerr := s.refreshTokens(ctx); rerr != nil {
		if errors.Is(rerr, ErrUnauthorized) {
			return err
		}
		return rerr
	}

	// tokens refreshed, retrying with the new access token
	access, _ = s.tokens()
	return invoker(withAccessToken(ctx, access), method, req, reply, cc, opts...)
}

func (s *GRPCClient) streamAccessTokenInterceptor(
	ctx context.Context,
	desc *grpc.StreamDesc,
	cc *grpc.ClientConn,
	method string,
	streamer grpc.Streamer,
	opts ...grpc.CallOption,
) (grpc.ClientStream, error) {
	access, _ := s.tokens()
	return streamer(withAccessToken(ctx, access), desc, cc, method, opts...)
}

func NewPetzyClient(endpointURL string) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	err := c.InitGRPCClient()
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {

	conn, err := grpc.NewClient(s.endpointURL,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
		grpc.WithStreamInterceptor(s.streamAccessTokenInterceptor),
	)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = pb.NewPetzyServiceClient(conn)
	return nil
}

func (s *GRPCClient) Register(ctx context.Context, userName, petName string, salt []byte, key []byte) error {

	req := &pb.RegisterUserRequest{Username: userName, PetName: petName, Salt: salt, Verifier: key}

	_, err := s.client.RegisterUser(ctx, req)

	if err != nil {
		return s.mapError(err)
	}

	return nil

}

func (s *GRPCClient) GetSalt(ctx context.Context, userName string) ([]byte, error) {

	ctx, cancel := context.WithTimeout(ctx, 12*time.Second)
	defer cancel()

	req := &pb.GetSaltRequest{Username: userName}

	resp, err := s.client.GetSalt(ctx, req)

	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.GetSalt(), nil
}

func (s *GRPCClient) Login(ctx context.Context, userName string, key []byte) error {

	req := &pb.LoginRequest{Username: userName, VerifierCandidate: key}

	resp, err := s.client.Login(ctx, req)

	if err != nil {
		return s.mapError(err)
	}

	s.setTokens(resp.GetAccessToken(), resp.GetRefreshToken())

	return nil

}

// Logout forgets the session tokens.
func (s *GRPCClient) Logout() {
	s.setTokens("", "")
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) Ping(ctx context.Context) error {

	req := &pb.PingRequest{}

	resp, err := s.client.Ping(ctx, req)
	if err != nil {
		return s.mapError(err)
	}

	if resp.GetStatus() != "OK" {
		return ErrUnavailable
	}

	return nil

}

func (s *GRPCClient) GetDocument(ctx context.Context, id string) (*prefs.Document, error) {
	resp, err := s.client.GetDocument(ctx, &pb.GetDocumentRequest{Id: id})
	if err != nil {
		return nil, s.mapError(err)
	}
	if resp.GetDocument() == nil {
		return nil, common.ErrorNotFound
	}
	doc, err := prefs.DecodeDocument(resp.GetDocument().GetBody())
	if err != nil {
		return nil, fmt.Errorf("decode document %s: %w", id, err)
	}
	return doc, nil
}

func (s *GRPCClient) CreateOrMergeDocument(ctx context.Context, id string, fields map[string]any) error {
	body, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode fields: %w", err)
	}
	_, err = s.client.CreateOrMergeDocument(ctx, &pb.CreateOrMergeDocumentRequest{Id: id, Fields: body})
	if err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) PartialUpdateDocument(ctx context.Context, id string, writes []prefs.Write) error {
	req, err := toProtoWrites(writes)
	if err != nil {
		return err
	}
	_, err = s.client.PartialUpdateDocument(ctx, &pb.PartialUpdateDocumentRequest{Id: id, Writes: req})
	if err != nil {
		return s.mapError(err)
	}
	return nil
}

// toProtoWrites encodes literal values as JSON. Increments carry only the
// delta.
func toProtoWrites(writes []prefs.Write) ([]*pb.Write, error) {
	out := make([]*pb.Write, 0, len(writes))
	for _, w := range writes {
		pw := &pb.Write{Path: w.Path, Op: string(w.Op), Delta: w.Delta}
		if w.Op == prefs.OpSet {
			raw, err := json.Marshal(w.Value)
			if err != nil {
				return nil, fmt.Errorf("encode %s: %w", w.PathString(), err)
			}
			pw.Value = raw
		}
		out = append(out, pw)
	}
	return out, nil
}

func (s *GRPCClient) ListCompanions(ctx context.Context) ([]prefs.Companion, error) {
	resp, err := s.client.ListCompanions(ctx, &pb.ListCompanionsRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	out := make([]prefs.Companion, 0, len(resp.GetCompanions()))
	for _, c := range resp.GetCompanions() {
		out = append(out, fromProtoCompanion(c))
	}
	return out, nil
}

func (s *GRPCClient) ResolveModelURL(ctx context.Context, petID string) (prefs.Companion, error) {
	resp, err := s.client.ResolveModelURL(ctx, &pb.ResolveModelURLRequest{PetId: petID})
	if err != nil {
		return prefs.Companion{}, s.mapError(err)
	}
	if resp.GetCompanion() == nil {
		return prefs.Companion{}, common.ErrorNotFound
	}
	return fromProtoCompanion(resp.GetCompanion()), nil
}

func fromProtoCompanion(c *pb.Companion) prefs.Companion {
	return prefs.Companion{ID: c.Id, Name: c.Name, File: c.File, URL: c.Url}
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.NotFound:
		return common.ErrorNotFound
	case codes.AlreadyExists:
		return common.ErrorAlreadyExists
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}

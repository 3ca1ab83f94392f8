package grpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/petzy/internal/common"
	"github.com/dmitrijs2005/petzy/internal/prefs"
	pb "github.com/dmitrijs2005/petzy/internal/proto"
	"github.com/dmitrijs2005/petzy/internal/server/models"
	"github.com/dmitrijs2005/petzy/internal/server/services"
)

func (s *GRPCServer) Ping(ctx context.Context, req *pb.PingRequest) (*pb.PingResponse, error) {
	return &pb.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) RegisterUser(ctx context.Context, req *pb.RegisterUserRequest) (*pb.RegisterUserResponse, error) {

	s.logger.Info(ctx, "Registration request")

	user, err := s.users.Register(ctx, req.Username, req.PetName, req.Salt, req.Verifier)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorAlreadyExists):
			return nil, status.Error(codes.AlreadyExists, "username is taken")
		case errors.Is(err, common.ErrorInvalidUsername):
			return nil, status.Error(codes.InvalidArgument, "invalid username")
		}
		s.logger.Error(ctx, "registration failed", "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}

	s.logger.Info(ctx, "Registered", "username", user.UserName)
	return &pb.RegisterUserResponse{Username: user.UserName}, nil
}

func (s *GRPCServer) GetSalt(ctx context.Context, req *pb.GetSaltRequest) (*pb.GetSaltResponse, error) {

	salt, err := s.users.GetSalt(ctx, req.Username)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	return &pb.GetSaltResponse{Salt: salt}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *pb.LoginRequest) (*pb.LoginResponse, error) {

	tokens, err := s.users.Login(ctx, req.Username, req.VerifierCandidate)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			return nil, status.Error(codes.Unauthenticated, "unauthorized")
		}
		return nil, status.Error(codes.Internal, "internal error")
	}

	return &pb.LoginResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *pb.RefreshTokenRequest) (*pb.RefreshTokenResponse, error) {

	tokens, err := s.users.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		if errors.Is(err, common.ErrRefreshTokenExpired) || errors.Is(err, common.ErrorNotFound) {
			return nil, status.Error(codes.Unauthenticated, "refresh token rejected")
		}
		s.logger.Error(ctx, "refresh failed", "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}

	return &pb.RefreshTokenResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) GetDocument(ctx context.Context, req *pb.GetDocumentRequest) (*pb.GetDocumentResponse, error) {
	if err := authorizeDocument(ctx, req.GetId()); err != nil {
		return nil, err
	}

	doc, err := s.documents.Get(ctx, req.GetId())
	if err != nil {
		return nil, s.documentError(ctx, "get", err)
	}

	return &pb.GetDocumentResponse{Document: toProtoDocument(doc)}, nil
}

func (s *GRPCServer) CreateOrMergeDocument(ctx context.Context, req *pb.CreateOrMergeDocumentRequest) (*pb.CreateOrMergeDocumentResponse, error) {
	if err := authorizeDocument(ctx, req.GetId()); err != nil {
		return nil, err
	}

	fields, err := decodeObject(req.Fields)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	version, err := s.documents.CreateOrMerge(ctx, req.GetId(), fields)
	if err != nil {
		return nil, s.documentError(ctx, "create_or_merge", err)
	}

	return &pb.CreateOrMergeDocumentResponse{Version: version}, nil
}

func (s *GRPCServer) PartialUpdateDocument(ctx context.Context, req *pb.PartialUpdateDocumentRequest) (*pb.PartialUpdateDocumentResponse, error) {
	if err := authorizeDocument(ctx, req.GetId()); err != nil {
		return nil, err
	}

	writes, err := FromProtoWrites(req.Writes)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	version, err := s.documents.PartialUpdate(ctx, req.GetId(), writes)
	if err != nil {
		return nil, s.documentError(ctx, "partial_update", err)
	}

	return &pb.PartialUpdateDocumentResponse{Version: version}, nil
}

// Subscribe sends the current state of the document, then every committed
// version until the client goes away. Versions older than the last one sent
// are skipped.
func (s *GRPCServer) Subscribe(req *pb.SubscribeRequest, stream pb.PetzyService_SubscribeServer) error {
	ctx := stream.Context()
	id := req.GetId()
	if err := authorizeDocument(ctx, id); err != nil {
		return err
	}

	sub := s.documents.Subscribe(id)
	defer s.documents.Unsubscribe(sub)

	s.logger.Debug(ctx, "subscribed", "document", id, "subscriber", sub.ID)

	var sent int64 = -1
	doc, err := s.documents.Get(ctx, id)
	switch {
	case err == nil:
		if err := stream.Send(&pb.DocumentSnapshot{Id: id, Exists: true, Document: toProtoDocument(doc)}); err != nil {
			return err
		}
		sent = doc.Version
	case errors.Is(err, common.ErrorNotFound):
		if err := stream.Send(&pb.DocumentSnapshot{Id: id}); err != nil {
			return err
		}
	default:
		return s.documentError(ctx, "subscribe", err)
	}

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug(ctx, "subscription closed", "document", id, "subscriber", sub.ID)
			return nil
		case doc, ok := <-sub.C:
			if !ok {
				return nil
			}
			if doc.Version <= sent {
				continue
			}
			if err := stream.Send(&pb.DocumentSnapshot{Id: id, Exists: true, Document: toProtoDocument(doc)}); err != nil {
				return err
			}
			sent = doc.Version
		}
	}
}

func (s *GRPCServer) ListCompanions(ctx context.Context, req *pb.ListCompanionsRequest) (*pb.ListCompanionsResponse, error) {

	items, err := s.catalog.List(ctx)
	if err != nil {
		s.logger.Error(ctx, "list companions failed", "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}

	out := make([]*pb.Companion, 0, len(items))
	for _, c := range items {
		out = append(out, &pb.Companion{Id: c.ID, Name: c.Name, File: c.File})
	}
	return &pb.ListCompanionsResponse{Companions: out}, nil
}

func (s *GRPCServer) ResolveModelURL(ctx context.Context, req *pb.ResolveModelURLRequest) (*pb.ResolveModelURLResponse, error) {

	c, err := s.catalog.ResolveModelURL(ctx, req.GetPetId())
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, status.Error(codes.NotFound, "unknown companion")
		}
		s.logger.Error(ctx, "resolve model failed", "pet", req.GetPetId(), "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}

	return &pb.ResolveModelURLResponse{Companion: &pb.Companion{Id: c.ID, Name: c.Name, File: c.File, Url: c.URL}}, nil
}

// documentError maps document service errors to status codes.
func (s *GRPCServer) documentError(ctx context.Context, op string, err error) error {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "document not found")
	case errors.Is(err, services.ErrNoWrites), errors.Is(err, services.ErrInvalidWrite):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "canceled")
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "deadline exceeded")
	}
	s.logger.Error(ctx, "document operation failed", "op", op, "error", err)
	return status.Error(codes.Internal, "internal error")
}

func toProtoDocument(d *models.Document) *pb.Document {
	return &pb.Document{Id: d.ID, Body: json.RawMessage(d.Body), Version: d.Version}
}

// FromProtoWrites converts wire writes, decoding literal values with exact
// integers.
func FromProtoWrites(in []*pb.Write) ([]prefs.Write, error) {
	out := make([]prefs.Write, 0, len(in))
	for i, w := range in {
		if w == nil {
			return nil, fmt.Errorf("write %d is empty", i)
		}
		pw := prefs.Write{Path: w.Path, Op: prefs.OpKind(w.Op), Delta: w.Delta}
		if pw.Op == prefs.OpSet && len(w.Value) > 0 {
			v, err := decodeValue(w.Value)
			if err != nil {
				return nil, fmt.Errorf("write %d: %w", i, err)
			}
			pw.Value = v
		}
		out = append(out, pw)
	}
	return out, nil
}

func decodeValue(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func decodeObject(raw []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return map[string]any{}, nil
	}
	v, err := decodeValue(raw)
	if err != nil {
		return nil, err
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, errors.New("fields must be a JSON object")
	}
	return m, nil
}

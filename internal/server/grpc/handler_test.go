package grpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/petzy/internal/common"
	"github.com/dmitrijs2005/petzy/internal/prefs"
	pb "github.com/dmitrijs2005/petzy/internal/proto"
	"github.com/dmitrijs2005/petzy/internal/server/models"
	"github.com/dmitrijs2005/petzy/internal/server/services"
)

func TestPing_OK(t *testing.T) {
	s := newServer(&fakeUser{}, newFakeDocs(), &fakeCatalog{})
	resp, err := s.Ping(context.Background(), &pb.PingRequest{})
	if err != nil {
		t.Fatalf("Ping error: %v", err)
	}
	if resp.GetStatus() != "OK" {
		t.Fatalf("unexpected status: %q", resp.GetStatus())
	}
}

func TestRegisterUser(t *testing.T) {
	u := &fakeUser{regResp: &models.User{ID: "1", UserName: "alice"}}
	s := newServer(u, newFakeDocs(), &fakeCatalog{})

	resp, err := s.RegisterUser(context.Background(), &pb.RegisterUserRequest{Username: "Alice", PetName: "Rex"})
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.GetUsername())
	assert.Equal(t, "Rex", u.regPet)

	cases := []struct {
		err  error
		code codes.Code
	}{
		{fmt.Errorf("error creating user: %w", common.ErrorAlreadyExists), codes.AlreadyExists},
		{common.ErrorInvalidUsername, codes.InvalidArgument},
		{errors.New("db down"), codes.Internal},
	}
	for _, c := range cases {
		u.regErr = c.err
		_, err := s.RegisterUser(context.Background(), &pb.RegisterUserRequest{Username: "x"})
		assert.Equal(t, c.code, status.Code(err), "for %v", c.err)
	}
}

func TestGetSalt(t *testing.T) {
	s := newServer(&fakeUser{saltResp: []byte("SALT")}, newFakeDocs(), &fakeCatalog{})
	resp, err := s.GetSalt(context.Background(), &pb.GetSaltRequest{Username: "a"})
	require.NoError(t, err)
	assert.Equal(t, []byte("SALT"), resp.GetSalt())

	s = newServer(&fakeUser{saltErr: common.ErrorInternal}, newFakeDocs(), &fakeCatalog{})
	_, err = s.GetSalt(context.Background(), &pb.GetSaltRequest{Username: "a"})
	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestLogin(t *testing.T) {
	s := newServer(&fakeUser{loginResp: &services.TokenPair{AccessToken: "a", RefreshToken: "r"}}, newFakeDocs(), &fakeCatalog{})
	resp, err := s.Login(context.Background(), &pb.LoginRequest{Username: "u"})
	require.NoError(t, err)
	assert.Equal(t, "a", resp.GetAccessToken())
	assert.Equal(t, "r", resp.GetRefreshToken())

	s = newServer(&fakeUser{loginErr: common.ErrorUnauthorized}, newFakeDocs(), &fakeCatalog{})
	_, err = s.Login(context.Background(), &pb.LoginRequest{Username: "u"})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	s = newServer(&fakeUser{loginErr: common.ErrorInternal}, newFakeDocs(), &fakeCatalog{})
	_, err = s.Login(context.Background(), &pb.LoginRequest{Username: "u"})
	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestRefreshToken(t *testing.T) {
	u := &fakeUser{refreshResp: &services.TokenPair{AccessToken: "a", RefreshToken: "r"}}
	s := newServer(u, newFakeDocs(), &fakeCatalog{})
	resp, err := s.RefreshToken(context.Background(), &pb.RefreshTokenRequest{RefreshToken: "r0"})
	require.NoError(t, err)
	assert.Equal(t, "a", resp.GetAccessToken())

	u.refreshErr = common.ErrRefreshTokenExpired
	_, err = s.RefreshToken(context.Background(), &pb.RefreshTokenRequest{RefreshToken: "r0"})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	u.refreshErr = fmt.Errorf("error searching refresh token: %w", common.ErrorNotFound)
	_, err = s.RefreshToken(context.Background(), &pb.RefreshTokenRequest{RefreshToken: "r0"})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	u.refreshErr = errors.New("boom")
	_, err = s.RefreshToken(context.Background(), &pb.RefreshTokenRequest{RefreshToken: "r0"})
	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestGetDocument(t *testing.T) {
	docs := newFakeDocs()
	docs.docs["alice"] = &models.Document{ID: "alice", Body: []byte(`{"username":"alice"}`), Version: 3}
	s := newServer(&fakeUser{}, docs, &fakeCatalog{})

	resp, err := s.GetDocument(authedCtx("alice"), &pb.GetDocumentRequest{Id: "alice"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.GetDocument().GetVersion())
	assert.JSONEq(t, `{"username":"alice"}`, string(resp.GetDocument().GetBody()))

	_, err = s.GetDocument(authedCtx("alice"), &pb.GetDocumentRequest{Id: "bob"})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	_, err = s.GetDocument(authedCtx("carol"), &pb.GetDocumentRequest{Id: "carol"})
	assert.Equal(t, codes.NotFound, status.Code(err))

	docs.err = errors.New("db down")
	_, err = s.GetDocument(authedCtx("alice"), &pb.GetDocumentRequest{Id: "alice"})
	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestPartialUpdateDocument(t *testing.T) {
	docs := newFakeDocs()
	docs.docs["alice"] = &models.Document{ID: "alice", Body: []byte(`{}`), Version: 1}
	s := newServer(&fakeUser{}, docs, &fakeCatalog{})

	req := &pb.PartialUpdateDocumentRequest{
		Id: "alice",
		Writes: []*pb.Write{
			{Path: []string{"preferences", "dailyLog", "feed"}, Op: "increment", Delta: 1},
			{Path: []string{"preferences", "lastAction"}, Op: "set", Value: json.RawMessage(`"feed"`)},
			{Path: []string{"preferences", "stats"}, Op: "set", Value: json.RawMessage(`{"xp":9007199254740993}`)},
		},
	}
	resp, err := s.PartialUpdateDocument(authedCtx("alice"), req)
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.GetVersion())

	require.Len(t, docs.writes, 3)
	assert.Equal(t, prefs.OpIncrement, docs.writes[0].Op)
	assert.Equal(t, int64(1), docs.writes[0].Delta)
	assert.Equal(t, "feed", docs.writes[1].Value)
	xp, _ := prefs.AsInt64(docs.writes[2].Value.(map[string]any)["xp"])
	assert.Equal(t, int64(9007199254740993), xp)

	_, err = s.PartialUpdateDocument(authedCtx("bob"), req)
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	_, err = s.PartialUpdateDocument(authedCtx("ghost"), &pb.PartialUpdateDocumentRequest{Id: "ghost", Writes: req.Writes})
	assert.Equal(t, codes.NotFound, status.Code(err))

	bad := &pb.PartialUpdateDocumentRequest{Id: "alice", Writes: []*pb.Write{{Path: []string{"a"}, Op: "set", Value: json.RawMessage(`{`)}}}
	_, err = s.PartialUpdateDocument(authedCtx("alice"), bad)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestPartialUpdateDocument_ServiceValidationMapsToInvalidArgument(t *testing.T) {
	docs := newFakeDocs()
	docs.docs["alice"] = &models.Document{ID: "alice"}
	docs.err = fmt.Errorf("%w: unknown op", services.ErrInvalidWrite)
	s := newServer(&fakeUser{}, docs, &fakeCatalog{})

	_, err := s.PartialUpdateDocument(authedCtx("alice"), &pb.PartialUpdateDocumentRequest{
		Id:     "alice",
		Writes: []*pb.Write{{Path: []string{"a"}, Op: "delete"}},
	})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestCreateOrMergeDocument(t *testing.T) {
	docs := newFakeDocs()
	s := newServer(&fakeUser{}, docs, &fakeCatalog{})

	resp, err := s.CreateOrMergeDocument(authedCtx("alice"), &pb.CreateOrMergeDocumentRequest{
		Id:     "alice",
		Fields: json.RawMessage(`{"username_lc":"alice","preferences":{"dailyLog":{"feed":1}}}`),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.GetVersion())
	assert.Equal(t, "alice", docs.fields["username_lc"])

	_, err = s.CreateOrMergeDocument(authedCtx("alice"), &pb.CreateOrMergeDocumentRequest{Id: "alice", Fields: json.RawMessage(`[1]`)})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = s.CreateOrMergeDocument(authedCtx("alice"), &pb.CreateOrMergeDocumentRequest{Id: "bob"})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))
}

func TestCompanions(t *testing.T) {
	cat := &fakeCatalog{
		items: []*models.Companion{{ID: "fox", Name: "Fox", File: "/models/fox.glb", ObjectKey: "models/fox.glb"}},
		url:   "https://s3/fox",
	}
	s := newServer(&fakeUser{}, newFakeDocs(), cat)

	list, err := s.ListCompanions(authedCtx("alice"), &pb.ListCompanionsRequest{})
	require.NoError(t, err)
	require.Len(t, list.Companions, 1)
	assert.Equal(t, "fox", list.Companions[0].Id)
	assert.Empty(t, list.Companions[0].Url)

	res, err := s.ResolveModelURL(authedCtx("alice"), &pb.ResolveModelURLRequest{PetId: "fox"})
	require.NoError(t, err)
	assert.Equal(t, "https://s3/fox", res.GetCompanion().Url)

	_, err = s.ResolveModelURL(authedCtx("alice"), &pb.ResolveModelURLRequest{PetId: "unicorn"})
	assert.Equal(t, codes.NotFound, status.Code(err))

	cat.urlErr = errors.New("presign failed")
	_, err = s.ResolveModelURL(authedCtx("alice"), &pb.ResolveModelURLRequest{PetId: "fox"})
	assert.Equal(t, codes.Internal, status.Code(err))

	cat.listErr = errors.New("db down")
	_, err = s.ListCompanions(authedCtx("alice"), &pb.ListCompanionsRequest{})
	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestFromProtoWrites(t *testing.T) {
	got, err := FromProtoWrites([]*pb.Write{
		{Path: []string{"preferences", "meshes"}, Op: "set", Value: json.RawMessage(`[{"id":1}]`)},
		{Path: []string{"preferences", "dailyLog", "play"}, Op: "increment", Delta: 2, Value: json.RawMessage(`"ignored"`)},
		{Path: []string{"preferences", "selectedPet"}, Op: "set"},
	})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []any{map[string]any{"id": json.Number("1")}}, got[0].Value)
	assert.Nil(t, got[1].Value)
	assert.Nil(t, got[2].Value)

	_, err = FromProtoWrites([]*pb.Write{nil})
	assert.Error(t, err)
}

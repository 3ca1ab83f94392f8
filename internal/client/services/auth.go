// Package services contains the application services of the Petzy client:
// authentication, the preference cache with its subscription lifecycle,
// and the pet care actions built on top of it.
package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/petzy/internal/client/client"
	"github.com/dmitrijs2005/petzy/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/petzy/internal/common"
	"github.com/dmitrijs2005/petzy/internal/cryptox"
	"github.com/dmitrijs2005/petzy/internal/dbx"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - OnlineLogin: authenticate against the server and persist offline auth data.
//   - OfflineLogin: verify credentials against locally cached data.
//   - Register: create a new user and its pet on the server.
//   - Ping: check server liveness.
//   - Close: release underlying client resources.
//   - ClearOfflineData: wipe locally cached metadata.
//
// Usernames are compared in normalized form.
type AuthService interface {
	OfflineLogin(ctx context.Context, username string, password []byte) error
	OnlineLogin(ctx context.Context, username string, password []byte) error
	Register(ctx context.Context, username, petName string, password []byte) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
	ClearOfflineData(ctx context.Context) error
}

// authService is the concrete AuthService backed by a remote Client
// and the local SQLite database for offline metadata.
type authService struct {
	client client.Client
	db     *sql.DB
}

// NewAuthService constructs an AuthService bound to the given API client and DB.
func NewAuthService(client client.Client, db *sql.DB) AuthService {
	return &authService{client: client, db: db}
}

func (a *authService) getMetadataRepo() metadata.Repository {
	return metadata.NewSQLiteRepository(a.db)
}

// OfflineLogin verifies (username, password) against the cached salt and
// verifier. Missing cache yields client.ErrLocalDataNotAvailable, a
// mismatch client.ErrUnauthorized.
func (a *authService) OfflineLogin(ctx context.Context, username string, password []byte) error {
	saved, ok, err := a.getMetadataRepo().LoadCredentials(ctx)
	if err != nil {
		return fmt.Errorf("read offline data: %w", err)
	}
	if !ok {
		return client.ErrLocalDataNotAvailable
	}

	if saved.Username != common.NormalizeUsername(username) {
		return client.ErrUnauthorized
	}
	if !cryptox.Verify(password, saved.Salt, saved.Verifier) {
		return client.ErrUnauthorized
	}
	return nil
}

// OnlineLogin authenticates against the server and saves offline metadata
// (username, salt, verifier).
func (a *authService) OnlineLogin(ctx context.Context, username string, password []byte) error {
	salt, err := a.client.GetSalt(ctx, username)
	if err != nil {
		return fmt.Errorf("get salt error: %w", err)
	}

	verifier := cryptox.VerifierFor(password, salt)

	if err := a.client.Login(ctx, username, verifier); err != nil {
		return fmt.Errorf("login error: %w", err)
	}

	if err := a.saveOfflineData(ctx, common.NormalizeUsername(username), salt, verifier); err != nil {
		return fmt.Errorf("offline data saving error: %w", err)
	}
	return nil
}

// saveOfflineData persists the offline login material in one transaction.
func (a *authService) saveOfflineData(ctx context.Context, username string, salt []byte, verifier []byte) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return metadata.NewSQLiteRepository(tx).SaveCredentials(ctx, metadata.Credentials{
			Username: username,
			Salt:     salt,
			Verifier: verifier,
		})
	})
}

// Register creates a new account on the server from a fresh salt and the
// verifier of the password under it.
func (a *authService) Register(ctx context.Context, username, petName string, password []byte) error {
	salt := cryptox.NewSalt()
	verifier := cryptox.VerifierFor(password, salt)

	return a.client.Register(ctx, username, petName, salt, verifier)
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// Close releases resources held by the underlying client.
func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}

// ClearOfflineData wipes local metadata and forgets the session tokens.
func (a *authService) ClearOfflineData(ctx context.Context) error {
	a.client.Logout()
	return a.getMetadataRepo().Clear(ctx)
}

package cli

import (
	"context"
	"errors"
	"os"

	"github.com/dmitrijs2005/petzy/internal/client/client"
	"github.com/dmitrijs2005/petzy/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a username, a pet name and a password and creates
// the account. The password is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}
	if common.NormalizeUsername(userName) == "" {
		return common.ErrorInvalidUsername
	}

	petName, err := getSimpleText(a.reader, "Name your pet", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Register(ctx, userName, petName, password); err != nil {
		return err
	}

	printlnFn("Success! You can login now.")
	return nil
}

// Login prompts for credentials and authenticates.
//
// The online login is tried first. If the server is unavailable it falls
// back to the offline check against locally cached data. On success the
// mode is set (ModeOnline or ModeOffline), the last companion is restored
// from the local shadow and the preference subscription is started. Both
// failing sets ModeDisabled.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	err = a.authService.OnlineLogin(ctx, userName, password)
	switch {
	case err == nil:
		a.logger.Info(ctx, "login successful")
		a.setMode(ModeOnline)
	case errors.Is(err, client.ErrUnavailable):
		a.logger.Warn(ctx, "server unavailable, trying offline login")
		if err = a.authService.OfflineLogin(ctx, userName, password); err != nil {
			a.logger.Warn(ctx, "offline login unsuccessful", "error", err)
			a.setMode(ModeDisabled)
			return err
		}
		a.setMode(ModeOffline)
	default:
		a.logger.Warn(ctx, "login unsuccessful", "error", err)
		return err
	}

	a.setSession(common.NormalizeUsername(userName), true)

	a.prefs.RestoreCompanion(ctx)
	if err := a.prefs.Start(ctx, userName); err != nil {
		a.logger.Warn(ctx, "preference sync not started", "error", err)
	}
	return nil
}

// Logout stops the preference sync, clears locally cached offline data and
// ends the session.
func (a *App) Logout(ctx context.Context) error {
	a.prefs.Stop()
	if err := a.authService.ClearOfflineData(ctx); err != nil {
		return err
	}
	a.setSession("", false)
	return nil
}

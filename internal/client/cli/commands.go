package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/petzy/internal/client/client"
	"github.com/dmitrijs2005/petzy/internal/common"
	"github.com/dmitrijs2005/petzy/internal/netx"
	"github.com/dmitrijs2005/petzy/internal/prefs"
)

const defaultHistoryDays = 7

var actionVerbs = map[prefs.ActionKind]string{
	prefs.ActionFeed:     "fed",
	prefs.ActionPlay:     "played with",
	prefs.ActionGroom:    "groomed",
	prefs.ActionRest:     "put to rest",
	prefs.ActionInteract: "cuddled",
}

func (a *App) petName() string {
	if n := a.prefs.User().PetName; n != "" {
		return n
	}
	return "your pet"
}

// Act performs a pet care action; the remaining args form its detail,
// e.g. "feed kibble" or "play fetch".
func (a *App) Act(ctx context.Context, kind prefs.ActionKind, args []string) error {
	if err := a.actions.Perform(ctx, kind, strings.Join(args, " ")); err != nil {
		printlnFn(describeError(err))
		return err
	}
	printlnFn(fmt.Sprintf("You %s %s.", actionVerbs[kind], a.petName()))
	return nil
}

func (a *App) Teleport(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: teleport <scene>")
		return nil
	}
	scene := strings.Join(args, " ")
	if err := a.actions.Teleport(ctx, scene); err != nil {
		printlnFn(describeError(err))
		return err
	}
	printlnFn(fmt.Sprintf("Off to %s!", scene))
	return nil
}

func (a *App) Select(ctx context.Context, args []string) error {
	if len(args) != 1 {
		printlnFn("Usage: select <pet id>")
		return nil
	}
	c, err := a.actions.SelectCompanion(ctx, args[0])
	if err != nil {
		printlnFn(describeError(err))
		return err
	}
	name := c.Name
	if name == "" {
		name = c.ID
	}
	printlnFn(fmt.Sprintf("%s is now your companion.", name))

	if path, err := a.cacheModel(ctx, c); err != nil {
		a.logger.Warn(ctx, "model download failed", "companion", c.ID, "error", err)
	} else if path != "" {
		printlnFn("Model saved to " + path)
	}
	return nil
}

// cacheModel stores the model asset of c under assetDir. It does nothing
// when no asset dir is configured or c has no URL.
func (a *App) cacheModel(ctx context.Context, c prefs.Companion) (string, error) {
	if a.assetDir == "" || c.URL == "" {
		return "", nil
	}
	name := c.ID + filepath.Ext(c.File)
	path := filepath.Join(a.assetDir, filepath.Base(name))

	f, err := os.CreateTemp(a.assetDir, ".download-*")
	if err != nil {
		return "", err
	}
	defer os.Remove(f.Name())

	if _, err := netx.DownloadPresignedURL(ctx, c.URL, f); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	if err := os.Rename(f.Name(), path); err != nil {
		return "", err
	}
	return path, nil
}

// Pets lists the companion catalog.
func (a *App) Pets(ctx context.Context) error {
	list, err := a.actions.Companions(ctx)
	if err != nil {
		printlnFn(describeError(err))
		return err
	}
	if len(list) == 0 {
		printlnFn("No companions available")
		return nil
	}
	for _, c := range list {
		printlnFn(fmt.Sprintf("%-12s %s", c.ID, c.Name))
	}
	return nil
}

// Stats prints the stats derived from the cached preferences.
func (a *App) Stats(ctx context.Context) error {
	v := a.actions.Snapshot()
	s := v.Stats

	printlnFn(fmt.Sprintf("%s on %s", a.petName(), v.Day))
	printlnFn(fmt.Sprintf("  hunger    %3d%%", s.Hunger))
	printlnFn(fmt.Sprintf("  happiness %3d%%", s.Happiness))
	printlnFn(fmt.Sprintf("  energy    %3d%%", s.Energy))
	printlnFn(fmt.Sprintf("  love      %3d%%", s.Love))
	printlnFn(fmt.Sprintf("  xp        %3d%%", s.XP))
	printlnFn(fmt.Sprintf("  streak    %3d%%", s.StreakPercent))
	printlnFn("  today     " + formatCounts(v.Today))
	return nil
}

// History prints the daily counts of the last days, 7 by default.
func (a *App) History(ctx context.Context, args []string) error {
	days := defaultHistoryDays
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			printlnFn("Usage: history [days]")
			return nil
		}
		days = n
	}
	for _, d := range a.actions.History(days) {
		printlnFn(fmt.Sprintf("%s  %s", d.Day, formatCounts(d.Counts)))
	}
	return nil
}

// Status prints the session and sync state.
func (a *App) Status(ctx context.Context) error {
	u := a.prefs.User()
	printlnFn(fmt.Sprintf("user: %s", a.userNameOrDash()))
	if u.PetName != "" {
		printlnFn(fmt.Sprintf("pet:  %s", u.PetName))
	}
	printlnFn(fmt.Sprintf("mode: %s", a.mode()))
	printlnFn(fmt.Sprintf("sync: %s", a.prefs.State()))
	return nil
}

func (a *App) userNameOrDash() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.userName == "" {
		return "-"
	}
	return a.userName
}

func formatCounts(c prefs.Counts) string {
	parts := make([]string, 0, len(prefs.ActionKinds))
	for _, k := range prefs.ActionKinds {
		parts = append(parts, fmt.Sprintf("%s=%d", k, c.Get(k)))
	}
	return strings.Join(parts, " ")
}

// describeError renders an action failure for the user.
func describeError(err error) string {
	var ue *common.UpdateError
	if errors.As(err, &ue) {
		switch ue.Reason {
		case common.ReasonDuplicateIgnored:
			return "Easy, that was just done."
		case common.ReasonNoIdentity:
			return "Please login first."
		case common.ReasonStoreUnreachable:
			return "Server unreachable, try again later."
		}
	}
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return "Not found."
	case errors.Is(err, client.ErrUnavailable):
		return "Server unreachable, try again later."
	}
	return "Error: " + err.Error()
}

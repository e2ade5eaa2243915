package clubsync_test

import (
	"context"
	"testing"
	"time"

	clubsync "github.com/xraph/clubsync"
	"github.com/xraph/clubsync/id"
	"github.com/xraph/clubsync/member"
	"github.com/xraph/clubsync/settings"
	"github.com/xraph/clubsync/store/memory"
	"github.com/xraph/clubsync/types"
)

// newTestPortal builds a started portal over a fresh memory store and
// arranges shutdown at test end.
func newTestPortal(t *testing.T, opts ...clubsync.Option) *clubsync.Portal {
	t.Helper()

	p := clubsync.New(memory.New(), opts...)
	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("start portal: %v", err)
	}
	t.Cleanup(func() {
		if err := p.Stop(); err != nil {
			t.Errorf("stop portal: %v", err)
		}
	})
	return p
}

// seedClub configures a club with a fee table and returns its ID.
func seedClub(t *testing.T, p *clubsync.Portal, fees map[string]types.Money) id.ClubID {
	t.Helper()

	clubID := id.NewClubID()
	cfg := settings.Default(clubID)
	for k, v := range fees {
		cfg.FeeTable[k] = v
	}
	if _, err := p.SaveClubSettings(context.Background(), cfg); err != nil {
		t.Fatalf("seed settings: %v", err)
	}
	return clubID
}

// seedMember creates an active member of the given type.
func seedMember(t *testing.T, p *clubsync.Portal, clubID id.ClubID, name, memberType string) *member.Member {
	t.Helper()

	m, err := p.SaveMember(context.Background(), &member.Member{
		ClubID:     clubID,
		Name:       name,
		MemberType: memberType,
		Status:     member.StatusActive,
	})
	if err != nil {
		t.Fatalf("seed member %s: %v", name, err)
	}
	return m
}

// waitFor polls until cond returns true or the deadline passes.
func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached before deadline")
}

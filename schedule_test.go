package clubsync_test

import (
	"context"
	"errors"
	"testing"
	"time"

	clubsync "github.com/xraph/clubsync"
	"github.com/xraph/clubsync/activity"
	"github.com/xraph/clubsync/id"
	"github.com/xraph/clubsync/instructor"
	"github.com/xraph/clubsync/schedule"
	"github.com/xraph/clubsync/settings"
	"github.com/xraph/clubsync/types"
)

type scheduleFixture struct {
	clubID       id.ClubID
	activityID   id.ActivityID
	instructorID id.InstructorID
}

// newScheduleFixture seeds a club with one activity and one instructor.
func newScheduleFixture(t *testing.T, p *clubsync.Portal, spaces ...string) scheduleFixture {
	t.Helper()
	ctx := context.Background()

	clubID := id.NewClubID()
	cfg := settings.Default(clubID)
	for _, s := range spaces {
		cfg.Spaces = append(cfg.Spaces, settings.Space{Name: s, Color: "#3366ff"})
	}
	if _, err := p.SaveClubSettings(ctx, cfg); err != nil {
		t.Fatal(err)
	}

	act, err := p.SaveActivity(ctx, &activity.Activity{
		ClubID: clubID,
		Name:   "Swimming",
	})
	if err != nil {
		t.Fatal(err)
	}

	inst, err := p.SaveInstructor(ctx, &instructor.Instructor{
		ClubID:    clubID,
		FirstName: "Marta",
		LastName:  "Gómez",
		Email:     "marta@example.com",
	}, "secret")
	if err != nil {
		t.Fatal(err)
	}

	return scheduleFixture{clubID: clubID, activityID: act.ID, instructorID: inst.ID}
}

func (f scheduleFixture) entry(day time.Weekday, start, end string) *schedule.Entry {
	return &schedule.Entry{
		ClubID:       f.clubID,
		ActivityID:   f.activityID,
		InstructorID: f.instructorID,
		Space:        "pool",
		DayOfWeek:    day,
		StartTime:    types.MustTimeOfDay(start),
		EndTime:      types.MustTimeOfDay(end),
	}
}

func TestSaveScheduleEntry(t *testing.T) {
	ctx := context.Background()

	t.Run("NewEntryStartsPending", func(t *testing.T) {
		p := newTestPortal(t)
		f := newScheduleFixture(t, p)

		e, err := p.SaveScheduleEntry(ctx, f.entry(time.Monday, "10:00", "11:00"))
		if err != nil {
			t.Fatal(err)
		}
		if e.Status != schedule.StatusPending {
			t.Errorf("status = %s, want pending", e.Status)
		}
		if e.ID.IsNil() {
			t.Error("entry got no ID")
		}
	})

	t.Run("OverlapDetection", func(t *testing.T) {
		tests := []struct {
			name       string
			day        time.Weekday
			start, end string
			conflict   bool
		}{
			{"overlapping range", time.Monday, "10:30", "11:30", true},
			{"contained range", time.Monday, "10:15", "10:45", true},
			{"identical range", time.Monday, "10:00", "11:00", true},
			{"touching boundary after", time.Monday, "11:00", "12:00", false},
			{"touching boundary before", time.Monday, "09:00", "10:00", false},
			{"same time other weekday", time.Tuesday, "10:00", "11:00", false},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				p := newTestPortal(t)
				f := newScheduleFixture(t, p)

				if _, err := p.SaveScheduleEntry(ctx, f.entry(time.Monday, "10:00", "11:00")); err != nil {
					t.Fatal(err)
				}

				_, err := p.SaveScheduleEntry(ctx, f.entry(tt.day, tt.start, tt.end))
				if tt.conflict && !errors.Is(err, clubsync.ErrScheduleConflict) {
					t.Fatalf("err = %v, want ErrScheduleConflict", err)
				}
				if !tt.conflict && err != nil {
					t.Fatalf("unexpected err: %v", err)
				}
			})
		}
	})

	t.Run("OtherInstructorMayShareSlot", func(t *testing.T) {
		p := newTestPortal(t)
		f := newScheduleFixture(t, p)

		if _, err := p.SaveScheduleEntry(ctx, f.entry(time.Monday, "10:00", "11:00")); err != nil {
			t.Fatal(err)
		}

		other, err := p.SaveInstructor(ctx, &instructor.Instructor{
			ClubID:    f.clubID,
			FirstName: "Diego",
			LastName:  "Ríos",
			Email:     "diego@example.com",
		}, "secret")
		if err != nil {
			t.Fatal(err)
		}

		e := f.entry(time.Monday, "10:00", "11:00")
		e.InstructorID = other.ID
		if _, err := p.SaveScheduleEntry(ctx, e); err != nil {
			t.Fatalf("parallel slot rejected: %v", err)
		}
	})

	t.Run("EditDoesNotConflictWithItself", func(t *testing.T) {
		p := newTestPortal(t)
		f := newScheduleFixture(t, p)

		e, err := p.SaveScheduleEntry(ctx, f.entry(time.Monday, "10:00", "11:00"))
		if err != nil {
			t.Fatal(err)
		}

		e.EndTime = types.MustTimeOfDay("11:30")
		if _, err := p.SaveScheduleEntry(ctx, e); err != nil {
			t.Fatalf("self-overlapping edit rejected: %v", err)
		}
	})

	t.Run("EditPreservesStatusAndEnrollment", func(t *testing.T) {
		p := newTestPortal(t)
		f := newScheduleFixture(t, p)

		e, err := p.SaveScheduleEntry(ctx, f.entry(time.Monday, "10:00", "11:00"))
		if err != nil {
			t.Fatal(err)
		}
		if err := p.SetScheduleStatus(ctx, e.ID, schedule.StatusAccepted, ""); err != nil {
			t.Fatal(err)
		}
		m := seedMember(t, p, f.clubID, "Ana", "cadet")
		if err := p.EnrollMember(ctx, e.ID, m.ID); err != nil {
			t.Fatal(err)
		}

		e.Space = "pool"
		e.StartTime = types.MustTimeOfDay("10:15")
		edited, err := p.SaveScheduleEntry(ctx, e)
		if err != nil {
			t.Fatal(err)
		}
		if edited.Status != schedule.StatusAccepted {
			t.Errorf("status = %s, want accepted", edited.Status)
		}
		if !edited.IsEnrolled(m.ID) {
			t.Error("edit dropped enrollment")
		}
	})

	t.Run("SpaceValidation", func(t *testing.T) {
		p := newTestPortal(t)
		f := newScheduleFixture(t, p, "pool", "gym")

		// Allowed by club spaces.
		if _, err := p.SaveScheduleEntry(ctx, f.entry(time.Monday, "10:00", "11:00")); err != nil {
			t.Fatal(err)
		}

		e := f.entry(time.Tuesday, "10:00", "11:00")
		e.Space = "rooftop"
		if _, err := p.SaveScheduleEntry(ctx, e); !errors.Is(err, clubsync.ErrSpaceNotAllowed) {
			t.Fatalf("err = %v, want ErrSpaceNotAllowed", err)
		}
	})

	t.Run("ActivityRestrictsSpaces", func(t *testing.T) {
		p := newTestPortal(t)
		f := newScheduleFixture(t, p)

		act, err := p.GetActivity(ctx, f.activityID)
		if err != nil {
			t.Fatal(err)
		}
		act.AllowedSpaces = []string{"gym"}
		if _, err := p.SaveActivity(ctx, act); err != nil {
			t.Fatal(err)
		}

		if _, err := p.SaveScheduleEntry(ctx, f.entry(time.Monday, "10:00", "11:00")); !errors.Is(err, clubsync.ErrSpaceNotAllowed) {
			t.Fatalf("err = %v, want ErrSpaceNotAllowed", err)
		}
	})

	t.Run("InvertedRangeRejected", func(t *testing.T) {
		p := newTestPortal(t)
		f := newScheduleFixture(t, p)

		_, err := p.SaveScheduleEntry(ctx, f.entry(time.Monday, "11:00", "10:00"))
		var verr *clubsync.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("err = %v, want ValidationError", err)
		}
	})
}

func TestScheduleStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("DecisionsAndReset", func(t *testing.T) {
		p := newTestPortal(t)
		f := newScheduleFixture(t, p)
		e, err := p.SaveScheduleEntry(ctx, f.entry(time.Monday, "10:00", "11:00"))
		if err != nil {
			t.Fatal(err)
		}

		if err := p.SetScheduleStatus(ctx, e.ID, schedule.StatusRejected, "room under repair"); err != nil {
			t.Fatal(err)
		}
		got, _ := p.GetScheduleEntry(ctx, e.ID)
		if got.Status != schedule.StatusRejected || got.RejectionComment != "room under repair" {
			t.Fatalf("got %s %q, want rejected with comment", got.Status, got.RejectionComment)
		}

		if err := p.ResetScheduleStatus(ctx, e.ID); err != nil {
			t.Fatal(err)
		}
		got, _ = p.GetScheduleEntry(ctx, e.ID)
		if got.Status != schedule.StatusPending || got.RejectionComment != "" {
			t.Fatalf("got %s %q after reset, want pending with empty comment", got.Status, got.RejectionComment)
		}
	})

	t.Run("AcceptanceClearsComment", func(t *testing.T) {
		p := newTestPortal(t)
		f := newScheduleFixture(t, p)
		e, err := p.SaveScheduleEntry(ctx, f.entry(time.Monday, "10:00", "11:00"))
		if err != nil {
			t.Fatal(err)
		}

		if err := p.SetScheduleStatus(ctx, e.ID, schedule.StatusSuggested, "move to 11:00?"); err != nil {
			t.Fatal(err)
		}
		if err := p.SetScheduleStatus(ctx, e.ID, schedule.StatusAccepted, "stale comment"); err != nil {
			t.Fatal(err)
		}
		got, _ := p.GetScheduleEntry(ctx, e.ID)
		if got.Status != schedule.StatusAccepted || got.RejectionComment != "" {
			t.Fatalf("got %s %q, want accepted with empty comment", got.Status, got.RejectionComment)
		}
	})

	t.Run("PendingIsNotADecision", func(t *testing.T) {
		p := newTestPortal(t)
		f := newScheduleFixture(t, p)
		e, err := p.SaveScheduleEntry(ctx, f.entry(time.Monday, "10:00", "11:00"))
		if err != nil {
			t.Fatal(err)
		}

		if err := p.SetScheduleStatus(ctx, e.ID, schedule.StatusPending, ""); !errors.Is(err, clubsync.ErrInvalidTransition) {
			t.Fatalf("err = %v, want ErrInvalidTransition", err)
		}
	})
}

func TestEnrollment(t *testing.T) {
	ctx := context.Background()

	t.Run("CapacityAndMembership", func(t *testing.T) {
		p := newTestPortal(t)
		f := newScheduleFixture(t, p)

		e := f.entry(time.Monday, "10:00", "11:00")
		e.MaxCapacity = 2
		saved, err := p.SaveScheduleEntry(ctx, e)
		if err != nil {
			t.Fatal(err)
		}

		a := seedMember(t, p, f.clubID, "Ana", "cadet")
		b := seedMember(t, p, f.clubID, "Bruno", "cadet")
		c := seedMember(t, p, f.clubID, "Carla", "cadet")

		if err := p.EnrollMember(ctx, saved.ID, a.ID); err != nil {
			t.Fatal(err)
		}
		if err := p.EnrollMember(ctx, saved.ID, a.ID); !errors.Is(err, clubsync.ErrAlreadyEnrolled) {
			t.Fatalf("err = %v, want ErrAlreadyEnrolled", err)
		}
		if err := p.EnrollMember(ctx, saved.ID, b.ID); err != nil {
			t.Fatal(err)
		}
		if err := p.EnrollMember(ctx, saved.ID, c.ID); !errors.Is(err, clubsync.ErrClassFull) {
			t.Fatalf("err = %v, want ErrClassFull", err)
		}

		if err := p.UnenrollMember(ctx, saved.ID, a.ID); err != nil {
			t.Fatal(err)
		}
		if err := p.UnenrollMember(ctx, saved.ID, a.ID); !errors.Is(err, clubsync.ErrNotEnrolled) {
			t.Fatalf("err = %v, want ErrNotEnrolled", err)
		}

		// Freed seat is usable again.
		if err := p.EnrollMember(ctx, saved.ID, c.ID); err != nil {
			t.Fatalf("freed seat rejected: %v", err)
		}
	})

	t.Run("CrossTenantEnrollmentRejected", func(t *testing.T) {
		p := newTestPortal(t)
		f := newScheduleFixture(t, p)
		otherClub := seedClub(t, p, nil)

		saved, err := p.SaveScheduleEntry(ctx, f.entry(time.Monday, "10:00", "11:00"))
		if err != nil {
			t.Fatal(err)
		}
		outsider := seedMember(t, p, otherClub, "Out", "cadet")

		if err := p.EnrollMember(ctx, saved.ID, outsider.ID); !errors.Is(err, clubsync.ErrWrongTenant) {
			t.Fatalf("err = %v, want ErrWrongTenant", err)
		}
	})
}

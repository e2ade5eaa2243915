package memory

import (
	"github.com/xraph/clubsync"
	"github.com/xraph/clubsync/activity"
	"github.com/xraph/clubsync/due"
	"github.com/xraph/clubsync/id"
	"github.com/xraph/clubsync/instructor"
	"github.com/xraph/clubsync/member"
	"github.com/xraph/clubsync/news"
	"github.com/xraph/clubsync/payment"
	"github.com/xraph/clubsync/schedule"
	"github.com/xraph/clubsync/settings"
	"github.com/xraph/clubsync/store"
)

// validateWriteLocked checks one batch entry without mutating state.
// pendingDueKeys tracks due keys introduced earlier in the same batch
// so a batch cannot create duplicates internally either.
func (s *Store) validateWriteLocked(w *store.Write, pendingDueKeys map[string]bool) error {
	if w.Op == store.OpDelete {
		switch w.Collection {
		case store.CollectionMembers:
			if _, ok := s.members[w.ID.String()]; !ok {
				return clubsync.ErrMemberNotFound
			}
		case store.CollectionDues:
			if _, ok := s.dues[w.ID.String()]; !ok {
				return clubsync.ErrDueNotFound
			}
		case store.CollectionSchedule:
			if _, ok := s.entries[w.ID.String()]; !ok {
				return clubsync.ErrScheduleNotFound
			}
		case store.CollectionActivities:
			if _, ok := s.activities[w.ID.String()]; !ok {
				return clubsync.ErrActivityNotFound
			}
		case store.CollectionInstructors:
			if _, ok := s.instructors[w.ID.String()]; !ok {
				return clubsync.ErrInstructorNotFound
			}
		case store.CollectionUsers:
			if _, ok := s.users[w.ID.String()]; !ok {
				return clubsync.ErrUserNotFound
			}
		case store.CollectionNews:
			if _, ok := s.newsItems[w.ID.String()]; !ok {
				return clubsync.ErrNewsNotFound
			}
		default:
			return clubsync.ErrInvalidInput
		}
		return nil
	}

	switch w.Collection {
	case store.CollectionMembers:
		if _, ok := w.Entity.(*member.Member); !ok {
			return clubsync.ErrInvalidInput
		}
	case store.CollectionDues:
		d, ok := w.Entity.(*due.Due)
		if !ok {
			return clubsync.ErrInvalidInput
		}
		if w.Op == store.OpCreate {
			key := dueKey(d.ClubID, d.MemberID, d.Period)
			if _, exists := s.dueKeys[key]; exists {
				return clubsync.ErrDueExists
			}
			if pendingDueKeys[key] {
				return clubsync.ErrDueExists
			}
			pendingDueKeys[key] = true
		} else {
			stored, exists := s.dues[d.ID.String()]
			if !exists {
				return clubsync.ErrDueNotFound
			}
			// A settled due is immutable; rejecting here closes the
			// race between two concurrent settlements of the same due.
			if stored.Status == due.StatusPaid {
				return clubsync.ErrDuePaid
			}
		}
	case store.CollectionPayments:
		if _, ok := w.Entity.(*payment.Payment); !ok {
			return clubsync.ErrInvalidInput
		}
	case store.CollectionSchedule:
		if _, ok := w.Entity.(*schedule.Entry); !ok {
			return clubsync.ErrInvalidInput
		}
	case store.CollectionActivities:
		if _, ok := w.Entity.(*activity.Activity); !ok {
			return clubsync.ErrInvalidInput
		}
	case store.CollectionInstructors:
		if _, ok := w.Entity.(*instructor.Instructor); !ok {
			return clubsync.ErrInvalidInput
		}
	case store.CollectionUsers:
		if _, ok := w.Entity.(*instructor.User); !ok {
			return clubsync.ErrInvalidInput
		}
	case store.CollectionNews:
		if _, ok := w.Entity.(*news.Item); !ok {
			return clubsync.ErrInvalidInput
		}
	case store.CollectionSettings:
		if _, ok := w.Entity.(*settings.Settings); !ok {
			return clubsync.ErrInvalidInput
		}
	default:
		return clubsync.ErrInvalidInput
	}
	return nil
}

// applyWriteLocked mutates state for one validated entry and records
// the touched (collection, club) pair.
func (s *Store) applyWriteLocked(w *store.Write, mark func(store.Collection, id.ClubID)) {
	if w.Op == store.OpDelete {
		switch w.Collection {
		case store.CollectionMembers:
			if m, ok := s.members[w.ID.String()]; ok {
				delete(s.members, w.ID.String())
				mark(w.Collection, m.ClubID)
			}
		case store.CollectionDues:
			if d, ok := s.dues[w.ID.String()]; ok {
				delete(s.dues, w.ID.String())
				delete(s.dueKeys, dueKey(d.ClubID, d.MemberID, d.Period))
				mark(w.Collection, d.ClubID)
			}
		case store.CollectionSchedule:
			if e, ok := s.entries[w.ID.String()]; ok {
				delete(s.entries, w.ID.String())
				mark(w.Collection, e.ClubID)
			}
		case store.CollectionActivities:
			if a, ok := s.activities[w.ID.String()]; ok {
				delete(s.activities, w.ID.String())
				mark(w.Collection, a.ClubID)
			}
		case store.CollectionInstructors:
			if i, ok := s.instructors[w.ID.String()]; ok {
				delete(s.instructors, w.ID.String())
				mark(w.Collection, i.ClubID)
			}
		case store.CollectionUsers:
			delete(s.users, w.ID.String())
		case store.CollectionNews:
			delete(s.newsItems, w.ID.String())
		}
		return
	}

	switch w.Collection {
	case store.CollectionMembers:
		m := w.Entity.(*member.Member)
		s.members[m.ID.String()] = cloneMember(m)
		mark(w.Collection, m.ClubID)
	case store.CollectionDues:
		d := w.Entity.(*due.Due)
		s.dues[d.ID.String()] = cloneDue(d)
		s.dueKeys[dueKey(d.ClubID, d.MemberID, d.Period)] = d.ID.String()
		mark(w.Collection, d.ClubID)
	case store.CollectionPayments:
		p := w.Entity.(*payment.Payment)
		s.payments[p.ID.String()] = clonePayment(p)
		mark(w.Collection, p.ClubID)
	case store.CollectionSchedule:
		e := w.Entity.(*schedule.Entry)
		s.entries[e.ID.String()] = cloneEntry(e)
		mark(w.Collection, e.ClubID)
	case store.CollectionActivities:
		a := w.Entity.(*activity.Activity)
		s.activities[a.ID.String()] = cloneActivity(a)
		mark(w.Collection, a.ClubID)
	case store.CollectionInstructors:
		i := w.Entity.(*instructor.Instructor)
		s.instructors[i.ID.String()] = cloneInstructor(i)
		mark(w.Collection, i.ClubID)
	case store.CollectionUsers:
		u := w.Entity.(*instructor.User)
		s.users[u.ID.String()] = cloneUser(u)
	case store.CollectionNews:
		n := w.Entity.(*news.Item)
		s.newsItems[n.ID.String()] = cloneNews(n)
	case store.CollectionSettings:
		cfg := w.Entity.(*settings.Settings)
		s.configs[cfg.ClubID.String()] = cloneSettings(cfg)
	}
}

// listForLocked builds the replacement list for a feed emission.
func (s *Store) listForLocked(c store.Collection, clubID string) any {
	parsed, err := id.ParseClubID(clubID)
	if err != nil {
		return nil
	}
	switch c {
	case store.CollectionMembers:
		return s.memberListLocked(parsed)
	case store.CollectionDues:
		return s.dueListLocked(parsed)
	case store.CollectionPayments:
		return s.paymentListLocked(parsed)
	case store.CollectionSchedule:
		return s.scheduleListLocked(parsed)
	case store.CollectionActivities:
		return s.activityListLocked(parsed)
	case store.CollectionInstructors:
		return s.instructorListLocked(parsed)
	}
	return nil
}

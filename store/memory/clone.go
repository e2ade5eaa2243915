package memory

import (
	"sort"

	"github.com/xraph/clubsync/activity"
	"github.com/xraph/clubsync/due"
	"github.com/xraph/clubsync/id"
	"github.com/xraph/clubsync/instructor"
	"github.com/xraph/clubsync/member"
	"github.com/xraph/clubsync/news"
	"github.com/xraph/clubsync/payment"
	"github.com/xraph/clubsync/schedule"
	"github.com/xraph/clubsync/settings"
	"github.com/xraph/clubsync/types"
)

// Entities are cloned on every read and write so callers can never
// mutate stored state through a shared pointer.

func cloneMember(m *member.Member) *member.Member {
	c := *m
	if m.Metadata != nil {
		c.Metadata = make(map[string]string, len(m.Metadata))
		for k, v := range m.Metadata {
			c.Metadata[k] = v
		}
	}
	if m.ArchivedAt != nil {
		t := *m.ArchivedAt
		c.ArchivedAt = &t
	}
	return &c
}

func cloneDue(d *due.Due) *due.Due {
	c := *d
	return &c
}

func clonePayment(p *payment.Payment) *payment.Payment {
	c := *p
	return &c
}

func cloneEntry(e *schedule.Entry) *schedule.Entry {
	c := *e
	c.EnrolledMembers = append([]id.MemberID(nil), e.EnrolledMembers...)
	return &c
}

func cloneActivity(a *activity.Activity) *activity.Activity {
	c := *a
	c.AllowedSpaces = append([]string(nil), a.AllowedSpaces...)
	return &c
}

func cloneInstructor(i *instructor.Instructor) *instructor.Instructor {
	c := *i
	c.Disciplines = append([]id.ActivityID(nil), i.Disciplines...)
	return &c
}

func cloneUser(u *instructor.User) *instructor.User {
	c := *u
	return &c
}

func cloneNews(n *news.Item) *news.Item {
	c := *n
	return &c
}

func cloneSettings(s *settings.Settings) *settings.Settings {
	c := *s
	if s.FeeTable != nil {
		c.FeeTable = make(map[string]types.Money, len(s.FeeTable))
		for k, v := range s.FeeTable {
			c.FeeTable[k] = v
		}
	}
	c.Spaces = append([]settings.Space(nil), s.Spaces...)
	return &c
}

// Per-club replacement lists for feed emissions. Sorted so consumers
// see a stable order.

func (s *Store) memberListLocked(clubID id.ClubID) []*member.Member {
	result := make([]*member.Member, 0)
	for _, m := range s.members {
		if m.ClubID == clubID {
			result = append(result, cloneMember(m))
		}
	}
	sortByID(result, func(m *member.Member) string { return m.ID.String() })
	return result
}

func (s *Store) dueListLocked(clubID id.ClubID) []*due.Due {
	result := make([]*due.Due, 0)
	for _, d := range s.dues {
		if d.ClubID == clubID {
			result = append(result, cloneDue(d))
		}
	}
	sortByID(result, func(d *due.Due) string { return d.ID.String() })
	return result
}

func (s *Store) paymentListLocked(clubID id.ClubID) []*payment.Payment {
	result := make([]*payment.Payment, 0)
	for _, p := range s.payments {
		if p.ClubID == clubID {
			result = append(result, clonePayment(p))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result
}

func (s *Store) scheduleListLocked(clubID id.ClubID) []*schedule.Entry {
	result := make([]*schedule.Entry, 0)
	for _, e := range s.entries {
		if e.ClubID == clubID {
			result = append(result, cloneEntry(e))
		}
	}
	sortByID(result, func(e *schedule.Entry) string { return e.ID.String() })
	return result
}

func (s *Store) activityListLocked(clubID id.ClubID) []*activity.Activity {
	result := make([]*activity.Activity, 0)
	for _, a := range s.activities {
		if a.ClubID == clubID {
			result = append(result, cloneActivity(a))
		}
	}
	sortByID(result, func(a *activity.Activity) string { return a.ID.String() })
	return result
}

func (s *Store) instructorListLocked(clubID id.ClubID) []*instructor.Instructor {
	result := make([]*instructor.Instructor, 0)
	for _, i := range s.instructors {
		if i.ClubID == clubID {
			result = append(result, cloneInstructor(i))
		}
	}
	sortByID(result, func(i *instructor.Instructor) string { return i.ID.String() })
	return result
}

func sortByID[T any](list []*T, key func(*T) string) {
	sort.Slice(list, func(i, j int) bool { return key(list[i]) < key(list[j]) })
}

func page[T any](list []*T, offset, limit int) []*T {
	start := offset
	if start > len(list) {
		start = len(list)
	}
	end := start + limit
	if limit == 0 || end > len(list) {
		end = len(list)
	}
	return list[start:end]
}

// Package memory provides an in-memory store backend. It is the
// default for tests and embedded single-process deployments; feeds are
// driven synchronously by mutations instead of a change stream.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/xraph/clubsync"
	"github.com/xraph/clubsync/activity"
	"github.com/xraph/clubsync/attendance"
	"github.com/xraph/clubsync/due"
	"github.com/xraph/clubsync/id"
	"github.com/xraph/clubsync/instructor"
	"github.com/xraph/clubsync/member"
	"github.com/xraph/clubsync/news"
	"github.com/xraph/clubsync/payment"
	"github.com/xraph/clubsync/schedule"
	"github.com/xraph/clubsync/settings"
	"github.com/xraph/clubsync/store"
	"github.com/xraph/clubsync/types"
	"github.com/xraph/clubsync/usage"
)

type Store struct {
	mu     sync.RWMutex
	closed bool

	members     map[string]*member.Member
	dues        map[string]*due.Due
	dueKeys     map[string]string // club|member|period -> due ID
	payments    map[string]*payment.Payment
	entries     map[string]*schedule.Entry
	activities  map[string]*activity.Activity
	instructors map[string]*instructor.Instructor
	users       map[string]*instructor.User
	newsItems   map[string]*news.Item
	configs     map[string]*settings.Settings // keyed by club ID
	uploads     []*usage.UploadEvent
	checkins    []*attendance.Entry
	storage     map[string]int64

	memberFeeds     feedHub[member.Member]
	dueFeeds        feedHub[due.Due]
	paymentFeeds    feedHub[payment.Payment]
	scheduleFeeds   feedHub[schedule.Entry]
	activityFeeds   feedHub[activity.Activity]
	instructorFeeds feedHub[instructor.Instructor]
}

func New() *Store {
	return &Store{
		members:     make(map[string]*member.Member),
		dues:        make(map[string]*due.Due),
		dueKeys:     make(map[string]string),
		payments:    make(map[string]*payment.Payment),
		entries:     make(map[string]*schedule.Entry),
		activities:  make(map[string]*activity.Activity),
		instructors: make(map[string]*instructor.Instructor),
		users:       make(map[string]*instructor.User),
		newsItems:   make(map[string]*news.Item),
		configs:     make(map[string]*settings.Settings),
		uploads:     make([]*usage.UploadEvent, 0),
		checkins:    make([]*attendance.Entry, 0),
		storage:     make(map[string]int64),
	}
}

func dueKey(clubID id.ClubID, memberID id.MemberID, period types.Period) string {
	return clubID.String() + "|" + memberID.String() + "|" + period.String()
}

// Member Store implementation
func (s *Store) CreateMember(_ context.Context, m *member.Member) error {
	s.mu.Lock()
	if _, exists := s.members[m.ID.String()]; exists {
		s.mu.Unlock()
		return clubsync.ErrInvalidInput
	}
	s.members[m.ID.String()] = cloneMember(m)
	clubID := m.ClubID
	list := s.memberListLocked(clubID)
	s.mu.Unlock()

	s.memberFeeds.publish(clubID.String(), list)
	return nil
}

func (s *Store) GetMember(_ context.Context, memberID id.MemberID) (*member.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if m, ok := s.members[memberID.String()]; ok {
		return cloneMember(m), nil
	}
	return nil, clubsync.ErrMemberNotFound
}

func (s *Store) ListMembers(_ context.Context, clubID id.ClubID, opts member.ListOpts) ([]*member.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*member.Member, 0)
	for _, m := range s.members {
		if m.ClubID == clubID {
			if opts.Status == "" || m.Status == opts.Status {
				result = append(result, cloneMember(m))
			}
		}
	}
	sortByID(result, func(m *member.Member) string { return m.ID.String() })
	return page(result, opts.Offset, opts.Limit), nil
}

func (s *Store) UpdateMember(_ context.Context, m *member.Member) error {
	s.mu.Lock()
	if _, exists := s.members[m.ID.String()]; !exists {
		s.mu.Unlock()
		return clubsync.ErrMemberNotFound
	}
	s.members[m.ID.String()] = cloneMember(m)
	clubID := m.ClubID
	list := s.memberListLocked(clubID)
	s.mu.Unlock()

	s.memberFeeds.publish(clubID.String(), list)
	return nil
}

// Due Store implementation
func (s *Store) GetDue(_ context.Context, dueID id.DueID) (*due.Due, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if d, ok := s.dues[dueID.String()]; ok {
		return cloneDue(d), nil
	}
	return nil, clubsync.ErrDueNotFound
}

func (s *Store) ListDues(_ context.Context, clubID id.ClubID, opts due.ListOpts) ([]*due.Due, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*due.Due, 0)
	for _, d := range s.dues {
		if d.ClubID != clubID {
			continue
		}
		if opts.Status != "" && d.Status != opts.Status {
			continue
		}
		if !opts.Period.IsZero() && d.Period != opts.Period {
			continue
		}
		result = append(result, cloneDue(d))
	}
	sortByID(result, func(d *due.Due) string { return d.ID.String() })
	return page(result, opts.Offset, opts.Limit), nil
}

func (s *Store) ListDuesByMember(_ context.Context, clubID id.ClubID, memberID id.MemberID) ([]*due.Due, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*due.Due, 0)
	for _, d := range s.dues {
		if d.ClubID == clubID && d.MemberID == memberID {
			result = append(result, cloneDue(d))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Period < result[j].Period })
	return result, nil
}

func (s *Store) ListDuesByPeriod(_ context.Context, clubID id.ClubID, period types.Period) ([]*due.Due, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*due.Due, 0)
	for _, d := range s.dues {
		if d.ClubID == clubID && d.Period == period {
			result = append(result, cloneDue(d))
		}
	}
	sortByID(result, func(d *due.Due) string { return d.ID.String() })
	return result, nil
}

// Payment Store implementation
func (s *Store) GetPayment(_ context.Context, paymentID id.PaymentID) (*payment.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p, ok := s.payments[paymentID.String()]; ok {
		return clonePayment(p), nil
	}
	return nil, clubsync.ErrPaymentNotFound
}

func (s *Store) ListPayments(_ context.Context, clubID id.ClubID, opts payment.ListOpts) ([]*payment.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*payment.Payment, 0)
	for _, p := range s.payments {
		if p.ClubID != clubID {
			continue
		}
		if !opts.Start.IsZero() && p.Date.Before(opts.Start) {
			continue
		}
		if !opts.End.IsZero() && !p.Date.Before(opts.End) {
			continue
		}
		result = append(result, clonePayment(p))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return page(result, opts.Offset, opts.Limit), nil
}

func (s *Store) ListPaymentsByMember(_ context.Context, clubID id.ClubID, memberID id.MemberID) ([]*payment.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*payment.Payment, 0)
	for _, p := range s.payments {
		if p.ClubID == clubID && p.MemberID == memberID {
			result = append(result, clonePayment(p))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (s *Store) UpdatePaymentDetails(_ context.Context, paymentID id.PaymentID, details string) error {
	s.mu.Lock()
	p, ok := s.payments[paymentID.String()]
	if !ok {
		s.mu.Unlock()
		return clubsync.ErrPaymentNotFound
	}
	p.Details = details
	p.Touch()
	clubID := p.ClubID
	list := s.paymentListLocked(clubID)
	s.mu.Unlock()

	s.paymentFeeds.publish(clubID.String(), list)
	return nil
}

// Schedule Store implementation
func (s *Store) GetScheduleEntry(_ context.Context, entryID id.ScheduleID) (*schedule.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if e, ok := s.entries[entryID.String()]; ok {
		return cloneEntry(e), nil
	}
	return nil, clubsync.ErrScheduleNotFound
}

func (s *Store) ListSchedule(_ context.Context, clubID id.ClubID, opts schedule.ListOpts) ([]*schedule.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*schedule.Entry, 0)
	for _, e := range s.entries {
		if e.ClubID == clubID {
			if opts.Status == "" || e.Status == opts.Status {
				result = append(result, cloneEntry(e))
			}
		}
	}
	sortByID(result, func(e *schedule.Entry) string { return e.ID.String() })
	return page(result, opts.Offset, opts.Limit), nil
}

func (s *Store) ListScheduleByInstructor(_ context.Context, clubID id.ClubID, instructorID id.InstructorID) ([]*schedule.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*schedule.Entry, 0)
	for _, e := range s.entries {
		if e.ClubID == clubID && e.InstructorID == instructorID {
			result = append(result, cloneEntry(e))
		}
	}
	sortByID(result, func(e *schedule.Entry) string { return e.ID.String() })
	return result, nil
}

func (s *Store) UpdateScheduleEntry(_ context.Context, e *schedule.Entry) error {
	s.mu.Lock()
	s.entries[e.ID.String()] = cloneEntry(e)
	clubID := e.ClubID
	list := s.scheduleListLocked(clubID)
	s.mu.Unlock()

	s.scheduleFeeds.publish(clubID.String(), list)
	return nil
}

func (s *Store) DeleteScheduleEntry(_ context.Context, entryID id.ScheduleID) error {
	s.mu.Lock()
	e, ok := s.entries[entryID.String()]
	if !ok {
		s.mu.Unlock()
		return clubsync.ErrScheduleNotFound
	}
	delete(s.entries, entryID.String())
	clubID := e.ClubID
	list := s.scheduleListLocked(clubID)
	s.mu.Unlock()

	s.scheduleFeeds.publish(clubID.String(), list)
	return nil
}

// Activity Store implementation
func (s *Store) GetActivity(_ context.Context, activityID id.ActivityID) (*activity.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if a, ok := s.activities[activityID.String()]; ok {
		return cloneActivity(a), nil
	}
	return nil, clubsync.ErrActivityNotFound
}

func (s *Store) ListActivities(_ context.Context, clubID id.ClubID) ([]*activity.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.activityListLocked(clubID), nil
}

func (s *Store) UpdateActivity(_ context.Context, a *activity.Activity) error {
	s.mu.Lock()
	s.activities[a.ID.String()] = cloneActivity(a)
	clubID := a.ClubID
	list := s.activityListLocked(clubID)
	s.mu.Unlock()

	s.activityFeeds.publish(clubID.String(), list)
	return nil
}

func (s *Store) DeleteActivity(_ context.Context, activityID id.ActivityID) error {
	s.mu.Lock()
	a, ok := s.activities[activityID.String()]
	if !ok {
		s.mu.Unlock()
		return clubsync.ErrActivityNotFound
	}
	delete(s.activities, activityID.String())
	clubID := a.ClubID
	list := s.activityListLocked(clubID)
	s.mu.Unlock()

	s.activityFeeds.publish(clubID.String(), list)
	return nil
}

// Instructor Store implementation
func (s *Store) GetInstructor(_ context.Context, instructorID id.InstructorID) (*instructor.Instructor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i, ok := s.instructors[instructorID.String()]; ok {
		return cloneInstructor(i), nil
	}
	return nil, clubsync.ErrInstructorNotFound
}

func (s *Store) ListInstructors(_ context.Context, clubID id.ClubID, opts instructor.ListOpts) ([]*instructor.Instructor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := s.instructorListLocked(clubID)
	return page(result, opts.Offset, opts.Limit), nil
}

func (s *Store) GetUser(_ context.Context, userID id.UserID) (*instructor.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if u, ok := s.users[userID.String()]; ok {
		return cloneUser(u), nil
	}
	return nil, clubsync.ErrUserNotFound
}

func (s *Store) GetUserByInstructor(_ context.Context, instructorID id.InstructorID) (*instructor.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.InstructorID == instructorID {
			return cloneUser(u), nil
		}
	}
	return nil, clubsync.ErrUserNotFound
}

func (s *Store) ListUsers(_ context.Context, clubID id.ClubID, opts instructor.ListOpts) ([]*instructor.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*instructor.User, 0)
	for _, u := range s.users {
		if u.ClubID == clubID {
			result = append(result, cloneUser(u))
		}
	}
	sortByID(result, func(u *instructor.User) string { return u.ID.String() })
	return page(result, opts.Offset, opts.Limit), nil
}

// News Store implementation
func (s *Store) GetNews(_ context.Context, newsID id.NewsID) (*news.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n, ok := s.newsItems[newsID.String()]; ok {
		return cloneNews(n), nil
	}
	return nil, clubsync.ErrNewsNotFound
}

func (s *Store) ListNews(_ context.Context, clubID id.ClubID, opts news.ListOpts) ([]*news.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*news.Item, 0)
	for _, n := range s.newsItems {
		if n.ClubID == clubID {
			result = append(result, cloneNews(n))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].PublishedAt.After(result[j].PublishedAt) })
	return page(result, opts.Offset, opts.Limit), nil
}

func (s *Store) UpdateNews(_ context.Context, item *news.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.newsItems[item.ID.String()] = cloneNews(item)
	return nil
}

func (s *Store) DeleteNews(_ context.Context, newsID id.NewsID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.newsItems[newsID.String()]; !ok {
		return clubsync.ErrNewsNotFound
	}
	delete(s.newsItems, newsID.String())
	return nil
}

// Attendance Store implementation
func (s *Store) CreateAttendance(_ context.Context, e *attendance.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return clubsync.ErrStoreClosed
	}
	c := *e
	s.checkins = append(s.checkins, &c)
	return nil
}

func (s *Store) ListAttendance(_ context.Context, clubID id.ClubID, opts attendance.ListOpts) ([]*attendance.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*attendance.Entry, 0)
	for _, e := range s.checkins {
		if e.ClubID == clubID {
			c := *e
			result = append(result, &c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CheckedInAt.After(result[j].CheckedInAt) })
	return page(result, opts.Offset, opts.Limit), nil
}

// Settings Store implementation
func (s *Store) GetSettings(_ context.Context, clubID id.ClubID) (*settings.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if cfg, ok := s.configs[clubID.String()]; ok {
		return cloneSettings(cfg), nil
	}
	return nil, clubsync.ErrSettingsNotFound
}

func (s *Store) SaveSettings(_ context.Context, cfg *settings.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.configs[cfg.ClubID.String()] = cloneSettings(cfg)
	return nil
}

// Usage Store implementation
func (s *Store) IngestUploads(_ context.Context, events []*usage.UploadEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range events {
		c := *e
		s.uploads = append(s.uploads, &c)
		s.storage[e.ClubID.String()] += e.Bytes
		if cfg, ok := s.configs[e.ClubID.String()]; ok {
			cfg.StorageUsed += e.Bytes
		}
	}
	return nil
}

func (s *Store) ListUploads(_ context.Context, clubID id.ClubID, start, end time.Time) ([]*usage.UploadEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*usage.UploadEvent, 0)
	for _, e := range s.uploads {
		if e.ClubID != clubID {
			continue
		}
		if !start.IsZero() && e.Occurred.Before(start) {
			continue
		}
		if !end.IsZero() && !e.Occurred.Before(end) {
			continue
		}
		c := *e
		result = append(result, &c)
	}
	return result, nil
}

func (s *Store) StorageUsed(_ context.Context, clubID id.ClubID) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.storage[clubID.String()], nil
}

// Batch implementation. Every write is validated before any is
// applied; a failure leaves the store untouched.
func (s *Store) ApplyBatch(_ context.Context, writes []store.Write) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return clubsync.ErrStoreClosed
	}

	pendingDueKeys := make(map[string]bool)
	for i := range writes {
		if err := s.validateWriteLocked(&writes[i], pendingDueKeys); err != nil {
			s.mu.Unlock()
			return fmt.Errorf("apply batch: %w", err)
		}
	}

	touched := make(map[store.Collection]map[string]bool)
	mark := func(c store.Collection, clubID id.ClubID) {
		if touched[c] == nil {
			touched[c] = make(map[string]bool)
		}
		touched[c][clubID.String()] = true
	}
	for i := range writes {
		s.applyWriteLocked(&writes[i], mark)
	}

	type emission struct {
		collection store.Collection
		clubID     string
	}
	emissions := make([]emission, 0, len(touched))
	lists := make(map[emission]any)
	for c, clubs := range touched {
		for clubID := range clubs {
			e := emission{c, clubID}
			emissions = append(emissions, e)
			lists[e] = s.listForLocked(c, clubID)
		}
	}
	s.mu.Unlock()

	for _, e := range emissions {
		switch e.collection {
		case store.CollectionMembers:
			s.memberFeeds.publish(e.clubID, lists[e].([]*member.Member))
		case store.CollectionDues:
			s.dueFeeds.publish(e.clubID, lists[e].([]*due.Due))
		case store.CollectionPayments:
			s.paymentFeeds.publish(e.clubID, lists[e].([]*payment.Payment))
		case store.CollectionSchedule:
			s.scheduleFeeds.publish(e.clubID, lists[e].([]*schedule.Entry))
		case store.CollectionActivities:
			s.activityFeeds.publish(e.clubID, lists[e].([]*activity.Activity))
		case store.CollectionInstructors:
			s.instructorFeeds.publish(e.clubID, lists[e].([]*instructor.Instructor))
		}
	}
	return nil
}

// Watch implementation
func (s *Store) WatchMembers(_ context.Context, clubID id.ClubID) (*store.Feed[member.Member], error) {
	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return nil, clubsync.ErrStoreClosed
	}
	initial := s.memberListLocked(clubID)
	s.mu.RUnlock()
	return s.memberFeeds.subscribe(clubID.String(), initial), nil
}

func (s *Store) WatchDues(_ context.Context, clubID id.ClubID) (*store.Feed[due.Due], error) {
	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return nil, clubsync.ErrStoreClosed
	}
	initial := s.dueListLocked(clubID)
	s.mu.RUnlock()
	return s.dueFeeds.subscribe(clubID.String(), initial), nil
}

func (s *Store) WatchPayments(_ context.Context, clubID id.ClubID) (*store.Feed[payment.Payment], error) {
	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return nil, clubsync.ErrStoreClosed
	}
	initial := s.paymentListLocked(clubID)
	s.mu.RUnlock()
	return s.paymentFeeds.subscribe(clubID.String(), initial), nil
}

func (s *Store) WatchSchedule(_ context.Context, clubID id.ClubID) (*store.Feed[schedule.Entry], error) {
	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return nil, clubsync.ErrStoreClosed
	}
	initial := s.scheduleListLocked(clubID)
	s.mu.RUnlock()
	return s.scheduleFeeds.subscribe(clubID.String(), initial), nil
}

func (s *Store) WatchActivities(_ context.Context, clubID id.ClubID) (*store.Feed[activity.Activity], error) {
	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return nil, clubsync.ErrStoreClosed
	}
	initial := s.activityListLocked(clubID)
	s.mu.RUnlock()
	return s.activityFeeds.subscribe(clubID.String(), initial), nil
}

func (s *Store) WatchInstructors(_ context.Context, clubID id.ClubID) (*store.Feed[instructor.Instructor], error) {
	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return nil, clubsync.ErrStoreClosed
	}
	initial := s.instructorListLocked(clubID)
	s.mu.RUnlock()
	return s.instructorFeeds.subscribe(clubID.String(), initial), nil
}

// Store management
func (s *Store) Migrate(_ context.Context) error {
	return nil // No migration needed for memory store
}

func (s *Store) Ping(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return clubsync.ErrStoreClosed
	}
	return nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.memberFeeds.closeAll()
	s.dueFeeds.closeAll()
	s.paymentFeeds.closeAll()
	s.scheduleFeeds.closeAll()
	s.activityFeeds.closeAll()
	s.instructorFeeds.closeAll()
	return nil
}

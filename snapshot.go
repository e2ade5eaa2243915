package clubsync

import (
	"context"
	"sync"
	"time"

	"github.com/xraph/clubsync/activity"
	"github.com/xraph/clubsync/due"
	"github.com/xraph/clubsync/id"
	"github.com/xraph/clubsync/instructor"
	"github.com/xraph/clubsync/member"
	"github.com/xraph/clubsync/payment"
	"github.com/xraph/clubsync/schedule"
	"github.com/xraph/clubsync/store"
)

// Snapshot is an immutable view of one club's data at a point in time.
// Every feed emission produces a new Snapshot with a higher Revision;
// the lists themselves are replacement lists and are never mutated
// after publication.
type Snapshot struct {
	ClubID   id.ClubID
	Revision uint64
	TakenAt  time.Time

	Members     []*member.Member
	Dues        []*due.Due
	Payments    []*payment.Payment
	Schedule    []*schedule.Entry
	Activities  []*activity.Activity
	Instructors []*instructor.Instructor
}

// Aggregator keeps one club's data continuously synchronized from the
// store's live feeds. Consumers read point-in-time Snapshots or
// register OnChange callbacks; a failure on one collection's feed
// never interrupts the others.
type Aggregator struct {
	portal      *Portal
	clubID      id.ClubID
	cancel      context.CancelFunc
	feedCancels []func()

	mu       sync.Mutex
	closed   bool
	current  *Snapshot
	seen     map[store.Collection]bool
	lastErrs map[store.Collection]error
	subs     map[int]func(*Snapshot)
	nextSub  int

	readyOnce sync.Once
	readyCh   chan struct{}

	wg sync.WaitGroup
}

// Open returns the live aggregator for a club, starting one if none is
// running. Opening the same club twice returns the same aggregator;
// switching clubs is Close on the old one and Open on the new.
func (p *Portal) Open(ctx context.Context, clubID id.ClubID) (*Aggregator, error) {
	if clubID.IsNil() {
		return nil, ErrInvalidInput
	}

	p.aggMu.Lock()
	defer p.aggMu.Unlock()

	if agg, ok := p.aggregators[clubID.String()]; ok && !agg.isClosed() {
		return agg, nil
	}

	agg, err := newAggregator(ctx, p, clubID)
	if err != nil {
		return nil, err
	}
	p.aggregators[clubID.String()] = agg

	p.logger.Info("aggregator opened", "club_id", clubID.String())
	return agg, nil
}

func newAggregator(ctx context.Context, p *Portal, clubID id.ClubID) (*Aggregator, error) {
	feedCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))

	a := &Aggregator{
		portal:   p,
		clubID:   clubID,
		cancel:   cancel,
		current:  &Snapshot{ClubID: clubID, TakenAt: p.clock()},
		seen:     make(map[store.Collection]bool),
		lastErrs: make(map[store.Collection]error),
		subs:     make(map[int]func(*Snapshot)),
		readyCh:  make(chan struct{}),
	}

	members, err := p.store.WatchMembers(feedCtx, clubID)
	if err != nil {
		cancel()
		return nil, err
	}
	dues, err := p.store.WatchDues(feedCtx, clubID)
	if err != nil {
		cancel()
		return nil, err
	}
	payments, err := p.store.WatchPayments(feedCtx, clubID)
	if err != nil {
		cancel()
		return nil, err
	}
	entries, err := p.store.WatchSchedule(feedCtx, clubID)
	if err != nil {
		cancel()
		return nil, err
	}
	activities, err := p.store.WatchActivities(feedCtx, clubID)
	if err != nil {
		cancel()
		return nil, err
	}
	instructors, err := p.store.WatchInstructors(feedCtx, clubID)
	if err != nil {
		cancel()
		return nil, err
	}

	a.feedCancels = []func(){
		members.Cancel, dues.Cancel, payments.Cancel,
		entries.Cancel, activities.Cancel, instructors.Cancel,
	}

	consumeFeed(a, store.CollectionMembers, members, func(s *Snapshot, list []*member.Member) { s.Members = list })
	consumeFeed(a, store.CollectionDues, dues, func(s *Snapshot, list []*due.Due) { s.Dues = list })
	consumeFeed(a, store.CollectionPayments, payments, func(s *Snapshot, list []*payment.Payment) { s.Payments = list })
	consumeFeed(a, store.CollectionSchedule, entries, func(s *Snapshot, list []*schedule.Entry) { s.Schedule = list })
	consumeFeed(a, store.CollectionActivities, activities, func(s *Snapshot, list []*activity.Activity) { s.Activities = list })
	consumeFeed(a, store.CollectionInstructors, instructors, func(s *Snapshot, list []*instructor.Instructor) { s.Instructors = list })

	return a, nil
}

// consumeFeed drains one collection's feed into the aggregator until
// the feed closes.
func consumeFeed[T any](a *Aggregator, col store.Collection, feed *store.Feed[T], set func(*Snapshot, []*T)) {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		defer feed.Cancel()

		for {
			select {
			case list, ok := <-feed.Updates:
				if !ok {
					return
				}
				a.apply(col, len(list), func(s *Snapshot) { set(s, list) })
			case err, ok := <-feed.Errs:
				if !ok {
					return
				}
				a.recordErr(col, err)
			}
		}
	}()
}

// apply publishes a new snapshot with one collection replaced.
func (a *Aggregator) apply(col store.Collection, count int, set func(*Snapshot)) {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}

	next := *a.current
	set(&next)
	next.Revision = a.current.Revision + 1
	next.TakenAt = a.portal.clock()
	a.current = &next

	// A feed that delivers clears its previous failure.
	delete(a.lastErrs, col)

	a.seen[col] = true
	if len(a.seen) == 6 {
		a.readyOnce.Do(func() { close(a.readyCh) })
	}

	snap := a.current
	subs := make([]func(*Snapshot), 0, len(a.subs))
	for _, fn := range a.subs {
		subs = append(subs, fn)
	}
	a.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}

	ctx := context.Background()
	a.portal.plugins.EmitSnapshotRefreshed(ctx, a.clubID.String(), string(col), count)
}

func (a *Aggregator) recordErr(col store.Collection, err error) {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.lastErrs[col] = err
	a.mu.Unlock()

	a.portal.logger.Warn("aggregator feed error",
		"club_id", a.clubID.String(),
		"collection", string(col),
		"error", err,
	)
}

// Snapshot returns the current point-in-time view. The returned value
// is shared and must not be mutated.
func (a *Aggregator) Snapshot() *Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

// WaitReady blocks until every collection has delivered its initial
// list, or the context ends.
func (a *Aggregator) WaitReady(ctx context.Context) error {
	select {
	case <-a.readyCh:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// OnChange registers a callback invoked after every snapshot
// publication. The returned function unsubscribes it.
func (a *Aggregator) OnChange(fn func(*Snapshot)) func() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return func() {}
	}

	key := a.nextSub
	a.nextSub++
	a.subs[key] = fn

	return func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		delete(a.subs, key)
	}
}

// LastErr returns the most recent unrecovered failure on one
// collection's feed, or nil.
func (a *Aggregator) LastErr(col store.Collection) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastErrs[col]
}

// Errs returns a copy of all current per-collection feed failures.
func (a *Aggregator) Errs() map[store.Collection]error {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make(map[store.Collection]error, len(a.lastErrs))
	for k, v := range a.lastErrs {
		out[k] = v
	}
	return out
}

// ClubID returns the club this aggregator serves.
func (a *Aggregator) ClubID() id.ClubID { return a.clubID }

// Close stops all feeds. No snapshots or callbacks are published
// after Close returns; closing twice is safe.
func (a *Aggregator) Close() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.closed = true
	a.subs = make(map[int]func(*Snapshot))
	a.mu.Unlock()

	a.cancel()
	for _, stop := range a.feedCancels {
		stop()
	}
	a.wg.Wait()

	a.portal.logger.Info("aggregator closed", "club_id", a.clubID.String())
}

func (a *Aggregator) isClosed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.closed
}

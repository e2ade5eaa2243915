package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/xraph/clubsync/activity"
	"github.com/xraph/clubsync/due"
	"github.com/xraph/clubsync/id"
	"github.com/xraph/clubsync/instructor"
	"github.com/xraph/clubsync/member"
	"github.com/xraph/clubsync/payment"
	"github.com/xraph/clubsync/schedule"
	clubstore "github.com/xraph/clubsync/store"
)

const watchBuffer = 16

func (s *Store) WatchMembers(ctx context.Context, clubID id.ClubID) (*clubstore.Feed[member.Member], error) {
	return watchCollection(ctx, s, colMembers, clubID, func(c context.Context) ([]*member.Member, error) {
		return s.ListMembers(c, clubID, member.ListOpts{})
	})
}

func (s *Store) WatchDues(ctx context.Context, clubID id.ClubID) (*clubstore.Feed[due.Due], error) {
	return watchCollection(ctx, s, colDues, clubID, func(c context.Context) ([]*due.Due, error) {
		return s.ListDues(c, clubID, due.ListOpts{})
	})
}

func (s *Store) WatchPayments(ctx context.Context, clubID id.ClubID) (*clubstore.Feed[payment.Payment], error) {
	return watchCollection(ctx, s, colPayments, clubID, func(c context.Context) ([]*payment.Payment, error) {
		return s.ListPayments(c, clubID, payment.ListOpts{})
	})
}

func (s *Store) WatchSchedule(ctx context.Context, clubID id.ClubID) (*clubstore.Feed[schedule.Entry], error) {
	return watchCollection(ctx, s, colSchedule, clubID, func(c context.Context) ([]*schedule.Entry, error) {
		return s.ListSchedule(c, clubID, schedule.ListOpts{})
	})
}

func (s *Store) WatchActivities(ctx context.Context, clubID id.ClubID) (*clubstore.Feed[activity.Activity], error) {
	return watchCollection(ctx, s, colActivities, clubID, func(c context.Context) ([]*activity.Activity, error) {
		return s.ListActivities(c, clubID)
	})
}

func (s *Store) WatchInstructors(ctx context.Context, clubID id.ClubID) (*clubstore.Feed[instructor.Instructor], error) {
	return watchCollection(ctx, s, colInstructors, clubID, func(c context.Context) ([]*instructor.Instructor, error) {
		return s.ListInstructors(c, clubID, instructor.ListOpts{})
	})
}

// watchCollection opens a change stream on one collection and turns
// every event into a fresh full list for the club. Delete events carry
// no fullDocument, so they pass the match unfiltered; the re-query
// scopes to the club either way.
func watchCollection[T any](ctx context.Context, s *Store, col string, clubID id.ClubID, list func(context.Context) ([]*T, error)) (*clubstore.Feed[T], error) {
	initial, err := list(ctx)
	if err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"$or": bson.A{
			bson.M{"fullDocument.club_id": clubID.String()},
			bson.M{"operationType": "delete"},
		}}}},
	}

	streamCtx, cancel := context.WithCancel(ctx)
	cs, err := s.mdb.Collection(col).Watch(streamCtx, pipeline,
		options.ChangeStream().SetFullDocument(options.UpdateLookup))
	if err != nil {
		cancel()
		return nil, fmt.Errorf("clubsync/mongo: watch %s: %w", col, err)
	}

	updates := make(chan []*T, watchBuffer)
	errs := make(chan error, 1)
	updates <- initial

	go func() {
		defer close(updates)
		defer close(errs)
		defer cs.Close(context.Background())

		for cs.Next(streamCtx) {
			// Coalesce bursts so one generation run produces one
			// emission instead of one per document.
			for cs.TryNext(streamCtx) {
			}

			fresh, err := list(streamCtx)
			if err != nil {
				sendErr(errs, err)
				continue
			}
			send(updates, fresh)
		}
		if err := cs.Err(); err != nil && streamCtx.Err() == nil {
			sendErr(errs, err)
		}
	}()

	return &clubstore.Feed[T]{
		Updates: updates,
		Errs:    errs,
		Cancel:  cancel,
	}, nil
}

// send delivers a list, dropping the oldest pending one when the
// consumer lags.
func send[T any](ch chan []*T, list []*T) {
	select {
	case ch <- list:
	default:
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- list:
		default:
		}
	}
}

func sendErr(ch chan error, err error) {
	select {
	case ch <- err:
	default:
	}
}

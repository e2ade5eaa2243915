package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/xraph/clubsync"
	"github.com/xraph/clubsync/activity"
	"github.com/xraph/clubsync/due"
	"github.com/xraph/clubsync/instructor"
	"github.com/xraph/clubsync/member"
	"github.com/xraph/clubsync/news"
	"github.com/xraph/clubsync/payment"
	"github.com/xraph/clubsync/schedule"
	"github.com/xraph/clubsync/settings"
	clubstore "github.com/xraph/clubsync/store"
)

// ApplyBatch runs every write inside one multi-document transaction.
// Requires a replica set; standalone mongod deployments must use the
// memory store or enable replication.
func (s *Store) ApplyBatch(ctx context.Context, writes []clubstore.Write) error {
	if len(writes) == 0 {
		return nil
	}

	client := s.mdb.Collection(colMembers).Database().Client()
	session, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("clubsync/mongo: start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc context.Context) (any, error) {
		for i := range writes {
			if err := s.applyWrite(sc, &writes[i]); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("apply batch: %w", err)
	}
	return nil
}

// batchDoc resolves a write to its collection name and bson document.
func batchDoc(w *clubstore.Write) (string, any, error) {
	switch w.Collection {
	case clubstore.CollectionMembers:
		m, ok := w.Entity.(*member.Member)
		if w.Op != clubstore.OpDelete && !ok {
			return "", nil, clubsync.ErrInvalidInput
		}
		if m == nil {
			return colMembers, nil, nil
		}
		return colMembers, toMemberModel(m), nil
	case clubstore.CollectionDues:
		d, ok := w.Entity.(*due.Due)
		if w.Op != clubstore.OpDelete && !ok {
			return "", nil, clubsync.ErrInvalidInput
		}
		if d == nil {
			return colDues, nil, nil
		}
		return colDues, toDueModel(d), nil
	case clubstore.CollectionPayments:
		p, ok := w.Entity.(*payment.Payment)
		if w.Op != clubstore.OpDelete && !ok {
			return "", nil, clubsync.ErrInvalidInput
		}
		if p == nil {
			return colPayments, nil, nil
		}
		return colPayments, toPaymentModel(p), nil
	case clubstore.CollectionSchedule:
		e, ok := w.Entity.(*schedule.Entry)
		if w.Op != clubstore.OpDelete && !ok {
			return "", nil, clubsync.ErrInvalidInput
		}
		if e == nil {
			return colSchedule, nil, nil
		}
		return colSchedule, toScheduleModel(e), nil
	case clubstore.CollectionActivities:
		a, ok := w.Entity.(*activity.Activity)
		if w.Op != clubstore.OpDelete && !ok {
			return "", nil, clubsync.ErrInvalidInput
		}
		if a == nil {
			return colActivities, nil, nil
		}
		return colActivities, toActivityModel(a), nil
	case clubstore.CollectionInstructors:
		i, ok := w.Entity.(*instructor.Instructor)
		if w.Op != clubstore.OpDelete && !ok {
			return "", nil, clubsync.ErrInvalidInput
		}
		if i == nil {
			return colInstructors, nil, nil
		}
		return colInstructors, toInstructorModel(i), nil
	case clubstore.CollectionUsers:
		u, ok := w.Entity.(*instructor.User)
		if w.Op != clubstore.OpDelete && !ok {
			return "", nil, clubsync.ErrInvalidInput
		}
		if u == nil {
			return colUsers, nil, nil
		}
		return colUsers, toUserModel(u), nil
	case clubstore.CollectionNews:
		n, ok := w.Entity.(*news.Item)
		if w.Op != clubstore.OpDelete && !ok {
			return "", nil, clubsync.ErrInvalidInput
		}
		if n == nil {
			return colNews, nil, nil
		}
		return colNews, toNewsModel(n), nil
	case clubstore.CollectionSettings:
		cfg, ok := w.Entity.(*settings.Settings)
		if w.Op != clubstore.OpDelete && !ok {
			return "", nil, clubsync.ErrInvalidInput
		}
		if cfg == nil {
			return colSettings, nil, nil
		}
		return colSettings, toSettingsModel(cfg), nil
	}
	return "", nil, clubsync.ErrInvalidInput
}

// replaceDue updates a due only while it is still unsettled. The
// status guard in the filter closes the race between two concurrent
// settlements of the same due.
func (s *Store) replaceDue(ctx context.Context, w *clubstore.Write, doc any) error {
	filter := bson.M{
		"_id":    w.ID.String(),
		"status": bson.M{"$ne": string(due.StatusPaid)},
	}
	res, err := s.mdb.Collection(colDues).ReplaceOne(ctx, filter, doc)
	if err != nil {
		return fmt.Errorf("replace %s: %w", colDues, err)
	}
	if res.MatchedCount == 0 {
		n, err := s.mdb.Collection(colDues).CountDocuments(ctx, bson.M{"_id": w.ID.String()})
		if err != nil {
			return fmt.Errorf("replace %s: %w", colDues, err)
		}
		if n > 0 {
			return clubsync.ErrDuePaid
		}
		return clubsync.ErrDueNotFound
	}
	return nil
}

func (s *Store) applyWrite(ctx context.Context, w *clubstore.Write) error {
	col, doc, err := batchDoc(w)
	if err != nil {
		return err
	}

	switch w.Op {
	case clubstore.OpCreate:
		_, err := s.mdb.Collection(col).InsertOne(ctx, doc)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				if w.Collection == clubstore.CollectionDues {
					return clubsync.ErrDueExists
				}
				return clubsync.ErrInvalidInput
			}
			return fmt.Errorf("insert %s: %w", col, err)
		}
		return nil
	case clubstore.OpUpdate:
		if w.Collection == clubstore.CollectionDues {
			return s.replaceDue(ctx, w, doc)
		}
		filter := bson.M{"_id": w.ID.String()}
		_, err := s.mdb.Collection(col).ReplaceOne(ctx, filter, doc,
			options.Replace().SetUpsert(true))
		if err != nil {
			return fmt.Errorf("replace %s: %w", col, err)
		}
		return nil
	case clubstore.OpDelete:
		res, err := s.mdb.Collection(col).DeleteOne(ctx, bson.M{"_id": w.ID.String()})
		if err != nil {
			return fmt.Errorf("delete %s: %w", col, err)
		}
		if res.DeletedCount == 0 {
			return clubsync.ErrNotFound
		}
		return nil
	}
	return clubsync.ErrInvalidInput
}

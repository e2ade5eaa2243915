// Package mongo implements the store backend on MongoDB via the Grove
// ORM. Feeds are driven by change streams, batches by multi-document
// transactions; both require a replica set.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/mongodriver"

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
	clubstore "github.com/xraph/clubsync/store"
	"github.com/xraph/clubsync/types"
	"github.com/xraph/clubsync/usage"
)

// Collection name constants.
const (
	colMembers     = "club_members"
	colDues        = "club_dues"
	colPayments    = "club_payments"
	colSchedule    = "club_schedule"
	colActivities  = "club_activities"
	colInstructors = "club_instructors"
	colUsers       = "club_users"
	colNews        = "club_news"
	colSettings    = "club_settings"
	colUploads     = "club_uploads"
	colAttendance  = "club_attendance"
)

// compile-time interface check
var _ clubstore.Store = (*Store)(nil)

// Store implements store.Store using MongoDB via Grove ORM.
type Store struct {
	db  *grove.DB
	mdb *mongodriver.MongoDB
}

// New creates a new MongoDB store backed by Grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db:  db,
		mdb: mongodriver.Unwrap(db),
	}
}

// DB returns the underlying grove database for direct access.
func (s *Store) DB() *grove.DB { return s.db }

// Migrate creates indexes for all portal collections.
func (s *Store) Migrate(ctx context.Context) error {
	indexes := migrationIndexes()

	for col, models := range indexes {
		if len(models) == 0 {
			continue
		}
		_, err := s.mdb.Collection(col).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("clubsync/mongo: migrate %s indexes: %w", col, err)
		}
	}
	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ==================== Member Store ====================

func (s *Store) CreateMember(ctx context.Context, m *member.Member) error {
	model := toMemberModel(m)
	_, err := s.mdb.NewInsert(model).Exec(ctx)
	if err != nil {
		return fmt.Errorf("clubsync/mongo: create member: %w", err)
	}
	return nil
}

func (s *Store) GetMember(ctx context.Context, memberID id.MemberID) (*member.Member, error) {
	var m memberModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": memberID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, clubsync.ErrMemberNotFound
		}
		return nil, fmt.Errorf("clubsync/mongo: get member: %w", err)
	}
	return fromMemberModel(&m)
}

func (s *Store) ListMembers(ctx context.Context, clubID id.ClubID, opts member.ListOpts) ([]*member.Member, error) {
	var models []memberModel

	filter := bson.M{"club_id": clubID.String()}
	if opts.Status != "" {
		filter["status"] = string(opts.Status)
	}

	q := s.mdb.NewFind(&models).
		Filter(filter).
		Sort(bson.D{{Key: "created_at", Value: 1}})

	if opts.Limit > 0 {
		q = q.Limit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		q = q.Skip(int64(opts.Offset))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("clubsync/mongo: list members: %w", err)
	}

	result := make([]*member.Member, len(models))
	for i := range models {
		m, err := fromMemberModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = m
	}
	return result, nil
}

func (s *Store) UpdateMember(ctx context.Context, m *member.Member) error {
	model := toMemberModel(m)
	model.UpdatedAt = now()

	res, err := s.mdb.NewUpdate(model).
		Filter(bson.M{"_id": model.ID}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("clubsync/mongo: update member: %w", err)
	}
	if res.MatchedCount() == 0 {
		return clubsync.ErrMemberNotFound
	}
	return nil
}

// ==================== Due Store ====================

func (s *Store) GetDue(ctx context.Context, dueID id.DueID) (*due.Due, error) {
	var m dueModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": dueID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, clubsync.ErrDueNotFound
		}
		return nil, fmt.Errorf("clubsync/mongo: get due: %w", err)
	}
	return fromDueModel(&m)
}

func (s *Store) ListDues(ctx context.Context, clubID id.ClubID, opts due.ListOpts) ([]*due.Due, error) {
	var models []dueModel

	filter := bson.M{"club_id": clubID.String()}
	if opts.Status != "" {
		filter["status"] = string(opts.Status)
	}
	if !opts.Period.IsZero() {
		filter["period"] = opts.Period.String()
	}

	q := s.mdb.NewFind(&models).
		Filter(filter).
		Sort(bson.D{{Key: "period", Value: 1}, {Key: "_id", Value: 1}})

	if opts.Limit > 0 {
		q = q.Limit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		q = q.Skip(int64(opts.Offset))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("clubsync/mongo: list dues: %w", err)
	}
	return duesFromModels(models)
}

func (s *Store) ListDuesByMember(ctx context.Context, clubID id.ClubID, memberID id.MemberID) ([]*due.Due, error) {
	var models []dueModel

	err := s.mdb.NewFind(&models).
		Filter(bson.M{"club_id": clubID.String(), "member_id": memberID.String()}).
		Sort(bson.D{{Key: "period", Value: 1}}).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("clubsync/mongo: list dues by member: %w", err)
	}
	return duesFromModels(models)
}

func (s *Store) ListDuesByPeriod(ctx context.Context, clubID id.ClubID, period types.Period) ([]*due.Due, error) {
	var models []dueModel

	err := s.mdb.NewFind(&models).
		Filter(bson.M{"club_id": clubID.String(), "period": period.String()}).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("clubsync/mongo: list dues by period: %w", err)
	}
	return duesFromModels(models)
}

func duesFromModels(models []dueModel) ([]*due.Due, error) {
	result := make([]*due.Due, len(models))
	for i := range models {
		d, err := fromDueModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = d
	}
	return result, nil
}

// ==================== Payment Store ====================

func (s *Store) GetPayment(ctx context.Context, paymentID id.PaymentID) (*payment.Payment, error) {
	var m paymentModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": paymentID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, clubsync.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("clubsync/mongo: get payment: %w", err)
	}
	return fromPaymentModel(&m)
}

func (s *Store) ListPayments(ctx context.Context, clubID id.ClubID, opts payment.ListOpts) ([]*payment.Payment, error) {
	var models []paymentModel

	filter := bson.M{"club_id": clubID.String()}
	if !opts.Start.IsZero() || !opts.End.IsZero() {
		dateFilter := bson.M{}
		if !opts.Start.IsZero() {
			dateFilter["$gte"] = opts.Start
		}
		if !opts.End.IsZero() {
			dateFilter["$lt"] = opts.End
		}
		filter["date"] = dateFilter
	}

	q := s.mdb.NewFind(&models).
		Filter(filter).
		Sort(bson.D{{Key: "date", Value: 1}})

	if opts.Limit > 0 {
		q = q.Limit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		q = q.Skip(int64(opts.Offset))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("clubsync/mongo: list payments: %w", err)
	}
	return paymentsFromModels(models)
}

func (s *Store) ListPaymentsByMember(ctx context.Context, clubID id.ClubID, memberID id.MemberID) ([]*payment.Payment, error) {
	var models []paymentModel

	err := s.mdb.NewFind(&models).
		Filter(bson.M{"club_id": clubID.String(), "member_id": memberID.String()}).
		Sort(bson.D{{Key: "date", Value: 1}}).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("clubsync/mongo: list payments by member: %w", err)
	}
	return paymentsFromModels(models)
}

func paymentsFromModels(models []paymentModel) ([]*payment.Payment, error) {
	result := make([]*payment.Payment, len(models))
	for i := range models {
		p, err := fromPaymentModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = p
	}
	return result, nil
}

func (s *Store) UpdatePaymentDetails(ctx context.Context, paymentID id.PaymentID, details string) error {
	res, err := s.mdb.NewUpdate((*paymentModel)(nil)).
		Filter(bson.M{"_id": paymentID.String()}).
		Set("details", details).
		Set("updated_at", now()).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("clubsync/mongo: update payment details: %w", err)
	}
	if res.MatchedCount() == 0 {
		return clubsync.ErrPaymentNotFound
	}
	return nil
}

// ==================== Schedule Store ====================

func (s *Store) GetScheduleEntry(ctx context.Context, entryID id.ScheduleID) (*schedule.Entry, error) {
	var m scheduleModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": entryID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, clubsync.ErrScheduleNotFound
		}
		return nil, fmt.Errorf("clubsync/mongo: get schedule entry: %w", err)
	}
	return fromScheduleModel(&m)
}

func (s *Store) ListSchedule(ctx context.Context, clubID id.ClubID, opts schedule.ListOpts) ([]*schedule.Entry, error) {
	var models []scheduleModel

	filter := bson.M{"club_id": clubID.String()}
	if opts.Status != "" {
		filter["status"] = string(opts.Status)
	}

	q := s.mdb.NewFind(&models).
		Filter(filter).
		Sort(bson.D{{Key: "day_of_week", Value: 1}, {Key: "start_minutes", Value: 1}})

	if opts.Limit > 0 {
		q = q.Limit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		q = q.Skip(int64(opts.Offset))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("clubsync/mongo: list schedule: %w", err)
	}
	return entriesFromModels(models)
}

func (s *Store) ListScheduleByInstructor(ctx context.Context, clubID id.ClubID, instructorID id.InstructorID) ([]*schedule.Entry, error) {
	var models []scheduleModel

	err := s.mdb.NewFind(&models).
		Filter(bson.M{"club_id": clubID.String(), "instructor_id": instructorID.String()}).
		Sort(bson.D{{Key: "day_of_week", Value: 1}, {Key: "start_minutes", Value: 1}}).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("clubsync/mongo: list schedule by instructor: %w", err)
	}
	return entriesFromModels(models)
}

func entriesFromModels(models []scheduleModel) ([]*schedule.Entry, error) {
	result := make([]*schedule.Entry, len(models))
	for i := range models {
		e, err := fromScheduleModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = e
	}
	return result, nil
}

func (s *Store) UpdateScheduleEntry(ctx context.Context, e *schedule.Entry) error {
	model := toScheduleModel(e)
	model.UpdatedAt = now()

	_, err := s.mdb.NewUpdate(model).
		Filter(bson.M{"_id": model.ID}).
		Upsert().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("clubsync/mongo: update schedule entry: %w", err)
	}
	return nil
}

func (s *Store) DeleteScheduleEntry(ctx context.Context, entryID id.ScheduleID) error {
	res, err := s.mdb.NewDelete((*scheduleModel)(nil)).
		Filter(bson.M{"_id": entryID.String()}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("clubsync/mongo: delete schedule entry: %w", err)
	}
	if res.DeletedCount() == 0 {
		return clubsync.ErrScheduleNotFound
	}
	return nil
}

// ==================== Activity Store ====================

func (s *Store) GetActivity(ctx context.Context, activityID id.ActivityID) (*activity.Activity, error) {
	var m activityModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": activityID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, clubsync.ErrActivityNotFound
		}
		return nil, fmt.Errorf("clubsync/mongo: get activity: %w", err)
	}
	return fromActivityModel(&m)
}

func (s *Store) ListActivities(ctx context.Context, clubID id.ClubID) ([]*activity.Activity, error) {
	var models []activityModel

	err := s.mdb.NewFind(&models).
		Filter(bson.M{"club_id": clubID.String()}).
		Sort(bson.D{{Key: "name", Value: 1}}).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("clubsync/mongo: list activities: %w", err)
	}

	result := make([]*activity.Activity, len(models))
	for i := range models {
		a, err := fromActivityModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = a
	}
	return result, nil
}

func (s *Store) UpdateActivity(ctx context.Context, a *activity.Activity) error {
	model := toActivityModel(a)
	model.UpdatedAt = now()

	_, err := s.mdb.NewUpdate(model).
		Filter(bson.M{"_id": model.ID}).
		Upsert().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("clubsync/mongo: update activity: %w", err)
	}
	return nil
}

func (s *Store) DeleteActivity(ctx context.Context, activityID id.ActivityID) error {
	res, err := s.mdb.NewDelete((*activityModel)(nil)).
		Filter(bson.M{"_id": activityID.String()}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("clubsync/mongo: delete activity: %w", err)
	}
	if res.DeletedCount() == 0 {
		return clubsync.ErrActivityNotFound
	}
	return nil
}

// ==================== Instructor Store ====================

func (s *Store) GetInstructor(ctx context.Context, instructorID id.InstructorID) (*instructor.Instructor, error) {
	var m instructorModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": instructorID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, clubsync.ErrInstructorNotFound
		}
		return nil, fmt.Errorf("clubsync/mongo: get instructor: %w", err)
	}
	return fromInstructorModel(&m)
}

func (s *Store) ListInstructors(ctx context.Context, clubID id.ClubID, opts instructor.ListOpts) ([]*instructor.Instructor, error) {
	var models []instructorModel

	q := s.mdb.NewFind(&models).
		Filter(bson.M{"club_id": clubID.String()}).
		Sort(bson.D{{Key: "last_name", Value: 1}, {Key: "first_name", Value: 1}})

	if opts.Limit > 0 {
		q = q.Limit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		q = q.Skip(int64(opts.Offset))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("clubsync/mongo: list instructors: %w", err)
	}

	result := make([]*instructor.Instructor, len(models))
	for i := range models {
		inst, err := fromInstructorModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = inst
	}
	return result, nil
}

func (s *Store) GetUser(ctx context.Context, userID id.UserID) (*instructor.User, error) {
	var m userModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": userID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, clubsync.ErrUserNotFound
		}
		return nil, fmt.Errorf("clubsync/mongo: get user: %w", err)
	}
	return fromUserModel(&m)
}

func (s *Store) GetUserByInstructor(ctx context.Context, instructorID id.InstructorID) (*instructor.User, error) {
	var m userModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"instructor_id": instructorID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, clubsync.ErrUserNotFound
		}
		return nil, fmt.Errorf("clubsync/mongo: get user by instructor: %w", err)
	}
	return fromUserModel(&m)
}

func (s *Store) ListUsers(ctx context.Context, clubID id.ClubID, opts instructor.ListOpts) ([]*instructor.User, error) {
	var models []userModel

	q := s.mdb.NewFind(&models).
		Filter(bson.M{"club_id": clubID.String()}).
		Sort(bson.D{{Key: "email", Value: 1}})

	if opts.Limit > 0 {
		q = q.Limit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		q = q.Skip(int64(opts.Offset))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("clubsync/mongo: list users: %w", err)
	}

	result := make([]*instructor.User, len(models))
	for i := range models {
		u, err := fromUserModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = u
	}
	return result, nil
}

// ==================== News Store ====================

func (s *Store) GetNews(ctx context.Context, newsID id.NewsID) (*news.Item, error) {
	var m newsModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": newsID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, clubsync.ErrNewsNotFound
		}
		return nil, fmt.Errorf("clubsync/mongo: get news: %w", err)
	}
	return fromNewsModel(&m)
}

func (s *Store) ListNews(ctx context.Context, clubID id.ClubID, opts news.ListOpts) ([]*news.Item, error) {
	var models []newsModel

	q := s.mdb.NewFind(&models).
		Filter(bson.M{"club_id": clubID.String()}).
		Sort(bson.D{{Key: "published_at", Value: -1}})

	if opts.Limit > 0 {
		q = q.Limit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		q = q.Skip(int64(opts.Offset))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("clubsync/mongo: list news: %w", err)
	}

	result := make([]*news.Item, len(models))
	for i := range models {
		n, err := fromNewsModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = n
	}
	return result, nil
}

func (s *Store) UpdateNews(ctx context.Context, item *news.Item) error {
	model := toNewsModel(item)
	model.UpdatedAt = now()

	_, err := s.mdb.NewUpdate(model).
		Filter(bson.M{"_id": model.ID}).
		Upsert().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("clubsync/mongo: update news: %w", err)
	}
	return nil
}

func (s *Store) DeleteNews(ctx context.Context, newsID id.NewsID) error {
	res, err := s.mdb.NewDelete((*newsModel)(nil)).
		Filter(bson.M{"_id": newsID.String()}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("clubsync/mongo: delete news: %w", err)
	}
	if res.DeletedCount() == 0 {
		return clubsync.ErrNewsNotFound
	}
	return nil
}

// ==================== Settings Store ====================

func (s *Store) GetSettings(ctx context.Context, clubID id.ClubID) (*settings.Settings, error) {
	var m settingsModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": clubID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, clubsync.ErrSettingsNotFound
		}
		return nil, fmt.Errorf("clubsync/mongo: get settings: %w", err)
	}
	return fromSettingsModel(&m)
}

func (s *Store) SaveSettings(ctx context.Context, cfg *settings.Settings) error {
	model := toSettingsModel(cfg)
	model.UpdatedAt = now()

	_, err := s.mdb.NewUpdate(model).
		Filter(bson.M{"_id": model.ID}).
		Upsert().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("clubsync/mongo: save settings: %w", err)
	}
	return nil
}

// ==================== Attendance Store ====================

func (s *Store) CreateAttendance(ctx context.Context, e *attendance.Entry) error {
	model := toAttendanceModel(e)
	_, err := s.mdb.NewInsert(model).Exec(ctx)
	if err != nil {
		return fmt.Errorf("clubsync/mongo: create attendance: %w", err)
	}
	return nil
}

func (s *Store) ListAttendance(ctx context.Context, clubID id.ClubID, opts attendance.ListOpts) ([]*attendance.Entry, error) {
	var models []attendanceModel

	q := s.mdb.NewFind(&models).
		Filter(bson.M{"club_id": clubID.String()}).
		Sort(bson.D{{Key: "checked_in_at", Value: -1}})

	if opts.Limit > 0 {
		q = q.Limit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		q = q.Skip(int64(opts.Offset))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("clubsync/mongo: list attendance: %w", err)
	}

	result := make([]*attendance.Entry, len(models))
	for i := range models {
		e, err := fromAttendanceModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = e
	}
	return result, nil
}

// ==================== Usage Store ====================

func (s *Store) IngestUploads(ctx context.Context, events []*usage.UploadEvent) error {
	if len(events) == 0 {
		return nil
	}

	byClub := make(map[string]int64)
	for _, e := range events {
		m := toUploadEventModel(e)
		_, err := s.mdb.NewInsert(m).Exec(ctx)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				continue
			}
			return fmt.Errorf("clubsync/mongo: ingest upload: %w", err)
		}
		byClub[e.ClubID.String()] += e.Bytes
	}

	for clubID, total := range byClub {
		_, err := s.mdb.Collection(colSettings).UpdateOne(ctx,
			bson.M{"_id": clubID},
			bson.M{
				"$inc": bson.M{"storage_used": total},
				"$set": bson.M{"updated_at": now()},
			},
		)
		if err != nil {
			return fmt.Errorf("clubsync/mongo: bump storage counter: %w", err)
		}
	}
	return nil
}

func (s *Store) ListUploads(ctx context.Context, clubID id.ClubID, start, end time.Time) ([]*usage.UploadEvent, error) {
	var models []uploadEventModel

	filter := bson.M{"club_id": clubID.String()}
	if !start.IsZero() || !end.IsZero() {
		occFilter := bson.M{}
		if !start.IsZero() {
			occFilter["$gte"] = start
		}
		if !end.IsZero() {
			occFilter["$lt"] = end
		}
		filter["occurred"] = occFilter
	}

	err := s.mdb.NewFind(&models).
		Filter(filter).
		Sort(bson.D{{Key: "occurred", Value: 1}}).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("clubsync/mongo: list uploads: %w", err)
	}

	result := make([]*usage.UploadEvent, len(models))
	for i := range models {
		e, err := fromUploadEventModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = e
	}
	return result, nil
}

func (s *Store) StorageUsed(ctx context.Context, clubID id.ClubID) (int64, error) {
	pipeline := bson.A{
		bson.M{"$match": bson.M{"club_id": clubID.String()}},
		bson.M{"$group": bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$bytes"},
		}},
	}

	cursor, err := s.mdb.Collection(colUploads).Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("clubsync/mongo: storage used: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total int64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, fmt.Errorf("clubsync/mongo: storage used decode: %w", err)
	}

	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}

// ==================== Helpers ====================

// now returns the current UTC time.
func now() time.Time {
	return time.Now().UTC()
}

// isNoDocuments checks if an error wraps mongo.ErrNoDocuments.
func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

// migrationIndexes returns the index definitions for all portal
// collections. The unique dues index is what makes dues generation
// idempotent under concurrent staff sessions.
func migrationIndexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		colMembers: {
			{Keys: bson.D{{Key: "club_id", Value: 1}, {Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "club_id", Value: 1}, {Key: "created_at", Value: 1}}},
		},
		colDues: {
			{
				Keys:    bson.D{{Key: "club_id", Value: 1}, {Key: "member_id", Value: 1}, {Key: "period", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{Keys: bson.D{{Key: "club_id", Value: 1}, {Key: "period", Value: 1}, {Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "member_id", Value: 1}, {Key: "period", Value: 1}}},
		},
		colPayments: {
			{Keys: bson.D{{Key: "club_id", Value: 1}, {Key: "date", Value: 1}}},
			{Keys: bson.D{{Key: "member_id", Value: 1}, {Key: "date", Value: 1}}},
			{Keys: bson.D{{Key: "due_id", Value: 1}}},
		},
		colSchedule: {
			{Keys: bson.D{{Key: "club_id", Value: 1}, {Key: "day_of_week", Value: 1}, {Key: "start_minutes", Value: 1}}},
			{Keys: bson.D{{Key: "instructor_id", Value: 1}, {Key: "day_of_week", Value: 1}}},
		},
		colActivities: {
			{Keys: bson.D{{Key: "club_id", Value: 1}, {Key: "name", Value: 1}}},
		},
		colInstructors: {
			{Keys: bson.D{{Key: "club_id", Value: 1}, {Key: "last_name", Value: 1}}},
		},
		colUsers: {
			{
				Keys:    bson.D{{Key: "club_id", Value: 1}, {Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{
				Keys:    bson.D{{Key: "instructor_id", Value: 1}},
				Options: options.Index().SetSparse(true),
			},
		},
		colNews: {
			{Keys: bson.D{{Key: "club_id", Value: 1}, {Key: "published_at", Value: -1}}},
		},
		colUploads: {
			{Keys: bson.D{{Key: "club_id", Value: 1}, {Key: "occurred", Value: -1}}},
		},
		colAttendance: {
			{Keys: bson.D{{Key: "club_id", Value: 1}, {Key: "checked_in_at", Value: -1}}},
			{Keys: bson.D{{Key: "member_id", Value: 1}, {Key: "checked_in_at", Value: -1}}},
		},
	}
}

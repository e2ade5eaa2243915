package store

import (
	"context"
	"time"

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
	"github.com/xraph/clubsync/types"
	"github.com/xraph/clubsync/usage"
)

// Collection names an entity class for batch writes and feeds.
type Collection string

const (
	CollectionMembers     Collection = "members"
	CollectionDues        Collection = "dues"
	CollectionPayments    Collection = "payments"
	CollectionSchedule    Collection = "schedule"
	CollectionActivities  Collection = "activities"
	CollectionInstructors Collection = "instructors"
	CollectionUsers       Collection = "users"
	CollectionNews        Collection = "news"
	CollectionSettings    Collection = "settings"
	CollectionUploads     Collection = "uploads"
)

// Op is the kind of mutation a batch entry performs.
type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Write is one entry in an atomic batch. Entity carries the full
// document for creates and updates; for deletes only ID is consulted.
type Write struct {
	Collection Collection
	Op         Op
	ID         id.AnyID
	Entity     any
}

// Feed is a live subscription to one collection. Updates delivers the
// full current list for the club after every relevant change, never a
// delta. Errs reports feed failures without closing Updates. Cancel
// stops the feed; both channels are closed afterwards.
type Feed[T any] struct {
	Updates <-chan []*T
	Errs    <-chan error
	Cancel  func()
}

// Store is the unified storage interface for all portal entities.
// Instead of embedding the sub-interfaces, we explicitly declare all
// methods to avoid naming conflicts.
//
// Dues, payments, instructors, and users have no standalone create
// methods: they are only written through ApplyBatch, paired with the
// sibling writes their invariants require. The Update methods on
// schedule, activity, and news are upserts.
type Store interface {
	// Member methods
	CreateMember(ctx context.Context, m *member.Member) error
	GetMember(ctx context.Context, memberID id.MemberID) (*member.Member, error)
	ListMembers(ctx context.Context, clubID id.ClubID, opts member.ListOpts) ([]*member.Member, error)
	UpdateMember(ctx context.Context, m *member.Member) error

	// Due methods
	GetDue(ctx context.Context, dueID id.DueID) (*due.Due, error)
	ListDues(ctx context.Context, clubID id.ClubID, opts due.ListOpts) ([]*due.Due, error)
	ListDuesByMember(ctx context.Context, clubID id.ClubID, memberID id.MemberID) ([]*due.Due, error)
	ListDuesByPeriod(ctx context.Context, clubID id.ClubID, period types.Period) ([]*due.Due, error)

	// Payment methods
	GetPayment(ctx context.Context, paymentID id.PaymentID) (*payment.Payment, error)
	ListPayments(ctx context.Context, clubID id.ClubID, opts payment.ListOpts) ([]*payment.Payment, error)
	ListPaymentsByMember(ctx context.Context, clubID id.ClubID, memberID id.MemberID) ([]*payment.Payment, error)
	UpdatePaymentDetails(ctx context.Context, paymentID id.PaymentID, details string) error

	// Schedule methods
	GetScheduleEntry(ctx context.Context, entryID id.ScheduleID) (*schedule.Entry, error)
	ListSchedule(ctx context.Context, clubID id.ClubID, opts schedule.ListOpts) ([]*schedule.Entry, error)
	ListScheduleByInstructor(ctx context.Context, clubID id.ClubID, instructorID id.InstructorID) ([]*schedule.Entry, error)
	UpdateScheduleEntry(ctx context.Context, e *schedule.Entry) error
	DeleteScheduleEntry(ctx context.Context, entryID id.ScheduleID) error

	// Activity methods
	GetActivity(ctx context.Context, activityID id.ActivityID) (*activity.Activity, error)
	ListActivities(ctx context.Context, clubID id.ClubID) ([]*activity.Activity, error)
	UpdateActivity(ctx context.Context, a *activity.Activity) error
	DeleteActivity(ctx context.Context, activityID id.ActivityID) error

	// Instructor methods
	GetInstructor(ctx context.Context, instructorID id.InstructorID) (*instructor.Instructor, error)
	ListInstructors(ctx context.Context, clubID id.ClubID, opts instructor.ListOpts) ([]*instructor.Instructor, error)
	GetUser(ctx context.Context, userID id.UserID) (*instructor.User, error)
	GetUserByInstructor(ctx context.Context, instructorID id.InstructorID) (*instructor.User, error)
	ListUsers(ctx context.Context, clubID id.ClubID, opts instructor.ListOpts) ([]*instructor.User, error)

	// News methods
	GetNews(ctx context.Context, newsID id.NewsID) (*news.Item, error)
	ListNews(ctx context.Context, clubID id.ClubID, opts news.ListOpts) ([]*news.Item, error)
	UpdateNews(ctx context.Context, item *news.Item) error
	DeleteNews(ctx context.Context, newsID id.NewsID) error

	// Attendance methods
	CreateAttendance(ctx context.Context, e *attendance.Entry) error
	ListAttendance(ctx context.Context, clubID id.ClubID, opts attendance.ListOpts) ([]*attendance.Entry, error)

	// Settings methods
	GetSettings(ctx context.Context, clubID id.ClubID) (*settings.Settings, error)
	SaveSettings(ctx context.Context, s *settings.Settings) error

	// Usage methods
	IngestUploads(ctx context.Context, events []*usage.UploadEvent) error
	ListUploads(ctx context.Context, clubID id.ClubID, start, end time.Time) ([]*usage.UploadEvent, error)
	StorageUsed(ctx context.Context, clubID id.ClubID) (int64, error)

	// Batch methods. ApplyBatch applies every write or none; a unique
	// (club, member, period) violation on a due create fails the whole
	// batch with the due-exists error.
	ApplyBatch(ctx context.Context, writes []Write) error

	// Watch methods. Each returns a live feed of the club's full list
	// for the collection, emitting an initial snapshot then a fresh
	// list after every change.
	WatchMembers(ctx context.Context, clubID id.ClubID) (*Feed[member.Member], error)
	WatchDues(ctx context.Context, clubID id.ClubID) (*Feed[due.Due], error)
	WatchPayments(ctx context.Context, clubID id.ClubID) (*Feed[payment.Payment], error)
	WatchSchedule(ctx context.Context, clubID id.ClubID) (*Feed[schedule.Entry], error)
	WatchActivities(ctx context.Context, clubID id.ClubID) (*Feed[activity.Activity], error)
	WatchInstructors(ctx context.Context, clubID id.ClubID) (*Feed[instructor.Instructor], error)

	// Core methods
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}

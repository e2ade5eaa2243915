package mongo

import (
	"time"

	"github.com/xraph/grove"

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

// ==================== Member models ====================

type memberModel struct {
	grove.BaseModel `grove:"table:club_members"`

	ID         string            `grove:"id,pk"       bson:"_id"`
	ClubID     string            `grove:"club_id"     bson:"club_id"`
	Name       string            `grove:"name"        bson:"name"`
	Email      string            `grove:"email"       bson:"email"`
	Phone      string            `grove:"phone"       bson:"phone,omitempty"`
	DNI        string            `grove:"dni"         bson:"dni"`
	MemberType string            `grove:"member_type" bson:"member_type"`
	Status     string            `grove:"status"      bson:"status"`
	ActivityID string            `grove:"activity_id" bson:"activity_id,omitempty"`
	ArchivedAt *time.Time        `grove:"archived_at" bson:"archived_at,omitempty"`
	Metadata   map[string]string `grove:"metadata"    bson:"metadata,omitempty"`
	CreatedAt  time.Time         `grove:"created_at"  bson:"created_at"`
	UpdatedAt  time.Time         `grove:"updated_at"  bson:"updated_at"`
}

func toMemberModel(m *member.Member) *memberModel {
	out := &memberModel{
		ID:         m.ID.String(),
		ClubID:     m.ClubID.String(),
		Name:       m.Name,
		Email:      m.Email,
		Phone:      m.Phone,
		DNI:        m.DNI,
		MemberType: m.MemberType,
		Status:     string(m.Status),
		ArchivedAt: m.ArchivedAt,
		Metadata:   m.Metadata,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
	if !m.ActivityID.IsNil() {
		out.ActivityID = m.ActivityID.String()
	}
	return out
}

func fromMemberModel(m *memberModel) (*member.Member, error) {
	memberID, err := id.ParseMemberID(m.ID)
	if err != nil {
		return nil, err
	}
	clubID, err := id.ParseClubID(m.ClubID)
	if err != nil {
		return nil, err
	}
	out := &member.Member{
		Entity:     types.Entity{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		ID:         memberID,
		ClubID:     clubID,
		Name:       m.Name,
		Email:      m.Email,
		Phone:      m.Phone,
		DNI:        m.DNI,
		MemberType: m.MemberType,
		Status:     member.Status(m.Status),
		ArchivedAt: m.ArchivedAt,
		Metadata:   m.Metadata,
	}
	if m.ActivityID != "" {
		actID, err := id.ParseActivityID(m.ActivityID)
		if err != nil {
			return nil, err
		}
		out.ActivityID = actID
	}
	return out, nil
}

// ==================== Due models ====================

type dueModel struct {
	grove.BaseModel `grove:"table:club_dues"`

	ID             string    `grove:"id,pk"           bson:"_id"`
	ClubID         string    `grove:"club_id"         bson:"club_id"`
	MemberID       string    `grove:"member_id"       bson:"member_id"`
	Period         string    `grove:"period"          bson:"period"`
	AmountCents    int64     `grove:"amount_cents"    bson:"amount_cents"`
	AmountCurrency string    `grove:"amount_currency" bson:"amount_currency"`
	Status         string    `grove:"status"          bson:"status"`
	CreatedAt      time.Time `grove:"created_at"      bson:"created_at"`
	UpdatedAt      time.Time `grove:"updated_at"      bson:"updated_at"`
}

func toDueModel(d *due.Due) *dueModel {
	return &dueModel{
		ID:             d.ID.String(),
		ClubID:         d.ClubID.String(),
		MemberID:       d.MemberID.String(),
		Period:         d.Period.String(),
		AmountCents:    d.Amount.Amount,
		AmountCurrency: d.Amount.Currency,
		Status:         string(d.Status),
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

func fromDueModel(m *dueModel) (*due.Due, error) {
	dueID, err := id.ParseDueID(m.ID)
	if err != nil {
		return nil, err
	}
	clubID, err := id.ParseClubID(m.ClubID)
	if err != nil {
		return nil, err
	}
	memberID, err := id.ParseMemberID(m.MemberID)
	if err != nil {
		return nil, err
	}
	return &due.Due{
		Entity:   types.Entity{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		ID:       dueID,
		ClubID:   clubID,
		MemberID: memberID,
		Period:   types.Period(m.Period),
		Amount:   types.Money{Amount: m.AmountCents, Currency: m.AmountCurrency},
		Status:   due.Status(m.Status),
	}, nil
}

// ==================== Payment models ====================

type receiptTemplateModel struct {
	Title        string `bson:"title"`
	Observations string `bson:"observations,omitempty"`
	ShowLogo     bool   `bson:"show_logo"`
	ShowMember   bool   `bson:"show_member"`
	ShowDNI      bool   `bson:"show_dni"`
	ShowPeriod   bool   `bson:"show_period"`
	ShowAmount   bool   `bson:"show_amount"`
	ShowMethod   bool   `bson:"show_method"`
	ShowDate     bool   `bson:"show_date"`
}

func toReceiptTemplateModel(t settings.ReceiptTemplate) receiptTemplateModel {
	return receiptTemplateModel{
		Title:        t.Title,
		Observations: t.Observations,
		ShowLogo:     t.ShowLogo,
		ShowMember:   t.ShowMember,
		ShowDNI:      t.ShowDNI,
		ShowPeriod:   t.ShowPeriod,
		ShowAmount:   t.ShowAmount,
		ShowMethod:   t.ShowMethod,
		ShowDate:     t.ShowDate,
	}
}

func fromReceiptTemplateModel(m receiptTemplateModel) settings.ReceiptTemplate {
	return settings.ReceiptTemplate{
		Title:        m.Title,
		Observations: m.Observations,
		ShowLogo:     m.ShowLogo,
		ShowMember:   m.ShowMember,
		ShowDNI:      m.ShowDNI,
		ShowPeriod:   m.ShowPeriod,
		ShowAmount:   m.ShowAmount,
		ShowMethod:   m.ShowMethod,
		ShowDate:     m.ShowDate,
	}
}

type paymentModel struct {
	grove.BaseModel `grove:"table:club_payments"`

	ID             string               `grove:"id,pk"           bson:"_id"`
	ClubID         string               `grove:"club_id"         bson:"club_id"`
	MemberID       string               `grove:"member_id"       bson:"member_id"`
	DueID          string               `grove:"due_id"          bson:"due_id"`
	Period         string               `grove:"period"          bson:"period"`
	AmountCents    int64                `grove:"amount_cents"    bson:"amount_cents"`
	AmountCurrency string               `grove:"amount_currency" bson:"amount_currency"`
	Date           time.Time            `grove:"date"            bson:"date"`
	Method         string               `grove:"method"          bson:"method"`
	Details        string               `grove:"details"         bson:"details,omitempty"`
	ProofURL       string               `grove:"proof_url"       bson:"proof_url,omitempty"`
	ReceiptConfig  receiptTemplateModel `grove:"receipt_config"  bson:"receipt_config"`
	CreatedAt      time.Time            `grove:"created_at"      bson:"created_at"`
	UpdatedAt      time.Time            `grove:"updated_at"      bson:"updated_at"`
}

func toPaymentModel(p *payment.Payment) *paymentModel {
	return &paymentModel{
		ID:             p.ID.String(),
		ClubID:         p.ClubID.String(),
		MemberID:       p.MemberID.String(),
		DueID:          p.DueID.String(),
		Period:         p.Period.String(),
		AmountCents:    p.Amount.Amount,
		AmountCurrency: p.Amount.Currency,
		Date:           p.Date,
		Method:         string(p.Method),
		Details:        p.Details,
		ProofURL:       p.ProofURL,
		ReceiptConfig:  toReceiptTemplateModel(p.ReceiptConfig),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func fromPaymentModel(m *paymentModel) (*payment.Payment, error) {
	paymentID, err := id.ParsePaymentID(m.ID)
	if err != nil {
		return nil, err
	}
	clubID, err := id.ParseClubID(m.ClubID)
	if err != nil {
		return nil, err
	}
	memberID, err := id.ParseMemberID(m.MemberID)
	if err != nil {
		return nil, err
	}
	dueID, err := id.ParseDueID(m.DueID)
	if err != nil {
		return nil, err
	}
	return &payment.Payment{
		Entity:        types.Entity{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		ID:            paymentID,
		ClubID:        clubID,
		MemberID:      memberID,
		DueID:         dueID,
		Period:        types.Period(m.Period),
		Amount:        types.Money{Amount: m.AmountCents, Currency: m.AmountCurrency},
		Date:          m.Date,
		Method:        payment.Method(m.Method),
		Details:       m.Details,
		ProofURL:      m.ProofURL,
		ReceiptConfig: fromReceiptTemplateModel(m.ReceiptConfig),
	}, nil
}

// ==================== Schedule models ====================

type scheduleModel struct {
	grove.BaseModel `grove:"table:club_schedule"`

	ID               string    `grove:"id,pk"             bson:"_id"`
	ClubID           string    `grove:"club_id"           bson:"club_id"`
	ActivityID       string    `grove:"activity_id"       bson:"activity_id"`
	InstructorID     string    `grove:"instructor_id"     bson:"instructor_id"`
	Space            string    `grove:"space"             bson:"space"`
	DayOfWeek        int       `grove:"day_of_week"       bson:"day_of_week"`
	StartMinutes     int       `grove:"start_minutes"     bson:"start_minutes"`
	EndMinutes       int       `grove:"end_minutes"       bson:"end_minutes"`
	MaxCapacity      int       `grove:"max_capacity"      bson:"max_capacity"`
	EnrolledMembers  []string  `grove:"enrolled_members"  bson:"enrolled_members"`
	Status           string    `grove:"status"            bson:"status"`
	RejectionComment string    `grove:"rejection_comment" bson:"rejection_comment,omitempty"`
	CreatedAt        time.Time `grove:"created_at"        bson:"created_at"`
	UpdatedAt        time.Time `grove:"updated_at"        bson:"updated_at"`
}

func toScheduleModel(e *schedule.Entry) *scheduleModel {
	enrolled := make([]string, len(e.EnrolledMembers))
	for i, m := range e.EnrolledMembers {
		enrolled[i] = m.String()
	}
	return &scheduleModel{
		ID:               e.ID.String(),
		ClubID:           e.ClubID.String(),
		ActivityID:       e.ActivityID.String(),
		InstructorID:     e.InstructorID.String(),
		Space:            e.Space,
		DayOfWeek:        int(e.DayOfWeek),
		StartMinutes:     int(e.StartTime),
		EndMinutes:       int(e.EndTime),
		MaxCapacity:      e.MaxCapacity,
		EnrolledMembers:  enrolled,
		Status:           string(e.Status),
		RejectionComment: e.RejectionComment,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

func fromScheduleModel(m *scheduleModel) (*schedule.Entry, error) {
	entryID, err := id.ParseScheduleID(m.ID)
	if err != nil {
		return nil, err
	}
	clubID, err := id.ParseClubID(m.ClubID)
	if err != nil {
		return nil, err
	}
	activityID, err := id.ParseActivityID(m.ActivityID)
	if err != nil {
		return nil, err
	}
	instructorID, err := id.ParseInstructorID(m.InstructorID)
	if err != nil {
		return nil, err
	}
	enrolled := make([]id.MemberID, len(m.EnrolledMembers))
	for i, s := range m.EnrolledMembers {
		memberID, err := id.ParseMemberID(s)
		if err != nil {
			return nil, err
		}
		enrolled[i] = memberID
	}
	return &schedule.Entry{
		Entity:           types.Entity{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		ID:               entryID,
		ClubID:           clubID,
		ActivityID:       activityID,
		InstructorID:     instructorID,
		Space:            m.Space,
		DayOfWeek:        time.Weekday(m.DayOfWeek),
		StartTime:        types.TimeOfDay(m.StartMinutes),
		EndTime:          types.TimeOfDay(m.EndMinutes),
		MaxCapacity:      m.MaxCapacity,
		EnrolledMembers:  enrolled,
		Status:           schedule.Status(m.Status),
		RejectionComment: m.RejectionComment,
	}, nil
}

// ==================== Activity models ====================

type activityModel struct {
	grove.BaseModel `grove:"table:club_activities"`

	ID            string    `grove:"id,pk"          bson:"_id"`
	ClubID        string    `grove:"club_id"        bson:"club_id"`
	Name          string    `grove:"name"           bson:"name"`
	Description   string    `grove:"description"    bson:"description,omitempty"`
	IconTag       string    `grove:"icon_tag"       bson:"icon_tag,omitempty"`
	AllowedSpaces []string  `grove:"allowed_spaces" bson:"allowed_spaces"`
	CreatedAt     time.Time `grove:"created_at"     bson:"created_at"`
	UpdatedAt     time.Time `grove:"updated_at"     bson:"updated_at"`
}

func toActivityModel(a *activity.Activity) *activityModel {
	return &activityModel{
		ID:            a.ID.String(),
		ClubID:        a.ClubID.String(),
		Name:          a.Name,
		Description:   a.Description,
		IconTag:       a.IconTag,
		AllowedSpaces: a.AllowedSpaces,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func fromActivityModel(m *activityModel) (*activity.Activity, error) {
	activityID, err := id.ParseActivityID(m.ID)
	if err != nil {
		return nil, err
	}
	clubID, err := id.ParseClubID(m.ClubID)
	if err != nil {
		return nil, err
	}
	return &activity.Activity{
		Entity:        types.Entity{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		ID:            activityID,
		ClubID:        clubID,
		Name:          m.Name,
		Description:   m.Description,
		IconTag:       m.IconTag,
		AllowedSpaces: m.AllowedSpaces,
	}, nil
}

// ==================== Instructor models ====================

type instructorModel struct {
	grove.BaseModel `grove:"table:club_instructors"`

	ID          string    `grove:"id,pk"       bson:"_id"`
	ClubID      string    `grove:"club_id"     bson:"club_id"`
	FirstName   string    `grove:"first_name"  bson:"first_name"`
	LastName    string    `grove:"last_name"   bson:"last_name"`
	Email       string    `grove:"email"       bson:"email"`
	Phone       string    `grove:"phone"       bson:"phone,omitempty"`
	Disciplines []string  `grove:"disciplines" bson:"disciplines"`
	CreatedAt   time.Time `grove:"created_at"  bson:"created_at"`
	UpdatedAt   time.Time `grove:"updated_at"  bson:"updated_at"`
}

func toInstructorModel(i *instructor.Instructor) *instructorModel {
	disciplines := make([]string, len(i.Disciplines))
	for j, d := range i.Disciplines {
		disciplines[j] = d.String()
	}
	return &instructorModel{
		ID:          i.ID.String(),
		ClubID:      i.ClubID.String(),
		FirstName:   i.FirstName,
		LastName:    i.LastName,
		Email:       i.Email,
		Phone:       i.Phone,
		Disciplines: disciplines,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

func fromInstructorModel(m *instructorModel) (*instructor.Instructor, error) {
	instructorID, err := id.ParseInstructorID(m.ID)
	if err != nil {
		return nil, err
	}
	clubID, err := id.ParseClubID(m.ClubID)
	if err != nil {
		return nil, err
	}
	disciplines := make([]id.ActivityID, len(m.Disciplines))
	for i, s := range m.Disciplines {
		activityID, err := id.ParseActivityID(s)
		if err != nil {
			return nil, err
		}
		disciplines[i] = activityID
	}
	return &instructor.Instructor{
		Entity:      types.Entity{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		ID:          instructorID,
		ClubID:      clubID,
		FirstName:   m.FirstName,
		LastName:    m.LastName,
		Email:       m.Email,
		Phone:       m.Phone,
		Disciplines: disciplines,
	}, nil
}

type userModel struct {
	grove.BaseModel `grove:"table:club_users"`

	ID           string    `grove:"id,pk"         bson:"_id"`
	ClubID       string    `grove:"club_id"       bson:"club_id"`
	Email        string    `grove:"email"         bson:"email"`
	Password     string    `grove:"password"      bson:"password,omitempty"`
	Role         string    `grove:"role"          bson:"role"`
	InstructorID string    `grove:"instructor_id" bson:"instructor_id,omitempty"`
	CreatedAt    time.Time `grove:"created_at"    bson:"created_at"`
	UpdatedAt    time.Time `grove:"updated_at"    bson:"updated_at"`
}

func toUserModel(u *instructor.User) *userModel {
	out := &userModel{
		ID:        u.ID.String(),
		ClubID:    u.ClubID.String(),
		Email:     u.Email,
		Password:  u.Password,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if !u.InstructorID.IsNil() {
		out.InstructorID = u.InstructorID.String()
	}
	return out
}

func fromUserModel(m *userModel) (*instructor.User, error) {
	userID, err := id.ParseUserID(m.ID)
	if err != nil {
		return nil, err
	}
	clubID, err := id.ParseClubID(m.ClubID)
	if err != nil {
		return nil, err
	}
	out := &instructor.User{
		Entity:   types.Entity{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		ID:       userID,
		ClubID:   clubID,
		Email:    m.Email,
		Password: m.Password,
		Role:     instructor.Role(m.Role),
	}
	if m.InstructorID != "" {
		instructorID, err := id.ParseInstructorID(m.InstructorID)
		if err != nil {
			return nil, err
		}
		out.InstructorID = instructorID
	}
	return out, nil
}

// ==================== News models ====================

type newsModel struct {
	grove.BaseModel `grove:"table:club_news"`

	ID          string    `grove:"id,pk"        bson:"_id"`
	ClubID      string    `grove:"club_id"      bson:"club_id"`
	Title       string    `grove:"title"        bson:"title"`
	Body        string    `grove:"body"         bson:"body"`
	ImageURL    string    `grove:"image_url"    bson:"image_url,omitempty"`
	PublishedAt time.Time `grove:"published_at" bson:"published_at"`
	Pinned      bool      `grove:"pinned"       bson:"pinned"`
	CreatedAt   time.Time `grove:"created_at"   bson:"created_at"`
	UpdatedAt   time.Time `grove:"updated_at"   bson:"updated_at"`
}

func toNewsModel(n *news.Item) *newsModel {
	return &newsModel{
		ID:          n.ID.String(),
		ClubID:      n.ClubID.String(),
		Title:       n.Title,
		Body:        n.Body,
		ImageURL:    n.ImageURL,
		PublishedAt: n.PublishedAt,
		Pinned:      n.Pinned,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
	}
}

func fromNewsModel(m *newsModel) (*news.Item, error) {
	newsID, err := id.ParseNewsID(m.ID)
	if err != nil {
		return nil, err
	}
	clubID, err := id.ParseClubID(m.ClubID)
	if err != nil {
		return nil, err
	}
	return &news.Item{
		Entity:      types.Entity{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		ID:          newsID,
		ClubID:      clubID,
		Title:       m.Title,
		Body:        m.Body,
		ImageURL:    m.ImageURL,
		PublishedAt: m.PublishedAt,
		Pinned:      m.Pinned,
	}, nil
}

// ==================== Settings models ====================

type feeModel struct {
	AmountCents int64  `bson:"amount_cents"`
	Currency    string `bson:"currency"`
}

type spaceModel struct {
	Name  string `bson:"name"`
	Color string `bson:"color"`
}

type couponTemplateModel struct {
	Title        string `bson:"title"`
	Observations string `bson:"observations,omitempty"`
	ShowLogo     bool   `bson:"show_logo"`
	ShowMember   bool   `bson:"show_member"`
	ShowDNI      bool   `bson:"show_dni"`
	ShowPeriod   bool   `bson:"show_period"`
	ShowAmount   bool   `bson:"show_amount"`
	ShowDueDate  bool   `bson:"show_due_date"`
}

type dashboardModel struct {
	ShowIncome     bool `bson:"show_income"`
	ShowDebtors    bool `bson:"show_debtors"`
	ShowBirthdays  bool `bson:"show_birthdays"`
	ShowSchedule   bool `bson:"show_schedule"`
	ShowNews       bool `bson:"show_news"`
	ShowEnrollment bool `bson:"show_enrollment"`
}

type settingsModel struct {
	grove.BaseModel `grove:"table:club_settings"`

	ID           string               `grove:"id,pk"         bson:"_id"` // club ID
	FeeTable     map[string]feeModel  `grove:"fee_table"     bson:"fee_table"`
	Spaces       []spaceModel         `grove:"spaces"        bson:"spaces"`
	Receipt      receiptTemplateModel `grove:"receipt"       bson:"receipt"`
	Coupon       couponTemplateModel  `grove:"coupon"        bson:"coupon"`
	Dashboard    dashboardModel       `grove:"dashboard"     bson:"dashboard"`
	StorageUsed  int64                `grove:"storage_used"  bson:"storage_used"`
	StorageLimit int64                `grove:"storage_limit" bson:"storage_limit"`
	CreatedAt    time.Time            `grove:"created_at"    bson:"created_at"`
	UpdatedAt    time.Time            `grove:"updated_at"    bson:"updated_at"`
}

func toSettingsModel(s *settings.Settings) *settingsModel {
	fees := make(map[string]feeModel, len(s.FeeTable))
	for k, v := range s.FeeTable {
		fees[k] = feeModel{AmountCents: v.Amount, Currency: v.Currency}
	}
	spaces := make([]spaceModel, len(s.Spaces))
	for i, sp := range s.Spaces {
		spaces[i] = spaceModel{Name: sp.Name, Color: sp.Color}
	}
	return &settingsModel{
		ID:       s.ClubID.String(),
		FeeTable: fees,
		Spaces:   spaces,
		Receipt:  toReceiptTemplateModel(s.Receipt),
		Coupon: couponTemplateModel{
			Title:        s.Coupon.Title,
			Observations: s.Coupon.Observations,
			ShowLogo:     s.Coupon.ShowLogo,
			ShowMember:   s.Coupon.ShowMember,
			ShowDNI:      s.Coupon.ShowDNI,
			ShowPeriod:   s.Coupon.ShowPeriod,
			ShowAmount:   s.Coupon.ShowAmount,
			ShowDueDate:  s.Coupon.ShowDueDate,
		},
		Dashboard: dashboardModel{
			ShowIncome:     s.Dashboard.ShowIncome,
			ShowDebtors:    s.Dashboard.ShowDebtors,
			ShowBirthdays:  s.Dashboard.ShowBirthdays,
			ShowSchedule:   s.Dashboard.ShowSchedule,
			ShowNews:       s.Dashboard.ShowNews,
			ShowEnrollment: s.Dashboard.ShowEnrollment,
		},
		StorageUsed:  s.StorageUsed,
		StorageLimit: s.StorageLimit,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func fromSettingsModel(m *settingsModel) (*settings.Settings, error) {
	clubID, err := id.ParseClubID(m.ID)
	if err != nil {
		return nil, err
	}
	fees := make(map[string]types.Money, len(m.FeeTable))
	for k, v := range m.FeeTable {
		fees[k] = types.Money{Amount: v.AmountCents, Currency: v.Currency}
	}
	spaces := make([]settings.Space, len(m.Spaces))
	for i, sp := range m.Spaces {
		spaces[i] = settings.Space{Name: sp.Name, Color: sp.Color}
	}
	return &settings.Settings{
		Entity:   types.Entity{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		ClubID:   clubID,
		FeeTable: fees,
		Spaces:   spaces,
		Receipt:  fromReceiptTemplateModel(m.Receipt),
		Coupon: settings.CouponTemplate{
			Title:        m.Coupon.Title,
			Observations: m.Coupon.Observations,
			ShowLogo:     m.Coupon.ShowLogo,
			ShowMember:   m.Coupon.ShowMember,
			ShowDNI:      m.Coupon.ShowDNI,
			ShowPeriod:   m.Coupon.ShowPeriod,
			ShowAmount:   m.Coupon.ShowAmount,
			ShowDueDate:  m.Coupon.ShowDueDate,
		},
		Dashboard: settings.Dashboard{
			ShowIncome:     m.Dashboard.ShowIncome,
			ShowDebtors:    m.Dashboard.ShowDebtors,
			ShowBirthdays:  m.Dashboard.ShowBirthdays,
			ShowSchedule:   m.Dashboard.ShowSchedule,
			ShowNews:       m.Dashboard.ShowNews,
			ShowEnrollment: m.Dashboard.ShowEnrollment,
		},
		StorageUsed:  m.StorageUsed,
		StorageLimit: m.StorageLimit,
	}, nil
}

// ==================== Attendance models ====================

type attendanceModel struct {
	grove.BaseModel `grove:"table:club_attendance"`

	ID          string    `grove:"id,pk"         bson:"_id"`
	ClubID      string    `grove:"club_id"       bson:"club_id"`
	MemberID    string    `grove:"member_id"     bson:"member_id"`
	MemberName  string    `grove:"member_name"   bson:"member_name"`
	CheckedInAt time.Time `grove:"checked_in_at" bson:"checked_in_at"`
	CreatedAt   time.Time `grove:"created_at"    bson:"created_at"`
	UpdatedAt   time.Time `grove:"updated_at"    bson:"updated_at"`
}

func toAttendanceModel(e *attendance.Entry) *attendanceModel {
	return &attendanceModel{
		ID:          e.ID.String(),
		ClubID:      e.ClubID.String(),
		MemberID:    e.MemberID.String(),
		MemberName:  e.MemberName,
		CheckedInAt: e.CheckedInAt,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func fromAttendanceModel(m *attendanceModel) (*attendance.Entry, error) {
	entryID, err := id.ParseAttendanceID(m.ID)
	if err != nil {
		return nil, err
	}
	clubID, err := id.ParseClubID(m.ClubID)
	if err != nil {
		return nil, err
	}
	memberID, err := id.ParseMemberID(m.MemberID)
	if err != nil {
		return nil, err
	}
	return &attendance.Entry{
		Entity:      types.Entity{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		ID:          entryID,
		ClubID:      clubID,
		MemberID:    memberID,
		MemberName:  m.MemberName,
		CheckedInAt: m.CheckedInAt,
	}, nil
}

// ==================== Upload models ====================

type uploadEventModel struct {
	grove.BaseModel `grove:"table:club_uploads"`

	ID        string    `grove:"id,pk"      bson:"_id"`
	ClubID    string    `grove:"club_id"    bson:"club_id"`
	Kind      string    `grove:"kind"       bson:"kind"`
	Bytes     int64     `grove:"bytes"      bson:"bytes"`
	Path      string    `grove:"path"       bson:"path,omitempty"`
	Occurred  time.Time `grove:"occurred"   bson:"occurred"`
	CreatedAt time.Time `grove:"created_at" bson:"created_at"`
	UpdatedAt time.Time `grove:"updated_at" bson:"updated_at"`
}

func toUploadEventModel(e *usage.UploadEvent) *uploadEventModel {
	return &uploadEventModel{
		ID:        e.ID.String(),
		ClubID:    e.ClubID.String(),
		Kind:      string(e.Kind),
		Bytes:     e.Bytes,
		Path:      e.Path,
		Occurred:  e.Occurred,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func fromUploadEventModel(m *uploadEventModel) (*usage.UploadEvent, error) {
	uploadID, err := id.ParseUploadID(m.ID)
	if err != nil {
		return nil, err
	}
	clubID, err := id.ParseClubID(m.ClubID)
	if err != nil {
		return nil, err
	}
	return &usage.UploadEvent{
		Entity:   types.Entity{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		ID:       uploadID,
		ClubID:   clubID,
		Kind:     usage.Kind(m.Kind),
		Bytes:    m.Bytes,
		Path:     m.Path,
		Occurred: m.Occurred,
	}, nil
}

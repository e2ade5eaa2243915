package clubsync

import (
	"context"
	"errors"

	"github.com/xraph/clubsync/id"
	"github.com/xraph/clubsync/schedule"
	"github.com/xraph/clubsync/types"
)

// SaveScheduleEntry creates or edits a weekly class slot. The entry is
// rejected when its activity does not allow the space, when the space
// is not configured for the club, or when it would overlap another
// slot of the same instructor on the same weekday. A slot never
// conflicts with its own stored version, so edits that keep the time
// are always admissible.
//
// New entries enter Pending for the instructor to decide on. Staff
// edits of an existing entry preserve its status, rejection comment,
// and enrollment; use ResetScheduleStatus to send an edited slot back
// for a fresh decision.
func (p *Portal) SaveScheduleEntry(ctx context.Context, e *schedule.Entry) (*schedule.Entry, error) {
	if e == nil || e.ClubID.IsNil() || e.ActivityID.IsNil() || e.InstructorID.IsNil() {
		return nil, ErrInvalidInput
	}
	if e.StartTime >= e.EndTime {
		return nil, &ValidationError{Field: "start_time", Message: "must be before end_time"}
	}
	if e.Space == "" {
		return nil, &ValidationError{Field: "space", Message: "required"}
	}

	act, err := p.store.GetActivity(ctx, e.ActivityID)
	if err != nil {
		return nil, err
	}
	if act.ClubID != e.ClubID {
		return nil, ErrWrongTenant
	}
	if !act.AllowsSpace(e.Space) {
		return nil, ErrSpaceNotAllowed
	}

	cfg, err := p.store.GetSettings(ctx, e.ClubID)
	if err != nil && !errors.Is(err, ErrSettingsNotFound) {
		return nil, err
	}
	if cfg != nil && len(cfg.Spaces) > 0 && !cfg.HasSpace(e.Space) {
		return nil, ErrSpaceNotAllowed
	}

	saved := *e
	if saved.ID.IsNil() {
		saved.ID = id.NewScheduleID()
		saved.Entity = types.NewEntity()
		saved.Status = schedule.StatusPending
		saved.RejectionComment = ""
		saved.EnrolledMembers = nil
	} else {
		prev, err := p.store.GetScheduleEntry(ctx, saved.ID)
		if err != nil {
			return nil, err
		}
		if prev.ClubID != saved.ClubID {
			return nil, ErrWrongTenant
		}
		saved.Entity = prev.Entity
		saved.Status = prev.Status
		saved.RejectionComment = prev.RejectionComment
		saved.EnrolledMembers = prev.EnrolledMembers
		saved.Touch()
	}

	others, err := p.store.ListScheduleByInstructor(ctx, saved.ClubID, saved.InstructorID)
	if err != nil {
		return nil, err
	}
	for _, other := range others {
		if saved.ConflictsWith(other) {
			return nil, ErrScheduleConflict
		}
	}

	if err := p.store.UpdateScheduleEntry(ctx, &saved); err != nil {
		return nil, err
	}

	p.logger.Info("schedule entry saved",
		"club_id", saved.ClubID.String(),
		"entry_id", saved.ID.String(),
		"day", saved.DayOfWeek.String(),
		"start", saved.StartTime.String(),
		"end", saved.EndTime.String(),
	)
	p.plugins.EmitScheduleSaved(ctx, &saved)

	return &saved, nil
}

// SetScheduleStatus records the instructor's decision on a proposed
// slot: Accepted, Rejected, or Suggested. Rejections and suggestions
// carry a comment back to staff. Pending is not a decision; use
// ResetScheduleStatus for that.
func (p *Portal) SetScheduleStatus(ctx context.Context, entryID id.ScheduleID, status schedule.Status, comment string) error {
	switch status {
	case schedule.StatusAccepted, schedule.StatusRejected, schedule.StatusSuggested:
	default:
		return ErrInvalidTransition
	}

	e, err := p.store.GetScheduleEntry(ctx, entryID)
	if err != nil {
		return err
	}

	e.Status = status
	if status == schedule.StatusAccepted {
		comment = ""
	}
	e.RejectionComment = comment
	e.Touch()

	if err := p.store.UpdateScheduleEntry(ctx, e); err != nil {
		return err
	}

	p.plugins.EmitScheduleStatusChanged(ctx, entryID.String(), string(status))
	return nil
}

// ResetScheduleStatus sends a slot back to Pending and clears any
// previous decision comment.
func (p *Portal) ResetScheduleStatus(ctx context.Context, entryID id.ScheduleID) error {
	e, err := p.store.GetScheduleEntry(ctx, entryID)
	if err != nil {
		return err
	}

	e.Status = schedule.StatusPending
	e.RejectionComment = ""
	e.Touch()

	if err := p.store.UpdateScheduleEntry(ctx, e); err != nil {
		return err
	}

	p.plugins.EmitScheduleStatusChanged(ctx, entryID.String(), string(schedule.StatusPending))
	return nil
}

// EnrollMember adds a member to a class roster, respecting capacity.
func (p *Portal) EnrollMember(ctx context.Context, entryID id.ScheduleID, memberID id.MemberID) error {
	e, err := p.store.GetScheduleEntry(ctx, entryID)
	if err != nil {
		return err
	}
	m, err := p.store.GetMember(ctx, memberID)
	if err != nil {
		return err
	}
	if m.ClubID != e.ClubID {
		return ErrWrongTenant
	}
	if e.IsEnrolled(memberID) {
		return ErrAlreadyEnrolled
	}
	if e.IsFull() {
		return ErrClassFull
	}

	e.EnrolledMembers = append(e.EnrolledMembers, memberID)
	e.Touch()

	if err := p.store.UpdateScheduleEntry(ctx, e); err != nil {
		return err
	}

	p.plugins.EmitEnrollmentChanged(ctx, entryID.String(), memberID.String(), true)
	return nil
}

// UnenrollMember removes a member from a class roster.
func (p *Portal) UnenrollMember(ctx context.Context, entryID id.ScheduleID, memberID id.MemberID) error {
	e, err := p.store.GetScheduleEntry(ctx, entryID)
	if err != nil {
		return err
	}
	if !e.IsEnrolled(memberID) {
		return ErrNotEnrolled
	}

	kept := e.EnrolledMembers[:0]
	for _, mid := range e.EnrolledMembers {
		if mid != memberID {
			kept = append(kept, mid)
		}
	}
	e.EnrolledMembers = kept
	e.Touch()

	if err := p.store.UpdateScheduleEntry(ctx, e); err != nil {
		return err
	}

	p.plugins.EmitEnrollmentChanged(ctx, entryID.String(), memberID.String(), false)
	return nil
}

// DeleteScheduleEntry removes a slot outright.
func (p *Portal) DeleteScheduleEntry(ctx context.Context, entryID id.ScheduleID) error {
	return p.store.DeleteScheduleEntry(ctx, entryID)
}

// GetScheduleEntry returns one slot by ID.
func (p *Portal) GetScheduleEntry(ctx context.Context, entryID id.ScheduleID) (*schedule.Entry, error) {
	return p.store.GetScheduleEntry(ctx, entryID)
}

// ListSchedule returns the club's slots with an optional status filter.
func (p *Portal) ListSchedule(ctx context.Context, clubID id.ClubID, opts schedule.ListOpts) ([]*schedule.Entry, error) {
	return p.store.ListSchedule(ctx, clubID, opts)
}

// InstructorSchedule returns one instructor's slots in weekday order.
func (p *Portal) InstructorSchedule(ctx context.Context, clubID id.ClubID, instructorID id.InstructorID) ([]*schedule.Entry, error) {
	return p.store.ListScheduleByInstructor(ctx, clubID, instructorID)
}

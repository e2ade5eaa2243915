package clubsync

import (
	"context"
	"errors"

	"github.com/xraph/clubsync/id"
	"github.com/xraph/clubsync/instructor"
	"github.com/xraph/clubsync/store"
	"github.com/xraph/clubsync/types"
)

// SaveInstructor creates or updates an instructor together with its
// portal login in one atomic batch: the profile and the credential
// record are never observable out of step. The credential's email
// follows the profile; password is only written when non-empty.
func (p *Portal) SaveInstructor(ctx context.Context, inst *instructor.Instructor, password string) (*instructor.Instructor, error) {
	if inst == nil || inst.ClubID.IsNil() {
		return nil, ErrInvalidInput
	}
	if inst.Email == "" {
		return nil, &ValidationError{Field: "email", Message: "required"}
	}

	saved := *inst
	writes := make([]store.Write, 0, 2)

	if saved.ID.IsNil() {
		saved.ID = id.NewInstructorID()
		saved.Entity = types.NewEntity()

		user := &instructor.User{
			Entity:       types.NewEntity(),
			ID:           id.NewUserID(),
			ClubID:       saved.ClubID,
			Email:        saved.Email,
			Password:     password,
			Role:         instructor.RoleInstructor,
			InstructorID: saved.ID,
		}
		writes = append(writes,
			store.Write{Collection: store.CollectionInstructors, Op: store.OpCreate, ID: saved.ID, Entity: &saved},
			store.Write{Collection: store.CollectionUsers, Op: store.OpCreate, ID: user.ID, Entity: user},
		)
	} else {
		prev, err := p.store.GetInstructor(ctx, saved.ID)
		if err != nil {
			return nil, err
		}
		if prev.ClubID != saved.ClubID {
			return nil, ErrWrongTenant
		}
		saved.Entity = prev.Entity
		saved.Touch()
		writes = append(writes,
			store.Write{Collection: store.CollectionInstructors, Op: store.OpUpdate, ID: saved.ID, Entity: &saved})

		user, err := p.store.GetUserByInstructor(ctx, saved.ID)
		switch {
		case err == nil:
			user.Email = saved.Email
			if password != "" {
				user.Password = password
			}
			user.Touch()
			writes = append(writes,
				store.Write{Collection: store.CollectionUsers, Op: store.OpUpdate, ID: user.ID, Entity: user})
		case errors.Is(err, ErrUserNotFound):
			user = &instructor.User{
				Entity:       types.NewEntity(),
				ID:           id.NewUserID(),
				ClubID:       saved.ClubID,
				Email:        saved.Email,
				Password:     password,
				Role:         instructor.RoleInstructor,
				InstructorID: saved.ID,
			}
			writes = append(writes,
				store.Write{Collection: store.CollectionUsers, Op: store.OpCreate, ID: user.ID, Entity: user})
		default:
			return nil, err
		}
	}

	if err := p.store.ApplyBatch(ctx, writes); err != nil {
		return nil, err
	}

	p.logger.Info("instructor saved",
		"club_id", saved.ClubID.String(),
		"instructor_id", saved.ID.String(),
	)
	p.plugins.EmitInstructorSaved(ctx, &saved)
	return &saved, nil
}

// DeleteInstructor removes an instructor and its credential record in
// one batch.
func (p *Portal) DeleteInstructor(ctx context.Context, instructorID id.InstructorID) error {
	if _, err := p.store.GetInstructor(ctx, instructorID); err != nil {
		return err
	}

	writes := []store.Write{
		{Collection: store.CollectionInstructors, Op: store.OpDelete, ID: instructorID},
	}
	user, err := p.store.GetUserByInstructor(ctx, instructorID)
	switch {
	case err == nil:
		writes = append(writes,
			store.Write{Collection: store.CollectionUsers, Op: store.OpDelete, ID: user.ID})
	case !errors.Is(err, ErrUserNotFound):
		return err
	}

	return p.store.ApplyBatch(ctx, writes)
}

// GetInstructor returns an instructor by ID.
func (p *Portal) GetInstructor(ctx context.Context, instructorID id.InstructorID) (*instructor.Instructor, error) {
	return p.store.GetInstructor(ctx, instructorID)
}

// ListInstructors returns the club's instructors.
func (p *Portal) ListInstructors(ctx context.Context, clubID id.ClubID, opts instructor.ListOpts) ([]*instructor.Instructor, error) {
	return p.store.ListInstructors(ctx, clubID, opts)
}

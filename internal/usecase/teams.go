package usecase

import (
	"context"

	"github.com/okian/gradebook/internal/domain/model"
)

// FormTeam creates a team with the caller as its first member.
type FormTeam struct{ base }

// NewFormTeam constructs a FormTeam.
func NewFormTeam(db GradeDataBase, opts ...Option) *FormTeam {
	return &FormTeam{newBase(db, opts)}
}

// Execute runs the use case.
func (u *FormTeam) Execute(ctx context.Context, name string) (model.Team, error) {
	t, err := u.db.FormTeam(ctx, name)
	u.finish(ctx, "form_team", err)
	return t, err
}

// JoinTeam adds the caller to an existing team.
type JoinTeam struct{ base }

// NewJoinTeam constructs a JoinTeam.
func NewJoinTeam(db GradeDataBase, opts ...Option) *JoinTeam {
	return &JoinTeam{newBase(db, opts)}
}

// Execute runs the use case.
func (u *JoinTeam) Execute(ctx context.Context, name string) error {
	err := u.db.JoinTeam(ctx, name)
	u.finish(ctx, "join_team", err)
	return err
}

// LeaveTeam removes the caller from their team.
type LeaveTeam struct{ base }

// NewLeaveTeam constructs a LeaveTeam.
func NewLeaveTeam(db GradeDataBase, opts ...Option) *LeaveTeam {
	return &LeaveTeam{newBase(db, opts)}
}

// Execute runs the use case.
func (u *LeaveTeam) Execute(ctx context.Context) error {
	err := u.db.LeaveTeam(ctx)
	u.finish(ctx, "leave_team", err)
	return err
}

// GetMyTeam fetches the caller's team.
type GetMyTeam struct{ base }

// NewGetMyTeam constructs a GetMyTeam.
func NewGetMyTeam(db GradeDataBase, opts ...Option) *GetMyTeam {
	return &GetMyTeam{newBase(db, opts)}
}

// Execute runs the use case.
func (u *GetMyTeam) Execute(ctx context.Context) (model.Team, error) {
	t, err := u.db.GetMyTeam(ctx)
	u.finish(ctx, "get_my_team", err)
	return t, err
}

package usecase

import (
	"context"

	"github.com/okian/gradebook/internal/domain/model"
)

// GetGrade fetches one user's grade in one course.
type GetGrade struct{ base }

// NewGetGrade constructs a GetGrade.
func NewGetGrade(db GradeDataBase, opts ...Option) *GetGrade {
	return &GetGrade{newBase(db, opts)}
}

// Execute runs the use case.
func (u *GetGrade) Execute(ctx context.Context, username, course string) (model.Grade, error) {
	g, err := u.db.GetGrade(ctx, username, course)
	u.finish(ctx, "get_grade", err)
	return g, err
}

// GetGrades fetches every grade of one user.
type GetGrades struct{ base }

// NewGetGrades constructs a GetGrades.
func NewGetGrades(db GradeDataBase, opts ...Option) *GetGrades {
	return &GetGrades{newBase(db, opts)}
}

// Execute runs the use case.
func (u *GetGrades) Execute(ctx context.Context, username string) ([]model.Grade, error) {
	gs, err := u.db.GetGrades(ctx, username)
	u.finish(ctx, "get_grades", err)
	return gs, err
}

// LogGrade records a grade for the caller.
type LogGrade struct{ base }

// NewLogGrade constructs a LogGrade.
func NewLogGrade(db GradeDataBase, opts ...Option) *LogGrade {
	return &LogGrade{newBase(db, opts)}
}

// Execute runs the use case.
func (u *LogGrade) Execute(ctx context.Context, course string, grade int) error {
	err := u.db.LogGrade(ctx, course, grade)
	u.finish(ctx, "log_grade", err)
	return err
}

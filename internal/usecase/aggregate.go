package usecase

import (
	"context"

	"github.com/okian/gradebook/pkg/logger"
)

// GetAverageGrade computes the mean grade in a course across the caller's team.
type GetAverageGrade struct{ base }

// NewGetAverageGrade constructs a GetAverageGrade.
func NewGetAverageGrade(db GradeDataBase, opts ...Option) *GetAverageGrade {
	return &GetAverageGrade{newBase(db, opts)}
}

// Execute returns the arithmetic mean of every member's grade in course, or
// 0 for a team without members. The first failed lookup aborts the whole
// computation and is returned as is.
func (u *GetAverageGrade) Execute(ctx context.Context, course string) (avg float64, err error) {
	defer func() { u.finish(ctx, "get_average_grade", err) }()

	grades, err := u.teamGrades(ctx, course)
	if err != nil || len(grades) == 0 {
		return 0, err
	}

	sum := 0
	for _, g := range grades {
		sum += g
	}
	return float64(sum) / float64(len(grades)), nil
}

// GetTopGrade finds the highest grade in a course across the caller's team.
type GetTopGrade struct{ base }

// NewGetTopGrade constructs a GetTopGrade.
func NewGetTopGrade(db GradeDataBase, opts ...Option) *GetTopGrade {
	return &GetTopGrade{newBase(db, opts)}
}

// Execute returns the maximum member grade in course, or 0 for a team
// without members. Failure semantics match GetAverageGrade.
func (u *GetTopGrade) Execute(ctx context.Context, course string) (top int, err error) {
	defer func() { u.finish(ctx, "get_top_grade", err) }()

	grades, err := u.teamGrades(ctx, course)
	if err != nil || len(grades) == 0 {
		return 0, err
	}

	top = grades[0]
	for _, g := range grades[1:] {
		if g > top {
			top = g
		}
	}
	return top, nil
}

// teamGrades fetches the caller's team and then each member's grade in
// course, one at a time and in member order.
func (b base) teamGrades(ctx context.Context, course string) ([]int, error) {
	team, err := b.db.GetMyTeam(ctx)
	if err != nil {
		return nil, err
	}
	b.recorder.ObserveTeamSize(team.Size())

	members := team.Members()
	grades := make([]int, 0, len(members))
	for _, m := range members {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		g, err := b.db.GetGrade(ctx, m, course)
		if err != nil {
			return nil, err
		}
		grades = append(grades, g.Grade)
	}

	b.logger.Debug(ctx, "collected team grades",
		logger.String("team", team.Name()),
		logger.String("course", course),
		logger.Int("members", len(members)),
	)
	return grades, nil
}

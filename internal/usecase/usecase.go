// Package usecase holds one type per user action. Each depends only on the
// GradeDataBase capability and is safe to reuse across calls.
package usecase

import (
	"context"

	"github.com/okian/gradebook/internal/domain/model"
	"github.com/okian/gradebook/pkg/logger"
	"github.com/okian/gradebook/pkg/metrics"
)

// GradeDataBase is the data access capability the use cases need.
type GradeDataBase interface {
	GetGrade(ctx context.Context, username, course string) (model.Grade, error)
	GetGrades(ctx context.Context, username string) ([]model.Grade, error)
	LogGrade(ctx context.Context, course string, grade int) error
	FormTeam(ctx context.Context, name string) (model.Team, error)
	JoinTeam(ctx context.Context, name string) error
	LeaveTeam(ctx context.Context) error
	GetMyTeam(ctx context.Context) (model.Team, error)
}

// Recorder receives use case metrics. *metrics.Manager satisfies it.
type Recorder interface {
	RecordUseCase(name, outcome string)
	ObserveTeamSize(members int)
}

type globalRecorder struct{}

func (globalRecorder) RecordUseCase(name, outcome string) {
	metrics.RecordUseCase(name, outcome)
}

func (globalRecorder) ObserveTeamSize(members int) {
	metrics.ObserveTeamSize(members)
}

// Option applies a configuration option to a use case.
type Option func(*base)

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(b *base) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithRecorder sends use case metrics to r instead of the global manager.
func WithRecorder(r Recorder) Option {
	return func(b *base) {
		if r != nil {
			b.recorder = r
		}
	}
}

type base struct {
	db       GradeDataBase
	logger   logger.Logger
	recorder Recorder
}

func newBase(db GradeDataBase, opts []Option) base {
	b := base{db: db, logger: logger.Nop(), recorder: globalRecorder{}}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// finish records the outcome of a use case invocation.
func (b base) finish(ctx context.Context, name string, err error) {
	b.recorder.RecordUseCase(name, metrics.Outcome(err))
	if err != nil {
		b.logger.Debug(ctx, "use case failed", logger.String("use_case", name), logger.Error(err))
	}
}

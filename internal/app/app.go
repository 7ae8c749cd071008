// Package app wires one grade service client into every use case.
package app

import (
	"github.com/okian/gradebook/internal/adapters/gradeapi"
	"github.com/okian/gradebook/internal/config"
	"github.com/okian/gradebook/internal/usecase"
	"github.com/okian/gradebook/pkg/logger"
)

// UseCases holds every user action, all sharing one data source.
type UseCases struct {
	GetGrade        *usecase.GetGrade
	GetGrades       *usecase.GetGrades
	LogGrade        *usecase.LogGrade
	FormTeam        *usecase.FormTeam
	JoinTeam        *usecase.JoinTeam
	LeaveTeam       *usecase.LeaveTeam
	GetMyTeam       *usecase.GetMyTeam
	GetAverageGrade *usecase.GetAverageGrade
	GetTopGrade     *usecase.GetTopGrade
}

// New builds the use cases over db.
func New(db usecase.GradeDataBase, log logger.Logger) *UseCases {
	opts := []usecase.Option{usecase.WithLogger(log)}
	return &UseCases{
		GetGrade:        usecase.NewGetGrade(db, opts...),
		GetGrades:       usecase.NewGetGrades(db, opts...),
		LogGrade:        usecase.NewLogGrade(db, opts...),
		FormTeam:        usecase.NewFormTeam(db, opts...),
		JoinTeam:        usecase.NewJoinTeam(db, opts...),
		LeaveTeam:       usecase.NewLeaveTeam(db, opts...),
		GetMyTeam:       usecase.NewGetMyTeam(db, opts...),
		GetAverageGrade: usecase.NewGetAverageGrade(db, opts...),
		GetTopGrade:     usecase.NewGetTopGrade(db, opts...),
	}
}

// NewClient builds the grade service client described by cfg.
func NewClient(cfg *config.Config, log logger.Logger) *gradeapi.Client {
	return gradeapi.New(
		gradeapi.WithBaseURL(cfg.BaseURL),
		gradeapi.WithTimeout(cfg.Timeout),
		gradeapi.WithTokenSource(TokenSource(cfg)),
		gradeapi.WithUserAgent(cfg.UserAgent),
		gradeapi.WithLogger(log),
	)
}

// TokenSource returns the configured token, or an environment lookup when
// no token is set.
func TokenSource(cfg *config.Config) gradeapi.TokenSource {
	if cfg.Token != "" {
		return gradeapi.StaticToken(cfg.Token)
	}
	return gradeapi.EnvToken(cfg.TokenEnv)
}

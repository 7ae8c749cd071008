package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/okian/gradebook/internal/domain/model"
)

type mockDB struct {
	mock.Mock
}

func (m *mockDB) GetGrade(ctx context.Context, username, course string) (model.Grade, error) {
	args := m.Called(ctx, username, course)
	return args.Get(0).(model.Grade), args.Error(1)
}

func (m *mockDB) GetGrades(ctx context.Context, username string) ([]model.Grade, error) {
	args := m.Called(ctx, username)
	gs, _ := args.Get(0).([]model.Grade)
	return gs, args.Error(1)
}

func (m *mockDB) LogGrade(ctx context.Context, course string, grade int) error {
	return m.Called(ctx, course, grade).Error(0)
}

func (m *mockDB) FormTeam(ctx context.Context, name string) (model.Team, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(model.Team), args.Error(1)
}

func (m *mockDB) JoinTeam(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

func (m *mockDB) LeaveTeam(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockDB) GetMyTeam(ctx context.Context) (model.Team, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.Team), args.Error(1)
}

func team(name string, members ...string) model.Team {
	t, err := model.NewTeam(name, members)
	if err != nil {
		panic(err)
	}
	return t
}

func grade(username, course string, g int) model.Grade {
	v, err := model.NewGrade(username, course, g)
	if err != nil {
		panic(err)
	}
	return v
}

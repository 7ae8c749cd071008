package gradeapi

import (
	"encoding/json"
	"fmt"

	"github.com/okian/gradebook/internal/domain/model"
)

const successCode = 200

// envelope is the body shape shared by every grade service response.
// Pointers distinguish absent fields from zero values.
type envelope struct {
	StatusCode *int           `json:"status_code"`
	Message    string         `json:"message"`
	Grade      *gradeRecord   `json:"grade"`
	Grades     *[]gradeRecord `json:"grades"`
	Team       *teamRecord    `json:"team"`
}

type gradeRecord struct {
	Username *string `json:"username"`
	Course   *string `json:"course"`
	Grade    *int    `json:"grade"`
}

type teamRecord struct {
	Name    *string   `json:"name"`
	Members *[]string `json:"members"`
}

type logGradeRequest struct {
	Course string `json:"course"`
	Grade  int    `json:"grade"`
}

type teamNameRequest struct {
	Name string `json:"name"`
}

type emptyRequest struct{}

func decodeEnvelope(body []byte) (*envelope, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if env.StatusCode == nil {
		return nil, fmt.Errorf("%w: missing status_code", ErrMalformedResponse)
	}
	return &env, nil
}

func (r *gradeRecord) toModel() (model.Grade, error) {
	if r == nil {
		return model.Grade{}, fmt.Errorf("%w: missing grade", ErrMalformedResponse)
	}
	if r.Username == nil || r.Course == nil || r.Grade == nil {
		return model.Grade{}, fmt.Errorf("%w: grade record needs username, course and grade", ErrMalformedResponse)
	}
	g, err := model.NewGrade(*r.Username, *r.Course, *r.Grade)
	if err != nil {
		return model.Grade{}, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return g, nil
}

func (r *teamRecord) toModel() (model.Team, error) {
	if r == nil {
		return model.Team{}, fmt.Errorf("%w: missing team", ErrMalformedResponse)
	}
	if r.Name == nil || r.Members == nil {
		return model.Team{}, fmt.Errorf("%w: team record needs name and members", ErrMalformedResponse)
	}
	t, err := model.NewTeam(*r.Name, *r.Members)
	if err != nil {
		return model.Team{}, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return t, nil
}

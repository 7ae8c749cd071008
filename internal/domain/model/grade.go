// Package model contains domain models passed between layers.
package model

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for model construction.
var (
	ErrInvalidGrade = errors.New("invalid grade")
	ErrInvalidTeam  = errors.New("invalid team")
)

// Grade is a single score a user holds in a course. The score range is
// whatever the grade service accepts; it is not checked here.
type Grade struct {
	Username string `json:"username"`
	Course   string `json:"course"`
	Grade    int    `json:"grade"`
}

// NewGrade builds a Grade, requiring a username and a course.
func NewGrade(username, course string, grade int) (Grade, error) {
	if strings.TrimSpace(username) == "" {
		return Grade{}, fmt.Errorf("%w: username is required", ErrInvalidGrade)
	}
	if strings.TrimSpace(course) == "" {
		return Grade{}, fmt.Errorf("%w: course is required", ErrInvalidGrade)
	}
	return Grade{Username: username, Course: course, Grade: grade}, nil
}

func (g Grade) String() string {
	return fmt.Sprintf("%s/%s: %d", g.Username, g.Course, g.Grade)
}

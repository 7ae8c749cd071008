package model

import (
	"fmt"
	"strings"
)

// Team is a named group of users. Members keep the order the grade service
// returned them in; uniqueness is the service's concern.
type Team struct {
	name    string
	members []string
}

// NewTeam builds a Team. The members slice is copied.
func NewTeam(name string, members []string) (Team, error) {
	if strings.TrimSpace(name) == "" {
		return Team{}, fmt.Errorf("%w: name is required", ErrInvalidTeam)
	}
	cp := make([]string, len(members))
	copy(cp, members)
	return Team{name: name, members: cp}, nil
}

// Name returns the team name.
func (t Team) Name() string { return t.name }

// Members returns a copy of the member usernames.
func (t Team) Members() []string {
	cp := make([]string, len(t.members))
	copy(cp, t.members)
	return cp
}

// Size returns the number of members.
func (t Team) Size() int { return len(t.members) }

func (t Team) String() string {
	return fmt.Sprintf("%s [%s]", t.name, strings.Join(t.members, ", "))
}

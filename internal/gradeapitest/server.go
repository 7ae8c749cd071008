// Package gradeapitest provides an in-memory grade service for tests and
// local runs. It speaks the same JSON envelope as the hosted service.
package gradeapitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"

	"github.com/go-chi/chi/v5"
)

// Messages returned by the fake for rejected requests.
const (
	MsgInvalidToken  = "invalid token"
	MsgBadRequest    = "bad request"
	MsgGradeNotFound = "grade not found"
	MsgTeamExists    = "team already exists"
	MsgTeamNotFound  = "team not found"
	MsgAlreadyInTeam = "user is already in a team"
	MsgNotInTeam     = "user is not in a team"
)

// Request is a recorded incoming request.
type Request struct {
	Method    string
	Path      string
	RawQuery  string
	Token     string
	RequestID string
	Body      string
}

// Server is an in-memory grade service.
type Server struct {
	mu       sync.Mutex
	users    map[string]string         // token -> username
	grades   map[string]map[string]int // username -> course -> grade
	teams    map[string][]string       // name -> members
	memberOf map[string]string         // username -> team name
	requests []Request
}

// New returns an empty Server.
func New() *Server {
	return &Server{
		users:    make(map[string]string),
		grades:   make(map[string]map[string]int),
		teams:    make(map[string][]string),
		memberOf: make(map[string]string),
	}
}

// Start serves s over a new httptest.Server. The caller closes it.
func (s *Server) Start() *httptest.Server {
	return httptest.NewServer(s.Handler())
}

// AddUser registers a token for username.
func (s *Server) AddUser(token, username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[token] = username
}

// SetGrade stores a grade directly.
func (s *Server) SetGrade(username, course string, grade int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setGradeLocked(username, course, grade)
}

// AddTeam creates a team with the given members in order.
func (s *Server) AddTeam(name string, members ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teams[name] = append([]string(nil), members...)
	for _, m := range members {
		s.memberOf[m] = name
	}
}

// Grade returns a stored grade.
func (s *Server) Grade(username, course string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.grades[username][course]
	return g, ok
}

// Team returns the members of a team.
func (s *Server) Team(name string) ([]string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.teams[name]
	return append([]string(nil), m...), ok
}

// Requests returns every request seen so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.record)

	r.Route("/grade", func(r chi.Router) {
		r.Get("/", s.authed(s.handleGetGrade))
		r.Post("/", s.authed(s.handleLogGrade))
	})
	r.Route("/team", func(r chi.Router) {
		r.Get("/", s.authed(s.handleGetMyTeam))
		r.Post("/", s.authed(s.handleFormTeam))
		r.Put("/", s.authed(s.handleJoinTeam))
	})
	r.Put("/leaveTeam", s.authed(s.handleLeaveTeam))

	return r
}

type userHandler func(w http.ResponseWriter, r *http.Request, username string)

func (s *Server) authed(next userHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		username, ok := s.users[r.Header.Get("token")]
		s.mu.Unlock()
		if !ok {
			writeError(w, http.StatusUnauthorized, MsgInvalidToken)
			return
		}
		next(w, r, username)
	}
}

func (s *Server) handleGetGrade(w http.ResponseWriter, r *http.Request, _ string) {
	username := r.URL.Query().Get("username")
	course := r.URL.Query().Get("course")

	s.mu.Lock()
	defer s.mu.Unlock()

	if course == "" {
		grades := make([]gradeJSON, 0, len(s.grades[username]))
		for c, g := range s.grades[username] {
			grades = append(grades, gradeJSON{Username: username, Course: c, Grade: g})
		}
		sort.Slice(grades, func(i, j int) bool { return grades[i].Course < grades[j].Course })
		writeOK(w, map[string]interface{}{"grades": grades})
		return
	}

	g, ok := s.grades[username][course]
	if !ok {
		writeError(w, http.StatusNotFound, MsgGradeNotFound)
		return
	}
	writeOK(w, map[string]interface{}{"grade": gradeJSON{Username: username, Course: course, Grade: g}})
}

func (s *Server) handleLogGrade(w http.ResponseWriter, r *http.Request, username string) {
	var body struct {
		Course *string `json:"course"`
		Grade  *int    `json:"grade"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Course == nil || body.Grade == nil {
		writeError(w, http.StatusBadRequest, MsgBadRequest)
		return
	}

	s.mu.Lock()
	s.setGradeLocked(username, *body.Course, *body.Grade)
	s.mu.Unlock()

	writeOK(w, nil)
}

func (s *Server) handleFormTeam(w http.ResponseWriter, r *http.Request, username string) {
	name, ok := decodeName(r)
	if !ok {
		writeError(w, http.StatusBadRequest, MsgBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.teams[name]; exists {
		writeError(w, http.StatusBadRequest, MsgTeamExists)
		return
	}
	if _, in := s.memberOf[username]; in {
		writeError(w, http.StatusBadRequest, MsgAlreadyInTeam)
		return
	}
	s.teams[name] = []string{username}
	s.memberOf[username] = name
	writeOK(w, map[string]interface{}{"team": teamJSON{Name: name, Members: []string{username}}})
}

func (s *Server) handleJoinTeam(w http.ResponseWriter, r *http.Request, username string) {
	name, ok := decodeName(r)
	if !ok {
		writeError(w, http.StatusBadRequest, MsgBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.teams[name]; !exists {
		writeError(w, http.StatusNotFound, MsgTeamNotFound)
		return
	}
	if current, in := s.memberOf[username]; in {
		if current == name {
			writeOK(w, nil)
			return
		}
		writeError(w, http.StatusBadRequest, MsgAlreadyInTeam)
		return
	}
	s.teams[name] = append(s.teams[name], username)
	s.memberOf[username] = name
	writeOK(w, nil)
}

func (s *Server) handleLeaveTeam(w http.ResponseWriter, _ *http.Request, username string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name, in := s.memberOf[username]
	if !in {
		writeError(w, http.StatusBadRequest, MsgNotInTeam)
		return
	}
	delete(s.memberOf, username)

	members := s.teams[name][:0]
	for _, m := range s.teams[name] {
		if m != username {
			members = append(members, m)
		}
	}
	if len(members) == 0 {
		delete(s.teams, name)
	} else {
		s.teams[name] = members
	}
	writeOK(w, nil)
}

func (s *Server) handleGetMyTeam(w http.ResponseWriter, _ *http.Request, username string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name, in := s.memberOf[username]
	if !in {
		writeError(w, http.StatusNotFound, MsgNotInTeam)
		return
	}
	members := append([]string(nil), s.teams[name]...)
	writeOK(w, map[string]interface{}{"team": teamJSON{Name: name, Members: members}})
}

func (s *Server) setGradeLocked(username, course string, grade int) {
	if s.grades[username] == nil {
		s.grades[username] = make(map[string]int)
	}
	s.grades[username][course] = grade
}

// Package gradeapi is the HTTP client for the remote grade service.
//
// Every operation is a single round trip. Success is decided by the
// status_code field of the JSON body, not by the HTTP status line.
package gradeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/okian/gradebook/internal/domain/model"
	"github.com/okian/gradebook/pkg/logger"
	"github.com/okian/gradebook/pkg/metrics"
)

// DefaultBaseURL is the hosted grade service.
const DefaultBaseURL = "https://grade-apis.panchen.ca"

const (
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "gradebook"
	maxResponseBytes = 1 << 20

	headerToken       = "token"
	headerContentType = "Content-Type"
	headerRequestID   = "X-Request-ID"
	headerUserAgent   = "User-Agent"
	contentTypeJSON   = "application/json"
)

// Operation names used in logs, metrics and errors.
const (
	OpGetGrade  = "get_grade"
	OpGetGrades = "get_grades"
	OpLogGrade  = "log_grade"
	OpFormTeam  = "form_team"
	OpJoinTeam  = "join_team"
	OpLeaveTeam = "leave_team"
	OpGetMyTeam = "get_my_team"
)

// Recorder receives request metrics. *metrics.Manager satisfies it.
type Recorder interface {
	RecordClientRequest(operation, outcome string, durationMs float64)
	RecordClientError(operation, errorType string)
}

type globalRecorder struct{}

func (globalRecorder) RecordClientRequest(operation, outcome string, durationMs float64) {
	metrics.RecordClientRequest(operation, outcome, durationMs)
}

func (globalRecorder) RecordClientError(operation, errorType string) {
	metrics.RecordClientError(operation, errorType)
}

// Client talks to the grade service.
type Client struct {
	baseURL   string
	http      *http.Client
	timeout   time.Duration
	tokens    TokenSource
	userAgent string
	logger    logger.Logger
	recorder  Recorder
}

// New constructs a Client. Without options it targets DefaultBaseURL and
// reads the token from the "token" environment variable on each call.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:   DefaultBaseURL,
		http:      &http.Client{},
		timeout:   defaultTimeout,
		tokens:    EnvToken(DefaultTokenEnv),
		userAgent: defaultUserAgent,
		logger:    logger.Nop(),
		recorder:  globalRecorder{},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// GetGrade fetches the grade username holds in course. Any rejection is
// reported as ErrNotFound carrying the server message.
func (c *Client) GetGrade(ctx context.Context, username, course string) (model.Grade, error) {
	q := url.Values{}
	q.Set("course", course)
	q.Set("username", username)

	env, err := c.do(ctx, OpGetGrade, http.MethodGet, "/grade", q, nil)
	if err != nil {
		var svcErr *ServiceError
		if errors.As(err, &svcErr) {
			return model.Grade{}, fmt.Errorf("%w for course %q and username %q: %w", ErrNotFound, course, username, svcErr)
		}
		return model.Grade{}, err
	}
	return env.Grade.toModel()
}

// GetGrades fetches every grade recorded for username.
func (c *Client) GetGrades(ctx context.Context, username string) ([]model.Grade, error) {
	q := url.Values{}
	q.Set("username", username)

	env, err := c.do(ctx, OpGetGrades, http.MethodGet, "/grade", q, nil)
	if err != nil {
		return nil, err
	}
	if env.Grades == nil {
		return nil, fmt.Errorf("%w: missing grades", ErrMalformedResponse)
	}

	records := *env.Grades
	grades := make([]model.Grade, 0, len(records))
	for i := range records {
		g, err := records[i].toModel()
		if err != nil {
			return nil, err
		}
		grades = append(grades, g)
	}
	return grades, nil
}

// LogGrade records grade in course for the token's owner.
func (c *Client) LogGrade(ctx context.Context, course string, grade int) error {
	_, err := c.do(ctx, OpLogGrade, http.MethodPost, "/grade", nil, logGradeRequest{Course: course, Grade: grade})
	return err
}

// FormTeam creates a team and returns it as the service reports it.
func (c *Client) FormTeam(ctx context.Context, name string) (model.Team, error) {
	env, err := c.do(ctx, OpFormTeam, http.MethodPost, "/team", nil, teamNameRequest{Name: name})
	if err != nil {
		return model.Team{}, err
	}
	return env.Team.toModel()
}

// JoinTeam joins an existing team by name.
func (c *Client) JoinTeam(ctx context.Context, name string) error {
	_, err := c.do(ctx, OpJoinTeam, http.MethodPut, "/team", nil, teamNameRequest{Name: name})
	return err
}

// LeaveTeam leaves the caller's current team.
func (c *Client) LeaveTeam(ctx context.Context) error {
	_, err := c.do(ctx, OpLeaveTeam, http.MethodPut, "/leaveTeam", nil, emptyRequest{})
	return err
}

// GetMyTeam fetches the caller's current team.
func (c *Client) GetMyTeam(ctx context.Context) (model.Team, error) {
	env, err := c.do(ctx, OpGetMyTeam, http.MethodGet, "/team", nil, nil)
	if err != nil {
		return model.Team{}, err
	}
	return env.Team.toModel()
}

// do performs one round trip and returns the decoded envelope of a
// successful response.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body interface{}) (env *envelope, err error) {
	reqID := uuid.NewString()
	start := time.Now()
	defer func() {
		durationMs := float64(time.Since(start).Microseconds()) / 1000
		c.recorder.RecordClientRequest(op, metrics.Outcome(err), durationMs)
		if err != nil {
			c.recorder.RecordClientError(op, errorType(err))
			c.logger.Debug(ctx, "grade service request failed",
				logger.String("operation", op),
				logger.String("request_id", reqID),
				logger.Float64("duration_ms", durationMs),
				logger.Error(err),
			)
			return
		}
		c.logger.Debug(ctx, "grade service request done",
			logger.String("operation", op),
			logger.String("request_id", reqID),
			logger.Float64("duration_ms", durationMs),
		)
	}()

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := c.newRequest(reqCtx, method, path, query, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set(headerToken, token)
	req.Header.Set(headerContentType, contentTypeJSON)
	req.Header.Set(headerRequestID, reqID)
	req.Header.Set(headerUserAgent, c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", ErrTransport, method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrTransport, err)
	}

	env, err = decodeEnvelope(raw)
	if err != nil {
		return nil, err
	}
	if *env.StatusCode != successCode {
		return nil, &ServiceError{Operation: op, StatusCode: *env.StatusCode, Message: env.Message}
	}
	return env, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body interface{}) (*http.Request, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal %s body: %w", path, err)
		}
		rdr = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, rdr)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", path, err)
	}
	return req, nil
}

package gradeapi

import (
	"context"
	"fmt"
	"os"
)

// DefaultTokenEnv is the environment variable the token is read from when
// nothing else is configured.
const DefaultTokenEnv = "token"

// TokenSource yields the API token sent with every request.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken always returns the same token.
type StaticToken string

// Token implements TokenSource.
func (t StaticToken) Token(_ context.Context) (string, error) {
	if t == "" {
		return "", ErrNoToken
	}
	return string(t), nil
}

// EnvToken reads the named environment variable on every call.
type EnvToken string

// Token implements TokenSource.
func (e EnvToken) Token(_ context.Context) (string, error) {
	name := string(e)
	if name == "" {
		name = DefaultTokenEnv
	}
	v, ok := os.LookupEnv(name)
	if !ok || v == "" {
		return "", fmt.Errorf("%w: $%s is empty", ErrNoToken, name)
	}
	return v, nil
}

package adapter

import (
	"context"
	"errors"
	"os"
	"os/user"
	"strings"
)

// IdentityProvider reports who is running the grading session.
type IdentityProvider interface {
	CurrentUser(ctx context.Context) (string, error)
}

// LocalIdentityProvider reads the invoking user from the operating system.
type LocalIdentityProvider struct {
	lookup func() (*user.User, error)
	getenv func(string) string
}

// NewLocalIdentityProvider constructs a LocalIdentityProvider.
func NewLocalIdentityProvider() *LocalIdentityProvider {
	return &LocalIdentityProvider{
		lookup: user.Current,
		getenv: os.Getenv,
	}
}

// CurrentUser returns the login name, falling back to $USER and $LOGNAME.
func (p *LocalIdentityProvider) CurrentUser(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if u, err := p.lookup(); err == nil && strings.TrimSpace(u.Username) != "" {
		return u.Username, nil
	}

	for _, key := range []string{"USER", "LOGNAME"} {
		if name := strings.TrimSpace(p.getenv(key)); name != "" {
			return name, nil
		}
	}

	return "", errors.New("unable to determine the current user")
}

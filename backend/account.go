package backend

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"slices"
	"strings"

	"github.com/clipwave/clipwave/auth"
	"github.com/clipwave/clipwave/constant"
	"github.com/clipwave/clipwave/video"
)

// Registration is the payload of a sign up.
type Registration struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Validate checks the fields the backend would reject anyway.
func (r Registration) Validate() error {
	switch {
	case strings.TrimSpace(r.Username) == "":
		return errors.New("username is required")
	case r.Password == "":
		return errors.New("password is required")
	case !slices.Contains([]string{constant.RoleUser, constant.RoleCreator}, r.Role):
		return fmt.Errorf("unknown role %q", r.Role)
	}

	if _, err := mail.ParseAddress(r.Email); err != nil {
		return fmt.Errorf("invalid email %q", r.Email)
	}
	return nil
}

type sessionResponse struct {
	Token    string   `json:"token"`
	Role     string   `json:"role"`
	Username string   `json:"username"`
	ID       video.ID `json:"id"`
}

func (r sessionResponse) session() auth.Session {
	return auth.Session{
		Token:    r.Token,
		ID:       r.ID.String(),
		Username: r.Username,
		Role:     r.Role,
	}
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, username, password string) (auth.Session, error) {
	in := map[string]string{"username": username, "password": password}

	var out sessionResponse
	if err := c.do(ctx, "POST", "/users/login", "", in, &out); err != nil {
		return auth.Session{}, err
	}
	return out.session(), nil
}

// Register creates an account. The returned session may lack an id when
// the backend only hands back a token; callers should log in afterwards then.
func (c *Client) Register(ctx context.Context, r Registration) (auth.Session, error) {
	var out sessionResponse
	if err := c.do(ctx, "POST", "/users/signup", "", r, &out); err != nil {
		return auth.Session{}, err
	}

	s := out.session()
	if s.Username == "" {
		s.Username = r.Username
	}
	if s.Role == "" {
		s.Role = r.Role
	}
	return s, nil
}

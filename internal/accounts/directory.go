package accounts

import (
	"context"
	"fmt"
	"net"
	"regexp"
	"time"

	"github.com/go-ldap/ldap/v3"

	"retroboard/internal/model"
)

// Directory verifies credentials against an external user directory. The call
// blocks until the directory answers or ctx is done.
type Directory interface {
	Authenticate(ctx context.Context, login, password string) error
}

// Logins are spliced into the bind DN, so only plain names are accepted.
var loginRe = regexp.MustCompile(`^[A-Za-z0-9._-]{1,64}$`)

// LDAPDirectory authenticates with a simple bind as BindDN, where %s is
// replaced by the login.
type LDAPDirectory struct {
	URL     string
	BindDN  string
	Timeout time.Duration
}

func (d *LDAPDirectory) Authenticate(ctx context.Context, login, password string) error {
	if !loginRe.MatchString(login) || password == "" {
		return model.Errorf(model.ErrUnauthorized, "invalid directory credentials")
	}
	conn, err := ldap.DialURL(d.URL, ldap.DialWithDialer(&net.Dialer{Timeout: d.Timeout}))
	if err != nil {
		return fmt.Errorf("%w: dial directory: %v", model.ErrUnavailable, err)
	}
	defer conn.Close()
	conn.SetTimeout(d.Timeout)

	done := make(chan error, 1)
	go func() { done <- conn.Bind(fmt.Sprintf(d.BindDN, login), password) }()
	select {
	case err = <-done:
	case <-ctx.Done():
		conn.Close()
		return ctx.Err()
	}
	if err != nil {
		if ldap.IsErrorWithCode(err, ldap.LDAPResultInvalidCredentials) {
			return model.Errorf(model.ErrUnauthorized, "invalid directory credentials")
		}
		return fmt.Errorf("%w: bind: %v", model.ErrUnavailable, err)
	}
	return nil
}

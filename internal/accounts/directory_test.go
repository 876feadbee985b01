package accounts

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"retroboard/internal/model"
)

func TestLDAPDirectoryRejectsUnsafeLogin(t *testing.T) {
	d := &LDAPDirectory{URL: "ldap://127.0.0.1:1", BindDN: "uid=%s,ou=people,dc=example,dc=com", Timeout: time.Second}
	for _, login := range []string{"", "a,b", "x)(uid=*", "cn=admin"} {
		err := d.Authenticate(context.Background(), login, "pw")
		assert.ErrorIs(t, err, model.ErrUnauthorized, login)
	}
}

func TestLDAPDirectoryUnreachable(t *testing.T) {
	d := &LDAPDirectory{URL: "ldap://127.0.0.1:1", BindDN: "uid=%s,dc=example", Timeout: time.Second}
	err := d.Authenticate(context.Background(), "jdoe", "pw")
	assert.ErrorIs(t, err, model.ErrUnavailable)
}

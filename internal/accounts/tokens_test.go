package accounts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokensRoundTrip(t *testing.T) {
	tk := NewTokens([]byte("k"), time.Hour)
	s, err := tk.Sign(42)
	require.NoError(t, err)
	c, err := tk.Parse(s)
	require.NoError(t, err)
	assert.Equal(t, int64(42), c.UserID)
}

func TestTokensExpire(t *testing.T) {
	tk := NewTokens([]byte("k"), time.Minute)
	s, err := tk.Sign(1)
	require.NoError(t, err)
	tk.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = tk.Parse(s)
	assert.Error(t, err)
}

func TestTokensRejectOtherSecret(t *testing.T) {
	s, err := NewTokens([]byte("a"), time.Hour).Sign(1)
	require.NoError(t, err)
	_, err = NewTokens([]byte("b"), time.Hour).Parse(s)
	assert.Error(t, err)
}

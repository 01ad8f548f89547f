package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/scorepoint/scoring-gateway/internal/auth"
	"github.com/scorepoint/scoring-gateway/internal/config"
	"github.com/scorepoint/scoring-gateway/internal/request"
)

func testGuard() *auth.Guard {
	return auth.NewGuard(config.AuthConfig{
		Salt:       "Otus",
		AdminSalt:  "42",
		AdminLogin: "admin",
	})
}

func TestGuard_Check_User(t *testing.T) {
	guard := testGuard()

	env := &request.Envelope{
		Account: "horns&hoofs",
		Login:   "h&f",
		Token:   auth.Digest("horns&hoofs" + "h&f" + "Otus"),
	}
	assert.True(t, guard.Check(env))

	env.Token = auth.Digest("wrong" + "h&f" + "Otus")
	assert.False(t, guard.Check(env))

	env.Token = ""
	assert.False(t, guard.Check(env))
}

func TestGuard_Check_Admin(t *testing.T) {
	guard := testGuard()
	now := time.Date(2024, 3, 15, 9, 30, 0, 0, time.Local)
	guard.Now = func() time.Time { return now }

	env := &request.Envelope{
		Login: "admin",
		Token: auth.Digest(now.Format("2006010215") + "42"),
	}
	assert.True(t, guard.Check(env))

	stale := now.Add(-24 * time.Hour)
	env.Token = auth.Digest(stale.Format("2006010215") + "42")
	assert.False(t, guard.Check(env), "yesterday's hour digest must be rejected")
}

func TestGuard_IsAdmin(t *testing.T) {
	guard := testGuard()

	assert.True(t, guard.IsAdmin(&request.Envelope{Login: "admin"}))
	assert.False(t, guard.IsAdmin(&request.Envelope{Login: "h&f"}))
}

package sessions

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leoisqualified/pomodoro-timer/internal/models"
	"github.com/leoisqualified/pomodoro-timer/internal/service/auth"
	"github.com/leoisqualified/pomodoro-timer/tests/e2e"
)

func registerAndLogin(t *testing.T, s e2e.Services, username string) (models.User, models.TokenPair) {
	t.Helper()

	_, err := s.AuthService.Register(t.Context(), username, "secret123")
	require.NoError(t, err, "should register user for test")
	user, pair, err := s.AuthService.Login(t.Context(), username, "secret123")
	require.NoError(t, err, "should login user for test")

	return user, pair
}

// Fire a request authorized with the given access token
func doJSON(t *testing.T, method string, url string, data string, access string) (*http.Response, string) {
	t.Helper()

	var reader io.Reader
	if data != "" {
		reader = strings.NewReader(data)
	}
	req, err := http.NewRequestWithContext(t.Context(), method, url, reader)
	require.NoError(t, err)
	if data != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.AddCookie(&http.Cookie{Name: auth.AccessCookieName, Value: access})

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	return resp, string(body)
}

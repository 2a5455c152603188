package auth

import (
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/leoisqualified/pomodoro-timer/internal/service/auth"
	"github.com/leoisqualified/pomodoro-timer/internal/testutil"
	"github.com/leoisqualified/pomodoro-timer/tests/e2e"
)

const ProfileURL = "/auth/profile"

func Test_AuthProfile(t *testing.T) {
	t.Parallel()

	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	e2e.ServeWithTx(pg.Pool, t, func(tx pgx.Tx, srvURL string, s e2e.Services) {
		t.Run("profile ok", func(t *testing.T) {
			testutil.WithTx(tx, t, func(_ pgx.Tx) {
				_, err := s.AuthService.Register(t.Context(), "alice", "secret123")
				require.NoError(t, err)
				user, pair, err := s.AuthService.Login(t.Context(), "alice", "secret123")
				require.NoError(t, err)

				resp, body := doRequest(t, http.MethodGet, srvURL+ProfileURL,
					&http.Cookie{Name: auth.AccessCookieName, Value: pair.Access.Value},
				)

				require.Equalf(t, http.StatusOK, resp.StatusCode, "not expected code. Body: %s", body)
				require.JSONEq(t, `
					{
						"id": "`+user.ID.String()+`",
						"username": "alice"
					}`, body)
			})
		})

		t.Run("no token cookie", func(t *testing.T) {
			resp, body := doRequest(t, http.MethodGet, srvURL+ProfileURL)

			require.Equalf(t, http.StatusUnauthorized, resp.StatusCode, "not expected code. Body: %s", body)
			require.JSONEq(t, `
				{
					"error": "service_error",
					"message": "No token provided"
				}`, body)
		})

		t.Run("garbage token", func(t *testing.T) {
			resp, body := doRequest(t, http.MethodGet, srvURL+ProfileURL,
				&http.Cookie{Name: auth.AccessCookieName, Value: "not-even-a-jwt"},
			)

			require.Equalf(t, http.StatusUnauthorized, resp.StatusCode, "not expected code. Body: %s", body)
			require.JSONEq(t, `
				{
					"error": "service_error",
					"message": "Invalid or expired token"
				}`, body)
		})

		t.Run("refresh token is not an access token", func(t *testing.T) {
			testutil.WithTx(tx, t, func(_ pgx.Tx) {
				_, err := s.AuthService.Register(t.Context(), "alice", "secret123")
				require.NoError(t, err)
				_, pair, err := s.AuthService.Login(t.Context(), "alice", "secret123")
				require.NoError(t, err)

				resp, body := doRequest(t, http.MethodGet, srvURL+ProfileURL,
					&http.Cookie{Name: auth.AccessCookieName, Value: pair.Refresh.Value},
				)

				require.Equalf(t, http.StatusUnauthorized, resp.StatusCode, "not expected code. Body: %s", body)
			})
		})
	})
}

package auth

import (
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

// Fire a body-less request with the given cookies attached
func doRequest(t *testing.T, method string, url string, cookies ...*http.Cookie) (*http.Response, string) {
	t.Helper()

	req, err := http.NewRequestWithContext(t.Context(), method, url, nil)
	require.NoError(t, err)
	for _, c := range cookies {
		req.AddCookie(c)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	return resp, string(body)
}

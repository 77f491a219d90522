package pkg_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liavyona/covid-gist/pkg"
)

type recordedPatch struct {
	method   string
	path     string
	username string
	token    string
	payload  pkg.PublishPayload
}

func gistServer(t *testing.T, status int, calls *int32) (*httptest.Server, <-chan recordedPatch) {
	t.Helper()
	patches := make(chan recordedPatch, 8)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		rec := recordedPatch{method: r.Method, path: r.URL.Path}
		rec.username, rec.token, _ = r.BasicAuth()
		assert.NoError(t, json.Unmarshal(body, &rec.payload))
		patches <- rec
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv, patches
}

func TestPublish(t *testing.T) {
	var calls int32
	srv, patches := gistServer(t, http.StatusOK, &calls)
	logger := zerolog.Nop()

	status, err := pkg.NewGistClient(srv.URL+"/", time.Second).Publish(
		context.Background(),
		&logger,
		"abc123",
		pkg.Credentials{Username: "octocat", Token: "secret"},
		pkg.NewPublishPayload("status.md", "hello"),
	)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, int32(1), atomic.LoadInt32(&calls))

	last := <-patches
	require.Equal(t, http.MethodPatch, last.method)
	require.Equal(t, "/gists/abc123", last.path)
	require.Equal(t, "octocat", last.username)
	require.Equal(t, "secret", last.token)
	require.Equal(t, "COVID-19 Updates", last.payload.Description)
	require.Equal(t, map[string]pkg.GistFile{"status.md": {Content: "hello"}}, last.payload.Files)
}

func TestPublishRejected(t *testing.T) {
	var calls int32
	srv, _ := gistServer(t, http.StatusUnprocessableEntity, &calls)
	logger := zerolog.Nop()

	status, err := pkg.NewGistClient(srv.URL, time.Second).Publish(
		context.Background(),
		&logger,
		"abc123",
		pkg.Credentials{Username: "octocat", Token: "secret"},
		pkg.NewPublishPayload("status.md", "hello"),
	)
	var publishErr *pkg.PublishError
	require.ErrorAs(t, err, &publishErr)
	require.Equal(t, http.StatusUnprocessableEntity, publishErr.StatusCode)
	require.Equal(t, http.StatusUnprocessableEntity, status)
	require.Equal(t, "Request Failed 422", publishErr.Error())
	require.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestPublishMissingCredentials(t *testing.T) {
	tests := []struct {
		name    string
		gistID  string
		creds   pkg.Credentials
		missing []string
	}{
		{name: "username", gistID: "abc", creds: pkg.Credentials{Token: "t"}, missing: []string{"GH_USERNAME"}},
		{name: "token", gistID: "abc", creds: pkg.Credentials{Username: "u"}, missing: []string{"GH_TOKEN"}},
		{name: "gist id", creds: pkg.Credentials{Username: "u", Token: "t"}, missing: []string{"GIST_ID"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			srv, _ := gistServer(t, http.StatusOK, &calls)
			logger := zerolog.Nop()

			_, err := pkg.NewGistClient(srv.URL, time.Second).Publish(
				context.Background(), &logger, tt.gistID, tt.creds, pkg.NewPublishPayload("status.md", "x"))
			var cfgErr *pkg.ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			require.Equal(t, tt.missing, cfgErr.Missing)
			require.Zero(t, atomic.LoadInt32(&calls))
		})
	}
}

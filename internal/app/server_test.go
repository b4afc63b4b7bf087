package app

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/gitgraphgo/internal/broadcast"
	"github.com/vk/gitgraphgo/internal/config"
)

func post(t *testing.T, h http.Handler, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Health(t *testing.T) {
	a, _, logs := SetupAppTest(t, nil)

	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK\n", rec.Body.String())
	assert.Contains(t, logs.String(), "Health check endpoint hit.")
}

func TestRouter_Normalize(t *testing.T) {
	a, _, _ := SetupAppTest(t, nil)
	h := a.Router()

	rec := post(t, h, "/v1/gitgraph?format=hcl&output=calls", releaseFlow)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var calls []decodedCall
	require.NoError(t, yaml.Unmarshal(rec.Body.Bytes(), &calls))
	assert.Len(t, calls, 8)

	rec = post(t, h, "/v1/gitgraph?output=state&encoding=yaml", releaseFlow)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "currentBranch: main")
}

func TestRouter_NormalizeErrors(t *testing.T) {
	testCases := []struct {
		name   string
		target string
		body   string
		want   int
	}{
		{name: "parse error", target: "/v1/gitgraph?format=hcl", body: "commit {", want: http.StatusBadRequest},
		{name: "invalid tree", target: "/v1/gitgraph?format=json", body: `{"$type":"Pie"}`, want: http.StatusBadRequest},
		{name: "unknown format", target: "/v1/gitgraph?format=toml", body: "", want: http.StatusBadRequest},
		{name: "unknown output", target: "/v1/gitgraph?output=svg", body: releaseFlow, want: http.StatusBadRequest},
		{name: "db rule violation", target: "/v1/gitgraph", body: "checkout \"ghost\" {}\n", want: http.StatusUnprocessableEntity},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a, _, _ := SetupAppTest(t, nil)
			rec := post(t, a.Router(), tc.target, tc.body)

			assert.Equal(t, tc.want, rec.Code)
			var body map[string]string
			require.NoError(t, yaml.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestRouter_RejectedOutputPublishesNothing(t *testing.T) {
	pub := &fakePublisher{}
	dial := func(context.Context, broadcast.Options) (Publisher, error) { return pub, nil }
	cfg := config.Default()
	cfg.Publish.URL = "http://localhost:3000/socket.io/"
	a, _, _ := SetupAppTest(t, cfg, WithDialer(dial))
	h := a.Router()

	for _, target := range []string{
		"/v1/gitgraph?format=hcl&output=bogus",
		"/v1/gitgraph?format=hcl&encoding=toml",
	} {
		rec := post(t, h, target, `commit { id = "1" }`)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
	assert.Empty(t, pub.events)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestRouter_BodyReadErrors(t *testing.T) {
	a, _, _ := SetupAppTest(t, nil)
	h := a.Router()

	t.Run("oversized body", func(t *testing.T) {
		rec := post(t, h, "/v1/gitgraph", strings.Repeat("#", maxBodyBytes+1))
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})

	t.Run("broken body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/gitgraph", failingReader{})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "connection reset")
	})
}

func TestRouter_Metrics(t *testing.T) {
	a, _, _ := SetupAppTest(t, nil)
	h := a.Router()

	post(t, h, "/v1/gitgraph", releaseFlow)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `gitgraphgo_http_requests_total{method="POST",route="/v1/gitgraph",status="200"} 1`)
	assert.Contains(t, body, `gitgraphgo_statements_total{kind="commit"} 2`)
}

func TestServeListener_GracefulShutdown(t *testing.T) {
	a, _, logs := SetupAppTest(t, nil)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.ServeListener(ctx, ln) }()

	url := "http://" + ln.Addr().String() + "/health"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		b, _ := io.ReadAll(resp.Body)
		return resp.StatusCode == http.StatusOK && string(b) == "OK\n"
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
	assert.Contains(t, logs.String(), "Shutting down HTTP server...")
}

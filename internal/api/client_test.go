package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, time.Minute)
}

func TestClientListAndRefresh(t *testing.T) {
	fixture := loadFixture(t, "list_issues")
	var refreshes atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/issues", func(w http.ResponseWriter, r *http.Request) {
		require.NotEmpty(t, r.Header.Get("X-Request-Id"))
		_, _ = w.Write(fixture)
	})
	mux.HandleFunc("POST /api/v1/issues/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshes.Add(1)
		_, _ = w.Write(fixture)
	})
	client := newTestServer(t, mux)

	resp, err := client.ListIssues(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Issues, 3)

	resp, err = client.RefreshIssues(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Issues, 3)
	require.Equal(t, int32(1), refreshes.Load())
}

func TestClientGetIssue(t *testing.T) {
	fixture := loadFixture(t, "issue_detail_pending")
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/issues/{id}", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "12345", r.PathValue("id"))
		_, _ = w.Write(fixture)
	})
	mux.HandleFunc("POST /api/v1/issues/{id}/refresh", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(fixture)
	})
	client := newTestServer(t, mux)

	detail, err := client.GetIssue(context.Background(), "12345")
	require.NoError(t, err)
	require.Equal(t, StatePending{}, detail.State)

	detail, err = client.RefreshIssue(context.Background(), "12345")
	require.NoError(t, err)
	require.Equal(t, "12345", detail.ID)
}

func TestClientHTTPError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/issues/{id}", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "issue not found", http.StatusNotFound)
	})
	client := newTestServer(t, mux)

	_, err := client.GetIssue(context.Background(), "missing")
	require.Error(t, err)
	var statusErr *HTTPError
	require.True(t, errors.As(err, &statusErr))
	require.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	require.Contains(t, err.Error(), "issue not found")
}

func TestClientDecodeError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/issues", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"issues": "nope"}`))
	})
	client := newTestServer(t, mux)

	_, err := client.ListIssues(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to decode response")
}

func TestClientConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, 0).ListIssues(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to send HTTP request")
}

func TestClientSessionCacheInvalidatedByActions(t *testing.T) {
	var lookups atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/issues/{id}/session", func(w http.ResponseWriter, r *http.Request) {
		n := lookups.Add(1)
		fmt.Fprintf(w, `{"analysisSession":{"id":"s%d","path":"/sessions/%d.jsonl"}}`, n, n)
	})
	mux.HandleFunc("POST /api/v1/issues/{id}/approve", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"in_progress","worktreePath":"/wt","worktreeBranch":"fix","implementationSessionId":"i1","implementationSessionPath":"/i1.jsonl"}`))
	})
	client := newTestServer(t, mux)
	ctx := context.Background()

	first, err := client.GetSession(ctx, "1")
	require.NoError(t, err)
	require.Equal(t, "/sessions/1.jsonl", first.Path())

	cached, err := client.GetSession(ctx, "1")
	require.NoError(t, err)
	require.Equal(t, "/sessions/1.jsonl", cached.Path())
	require.Equal(t, int32(1), lookups.Load())

	approved, err := client.Approve(ctx, "1")
	require.NoError(t, err)
	require.Equal(t, "/wt", approved.WorktreePath)

	fresh, err := client.GetSession(ctx, "1")
	require.NoError(t, err)
	require.Equal(t, "/sessions/2.jsonl", fresh.Path())
}

func TestClientActions(t *testing.T) {
	var hits []string
	mux := http.NewServeMux()
	for _, name := range []string{"analyze", "approve", "reject", "complete", "retry"} {
		mux.HandleFunc("POST /api/v1/issues/{id}/"+name, func(w http.ResponseWriter, r *http.Request) {
			hits = append(hits, name)
			_, _ = w.Write([]byte(`{"status":"ok","sessionId":"s1"}`))
		})
	}
	client := newTestServer(t, mux)
	ctx := context.Background()

	analyzed, err := client.Analyze(ctx, "1")
	require.NoError(t, err)
	require.Equal(t, "s1", analyzed.SessionID)
	_, err = client.Approve(ctx, "1")
	require.NoError(t, err)
	_, err = client.Reject(ctx, "1")
	require.NoError(t, err)
	_, err = client.Complete(ctx, "1")
	require.NoError(t, err)
	retried, err := client.Retry(ctx, "1")
	require.NoError(t, err)
	require.Equal(t, "s1", retried.SessionID)

	require.Equal(t, []string{"analyze", "approve", "reject", "complete", "retry"}, hits)
}

func TestClientHealth(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	client := newTestServer(t, mux)

	resp, err := client.Health(context.Background())
	require.NoError(t, err)
	require.Equal(t, "ok", resp.Status)
}

func sseHandler(payloads ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		flusher, _ := w.(http.Flusher)
		for _, p := range payloads {
			fmt.Fprintf(w, "data: %s\n\n", p)
			if flusher != nil {
				flusher.Flush()
			}
		}
	}
}

func TestStreamEvents(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/issues/{id}/events", sseHandler(
		`{"type":"thinking"}`,
		`{"type":"text_delta","delta":"hi"}`,
		`{"type":"complete","proposal":"p"}`,
	))
	client := newTestServer(t, mux)

	var got []AnalysisEvent
	err := client.StreamEvents(context.Background(), "1", func(e AnalysisEvent) error {
		got = append(got, e)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []AnalysisEvent{
		EventThinking{},
		EventTextDelta{Delta: "hi"},
		EventComplete{Proposal: "p"},
	}, got)
}

func TestStreamEventsMalformedPayloadStops(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/issues/{id}/events", sseHandler(
		`{"type":"thinking"}`,
		`{"type":"mystery"}`,
		`{"type":"thinking"}`,
	))
	client := newTestServer(t, mux)

	var count int
	err := client.StreamEvents(context.Background(), "1", func(e AnalysisEvent) error {
		count++
		return nil
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "parse error")
	require.Equal(t, 1, count)
}

func TestStreamEventsCallbackErrorStops(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/issues/{id}/events", sseHandler(`{"type":"thinking"}`, `{"type":"thinking"}`))
	client := newTestServer(t, mux)

	stop := errors.New("stop")
	err := client.StreamEvents(context.Background(), "1", func(e AnalysisEvent) error {
		return stop
	})
	require.ErrorIs(t, err, stop)
}

func TestStreamEventsHTTPError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/issues/{id}/events", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no session", http.StatusConflict)
	})
	client := newTestServer(t, mux)

	err := client.StreamEvents(context.Background(), "1", func(AnalysisEvent) error { return nil })
	var statusErr *HTTPError
	require.True(t, errors.As(err, &statusErr))
	require.Equal(t, http.StatusConflict, statusErr.StatusCode)
}

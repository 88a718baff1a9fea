package forge

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\nfake")

func imageResponse(data []byte) string {
	return fmt.Sprintf(`{"content":[{"type":"text","text":"here"},{"type":"image","source":{"type":"base64","media_type":"image/png","data":%q}}]}`,
		base64.StdEncoding.EncodeToString(data))
}

func newTestClient(t *testing.T, endpoint string, opts ...Option) *Client {
	t.Helper()
	c, err := NewClient(Config{
		Endpoint:  endpoint,
		Model:     "test-model",
		MaxTokens: 100,
		APIKey:    "k",
		Timeout:   5 * time.Second,
	}, opts...)
	require.NoError(t, err)
	return c
}

func TestNewClient_InvalidEndpoint(t *testing.T) {
	for _, endpoint := range []string{"", "localhost:8080", "ftp://example.com", "://bad"} {
		_, err := NewClient(Config{Endpoint: endpoint})
		require.ErrorIs(t, err, ErrInvalidEndpoint, endpoint)
	}
}

func TestGenerate_RequestContract(t *testing.T) {
	var got requestBody
	var header http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		header = r.Header.Clone()
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &got))
		_, _ = w.Write([]byte(imageResponse(pngMagic)))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, WithRequestID(func() string { return "req-1" }))
	img, err := c.Generate(context.Background(), "draw a stone")
	require.NoError(t, err)
	require.Equal(t, pngMagic, img)

	require.Equal(t, "test-model", got.Model)
	require.Equal(t, 100, got.MaxTokens)
	require.False(t, got.Stream)
	require.Equal(t, []message{{Role: "user", Content: "draw a stone"}}, got.Messages)
	require.Equal(t, "application/json", header.Get("Content-Type"))
	require.Equal(t, "k", header.Get("x-api-key"))
	require.Equal(t, "req-1", header.Get("X-Request-Id"))
}

func TestGenerate_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "status", status: http.StatusInternalServerError, body: "boom", wantErr: ErrStatus},
		{name: "no image", status: http.StatusOK, body: `{"content":[{"type":"text","text":"sorry"}]}`, wantErr: ErrNoImage},
		{name: "empty content", status: http.StatusOK, body: `{}`, wantErr: ErrNoImage},
		{name: "invalid json", status: http.StatusOK, body: `not json`, wantErr: ErrDecode},
		{name: "bad base64", status: http.StatusOK, body: `{"content":[{"type":"image","source":{"type":"base64","data":"!!!"}}]}`, wantErr: ErrDecode},
		{name: "empty image data", status: http.StatusOK, body: `{"content":[{"type":"image","source":{"type":"base64","data":""}}]}`, wantErr: ErrNoImage},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			_, err := newTestClient(t, server.URL).Generate(context.Background(), "p")
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestGenerate_StatusErrorCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL).Generate(context.Background(), "p")
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	require.Equal(t, http.StatusTooManyRequests, statusErr.Code)
}

func TestGenerate_ConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := newTestClient(t, url).Generate(context.Background(), "p")
	require.ErrorIs(t, err, ErrConnection)
}

func TestGenerate_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	c := newTestClient(t, server.URL, WithHTTPClient(&http.Client{Timeout: 50 * time.Millisecond}))
	_, err := c.Generate(context.Background(), "p")
	require.ErrorIs(t, err, ErrTimeout)
}

func TestRun_SkipsExistingAndContinuesOnFailure(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		var body requestBody
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body.Messages[0].Content == "fail" {
			_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"cannot draw that"}]}`))
			return
		}
		_, _ = w.Write([]byte(imageResponse(pngMagic)))
	}))
	defer server.Close()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "existing.png"), []byte("old"), 0644))

	var reported []ItemResult
	c := newTestClient(t, server.URL, WithProgress(func(r ItemResult) { reported = append(reported, r) }))
	items := []Item{
		{Name: "existing", Prompt: "ignored"},
		{Name: "broken", Prompt: "fail"},
		{Name: "fresh", Prompt: "ok"},
	}
	summary, err := c.Run(context.Background(), dir, items)
	require.NoError(t, err)

	require.Equal(t, int32(2), requests.Load())
	require.Equal(t, 3, summary.Total)
	require.Equal(t, 2, summary.Succeeded)
	require.Equal(t, 1, summary.Skipped)
	require.Equal(t, 1, summary.Failed)
	require.Len(t, summary.Failures, 1)
	require.Equal(t, "broken", summary.Failures[0].Name)
	require.ErrorIs(t, summary.Failures[0], ErrNoImage)

	old, err := os.ReadFile(filepath.Join(dir, "existing.png"))
	require.NoError(t, err)
	require.Equal(t, []byte("old"), old)
	fresh, err := os.ReadFile(filepath.Join(dir, "fresh.png"))
	require.NoError(t, err)
	require.Equal(t, pngMagic, fresh)
	require.NoFileExists(t, filepath.Join(dir, "broken.png"))

	require.Len(t, reported, 3)
	require.Equal(t, []Status{StatusSkipped, StatusFailed, StatusSaved}, []Status{reported[0].Status, reported[1].Status, reported[2].Status})
	require.Equal(t, 2, reported[1].Index)
	require.Equal(t, 3, reported[1].Total)
}

func TestRun_Cancelled(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		_, _ = w.Write([]byte(imageResponse(pngMagic)))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	c := newTestClient(t, server.URL, WithProgress(func(ItemResult) { cancel() }))
	summary, err := c.Run(ctx, t.TempDir(), []Item{{Name: "a", Prompt: "a"}, {Name: "b", Prompt: "b"}})
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, int32(1), requests.Load())
	require.Equal(t, 1, summary.Succeeded)
}

func TestRun_EmptyImageIsNotSaved(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"content":[{"type":"image","source":{"type":"base64","data":""}}]}`))
	}))
	defer server.Close()

	dir := t.TempDir()
	summary, err := newTestClient(t, server.URL).Run(context.Background(), dir, []Item{{Name: "blank", Prompt: "p"}})
	require.NoError(t, err)
	require.Equal(t, 1, summary.Failed)
	require.Equal(t, 0, summary.Succeeded)
	require.ErrorIs(t, summary.Failures[0], ErrNoImage)
	require.NoFileExists(t, filepath.Join(dir, "blank.png"))
}

func TestRun_DelayStartsAfterPreviousRequest(t *testing.T) {
	const (
		delay   = 150 * time.Millisecond
		latency = 200 * time.Millisecond
	)
	var (
		mu     sync.Mutex
		starts []time.Time
		ends   []time.Time
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		mu.Lock()
		starts = append(starts, time.Now())
		mu.Unlock()
		time.Sleep(latency)
		w.WriteHeader(http.StatusInternalServerError)
		mu.Lock()
		ends = append(ends, time.Now())
		mu.Unlock()
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, WithDelay(delay))
	summary, err := c.Run(context.Background(), t.TempDir(), []Item{{Name: "a", Prompt: "a"}, {Name: "b", Prompt: "b"}})
	require.NoError(t, err)
	require.Equal(t, 2, summary.Failed)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, starts, 2)
	require.Len(t, ends, 2)
	gap := starts[1].Sub(ends[0])
	require.GreaterOrEqual(t, gap, delay, "gap between end of request 1 and start of request 2")
}

func TestRun_NoDelayAfterLastOrSkippedItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(imageResponse(pngMagic)))
	}))
	defer server.Close()

	dir := t.TempDir()
	for _, name := range []string{"first", "second"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name+".png"), []byte("old"), 0644))
	}

	c := newTestClient(t, server.URL, WithDelay(time.Hour))
	done := make(chan struct{})
	var summary Summary
	var err error
	go func() {
		defer close(done)
		summary, err = c.Run(context.Background(), dir, []Item{
			{Name: "first", Prompt: "p"},
			{Name: "second", Prompt: "p"},
			{Name: "last", Prompt: "p"},
		})
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run waited on a skipped or final item")
	}
	require.NoError(t, err)
	require.Equal(t, 2, summary.Skipped)
	require.Equal(t, 3, summary.Succeeded)
}

func TestRun_CancelledDuringDelay(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(imageResponse(pngMagic)))
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	c := newTestClient(t, server.URL, WithDelay(time.Hour))
	summary, err := c.Run(ctx, t.TempDir(), []Item{{Name: "a", Prompt: "a"}, {Name: "b", Prompt: "b"}})
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Equal(t, 1, summary.Succeeded)
}

func TestParsePrompts(t *testing.T) {
	pf, err := ParsePrompts([]byte(`
style = "16x16 pixel art"

[[textures]]
name = " coal_vein "
prompt = "{{style}} of {{ name }}"

[[textures]]
name = "moss"
prompt = "plain moss"
`))
	require.NoError(t, err)
	items, err := pf.Items()
	require.NoError(t, err)
	require.Equal(t, []Item{
		{Name: "coal_vein", Prompt: "16x16 pixel art of coal_vein"},
		{Name: "moss", Prompt: "plain moss"},
	}, items)
}

func TestParsePrompts_Invalid(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{name: "syntax", content: `textures = [`},
		{name: "missing name", content: "[[textures]]\nprompt = \"p\""},
		{name: "path name", content: "[[textures]]\nname = \"../x\"\nprompt = \"p\""},
		{name: "missing prompt", content: "[[textures]]\nname = \"x\""},
		{name: "duplicate", content: "[[textures]]\nname = \"x\"\nprompt = \"p\"\n[[textures]]\nname = \"x\"\nprompt = \"q\""},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParsePrompts([]byte(tc.content))
			require.Error(t, err)
		})
	}
}

func TestItems_UnknownPlaceholder(t *testing.T) {
	pf := &PromptsFile{Textures: []PromptEntry{{Name: "x", Prompt: "{{color}} block"}}}
	_, err := pf.Items()
	require.ErrorContains(t, err, "unknown placeholder")
}

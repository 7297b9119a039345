package api_test

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailpreview/pkg/analyzer"
	"github.com/dmitrymomot/mailpreview/pkg/api"
	"github.com/dmitrymomot/mailpreview/pkg/catalog"
	"github.com/dmitrymomot/mailpreview/pkg/email"
	"github.com/dmitrymomot/mailpreview/pkg/file"
	"github.com/dmitrymomot/mailpreview/pkg/httpserver"
	"github.com/dmitrymomot/mailpreview/pkg/notifications"
	"github.com/dmitrymomot/mailpreview/pkg/props"
	"github.com/dmitrymomot/mailpreview/pkg/ratelimiter"
	"github.com/dmitrymomot/mailpreview/pkg/render"
)

type MockSender struct {
	mock.Mock
}

func (m *MockSender) SendEmail(ctx context.Context, params email.SendEmailParams) error {
	return m.Called(ctx, params).Error(0)
}

const welcome = `{{/*
props:
  - name: name
    type: string
    default: "World"
*/}}<p>Hello {{ .name }}</p>`

func templatesDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "auth"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "welcome.tmpl"), []byte(welcome), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "auth", "broken.tmpl"), []byte(`{{ .x.y.z }}`), 0o644))
	return dir
}

func newServer(t *testing.T, sender email.EmailSender, opts ...api.Option) *api.Server {
	t.Helper()
	store, err := file.NewLocalStorage(templatesDir(t), file.WithExtensions(".tmpl"))
	require.NoError(t, err)
	return api.NewServer(catalog.New(store, analyzer.New()), render.NewEngine(store), sender, opts...)
}

func do(t *testing.T, h http.Handler, method, target, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServer_ListEmails(t *testing.T) {
	t.Parallel()

	h := newServer(t, &MockSender{}).Router()
	rec := do(t, h, http.MethodGet, "/api/emails", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var entries []catalog.Entry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "auth:broken.tmpl", entries[0].Filename)
	assert.Equal(t, "welcome.tmpl", entries[1].Filename)
	assert.Equal(t, "Welcome", entries[1].Label)
	require.Len(t, entries[1].Props, 1)
	assert.Equal(t, "World", entries[1].Props[0].Value)
	assert.NotEmpty(t, rec.Header().Get(api.RequestIDHeader))
}

type catalogFunc func(ctx context.Context) ([]catalog.Entry, error)

func (f catalogFunc) ListAll(ctx context.Context) ([]catalog.Entry, error) { return f(ctx) }

func TestServer_ListEmails_UnencodableEntry(t *testing.T) {
	t.Parallel()

	store, err := file.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	cat := catalogFunc(func(context.Context) ([]catalog.Entry, error) {
		return []catalog.Entry{{
			Filename: "n.tmpl",
			Props:    []props.Descriptor{{Label: "n", Kind: props.KindNumber, Value: math.Inf(1)}},
		}}, nil
	})
	h := api.NewServer(cat, render.NewEngine(store), &MockSender{}).Router()

	rec := do(t, h, http.MethodGet, "/api/emails", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal_server_error","code":"internal_server_error"}`, rec.Body.String())
}

func TestServer_ListEmails_InfinityDefault(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tmpl := "{{/*\nprops:\n  - name: limit\n    type: number\n    default: Infinity\n*/}}<p>{{ .limit }}</p>"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "quota.tmpl"), []byte(tmpl), 0o644))
	store, err := file.NewLocalStorage(dir, file.WithExtensions(".tmpl"))
	require.NoError(t, err)
	h := api.NewServer(catalog.New(store, analyzer.New()), render.NewEngine(store), &MockSender{}).Router()

	rec := do(t, h, http.MethodGet, "/api/emails", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var entries []catalog.Entry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	require.Len(t, entries[0].Props, 1)
	assert.Equal(t, float64(0), entries[0].Props[0].Value)
}

func TestServer_ListEmails_Empty(t *testing.T) {
	t.Parallel()

	store, err := file.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	h := api.NewServer(catalog.New(store, analyzer.New()), render.NewEngine(store), &MockSender{}).Router()

	rec := do(t, h, http.MethodGet, "/api/emails", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"catalog: no templates found","code":"not_found"}`, rec.Body.String())
}

func TestServer_RenderEmail(t *testing.T) {
	t.Parallel()

	h := newServer(t, &MockSender{}).Router()

	tests := []struct {
		name   string
		target string
		body   string
		code   int
		html   string
	}{
		{"with props", "/api/render/welcome.tmpl", `{"props":{"name":"Ada"}}`, http.StatusOK, "<p>Hello Ada</p>"},
		{"empty body", "/api/render/welcome.tmpl", ``, http.StatusOK, "<p>Hello"},
		{"unknown template", "/api/render/missing.tmpl", `{}`, http.StatusNotFound, ""},
		{"execution error", "/api/render/auth:broken.tmpl", `{"props":{"x":1}}`, http.StatusUnprocessableEntity, ""},
		{"malformed body", "/api/render/welcome.tmpl", `{`, http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := do(t, h, http.MethodPost, tt.target, tt.body)
			require.Equal(t, tt.code, rec.Code, rec.Body.String())
			if tt.code != http.StatusOK {
				return
			}
			var res render.Result
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
			assert.Contains(t, res.HTML, tt.html)
			assert.NotEmpty(t, res.Text)
		})
	}
}

func TestServer_SendTest(t *testing.T) {
	t.Parallel()

	sender := &MockSender{}
	sender.On("SendEmail", mock.Anything, email.SendEmailParams{
		SendTo: "dev@example.com", Subject: "Hi", BodyHTML: "<p>x</p>", Tag: "preview",
	}).Return(nil).Once()

	h := newServer(t, sender, api.WithTag("preview")).Router()

	rec := do(t, h, http.MethodPost, "/api/send/test", `{"to":"dev@example.com","subject":"Hi","html":"<p>x</p>"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"sent"}`, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/api/send/test", `{"to":"nope","subject":"Hi","html":"<p>x</p>"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "valid email address")

	sender.AssertExpectations(t)
}

func TestServer_SendTest_SenderFailure(t *testing.T) {
	t.Parallel()

	sender := &MockSender{}
	sender.On("SendEmail", mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	rec := do(t, newServer(t, sender).Router(), http.MethodPost, "/api/send/test", `{"to":"dev@example.com","subject":"Hi","html":"x"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"failed to send email"}`, rec.Body.String())
}

func TestServer_SendTest_RateLimited(t *testing.T) {
	t.Parallel()

	store := ratelimiter.NewMemoryStore()
	t.Cleanup(func() { _ = store.Close() })
	limiter, err := ratelimiter.NewBucket(store, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Hour})
	require.NoError(t, err)

	sender := &MockSender{}
	sender.On("SendEmail", mock.Anything, mock.Anything).Return(nil).Once()

	h := newServer(t, sender, api.WithLimiter(limiter, nil)).Router()
	body := `{"to":"dev@example.com","subject":"Hi","html":"x"}`

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/send/test", body).Code)

	rec := do(t, h, http.MethodPost, "/api/send/test", body)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "Too many requests")
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	sender.AssertExpectations(t)
}

func TestServer_Preview(t *testing.T) {
	t.Parallel()

	h := newServer(t, &MockSender{}).Router()

	rec := do(t, h, http.MethodGet, "/preview/welcome.tmpl?name=Grace", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Equal(t, "<p>Hello Grace</p>", rec.Body.String())

	rec = do(t, h, http.MethodGet, "/preview/missing.tmpl", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodGet, "/preview/auth:broken.tmpl?x=1", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestServer_Healthz(t *testing.T) {
	t.Parallel()

	h := newServer(t, &MockSender{}, api.WithHealthChecks(httpserver.Check{
		Name: "redis",
		Fn:   func(context.Context) error { return errors.New("down") },
	})).Router()

	rec := do(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"unavailable","failed":["redis"]}`, rec.Body.String())
}

func TestServer_HostedSession(t *testing.T) {
	t.Parallel()

	sender := &MockSender{}
	sender.On("SendEmail", mock.Anything, mock.MatchedBy(func(p email.SendEmailParams) bool {
		return p.SendTo == "dev@example.com" && strings.Contains(p.BodyHTML, "Hello Ada")
	})).Return(nil).Once()

	h := newServer(t, sender).Router()

	rec := do(t, h, http.MethodPost, "/api/sessions/s1/send", `{"to":"dev@example.com","subject":"Hi"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/sessions/s1/select", `{"filename":"welcome.tmpl"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "Hello World")

	rec = do(t, h, http.MethodPost, "/api/sessions/s1/render", `{"props":{"name":"Ada"}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Hello Ada")

	rec = do(t, h, http.MethodGet, "/api/sessions/s1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var snap struct {
		State     string   `json:"state"`
		Active    string   `json:"active"`
		Templates []string `json:"templates"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, "rendered", snap.State)
	assert.Equal(t, "welcome.tmpl", snap.Active)
	assert.Equal(t, []string{"auth:broken.tmpl", "welcome.tmpl"}, snap.Templates)

	rec = do(t, h, http.MethodPost, "/api/sessions/s1/send", `{"to":"dev@example.com","subject":"Hi"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"outcome":"success"}`, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/api/sessions/s1/select", `{"filename":"nope.tmpl"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/sessions/bad%20id/select", `{"filename":"welcome.tmpl"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	sender.AssertExpectations(t)
}

func TestServer_Events(t *testing.T) {
	t.Parallel()

	events := notifications.NewBroadcastDeliverer(8)
	t.Cleanup(func() { _ = events.Close() })

	ts := httptest.NewServer(newServer(t, &MockSender{}, api.WithEvents(events)).Router())
	t.Cleanup(ts.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/api/events", nil)
	require.NoError(t, err)
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set(api.SessionIDHeader, "s1")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The subscription is registered asynchronously; publish until a toast arrives.
	go func() {
		ticker := time.NewTicker(20 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				_ = events.Deliver(ctx, notifications.New("s1", notifications.TypeSuccess, "Success", "Email sent successfully."))
			}
		}
	}()

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.Contains(line, `"toast"`) {
			assert.Contains(t, line, "Email sent successfully.")
			assert.Contains(t, line, `"type":"success"`)
			return
		}
	}
	t.Fatal("no toast received")
}

func TestServer_Events_RequiresSession(t *testing.T) {
	t.Parallel()

	events := notifications.NewBroadcastDeliverer(1)
	t.Cleanup(func() { _ = events.Close() })

	rec := do(t, newServer(t, &MockSender{}, api.WithEvents(events)).Router(), http.MethodGet, "/api/events", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

package email_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailpreview/pkg/email"
)

func TestTestClient_SendTest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
		want   email.TestResult
	}{
		{"accepted", http.StatusOK, `{"status":"sent"}`, email.TestResult{StatusCode: http.StatusOK}},
		{"rate limited", http.StatusTooManyRequests, `{"error":"slow down"}`, email.TestResult{StatusCode: http.StatusTooManyRequests, Error: "slow down"}},
		{"plain text error", http.StatusBadGateway, "upstream down\n", email.TestResult{StatusCode: http.StatusBadGateway, Error: "upstream down"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/custom", r.URL.Path)
				var req email.TestRequest
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, email.TestRequest{To: "a@b.co", Subject: "S", HTML: "<p>x</p>"}, req)
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			t.Cleanup(srv.Close)

			c := email.NewTestClient(srv.URL+"/", email.WithTestPath("/custom"))
			res, err := c.SendTest(context.Background(), email.TestRequest{To: "a@b.co", Subject: "S", HTML: "<p>x</p>"})
			require.NoError(t, err)
			assert.Equal(t, tt.want, *res)
		})
	}
}

func TestTestClient_TransportError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := email.NewTestClient(url).SendTest(context.Background(), email.TestRequest{To: "a@b.co"})
	assert.ErrorIs(t, err, email.ErrFailedToSendEmail)
}

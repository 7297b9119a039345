package api_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailpreview/pkg/api"
	"github.com/dmitrymomot/mailpreview/pkg/email"
	"github.com/dmitrymomot/mailpreview/pkg/ratelimiter"
)

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (*ratelimiter.Result, error) {
	return nil, ratelimiter.ErrStoreUnavailable
}

func (failingLimiter) AllowN(context.Context, string, int) (*ratelimiter.Result, error) {
	return nil, ratelimiter.ErrStoreUnavailable
}

func TestLocalSender_SendTest(t *testing.T) {
	t.Parallel()

	store := ratelimiter.NewMemoryStore()
	t.Cleanup(func() { _ = store.Close() })
	limiter, err := ratelimiter.NewBucket(store, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Minute})
	require.NoError(t, err)

	sender := &MockSender{}
	sender.On("SendEmail", mock.Anything, email.SendEmailParams{
		SendTo: "dev@example.com", Subject: "Hi", BodyHTML: "<p>x</p>", Tag: "t",
	}).Return(nil).Once()

	s := api.NewLocalSender(sender, api.WithRateLimit(limiter, "cli"), api.WithSendTag("t"))
	req := email.TestRequest{To: "dev@example.com", Subject: "Hi", HTML: "<p>x</p>"}

	res, err := s.SendTest(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, err = s.SendTest(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, res.StatusCode)
	assert.Contains(t, res.Error, "Please try again in")

	sender.AssertExpectations(t)
}

func TestLocalSender_Failures(t *testing.T) {
	t.Parallel()

	sender := &MockSender{}
	sender.On("SendEmail", mock.Anything, mock.Anything).Return(errors.New("boom"))

	res, err := api.NewLocalSender(sender).SendTest(context.Background(), email.TestRequest{To: "dev@example.com", Subject: "Hi", HTML: "x"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)

	res, err = api.NewLocalSender(sender).SendTest(context.Background(), email.TestRequest{Subject: "Hi", HTML: "x"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	_, err = api.NewLocalSender(sender, api.WithRateLimit(failingLimiter{}, "k")).
		SendTest(context.Background(), email.TestRequest{To: "dev@example.com", Subject: "Hi", HTML: "x"})
	assert.ErrorIs(t, err, ratelimiter.ErrStoreUnavailable)
}

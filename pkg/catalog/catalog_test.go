package catalog_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailpreview/pkg/analyzer"
	"github.com/dmitrymomot/mailpreview/pkg/catalog"
	"github.com/dmitrymomot/mailpreview/pkg/file"
	"github.com/dmitrymomot/mailpreview/pkg/props"
)

type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) Keys(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockStorage) Content(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *mockStorage) Metadata(ctx context.Context, key string) (*file.Metadata, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*file.Metadata), args.Error(1)
}

type analyzerFunc func(ctx context.Context, key, source string) ([]props.RawParameter, error)

func (f analyzerFunc) Analyze(ctx context.Context, key, source string) ([]props.RawParameter, error) {
	return f(ctx, key, source)
}

func TestLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		filename string
		expected string
	}{
		{filename: "welcome.tmpl", expected: "Welcome"},
		{filename: "welcome_email.tmpl", expected: "Welcome Email"},
		{filename: "auth:ResetPassword.tmpl", expected: "Auth Reset Password"},
		{filename: "billing:invoice:paid.tmpl", expected: "Billing Invoice Paid"},
		{filename: "order-shipped-v2.tmpl", expected: "Order Shipped V2"},
		{filename: "notes.md", expected: "Notes Md"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, catalog.Label(tt.filename, catalog.DefaultExtension))
		})
	}
}

func TestCatalog_ListAll(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "auth"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "welcome.tmpl"), []byte(`{{/*
props:
  - name: name
    type: string
    required: true
  - name: show
    type: boolean
    default: "true"
*/}}<p>Hi {{ .name }}</p>`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "auth", "ResetPassword.tmpl"), []byte(`<a href="{{ .link }}">reset</a>`), 0o644))

	store, err := file.NewLocalStorage(dir, file.WithExtensions(".tmpl"))
	require.NoError(t, err)

	entries, err := catalog.New(store, analyzer.New()).ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	reset := entries[0]
	assert.Equal(t, "auth:ResetPassword.tmpl", reset.Filename)
	assert.Equal(t, "Auth Reset Password", reset.Label)
	assert.Equal(t, catalog.DefaultIcon, reset.Icon)
	assert.Equal(t, []props.Descriptor{{Label: "link", Kind: props.KindString, Value: ""}}, reset.Props)

	welcome := entries[1]
	assert.Equal(t, "welcome.tmpl", welcome.Filename)
	assert.Equal(t, "Welcome", welcome.Label)
	assert.Contains(t, welcome.Content, "<p>Hi {{ .name }}</p>")
	assert.Positive(t, welcome.Size)
	assert.False(t, welcome.Modified.IsZero())
	assert.Equal(t, []props.Descriptor{
		{Label: "name", Kind: props.KindString, Value: ""},
		{Label: "show", Kind: props.KindBoolean, Value: true},
	}, welcome.Props)
}

func TestCatalog_ListAll_NotFound(t *testing.T) {
	t.Parallel()

	store := &mockStorage{}
	store.On("Keys", mock.Anything).Return([]string{}, nil)

	entries, err := catalog.New(store, analyzer.New()).ListAll(context.Background())
	assert.ErrorIs(t, err, catalog.ErrNotFound)
	assert.NotErrorIs(t, err, catalog.ErrInternal)
	assert.Nil(t, entries)
}

func TestCatalog_ListAll_KeysError(t *testing.T) {
	t.Parallel()

	errDown := errors.New("storage down")
	store := &mockStorage{}
	store.On("Keys", mock.Anything).Return(nil, errDown)

	_, err := catalog.New(store, analyzer.New()).ListAll(context.Background())
	assert.ErrorIs(t, err, catalog.ErrInternal)
	assert.ErrorIs(t, err, errDown)
}

func TestCatalog_ListAll_MalformedDefault(t *testing.T) {
	t.Parallel()

	now := time.Now()
	store := &mockStorage{}
	store.On("Keys", mock.Anything).Return([]string{"a.tmpl", "b.tmpl"}, nil)
	store.On("Content", mock.Anything, "a.tmpl").Return("<p>a</p>", nil)
	store.On("Content", mock.Anything, "b.tmpl").Return("{{/*\nprops:\n  - name: meta\n    type: object\n    default: \"{a:\"\n*/}}", nil)
	store.On("Metadata", mock.Anything, mock.Anything).Return(&file.Metadata{Size: 1, CreatedAt: now, ModifiedAt: now}, nil)

	_, err := catalog.New(store, analyzer.New()).ListAll(context.Background())
	assert.ErrorIs(t, err, catalog.ErrInternal)
	assert.ErrorIs(t, err, props.ErrMalformedDefault)
}

func TestCatalog_ListAll_FailFast(t *testing.T) {
	t.Parallel()

	errAnalyze := errors.New("analysis failed")
	var slowCompleted atomic.Bool

	now := time.Now()
	store := &mockStorage{}
	store.On("Keys", mock.Anything).Return([]string{"bad.tmpl", "slow.tmpl"}, nil)
	store.On("Content", mock.Anything, mock.Anything).Return("", nil)
	store.On("Metadata", mock.Anything, mock.Anything).Return(&file.Metadata{CreatedAt: now, ModifiedAt: now}, nil)

	a := analyzerFunc(func(ctx context.Context, key, _ string) ([]props.RawParameter, error) {
		if key == "bad.tmpl" {
			return nil, errAnalyze
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(5 * time.Second):
			slowCompleted.Store(true)
			return nil, nil
		}
	})

	start := time.Now()
	_, err := catalog.New(store, a).ListAll(context.Background())
	assert.ErrorIs(t, err, catalog.ErrInternal)
	assert.ErrorIs(t, err, errAnalyze)
	assert.False(t, slowCompleted.Load())
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestCatalog_Options(t *testing.T) {
	t.Parallel()

	now := time.Now()
	store := &mockStorage{}
	store.On("Keys", mock.Anything).Return([]string{"promo.html"}, nil)
	store.On("Content", mock.Anything, "promo.html").Return("<p>{{ .code }}</p>", nil)
	store.On("Metadata", mock.Anything, "promo.html").Return(&file.Metadata{Size: 18, CreatedAt: now, ModifiedAt: now}, nil)

	builder := props.NewBuilder(props.WithNormalizer(props.NewNormalizer()))
	entries, err := catalog.New(store, analyzer.New(),
		catalog.WithExtension(".html"),
		catalog.WithIcon("i-custom"),
		catalog.WithBuilder(builder),
		catalog.WithLogger(nil),
	).ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Promo", entries[0].Label)
	assert.Equal(t, "i-custom", entries[0].Icon)
	assert.Equal(t, int64(18), entries[0].Size)
	assert.Equal(t, now, entries[0].Created)
	store.AssertExpectations(t)
}

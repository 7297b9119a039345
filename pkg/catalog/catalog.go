package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/mailpreview/pkg/async"
	"github.com/dmitrymomot/mailpreview/pkg/file"
	"github.com/dmitrymomot/mailpreview/pkg/logger"
	"github.com/dmitrymomot/mailpreview/pkg/props"
)

const (
	DefaultIcon      = "i-heroicons-envelope"
	DefaultExtension = ".tmpl"
)

// Entry is a template with everything needed to preview it.
type Entry struct {
	Filename string             `json:"filename"`
	Label    string             `json:"label"`
	Content  string             `json:"content"`
	Icon     string             `json:"icon"`
	Size     int64              `json:"size"`
	Created  time.Time          `json:"created"`
	Modified time.Time          `json:"modified"`
	Props    []props.Descriptor `json:"props"`
}

// Analyzer extracts raw parameters from a template source.
type Analyzer interface {
	Analyze(ctx context.Context, key, source string) ([]props.RawParameter, error)
}

// Catalog lists templates from storage.
type Catalog struct {
	storage  file.Storage
	analyzer Analyzer
	builder  *props.Builder
	logger   *slog.Logger
	ext      string
	icon     string
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithBuilder sets the props builder.
func WithBuilder(b *props.Builder) Option {
	return func(c *Catalog) {
		if b != nil {
			c.builder = b
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Catalog) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithExtension sets the conventional template extension stripped from labels.
func WithExtension(ext string) Option {
	return func(c *Catalog) {
		c.ext = ext
	}
}

// WithIcon sets the icon attached to every entry.
func WithIcon(icon string) Option {
	return func(c *Catalog) {
		c.icon = icon
	}
}

// New creates a Catalog.
func New(storage file.Storage, analyzer Analyzer, opts ...Option) *Catalog {
	c := &Catalog{
		storage:  storage,
		analyzer: analyzer,
		builder:  props.NewBuilder(),
		logger:   logger.Discard(),
		ext:      DefaultExtension,
		icon:     DefaultIcon,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(logger.Component("catalog"))
	return c
}

// ListAll returns one entry per storage key in storage order.
// It returns ErrNotFound when storage holds no templates; every other failure,
// including a malformed default in any template, is wrapped in ErrInternal.
func (c *Catalog) ListAll(ctx context.Context) ([]Entry, error) {
	start := time.Now()

	keys, err := c.storage.Keys(ctx)
	if err != nil {
		c.logger.ErrorContext(ctx, "failed to list template keys", logger.Error(err))
		return nil, errors.Join(ErrInternal, err)
	}
	if len(keys) == 0 {
		return nil, ErrNotFound
	}

	entries, err := async.All(ctx, keys, c.load)
	if err != nil {
		c.logger.ErrorContext(ctx, "failed to load templates", logger.Error(err))
		return nil, errors.Join(ErrInternal, err)
	}

	c.logger.DebugContext(ctx, "catalog loaded",
		logger.Count(len(entries)),
		logger.Duration(time.Since(start)),
	)
	return entries, nil
}

func (c *Catalog) load(ctx context.Context, key string) (Entry, error) {
	content, err := c.storage.Content(ctx, key)
	if err != nil {
		return Entry{}, fmt.Errorf("%s: %w", key, err)
	}

	meta, err := c.storage.Metadata(ctx, key)
	if err != nil {
		return Entry{}, fmt.Errorf("%s: %w", key, err)
	}

	params, err := c.analyzer.Analyze(ctx, key, content)
	if err != nil {
		return Entry{}, fmt.Errorf("%s: %w", key, err)
	}

	descriptors, err := c.builder.Build(params)
	if err != nil {
		return Entry{}, fmt.Errorf("%s: %w", key, err)
	}

	return Entry{
		Filename: key,
		Label:    Label(key, c.ext),
		Content:  content,
		Icon:     c.icon,
		Size:     meta.Size,
		Created:  meta.CreatedAt,
		Modified: meta.ModifiedAt,
		Props:    descriptors,
	}, nil
}

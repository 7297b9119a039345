package render

import (
	"context"
	"errors"
	"html/template"
	"io"
	"log/slog"
	"maps"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/mailpreview/pkg/cache"
	"github.com/dmitrymomot/mailpreview/pkg/logger"
)

// Source provides template sources by storage key.
type Source interface {
	Content(ctx context.Context, key string) (string, error)
}

// Result is a rendered template.
type Result struct {
	HTML string `json:"html"`
	Text string `json:"text"`
}

// Empty reports whether rendering produced no output.
func (r *Result) Empty() bool {
	return r == nil || (strings.TrimSpace(r.HTML) == "" && strings.TrimSpace(r.Text) == "")
}

// DefaultCacheSize is the number of parsed templates an Engine keeps.
const DefaultCacheSize = 128

type parsed struct {
	source string
	tmpl   *template.Template
}

// Engine renders templates from a Source. It is safe for concurrent use.
// Parsed templates are cached by key and reparsed when the source changes.
type Engine struct {
	source    Source
	funcs     template.FuncMap
	now       func() time.Time
	logger    *slog.Logger
	cacheSize int
	parsed    *cache.LRU[string, parsed]
}

// Option configures an Engine.
type Option func(*Engine)

// WithFuncs adds template functions.
func WithFuncs(funcs template.FuncMap) Option {
	return func(e *Engine) {
		maps.Copy(e.funcs, funcs)
	}
}

// WithClock overrides the time source used for the Now and Year globals.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithCacheSize sets how many parsed templates are kept.
func WithCacheSize(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.cacheSize = n
		}
	}
}

// NewEngine creates an Engine reading sources from src.
func NewEngine(src Source, opts ...Option) *Engine {
	e := &Engine{
		source: src,
		funcs: template.FuncMap{
			"upper": strings.ToUpper,
			"lower": strings.ToLower,
			"trim":  strings.TrimSpace,
			"default": func(fallback, v any) any {
				if v == nil || v == "" {
					return fallback
				}
				return v
			},
		},
		now:       time.Now,
		logger:    logger.Discard(),
		cacheSize: DefaultCacheSize,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.parsed = cache.New[string, parsed](e.cacheSize)
	e.logger = e.logger.With(logger.Component("render"))
	return e
}

// Component loads and parses the template stored under key and returns a component
// that executes it with props and the framework globals.
func (e *Engine) Component(ctx context.Context, key string, props map[string]any) (templ.Component, error) {
	source, err := e.source.Content(ctx, key)
	if err != nil {
		return nil, errors.Join(ErrLoadTemplate, err)
	}

	tmpl, err := e.parse(key, source)
	if err != nil {
		return nil, err
	}

	data := make(map[string]any, len(props)+3)
	maps.Copy(data, props)
	now := e.now()
	data["Now"] = now
	data["Year"] = now.Year()
	data["Template"] = key

	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if err := tmpl.Execute(w, data); err != nil {
			return errors.Join(ErrExecuteTemplate, err)
		}
		return nil
	}), nil
}

// Render executes the template stored under key and returns its HTML and plain text.
func (e *Engine) Render(ctx context.Context, key string, props map[string]any) (*Result, error) {
	start := time.Now()

	c, err := e.Component(ctx, key, props)
	if err != nil {
		e.logger.WarnContext(ctx, "failed to prepare template", logger.Template(key), logger.Error(err))
		return nil, err
	}

	html, err := ToString(ctx, c)
	if err != nil {
		e.logger.WarnContext(ctx, "failed to render template", logger.Template(key), logger.Error(err))
		return nil, err
	}

	e.logger.DebugContext(ctx, "template rendered", logger.Template(key), logger.Duration(time.Since(start)))
	return &Result{HTML: html, Text: PlainText(html)}, nil
}

func (e *Engine) parse(key, source string) (*template.Template, error) {
	if p, ok := e.parsed.Get(key); ok && p.source == source {
		return p.tmpl, nil
	}

	tmpl, err := template.New(key).Funcs(e.funcs).Parse(source)
	if err != nil {
		return nil, errors.Join(ErrParseTemplate, err)
	}
	e.parsed.Put(key, parsed{source: source, tmpl: tmpl})
	return tmpl, nil
}

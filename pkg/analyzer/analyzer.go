package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/template/parse"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/mailpreview/pkg/props"
)

// DefaultGlobals are data keys injected by the renderer into every template.
var DefaultGlobals = []string{"Year", "Now", "Template"}

// Analyzer reads prop declarations and field references from template sources.
// It is safe for concurrent use.
type Analyzer struct {
	globals map[string]bool
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithGlobals replaces the set of framework-provided data keys.
func WithGlobals(names ...string) Option {
	return func(a *Analyzer) {
		a.globals = make(map[string]bool, len(names))
		for _, n := range names {
			a.globals[n] = true
		}
	}
}

// New creates an Analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{}
	WithGlobals(DefaultGlobals...)(a)
	for _, opt := range opts {
		opt(a)
	}
	return a
}

type declaration struct {
	Name     string    `yaml:"name"`
	Type     string    `yaml:"type"`
	Required bool      `yaml:"required"`
	Default  yaml.Node `yaml:"default"`
}

type frontMatter struct {
	Props []declaration `yaml:"props"`
}

// Analyze returns the raw parameters of the template stored under key.
// Declared parameters come first in declaration order, followed by inferred
// references in order of first use.
func (a *Analyzer) Analyze(ctx context.Context, key, source string) ([]props.RawParameter, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tree := parse.New(key)
	tree.Mode = parse.ParseComments | parse.SkipFuncCheck
	if _, err := tree.Parse(source, "", "", map[string]*parse.Tree{}); err != nil {
		return nil, errors.Join(ErrParseTemplate, err)
	}

	var params []props.RawParameter
	seen := map[string]bool{}

	decls, body, err := findDeclarations(tree.Root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidDeclaration, key, err)
	}
	for _, d := range decls {
		if d.Name == "" {
			return nil, fmt.Errorf("%w: %s: prop without a name", ErrInvalidDeclaration, key)
		}
		if seen[d.Name] {
			continue
		}
		seen[d.Name] = true

		def, err := defaultLiteral(body, d.Default)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: default for %q: %w", ErrInvalidDeclaration, key, d.Name, err)
		}
		params = append(params, props.RawParameter{
			Name:       d.Name,
			Required:   d.Required,
			Type:       parseType(d.Type, key),
			Default:    def,
			Global:     a.globals[d.Name],
			DeclaredIn: key,
		})
	}

	w := &walker{}
	w.walk(tree.Root, true)
	for _, name := range w.refs {
		if seen[name] {
			continue
		}
		seen[name] = true
		params = append(params, props.RawParameter{
			Name:       name,
			Type:       props.RawType{{Name: "any", DeclaredIn: []string{key}}},
			Global:     a.globals[name],
			DeclaredIn: key,
		})
	}

	return params, nil
}

// findDeclarations decodes the first top-level comment that carries a props list
// and returns the declarations with the comment body they were decoded from.
func findDeclarations(root *parse.ListNode) ([]declaration, string, error) {
	if root == nil {
		return nil, "", nil
	}
	for _, node := range root.Nodes {
		c, ok := node.(*parse.CommentNode)
		if !ok {
			continue
		}
		body := strings.TrimSpace(c.Text)
		body = strings.TrimSuffix(strings.TrimPrefix(body, "/*"), "*/")
		if !strings.Contains(body, "props:") {
			continue
		}
		var fm frontMatter
		if err := yaml.Unmarshal([]byte(body), &fm); err != nil {
			return nil, "", err
		}
		return fm.Props, body, nil
	}
	return nil, "", nil
}

// defaultLiteral turns a YAML default into literal source text.
// Scalars keep their text. Flow collections such as {a: 1} keep the text as
// written in body; block collections are re-encoded as JSON.
func defaultLiteral(body string, n yaml.Node) (*string, error) {
	switch n.Kind {
	case 0:
		return nil, nil
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return nil, nil
		}
		v := n.Value
		return &v, nil
	case yaml.MappingNode, yaml.SequenceNode:
		if n.Style&yaml.FlowStyle != 0 {
			s, err := flowSource(body, n.Line, n.Column)
			if err != nil {
				return nil, err
			}
			return &s, nil
		}
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		s := string(b)
		return &s, nil
	default:
		return nil, fmt.Errorf("unsupported yaml node kind %d", n.Kind)
	}
}

// flowSource returns the bracketed literal that starts at line:column (1-based)
// in body, up to and including its matching closing bracket.
func flowSource(body string, line, column int) (string, error) {
	lines := strings.SplitAfter(body, "\n")
	if line < 1 || line > len(lines) {
		return "", fmt.Errorf("%w: line %d", errFlowPosition, line)
	}
	head := []rune(lines[line-1])
	if column < 1 || column > len(head) {
		return "", fmt.Errorf("%w: column %d", errFlowPosition, column)
	}
	src := []rune(string(head[column-1:]) + strings.Join(lines[line:], ""))
	if src[0] != '{' && src[0] != '[' {
		return "", fmt.Errorf("%w: %d:%d", errFlowPosition, line, column)
	}

	depth := 0
	var quote rune
	for i := 0; i < len(src); i++ {
		r := src[i]
		switch {
		case quote != 0:
			if r == '\\' && quote == '"' {
				i++
			} else if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == '{' || r == '[':
			depth++
		case r == '}' || r == ']':
			depth--
			if depth == 0 {
				return string(src[:i+1]), nil
			}
		}
	}
	return "", errUnterminatedFlow
}

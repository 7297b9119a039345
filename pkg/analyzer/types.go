package analyzer

import (
	"regexp"
	"strings"

	"github.com/dmitrymomot/mailpreview/pkg/props"
)

var qualifiedType = regexp.MustCompile(`^([a-z][a-z0-9]*)\.([A-Z][A-Za-z0-9_]*)$`)

// stdlibPackages maps package names commonly seen in template data to import paths.
var stdlibPackages = map[string]string{
	"big":      "math/big",
	"bytes":    "bytes",
	"fs":       "io/fs",
	"http":     "net/http",
	"io":       "io",
	"json":     "encoding/json",
	"mail":     "net/mail",
	"netip":    "net/netip",
	"os":       "os",
	"regexp":   "regexp",
	"sql":      "database/sql",
	"strings":  "strings",
	"template": "html/template",
	"time":     "time",
	"url":      "net/url",
}

// parseType splits a union type expression and attributes each alternative
// to the file it was declared in.
func parseType(expr, file string) props.RawType {
	parts := splitUnion(expr)
	out := make(props.RawType, 0, len(parts))
	for _, part := range parts {
		out = append(out, props.TypeDesc{
			Name:       schemaName(part),
			DeclaredIn: []string{declaredIn(part, file)},
		})
	}
	return out
}

// splitUnion splits on '|' outside of brackets.
func splitUnion(expr string) []string {
	var (
		parts []string
		depth int
		start int
	)
	for i, r := range expr {
		switch r {
		case '[', '<', '(', '{':
			depth++
		case ']', '>', ')', '}':
			if depth > 0 {
				depth--
			}
		case '|':
			if depth == 0 {
				parts = appendPart(parts, expr[start:i])
				start = i + 1
			}
		}
	}
	return appendPart(parts, expr[start:])
}

func appendPart(parts []string, part string) []string {
	if part = strings.TrimSpace(part); part != "" {
		parts = append(parts, part)
	}
	return parts
}

func declaredIn(alt, file string) string {
	m := qualifiedType.FindStringSubmatch(strings.TrimPrefix(alt, "*"))
	if m != nil {
		if path, ok := stdlibPackages[m[1]]; ok {
			return props.InternalMarker + "src/" + path
		}
	}
	return file
}

// schemaName translates Go type spellings to the prop schema vocabulary.
func schemaName(goType string) string {
	t := strings.TrimPrefix(strings.TrimSpace(goType), "*")
	switch t {
	case "int", "int8", "int16", "int32", "int64",
		"uint", "uint8", "uint16", "uint32", "uint64",
		"float32", "float64", "number":
		return "number"
	case "bool", "boolean":
		return "boolean"
	case "struct", "struct{}", "object":
		return "object"
	case "interface{}", "any", "":
		return "any"
	}
	if strings.HasPrefix(t, "map[") {
		key, value, _ := strings.Cut(strings.TrimPrefix(t, "map["), "]")
		return "Record<" + key + ", " + value + ">"
	}
	return t
}

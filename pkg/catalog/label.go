package catalog

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/mailpreview/pkg/file"
	"github.com/dmitrymomot/mailpreview/pkg/slug"
)

// Label derives a display name from a storage key: the extension is stripped,
// separators become underscores, the name is split into words and every word is title-cased.
func Label(filename, ext string) string {
	name := filename
	if ext != "" {
		name = strings.TrimSuffix(name, ext)
	}
	name = strings.ReplaceAll(name, file.KeySeparator, "_")

	// Casers are stateful and must not be shared between goroutines
	return cases.Title(language.English).String(slug.Make(name, slug.Separator(" ")))
}

// Package slug splits identifiers into words and joins them into URL-safe slugs.
//
// Words breaks a string on punctuation, whitespace and camelCase boundaries, folding common
// Latin diacritics to ASCII. Make joins those words with a separator, kebab-case by default:
//
//	slug.Make("auth_ResetPassword")               // "auth-reset-password"
//	slug.Make("Café résumé")                      // "cafe-resume"
//	slug.Make("Hello World", slug.Separator("_")) // "hello_world"
//
// Template labels are derived from file names with a space separator.
package slug

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/mailpreview/pkg/slug"
)

func TestMake(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		opts     []slug.Option
		expected string
	}{
		{name: "simple text", input: "Hello World", expected: "hello-world"},
		{name: "with punctuation", input: "Hello, World!", expected: "hello-world"},
		{name: "with numbers", input: "Product 123", expected: "product-123"},
		{name: "multiple spaces", input: "Too    Many     Spaces", expected: "too-many-spaces"},
		{name: "special characters", input: "Price: $99.99", expected: "price-99-99"},
		{name: "empty string", input: "", expected: ""},
		{name: "only special characters", input: "!@#$%^&*()", expected: ""},
		{name: "unicode diacritics", input: "Café résumé naïve", expected: "cafe-resume-naive"},
		{name: "camel case", input: "resetPassword", expected: "reset-password"},
		{name: "pascal case with underscore", input: "auth_ResetPassword", expected: "auth-reset-password"},
		{name: "acronym", input: "HTMLEmail", expected: "html-email"},
		{name: "digits then upper", input: "step2Done", expected: "step2-done"},
		{name: "custom separator", input: "Hello World", opts: []slug.Option{slug.Separator("_")}, expected: "hello_world"},
		{name: "space separator", input: "auth_ResetPassword", opts: []slug.Option{slug.Separator(" ")}, expected: "auth reset password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, slug.Make(tt.input, tt.opts...))
		})
	}
}

func TestWords(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"auth", "Reset", "Password"}, slug.Words("auth_ResetPassword"))
	assert.Equal(t, []string{"HTML", "Email", "v2"}, slug.Words("HTMLEmail v2"))
	assert.Equal(t, []string{"welcome", "email"}, slug.Words("welcome-email"))
	assert.Nil(t, slug.Words("---"))
}

// Package render executes email templates and derives their plain-text alternative.
//
// Engine loads a template source by storage key, parses it with html/template and
// executes it with the supplied props plus framework globals (Year, Now, Template).
// Rendering goes through a templ.Component, so the same template can be served directly
// with templ.Handler or rendered to a string.
//
//	engine := render.NewEngine(store)
//	res, err := engine.Render(ctx, "welcome.tmpl", map[string]any{"name": "Ada"})
//	fmt.Println(res.HTML, res.Text)
//
// PlainText strips markup with bluemonday's strict policy while keeping block-level
// line breaks, and Pretty re-indents HTML for display.
package render

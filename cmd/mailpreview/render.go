package main

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/mailpreview/pkg/catalog"
	"github.com/dmitrymomot/mailpreview/pkg/props"
	"github.com/dmitrymomot/mailpreview/pkg/session"
)

var errInvalidProp = errors.New("invalid --prop, expected name=value")

func newRenderCmd(a *app) *cobra.Command {
	var (
		overrides []string
		text      bool
	)

	cmd := &cobra.Command{
		Use:   "render <filename>",
		Short: "Render a template with its default or overridden props",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.collaborators(cmd.Context())
			if err != nil {
				return err
			}
			defer c.close()

			sess := a.newSession(c, a.errOut)
			out, err := renderSelected(cmd.Context(), sess, args[0], overrides)
			if err != nil {
				return err
			}

			if text {
				_, err = fmt.Fprintln(a.out, out.Text)
			} else {
				_, err = fmt.Fprintln(a.out, out.HTML)
			}
			return err
		},
	}

	cmd.Flags().StringArrayVarP(&overrides, "prop", "p", nil, "prop override name=value (repeatable)")
	cmd.Flags().BoolVar(&text, "text", false, "print the plain-text alternative")
	return cmd
}

// renderSelected loads the catalog, selects filename and renders it, applying
// overrides on top of the template's defaults.
func renderSelected(ctx context.Context, sess *session.Session, filename string, overrides []string) (*session.Output, error) {
	if err := sess.LoadCatalog(ctx); err != nil {
		return nil, err
	}

	future, err := sess.Select(ctx, filename)
	if err != nil {
		return nil, err
	}
	out, err := future.AwaitContext(ctx)
	if err != nil {
		return nil, err
	}
	if len(overrides) == 0 {
		return out, nil
	}

	entry := sess.Active()
	values, err := parseProps(*entry, overrides)
	if err != nil {
		return nil, err
	}
	return sess.Render(ctx, values)
}

// parseProps merges name=value overrides into the entry's defaults. Values of declared
// props are coerced to the declared kind; unknown names are passed as strings.
func parseProps(entry catalog.Entry, overrides []string) (map[string]any, error) {
	values := props.Defaults(entry.Props)
	kinds := make(map[string]props.Kind, len(entry.Props))
	for _, d := range entry.Props {
		kinds[d.Label] = d.Kind
	}

	parsed := make(map[string]any, len(overrides))
	for _, kv := range overrides {
		name, raw, ok := strings.Cut(kv, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: %q", errInvalidProp, kv)
		}

		kind, declared := kinds[name]
		if !declared {
			parsed[name] = raw
			continue
		}
		v, err := props.Coerce(kind, &raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", errInvalidProp, name, err)
		}
		parsed[name] = v
	}

	maps.Copy(values, parsed)
	return values, nil
}

// Package analyzer extracts raw parameter declarations from email templates.
//
// Templates are Go html/template sources. Props are declared in a YAML document inside a
// template comment, usually at the top of the file:
//
//	{{/*
//	props:
//	  - name: name
//	    type: string
//	    required: true
//	  - name: sentAt
//	    type: time.Time | string
//	  - name: items
//	    type: "[]string"
//	    default: "['a', 'b']"
//	*/}}
//	<p>Hello {{ .name }}</p>
//
// Field references on the root data (.name, $.name) that are not declared become optional
// parameters of unknown type. References to framework globals (Year, Now, Template) are
// reported with Global set so that prop builders can skip them.
//
// Go type names are translated to the prop schema vocabulary (int -> number,
// map[string]any -> Record, bool -> boolean). Qualified standard-library types such as
// time.Time are attributed to $GOROOT so the default props.Normalizer drops them.
package analyzer

package analyzer

import "text/template/parse"

// walker collects field names referenced on the root data value.
type walker struct {
	refs []string
	seen map[string]bool
}

func (w *walker) add(name string) {
	if w.seen == nil {
		w.seen = map[string]bool{}
	}
	if name == "" || w.seen[name] {
		return
	}
	w.seen[name] = true
	w.refs = append(w.refs, name)
}

// walk visits node; rootDot reports whether "." still points at the template data.
func (w *walker) walk(node parse.Node, rootDot bool) {
	switch n := node.(type) {
	case *parse.ListNode:
		if n == nil {
			return
		}
		for _, child := range n.Nodes {
			w.walk(child, rootDot)
		}
	case *parse.ActionNode:
		w.pipe(n.Pipe, rootDot)
	case *parse.TemplateNode:
		w.pipe(n.Pipe, rootDot)
	case *parse.IfNode:
		w.branch(&n.BranchNode, rootDot, rootDot)
	case *parse.RangeNode:
		w.branch(&n.BranchNode, rootDot, false)
	case *parse.WithNode:
		w.branch(&n.BranchNode, rootDot, false)
	}
}

func (w *walker) branch(b *parse.BranchNode, rootDot, bodyRootDot bool) {
	w.pipe(b.Pipe, rootDot)
	w.walk(b.List, bodyRootDot)
	w.walk(b.ElseList, rootDot)
}

func (w *walker) pipe(p *parse.PipeNode, rootDot bool) {
	if p == nil {
		return
	}
	for _, cmd := range p.Cmds {
		for _, arg := range cmd.Args {
			w.arg(arg, rootDot)
		}
	}
}

func (w *walker) arg(node parse.Node, rootDot bool) {
	switch n := node.(type) {
	case *parse.FieldNode:
		if rootDot && len(n.Ident) > 0 {
			w.add(n.Ident[0])
		}
	case *parse.VariableNode:
		if len(n.Ident) > 1 && n.Ident[0] == "$" {
			w.add(n.Ident[1])
		}
	case *parse.ChainNode:
		w.arg(n.Node, rootDot)
	case *parse.PipeNode:
		w.pipe(n, rootDot)
	}
}

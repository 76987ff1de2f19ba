package engines

import (
	"reflect"
	"strings"
	"text/template"
	"text/template/parse"
)

const (
	leftDelim  = "{{"
	rightDelim = "}}"
)

// resolvedFunc is the name of the function guarding actions whose references can
// only be checked during execution.
const resolvedFunc = "resolved"

// unresolvedKeeper rewrites parse trees so that actions printing an unknown
// variable render to their own source text instead of "<no value>". References
// to the root context are checked before execution. References to a rebound dot
// and to declared variables are checked during execution by a guard.
type unresolvedKeeper struct {
	src  string
	data reflect.Value
}

// keepUnresolved makes every action of tmpl referencing a variable missing from
// data render to the action source. Declarations from missing variables are kept
// and their source is printed. src is the text tmpl was parsed from.
func keepUnresolved(tmpl *template.Template, src string, data any) {
	keeper := unresolvedKeeper{src: src, data: reflect.ValueOf(data)}
	for _, t := range tmpl.Templates() {
		if t.Tree != nil {
			keeper.walk(t.Tree.Root, true)
		}
	}
}

// walk processes list nodes. rooted is false inside range and with bodies,
// where dot is no longer the root context.
func (k unresolvedKeeper) walk(list *parse.ListNode, rooted bool) {
	if list == nil {
		return
	}
	nodes := make([]parse.Node, 0, len(list.Nodes))
	for _, node := range list.Nodes {
		switch n := node.(type) {
		case *parse.ActionNode:
			switch {
			case !k.unresolvedPipe(n.Pipe, rooted):
				if refs := runtimeRefs(n.Pipe, rooted); len(refs) > 0 {
					node = k.guard(n, refs)
				}
			case len(n.Pipe.Decl) > 0:
				// The declaration stays for the actions using the variable.
				nodes = append(nodes, n)
				node = k.sourceText(n)
			default:
				node = k.sourceText(n)
			}
		case *parse.IfNode:
			k.walk(n.List, rooted)
			k.walk(n.ElseList, rooted)
		case *parse.RangeNode:
			k.walk(n.List, false)
			k.walk(n.ElseList, rooted)
		case *parse.WithNode:
			k.walk(n.List, false)
			k.walk(n.ElseList, rooted)
		case *parse.ListNode:
			k.walk(n, rooted)
		}
		nodes = append(nodes, node)
	}
	list.Nodes = nodes
}

// sourceText returns a text node holding the source of n.
func (k unresolvedKeeper) sourceText(n *parse.ActionNode) *parse.TextNode {
	return &parse.TextNode{
		NodeType: parse.NodeText,
		Pos:      n.Pos,
		Text:     []byte(k.source(n)),
	}
}

// guard wraps n into {{ if resolved refs... }}n{{ else }}source of n{{ end }}.
func (k unresolvedKeeper) guard(n *parse.ActionNode, refs []parse.Node) *parse.IfNode {
	args := append([]parse.Node{parse.NewIdentifier(resolvedFunc).SetPos(n.Pos)}, refs...)
	cond := &parse.PipeNode{
		NodeType: parse.NodePipe,
		Pos:      n.Pos,
		Line:     n.Line,
		Cmds:     []*parse.CommandNode{{NodeType: parse.NodeCommand, Pos: n.Pos, Args: args}},
	}
	return &parse.IfNode{BranchNode: parse.BranchNode{
		NodeType: parse.NodeIf,
		Pos:      n.Pos,
		Line:     n.Line,
		Pipe:     cond,
		List:     &parse.ListNode{NodeType: parse.NodeList, Pos: n.Pos, Nodes: []parse.Node{n}},
		ElseList: &parse.ListNode{
			NodeType: parse.NodeList,
			Pos:      n.Pos,
			Nodes:    []parse.Node{k.sourceText(n)},
		},
	}}
}

// runtimeRefs returns the references of an output pipe which can not be checked
// before execution: fields and dot in bodies where dot is rebound, and variables
// other than $.
func runtimeRefs(pipe *parse.PipeNode, rooted bool) []parse.Node {
	if pipe == nil || len(pipe.Decl) > 0 {
		return nil
	}
	var refs []parse.Node
	for _, cmd := range pipe.Cmds {
		for i, arg := range cmd.Args {
			// A reference followed by arguments is called, not printed.
			if i == 0 && len(cmd.Args) > 1 {
				continue
			}
			switch n := arg.(type) {
			case *parse.FieldNode, *parse.DotNode:
				if !rooted {
					refs = append(refs, n)
				}
			case *parse.VariableNode:
				if n.Ident[0] != "$" {
					refs = append(refs, n)
				}
			case *parse.PipeNode:
				refs = append(refs, runtimeRefs(n, rooted)...)
			}
		}
	}
	return refs
}

// resolved reports whether all values are set. Missing keys and nulls are
// passed as nil.
func resolved(values ...any) bool {
	for _, value := range values {
		if value == nil {
			return false
		}
	}
	return true
}

func (k unresolvedKeeper) unresolvedPipe(pipe *parse.PipeNode, rooted bool) bool {
	if pipe == nil {
		return false
	}
	for _, cmd := range pipe.Cmds {
		for _, arg := range cmd.Args {
			if k.unresolvedArg(arg, rooted) {
				return true
			}
		}
	}
	return false
}

func (k unresolvedKeeper) unresolvedArg(arg parse.Node, rooted bool) bool {
	switch n := arg.(type) {
	case *parse.FieldNode:
		return rooted && !k.resolves(n.Ident)
	case *parse.VariableNode:
		return len(n.Ident) > 1 && n.Ident[0] == "$" && !k.resolves(n.Ident[1:])
	case *parse.PipeNode:
		return k.unresolvedPipe(n, rooted)
	case *parse.ChainNode:
		return k.unresolvedArg(n.Node, rooted)
	}
	return false
}

// resolves reports whether the field chain path leads to a non-nil value.
func (k unresolvedKeeper) resolves(path []string) bool {
	value := k.data
	for _, name := range path {
		value = indirect(value)
		if !value.IsValid() {
			return false
		}
		switch value.Kind() {
		case reflect.Map:
			keyType := value.Type().Key()
			if keyType.Kind() != reflect.String {
				return false
			}
			value = value.MapIndex(reflect.ValueOf(name).Convert(keyType))
		case reflect.Struct:
			if method := value.MethodByName(name); method.IsValid() {
				return true
			}
			field, ok := value.Type().FieldByName(name)
			if !ok || !field.IsExported() {
				return false
			}
			value = value.FieldByIndex(field.Index)
		default:
			return false
		}
	}
	return indirect(value).IsValid()
}

func indirect(value reflect.Value) reflect.Value {
	for value.IsValid() &&
		(value.Kind() == reflect.Interface || value.Kind() == reflect.Pointer) {
		if value.IsNil() {
			return reflect.Value{}
		}
		value = value.Elem()
	}
	return value
}

// source returns the text of the action exactly as written, delimiters and trim
// markers included.
func (k unresolvedKeeper) source(n *parse.ActionNode) string {
	pos := int(n.Pos)
	if pos > len(k.src) {
		return n.String()
	}
	start := strings.LastIndex(k.src[:pos], leftDelim)
	end := closingDelim(k.src, pos)
	if start < 0 || end < 0 {
		return n.String()
	}
	return k.src[start:end]
}

// closingDelim returns the offset right after the delimiter closing the action
// which continues at pos. Quoted strings are skipped. Returns -1 if there is none.
func closingDelim(src string, pos int) int {
	var quote byte
	for i := pos; i < len(src); i++ {
		c := src[i]
		switch {
		case quote != 0:
			if c == '\\' && quote != '`' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '`' || c == '\'':
			quote = c
		case strings.HasPrefix(src[i:], rightDelim):
			return i + len(rightDelim)
		}
	}
	return -1
}

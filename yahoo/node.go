package yahoo

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"
)

// Yahoo serves the same logical collection in several encodings: a JSON
// array, a numeric-keyed object carrying a "count" field, or a list whose
// elements are single-key objects. Node is a closed union over the JSON
// shapes so callers dispatch on the variant in one place instead of probing
// types at every call site.
type Node struct {
	kind nodeKind
	obj  map[string]Node
	arr  []Node
	str  string
	b    bool
}

type nodeKind int

const (
	kindAbsent nodeKind = iota
	kindNull
	kindObject
	kindArray
	kindString
	kindNumber
	kindBool
)

func (n *Node) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	*n = nodeFrom(raw)
	return nil
}

func nodeFrom(v any) Node {
	switch t := v.(type) {
	case nil:
		return Node{kind: kindNull}
	case bool:
		return Node{kind: kindBool, b: t}
	case string:
		return Node{kind: kindString, str: t}
	case json.Number:
		// The original text is kept so numeric identifiers survive intact.
		return Node{kind: kindNumber, str: t.String()}
	case []any:
		arr := make([]Node, len(t))
		for i, e := range t {
			arr[i] = nodeFrom(e)
		}
		return Node{kind: kindArray, arr: arr}
	case map[string]any:
		obj := make(map[string]Node, len(t))
		for k, e := range t {
			obj[k] = nodeFrom(e)
		}
		return Node{kind: kindObject, obj: obj}
	}
	return Node{}
}

func (n Node) Exists() bool   { return n.kind != kindAbsent }
func (n Node) IsObject() bool { return n.kind == kindObject }
func (n Node) IsArray() bool  { return n.kind == kindArray }

func (n Node) isScalar() bool {
	return n.kind == kindString || n.kind == kindNumber || n.kind == kindBool
}

// Field returns the named child of an object node, or an absent node.
func (n Node) Field(key string) Node {
	if n.kind != kindObject {
		return Node{}
	}
	return n.obj[key]
}

// Index returns the i-th element of an array node, or an absent node.
func (n Node) Index(i int) Node {
	if n.kind != kindArray || i < 0 || i >= len(n.arr) {
		return Node{}
	}
	return n.arr[i]
}

// String renders a scalar node as text. Numbers keep their original wire
// formatting, booleans render as "1"/"0", everything else is empty.
func (n Node) String() string {
	switch n.kind {
	case kindString, kindNumber:
		return n.str
	case kindBool:
		if n.b {
			return "1"
		}
		return "0"
	}
	return ""
}

// Items returns the elements of a collection regardless of whether it was
// encoded as a JSON array or as a numeric-keyed object with a "count" field.
// Numeric keys are visited in ascending order; non-numeric keys other than
// "count" are ignored. A non-collection node yields nil.
func (n Node) Items() []Node {
	switch n.kind {
	case kindArray:
		return n.arr
	case kindObject:
		type indexed struct {
			i int
			n Node
		}
		items := make([]indexed, 0, len(n.obj))
		for k, v := range n.obj {
			i, err := strconv.Atoi(k)
			if err != nil {
				continue
			}
			items = append(items, indexed{i: i, n: v})
		}
		sort.Slice(items, func(a, b int) bool { return items[a].i < items[b].i })
		out := make([]Node, len(items))
		for i, it := range items {
			out[i] = it.n
		}
		return out
	}
	return nil
}

// Flatten reduces a polymorphic entity node to a flat field-to-value map.
// Scalars are kept, nested objects and list elements are promoted into the
// parent, primitive-free peer collections stay out via the skip list, and the
// "count" bookkeeping field is always dropped. An absent or scalar node
// flattens to an empty map.
//
// Skip names fields whose subtree needs entity-specific handling (managers,
// players) and must not bleed into the flat map.
func (n Node) Flatten(skip ...string) map[string]string {
	out := make(map[string]string)
	skipped := make(map[string]bool, len(skip))
	for _, s := range skip {
		skipped[s] = true
	}
	n.flattenInto(out, skipped)
	return out
}

func (n Node) flattenInto(out map[string]string, skip map[string]bool) {
	switch n.kind {
	case kindObject:
		for k, v := range n.obj {
			if k == "count" || skip[k] {
				continue
			}
			switch {
			case v.kind == kindObject:
				v.flattenInto(out, skip)
			case v.isScalar():
				out[k] = v.String()
			}
		}
	case kindArray:
		for _, e := range n.arr {
			e.flattenInto(out, skip)
		}
	}
}

// findField walks the node depth-first and returns the first object child
// with the given name. Used for subtrees whose nesting depth varies between
// envelope encodings.
func findField(n Node, key string) Node {
	switch n.kind {
	case kindObject:
		if f := n.Field(key); f.Exists() {
			return f
		}
		for _, v := range n.obj {
			if f := findField(v, key); f.Exists() {
				return f
			}
		}
	case kindArray:
		for _, e := range n.arr {
			if f := findField(e, key); f.Exists() {
				return f
			}
		}
	}
	return Node{}
}

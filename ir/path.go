package ir

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Path is a parsed object path such as $.a.b[0], $.a[*].b or $..name.
type Path struct {
	IndexAll bool
	Index    *int
	Field    *string
	Subtree  bool
	Next     *Path
}

func (p *Path) String() string {
	buf := bytes.NewBuffer([]byte{'$'})
	x := p
	for x != nil {
		if x.Subtree {
			buf.WriteString("..")
			x = x.Next
			continue
		}
		if x.IndexAll {
			buf.WriteString("[*]")
			x = x.Next
			continue
		}
		if x.Field != nil {
			buf.WriteString("." + PathField(*x.Field))
			x = x.Next
			continue
		}
		if x.Index != nil {
			fmt.Fprintf(buf, "[%d]", *x.Index)
			x = x.Next
			continue
		}
		x = x.Next
	}
	return buf.String()
}

func ParsePath(p string) (*Path, error) {
	if len(p) == 0 || p[0] != '$' {
		return nil, fmt.Errorf("%w: path %q should start with '$'", ErrPath, p)
	}
	root := &Path{}
	if len(p) == 1 {
		return root, nil
	}
	if err := parseFrag(p[1:], root); err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrPath, p, err)
	}
	return root, nil
}

func parseFrag(frag string, parent *Path) error {
	if len(frag) == 0 {
		return nil
	}
	switch frag[0] {
	case '.':
		if len(frag) > 1 && frag[1] == '.' {
			parent.Subtree = true
			next := &Path{}
			if err := parseFrag(frag[2:], next); err != nil {
				return err
			}
			parent.Next = next
			return nil
		}
		field, rest, err := parseField(frag[1:])
		if err != nil {
			return err
		}
		parent.Field = &field
		if len(rest) == 0 {
			return nil
		}
		next := &Path{}
		if err := parseFrag(rest, next); err != nil {
			return err
		}
		parent.Next = next
		return nil
	case '[':
		i := strings.IndexByte(frag[1:], ']')
		if i == -1 {
			return fmt.Errorf("expected '[' <index> ']'")
		}
		index, all, err := parseIndex(frag[1 : i+1])
		if err != nil {
			return err
		}
		parent.IndexAll = all
		if !all {
			parent.Index = &index
		}
		if len(frag) == i+2 {
			return nil
		}
		next := &Path{}
		if err := parseFrag(frag[i+2:], next); err != nil {
			return err
		}
		parent.Next = next
		return nil
	default:
		return fmt.Errorf("expected '.' or '['")
	}
}

func parseIndex(is string) (index int, all bool, err error) {
	if len(is) == 1 && is[0] == '*' {
		return 0, true, nil
	}
	u64, err := strconv.ParseUint(is, 10, 32)
	if err != nil {
		return 0, false, err
	}
	return int(u64), false, nil
}

func parseField(frag string) (field, rest string, err error) {
	if len(frag) == 0 {
		return "", "", fmt.Errorf("expected field at end of string")
	}
	if frag[0] != '\'' {
		i := strings.IndexAny(frag, ".[")
		if i == -1 {
			return frag, "", nil
		}
		return frag[:i], frag[i:], nil
	}
	escaped := false
	res := make([]byte, 0, len(frag))
	for i := 1; i < len(frag); i++ {
		c := frag[i]
		switch c {
		case '\\':
			if escaped {
				res = append(res, c)
			}
			escaped = !escaped
		case '\'':
			if !escaped {
				return string(res), frag[i+1:], nil
			}
			fallthrough
		default:
			escaped = false
			res = append(res, c)
		}
	}
	return "", "", fmt.Errorf("end of string scanning for \"'\"")
}

// PathField renders a field as a path component, quoting it when needed.
func PathField(f string) string {
	if f != "" && strings.IndexAny(f, "'.*$[]\\") == -1 {
		return f
	}
	f = strings.ReplaceAll(f, "\\", "\\\\")
	return "'" + strings.ReplaceAll(f, "'", "\\'") + "'"
}

// GetPath returns the single node at yPath.  Wildcards are not allowed.
// If a field is missing it returns ErrNotFound.
func (y *Node) GetPath(yPath string) (*Node, error) {
	yp, err := ParsePath(yPath)
	if err != nil {
		return nil, err
	}
	res := y
	for yp != nil {
		if yp.IndexAll {
			return nil, fmt.Errorf("%w: any index in get", ErrPath)
		}
		if yp.Subtree {
			return nil, fmt.Errorf("%w: recurse .. in get", ErrPath)
		}
		if yp.Index != nil {
			if res.Type != ArrayType {
				return nil, fmt.Errorf("%w: expected array, got %s", ErrPath, res.Type)
			}
			index := *yp.Index
			if index >= len(res.Values) {
				return nil, fmt.Errorf("%w: index out of bounds %d (len %d)", ErrNotFound, index, len(res.Values))
			}
			res = res.Values[index]
			yp = yp.Next
			continue
		}
		if yp.Field != nil {
			if res.Type != ObjectType {
				return nil, fmt.Errorf("%w: expected object got %s", ErrPath, res.Type)
			}
			v := Get(res, *yp.Field)
			if v == nil {
				return nil, fmt.Errorf("%w: field %q", ErrNotFound, *yp.Field)
			}
			res = v
			yp = yp.Next
			continue
		}
		if yp.Next != nil {
			return nil, fmt.Errorf("%w: unexpected next w/out index or field", ErrPath)
		}
		break
	}
	return res, nil
}

// ListPath appends to dst every node matching yPath.  Fields matching
// duplicate keys all match.
func (y *Node) ListPath(dst []*Node, yPath string) ([]*Node, error) {
	yp, err := ParsePath(yPath)
	if err != nil {
		return nil, err
	}
	return y.listPath(dst, yp), nil
}

func (y *Node) listPath(dst []*Node, yp *Path) []*Node {
	if yp == nil {
		return append(dst, y)
	}
	if yp.Subtree {
		_ = y.Visit(func(node *Node, isPost bool) (bool, error) {
			if isPost {
				return false, nil
			}
			dst = node.listPath(dst, yp.Next)
			return !node.Type.IsLeaf(), nil
		})
		return dst
	}
	switch y.Type {
	case ObjectType:
		if yp.IndexAll || yp.Index != nil {
			return dst
		}
		if yp.Field == nil {
			if yp.Next == nil {
				return append(dst, y)
			}
			return dst
		}
		for i := range y.Fields {
			if y.Fields[i].String != *yp.Field {
				continue
			}
			dst = y.Values[i].listPath(dst, yp.Next)
		}
		return dst

	case ArrayType:
		if yp.Field != nil {
			return dst
		}
		if yp.Index != nil {
			idx := *yp.Index
			if idx < len(y.Values) {
				dst = y.Values[idx].listPath(dst, yp.Next)
			}
			return dst
		}
		if !yp.IndexAll {
			if yp.Next == nil {
				return append(dst, y)
			}
			return dst
		}
		for _, yv := range y.Values {
			dst = yv.listPath(dst, yp.Next)
		}
		return dst

	default:
		if yp.Field != nil || yp.Index != nil || yp.IndexAll {
			return dst
		}
		if yp.Next == nil {
			return append(dst, y)
		}
		return dst
	}
}

// Paths returns the path of every value below y in document order.  Keys
// repeated in an object give repeated paths.
func (y *Node) Paths() []string {
	var res []string
	var walk func(n *Node, p string)
	walk = func(n *Node, p string) {
		for i, v := range n.Values {
			var vp string
			if n.Type == ObjectType {
				vp = p + "." + PathField(n.Fields[i].String)
			} else {
				vp = p + "[" + strconv.Itoa(i) + "]"
			}
			res = append(res, vp)
			walk(v, vp)
		}
	}
	walk(y, "$")
	return res
}

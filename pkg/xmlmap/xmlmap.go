package xmlmap

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	// AttrPrefix marks attribute keys.
	AttrPrefix = "@"
	// TextKey holds the text of an element that also has children or attributes.
	TextKey = "#text"
)

type node struct {
	name     string
	attrs    map[string]any
	children map[string]any
	text     strings.Builder
}

func (n *node) add(name string, v any) {
	if n.children == nil {
		n.children = make(map[string]any)
	}
	existing, ok := n.children[name]
	if !ok {
		n.children[name] = v
		return
	}
	if list, ok := existing.([]any); ok {
		n.children[name] = append(list, v)
		return
	}
	n.children[name] = []any{existing, v}
}

func (n *node) value() any {
	text := strings.TrimSpace(n.text.String())
	if n.children == nil && n.attrs == nil {
		return text
	}
	out := make(map[string]any, len(n.children)+len(n.attrs)+1)
	for k, v := range n.attrs {
		out[k] = v
	}
	for k, v := range n.children {
		out[k] = v
	}
	if text != "" {
		out[TextKey] = text
	}
	return out
}

func qualified(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

func isNamespaceDecl(a xml.Attr) bool {
	return (a.Name.Space == "" && a.Name.Local == "xmlns") || a.Name.Space == "xmlns"
}

// Parse decodes doc into nested maps. The returned map has exactly one key,
// the root element's name.
func Parse(doc string) (map[string]any, error) {
	return Decode(strings.NewReader(doc))
}

// Decode is Parse over a reader.
func Decode(r io.Reader) (map[string]any, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = true

	var (
		stack []*node
		root  map[string]any
	)

	for {
		// RawToken keeps prefixes as written instead of resolving them to
		// namespace URIs, so element matching is checked by hand.
		tok, err := dec.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if root != nil {
				return nil, fmt.Errorf("%w: content after root element", ErrMalformed)
			}
			n := &node{name: qualified(t.Name)}
			for _, a := range t.Attr {
				if isNamespaceDecl(a) {
					continue
				}
				if n.attrs == nil {
					n.attrs = make(map[string]any)
				}
				n.attrs[AttrPrefix+qualified(a.Name)] = a.Value
			}
			stack = append(stack, n)

		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("%w: unexpected </%s>", ErrMalformed, qualified(t.Name))
			}
			n := stack[len(stack)-1]
			if name := qualified(t.Name); name != n.name {
				return nil, fmt.Errorf("%w: <%s> closed by </%s>", ErrMalformed, n.name, name)
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				root = map[string]any{n.name: n.value()}
				continue
			}
			stack[len(stack)-1].add(n.name, n.value())

		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			} else if strings.TrimSpace(string(t)) != "" {
				return nil, fmt.Errorf("%w: text outside root element", ErrMalformed)
			}
		}
	}

	if len(stack) > 0 {
		return nil, fmt.Errorf("%w: <%s> is not closed", ErrMalformed, stack[len(stack)-1].name)
	}
	if root == nil {
		return nil, ErrEmptyDocument
	}
	return root, nil
}

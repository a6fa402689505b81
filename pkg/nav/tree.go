// Package nav holds the navigation tree of the application shell: a static,
// validated hierarchy of groups and leaves, each leaf bound to a view type.
package nav

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed navigation.yaml
var declaration []byte

// Tree is a loaded and validated navigation tree. It is never mutated after
// construction and is safe for concurrent use. Accessors return copies.
type Tree struct {
	root Node
	idx  *index
}

// Load parses and validates the embedded navigation declaration.
func Load() (*Tree, error) {
	return Parse(declaration)
}

// LoadFile parses and validates the navigation declaration at path.
func LoadFile(path string) (*Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read navigation tree %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML or JSON declaration and validates it.
// Input starting with '{' is treated as JSON. Unknown attributes, repeated
// keys and anything after the root are rejected.
func Parse(data []byte) (*Tree, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, malformed(rootPath, "empty declaration")
	}

	var (
		root Node
		err  error
	)
	if trimmed[0] == '{' {
		root, err = decodeJSON(trimmed)
	} else {
		root, err = decodeYAML(trimmed)
	}
	if err != nil {
		return nil, err
	}

	return New(root)
}

func decodeJSON(data []byte) (Node, error) {
	var root Node

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&root); err != nil {
		return Node{}, malformed(rootPath, "invalid JSON declaration: %v", err)
	}
	if err := dec.Decode(&json.RawMessage{}); !errors.Is(err, io.EOF) {
		return Node{}, malformed(rootPath, "unexpected data after the root")
	}

	// encoding/json keeps the last of repeated keys; yaml.v3 rejects them
	if err := checkDuplicateKeys(json.NewDecoder(bytes.NewReader(data)), rootPath); err != nil {
		return Node{}, err
	}

	return root, nil
}

func decodeYAML(data []byte) (Node, error) {
	var root Node

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return Node{}, malformed(rootPath, "empty declaration")
		}
		return Node{}, malformed(rootPath, "invalid YAML declaration: %v", err)
	}

	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return Node{}, malformed(rootPath, "unexpected data after the root")
	}

	return root, nil
}

// checkDuplicateKeys walks one JSON value token by token and fails on the
// first object that repeats a key. path is the JSON location of the value.
func checkDuplicateKeys(dec *json.Decoder, path string) error {
	tok, err := dec.Token()
	if err != nil {
		return malformed(rootPath, "invalid JSON declaration: %v", err)
	}

	switch tok {
	case json.Delim('{'):
		seen := map[string]bool{}
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return malformed(rootPath, "invalid JSON declaration: %v", err)
			}
			key, _ := keyTok.(string)
			if seen[key] {
				return malformed(path, "duplicate key %q", key)
			}
			seen[key] = true
			if err := checkDuplicateKeys(dec, strings.TrimSuffix(path, "/")+"/"+key); err != nil {
				return err
			}
		}
	case json.Delim('['):
		for i := 0; dec.More(); i++ {
			if err := checkDuplicateKeys(dec, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
	default:
		return nil
	}

	// closing delimiter
	if _, err := dec.Token(); err != nil {
		return malformed(rootPath, "invalid JSON declaration: %v", err)
	}
	return nil
}

// New validates root and returns the tree built from a deep copy of it.
// The root is always expanded.
func New(root Node) (*Tree, error) {
	idx, err := validate(root)
	if err != nil {
		return nil, err
	}

	r := root.clone()
	r.Expanded = true

	return &Tree{root: r, idx: idx}, nil
}

// Root returns a copy of the root node.
func (t *Tree) Root() Node {
	return t.root.clone()
}

// Len returns the number of leaves.
func (t *Tree) Len() int {
	return len(t.idx.views)
}

// FindByViewType returns the leaf bound to viewType.
// The second result is false when no leaf matches; that is not an error,
// deep links may target views that are not in the menu.
func (t *Tree) FindByViewType(viewType string) (Node, bool) {
	at, ok := t.idx.views[viewType]
	if !ok {
		return Node{}, false
	}
	trail := t.follow(at)
	return trail[len(trail)-1], true
}

// FindByRouteID returns the leaf whose effective route is routeID.
func (t *Tree) FindByRouteID(routeID string) (Node, bool) {
	viewType, ok := t.idx.routes[routeID]
	if !ok {
		return Node{}, false
	}
	return t.FindByViewType(viewType)
}

// Trail returns the nodes from the top-level group down to the leaf bound
// to viewType. The root is not included.
func (t *Tree) Trail(viewType string) ([]Node, bool) {
	at, ok := t.idx.views[viewType]
	if !ok {
		return nil, false
	}
	return t.follow(at), true
}

func (t *Tree) follow(at []int) []Node {
	trail := make([]Node, 0, len(at))
	cur := &t.root
	for _, i := range at {
		cur = &cur.Children[i]
		trail = append(trail, cur.clone())
	}
	return trail
}

// Walk visits every node below the root in declaration order, depth first.
// path holds the labels from the top-level group down to and including n.
// Walk stops at the first error fn returns and returns it.
func (t *Tree) Walk(fn func(path []string, n Node) error) error {
	return walk(t.root.Children, nil, fn)
}

func walk(nodes []Node, parent []string, fn func([]string, Node) error) error {
	for i := range nodes {
		path := append(append(make([]string, 0, len(parent)+1), parent...), nodes[i].Text)
		if err := fn(path, nodes[i].clone()); err != nil {
			return err
		}
		if err := walk(nodes[i].Children, path, fn); err != nil {
			return err
		}
	}
	return nil
}

// Leaves returns all leaves in declaration order.
func (t *Tree) Leaves() []Node {
	leaves := make([]Node, 0, t.Len())
	_ = t.Walk(func(_ []string, n Node) error {
		if n.Leaf {
			leaves = append(leaves, n)
		}
		return nil
	})
	return leaves
}

// MarshalJSON encodes the root node.
func (t *Tree) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.root)
}

// MarshalYAML encodes the root node.
func (t *Tree) MarshalYAML() (any, error) {
	return t.root, nil
}

package nav

import (
	"fmt"
	"strings"
)

const rootPath = "/"

// index maps leaves to their position in the tree so lookups do not walk it.
type index struct {
	views  map[string][]int  // viewType -> child indexes from the root
	routes map[string]string // effective route -> viewType
	paths  map[string]string // viewType -> label path, for error reporting
}

// validate checks every invariant of the tree and builds the lookup index.
// The first violation found in declaration order is returned.
func validate(root Node) (*index, error) {
	if root.Text != "" {
		return nil, malformed(rootPath, "root must not declare text (got %q)", root.Text)
	}
	if root.IconCls != "" {
		return nil, malformed(rootPath, "root must not declare iconCls")
	}
	if root.ViewType != "" || root.RouteID != "" {
		return nil, malformed(rootPath, "root must not declare viewType or routeId")
	}
	if root.Leaf {
		return nil, malformed(rootPath, "root must not be a leaf")
	}
	if len(root.Children) == 0 {
		return nil, malformed(rootPath, "root has no children")
	}

	idx := &index{
		views:  map[string][]int{},
		routes: map[string]string{},
		paths:  map[string]string{},
	}

	for i := range root.Children {
		if err := idx.visit(root.Children[i], "", []int{i}); err != nil {
			return nil, err
		}
	}

	return idx, nil
}

func (idx *index) visit(n Node, parent string, at []int) error {
	path := childPath(parent, n, at[len(at)-1])

	if strings.TrimSpace(n.Text) == "" {
		return malformed(path, "text is required")
	}

	if n.Leaf {
		return idx.leaf(n, path, at)
	}

	if n.ViewType != "" {
		return malformed(path, "group declares viewType %q (missing leaf: true?)", n.ViewType)
	}
	if n.RouteID != "" {
		return malformed(path, "group declares routeId %q", n.RouteID)
	}
	if len(n.Children) == 0 {
		return malformed(path, "group has no children")
	}

	for i := range n.Children {
		next := append(append(make([]int, 0, len(at)+1), at...), i)
		if err := idx.visit(n.Children[i], path, next); err != nil {
			return err
		}
	}

	return nil
}

func (idx *index) leaf(n Node, path string, at []int) error {
	if len(n.Children) > 0 {
		return malformed(path, "leaf has %d children", len(n.Children))
	}
	if strings.TrimSpace(n.ViewType) == "" {
		return malformed(path, "leaf requires a viewType")
	}
	if first, ok := idx.paths[n.ViewType]; ok {
		return malformed(path, "duplicate viewType %q (first declared at %s)", n.ViewType, first)
	}
	if other, ok := idx.routes[n.Route()]; ok {
		return malformed(path, "route %q already used by viewType %q", n.Route(), other)
	}

	idx.views[n.ViewType] = at
	idx.routes[n.Route()] = n.ViewType
	idx.paths[n.ViewType] = path

	return nil
}

func childPath(parent string, n Node, i int) string {
	seg := n.Text
	if strings.TrimSpace(seg) == "" {
		seg = fmt.Sprintf("[%d]", i)
	}
	return parent + "/" + seg
}

package nav

// Node represents a single entry in the navigation tree.
// A node is either a leaf bound to a view or a group holding children.
type Node struct {
	// Text is the display label. Empty only on the root.
	Text string `json:"text,omitempty" yaml:"text,omitempty"`

	// IconCls is the symbolic icon identifier, e.g. "x-fa fa-table".
	IconCls string `json:"iconCls,omitempty" yaml:"iconCls,omitempty"`

	// Expanded is the initial expand state. The root is always expanded.
	Expanded bool `json:"expanded,omitempty" yaml:"expanded,omitempty"`

	// Selectable overrides the default selectability when set.
	// Use IsSelectable to read the effective value.
	Selectable *bool `json:"selectable,omitempty" yaml:"selectable,omitempty"`

	// ViewType identifies the view a leaf activates.
	ViewType string `json:"viewType,omitempty" yaml:"viewType,omitempty"`

	// RouteID is the deep-link route of a leaf. Defaults to ViewType.
	RouteID string `json:"routeId,omitempty" yaml:"routeId,omitempty"`

	// Leaf marks nodes without children.
	Leaf bool `json:"leaf,omitempty" yaml:"leaf,omitempty"`

	// Children are the ordered sub-entries of a group.
	Children []Node `json:"children,omitempty" yaml:"children,omitempty"`
}

// IsSelectable returns the effective selectability: the explicit value when
// declared, otherwise true for leaves and false for groups.
func (n Node) IsSelectable() bool {
	if n.Selectable != nil {
		return *n.Selectable
	}
	return n.Leaf
}

// Route returns the deep-link route of the node.
func (n Node) Route() string {
	if n.RouteID != "" {
		return n.RouteID
	}
	return n.ViewType
}

// clone returns a deep copy of the node.
func (n Node) clone() Node {
	c := n
	if n.Selectable != nil {
		v := *n.Selectable
		c.Selectable = &v
	}
	if n.Children != nil {
		c.Children = make([]Node, len(n.Children))
		for i := range n.Children {
			c.Children[i] = n.Children[i].clone()
		}
	}
	return c
}

// Bool returns a pointer to v, for declaring Selectable in literals.
func Bool(v bool) *bool {
	return &v
}

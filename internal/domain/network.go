package domain

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateElement = errors.New("duplicate element id")
	ErrUnknownElement   = errors.New("unknown element id")
)

// PortName names the side of an element a link attaches to
type PortName string

const (
	PortMain   PortName = "main"
	PortInlet  PortName = "inlet"
	PortOutlet PortName = "outlet"
	PortBranch PortName = "branch"
	PortRight  PortName = "right"
	PortLeft   PortName = "left"
)

// Link records that air leaves From and enters To. Links are informational;
// no computation walks them.
type Link struct {
	From string   `json:"from" yaml:"from"`
	To   string   `json:"to" yaml:"to"`
	Port PortName `json:"port,omitempty" yaml:"port,omitempty"`
}

// Key returns a readable identifier for the link
func (l Link) Key() string {
	if l.Port == "" || l.Port == PortMain {
		return l.From + "->" + l.To
	}
	return fmt.Sprintf("%s.%s->%s", l.From, l.Port, l.To)
}

// Network is an ordered set of elements keyed by unique ID
type Network struct {
	Name        string
	Description string
	Links       []Link

	elements []Element
	index    map[string]Element
}

func NewNetwork(name string) *Network {
	return &Network{
		Name:  name,
		index: make(map[string]Element),
	}
}

// Add appends an element. IDs must be unique and non-empty.
func (n *Network) Add(e Element) error {
	id := e.ID()
	if id == "" {
		return fmt.Errorf("%s element without id", e.Kind())
	}
	if _, ok := n.index[id]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateElement, id)
	}
	n.elements = append(n.elements, e)
	n.index[id] = e
	return nil
}

// Element returns an element by ID, or nil if not found
func (n *Network) Element(id string) Element {
	return n.index[id]
}

// Elements returns the elements in insertion order
func (n *Network) Elements() []Element {
	out := make([]Element, len(n.elements))
	copy(out, n.elements)
	return out
}

func (n *Network) Len() int {
	return len(n.elements)
}

// Connect records a link between two known elements
func (n *Network) Connect(from, to string, port PortName) error {
	for _, id := range []string{from, to} {
		if _, ok := n.index[id]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownElement, id)
		}
	}
	if port == "" {
		port = PortMain
	}
	n.Links = append(n.Links, Link{From: from, To: to, Port: port})
	return nil
}

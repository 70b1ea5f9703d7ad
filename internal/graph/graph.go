// Package graph holds the in-memory strategy graph and its mutation rules.
// A Graph is a pure value: every operation returns a fresh snapshot and leaves
// the receiver untouched, so callers can keep, discard, or diff snapshots and
// concurrent readers never observe partial mutation.
package graph

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/oGrizz34/quant-canvas/internal/catalog"
)

var (
	ErrNotFound    = errors.New("node not found")
	ErrInvalidPort = errors.New("invalid port")
)

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Node struct {
	ID       string
	Kind     catalog.Kind
	Position Position
	Config   catalog.Config
}

// Edge is directed from an output port to an input port.
type Edge struct {
	ID         string
	SourceNode string
	SourcePort string
	TargetNode string
	TargetPort string
}

type Graph struct {
	Nodes []Node
	Edges []Edge
}

// AddNode appends a node with a fresh id. Omitted config fields take the
// catalog defaults. The only failure mode is an unknown kind.
func (g Graph) AddNode(kind catalog.Kind, pos Position, partial map[string]any) (Graph, Node, error) {
	cfg, err := catalog.DefaultConfig(kind)
	if err != nil {
		return g, Node{}, err
	}
	if len(partial) > 0 {
		cfg, err = catalog.MergeConfig(kind, cfg, partial)
		if err != nil {
			return g, Node{}, err
		}
	}
	node := Node{
		ID:       uuid.NewString(),
		Kind:     kind,
		Position: pos,
		Config:   cfg,
	}
	out := g.clone()
	out.Nodes = append(out.Nodes, node)
	return out, node, nil
}

func (g Graph) MoveNode(id string, pos Position) (Graph, error) {
	idx := g.nodeIndex(id)
	if idx < 0 {
		return g, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	out := g.clone()
	out.Nodes[idx].Position = pos
	return out, nil
}

// UpdateNodeConfig merges partial over the node's current config, with
// catalog clamping and defaulting applied.
func (g Graph) UpdateNodeConfig(id string, partial map[string]any) (Graph, error) {
	idx := g.nodeIndex(id)
	if idx < 0 {
		return g, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	node := g.Nodes[idx]
	cfg, err := catalog.MergeConfig(node.Kind, node.Config, partial)
	if err != nil {
		return g, err
	}
	out := g.clone()
	out.Nodes[idx].Config = cfg
	return out, nil
}

// Connect adds a directed edge. The source port must be an output port and
// the target port an input port of the respective node's profile; an empty
// port name resolves to the profile's sole port of that direction. Duplicate
// edges between the same ports are allowed and stay distinct, matching the
// canvas editor, which never deduplicates wires.
func (g Graph) Connect(sourceNode, sourcePort, targetNode, targetPort string) (Graph, Edge, error) {
	srcIdx := g.nodeIndex(sourceNode)
	if srcIdx < 0 {
		return g, Edge{}, fmt.Errorf("%w: source %q", ErrNotFound, sourceNode)
	}
	dstIdx := g.nodeIndex(targetNode)
	if dstIdx < 0 {
		return g, Edge{}, fmt.Errorf("%w: target %q", ErrNotFound, targetNode)
	}
	srcDesc, err := catalog.Describe(g.Nodes[srcIdx].Kind)
	if err != nil {
		return g, Edge{}, err
	}
	dstDesc, err := catalog.Describe(g.Nodes[dstIdx].Kind)
	if err != nil {
		return g, Edge{}, err
	}
	srcPort, ok := resolvePort(sourcePort, srcDesc.OutputPorts)
	if !ok {
		return g, Edge{}, fmt.Errorf("%w: %q is not an output port of %s", ErrInvalidPort, sourcePort, g.Nodes[srcIdx].Kind)
	}
	dstPort, ok := resolvePort(targetPort, dstDesc.InputPorts)
	if !ok {
		return g, Edge{}, fmt.Errorf("%w: %q is not an input port of %s", ErrInvalidPort, targetPort, g.Nodes[dstIdx].Kind)
	}
	edge := Edge{
		ID:         uuid.NewString(),
		SourceNode: sourceNode,
		SourcePort: srcPort,
		TargetNode: targetNode,
		TargetPort: dstPort,
	}
	out := g.clone()
	out.Edges = append(out.Edges, edge)
	return out, edge, nil
}

// DeleteNode removes the node and every edge touching it. No-op when absent.
func (g Graph) DeleteNode(id string) Graph {
	if g.nodeIndex(id) < 0 {
		return g.clone()
	}
	out := Graph{
		Nodes: make([]Node, 0, len(g.Nodes)-1),
		Edges: make([]Edge, 0, len(g.Edges)),
	}
	for _, n := range g.Nodes {
		if n.ID != id {
			out.Nodes = append(out.Nodes, n)
		}
	}
	for _, e := range g.Edges {
		if e.SourceNode != id && e.TargetNode != id {
			out.Edges = append(out.Edges, e)
		}
	}
	return out
}

// DeleteEdge removes the edge. No-op when absent.
func (g Graph) DeleteEdge(id string) Graph {
	out := g.clone()
	for i, e := range out.Edges {
		if e.ID == id {
			out.Edges = append(out.Edges[:i], out.Edges[i+1:]...)
			break
		}
	}
	return out
}

func (g Graph) FindNode(id string) (Node, bool) {
	idx := g.nodeIndex(id)
	if idx < 0 {
		return Node{}, false
	}
	return g.Nodes[idx], true
}

// Equal reports structural equality over nodes and edges, ignoring container
// order. Duplicate edges differ by id, so id-keyed comparison is exact.
func Equal(a, b Graph) bool {
	if len(a.Nodes) != len(b.Nodes) || len(a.Edges) != len(b.Edges) {
		return false
	}
	nodes := make(map[string]Node, len(a.Nodes))
	for _, n := range a.Nodes {
		nodes[n.ID] = n
	}
	for _, n := range b.Nodes {
		if other, ok := nodes[n.ID]; !ok || other != n {
			return false
		}
	}
	edges := make(map[string]Edge, len(a.Edges))
	for _, e := range a.Edges {
		edges[e.ID] = e
	}
	for _, e := range b.Edges {
		if other, ok := edges[e.ID]; !ok || other != e {
			return false
		}
	}
	return true
}

func (g Graph) nodeIndex(id string) int {
	for i, n := range g.Nodes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

func (g Graph) clone() Graph {
	out := Graph{}
	if len(g.Nodes) > 0 {
		out.Nodes = append(make([]Node, 0, len(g.Nodes)), g.Nodes...)
	}
	if len(g.Edges) > 0 {
		out.Edges = append(make([]Edge, 0, len(g.Edges)), g.Edges...)
	}
	return out
}

func resolvePort(name string, ports []string) (string, bool) {
	if name == "" {
		if len(ports) == 1 {
			return ports[0], true
		}
		return "", false
	}
	for _, p := range ports {
		if p == name {
			return name, true
		}
	}
	return "", false
}

package graph

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/oGrizz34/quant-canvas/internal/catalog"
)

// ErrCorruptDocument marks a persisted graph that violates a structural
// invariant. Unknown node kinds surface as catalog.ErrUnknownKind instead so
// a strategy is never silently stripped of a component on reload.
var ErrCorruptDocument = errors.New("corrupt strategy document")

// Document is the persisted form of a Graph: exactly the node and edge lists,
// nothing derived or transient.
type Document struct {
	Nodes []NodeRecord `json:"nodes"`
	Edges []EdgeRecord `json:"edges"`
}

type NodeRecord struct {
	ID       string          `json:"id"`
	Kind     string          `json:"kind"`
	Position Position        `json:"position"`
	Config   json.RawMessage `json:"config,omitempty"`
}

type EdgeRecord struct {
	ID         string `json:"id"`
	Source     string `json:"source"`
	SourcePort string `json:"source_port"`
	Target     string `json:"target"`
	TargetPort string `json:"target_port"`
}

// Serialize maps a graph onto its persisted document. Configs are plain
// structs, so marshaling cannot fail.
func Serialize(g Graph) Document {
	doc := Document{
		Nodes: make([]NodeRecord, 0, len(g.Nodes)),
		Edges: make([]EdgeRecord, 0, len(g.Edges)),
	}
	for _, n := range g.Nodes {
		raw, _ := json.Marshal(n.Config)
		doc.Nodes = append(doc.Nodes, NodeRecord{
			ID:       n.ID,
			Kind:     string(n.Kind),
			Position: n.Position,
			Config:   raw,
		})
	}
	for _, e := range g.Edges {
		doc.Edges = append(doc.Edges, EdgeRecord{
			ID:         e.ID,
			Source:     e.SourceNode,
			SourcePort: e.SourcePort,
			Target:     e.TargetNode,
			TargetPort: e.TargetPort,
		})
	}
	return doc
}

// Deserialize rebuilds a graph from a document, validating every structural
// invariant: unique ids, known kinds, edge referential integrity, and port
// direction. The document is never repaired; any violation fails the load.
func Deserialize(doc Document) (Graph, error) {
	g := Graph{}
	if len(doc.Nodes) > 0 {
		g.Nodes = make([]Node, 0, len(doc.Nodes))
	}
	seen := make(map[string]catalog.Kind, len(doc.Nodes))
	for _, rec := range doc.Nodes {
		if rec.ID == "" {
			return Graph{}, fmt.Errorf("%w: node without id", ErrCorruptDocument)
		}
		if _, dup := seen[rec.ID]; dup {
			return Graph{}, fmt.Errorf("%w: duplicate node id %q", ErrCorruptDocument, rec.ID)
		}
		kind := catalog.Kind(rec.Kind)
		if !catalog.Known(kind) {
			return Graph{}, fmt.Errorf("%w: %q (node %q)", catalog.ErrUnknownKind, rec.Kind, rec.ID)
		}
		var raw map[string]any
		if len(rec.Config) > 0 {
			if err := json.Unmarshal(rec.Config, &raw); err != nil {
				return Graph{}, fmt.Errorf("%w: node %q config: %v", ErrCorruptDocument, rec.ID, err)
			}
		}
		cfg, err := catalog.ParseConfig(kind, raw)
		if err != nil {
			return Graph{}, err
		}
		seen[rec.ID] = kind
		g.Nodes = append(g.Nodes, Node{
			ID:       rec.ID,
			Kind:     kind,
			Position: rec.Position,
			Config:   cfg,
		})
	}

	if len(doc.Edges) > 0 {
		g.Edges = make([]Edge, 0, len(doc.Edges))
	}
	edgeIDs := make(map[string]struct{}, len(doc.Edges))
	for _, rec := range doc.Edges {
		if rec.ID == "" {
			return Graph{}, fmt.Errorf("%w: edge without id", ErrCorruptDocument)
		}
		if _, dup := edgeIDs[rec.ID]; dup {
			return Graph{}, fmt.Errorf("%w: duplicate edge id %q", ErrCorruptDocument, rec.ID)
		}
		srcKind, ok := seen[rec.Source]
		if !ok {
			return Graph{}, fmt.Errorf("%w: edge %q references missing node %q", ErrCorruptDocument, rec.ID, rec.Source)
		}
		dstKind, ok := seen[rec.Target]
		if !ok {
			return Graph{}, fmt.Errorf("%w: edge %q references missing node %q", ErrCorruptDocument, rec.ID, rec.Target)
		}
		srcDesc, _ := catalog.Describe(srcKind)
		dstDesc, _ := catalog.Describe(dstKind)
		srcPort, ok := resolvePort(rec.SourcePort, srcDesc.OutputPorts)
		if !ok {
			return Graph{}, fmt.Errorf("%w: edge %q: %q is not an output port of %s", ErrCorruptDocument, rec.ID, rec.SourcePort, srcKind)
		}
		dstPort, ok := resolvePort(rec.TargetPort, dstDesc.InputPorts)
		if !ok {
			return Graph{}, fmt.Errorf("%w: edge %q: %q is not an input port of %s", ErrCorruptDocument, rec.ID, rec.TargetPort, dstKind)
		}
		edgeIDs[rec.ID] = struct{}{}
		g.Edges = append(g.Edges, Edge{
			ID:         rec.ID,
			SourceNode: rec.Source,
			SourcePort: srcPort,
			TargetNode: rec.Target,
			TargetPort: dstPort,
		})
	}
	return g, nil
}

// ParseDocument decodes raw persisted content. Malformed JSON is a corrupt
// document, not a transport error.
func ParseDocument(raw []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	return doc, nil
}

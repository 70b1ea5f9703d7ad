package graph

import (
	"errors"
	"testing"

	"github.com/oGrizz34/quant-canvas/internal/catalog"
)

func mustAdd(t *testing.T, g Graph, kind catalog.Kind, partial map[string]any) (Graph, Node) {
	t.Helper()
	out, node, err := g.AddNode(kind, Position{}, partial)
	if err != nil {
		t.Fatalf("AddNode(%s): %v", kind, err)
	}
	return out, node
}

func TestAddNodeDefaultsAndOverrides(t *testing.T) {
	g, price := mustAdd(t, Graph{}, catalog.KindPrice, nil)
	if price.ID == "" {
		t.Fatal("node id not assigned")
	}
	if price.Config.(catalog.PriceConfig).Ticker != "SPY" {
		t.Fatalf("default ticker = %q", price.Config.(catalog.PriceConfig).Ticker)
	}

	g, rsi := mustAdd(t, g, catalog.KindRSI, map[string]any{"period": 7})
	if rsi.Config.(catalog.RSIConfig).Period != 7 {
		t.Fatalf("rsi period = %d, want 7", rsi.Config.(catalog.RSIConfig).Period)
	}
	if len(g.Nodes) != 2 {
		t.Fatalf("node count = %d, want 2", len(g.Nodes))
	}
}

func TestAddNodeUnknownKind(t *testing.T) {
	_, _, err := Graph{}.AddNode(catalog.Kind("bogus"), Position{}, nil)
	if !errors.Is(err, catalog.ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestSnapshotIsolation(t *testing.T) {
	g1, price := mustAdd(t, Graph{}, catalog.KindPrice, nil)
	g2, _ := mustAdd(t, g1, catalog.KindRSI, nil)

	if len(g1.Nodes) != 1 {
		t.Fatalf("earlier snapshot mutated: %d nodes", len(g1.Nodes))
	}

	g3, err := g2.MoveNode(price.ID, Position{X: 10, Y: 20})
	if err != nil {
		t.Fatalf("MoveNode: %v", err)
	}
	before, _ := g2.FindNode(price.ID)
	after, _ := g3.FindNode(price.ID)
	if before.Position != (Position{}) {
		t.Fatalf("old snapshot position changed: %+v", before.Position)
	}
	if after.Position != (Position{X: 10, Y: 20}) {
		t.Fatalf("new snapshot position = %+v", after.Position)
	}
}

func TestMoveNodeMissing(t *testing.T) {
	_, err := Graph{}.MoveNode("nope", Position{X: 1})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateNodeConfigMergesAndClamps(t *testing.T) {
	g, rsi := mustAdd(t, Graph{}, catalog.KindRSI, nil)
	g2, err := g.UpdateNodeConfig(rsi.ID, map[string]any{"period": 5000})
	if err != nil {
		t.Fatalf("UpdateNodeConfig: %v", err)
	}
	updated, _ := g2.FindNode(rsi.ID)
	if updated.Config.(catalog.RSIConfig).Period != catalog.MaxPeriod {
		t.Fatalf("period = %d, want clamped %d", updated.Config.(catalog.RSIConfig).Period, catalog.MaxPeriod)
	}
	original, _ := g.FindNode(rsi.ID)
	if original.Config.(catalog.RSIConfig).Period != catalog.DefaultRSIPeriod {
		t.Fatal("old snapshot config mutated")
	}
}

func TestConnectResolvesSolePorts(t *testing.T) {
	g, price := mustAdd(t, Graph{}, catalog.KindPrice, nil)
	g, action := mustAdd(t, g, catalog.KindAction, nil)

	g2, edge, err := g.Connect(price.ID, "", action.ID, "")
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if edge.SourcePort != catalog.PortOut || edge.TargetPort != catalog.PortIn {
		t.Fatalf("resolved ports = %q -> %q", edge.SourcePort, edge.TargetPort)
	}
	if len(g2.Edges) != 1 || len(g.Edges) != 0 {
		t.Fatalf("edge counts: new %d old %d", len(g2.Edges), len(g.Edges))
	}
}

func TestConnectRejectsWrongDirection(t *testing.T) {
	g, price := mustAdd(t, Graph{}, catalog.KindPrice, nil)
	g, rsi := mustAdd(t, g, catalog.KindRSI, nil)
	g, action := mustAdd(t, g, catalog.KindAction, nil)

	// price has no input ports
	if _, _, err := g.Connect(rsi.ID, "", price.ID, ""); !errors.Is(err, ErrInvalidPort) {
		t.Fatalf("into price: expected ErrInvalidPort, got %v", err)
	}
	// action has no output ports
	if _, _, err := g.Connect(action.ID, "", rsi.ID, ""); !errors.Is(err, ErrInvalidPort) {
		t.Fatalf("from action: expected ErrInvalidPort, got %v", err)
	}
	// named port of the wrong direction
	if _, _, err := g.Connect(price.ID, catalog.PortIn, rsi.ID, ""); !errors.Is(err, ErrInvalidPort) {
		t.Fatalf("named wrong-direction port: expected ErrInvalidPort, got %v", err)
	}
}

func TestConnectMissingEndpoint(t *testing.T) {
	g, price := mustAdd(t, Graph{}, catalog.KindPrice, nil)
	if _, _, err := g.Connect(price.ID, "", "ghost", ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDuplicateEdgesStayDistinct(t *testing.T) {
	g, price := mustAdd(t, Graph{}, catalog.KindPrice, nil)
	g, action := mustAdd(t, g, catalog.KindAction, nil)

	g, e1, err := g.Connect(price.ID, "", action.ID, "")
	if err != nil {
		t.Fatalf("Connect #1: %v", err)
	}
	g, e2, err := g.Connect(price.ID, "", action.ID, "")
	if err != nil {
		t.Fatalf("Connect #2: %v", err)
	}
	if len(g.Edges) != 2 {
		t.Fatalf("edge count = %d, want 2", len(g.Edges))
	}
	if e1.ID == e2.ID {
		t.Fatal("duplicate edges share an id")
	}
}

func TestDeleteNodeCascades(t *testing.T) {
	g, price := mustAdd(t, Graph{}, catalog.KindPrice, nil)
	g, rsi := mustAdd(t, g, catalog.KindRSI, nil)
	g, action := mustAdd(t, g, catalog.KindAction, nil)
	g, _, _ = g.Connect(price.ID, "", rsi.ID, "")
	g, keep, _ := g.Connect(price.ID, "", action.ID, "")

	out := g.DeleteNode(rsi.ID)
	if len(out.Nodes) != 2 {
		t.Fatalf("node count = %d, want 2", len(out.Nodes))
	}
	if len(out.Edges) != 1 || out.Edges[0].ID != keep.ID {
		t.Fatalf("surviving edges = %+v, want only %s", out.Edges, keep.ID)
	}
	// absent id is a no-op
	again := out.DeleteNode("ghost")
	if !Equal(again, out) {
		t.Fatal("deleting absent node changed the graph")
	}
}

func TestDeleteEdge(t *testing.T) {
	g, price := mustAdd(t, Graph{}, catalog.KindPrice, nil)
	g, action := mustAdd(t, g, catalog.KindAction, nil)
	g, edge, _ := g.Connect(price.ID, "", action.ID, "")

	out := g.DeleteEdge(edge.ID)
	if len(out.Edges) != 0 {
		t.Fatalf("edge count = %d, want 0", len(out.Edges))
	}
	if len(g.Edges) != 1 {
		t.Fatal("old snapshot mutated")
	}
	if !Equal(out.DeleteEdge("ghost"), out) {
		t.Fatal("deleting absent edge changed the graph")
	}
}

func TestEqualIgnoresOrder(t *testing.T) {
	g, price := mustAdd(t, Graph{}, catalog.KindPrice, nil)
	g, rsi := mustAdd(t, g, catalog.KindRSI, nil)
	_ = price

	swapped := Graph{
		Nodes: []Node{g.Nodes[1], g.Nodes[0]},
		Edges: nil,
	}
	if !Equal(g, swapped) {
		t.Fatal("order-swapped graphs reported unequal")
	}

	changed, _ := g.UpdateNodeConfig(rsi.ID, map[string]any{"period": 9})
	if Equal(g, changed) {
		t.Fatal("config change not detected")
	}
}

package fbp

import "testing"

func TestEventSequence(t *testing.T) {
	g := New("main")

	var got []EventType
	g.Subscribe(func(e Event) { got = append(got, e.Type) })

	g.AddNode("a", "A", nil)
	g.AddNode("b", "B", nil)
	g.AddEdge("a", "out", "b", "in")
	g.AddInitial(1, "b", "n")
	g.RemoveEdge("b", "in")
	g.RemoveNode("b")

	want := []EventType{
		EventAddNode,    // a
		EventAddNode,    // b
		EventAddEdge,    // a.out -> b.in
		EventAddEdge,    // initializer -> b.n
		EventRemoveEdge, // edge removed by RemoveEdge
		EventRemoveEdge, // initializer removed by RemoveNode cascade
		EventRemoveNode, // b
	}
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestEventPayloads(t *testing.T) {
	g := New("main")

	var events []Event
	g.Subscribe(func(e Event) { events = append(events, e) })

	g.AddNode("a", "A", nil)
	g.AddEdge("a", "out", "a", "loop")
	g.AddInitial("x", "a", "conf")

	if events[0].Node == nil || events[0].Node.ID != "a" {
		t.Errorf("addNode payload = %+v, want node a", events[0])
	}
	if events[1].Edge == nil || events[1].Edge.From.Port != "out" {
		t.Errorf("addEdge payload = %+v, want edge a.out", events[1])
	}
	// AddInitial reuses the addEdge event name but carries the initializer.
	if events[2].Type != EventAddEdge || events[2].Initializer == nil {
		t.Errorf("addInitial payload = %+v, want addEdge with initializer", events[2])
	}
	if events[2].Initializer.Data != "x" {
		t.Errorf("initializer data = %v, want x", events[2].Initializer.Data)
	}
}

// Removal events must deliver the entity while it is still a valid payload:
// the node carried by removeNode matches the node that was in the graph.
func TestRemovePayloadPrecedesMutation(t *testing.T) {
	g := New("main")
	g.AddNode("a", "ReadFile", nil)
	g.AddEdge("a", "out", "a", "loop")

	g.Subscribe(func(e Event) {
		switch e.Type {
		case EventRemoveNode:
			if e.Node.Component != "ReadFile" {
				t.Errorf("removeNode payload component = %q", e.Node.Component)
			}
		case EventRemoveEdge:
			if e.Edge == nil || e.Edge.From.Node != "a" {
				t.Errorf("removeEdge payload = %+v", e)
			}
		}
	})

	g.RemoveNode("a")
}

func TestSubscriptionOrderAndUnsubscribe(t *testing.T) {
	g := New("main")

	var order []string
	first := g.Subscribe(func(Event) { order = append(order, "first") })
	g.Subscribe(func(Event) { order = append(order, "second") })

	g.AddNode("a", "A", nil)
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("delivery order = %v", order)
	}

	g.Unsubscribe(first)
	order = nil
	g.AddNode("b", "B", nil)
	if len(order) != 1 || order[0] != "second" {
		t.Errorf("after unsubscribe order = %v", order)
	}
}

func TestUnsubscribeUnknownID(t *testing.T) {
	g := New("main")
	g.Subscribe(func(Event) {})
	g.Unsubscribe("not-a-subscription")
	g.AddNode("a", "A", nil) // must not panic
}

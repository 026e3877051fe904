package behaviour

import "testing"

type countingBehaviour struct {
	starts  int
	updates int
	log     *[]string
	name    string
}

func (c *countingBehaviour) Start() { c.starts++ }

func (c *countingBehaviour) Update() {
	c.updates++
	if c.log != nil {
		*c.log = append(*c.log, c.name)
	}
}

func TestManagerStartsOnce(t *testing.T) {
	m := NewManager()
	b := &countingBehaviour{}
	m.Add(b)

	for i := 0; i < 3; i++ {
		m.UpdateAll()
	}

	if b.starts != 1 {
		t.Errorf("Expected Start once, got %d", b.starts)
	}
	if b.updates != 3 {
		t.Errorf("Expected 3 updates, got %d", b.updates)
	}
}

func TestManagerKeepsInsertionOrder(t *testing.T) {
	var order []string
	m := NewManager()
	m.Add(&countingBehaviour{name: "first", log: &order})
	m.Add(&countingBehaviour{name: "second", log: &order})

	m.UpdateAll()

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("Unexpected update order %v", order)
	}
}

func TestManagerRemove(t *testing.T) {
	m := NewManager()
	a := &countingBehaviour{}
	b := &countingBehaviour{}
	m.Add(a)
	m.Add(b)

	m.Remove(a)
	m.UpdateAll()

	if a.updates != 0 {
		t.Error("Removed behaviour should not be updated")
	}
	if m.Len() != 1 {
		t.Errorf("Expected 1 behaviour left, got %d", m.Len())
	}
}

func TestManagerClear(t *testing.T) {
	m := NewManager()
	m.Add(&countingBehaviour{})
	m.Clear()

	if m.Len() != 0 {
		t.Errorf("Expected empty manager, got %d", m.Len())
	}
}

package behaviour

// Behaviour is per-frame logic driven by a Manager.
type Behaviour interface {
	Start()
	Update()
}

type behaviourWrapper struct {
	behaviour Behaviour
	started   bool
}

// Manager runs its behaviours once per frame in the order they were added.
type Manager struct {
	behaviours []behaviourWrapper
}

func NewManager() *Manager {
	return &Manager{}
}

func (m *Manager) Add(b Behaviour) {
	m.behaviours = append(m.behaviours, behaviourWrapper{behaviour: b})
}

func (m *Manager) Remove(b Behaviour) {
	for i := range m.behaviours {
		if m.behaviours[i].behaviour == b {
			m.behaviours = append(m.behaviours[:i], m.behaviours[i+1:]...)
			return
		}
	}
}

// Clear removes all behaviours from the manager
func (m *Manager) Clear() {
	m.behaviours = m.behaviours[:0]
}

func (m *Manager) Len() int {
	return len(m.behaviours)
}

// UpdateAll calls Start the first time a behaviour is seen, then Update.
func (m *Manager) UpdateAll() {
	for i := range m.behaviours {
		if !m.behaviours[i].started {
			m.behaviours[i].behaviour.Start()
			m.behaviours[i].started = true
		}
		m.behaviours[i].behaviour.Update()
	}
}

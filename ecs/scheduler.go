package ecs

// System runs in the update phase of every tick.
type System interface {
	Update(w *World, dt float64)
}

// LateSystem runs after every System has updated. Systems that read state
// produced elsewhere in the same tick (camera resolve, animation) live here.
type LateSystem interface {
	LateUpdate(w *World, dt float64)
}

// Scheduler drives a world through fixed ticks: all Update calls in
// registration order, then all LateUpdate calls, then the event queue is
// cleared.
type Scheduler struct {
	systems []System
	late    []LateSystem
	ticks   uint64
}

// NewScheduler registers systems in order. A value may implement System,
// LateSystem or both.
func NewScheduler(systems ...any) *Scheduler {
	s := &Scheduler{}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

func (s *Scheduler) Add(system any) {
	if system == nil {
		return
	}
	if u, ok := system.(System); ok {
		s.systems = append(s.systems, u)
	}
	if l, ok := system.(LateSystem); ok {
		s.late = append(s.late, l)
	}
}

// Tick advances the world by one step of dt seconds.
func (s *Scheduler) Tick(w *World, dt float64) {
	if w == nil {
		return
	}
	for _, system := range s.systems {
		system.Update(w, dt)
	}
	for _, system := range s.late {
		system.LateUpdate(w, dt)
	}
	w.events.flush()
	s.ticks++
}

// Ticks is the number of completed ticks.
func (s *Scheduler) Ticks() uint64 {
	return s.ticks
}

func (s *Scheduler) Systems() []System {
	return append([]System(nil), s.systems...)
}

func (s *Scheduler) LateSystems() []LateSystem {
	return append([]LateSystem(nil), s.late...)
}

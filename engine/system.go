package engine

// System is a per-frame simulation stage
// Update is called every frame in Priority order; systems check the race state themselves
type System interface {
	// Priority returns the execution order (lower runs first)
	Priority() int
	// Update advances the system by one frame
	Update(s *Session)
}

package ecs

// System is a unit of behaviour run by a Scheduler once per frame.
// Query and Singleton fields on the system struct are wired to the
// scheduler's storage during Register; any other fields persist between
// frames untouched.
type System interface {
	Execute(frame *UpdateFrame)
}

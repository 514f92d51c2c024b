package ecs

import "unsafe"

// iface mirrors the runtime layout of an interface value so the data pointer
// of a boxed component can be read without reflection.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

// dataPointer returns the pointer stored inside v. v must hold a pointer.
func dataPointer(v any) unsafe.Pointer {
	return (*iface)(unsafe.Pointer(&v)).data
}

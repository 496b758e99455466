package cache

import "context"

// Nop is used when no Redis address is configured.
type Nop struct{}

func NewNop() Nop {
	return Nop{}
}

func (Nop) Get(context.Context, string, any) bool { return false }
func (Nop) Set(context.Context, string, any)      {}
func (Nop) Invalidate(context.Context)            {}

package scene

// resource tracks the disposal state of a GPU-backed scene object.
// Backends register release hooks when they upload the object.
type resource struct {
	disposed bool
	hooks    []func()
}

// Dispose marks the object released and runs its release hooks once.
func (r *resource) Dispose() {
	if r.disposed {
		return
	}
	r.disposed = true
	hooks := r.hooks
	r.hooks = nil
	for _, fn := range hooks {
		fn()
	}
}

// Disposed reports whether Dispose has been called.
func (r *resource) Disposed() bool {
	return r.disposed
}

// OnDispose registers fn to run when the object is disposed. If the object
// is already disposed fn runs immediately.
func (r *resource) OnDispose(fn func()) {
	if r.disposed {
		fn()
		return
	}
	r.hooks = append(r.hooks, fn)
}

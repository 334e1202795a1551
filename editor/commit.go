package editor

// CommitNotifier raises the payload-free "commit" notification. Handlers
// read whatever state they need from the controller afterwards.
//
// Commit does not check validity. Calling it while the Gate reports the
// controller invalid is unsupported; callers gate it themselves, the way a
// disabled action would.
type CommitNotifier struct {
	handlers []*commitHandler
}

type commitHandler struct {
	fn     func()
	active bool
}

// OnCommit registers fn and returns a func that removes it.
func (n *CommitNotifier) OnCommit(fn func()) (unsubscribe func()) {
	h := &commitHandler{fn: fn, active: true}
	n.handlers = append(n.handlers, h)
	return func() { h.active = false }
}

// Commit notifies every registered handler exactly once.
func (n *CommitNotifier) Commit() {
	for _, h := range n.handlers {
		if h.active {
			h.fn()
		}
	}
}

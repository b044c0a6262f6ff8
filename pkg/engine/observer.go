package engine

import "github.com/vango-dev/krow/pkg/vdom"

// Observer is notified of engine activity. Implementations must be cheap;
// they run inline with reconciliation.
type Observer interface {
	Mounted(kind vdom.Kind)
	Destroyed(kind vdom.Kind)
	// Patched reports a patch of two nodes; reused is false when the old node
	// was replaced instead of updated in place.
	Patched(kind vdom.Kind, reused bool)
	Rendered(component string)
	JobFailed(err error)
}

// NopObserver ignores every notification.
type NopObserver struct{}

func (NopObserver) Mounted(vdom.Kind)       {}
func (NopObserver) Destroyed(vdom.Kind)     {}
func (NopObserver) Patched(vdom.Kind, bool) {}
func (NopObserver) Rendered(string)         {}
func (NopObserver) JobFailed(error)         {}

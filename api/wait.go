// Package api
// Author: momentics@gmail.com
//
// Wait discipline used by blocking ring operations.

package api

// Waiter decides how a blocked ring operation spends the time between two
// re-checks of the counterpart's progress.
type Waiter interface {
	// Wait is called once per unsuccessful check; iteration starts at 0 for
	// every new blocking episode.
	Wait(iteration int)
}

// WaiterFunc adapts a plain function to Waiter.
type WaiterFunc func(iteration int)

// Wait calls f(iteration).
func (f WaiterFunc) Wait(iteration int) { f(iteration) }

package concurrent

import "time"

// WithTimeout returns a stage that behaves like up, except that if up
// hasn't reached a terminal state within d, it's cancelled with the given
// interrupt setting. Timeout is deliberately not built into Cancel itself:
// it's one more caller of the same Cancel machinery every other combinator
// uses, not a special case of it.
func (up *Stage[T]) WithTimeout(d time.Duration, interrupt bool) *Stage[T] {
	timer := time.AfterFunc(d, func() {
		up.Cancel(interrupt)
	})
	up.registry.subscribe(func(outcome[T]) {
		timer.Stop()
	})
	return up
}

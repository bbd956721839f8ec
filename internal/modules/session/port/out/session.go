package out

// Feedback is fire-and-forget haptic style feedback. Implementations must
// return immediately.
type Feedback interface {
	Success()
	Warning()
	Light()
}

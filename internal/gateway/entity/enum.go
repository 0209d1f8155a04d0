package entity

// Flow tags which verification journey a challenge belongs to. Challenges for
// different flows never share state even within the same session.
type Flow string

const (
	// FlowLogin is the second factor after a successful password check.
	FlowLogin Flow = "login"
	// FlowRegister proves inbox ownership before an account row is written.
	FlowRegister Flow = "register"
	// FlowRecover proves inbox ownership before a password reset is unlocked.
	FlowRecover Flow = "recover"
)

// String returns the flow tag.
func (f Flow) String() string {
	return string(f)
}

// Valid reports whether f is one of the known flows.
func (f Flow) Valid() bool {
	switch f {
	case FlowLogin, FlowRegister, FlowRecover:
		return true
	default:
		return false
	}
}

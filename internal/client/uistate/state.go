// Package uistate holds the state of the login and registration forms,
// independent of how they are rendered.
package uistate

// State is the progress of the current form submission: Idle, Loading,
// Success or Error.
type State interface {
	isState()
}

type Idle struct{}

type Loading struct{}

type Success struct{}

// Error carries the message shown to the user.
type Error struct {
	Message string
}

func (Idle) isState()    {}
func (Loading) isState() {}
func (Success) isState() {}
func (Error) isState()   {}

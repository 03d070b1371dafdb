package uistate

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/rootshare/internal/client/models"
	"github.com/dmitrijs2005/rootshare/internal/client/validation"
	"github.com/dmitrijs2005/rootshare/internal/common"
)

// Authenticator is the part of services.AuthService the form drives.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Register(ctx context.Context, email, username, password, confirmPassword string) (*models.AuthResponse, error)
	Logout(ctx context.Context) error
}

// AuthForm is the model behind the login and register screens. Every state
// change is offered to the updates channel without blocking; a reader that
// falls behind misses intermediate states but State always has the latest.
type AuthForm struct {
	auth    Authenticator
	updates chan<- State

	mu     sync.Mutex
	state  State
	fields validation.FieldErrors
}

// NewAuthForm creates a form in the Idle state. updates may be nil.
func NewAuthForm(auth Authenticator, updates chan<- State) *AuthForm {
	return &AuthForm{auth: auth, updates: updates, state: Idle{}}
}

func (f *AuthForm) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *AuthForm) FieldErrors() validation.FieldErrors {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields
}

func (f *AuthForm) set(s State) {
	f.mu.Lock()
	f.state = s
	f.mu.Unlock()

	if f.updates == nil {
		return
	}
	select {
	case f.updates <- s:
	default:
	}
}

// begin records field errors and reports whether the submission may go on.
// On success the form moves to Loading with the field errors cleared.
func (f *AuthForm) begin(errs validation.FieldErrors) bool {
	f.mu.Lock()
	if errs.HasErrors() {
		f.fields = errs
		f.mu.Unlock()
		return false
	}
	f.fields = validation.FieldErrors{}
	f.mu.Unlock()

	f.set(Loading{})
	return true
}

func (f *AuthForm) finish(err error, fallback string) State {
	var s State = Success{}
	if err != nil {
		msg := common.Sentence(err.Error())
		if msg == "" {
			msg = fallback
		}
		s = Error{Message: msg}
	}
	f.set(s)
	return s
}

// Login submits the login form and returns the state it ended in. Invalid
// input only updates the field errors.
func (f *AuthForm) Login(ctx context.Context, email, password string) State {
	if !f.begin(validation.ValidateLogin(email, password)) {
		return f.State()
	}
	_, err := f.auth.Login(ctx, email, password)
	return f.finish(err, "Login failed")
}

// Register submits the registration form; see Login.
func (f *AuthForm) Register(ctx context.Context, username, email, password, confirmPassword string) State {
	if !f.begin(validation.ValidateRegister(username, email, password, confirmPassword)) {
		return f.State()
	}
	_, err := f.auth.Register(ctx, email, username, password, confirmPassword)
	return f.finish(err, "Registration failed")
}

// Logout ends the session and returns the form to Idle.
func (f *AuthForm) Logout(ctx context.Context) {
	_ = f.auth.Logout(ctx)
	f.set(Idle{})
}

// ClearError dismisses an error message.
func (f *AuthForm) ClearError() {
	if _, ok := f.State().(Error); ok {
		f.set(Idle{})
	}
}

func (f *AuthForm) ClearFieldError(field string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields.Clear(field)
}

// Reset is called when the user leaves the form.
func (f *AuthForm) Reset() {
	f.mu.Lock()
	f.fields = validation.FieldErrors{}
	f.mu.Unlock()
	f.set(Idle{})
}

// Package registration drives the four-step sign-up form, the location prompt and the final submission.
//
// Only submission performs I/O. Moving between form steps never touches the network, moving forward is gated
// by the current step's validation, and moving back is always allowed and keeps what was entered.
package registration

import (
	"context"
	"log/slog"
	"maps"
	"sync"

	"gaia/internal/client"
	"gaia/internal/domain/generation"
	"gaia/internal/domain/validation"
	"gaia/internal/errors"
	"gaia/internal/geolocation"
)

var (
	// ErrInvalidTransition is returned when an action does not apply to the current step.
	ErrInvalidTransition = errors.New("action not allowed in the current step")
	// ErrUnknownField is returned by Update for a name that is not a form field.
	ErrUnknownField = errors.New("unknown form field")
)

// Registrar creates the account and establishes the session.
type Registrar interface {
	Register(ctx context.Context, req *client.RegisterRequest) (*client.User, error)
	MarkNewUser() error
}

// Locator acquires an optional location. A nil sample means none was provided.
type Locator interface {
	Acquire(ctx context.Context) *geolocation.Sample
}

// Option configures a Workflow.
type Option func(*Workflow)

// WithPasswordPolicy replaces the strict five-rule policy.
func WithPasswordPolicy(policy validation.PasswordPolicy) Option {
	return func(w *Workflow) {
		w.policy = policy
	}
}

// WithObserver registers a callback invoked after every state change.
// It runs while the workflow is locked and must not call back into it.
func WithObserver(fn func(Transition)) Option {
	return func(w *Workflow) {
		w.observer = fn
	}
}

// WithLogger sets the workflow logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Workflow) {
		w.logger = logger
	}
}

// Workflow is one registration attempt. It is safe for use from a UI goroutine and a submission goroutine.
type Workflow struct {
	registrar Registrar
	locator   Locator
	policy    validation.PasswordPolicy
	observer  func(Transition)
	logger    *slog.Logger

	mu      sync.Mutex
	step    Step
	form    Form
	errs    map[string]string
	user    *client.User
	lastErr error
}

// New starts a workflow at the personal information step.
func New(registrar Registrar, locator Locator, opts ...Option) *Workflow {
	w := &Workflow{
		registrar: registrar,
		locator:   locator,
		policy:    validation.StrictPasswordPolicy(),
		logger:    slog.New(slog.DiscardHandler),
		step:      StepPersonalInfo,
		errs:      make(map[string]string),
	}
	for _, opt := range opts {
		opt(w)
	}

	return w
}

// State returns the current step.
func (w *Workflow) State() Step {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.step
}

// Form returns a copy of the input so far.
func (w *Workflow) Form() Form {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.form
}

// Errors returns a copy of the current field errors.
func (w *Workflow) Errors() map[string]string {
	w.mu.Lock()
	defer w.mu.Unlock()

	return maps.Clone(w.errs)
}

// User is the registered user once the workflow reached StepSuccess.
func (w *Workflow) User() *client.User {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.user
}

// Err is the error of the last failed submission, cleared by the next attempt.
func (w *Workflow) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.lastErr
}

// Update sets one field and clears its error. Setting the birth year also recomputes the generational identity.
func (w *Workflow) Update(field, value string) error {
	if field == FieldBirthYear {
		w.SetBirthYear(value)

		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	p, ok := w.form.field(field)
	if !ok {
		return errors.Wrap(ErrUnknownField, field)
	}
	*p = value
	delete(w.errs, field)

	return nil
}

// SetBirthYear stores the year and overwrites the generational identity derived from it.
func (w *Workflow) SetBirthYear(value string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.form.BirthYear = value
	w.form.GenerationalIdentity = generation.ResolveString(value)
	delete(w.errs, FieldBirthYear)
	delete(w.errs, FieldGenerationalIdentity)
}

// PasswordRequirements is the live per-rule breakdown of the current password.
func (w *Workflow) PasswordRequirements() validation.PasswordRequirements {
	w.mu.Lock()
	defer w.mu.Unlock()

	return validation.PasswordRequirementBreakdown(w.form.Password)
}

// PasswordStrength labels the current password.
func (w *Workflow) PasswordStrength() validation.PasswordStrength {
	w.mu.Lock()
	defer w.mu.Unlock()

	return validation.CalculatePasswordStrength(w.form.Password)
}

// Progress is the completed share of the form in percent.
func (w *Workflow) Progress() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.step.IsFormStep() {
		return 100
	}

	return int(w.step) * 100 / formSteps
}

// CanSubmit reports whether Next would attempt the final validation.
func (w *Workflow) CanSubmit() bool {
	return w.State() == StepAccountSetup
}

// Next validates the current step and advances. From the account setup step it validates the whole form and
// moves to the location prompt. It reports whether the step changed.
func (w *Workflow) Next() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.step.IsFormStep() {
		return false
	}

	errs := make(map[string]string)
	if w.step == StepAccountSetup {
		for step := StepPersonalInfo; step <= StepAccountSetup; step++ {
			w.form.validateStep(step, w.policy, errs)
		}
	} else {
		w.form.validateStep(w.step, w.policy, errs)
	}

	if len(errs) > 0 {
		w.errs = errs

		return false
	}

	w.errs = make(map[string]string)
	w.moveLocked(w.step + 1)

	return true
}

// Back returns to the previous form step without validating or clearing anything.
// From the location prompt it returns to account setup.
func (w *Workflow) Back() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch {
	case w.step == StepLocationPrompt:
		w.moveLocked(StepAccountSetup)
	case w.step.IsFormStep() && w.step > StepPersonalInfo:
		w.moveLocked(w.step - 1)
	default:
		return false
	}

	return true
}

// Allow acquires a location and submits with whatever it returns, including nothing.
func (w *Workflow) Allow(ctx context.Context) error {
	if err := w.beginSubmit(); err != nil {
		return err
	}

	var sample *geolocation.Sample
	if w.locator != nil {
		sample = w.locator.Acquire(ctx)
	}

	return w.submit(ctx, sample)
}

// Skip submits without a location.
func (w *Workflow) Skip(ctx context.Context) error {
	if err := w.beginSubmit(); err != nil {
		return err
	}

	return w.submit(ctx, nil)
}

func (w *Workflow) beginSubmit() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != StepLocationPrompt {
		return errors.Wrapf(ErrInvalidTransition, "cannot submit from %s", w.step)
	}
	w.lastErr = nil
	w.moveLocked(StepSubmitting)

	return nil
}

func (w *Workflow) submit(ctx context.Context, sample *geolocation.Sample) error {
	w.mu.Lock()
	req := w.form.request(sample)
	w.mu.Unlock()

	user, err := w.registrar.Register(ctx, req)
	if err != nil {
		w.fail(err)

		return err
	}

	if err := w.registrar.MarkNewUser(); err != nil {
		w.logger.Warn("Failed to mark new user", slog.Any("error", err))
	}

	w.mu.Lock()
	w.user = user
	w.moveLocked(StepSuccess)
	w.mu.Unlock()

	return nil
}

// fail surfaces the error and hands control back to account setup so the user can correct and resubmit.
func (w *Workflow) fail(err error) {
	message := err.Error()
	if apiErr, ok := errors.AsType[*client.APIError](err); ok {
		message = apiErr.Message
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.lastErr = err
	w.errs = map[string]string{FieldMessage: message}
	w.moveLocked(StepFailed)
	w.moveLocked(StepAccountSetup)
}

func (w *Workflow) moveLocked(to Step) {
	from := w.step
	w.step = to
	if w.observer != nil {
		w.observer(Transition{From: from, To: to})
	}
}

package contactform

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Status is the lifecycle of one form instance
type Status int

const (
	StatusIdle Status = iota
	StatusSubmitting
	StatusSucceeded
	// StatusFailed is only reachable in ModeResponse
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusSubmitting:
		return "submitting"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Mode decides what moves a submission from submitting to a final status
type Mode int

const (
	// ModeTimer reports success once the delay elapses, whatever the endpoint answered
	ModeTimer Mode = iota
	// ModeResponse waits for the dispatcher and reports failure when it errors
	ModeResponse
)

// DefaultSuccessDelay is the wait between dispatch and the success acknowledgement
const DefaultSuccessDelay = 1000 * time.Millisecond

// Dispatcher sends a validated form to the receiving endpoint
type Dispatcher interface {
	Dispatch(ctx context.Context, form FormState) error
}

// DispatcherFunc adapts a function to Dispatcher
type DispatcherFunc func(ctx context.Context, form FormState) error

func (f DispatcherFunc) Dispatch(ctx context.Context, form FormState) error {
	return f(ctx, form)
}

// Options configures a Controller
type Options struct {
	Fields     FieldSet
	Mode       Mode
	Delay      time.Duration // ModeTimer only, DefaultSuccessDelay when zero
	Clock      Clock         // real clock when nil
	Dispatcher Dispatcher
	// OnSettled is called once per submission attempt after the final status is set
	OnSettled func(Snapshot)
}

// Snapshot is a copy of the controller state, safe to keep and render
type Snapshot struct {
	Form   FormState
	Errors ValidationErrors
	Status Status
	Err    error
}

// Controller owns the state of one mounted form. A new Controller starts
// empty and idle; it is never reused after it succeeds.
type Controller struct {
	opts Options

	mu      sync.Mutex
	form    FormState
	errs    ValidationErrors
	status  Status
	lastErr error
	settled chan struct{}
}

// New creates an empty, idle controller
func New(opts Options) *Controller {
	if opts.Clock == nil {
		opts.Clock = RealClock{}
	}
	if opts.Delay <= 0 {
		opts.Delay = DefaultSuccessDelay
	}
	return &Controller{
		opts: opts,
		errs: ValidationErrors{},
	}
}

// Fields returns the field set this controller collects
func (c *Controller) Fields() FieldSet {
	return c.opts.Fields
}

// UpdateField overwrites a field value. A recorded error for that field is
// dropped without validating the new value.
func (c *Controller) UpdateField(f Field, value string) error {
	if !c.opts.Fields.Has(f) {
		return fmt.Errorf("%w: %q", ErrUnknownField, f)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.form.set(f, value)
	delete(c.errs, f)
	return nil
}

// Validate replaces the error set with a fresh check of every field
func (c *Controller) Validate() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.validateLocked()
}

func (c *Controller) validateLocked() bool {
	c.errs = Check(c.opts.Fields, c.form)
	return len(c.errs) == 0
}

// Submit validates the form and, when valid, dispatches it and moves to
// submitting. The final status is set asynchronously: after the delay in
// ModeTimer, after the dispatcher returns in ModeResponse.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status == StatusSubmitting || c.status == StatusSucceeded {
		return ErrAlreadySubmitted
	}
	if !c.validateLocked() {
		return ErrValidation
	}

	c.status = StatusSubmitting
	c.lastErr = nil
	settled := make(chan struct{})
	c.settled = settled
	form := c.form

	// The dispatch outlives the caller, like a native post into a hidden frame
	dispatchCtx := context.WithoutCancel(ctx)

	switch c.opts.Mode {
	case ModeResponse:
		go func() {
			err := c.dispatch(dispatchCtx, form)
			c.settle(settled, err)
		}()
	default:
		go func() { _ = c.dispatch(dispatchCtx, form) }()
		c.opts.Clock.AfterFunc(c.opts.Delay, func() {
			c.settle(settled, nil)
		})
	}
	return nil
}

func (c *Controller) dispatch(ctx context.Context, form FormState) error {
	if c.opts.Dispatcher == nil {
		return nil
	}
	return c.opts.Dispatcher.Dispatch(ctx, form)
}

func (c *Controller) settle(settled chan struct{}, err error) {
	c.mu.Lock()
	if c.settled != settled {
		c.mu.Unlock()
		return
	}
	if err != nil {
		c.status = StatusFailed
		c.lastErr = err
	} else {
		c.status = StatusSucceeded
		c.form = FormState{}
	}
	c.settled = nil
	snap := c.snapshotLocked()
	c.mu.Unlock()

	close(settled)
	if c.opts.OnSettled != nil {
		c.opts.OnSettled(snap)
	}
}

// Status returns the current submission status
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Errors returns a copy of the recorded validation errors
func (c *Controller) Errors() ValidationErrors {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errs.clone()
}

// Form returns the current field values
func (c *Controller) Form() FormState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

// LastError returns the dispatch error of a failed submission
func (c *Controller) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Snapshot returns a consistent copy of the whole state
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		Form:   c.form,
		Errors: c.errs.clone(),
		Status: c.status,
		Err:    c.lastErr,
	}
}

// Wait blocks until the current submission settles or ctx is done.
// It returns immediately when nothing is in flight.
func (c *Controller) Wait(ctx context.Context) error {
	c.mu.Lock()
	settled := c.settled
	c.mu.Unlock()

	if settled == nil {
		return nil
	}
	select {
	case <-settled:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

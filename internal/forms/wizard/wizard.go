// Package wizard drives the multi-step form flow: one state store per form
// instance, guarding step transitions with step-local validation and
// persisting a draft on every accepted edit.
package wizard

import (
	"context"
	"errors"
	"strings"
	"sync"

	stderrors "admissions-forms/internal/common/errors"
	"admissions-forms/internal/common/logger"
	"admissions-forms/internal/forms/draft"
	"admissions-forms/internal/forms/schema"
	"admissions-forms/internal/forms/submit"
)

// Status is the submission state of the wizard.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusSubmitting Status = "submitting"
	StatusSucceeded  Status = "success"
	StatusFailed     Status = "failed"
)

var (
	ErrAlreadySubmitted = errors.New("form already submitted")
)

// Submitter posts the completed form to the backend.
type Submitter interface {
	Submit(ctx context.Context, formType string, data schema.FormData) (*submit.Response, error)
}

// Options configure a Store. Every wizard instance owns its dependencies;
// there is no shared package-level state, so concurrent instances (separate
// tabs, separate sessions) never interfere.
type Options struct {
	Schema    *schema.FormSchema
	Drafts    draft.Store
	Submitter Submitter
	Logger    logger.Logger
}

// Store holds the wizard state and serializes all mutations with an internal
// mutex, the analogue of a UI's single event thread.
type Store struct {
	mu sync.Mutex

	schema    *schema.FormSchema
	sections  []schema.Section
	fieldStep map[string]int

	step      int
	visited   map[int]bool
	data      schema.FormData
	status    Status
	errMsg    string
	fieldErrs schema.FieldErrors

	drafts    draft.Store
	submitter Submitter
	logger    logger.Logger
}

// New creates a store at step 0 and seeds form data from the draft cache.
// The step position itself is deliberately not persisted: a resumed session
// keeps its field data but starts again from the first step.
func New(ctx context.Context, opts Options) (*Store, error) {
	if opts.Schema == nil {
		return nil, errors.New("schema is required")
	}
	if opts.Drafts == nil {
		return nil, errors.New("draft store is required")
	}
	if opts.Submitter == nil {
		return nil, errors.New("submitter is required")
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	log = log.WithFields(map[string]interface{}{"formType": opts.Schema.Name})

	sections := schema.SectionsOf(opts.Schema)
	fieldStep := make(map[string]int)
	for i, sec := range sections {
		for _, f := range sec.Fields {
			fieldStep[f.Name] = i
		}
	}

	s := &Store{
		schema:    opts.Schema,
		sections:  sections,
		fieldStep: fieldStep,
		visited:   map[int]bool{0: true},
		data:      make(schema.FormData),
		status:    StatusIdle,
		drafts:    opts.Drafts,
		submitter: opts.Submitter,
		logger:    log,
	}

	saved, err := opts.Drafts.Load(ctx)
	if err != nil {
		// An unreachable draft store never blocks a new session.
		log.Warn("draft load failed, starting from defaults", map[string]interface{}{"error": err})
	} else if saved != nil {
		s.data = saved
		log.Info("draft restored", map[string]interface{}{"fieldCount": len(saved)})
	}

	return s, nil
}

// Step returns the current step index.
func (s *Store) Step() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// TotalSteps returns the number of sections.
func (s *Store) TotalSteps() int {
	return len(s.sections)
}

// Sections returns the ordered section list.
func (s *Store) Sections() []schema.Section {
	return s.sections
}

// Visited reports whether the given step has been reached.
func (s *Store) Visited(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visited[index]
}

// Status returns the submission status.
func (s *Store) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// ErrorMessage returns the top-level error banner text, empty when none.
func (s *Store) ErrorMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// FieldErrors returns a copy of the current field error map.
func (s *Store) FieldErrors() schema.FieldErrors {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(schema.FieldErrors, len(s.fieldErrs))
	for k, v := range s.fieldErrs {
		out[k] = v
	}
	return out
}

// Data returns a copy of the accumulated form data.
func (s *Store) Data() schema.FormData {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(schema.FormData, len(s.data))
	for k, v := range s.data {
		out[k] = v
	}
	return out
}

// Field returns one accumulated value.
func (s *Store) Field(name string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[name]
	return v, ok
}

// EditField coerces the value per the schema rule and merges it into the
// form data, then writes a draft snapshot. Draft write failures are logged
// but never fail the edit.
func (s *Store) EditField(ctx context.Context, name string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.mutable(); err != nil {
		return err
	}

	rule, ok := s.schema.Rule(name)
	if !ok {
		return stderrors.NewUnknownFieldError(name)
	}
	coerced, err := schema.CoerceValue(rule, value)
	if err != nil {
		return err
	}
	s.data[name] = coerced

	if err := s.drafts.Save(ctx, s.data); err != nil {
		s.logger.Warn("draft save failed", map[string]interface{}{
			"field": name,
			"error": err,
		})
	}
	return nil
}

// Advance validates only the current step's field subset. On success it
// moves forward (no-op on the last step) and marks the new step visited; on
// failure it stays put and surfaces the step's field errors.
func (s *Store) Advance() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.mutable(); err != nil {
		return err
	}

	if errs := s.validateStep(s.step); len(errs) > 0 {
		s.fieldErrs = errs
		return stderrors.NewValidationFailedError(len(errs))
	}
	s.fieldErrs = nil
	if s.step < len(s.sections)-1 {
		s.step++
		s.visited[s.step] = true
	}
	return nil
}

// Retreat moves one step back without validation, keeping all entered data.
func (s *Store) Retreat() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.mutable(); err != nil {
		return err
	}
	if s.step > 0 {
		s.step--
	}
	return nil
}

// JumpTo navigates directly to an already-visited step, or to the immediate
// next step, which is validated exactly like Advance. Anything further ahead
// is rejected so unvalidated sections cannot be skipped.
func (s *Store) JumpTo(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.mutable(); err != nil {
		return err
	}

	if index < 0 || index >= len(s.sections) {
		return stderrors.NewStepNotReachableError(index)
	}
	if s.visited[index] {
		s.step = index
		return nil
	}
	if index != s.step+1 {
		return stderrors.NewStepNotReachableError(index)
	}
	if errs := s.validateStep(s.step); len(errs) > 0 {
		s.fieldErrs = errs
		return stderrors.NewValidationFailedError(len(errs))
	}
	s.fieldErrs = nil
	s.step = index
	s.visited[index] = true
	return nil
}

// Submit validates the entire schema, then posts the form while holding the
// submitting flag, so a second Submit during flight is rejected without a
// network request. On success the store reaches its terminal state and the
// draft is cleared; on any failure all entered data is preserved.
func (s *Store) Submit(ctx context.Context) error {
	s.mu.Lock()
	if err := s.mutable(); err != nil {
		s.mu.Unlock()
		return err
	}

	data, errs := schema.Validate(s.schema, schema.RawData(s.data))
	if len(errs) > 0 {
		s.fieldErrs = errs
		s.step = s.earliestStepWith(errs)
		s.visited[s.step] = true
		s.mu.Unlock()
		return stderrors.NewValidationFailedError(len(errs))
	}

	s.status = StatusSubmitting
	s.errMsg = ""
	s.fieldErrs = nil
	formType := s.schema.Name
	s.mu.Unlock()

	resp, err := s.submitter.Submit(ctx, formType, data)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.status = StatusFailed
		s.errMsg = "Submission failed, please retry or contact support"
		s.logger.WithError(err).Error("submission transport failure", nil)
		return stderrors.NewSubmissionTransportError(err)
	}

	if !resp.Success {
		s.status = StatusFailed
		s.errMsg = resp.Error
		if len(resp.FieldErrors) > 0 {
			// Server-side rejection may span several steps; route the user to
			// the earliest one containing an offending field.
			s.fieldErrs = schema.FieldErrors(resp.FieldErrors)
			s.step = s.earliestStepWith(s.fieldErrs)
			s.visited[s.step] = true
		}
		s.logger.Warn("submission rejected by server", map[string]interface{}{
			"error":      resp.Error,
			"errorCount": len(resp.FieldErrors),
		})
		return stderrors.NewValidationFailedError(len(resp.FieldErrors))
	}

	s.status = StatusSucceeded
	s.data = make(schema.FormData)
	s.fieldErrs = nil
	if err := s.drafts.Clear(ctx); err != nil {
		s.logger.Warn("draft clear failed", map[string]interface{}{"error": err})
	}
	s.logger.Info("submission accepted", map[string]interface{}{"emailId": resp.EmailID})
	return nil
}

// mutable guards every mutation: nothing changes while a submission is in
// flight, and a successfully submitted wizard is terminal.
func (s *Store) mutable() error {
	switch s.status {
	case StatusSubmitting:
		return stderrors.NewSubmissionInFlightError()
	case StatusSucceeded:
		return ErrAlreadySubmitted
	default:
		return nil
	}
}

func (s *Store) validateStep(index int) schema.FieldErrors {
	_, errs := schema.ValidateFields(s.sections[index].Fields, schema.RawData(s.data))
	return errs
}

// earliestStepWith maps error paths back to their sections and returns the
// lowest step index involved. Paths like references[1].email resolve to the
// base field name.
func (s *Store) earliestStepWith(errs schema.FieldErrors) int {
	earliest := -1
	for path := range errs {
		base := path
		if i := strings.IndexAny(base, "[."); i >= 0 {
			base = base[:i]
		}
		step, ok := s.fieldStep[base]
		if !ok {
			continue
		}
		if earliest == -1 || step < earliest {
			earliest = step
		}
	}
	if earliest == -1 {
		return s.step
	}
	return earliest
}

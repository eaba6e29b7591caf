package engine

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/onboarding-engine/internal/complete"
	"github.com/jonathan/onboarding-engine/internal/session"
	"github.com/jonathan/onboarding-engine/internal/types"
)

// SessionStore is the persistence surface the engine drives. It is satisfied
// by *session.Coordinator.
type SessionStore interface {
	Load(ctx context.Context) (sess *types.OnboardingSession, fromCache bool)
	Save(ctx context.Context, sess *types.OnboardingSession)
	Clear(ctx context.Context) error
}

// Submitter finalizes onboarding. It is satisfied by *complete.Submitter.
type Submitter interface {
	Submit(ctx context.Context, data types.OnboardingData) (*complete.Result, error)
}

// Notifier surfaces user-facing messages (the toast equivalent).
type Notifier interface {
	Info(msg string)
	Error(msg string)
}

// EventRecorder emits fire-and-forget analytics events. Optional; a nil
// recorder disables tracking.
type EventRecorder interface {
	RecordEvent(ctx context.Context, event *types.AnalyticsEvent) error
}

type nopNotifier struct{}

func (nopNotifier) Info(string)  {}
func (nopNotifier) Error(string) {}

// Config wires the engine's collaborators. UserID and Sessions are required;
// Submit is required unless the flow never reaches the final data step.
type Config struct {
	UserID   uuid.UUID
	Sessions SessionStore
	Submit   Submitter
	Notify   Notifier
	Events   EventRecorder

	// Navigate is invoked once completion has settled successfully.
	// Routing itself lives outside the engine.
	Navigate func()

	// AutosaveDelay overrides the debounce window. Zero means the default.
	AutosaveDelay time.Duration

	// Now overrides the clock in tests.
	Now func() time.Time
}

// Engine is the wizard controller. All entry points are safe for concurrent
// use; state is guarded by a single mutex, mirroring the single-writer event
// loop the flow runs under.
type Engine struct {
	mu  sync.Mutex
	cfg Config

	sessionID uuid.UUID
	startedAt time.Time

	data      types.OnboardingData
	stepIndex int
	completed []int
	errors    map[string]string

	welcomeBack *types.WelcomeBackState
	result      *complete.Result

	// editSeq increments on every user mutation. A session load captures it
	// at start and discards its result if it changed, so a slow load never
	// clobbers in-flight edits.
	editSeq uint64

	debounce *session.Debouncer
	closed   bool
}

// New creates an Engine. The returned engine starts on the first step with
// empty data; call Load to hydrate a persisted session.
func New(cfg Config) *Engine {
	if cfg.Notify == nil {
		cfg.Notify = nopNotifier{}
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	e := &Engine{
		cfg:       cfg,
		startedAt: cfg.Now(),
		errors:    map[string]string{},
	}
	e.debounce = session.NewDebouncer(cfg.AutosaveDelay, e.autosave)
	return e
}

// Load hydrates the engine from the persisted session, if any, and computes
// the welcome-back state. Loading is best effort: a missing session is a
// normal cold start. If the user edited data while the load was in flight,
// the load result is discarded rather than clobbering their input.
func (e *Engine) Load(ctx context.Context) {
	e.mu.Lock()
	seq := e.editSeq
	e.mu.Unlock()

	sess, _ := e.cfg.Sessions.Load(ctx)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	if e.editSeq != seq {
		log.Printf("onboarding: discarding session load that raced user edits")
		return
	}
	if sess == nil {
		return
	}

	e.data = sess.FormData
	e.stepIndex = clampIndex(sess.CurrentStep)
	e.completed = dedupeIndices(sess.CompletedSteps)
	e.sessionID = sess.ID
	if !sess.StartedAt.IsZero() {
		e.startedAt = sess.StartedAt
	}
	e.welcomeBack = WelcomeBack(sess, e.cfg.Now())
	if e.welcomeBack != nil {
		e.recordEvent(types.EventResumed, e.currentStepLocked())
	}
}

// UpdateData merges the sections present in update into the collected data,
// clears any field errors those sections can fix, and arms the autosave
// debounce. Sections are replaced wholesale, never deep-merged.
func (e *Engine) UpdateData(update types.OnboardingData) {
	e.mu.Lock()
	sections := e.data.Merge(update)
	for _, sec := range sections {
		for _, field := range sectionFields[sec] {
			delete(e.errors, field)
		}
	}
	if len(sections) > 0 {
		e.editSeq++
	}
	e.mu.Unlock()

	if len(sections) > 0 {
		e.debounce.Arm()
	}
}

// ValidateCurrentStep runs the current step's rules and records the field
// errors for display.
func (e *Engine) ValidateCurrentStep() types.ValidationResult {
	e.mu.Lock()
	defer e.mu.Unlock()
	result := Validate(e.currentStepLocked(), e.data)
	e.errors = result.Errors
	return result
}

// NextStep validates the current step and advances on success. A validation
// failure records field errors and leaves the step unchanged; it is surfaced
// through the notifier, not the error return. On the final data step the
// profile submission runs first, and the step only advances once it
// succeeds; a failed submission is returned as *complete.ErrSubmitFailed
// with all state intact for retry.
func (e *Engine) NextStep(ctx context.Context) error {
	e.mu.Lock()
	step := e.currentStepLocked()
	if e.closed || step.Terminal() {
		e.mu.Unlock()
		return nil
	}

	result := Validate(step, e.data)
	if !result.IsValid {
		e.errors = result.Errors
		e.mu.Unlock()
		e.cfg.Notify.Error("Please complete all required fields")
		return nil
	}
	e.errors = map[string]string{}
	e.markCompletedLocked(e.stepIndex)

	if step == types.FinalDataStep {
		data := e.data
		e.mu.Unlock()
		return e.finishOnboarding(ctx, data)
	}

	e.stepIndex = clampIndex(e.stepIndex + 1)
	snap := e.snapshotLocked()
	e.mu.Unlock()

	e.saveNow(ctx, snap)
	e.recordEvent(types.EventStepCompleted, step)
	return nil
}

// PreviousStep moves one step back, clamped at the first step. Going
// backward needs no validation. The terminal step has no outgoing
// transitions, backward included.
func (e *Engine) PreviousStep(ctx context.Context) {
	e.mu.Lock()
	if e.closed || e.currentStepLocked().Terminal() || e.stepIndex == 0 {
		e.mu.Unlock()
		return
	}
	e.stepIndex--
	snap := e.snapshotLocked()
	e.mu.Unlock()

	e.saveNow(ctx, snap)
}

// SkipStep marks an optional step completed without validating it and
// advances. Skipping a non-optional step is a no-op. Skipping the final data
// step still triggers the completion submission.
func (e *Engine) SkipStep(ctx context.Context) error {
	e.mu.Lock()
	step := e.currentStepLocked()
	if e.closed || !step.Optional() {
		e.mu.Unlock()
		return nil
	}
	e.markCompletedLocked(e.stepIndex)

	if step == types.FinalDataStep {
		data := e.data
		e.mu.Unlock()
		return e.finishOnboarding(ctx, data)
	}

	e.stepIndex = clampIndex(e.stepIndex + 1)
	snap := e.snapshotLocked()
	e.mu.Unlock()

	e.saveNow(ctx, snap)
	e.recordEvent(types.EventStepSkipped, step)
	return nil
}

// GoToStep jumps directly to the given step without validation. Used for
// deep links and debugging. Unknown steps are ignored.
func (e *Engine) GoToStep(ctx context.Context, step types.Step) {
	index, ok := step.Index()
	if !ok {
		return
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.stepIndex = index
	snap := e.snapshotLocked()
	e.mu.Unlock()

	e.saveNow(ctx, snap)
}

// Save persists the current snapshot immediately, bypassing the debounce.
func (e *Engine) Save(ctx context.Context) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	snap := e.snapshotLocked()
	e.mu.Unlock()

	e.saveNow(ctx, snap)
}

// Close cancels any pending autosave and detaches the engine. In-flight
// network calls are allowed to finish; their results are discarded.
func (e *Engine) Close() {
	e.debounce.Stop()
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()
}

// CurrentStep returns the step the wizard is on.
func (e *Engine) CurrentStep() types.Step {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currentStepLocked()
}

// StepIndex returns the current step index.
func (e *Engine) StepIndex() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stepIndex
}

// Data returns the collected onboarding data.
func (e *Engine) Data() types.OnboardingData {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.data
}

// Errors returns the current field errors.
func (e *Engine) Errors() map[string]string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(map[string]string, len(e.errors))
	for k, v := range e.errors {
		out[k] = v
	}
	return out
}

// Progress returns the derived progress view.
func (e *Engine) Progress() types.Progress {
	e.mu.Lock()
	defer e.mu.Unlock()
	return CalculateProgress(e.stepIndex, e.completed)
}

// WelcomeBack returns the resumption summary computed at load time, or nil.
func (e *Engine) WelcomeBack() *types.WelcomeBackState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.welcomeBack
}

// Result returns the completion outcome once onboarding has finished, or nil.
func (e *Engine) Result() *complete.Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.result
}

// finishOnboarding runs the preferences -> activation edge: submit, then
// advance only after the submission settled successfully.
func (e *Engine) finishOnboarding(ctx context.Context, data types.OnboardingData) error {
	result, err := e.cfg.Submit.Submit(ctx, data)
	if err != nil {
		e.cfg.Notify.Error("Something went wrong. Please try again.")
		return err
	}

	// The session is cleared server- and cache-side; a pending autosave
	// would resurrect it.
	e.debounce.Cancel()

	e.mu.Lock()
	e.result = result
	e.stepIndex = types.TotalSteps - 1
	e.welcomeBack = nil
	e.mu.Unlock()

	e.cfg.Notify.Info("Your profile is ready.")
	e.recordEvent(types.EventCompleted, types.StepActivation)
	if e.cfg.Navigate != nil {
		e.cfg.Navigate()
	}
	return nil
}

// autosave is the debounced save path.
func (e *Engine) autosave() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	snap := e.snapshotLocked()
	e.mu.Unlock()

	e.cfg.Sessions.Save(context.Background(), snap)
}

// saveNow cancels any pending debounced save and persists immediately.
// Losing the current step index is worse than losing a few seconds of draft
// text, so transitions never wait out the debounce window.
func (e *Engine) saveNow(ctx context.Context, snap *types.OnboardingSession) {
	e.debounce.Cancel()
	e.cfg.Sessions.Save(ctx, snap)
}

func (e *Engine) snapshotLocked() *types.OnboardingSession {
	completed := make([]int, len(e.completed))
	copy(completed, e.completed)
	return &types.OnboardingSession{
		ID:             e.sessionID,
		UserID:         e.cfg.UserID,
		CurrentStep:    e.stepIndex,
		CompletedSteps: completed,
		FormData:       e.data,
		StartedAt:      e.startedAt,
	}
}

func (e *Engine) currentStepLocked() types.Step {
	step, _ := types.StepAt(e.stepIndex)
	return step
}

func (e *Engine) markCompletedLocked(index int) {
	for _, i := range e.completed {
		if i == index {
			return
		}
	}
	e.completed = append(e.completed, index)
}

func (e *Engine) recordEvent(eventType string, step types.Step) {
	if e.cfg.Events == nil {
		return
	}
	event := &types.AnalyticsEvent{EventType: eventType, StepName: string(step)}
	go func() {
		// Fire and forget; tracking must never block or fail the flow.
		_ = e.cfg.Events.RecordEvent(context.Background(), event)
	}()
}

func clampIndex(index int) int {
	if index < 0 {
		return 0
	}
	if index > types.TotalSteps-1 {
		return types.TotalSteps - 1
	}
	return index
}

func dedupeIndices(indices []int) []int {
	var out []int
	seen := map[int]bool{}
	for _, i := range indices {
		if i < 0 || i > types.TotalSteps-1 || seen[i] {
			continue
		}
		seen[i] = true
		out = append(out, i)
	}
	return out
}

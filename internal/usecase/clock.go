package usecase

import (
	"errors"
	"sync"
	"time"

	"github.com/longhd1308/ClockApp/internal/clock"
	"github.com/longhd1308/ClockApp/internal/domain"
	"github.com/longhd1308/ClockApp/internal/logging"
	"github.com/longhd1308/ClockApp/internal/picker"
	"github.com/longhd1308/ClockApp/internal/ticksource"
)

// ClockUseCase is the primary port for stopwatch and timer operations.
// This represents the application's use cases.
type ClockUseCase interface {
	Snapshot() domain.Snapshot
	Dispatch(mode domain.Mode, cmd domain.Command) error
	ScrollPicker(field picker.Field, offset float64) (domain.DurationSelection, error)
	SetPickerIndex(field picker.Field, index int) (domain.DurationSelection, error)
	SetSelection(sel domain.DurationSelection) error
	UpdateSettings(settings domain.Settings) error
	ToggleLanguage() (domain.Language, error)
	Subscribe(fn func(domain.Snapshot)) (unsubscribe func())
	Close()
}

// Option adjusts how NewClockUseCase wires its collaborators.
type Option func(*options)

type options struct {
	clock        clock.Clock
	tickInterval time.Duration
	alerter      domain.Alerter
	observe      CommandObserver
}

// CommandObserver is told about every dispatched command and its outcome.
type CommandObserver func(mode domain.Mode, cmd domain.Command, err error)

// WithClock replaces the real clock, typically with a clock.FakeClock in tests.
func WithClock(c clock.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithTickInterval overrides the persisted cadence for this process only.
func WithTickInterval(d time.Duration) Option {
	return func(o *options) { o.tickInterval = d }
}

// WithAlerter sets the port notified when a countdown completes.
func WithAlerter(a domain.Alerter) Option {
	return func(o *options) { o.alerter = a }
}

// WithCommandObserver reports every Dispatch for a known mode to fn.
func WithCommandObserver(fn CommandObserver) Option {
	return func(o *options) { o.observe = fn }
}

// clockInteractor implements ClockUseCase.
// It depends only on domain layer and secondary ports.
type clockInteractor struct {
	repo      domain.SettingsRepository
	alerter   domain.Alerter
	observe   CommandObserver
	source    *ticksource.Source
	stopwatch *StopwatchController
	timer     *TimerController

	mu       sync.RWMutex
	picker   *picker.Picker
	settings domain.Settings

	subMu     sync.Mutex
	subs      map[int]func(domain.Snapshot)
	nextSubID int
}

// NewClockUseCase creates the use case with both controllers idle.
// Dependencies are injected (secondary ports).
func NewClockUseCase(repo domain.SettingsRepository, opts ...Option) (ClockUseCase, error) {
	if repo == nil {
		return nil, errors.New("settings repository is required")
	}
	o := options{clock: clock.Real()}
	for _, opt := range opts {
		opt(&o)
	}

	settings, err := repo.Load()
	if err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	interval := settings.TickInterval
	if o.tickInterval > 0 {
		if o.tickInterval < domain.MinTickInterval || o.tickInterval > domain.MaxTickInterval {
			return nil, domain.ErrInvalidTickInterval
		}
		interval = o.tickInterval
	}

	source := ticksource.New(o.clock, interval)
	p := picker.New()
	p.SetSelection(settings.DefaultSelection)

	uc := &clockInteractor{
		repo:      repo,
		alerter:   o.alerter,
		observe:   o.observe,
		source:    source,
		stopwatch: NewStopwatchController(source),
		timer:     NewTimerController(source),
		picker:    p,
		settings:  settings,
		subs:      make(map[int]func(domain.Snapshot)),
	}
	uc.stopwatch.OnChange(func(domain.StopwatchView) { uc.publish() })
	uc.timer.OnChange(func(domain.TimerView) { uc.publish() })
	uc.timer.OnFinish(uc.finished)

	logging.Debugf("clock use case ready: lang=%s tick=%s", settings.Language, interval)
	return uc, nil
}

// Snapshot returns the current system state.
func (uc *clockInteractor) Snapshot() domain.Snapshot {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return domain.Snapshot{
		Stopwatch: uc.stopwatch.View(),
		Timer:     uc.timer.View(),
		Selection: uc.picker.Selection(),
		Settings:  uc.settings,
	}
}

// Dispatch routes cmd to the controller selected by mode. Timer commands run
// under uc.mu so Start seeds the countdown from exactly the selection the picker
// shows, with no edit in between.
func (uc *clockInteractor) Dispatch(mode domain.Mode, cmd domain.Command) error {
	err := uc.dispatch(mode, cmd)
	if uc.observe != nil && !errors.Is(err, domain.ErrUnknownMode) {
		uc.observe(mode, cmd, err)
	}
	return err
}

func (uc *clockInteractor) dispatch(mode domain.Mode, cmd domain.Command) error {
	switch mode {
	case domain.ModeStopwatch:
		_, err := uc.stopwatch.Do(cmd)
		return err
	case domain.ModeTimer:
		uc.mu.Lock()
		_, notify, err := uc.timer.apply(cmd, uc.picker.TotalSeconds())
		uc.mu.Unlock()
		if notify != nil {
			notify()
		}
		return err
	default:
		return domain.ErrUnknownMode
	}
}

// ScrollPicker feeds a scroll offset to one wheel.
func (uc *clockInteractor) ScrollPicker(field picker.Field, offset float64) (domain.DurationSelection, error) {
	return uc.editPicker(field, func(w *picker.Wheel) { w.Scroll(offset) })
}

// SetPickerIndex jumps one wheel to index, moving its offset with it.
func (uc *clockInteractor) SetPickerIndex(field picker.Field, index int) (domain.DurationSelection, error) {
	return uc.editPicker(field, func(w *picker.Wheel) { w.SetIndex(index) })
}

func (uc *clockInteractor) editPicker(field picker.Field, edit func(*picker.Wheel)) (domain.DurationSelection, error) {
	uc.mu.Lock()
	if !uc.timer.View().PickerEditable {
		sel := uc.picker.Selection()
		uc.mu.Unlock()
		return sel, domain.ErrPickerLocked
	}
	w, err := uc.picker.Wheel(field)
	if err != nil {
		sel := uc.picker.Selection()
		uc.mu.Unlock()
		return sel, err
	}
	edit(w)
	index, offset := w.Index(), w.Offset()
	sel := uc.picker.Selection()
	uc.mu.Unlock()

	logging.Debugf("picker %s -> %d (offset %.1f)", field, index, offset)
	uc.publish()
	return sel, nil
}

// SetSelection positions all three wheels at once.
func (uc *clockInteractor) SetSelection(sel domain.DurationSelection) error {
	uc.mu.Lock()
	if !uc.timer.View().PickerEditable {
		uc.mu.Unlock()
		return domain.ErrPickerLocked
	}
	uc.picker.SetSelection(sel)
	uc.mu.Unlock()

	uc.publish()
	return nil
}

// UpdateSettings validates, persists and applies new preferences. A new tick
// interval applies from the next Start or Resume.
func (uc *clockInteractor) UpdateSettings(settings domain.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	settings.DefaultSelection = settings.DefaultSelection.Clamp()
	if err := uc.repo.Save(settings); err != nil {
		return err
	}

	uc.mu.Lock()
	uc.settings = settings
	uc.mu.Unlock()
	uc.source.SetInterval(settings.TickInterval)

	logging.Infof("settings updated: lang=%s tick=%s", settings.Language, settings.TickInterval)
	uc.publish()
	return nil
}

// ToggleLanguage flips between Vietnamese and English and persists the choice.
func (uc *clockInteractor) ToggleLanguage() (domain.Language, error) {
	uc.mu.RLock()
	settings := uc.settings
	uc.mu.RUnlock()

	settings.Language = settings.Language.Toggle()
	if err := uc.UpdateSettings(settings); err != nil {
		return "", err
	}
	return settings.Language, nil
}

// Subscribe registers fn to receive a snapshot after every visible change.
// fn may be called from a tick goroutine and must not block.
func (uc *clockInteractor) Subscribe(fn func(domain.Snapshot)) func() {
	uc.subMu.Lock()
	id := uc.nextSubID
	uc.nextSubID++
	uc.subs[id] = fn
	uc.subMu.Unlock()

	return func() {
		uc.subMu.Lock()
		delete(uc.subs, id)
		uc.subMu.Unlock()
	}
}

// Close disarms both controllers.
func (uc *clockInteractor) Close() {
	uc.stopwatch.Close()
	uc.timer.Close()
	logging.Debugf("clock use case closed")
}

func (uc *clockInteractor) publish() {
	uc.subMu.Lock()
	fns := make([]func(domain.Snapshot), 0, len(uc.subs))
	for _, fn := range uc.subs {
		fns = append(fns, fn)
	}
	uc.subMu.Unlock()
	if len(fns) == 0 {
		return
	}

	snap := uc.Snapshot()
	for _, fn := range fns {
		fn(snap)
	}
}

func (uc *clockInteractor) finished() {
	if uc.alerter == nil {
		return
	}
	uc.mu.RLock()
	lang := uc.settings.Language
	uc.mu.RUnlock()

	if err := uc.alerter.Alert(lang); err != nil {
		logging.Warnf("timer alert failed: %v", err)
	}
}

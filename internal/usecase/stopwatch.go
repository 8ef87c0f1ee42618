package usecase

import (
	"sync"

	"github.com/longhd1308/ClockApp/internal/domain"
	"github.com/longhd1308/ClockApp/internal/logging"
	"github.com/longhd1308/ClockApp/internal/ticksource"
)

// StopwatchController owns one stopwatch and its tick handle.
// Commands and ticks are serialized by mu; a tick from a handle the slot no
// longer owns is dropped, so nothing moves after Pause or Reset returns.
type StopwatchController struct {
	mu       sync.Mutex
	state    domain.StopwatchState
	slot     *ticksource.Slot
	onChange func(domain.StopwatchView)
}

// NewStopwatchController creates an idle stopwatch ticking from source.
func NewStopwatchController(source *ticksource.Source) *StopwatchController {
	return &StopwatchController{slot: ticksource.NewSlot(source)}
}

// OnChange registers fn to receive the view after every command and tick.
func (c *StopwatchController) OnChange(fn func(domain.StopwatchView)) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// Do runs cmd. An illegal command returns domain.ErrIllegalCommand and changes nothing.
func (c *StopwatchController) Do(cmd domain.Command) (domain.StopwatchView, error) {
	c.mu.Lock()
	next, eff, err := c.state.Apply(cmd)
	if err != nil {
		view := c.state.View()
		c.mu.Unlock()
		logging.Debugf("%v", err)
		return view, err
	}
	c.state = next
	c.execute(eff)
	view := c.state.View()
	notify := c.onChange
	c.mu.Unlock()

	logging.Infof("stopwatch %s -> %s (%s)", cmd, view.State, view.Display)
	if notify != nil {
		notify(view)
	}
	return view, nil
}

func (c *StopwatchController) Start() error {
	_, err := c.Do(domain.CommandStart)
	return err
}

func (c *StopwatchController) Pause() error {
	_, err := c.Do(domain.CommandPause)
	return err
}

func (c *StopwatchController) Resume() error {
	_, err := c.Do(domain.CommandResume)
	return err
}

func (c *StopwatchController) Reset() error {
	_, err := c.Do(domain.CommandReset)
	return err
}

// View returns the current read model.
func (c *StopwatchController) View() domain.StopwatchView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.View()
}

// State returns a copy of the raw state.
func (c *StopwatchController) State() domain.StopwatchState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Close disarms the tick handle without touching the counter.
func (c *StopwatchController) Close() {
	c.mu.Lock()
	c.slot.Disarm()
	c.mu.Unlock()
}

// execute carries out a transition effect. Caller must hold c.mu.
func (c *StopwatchController) execute(eff domain.Effect) {
	switch eff {
	case domain.EffectArm:
		c.slot.Arm(c.tick)
	case domain.EffectDisarm:
		c.slot.Disarm()
	}
}

func (c *StopwatchController) tick(h *ticksource.Handle) {
	c.mu.Lock()
	if !c.slot.Owns(h) {
		c.mu.Unlock()
		logging.Tracef("stopwatch dropped stale tick")
		return
	}
	c.state = c.state.Tick()
	view := c.state.View()
	notify := c.onChange
	c.mu.Unlock()

	logging.Tracef("stopwatch tick %s", view.Display)
	if notify != nil {
		notify(view)
	}
}

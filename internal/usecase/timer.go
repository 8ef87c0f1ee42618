package usecase

import (
	"sync"

	"github.com/longhd1308/ClockApp/internal/domain"
	"github.com/longhd1308/ClockApp/internal/logging"
	"github.com/longhd1308/ClockApp/internal/ticksource"
)

// TimerController owns one countdown and its tick handle.
// The tick that brings the countdown to zero disarms the handle and moves the
// timer to Idle under the same lock, so no further tick can be applied.
type TimerController struct {
	mu       sync.Mutex
	state    domain.TimerState
	slot     *ticksource.Slot
	onChange func(domain.TimerView)
	onFinish func()
}

// NewTimerController creates an idle timer ticking from source.
func NewTimerController(source *ticksource.Source) *TimerController {
	return &TimerController{slot: ticksource.NewSlot(source)}
}

// OnChange registers fn to receive the view after every command and tick.
func (c *TimerController) OnChange(fn func(domain.TimerView)) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// OnFinish registers fn to run once each time a countdown reaches zero by ticking.
func (c *TimerController) OnFinish(fn func()) {
	c.mu.Lock()
	c.onFinish = fn
	c.mu.Unlock()
}

// Do runs cmd. seed is the configured duration in seconds and only matters for Start.
func (c *TimerController) Do(cmd domain.Command, seed int) (domain.TimerView, error) {
	view, notify, err := c.apply(cmd, seed)
	if notify != nil {
		notify()
	}
	return view, err
}

// apply runs cmd and hands back the change notification, if any, for the caller
// to deliver once it holds no locks.
func (c *TimerController) apply(cmd domain.Command, seed int) (domain.TimerView, func(), error) {
	c.mu.Lock()
	next, eff, err := c.state.Apply(cmd, seed)
	if err != nil {
		view := c.state.View()
		c.mu.Unlock()
		logging.Debugf("%v", err)
		return view, nil, err
	}
	c.state = next
	c.execute(eff)
	view := c.state.View()
	onChange := c.onChange
	c.mu.Unlock()

	logging.Infof("timer %s -> %s (%s)", cmd, view.State, view.Display)
	if onChange == nil {
		return view, nil, nil
	}
	return view, func() { onChange(view) }, nil
}

// Start begins a countdown of seed seconds.
func (c *TimerController) Start(seed int) error {
	_, err := c.Do(domain.CommandStart, seed)
	return err
}

func (c *TimerController) Pause() error {
	_, err := c.Do(domain.CommandPause, 0)
	return err
}

func (c *TimerController) Resume() error {
	_, err := c.Do(domain.CommandResume, 0)
	return err
}

func (c *TimerController) Reset() error {
	_, err := c.Do(domain.CommandReset, 0)
	return err
}

// View returns the current read model.
func (c *TimerController) View() domain.TimerView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.View()
}

// State returns a copy of the raw state.
func (c *TimerController) State() domain.TimerState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Close disarms the tick handle without touching the countdown.
func (c *TimerController) Close() {
	c.mu.Lock()
	c.slot.Disarm()
	c.mu.Unlock()
}

// execute carries out a transition effect. Caller must hold c.mu.
func (c *TimerController) execute(eff domain.Effect) {
	switch eff {
	case domain.EffectArm:
		c.slot.Arm(c.tick)
	case domain.EffectDisarm:
		c.slot.Disarm()
	}
}

func (c *TimerController) tick(h *ticksource.Handle) {
	c.mu.Lock()
	if !c.slot.Owns(h) {
		c.mu.Unlock()
		logging.Tracef("timer dropped stale tick")
		return
	}
	next, eff := c.state.Tick()
	c.state = next
	finished := eff == domain.EffectDisarm
	c.execute(eff)
	view := c.state.View()
	notify, done := c.onChange, c.onFinish
	c.mu.Unlock()

	logging.Tracef("timer tick %s", view.Display)
	if notify != nil {
		notify(view)
	}
	if finished {
		logging.Infof("timer finished after %ds", view.ConfiguredDuration)
		if done != nil {
			done()
		}
	}
}

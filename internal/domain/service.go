package domain

import "fmt"

// The transitions below are pure: they take a state and return the next one along
// with the effect the owning controller has to carry out. Nothing here touches a
// clock, a lock, or a tick handle.

var legalCommands = map[RunState][]Command{
	StateIdle:    {CommandStart},
	StateRunning: {CommandPause, CommandReset},
	StatePaused:  {CommandResume, CommandReset},
}

// LegalCommands returns the commands a presentation layer may offer in state s.
func LegalCommands(s RunState) []Command {
	cmds := legalCommands[s]
	out := make([]Command, len(cmds))
	copy(out, cmds)
	return out
}

// Allows reports whether cmd is legal in state s.
func (s RunState) Allows(cmd Command) bool {
	for _, c := range legalCommands[s] {
		if c == cmd {
			return true
		}
	}
	return false
}

// Apply runs cmd against the stopwatch. An illegal command leaves the state as is.
func (s StopwatchState) Apply(cmd Command) (StopwatchState, Effect, error) {
	if !s.Run.Allows(cmd) {
		return s, EffectNone, fmt.Errorf("stopwatch %s while %s: %w", cmd, s.Run, ErrIllegalCommand)
	}
	switch cmd {
	case CommandStart, CommandResume:
		s.Run = StateRunning
		return s, EffectArm, nil
	case CommandPause:
		s.Run = StatePaused
		return s, EffectDisarm, nil
	default:
		return StopwatchState{}, EffectDisarm, nil
	}
}

// Tick counts one tick. Only a running stopwatch moves.
func (s StopwatchState) Tick() StopwatchState {
	if s.Run == StateRunning {
		s.ElapsedSeconds++
	}
	return s
}

// Apply runs cmd against the timer. seed is the configured duration read from
// the picker and is only consulted by Start. A zero seed completes at once:
// the timer stays Idle and nothing is armed.
func (s TimerState) Apply(cmd Command, seed int) (TimerState, Effect, error) {
	if !s.Run.Allows(cmd) {
		return s, EffectNone, fmt.Errorf("timer %s while %s: %w", cmd, s.Run, ErrIllegalCommand)
	}
	switch cmd {
	case CommandStart:
		seed = clamp(seed, 0, MaxDuration)
		s.ConfiguredDuration = seed
		s.RemainingSeconds = seed
		if seed == 0 {
			s.Run = StateIdle
			return s, EffectNone, nil
		}
		s.Run = StateRunning
		return s, EffectArm, nil
	case CommandResume:
		s.Run = StateRunning
		return s, EffectArm, nil
	case CommandPause:
		s.Run = StatePaused
		return s, EffectDisarm, nil
	default:
		return TimerState{}, EffectDisarm, nil
	}
}

// Tick counts down one tick. Reaching zero auto-stops the timer and asks for the
// handle to be disarmed; that EffectDisarm is the only signal of completion.
func (s TimerState) Tick() (TimerState, Effect) {
	if s.Run != StateRunning {
		return s, EffectNone
	}
	if s.RemainingSeconds > 0 {
		s.RemainingSeconds--
	}
	if s.RemainingSeconds == 0 {
		s.Run = StateIdle
		return s, EffectDisarm
	}
	return s, EffectNone
}

// PickerEditable reports whether the duration picker accepts input.
func (s TimerState) PickerEditable() bool {
	return s.Run == StateIdle && s.RemainingSeconds == 0
}

// FormatStopwatch renders elapsed seconds as MM:SS. Minutes do not roll over
// into hours, so an hour and a half reads 90:00.
func FormatStopwatch(total int) string {
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// FormatTimer renders remaining seconds as "HH : MM : SS".
func FormatTimer(total int) string {
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%02d : %02d : %02d", total/3600, total%3600/60, total%60)
}

// View builds the read model of the stopwatch.
func (s StopwatchState) View() StopwatchView {
	return StopwatchView{
		ElapsedSeconds: s.ElapsedSeconds,
		State:          s.Run.String(),
		Display:        FormatStopwatch(s.ElapsedSeconds),
		Commands:       LegalCommands(s.Run),
	}
}

// View builds the read model of the timer.
func (s TimerState) View() TimerView {
	return TimerView{
		RemainingSeconds:   s.RemainingSeconds,
		ConfiguredDuration: s.ConfiguredDuration,
		State:              s.Run.String(),
		Display:            FormatTimer(s.RemainingSeconds),
		PickerEditable:     s.PickerEditable(),
		Commands:           LegalCommands(s.Run),
	}
}

package domain

import (
	"strings"
	"time"
)

// RunState is the lifecycle flag shared by the stopwatch and the timer.
type RunState int

const (
	StateIdle RunState = iota
	StateRunning
	StatePaused
)

func (s RunState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// Command is a user-originated request to a controller.
type Command int

const (
	CommandStart Command = iota
	CommandPause
	CommandResume
	CommandReset
)

func (c Command) String() string {
	switch c {
	case CommandStart:
		return "start"
	case CommandPause:
		return "pause"
	case CommandResume:
		return "resume"
	case CommandReset:
		return "reset"
	default:
		return "unknown"
	}
}

// ParseCommand converts adapter input into a Command.
func ParseCommand(s string) (Command, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "start":
		return CommandStart, nil
	case "pause":
		return CommandPause, nil
	case "resume", "continue":
		return CommandResume, nil
	case "reset":
		return CommandReset, nil
	default:
		return 0, ErrUnknownCommand
	}
}

// Effect tells a controller what to do with its tick handle after a transition.
type Effect int

const (
	EffectNone Effect = iota
	EffectArm
	EffectDisarm
)

func (e Effect) String() string {
	switch e {
	case EffectNone:
		return "none"
	case EffectArm:
		return "arm"
	case EffectDisarm:
		return "disarm"
	default:
		return "unknown"
	}
}

// Mode selects which controller a command is meant for.
type Mode string

const (
	ModeStopwatch Mode = "stopwatch"
	ModeTimer     Mode = "timer"
)

// ParseMode accepts the mode name or its short alias.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "stopwatch", "sw":
		return ModeStopwatch, nil
	case "timer", "countdown":
		return ModeTimer, nil
	default:
		return "", ErrUnknownMode
	}
}

// Language selects the label dictionary. It never affects the state machines.
type Language string

const (
	LanguageVietnamese Language = "vi"
	LanguageEnglish    Language = "en"
)

// ParseLanguage accepts ISO codes and English names.
func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vi", "vietnamese", "tiếng việt":
		return LanguageVietnamese, nil
	case "en", "english":
		return LanguageEnglish, nil
	default:
		return "", ErrUnknownLanguage
	}
}

// Toggle returns the other language.
func (l Language) Toggle() Language {
	if l == LanguageEnglish {
		return LanguageVietnamese
	}
	return LanguageEnglish
}

// Upper bounds of each DurationSelection field.
const (
	MaxHours   = 23
	MaxMinutes = 59
	MaxSeconds = 59

	// MaxDuration is 24h minus one second.
	MaxDuration = MaxHours*3600 + MaxMinutes*60 + MaxSeconds
)

// DurationSelection is the hours/minutes/seconds triple chosen in the picker.
type DurationSelection struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// Clamp forces every field into its documented range.
func (d DurationSelection) Clamp() DurationSelection {
	return DurationSelection{
		Hours:   clamp(d.Hours, 0, MaxHours),
		Minutes: clamp(d.Minutes, 0, MaxMinutes),
		Seconds: clamp(d.Seconds, 0, MaxSeconds),
	}
}

// TotalSeconds returns the configured duration of the clamped selection.
func (d DurationSelection) TotalSeconds() int {
	c := d.Clamp()
	return c.Hours*3600 + c.Minutes*60 + c.Seconds
}

// SelectionFromSeconds splits a duration in seconds into a clamped selection.
func SelectionFromSeconds(total int) DurationSelection {
	total = clamp(total, 0, MaxDuration)
	return DurationSelection{
		Hours:   total / 3600,
		Minutes: total % 3600 / 60,
		Seconds: total % 60,
	}
}

// StopwatchState is owned exclusively by the stopwatch controller.
type StopwatchState struct {
	ElapsedSeconds int
	Run            RunState
}

// TimerState is owned exclusively by the timer controller.
type TimerState struct {
	RemainingSeconds   int
	ConfiguredDuration int
	Run                RunState
}

// Settings are the persisted user preferences.
type Settings struct {
	Language         Language
	TickInterval     time.Duration
	DefaultSelection DurationSelection
}

// Limits for Settings.TickInterval.
const (
	MinTickInterval = 100 * time.Millisecond
	MaxTickInterval = 10 * time.Second
)

// Validate checks if the settings values are usable.
func (s Settings) Validate() error {
	if _, err := ParseLanguage(string(s.Language)); err != nil {
		return err
	}
	if s.TickInterval < MinTickInterval || s.TickInterval > MaxTickInterval {
		return ErrInvalidTickInterval
	}
	return nil
}

// DefaultSettings returns the initial preferences: Vietnamese labels, one tick a second.
func DefaultSettings() Settings {
	return Settings{
		Language:     LanguageVietnamese,
		TickInterval: time.Second,
	}
}

// StopwatchView is the stopwatch part of a Snapshot.
type StopwatchView struct {
	ElapsedSeconds int       `json:"elapsedSeconds"`
	State          string    `json:"state"`
	Display        string    `json:"display"`
	Commands       []Command `json:"-"`
}

// TimerView is the timer part of a Snapshot.
type TimerView struct {
	RemainingSeconds   int       `json:"remainingSeconds"`
	ConfiguredDuration int       `json:"configuredDuration"`
	State              string    `json:"state"`
	Display            string    `json:"display"`
	PickerEditable     bool      `json:"pickerEditable"`
	Commands           []Command `json:"-"`
}

// Snapshot represents a complete view of the system state.
type Snapshot struct {
	Stopwatch StopwatchView
	Timer     TimerView
	Selection DurationSelection
	Settings  Settings
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

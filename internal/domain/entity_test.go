package domain

import (
	"errors"
	"testing"
	"time"
)

func TestDurationSelectionClamp(t *testing.T) {
	got := DurationSelection{Hours: 30, Minutes: -1, Seconds: 75}.Clamp()
	want := DurationSelection{Hours: 23, Minutes: 0, Seconds: 59}
	if got != want {
		t.Errorf("Clamp() = %+v, want %+v", got, want)
	}
}

func TestDurationSelectionTotalSeconds(t *testing.T) {
	if got := (DurationSelection{Hours: 1, Minutes: 2, Seconds: 3}).TotalSeconds(); got != 3723 {
		t.Errorf("TotalSeconds() = %d, want 3723", got)
	}
	if got := (DurationSelection{Hours: -5}).TotalSeconds(); got != 0 {
		t.Errorf("negative selection TotalSeconds() = %d, want 0", got)
	}
}

func TestSelectionFromSeconds(t *testing.T) {
	if got := SelectionFromSeconds(3723); got != (DurationSelection{Hours: 1, Minutes: 2, Seconds: 3}) {
		t.Errorf("SelectionFromSeconds(3723) = %+v", got)
	}
	if got := SelectionFromSeconds(MaxDuration + 100); got.TotalSeconds() != MaxDuration {
		t.Errorf("overflow not clamped: %+v", got)
	}
}

func TestParseCommand(t *testing.T) {
	for in, want := range map[string]Command{
		"start": CommandStart, "PAUSE": CommandPause, " resume ": CommandResume,
		"continue": CommandResume, "reset": CommandReset,
	} {
		got, err := ParseCommand(in)
		if err != nil || got != want {
			t.Errorf("ParseCommand(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseCommand("lap"); !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("ParseCommand(lap) err = %v", err)
	}
}

func TestParseLanguageAndToggle(t *testing.T) {
	if l, err := ParseLanguage("English"); err != nil || l != LanguageEnglish {
		t.Errorf("ParseLanguage(English) = %v, %v", l, err)
	}
	if _, err := ParseLanguage("fr"); !errors.Is(err, ErrUnknownLanguage) {
		t.Errorf("ParseLanguage(fr) err = %v", err)
	}
	if LanguageVietnamese.Toggle() != LanguageEnglish || LanguageEnglish.Toggle() != LanguageVietnamese {
		t.Error("Toggle does not flip between vi and en")
	}
}

func TestSettingsValidate(t *testing.T) {
	if err := DefaultSettings().Validate(); err != nil {
		t.Errorf("default settings invalid: %v", err)
	}
	s := DefaultSettings()
	s.TickInterval = 10 * time.Millisecond
	if err := s.Validate(); !errors.Is(err, ErrInvalidTickInterval) {
		t.Errorf("10ms tick: err = %v", err)
	}
	s = DefaultSettings()
	s.Language = "de"
	if err := s.Validate(); !errors.Is(err, ErrUnknownLanguage) {
		t.Errorf("language de: err = %v", err)
	}
}

package alert

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/longhd1308/ClockApp/internal/domain"
)

func TestBellAlerter(t *testing.T) {
	var buf bytes.Buffer
	a := NewBellAlerter(&buf)

	if err := a.Alert(domain.LanguageVietnamese); err != nil {
		t.Fatal(err)
	}
	if err := a.Alert(domain.LanguageEnglish); err != nil {
		t.Fatal(err)
	}
	want := "\a\nHết giờ!\n\a\nTime's up!\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestNoopAlerter(t *testing.T) {
	if err := NewNoopAlerter().Alert(domain.LanguageEnglish); err != nil {
		t.Errorf("Alert() = %v", err)
	}
}

func TestCommandAlerter_Args(t *testing.T) {
	a, err := NewCommandAlerter(`notify-send "Clock App" '{message}'`)
	if err != nil {
		t.Fatal(err)
	}
	got := a.Args(domain.LanguageEnglish)
	want := []string{"notify-send", "Clock App", "Time's up!"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("Args() = %q, want %q", got, want)
	}
}

func TestNewCommandAlerter_Errors(t *testing.T) {
	if _, err := NewCommandAlerter("   "); err == nil {
		t.Error("empty command accepted")
	}
	if _, err := NewCommandAlerter(`echo "unterminated`); err == nil {
		t.Error("unbalanced quote accepted")
	}
}

func TestCommandAlerter_MissingProgram(t *testing.T) {
	a, _ := NewCommandAlerter("clockapp-no-such-binary {message}")
	if err := a.Alert(domain.LanguageEnglish); err == nil {
		t.Error("Alert() succeeded for a missing program")
	}
}

type failing struct{ calls int }

func (f *failing) Alert(domain.Language) error {
	f.calls++
	return errors.New("boom")
}

func TestMulti(t *testing.T) {
	var buf bytes.Buffer
	f := &failing{}
	m := Multi{f, NewBellAlerter(&buf)}

	if err := m.Alert(domain.LanguageEnglish); err == nil {
		t.Error("Multi swallowed an error")
	}
	if f.calls != 1 || !strings.Contains(buf.String(), "Time's up!") {
		t.Errorf("not every alerter ran: calls=%d out=%q", f.calls, buf.String())
	}
}

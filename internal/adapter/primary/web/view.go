package web

import (
	"github.com/longhd1308/ClockApp/internal/domain"
	"github.com/longhd1308/ClockApp/internal/i18n"
)

type stopwatchView struct {
	ElapsedSeconds int      `json:"elapsedSeconds"`
	State          string   `json:"state"`
	StateLabel     string   `json:"stateLabel"`
	Display        string   `json:"display"`
	Commands       []string `json:"commands"`
}

type timerView struct {
	RemainingSeconds   int      `json:"remainingSeconds"`
	ConfiguredDuration int      `json:"configuredDuration"`
	State              string   `json:"state"`
	StateLabel         string   `json:"stateLabel"`
	Display            string   `json:"display"`
	PickerEditable     bool     `json:"pickerEditable"`
	Commands           []string `json:"commands"`
}

type settingsView struct {
	Language         string                   `json:"language"`
	TickInterval     string                   `json:"tickInterval"`
	DefaultSelection domain.DurationSelection `json:"defaultSelection"`
}

type stateView struct {
	Stopwatch stopwatchView            `json:"stopwatch"`
	Timer     timerView                `json:"timer"`
	Picker    domain.DurationSelection `json:"picker"`
	Settings  settingsView             `json:"settings"`
	Labels    map[string]string        `json:"labels"`
}

func snapshotToView(snap domain.Snapshot) stateView {
	lang := snap.Settings.Language
	return stateView{
		Stopwatch: stopwatchView{
			ElapsedSeconds: snap.Stopwatch.ElapsedSeconds,
			State:          snap.Stopwatch.State,
			StateLabel:     i18n.StateLabel(lang, snap.Stopwatch.State),
			Display:        snap.Stopwatch.Display,
			Commands:       commandNames(snap.Stopwatch.Commands),
		},
		Timer: timerView{
			RemainingSeconds:   snap.Timer.RemainingSeconds,
			ConfiguredDuration: snap.Timer.ConfiguredDuration,
			State:              snap.Timer.State,
			StateLabel:         i18n.StateLabel(lang, snap.Timer.State),
			Display:            snap.Timer.Display,
			PickerEditable:     snap.Timer.PickerEditable,
			Commands:           commandNames(snap.Timer.Commands),
		},
		Picker:   snap.Selection,
		Settings: settingsToView(snap.Settings),
		Labels:   i18n.Dictionary(lang),
	}
}

func settingsToView(s domain.Settings) settingsView {
	return settingsView{
		Language:         string(s.Language),
		TickInterval:     s.TickInterval.String(),
		DefaultSelection: s.DefaultSelection,
	}
}

func commandNames(cmds []domain.Command) []string {
	out := make([]string, 0, len(cmds))
	for _, c := range cmds {
		out = append(out, c.String())
	}
	return out
}

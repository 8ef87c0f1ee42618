package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/longhd1308/ClockApp/internal/domain"
	"github.com/longhd1308/ClockApp/internal/i18n"
)

// settingsDoc is the printable form of domain.Settings.
type settingsDoc struct {
	Language         string       `json:"language" yaml:"language"`
	TickInterval     string       `json:"tickInterval" yaml:"tickInterval"`
	DefaultSelection selectionDoc `json:"defaultSelection" yaml:"defaultSelection"`
}

type selectionDoc struct {
	Hours   int `json:"hours" yaml:"hours"`
	Minutes int `json:"minutes" yaml:"minutes"`
	Seconds int `json:"seconds" yaml:"seconds"`
}

func toSettingsDoc(s domain.Settings) settingsDoc {
	return settingsDoc{
		Language:     string(s.Language),
		TickInterval: s.TickInterval.String(),
		DefaultSelection: selectionDoc{
			Hours:   s.DefaultSelection.Hours,
			Minutes: s.DefaultSelection.Minutes,
			Seconds: s.DefaultSelection.Seconds,
		},
	}
}

func writeSettings(out io.Writer, format string, s domain.Settings) error {
	doc := toSettingsDoc(s)
	switch format {
	case "json", "":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case "table":
		table := tablewriter.NewWriter(out)
		table.Append([]string{"Setting", "Value"})
		table.Append([]string{"language", doc.Language})
		table.Append([]string{"tickInterval", doc.TickInterval})
		table.Append([]string{"defaultSelection", domain.FormatTimer(s.DefaultSelection.TotalSeconds())})
		table.Render()
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// writeStatus prints both clocks as a table with labels in the current language.
func writeStatus(out io.Writer, snap domain.Snapshot) {
	lang := snap.Settings.Language

	table := tablewriter.NewWriter(out)
	table.Append([]string{"", "Display", "State", "Commands"})
	table.Append([]string{
		i18n.Text(lang, i18n.KeyStopwatchTitle),
		snap.Stopwatch.Display,
		i18n.StateLabel(lang, snap.Stopwatch.State),
		commandLabels(lang, snap.Stopwatch.Commands),
	})
	table.Append([]string{
		i18n.Text(lang, i18n.KeyTimerTitle),
		snap.Timer.Display,
		i18n.StateLabel(lang, snap.Timer.State),
		commandLabels(lang, snap.Timer.Commands),
	})
	table.Render()

	locked := ""
	if !snap.Timer.PickerEditable {
		locked = " (locked)"
	}
	fmt.Fprintf(out, "%s %02d  %s %02d  %s %02d%s\n",
		i18n.Text(lang, i18n.KeyHours), snap.Selection.Hours,
		i18n.Text(lang, i18n.KeyMinutes), snap.Selection.Minutes,
		i18n.Text(lang, i18n.KeySeconds), snap.Selection.Seconds,
		locked)
}

func commandLabels(lang domain.Language, cmds []domain.Command) string {
	labels := make([]string, 0, len(cmds))
	for _, c := range cmds {
		labels = append(labels, fmt.Sprintf("%s (%s)", i18n.CommandLabel(lang, c), c))
	}
	return strings.Join(labels, ", ")
}

// Package i18n holds the Vietnamese and English labels shown around the clocks.
// Switching language only changes strings; it never reaches the controllers.
package i18n

import "github.com/longhd1308/ClockApp/internal/domain"

// Key identifies a label.
type Key string

const (
	KeyStopwatchTitle Key = "stopwatch.title"
	KeyTimerTitle     Key = "timer.title"
	KeySettings       Key = "settings.title"
	KeyChangeLanguage Key = "settings.language"
	KeyStart          Key = "command.start"
	KeyPause          Key = "command.pause"
	KeyResume         Key = "command.resume"
	KeyReset          Key = "command.reset"
	KeyIdle           Key = "state.idle"
	KeyRunning        Key = "state.running"
	KeyPaused         Key = "state.paused"
	KeyTimesUp        Key = "timer.done"
	KeyHours          Key = "picker.hours"
	KeyMinutes        Key = "picker.minutes"
	KeySeconds        Key = "picker.seconds"
)

var dictionaries = map[domain.Language]map[Key]string{
	domain.LanguageVietnamese: {
		KeyStopwatchTitle: "Bấm Giờ",
		KeyTimerTitle:     "Hẹn Giờ",
		KeySettings:       "Cài Đặt",
		KeyChangeLanguage: "Chuyển Đổi Ngôn Ngữ",
		KeyStart:          "Bắt đầu",
		KeyPause:          "Tạm dừng",
		KeyResume:         "Tiếp tục",
		KeyReset:          "Đặt lại",
		KeyIdle:           "Sẵn sàng",
		KeyRunning:        "Đang chạy",
		KeyPaused:         "Đã dừng",
		KeyTimesUp:        "Hết giờ!",
		KeyHours:          "Giờ",
		KeyMinutes:        "Phút",
		KeySeconds:        "Giây",
	},
	domain.LanguageEnglish: {
		KeyStopwatchTitle: "Stopwatch",
		KeyTimerTitle:     "Timer",
		KeySettings:       "Settings",
		KeyChangeLanguage: "Change Language",
		KeyStart:          "Start",
		KeyPause:          "Pause",
		KeyResume:         "Resume",
		KeyReset:          "Reset",
		KeyIdle:           "Ready",
		KeyRunning:        "Running",
		KeyPaused:         "Paused",
		KeyTimesUp:        "Time's up!",
		KeyHours:          "Hours",
		KeyMinutes:        "Minutes",
		KeySeconds:        "Seconds",
	},
}

// Text returns the label for key in lang. Unknown languages fall back to
// Vietnamese and unknown keys to the key itself.
func Text(lang domain.Language, key Key) string {
	dict, ok := dictionaries[lang]
	if !ok {
		dict = dictionaries[domain.LanguageVietnamese]
	}
	if s, ok := dict[key]; ok {
		return s
	}
	return string(key)
}

// CommandLabel returns the button label of cmd.
func CommandLabel(lang domain.Language, cmd domain.Command) string {
	switch cmd {
	case domain.CommandStart:
		return Text(lang, KeyStart)
	case domain.CommandPause:
		return Text(lang, KeyPause)
	case domain.CommandResume:
		return Text(lang, KeyResume)
	case domain.CommandReset:
		return Text(lang, KeyReset)
	default:
		return cmd.String()
	}
}

// StateLabel returns the status label of s.
func StateLabel(lang domain.Language, s string) string {
	switch s {
	case domain.StateRunning.String():
		return Text(lang, KeyRunning)
	case domain.StatePaused.String():
		return Text(lang, KeyPaused)
	default:
		return Text(lang, KeyIdle)
	}
}

// Keys returns every known key, in declaration order.
func Keys() []Key {
	return []Key{
		KeyStopwatchTitle, KeyTimerTitle, KeySettings, KeyChangeLanguage,
		KeyStart, KeyPause, KeyResume, KeyReset,
		KeyIdle, KeyRunning, KeyPaused, KeyTimesUp,
		KeyHours, KeyMinutes, KeySeconds,
	}
}

// Dictionary returns a copy of every label in lang.
func Dictionary(lang domain.Language) map[string]string {
	out := make(map[string]string, len(Keys()))
	for _, k := range Keys() {
		out[string(k)] = Text(lang, k)
	}
	return out
}

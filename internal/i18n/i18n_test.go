package i18n

import (
	"testing"

	"github.com/longhd1308/ClockApp/internal/domain"
)

func TestText(t *testing.T) {
	tests := []struct {
		lang domain.Language
		key  Key
		want string
	}{
		{domain.LanguageVietnamese, KeyStopwatchTitle, "Bấm Giờ"},
		{domain.LanguageEnglish, KeyStopwatchTitle, "Stopwatch"},
		{domain.LanguageVietnamese, KeySettings, "Cài Đặt"},
		{domain.LanguageEnglish, KeyChangeLanguage, "Change Language"},
		{"fr", KeySettings, "Cài Đặt"},
		{domain.LanguageEnglish, Key("nope"), "nope"},
	}
	for _, tt := range tests {
		if got := Text(tt.lang, tt.key); got != tt.want {
			t.Errorf("Text(%s, %s) = %q, want %q", tt.lang, tt.key, got, tt.want)
		}
	}
}

func TestDictionariesAreComplete(t *testing.T) {
	for lang, dict := range dictionaries {
		for _, k := range Keys() {
			if dict[k] == "" {
				t.Errorf("%s is missing %s", lang, k)
			}
		}
		if len(dict) != len(Keys()) {
			t.Errorf("%s has %d labels, Keys() lists %d", lang, len(dict), len(Keys()))
		}
	}
}

func TestLabels(t *testing.T) {
	if got := CommandLabel(domain.LanguageEnglish, domain.CommandResume); got != "Resume" {
		t.Errorf("CommandLabel = %q", got)
	}
	if got := StateLabel(domain.LanguageVietnamese, "paused"); got != "Đã dừng" {
		t.Errorf("StateLabel = %q", got)
	}
	if got := Dictionary(domain.LanguageEnglish)[string(KeyTimesUp)]; got != "Time's up!" {
		t.Errorf("Dictionary()[timer.done] = %q", got)
	}
}

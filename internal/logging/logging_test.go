package logging

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestSetVerbosity(t *testing.T) {
	defer SetVerbosity(0)

	tests := []struct {
		count     int
		wantLevel Level
		wantCount int
	}{
		{-1, LevelWarn, 0},
		{0, LevelWarn, 0},
		{1, LevelInfo, 1},
		{2, LevelDebug, 2},
		{3, LevelTrace, 3},
		{9, LevelTrace, 4},
	}
	for _, tt := range tests {
		SetVerbosity(tt.count)
		if CurrentLevel() != tt.wantLevel || Verbosity() != tt.wantCount {
			t.Errorf("SetVerbosity(%d): level=%s count=%d, want %s/%d",
				tt.count, CurrentLevel(), Verbosity(), tt.wantLevel, tt.wantCount)
		}
	}
}

func TestParseLevel(t *testing.T) {
	l, count, err := ParseLevel("DEBUG")
	if err != nil || l != LevelDebug || count != 2 {
		t.Errorf("ParseLevel(DEBUG) = %s, %d, %v", l, count, err)
	}
	if _, _, err := ParseLevel("loud"); err == nil {
		t.Error("ParseLevel(loud) returned nil error")
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)
	defer SetVerbosity(0)

	SetVerbosity(1)
	Debugf("hidden %d", 1)
	Infof("shown %d", 2)
	Errorf("always %d", 3)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line written at info level: %q", out)
	}
	if !strings.Contains(out, "[INFO] shown 2") || !strings.Contains(out, "[ERR] always 3") {
		t.Errorf("missing lines in %q", out)
	}
	if !strings.Contains(out, "clockapp ") {
		t.Errorf("missing prefix in %q", out)
	}
}

package logger

import (
	"testing"

	"go.uber.org/zap"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		mode      string
		wantDebug bool
	}{
		{mode: "prod", wantDebug: false},
		{mode: "production", wantDebug: false},
		{mode: "dev", wantDebug: true},
		{mode: "", wantDebug: true},
	}

	for _, tt := range tests {
		l, err := New(tt.mode)
		if err != nil {
			t.Fatalf("New(%q) returned error: %v", tt.mode, err)
		}
		core := l.SugaredLogger.Desugar().Core()
		if got := core.Enabled(zap.DebugLevel); got != tt.wantDebug {
			t.Errorf("New(%q): debug enabled = %v, want %v", tt.mode, got, tt.wantDebug)
		}
		if !core.Enabled(zap.InfoLevel) {
			t.Errorf("New(%q): info must be enabled", tt.mode)
		}
	}
}

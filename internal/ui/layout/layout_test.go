package layout

import (
	"strings"
	"testing"
)

func TestFormatClock(t *testing.T) {
	tests := []struct {
		secs int
		want string
	}{
		{0, "0:00"},
		{-5, "0:00"},
		{59, "0:59"},
		{144, "2:24"},
		{3600, "1:00:00"},
		{7325, "2:02:05"},
	}
	for _, tt := range tests {
		if got := FormatClock(tt.secs); got != tt.want {
			t.Errorf("FormatClock(%d) = %q, want %q", tt.secs, got, tt.want)
		}
	}
}

func TestIsTooSmall(t *testing.T) {
	if !IsTooSmall(79, 30) || !IsTooSmall(100, 23) {
		t.Error("expected below-minimum sizes to be too small")
	}
	if IsTooSmall(MinWidth, MinHeight) {
		t.Error("minimum size should fit")
	}
}

func TestContentHeight(t *testing.T) {
	if got := ContentHeight(30); got != 30-HeaderHeight-FooterHeight {
		t.Errorf("ContentHeight(30) = %d", got)
	}
	if got := ContentHeight(2); got != 0 {
		t.Errorf("ContentHeight(2) = %d, want 0", got)
	}
}

func TestRenderHeader_ShowsStatus(t *testing.T) {
	h := RenderHeader("CWI · exam", "⏱ 2:24", 100)
	if !strings.Contains(h, "CWI · exam") || !strings.Contains(h, "⏱ 2:24") {
		t.Errorf("header missing title or status:\n%s", h)
	}
}

func TestRenderFooter_JoinsHints(t *testing.T) {
	f := RenderFooter([]KeyHint{{Key: "Esc", Description: "Back"}, {Key: "Ctrl+C", Description: "Quit"}}, 100)
	if !strings.Contains(f, "Esc") || !strings.Contains(f, "Quit") {
		t.Errorf("footer missing hints:\n%s", f)
	}
}

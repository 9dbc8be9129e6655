package telegram

import (
	"strings"
	"testing"
	"time"
)

func TestFormatSummary(t *testing.T) {
	s := Summary{
		RunID:            "run-1234",
		Inserted:         4200,
		EstimatedFriends: 17,
		NewFriends:       250,
		Duration:         3520 * time.Millisecond,
	}

	msg := formatSummary(s)
	for _, want := range []string{"run\\-1234", "4200", "17", "250"} {
		if !strings.Contains(msg, want) {
			t.Errorf("summary message missing %q:\n%s", want, msg)
		}
	}
}

func TestEscapeMarkdownV2(t *testing.T) {
	got := escapeMarkdownV2("3.52s (ok!)")
	want := `3\.52s \(ok\!\)`
	if got != want {
		t.Errorf("escapeMarkdownV2 = %q, want %q", got, want)
	}
}

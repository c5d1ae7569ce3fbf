package timeutil

import (
	"testing"
	"time"
)

func TestRelative(t *testing.T) {
	cases := map[time.Duration]string{
		200 * time.Millisecond: "just now",
		5 * time.Second:        "5s ago",
		2 * time.Minute:        "2m ago",
		3 * time.Hour:          "3h ago",
		50 * time.Hour:         "2d ago",
	}
	for d, want := range cases {
		if got := relative(d); got != want {
			t.Errorf("relative(%s): expected %q, got %q", d, want, got)
		}
	}
}

func TestFormatTimestampFull(t *testing.T) {
	ts := time.Date(2024, 3, 9, 14, 5, 7, 0, time.Local).UnixNano()
	if got := FormatTimestampFull(ts); got != "2024-03-09 14:05:07" {
		t.Errorf("unexpected %q", got)
	}
	if FromNano(ts).UnixNano() != ts {
		t.Error("FromNano lost precision")
	}
}

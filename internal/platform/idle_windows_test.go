package platform

import (
	"testing"
	"time"
)

func TestIdleSince(t *testing.T) {
	tests := []struct {
		name      string
		tickCount uint64
		lastInput uint32
		want      time.Duration
	}{
		{
			name:      "input thirty seconds ago",
			tickCount: 120000,
			lastInput: 90000,
			want:      30 * time.Second,
		},
		{
			name:      "input on current tick",
			tickCount: 987654,
			lastInput: 987654,
			want:      0,
		},
		{
			name:      "uptime past the 32-bit wrap",
			tickCount: 1<<32 + 25_000_000,
			lastInput: 24_999_000,
			want:      time.Second,
		},
		{
			name:      "input stamp just before the wrap",
			tickCount: 1<<32 + 500,
			lastInput: 1<<32 - 1500,
			want:      2 * time.Second,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := idleSince(test.tickCount, test.lastInput)
			if got != test.want {
				t.Errorf("idleSince(%d, %d) = %v, want %v",
					test.tickCount, test.lastInput, got, test.want)
			}
		})
	}
}

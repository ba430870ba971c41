package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(m time.Month, d int) time.Time {
	return time.Date(2026, m, d, 0, 0, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     time.Time
		want                           bool
	}{
		{"identical ranges", day(time.July, 1), day(time.July, 5), day(time.July, 1), day(time.July, 5), true},
		{"partial overlap", day(time.July, 1), day(time.July, 5), day(time.July, 4), day(time.July, 8), true},
		{"containment", day(time.July, 1), day(time.July, 10), day(time.July, 3), day(time.July, 5), true},
		{"single shared night", day(time.July, 1), day(time.July, 3), day(time.July, 2), day(time.July, 6), true},
		{"back to back stays", day(time.July, 1), day(time.July, 5), day(time.July, 5), day(time.July, 8), false},
		{"back to back reversed", day(time.July, 5), day(time.July, 8), day(time.July, 1), day(time.July, 5), false},
		{"fully disjoint", day(time.July, 1), day(time.July, 3), day(time.July, 10), day(time.July, 12), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Overlaps(c.aStart, c.aEnd, c.bStart, c.bEnd))
		})
	}
}

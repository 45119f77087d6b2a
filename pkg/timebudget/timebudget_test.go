package timebudget_test

import (
	"testing"

	"github.com/nthmove/woodpusher/pkg/timebudget"
	"github.com/stretchr/testify/assert"
)

func TestRestartFractionalAllocation(t *testing.T) {
	tests := []struct {
		name           string
		remaining      float64
		wantSeconds    float64
		wantForced     bool
		wantForcedMind int
	}{
		{"first 5%", 990, 0.0075 * 1000, false, 0},
		{"next 35%", 800, 0.02 * 1000, false, 0},
		{"middle 40%", 500, 0.01 * 1000, false, 0},
		{"next 15%", 100, 0.005 * 1000, false, 0},
		{"last 5%", 30, 0.000001, true, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := timebudget.New(-1)
			b.Restart(1000) // seed totalSecondsInGame
			forced, ok := b.Restart(tt.remaining)
			assert.Equal(t, tt.wantForced, ok)
			if ok {
				assert.Equal(t, tt.wantForcedMind, forced)
			}
		})
	}
}

func TestRestartFixedSecondsLimit(t *testing.T) {
	b := timebudget.New(5)
	_, ok := b.Restart(1000)
	assert.False(t, ok)
	assert.NoError(t, b.Check(10))
}

func TestCheckBeforeRestartIsNoop(t *testing.T) {
	b := timebudget.New(-1)
	assert.NoError(t, b.Check(10))
}

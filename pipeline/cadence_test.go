package pipeline

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCadenceNormalize(t *testing.T) {
	assert.Equal(t, DefaultMaxFPS, Cadence{}.Normalize().MaxFPS)
	assert.Equal(t, DefaultMaxFPS, Cadence{MaxFPS: math.NaN()}.Normalize().MaxFPS)
	assert.Equal(t, MinMaxFPS, Cadence{MaxFPS: 0.2}.Normalize().MaxFPS)
	assert.Equal(t, MaxMaxFPS, Cadence{MaxFPS: 240}.Normalize().MaxFPS)
	assert.Equal(t, 15.0, Cadence{MaxFPS: 15}.Normalize().MaxFPS)
	normalized := Cadence{MaxFPS: 30, PreRollFrames: -3, LockHoldFrames: -1}.Normalize()
	assert.Equal(t, 0, normalized.PreRollFrames)
	assert.Equal(t, 0, normalized.LockHoldFrames)
}

func TestThrottleDropsFastFrames(t *testing.T) {
	th := newThrottle(Cadence{MaxFPS: 25}.Normalize())
	var admitted []int64
	for ts := int64(0); ts < 200; ts += 10 {
		if th.admit(ts) {
			admitted = append(admitted, ts)
		}
	}
	assert.Equal(t, []int64{0, 40, 80, 120, 160}, admitted)
}

func TestThrottleKeepsSourceAtCap(t *testing.T) {
	th := newThrottle(Cadence{MaxFPS: 30}.Normalize())
	for i := int64(0); i < 60; i++ {
		assert.True(t, th.admit(i*33), "frame %d", i)
	}
}

func TestThrottleRestartsOnRewind(t *testing.T) {
	th := newThrottle(Cadence{MaxFPS: 10}.Normalize())
	assert.True(t, th.admit(5000))
	assert.False(t, th.admit(5010))
	assert.True(t, th.admit(0))
	assert.False(t, th.admit(50))
	assert.True(t, th.admit(100))
}

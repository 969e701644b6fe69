package capture

import (
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStreamClockFile(t *testing.T) {
	clock := newStreamClock(true, time.Now())
	assert.Equal(t, int64(0), clock.timestamp(0, time.Now()))
	assert.Equal(t, int64(33), clock.timestamp(33.4, time.Now()))
	assert.Equal(t, int64(66), clock.timestamp(66.7, time.Now()))
	// trailing frames without position keep the last timestamp
	assert.Equal(t, int64(66), clock.timestamp(0, time.Now()))
	assert.Equal(t, int64(66), clock.timestamp(50, time.Now()))
}

func TestStreamClockDevice(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := newStreamClock(false, start)
	assert.Equal(t, int64(40), clock.timestamp(123456, start.Add(40*time.Millisecond)))
	assert.Equal(t, int64(75), clock.timestamp(0, start.Add(75*time.Millisecond)))
	assert.Equal(t, int64(75), clock.timestamp(0, start.Add(70*time.Millisecond)))
}

func TestPacked(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	for i := range img.Pix {
		img.Pix[i] = byte(i)
	}
	assert.Equal(t, img.Pix, packed(img))

	sub := img.SubImage(image.Rect(1, 0, 3, 2)).(*image.RGBA)
	got := packed(sub)
	assert.Len(t, got, 2*2*4)
	assert.Equal(t, img.Pix[4:12], got[:8])
	assert.Equal(t, img.Pix[16:24], got[8:])
}

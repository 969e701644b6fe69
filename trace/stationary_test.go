package trace

import (
	"testing"
)

func TestLocateWhiteBall(t *testing.T) {
	frame := solidFrame(96, 96, 30, 0)
	fillDisk(frame, 40, 40, 8, 250, 250, 245)

	locator := NewStationaryLocatorDefault()
	candidate, ok := locator.Locate(frame)
	if !ok {
		t.Fatalf("Ball should be located")
	}
	if candidate.X != 40 || candidate.Y != 40 {
		t.Errorf("Wrong position: (%v, %v), expected (40, 40)", candidate.X, candidate.Y)
	}
	if candidate.Brightness <= 150 {
		t.Errorf("Brightness should clear the floor, got %v", candidate.Brightness)
	}
}

func TestLocateNothingOnDarkFrame(t *testing.T) {
	frame := solidFrame(96, 96, 40, 0)
	locator := NewStationaryLocatorDefault()
	if _, ok := locator.Locate(frame); ok {
		t.Errorf("Dark frame must not produce a candidate")
	}
}

func TestLocateRejectsSaturatedColor(t *testing.T) {
	frame := solidFrame(96, 96, 30, 0)
	fillDisk(frame, 40, 40, 8, 255, 200, 40)

	locator := NewStationaryLocatorDefault()
	if _, ok := locator.Locate(frame); ok {
		t.Errorf("Saturated blob must not be accepted as ball")
	}
}

func TestLocateTieFirstInScanOrder(t *testing.T) {
	frame := solidFrame(128, 64, 30, 0)
	fillDisk(frame, 88, 24, 8, 255, 255, 255)
	fillDisk(frame, 24, 24, 8, 255, 255, 255)

	locator := NewStationaryLocatorDefault()
	candidate, ok := locator.Locate(frame)
	if !ok {
		t.Fatalf("Ball should be located")
	}
	if candidate.X != 24 || candidate.Y != 24 {
		t.Errorf("First ball in row-major order should win, got (%v, %v)", candidate.X, candidate.Y)
	}
}

func TestLocateDeterministicAndInBounds(t *testing.T) {
	frames := []*Frame{
		solidFrame(50, 37, 200, 0),
		solidFrame(17, 17, 255, 0),
		solidFrame(8, 8, 255, 0),
	}
	speckled := solidFrame(80, 60, 20, 0)
	for i := 0; i < 80; i += 7 {
		fillRect(speckled, i, (i*3)%60, 5, 5, 230, 230, 230)
	}
	frames = append(frames, speckled)

	locator := NewStationaryLocatorDefault()
	for i, frame := range frames {
		first, okFirst := locator.Locate(frame)
		second, okSecond := locator.Locate(frame)
		if okFirst != okSecond || first != second {
			t.Errorf("Frame %d: locate is not deterministic: %+v vs %+v", i, first, second)
		}
		if okFirst && !frame.Bounds().Contains(first.Point()) {
			t.Errorf("Frame %d: candidate (%v, %v) is out of bounds", i, first.X, first.Y)
		}
	}
}

func TestLocateMalformedFrame(t *testing.T) {
	locator := NewStationaryLocatorDefault()
	for i, frame := range []*Frame{nil, {Width: 64, Height: 64}, {Width: 64, Height: 64, Pix: make([]byte, 10)}} {
		if _, ok := locator.Locate(frame); ok {
			t.Errorf("Frame %d must not produce a candidate", i)
		}
	}
}

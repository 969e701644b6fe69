package trace

import (
	"math"
	"testing"
)

const (
	eps = 0.00001
)

func TestEuclideanDistance(t *testing.T) {
	p1 := Point{X: 341, Y: 264}
	p2 := Point{X: 421, Y: 427}
	correctAnswer := 181.57367
	answer := euclideanDistance(p1, p2)
	if math.Abs(answer-correctAnswer) > eps {
		t.Errorf("Wrong answer: %v, correct answer: %v", answer, correctAnswer)
	}
}

func TestWindowAroundClamped(t *testing.T) {
	window := windowAround(Point{X: 30, Y: 470}, 200, 640, 480, 12)
	if window.x0 != 0 || window.y0 != 270 {
		t.Errorf("Wrong window origin: (%d, %d)", window.x0, window.y0)
	}
	if window.x1 != 230 || window.y1 != 468 {
		t.Errorf("Wrong window end: (%d, %d)", window.x1, window.y1)
	}
}

func TestRectangleContains(t *testing.T) {
	rect := NewRect(0, 0, 64, 48)
	if !rect.Contains(Point{X: 0, Y: 0}) {
		t.Errorf("Origin should be inside")
	}
	if rect.Contains(Point{X: 64, Y: 10}) {
		t.Errorf("Right edge should be outside")
	}
}

package trace

import (
	"math"
	"testing"
)

func TestSummarizeTooShort(t *testing.T) {
	summary := SummarizeTrajectory(trajectoryOf(0, 0, 10, 10, 20, 20))
	if summary.Valid {
		t.Errorf("Three points must not be summarized")
	}
	if summary.Points != 3 || summary.Shape != ShapeStraight {
		t.Errorf("Unexpected summary %+v", summary)
	}
}

func TestSummarizeShapes(t *testing.T) {
	type testCase struct {
		name      string
		input     Trajectory
		shape     Shape
		direction float64
	}
	cases := []testCase{
		{"straight up", trajectoryOf(100, 400, 100, 300, 100, 200, 100, 100), ShapeStraight, 0},
		{"slice", trajectoryOf(100, 400, 120, 300, 140, 200, 160, 100), ShapeSlice, 90 + math.Atan2(-300, 60)*180/math.Pi},
		{"hook", trajectoryOf(100, 400, 80, 300, 60, 200, 40, 100), ShapeHook, 360 + 90 + math.Atan2(-300, -60)*180/math.Pi},
		{"small drift", trajectoryOf(100, 400, 110, 300, 120, 200, 130, 100), ShapeStraight, 90 + math.Atan2(-300, 30)*180/math.Pi},
	}
	for _, c := range cases {
		summary := SummarizeTrajectory(c.input)
		if !summary.Valid {
			t.Errorf("[%s] summary must be valid", c.name)
			continue
		}
		if summary.Shape != c.shape {
			t.Errorf("[%s] shape %s, expected %s", c.name, summary.Shape, c.shape)
		}
		if math.Abs(summary.DirectionDegrees-c.direction) > eps {
			t.Errorf("[%s] direction %v, expected %v", c.name, summary.DirectionDegrees, c.direction)
		}
	}
}

func TestSummarizeDistances(t *testing.T) {
	summary := SummarizeTrajectory(trajectoryOf(0, 0, 3, 4, 6, 8, 9, 12))
	if math.Abs(summary.PixelDistance-15) > eps {
		t.Errorf("Pixel distance %v, expected 15", summary.PixelDistance)
	}
	if math.Abs(summary.PathLength-15) > eps || math.Abs(summary.MeanStep-5) > eps {
		t.Errorf("Path %v / step %v, expected 15 / 5", summary.PathLength, summary.MeanStep)
	}
	if summary.DurationMillis != 99 {
		t.Errorf("Duration %d, expected 99", summary.DurationMillis)
	}
	if summary.Curvature > eps {
		t.Errorf("Straight line must have no curvature, got %v", summary.Curvature)
	}
}

func TestSummarizeCurvature(t *testing.T) {
	curved := SummarizeTrajectory(trajectoryOf(100, 400, 120, 300, 120, 200, 100, 100))
	if curved.Curvature <= 1 {
		t.Errorf("Bent path must have curvature, got %v", curved.Curvature)
	}
	flat := SummarizeTrajectory(trajectoryOf(0, 50, 10, 50, 20, 50, 30, 50))
	if flat.Curvature != 0 {
		t.Errorf("Horizontal path has undefined fit, expected 0, got %v", flat.Curvature)
	}
}

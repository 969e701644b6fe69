package shotlog

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/LdDl/golf-trace/trace"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "shots.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func testCapture(dx float64) trace.Capture {
	trajectory := make(trace.Trajectory, 8)
	for i := range trajectory {
		trajectory[i] = trace.TrajectoryPoint{
			X:               320 + dx*float64(i)/7,
			Y:               400 - float64(i)*40,
			TimestampMillis: 1000 + int64(i)*33,
		}
	}
	return trace.Capture{ID: uuid.New(), Trajectory: trajectory, Width: 640, Height: 480}
}

func TestRecordAndGetShot(t *testing.T) {
	db := newTestDB(t)
	capture := testCapture(45)
	summary := trace.Summarize(capture)
	recordedAt := time.UnixMilli(1700000000123)
	shot := NewShot(capture, summary, "#00ff00", "fire", recordedAt)
	require.NoError(t, db.RecordShot(shot))

	got, err := db.GetShot(capture.ID)
	require.NoError(t, err)
	assert.Equal(t, capture.ID, got.ID)
	assert.True(t, got.RecordedAt.Equal(recordedAt))
	assert.Equal(t, trace.ShapeSlice, got.Summary.Shape)
	assert.Equal(t, "fire", got.TraceEffect)
	assert.Equal(t, 640, got.Width)
	if diff := cmp.Diff(capture.Trajectory, got.Trajectory); diff != "" {
		t.Errorf("Trajectory mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(summary, got.Summary, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("Summary mismatch (-want +got):\n%s", diff)
	}
}

func TestRecordShotTwice(t *testing.T) {
	db := newTestDB(t)
	capture := testCapture(0)
	shot := NewShot(capture, trace.Summarize(capture), "#ffffff", "water", time.Now())
	require.NoError(t, db.RecordShot(shot))
	assert.Error(t, db.RecordShot(shot))
	assert.Error(t, db.RecordShot(Shot{}), "shot without id")
}

func TestListShots(t *testing.T) {
	db := newTestDB(t)
	base := time.UnixMilli(1700000000000)
	var ids []uuid.UUID
	for i := 0; i < 4; i++ {
		capture := testCapture(float64(i * 20))
		ids = append(ids, capture.ID)
		shot := NewShot(capture, trace.Summarize(capture), "#00ff00", "electric", base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, db.RecordShot(shot))
	}
	shots, err := db.ListShots(2)
	require.NoError(t, err)
	require.Len(t, shots, 2)
	assert.Equal(t, ids[3], shots[0].ID)
	assert.Equal(t, ids[2], shots[1].ID)

	all, err := db.ListShots(0)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestEmptyAndUnknown(t *testing.T) {
	db := newTestDB(t)
	shots, err := db.ListShots(10)
	require.NoError(t, err)
	assert.Empty(t, shots)

	_, err = db.GetShot(uuid.New())
	assert.ErrorIs(t, err, ErrShotNotFound)

	capture := trace.Capture{ID: uuid.New()}
	require.NoError(t, db.RecordShot(NewShot(capture, trace.Summarize(capture), "#00ff00", "waves", time.Now())))
	got, err := db.GetShot(capture.ID)
	require.NoError(t, err)
	assert.False(t, got.Summary.Valid)
	assert.Equal(t, 0, got.Trajectory.Len())
}

func TestReopenKeepsShots(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shots.db")
	db, err := NewDB(path)
	require.NoError(t, err)
	capture := testCapture(-50)
	require.NoError(t, db.RecordShot(NewShot(capture, trace.Summarize(capture), "#00ff00", "fire", time.Now())))
	require.NoError(t, db.Close())

	reopened, err := NewDB(path)
	require.NoError(t, err)
	defer reopened.Close()
	got, err := reopened.GetShot(capture.ID)
	require.NoError(t, err)
	assert.Equal(t, trace.ShapeHook, got.Summary.Shape)
}

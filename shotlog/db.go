package shotlog

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/LdDl/golf-trace/trace"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

// ErrShotNotFound is returned by GetShot for unknown capture IDs
var ErrShotNotFound = errors.New("shot not found")

// DB is a local log of finished shots
type DB struct {
	*sql.DB
}

// NewDB opens (and creates when missing) shot log at path. Use ":memory:" for a throwaway log.
func NewDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't open shot log '%s'", path)
	}
	// single connection keeps ":memory:" databases alive and serializes writers
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS shots (
			shot_id           TEXT PRIMARY KEY,
			recorded_at_ms    BIGINT NOT NULL,
			valid             BOOLEAN NOT NULL,
			points            BIGINT NOT NULL,
			shape             TEXT NOT NULL,
			direction_deg     DOUBLE NOT NULL,
			pixel_distance    DOUBLE NOT NULL,
			path_length       DOUBLE NOT NULL,
			curvature         DOUBLE NOT NULL,
			duration_ms       BIGINT NOT NULL,
			frame_width       BIGINT NOT NULL,
			frame_height      BIGINT NOT NULL,
			trace_color       TEXT NOT NULL,
			trace_effect      TEXT NOT NULL,
			trajectory_json   TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS shots_recorded_at ON shots (recorded_at_ms);
	`)
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "Can't create shot log schema")
	}
	return &DB{db}, nil
}

// Shot is one logged capture with its summary
type Shot struct {
	ID          uuid.UUID
	RecordedAt  time.Time
	Summary     trace.Summary
	Width       int
	Height      int
	TraceColor  string
	TraceEffect string
	Trajectory  trace.Trajectory
}

// NewShot assembles shot record from a finished capture
func NewShot(capture trace.Capture, summary trace.Summary, traceColor, traceEffect string, recordedAt time.Time) Shot {
	return Shot{
		ID:          capture.ID,
		RecordedAt:  recordedAt,
		Summary:     summary,
		Width:       capture.Width,
		Height:      capture.Height,
		TraceColor:  traceColor,
		TraceEffect: traceEffect,
		Trajectory:  capture.Trajectory.Clone(),
	}
}

// RecordShot stores shot. Recording the same capture twice is an error.
func (db *DB) RecordShot(shot Shot) error {
	if shot.ID == uuid.Nil {
		return errors.New("shot has no capture id")
	}
	trajectory := shot.Trajectory
	if trajectory == nil {
		trajectory = trace.Trajectory{}
	}
	trajectoryJSON, err := json.Marshal(trajectory)
	if err != nil {
		return errors.Wrap(err, "Can't encode trajectory")
	}
	_, err = db.Exec(`
		INSERT INTO shots (
			shot_id, recorded_at_ms, valid, points, shape, direction_deg, pixel_distance, path_length,
			curvature, duration_ms, frame_width, frame_height, trace_color, trace_effect, trajectory_json
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		shot.ID.String(),
		shot.RecordedAt.UnixMilli(),
		shot.Summary.Valid,
		shot.Summary.Points,
		string(shot.Summary.Shape),
		shot.Summary.DirectionDegrees,
		shot.Summary.PixelDistance,
		shot.Summary.PathLength,
		shot.Summary.Curvature,
		shot.Summary.DurationMillis,
		shot.Width,
		shot.Height,
		shot.TraceColor,
		shot.TraceEffect,
		string(trajectoryJSON),
	)
	if err != nil {
		return errors.Wrapf(err, "Can't record shot %s", shot.ID)
	}
	return nil
}

const selectShots = `
	SELECT shot_id, recorded_at_ms, valid, points, shape, direction_deg, pixel_distance, path_length,
		curvature, duration_ms, frame_width, frame_height, trace_color, trace_effect, trajectory_json
	FROM shots`

// ListShots returns up to limit most recent shots, newest first. Non-positive limit means all.
func (db *DB) ListShots(limit int) ([]Shot, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := db.Query(selectShots+` ORDER BY recorded_at_ms DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "Can't query shots")
	}
	defer rows.Close()

	shots := []Shot{}
	for rows.Next() {
		shot, err := scanShot(rows)
		if err != nil {
			return nil, err
		}
		shots = append(shots, shot)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "Can't iterate shots")
	}
	return shots, nil
}

// GetShot returns shot by capture id
func (db *DB) GetShot(id uuid.UUID) (Shot, error) {
	row := db.QueryRow(selectShots+` WHERE shot_id = ?`, id.String())
	shot, err := scanShot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Shot{}, errors.Wrapf(ErrShotNotFound, "id %s", id)
	}
	return shot, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanShot(row scanner) (Shot, error) {
	var (
		shot           Shot
		id             string
		recordedAtMs   int64
		shape          string
		trajectoryJSON string
	)
	err := row.Scan(
		&id,
		&recordedAtMs,
		&shot.Summary.Valid,
		&shot.Summary.Points,
		&shape,
		&shot.Summary.DirectionDegrees,
		&shot.Summary.PixelDistance,
		&shot.Summary.PathLength,
		&shot.Summary.Curvature,
		&shot.Summary.DurationMillis,
		&shot.Width,
		&shot.Height,
		&shot.TraceColor,
		&shot.TraceEffect,
		&trajectoryJSON,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Shot{}, err
		}
		return Shot{}, errors.Wrap(err, "Can't scan shot")
	}
	shot.ID, err = uuid.Parse(id)
	if err != nil {
		return Shot{}, errors.Wrapf(err, "Can't parse shot id '%s'", id)
	}
	shot.RecordedAt = time.UnixMilli(recordedAtMs)
	shot.Summary.Shape = trace.Shape(shape)
	if err := json.Unmarshal([]byte(trajectoryJSON), &shot.Trajectory); err != nil {
		return Shot{}, errors.Wrapf(err, "Can't decode trajectory of shot %s", id)
	}
	restoreEndpoints(&shot)
	return shot, nil
}

// restoreEndpoints fills summary fields derivable from the stored trajectory
func restoreEndpoints(shot *Shot) {
	if !shot.Summary.Valid || shot.Trajectory.Len() == 0 {
		return
	}
	first := shot.Trajectory.First()
	last := shot.Trajectory.Last()
	shot.Summary.Start = first.Point()
	shot.Summary.End = last.Point()
	shot.Summary.DeltaX = last.X - first.X
	shot.Summary.DeltaY = last.Y - first.Y
	if steps := shot.Trajectory.Len() - 1; steps > 0 {
		shot.Summary.MeanStep = shot.Summary.PathLength / float64(steps)
	}
}

package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/tauraamui/xerror"
	"gorm.io/gorm"
)

func init() {
	registerForAutomigration(&Run{})
	registerForAutomigration(&FrameRow{})
}

// Run is one extraction of an input.
type Run struct {
	ID        string `gorm:"primaryKey"`
	Input     string
	Width     int
	Height    int
	Frames    int
	CreatedAt time.Time
}

func (r *Run) BeforeCreate(tx *gorm.DB) error {
	if len(r.ID) == 0 {
		r.ID = uuid.NewString()
	}
	return nil
}

// FrameRow is one aggregated grid of a run, X and Y hold the column
// major component arrays as JSON.
type FrameRow struct {
	ID       uint   `gorm:"primaryKey"`
	RunID    string `gorm:"index"`
	Index    int    `gorm:"column:frame_index"`
	MBWidth  int
	MBHeight int
	X        string
	Y        string
}

func NewFrameRow(runID string, index int, xs, ys [][]int) (FrameRow, error) {
	x, err := json.Marshal(xs)
	if err != nil {
		return FrameRow{}, xerror.Errorf("unable to encode x components: %w", err)
	}
	y, err := json.Marshal(ys)
	if err != nil {
		return FrameRow{}, xerror.Errorf("unable to encode y components: %w", err)
	}
	row := FrameRow{RunID: runID, Index: index, MBWidth: len(xs), X: string(x), Y: string(y)}
	if len(xs) > 0 {
		row.MBHeight = len(xs[0])
	}
	return row, nil
}

// Columns decodes the component arrays.
func (f FrameRow) Columns() (xs, ys [][]int, err error) {
	if err := json.Unmarshal([]byte(f.X), &xs); err != nil {
		return nil, nil, xerror.Errorf("frame %d of run %s has corrupt x components: %w", f.Index, f.RunID, err)
	}
	if err := json.Unmarshal([]byte(f.Y), &ys); err != nil {
		return nil, nil, xerror.Errorf("frame %d of run %s has corrupt y components: %w", f.Index, f.RunID, err)
	}
	if len(xs) != f.MBWidth || len(ys) != f.MBWidth {
		return nil, nil, xerror.Errorf("frame %d of run %s has %d columns, expected %d", f.Index, f.RunID, len(xs), f.MBWidth)
	}
	return xs, ys, nil
}

package repos

import (
	"github.com/tauraamui/mvextract/pkg/store/models"
	"github.com/tauraamui/xerror"
)

type FrameRepository struct {
	DB GormWrapper
}

func (r *FrameRepository) Create(rows []models.FrameRow) error {
	if len(rows) == 0 {
		return nil
	}
	return r.DB.Create(&rows).Error()
}

// FindByRun returns the run's frames in frame order.
func (r *FrameRepository) FindByRun(runID string) ([]models.FrameRow, error) {
	rows := []models.FrameRow{}
	if err := r.DB.Where("run_id = ?", runID).Order("frame_index").Find(&rows).Error(); err != nil {
		return nil, xerror.Errorf("unable to find frames of run %s: %w", runID, err)
	}

	return rows, nil
}

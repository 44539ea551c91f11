package repos

import (
	"github.com/tauraamui/mvextract/pkg/store/models"
	"github.com/tauraamui/xerror"
)

type RunRepository struct {
	DB GormWrapper
}

func (r *RunRepository) Create(run *models.Run) error {
	return r.DB.Create(run).Error()
}

func (r *RunRepository) FindByID(id string) (models.Run, error) {
	run := models.Run{}
	if err := r.DB.Where("id = ?", id).First(&run).Error(); err != nil {
		return run, xerror.Errorf("run of id %s not found", id)
	}

	return run, nil
}

// List returns every run, oldest first.
func (r *RunRepository) List() ([]models.Run, error) {
	runs := []models.Run{}
	if err := r.DB.Order("created_at").Find(&runs).Error(); err != nil {
		return nil, xerror.Errorf("unable to list runs: %w", err)
	}

	return runs, nil
}

// Package store persists extraction runs to a sqlite database.
package store

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/tauraamui/mvextract/pkg/log"
	"github.com/tauraamui/mvextract/pkg/motion"
	"github.com/tauraamui/mvextract/pkg/store/models"
	"github.com/tauraamui/mvextract/pkg/store/repos"
	"github.com/tauraamui/xerror"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	vendorName       = "tacusci"
	appName          = "mvextract"
	databaseFileName = "mvextract.db"
)

var uc = os.UserCacheDir
var fs = afero.NewOsFs()

type Store struct {
	db     *gorm.DB
	runs   repos.RunRepository
	frames repos.FrameRepository
}

var openDBConnection = func(path string) (*gorm.DB, error) {
	logger := logger.New(nil, logger.Config{LogLevel: logger.Silent})
	return gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger})
}

// Open connects to the database at path, creating and migrating it when
// needed. An empty path resolves to MVEXTRACT_DB or the user cache dir.
func Open(path string) (*Store, error) {
	if len(path) == 0 {
		resolved, err := resolveDBPath(uc)
		if err != nil {
			return nil, err
		}
		path = resolved
	}
	if err := fs.MkdirAll(filepath.Dir(path), os.ModeDir|os.ModePerm); err != nil {
		return nil, xerror.Errorf("unable to create database directory: %w", err)
	}

	log.Debug("Connecting to DB: %s", path) //nolint
	db, err := openDBConnection(path)
	if err != nil {
		return nil, xerror.Errorf("unable to open db connection: %w", err)
	}

	if err := models.AutoMigrate(db); err != nil {
		return nil, xerror.Errorf("unable to run automigrations: %w", err)
	}

	w := repos.Wrap(db)
	return &Store{db: db, runs: repos.RunRepository{DB: w}, frames: repos.FrameRepository{DB: w}}, nil
}

func resolveDBPath(uc func() (string, error)) (string, error) {
	databasePath := os.Getenv("MVEXTRACT_DB")
	if len(databasePath) > 0 {
		return databasePath, nil
	}

	databaseParentDir, err := uc()
	if err != nil {
		return "", xerror.Errorf("unable to resolve %s database file location: %w", databaseFileName, err)
	}

	return filepath.Join(
		databaseParentDir,
		vendorName,
		appName,
		databaseFileName), nil
}

// SaveSequence writes the run and all of its frames in one transaction
// and returns the new run's ID.
func (s *Store) SaveSequence(input string, seq *motion.Sequence) (string, error) {
	entries := seq.Entries()
	run := models.Run{Input: input, Width: seq.Width, Height: seq.Height, Frames: len(entries)}

	err := repos.Wrap(s.db).Transaction(func(tx repos.GormWrapper) error {
		runs := repos.RunRepository{DB: tx}
		if err := runs.Create(&run); err != nil {
			return xerror.Errorf("unable to create run: %w", err)
		}

		rows := make([]models.FrameRow, 0, len(entries))
		for _, e := range entries {
			xs, ys := e.Grid.Columns()
			row, err := models.NewFrameRow(run.ID, e.Index, xs, ys)
			if err != nil {
				return err
			}
			rows = append(rows, row)
		}
		frames := repos.FrameRepository{DB: tx}
		if err := frames.Create(rows); err != nil {
			return xerror.Errorf("unable to create frames: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return run.ID, nil
}

// LoadSequence rebuilds the sequence stored under id.
func (s *Store) LoadSequence(id string) (*motion.Sequence, error) {
	run, err := s.runs.FindByID(id)
	if err != nil {
		return nil, err
	}

	rows, err := s.frames.FindByRun(id)
	if err != nil {
		return nil, err
	}

	seq := motion.NewSequence(run.Width, run.Height)
	for _, row := range rows {
		xs, ys, err := row.Columns()
		if err != nil {
			return nil, err
		}
		seq.Append(row.Index, motion.GridFromColumns(xs, ys))
	}
	return seq, nil
}

// Runs lists every stored run, oldest first.
func (s *Store) Runs() ([]models.Run, error) {
	return s.runs.List()
}

func (s *Store) Close() error {
	db, err := s.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}

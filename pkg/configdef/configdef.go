package configdef

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/dealancer/validate.v2"
)

type Features struct {
	XCells int `json:"x_cells" validate:"gte=1"`
	YCells int `json:"y_cells" validate:"gte=1"`
	Bins   int `json:"bins" validate:"gte=1 & lte=64"`
	Window int `json:"window" validate:"gte=0"`
	// Density normalises each cell histogram to a probability density.
	Density    bool   `json:"density"`
	RenderPath string `json:"render_path"`
}

type Segment struct {
	Seconds   int    `json:"seconds" validate:"gte=1"`
	Width     int    `json:"width" validate:"gte=1"`
	OutputDir string `json:"output_dir" validate:"empty=false"`
}

type Values struct {
	Debug        bool     `json:"debug"`
	Backend      string   `json:"backend"`
	OutputPath   string   `json:"output_path" validate:"empty=false"`
	Workers      int      `json:"workers" validate:"gte=1 & lte=64"`
	ShowMap      bool     `json:"show_map"`
	DatabasePath string   `json:"database_path"`
	Features     Features `json:"features"`
	Segment      Segment  `json:"segment"`
}

func (v Values) RunValidate() error {
	if err := validate.Validate(&v); err != nil {
		return err
	}
	return v.Validate()
}

func (v Values) Validate() error {
	const validationErrorHeader = "validation failed: %w"
	if isSamePath(v.OutputPath, v.DatabasePath) {
		return fmt.Errorf(validationErrorHeader, errors.New("output and database paths must differ"))
	}
	switch strings.ToLower(v.Backend) {
	case "", "dump", "mock":
	default:
		return fmt.Errorf(validationErrorHeader, fmt.Errorf("unknown backend: %s", v.Backend))
	}
	return nil
}

func isSamePath(a, b string) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	return filepath.Clean(a) == filepath.Clean(b)
}

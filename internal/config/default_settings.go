package config

import "github.com/tauraamui/mvextract/pkg/configdef"

type defaultSettingKey uint

const (
	OUTPUTPATH     defaultSettingKey = 0x0
	WORKERS        defaultSettingKey = 0x1
	FEATURECELLS   defaultSettingKey = 0x2
	FEATUREBINS    defaultSettingKey = 0x3
	SEGMENTSECONDS defaultSettingKey = 0x4
	SEGMENTWIDTH   defaultSettingKey = 0x5
	SEGMENTDIR     defaultSettingKey = 0x6
	RENDERPATH     defaultSettingKey = 0x7
)

var defaultSettings = map[defaultSettingKey]interface{}{
	OUTPUTPATH:     "motion.json",
	WORKERS:        1,
	FEATURECELLS:   [2]int{20, 15},
	FEATUREBINS:    8,
	SEGMENTSECONDS: 4,
	SEGMENTWIDTH:   320,
	SEGMENTDIR:     "segments",
	RENDERPATH:     "features.png",
}

func defaultValues() configdef.Values {
	cells := defaultSettings[FEATURECELLS].([2]int)
	return configdef.Values{
		OutputPath: defaultSettings[OUTPUTPATH].(string),
		Workers:    defaultSettings[WORKERS].(int),
		Features: configdef.Features{
			XCells:     cells[0],
			YCells:     cells[1],
			Bins:       defaultSettings[FEATUREBINS].(int),
			Density:    true,
			RenderPath: defaultSettings[RENDERPATH].(string),
		},
		Segment: configdef.Segment{
			Seconds:   defaultSettings[SEGMENTSECONDS].(int),
			Width:     defaultSettings[SEGMENTWIDTH].(int),
			OutputDir: defaultSettings[SEGMENTDIR].(string),
		},
	}
}

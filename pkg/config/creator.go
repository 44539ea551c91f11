package config

import (
	"github.com/tauraamui/mvextract/internal/config"
	"github.com/tauraamui/mvextract/pkg/configdef"
)

type Creator interface {
	configdef.Creator
}

func DefaultCreator() Creator {
	return config.DefaultCreator()
}

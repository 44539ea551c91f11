package config

import (
	"github.com/tauraamui/mvextract/internal/config"
	"github.com/tauraamui/mvextract/pkg/configdef"
)

type Resolver interface {
	configdef.Resolver
}

type CreateResolver interface {
	configdef.CreateResolver
}

func DefaultResolver() Resolver {
	return config.DefaultResolver()
}

func DefaultCreateResolver() CreateResolver {
	return config.DefaultCreateResolver()
}

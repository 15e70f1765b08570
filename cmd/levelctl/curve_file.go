package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/ahmetcoskunkizilkaya/budgetxp-backend/internal/dto"
	"gopkg.in/yaml.v3"
)

// curveFile is the YAML layout accepted by `levels import`:
//
//	default: 100
//	levels:
//	  - level: 2
//	    xpRequired: 150
type curveFile struct {
	Default int64       `yaml:"default"`
	Levels  []curveLine `yaml:"levels"`
}

type curveLine struct {
	Level      int   `yaml:"level"`
	XPRequired int64 `yaml:"xpRequired"`
}

func parseCurveFile(r io.Reader) (*curveFile, error) {
	var f curveFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("curve file is empty")
		}
		return nil, fmt.Errorf("parse curve file: %w", err)
	}

	if f.Default < 0 {
		return nil, fmt.Errorf("default must be >= 1, got %d", f.Default)
	}
	if f.Default == 0 && len(f.Levels) == 0 {
		return nil, errors.New("curve file sets neither default nor levels")
	}
	for i, l := range f.Levels {
		if l.Level < 1 || l.XPRequired < 1 {
			return nil, fmt.Errorf("levels[%d]: level and xpRequired must be >= 1", i)
		}
	}
	return &f, nil
}

func (f *curveFile) inputs() []dto.LevelThresholdInput {
	out := make([]dto.LevelThresholdInput, len(f.Levels))
	for i, l := range f.Levels {
		out[i] = dto.LevelThresholdInput{Level: l.Level, XPRequired: l.XPRequired}
	}
	return out
}

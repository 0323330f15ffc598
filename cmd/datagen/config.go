package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-datagen/pkg/reader"
	"github.com/goliatone/go-datagen/pkg/restrictions"
)

type config struct {
	Limits   restrictions.Limits
	Renderer string
}

func defaultConfig() config {
	return config{Limits: restrictions.DefaultLimits()}
}

// configFile is the on-disk shape. Every key is optional; missing keys keep
// the engine defaults.
type configFile struct {
	Renderer string `yaml:"renderer"`
	Limits   struct {
		NumericMin      string `yaml:"numericMin"`
		NumericMax      string `yaml:"numericMax"`
		NumericScale    *int   `yaml:"numericScale"`
		MaxStringLength *int   `yaml:"maxStringLength"`
		DateTimeMin     string `yaml:"dateTimeMin"`
		DateTimeMax     string `yaml:"dateTimeMax"`
	} `yaml:"limits"`
}

func loadConfig(path string) (config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := parseConfig(data)
	if err != nil {
		return config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func parseConfig(data []byte) (config, error) {
	var raw configFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return config{}, err
	}

	cfg := defaultConfig()
	cfg.Renderer = raw.Renderer
	l := &cfg.Limits

	var err error
	if raw.Limits.NumericMin != "" {
		if l.NumericMin, err = decimal.NewFromString(raw.Limits.NumericMin); err != nil {
			return config{}, fmt.Errorf("limits.numericMin: %w", err)
		}
	}
	if raw.Limits.NumericMax != "" {
		if l.NumericMax, err = decimal.NewFromString(raw.Limits.NumericMax); err != nil {
			return config{}, fmt.Errorf("limits.numericMax: %w", err)
		}
	}
	if raw.Limits.NumericScale != nil {
		l.NumericScale = *raw.Limits.NumericScale
	}
	if raw.Limits.MaxStringLength != nil {
		l.MaxStringLength = *raw.Limits.MaxStringLength
	}
	if raw.Limits.DateTimeMin != "" {
		if l.DateTimeMin, err = reader.ParseDate(raw.Limits.DateTimeMin); err != nil {
			return config{}, fmt.Errorf("limits.dateTimeMin: %w", err)
		}
	}
	if raw.Limits.DateTimeMax != "" {
		if l.DateTimeMax, err = reader.ParseDate(raw.Limits.DateTimeMax); err != nil {
			return config{}, fmt.Errorf("limits.dateTimeMax: %w", err)
		}
	}
	if err := l.Validate(); err != nil {
		return config{}, err
	}
	return cfg, nil
}

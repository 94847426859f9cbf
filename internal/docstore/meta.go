package docstore

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// UseCaseMeta is the typed view of a use-case document's metadata.
type UseCaseMeta struct {
	Title              string   `mapstructure:"title"`
	Tags               []string `mapstructure:"tags"`
	ExperienceLevel    string   `mapstructure:"experience_level"`
	LearningPreference string   `mapstructure:"learning_preference"`
	Maturity           string   `mapstructure:"maturity"`
}

// FactsheetMeta is the typed view of a framework factsheet's metadata.
type FactsheetMeta struct {
	Framework   string `mapstructure:"framework"`
	IsFactsheet bool   `mapstructure:"is_factsheet"`
	URL         string `mapstructure:"url"`
	D1          int    `mapstructure:"D1"`
	D2          int    `mapstructure:"D2"`
	D3          int    `mapstructure:"D3"`
	D4          int    `mapstructure:"D4"`
	D5          int    `mapstructure:"D5"`
	D6          int    `mapstructure:"D6"`
}

// Dims returns the D1..D6 metadata as a dimension map, defaulting missing or
// zero entries to 3.
func (m FactsheetMeta) DimsMap() map[string]int {
	dims := map[string]int{
		"D1": m.D1, "D2": m.D2, "D3": m.D3,
		"D4": m.D4, "D5": m.D5, "D6": m.D6,
	}
	for d, v := range dims {
		if v == 0 {
			dims[d] = 3
		}
	}
	return dims
}

// DecodeUseCaseMeta decodes a loose metadata map into UseCaseMeta. Tags may
// arrive either as a list or as a comma-joined string.
func DecodeUseCaseMeta(metadata map[string]any) (UseCaseMeta, error) {
	var meta UseCaseMeta
	if err := decodeWeakly(metadata, &meta); err != nil {
		return UseCaseMeta{}, fmt.Errorf("decode use case metadata: %w", err)
	}
	return meta, nil
}

// DecodeFactsheetMeta decodes a loose metadata map into FactsheetMeta.
func DecodeFactsheetMeta(metadata map[string]any) (FactsheetMeta, error) {
	var meta FactsheetMeta
	if err := decodeWeakly(metadata, &meta); err != nil {
		return FactsheetMeta{}, fmt.Errorf("decode factsheet metadata: %w", err)
	}
	meta.Framework = strings.TrimSpace(meta.Framework)
	return meta, nil
}

func decodeWeakly(input map[string]any, target any) error {
	cfg := &mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToSliceHookFunc(","),
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

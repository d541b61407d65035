// Package templates holds the built-in session templates and their YAML form.
package templates

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/benjamonnguyen/cadence"
)

//go:embed defaults.yaml
var defaultsYAML []byte

type yamlBlock struct {
	Label   string  `yaml:"label"`
	Minutes float64 `yaml:"minutes"`
	Type    string  `yaml:"type"`
}

type yamlTemplate struct {
	ID     string      `yaml:"id"`
	Name   string      `yaml:"name"`
	Repeat int         `yaml:"repeat,omitempty"`
	Blocks []yamlBlock `yaml:"blocks"`
}

// BuiltIn returns the templates shipped with the app.
func BuiltIn() ([]cadence.SessionTemplate, error) {
	return Decode(bytes.NewReader(defaultsYAML))
}

// Decode reads a YAML list of templates and validates each one.
func Decode(r io.Reader) ([]cadence.SessionTemplate, error) {
	var fileData []yamlTemplate
	if err := yaml.NewDecoder(r).Decode(&fileData); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("parse templates yaml: %w", err)
	}

	tpls := make([]cadence.SessionTemplate, 0, len(fileData))
	for i, y := range fileData {
		tpl := fromYAML(y)
		if err := tpl.Validate(); err != nil {
			return nil, fmt.Errorf("template %d %q: %w", i, y.Name, err)
		}
		tpls = append(tpls, tpl)
	}
	return tpls, nil
}

// Encode writes tpls as a YAML list Decode can read back.
func Encode(w io.Writer, tpls ...cadence.SessionTemplate) error {
	fileData := make([]yamlTemplate, 0, len(tpls))
	for _, tpl := range tpls {
		fileData = append(fileData, toYAML(tpl))
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(fileData); err != nil {
		return fmt.Errorf("marshal templates yaml: %w", err)
	}
	return enc.Close()
}

func fromYAML(y yamlTemplate) cadence.SessionTemplate {
	tpl := cadence.SessionTemplate{
		ID:     cadence.TemplateID(y.ID),
		Name:   y.Name,
		Repeat: y.Repeat,
	}
	for _, b := range y.Blocks {
		t := cadence.BlockType(b.Type)
		if t == "" {
			t = cadence.CustomBlock
		}
		tpl.Blocks = append(tpl.Blocks, cadence.SessionBlock{
			Label:           b.Label,
			DurationMinutes: b.Minutes,
			Type:            t,
		})
	}
	return tpl
}

func toYAML(tpl cadence.SessionTemplate) yamlTemplate {
	y := yamlTemplate{
		ID:     string(tpl.ID),
		Name:   tpl.Name,
		Repeat: tpl.Repeat,
	}
	for _, b := range tpl.Blocks {
		y.Blocks = append(y.Blocks, yamlBlock{
			Label:   b.Label,
			Minutes: b.DurationMinutes,
			Type:    string(b.Type),
		})
	}
	return y
}

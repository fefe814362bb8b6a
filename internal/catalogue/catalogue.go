// Package catalogue holds the programme offering shown in the application
// forms. The built-in list matches the current prospectus; institutes that
// update their offering between releases can point the server at a YAML file
// instead.
package catalogue

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"

	stderrors "admissions-forms/internal/common/errors"
)

// Programme is one offered course of study.
type Programme struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
	Level string `yaml:"level"`
}

// Catalogue is the ordered programme list.
type Catalogue struct {
	Programmes []Programme `yaml:"programmes"`
}

var defaultCatalogue = Catalogue{
	Programmes: []Programme{
		{ID: "cert-electrical", Title: "Certificate in Electrical Installation", Level: "Certificate"},
		{ID: "cert-telecom", Title: "Certificate in Telecommunications", Level: "Certificate"},
		{ID: "dip-electrical", Title: "Diploma in Electrical Engineering", Level: "Diploma"},
		{ID: "dip-telecom", Title: "Diploma in Telecommunications Engineering", Level: "Diploma"},
		{ID: "dip-it", Title: "Diploma in Information Technology", Level: "Diploma"},
		{ID: "pdip-fiber", Title: "Diploma in Fiber Optics", Level: "Professional Diploma"},
		{ID: "pdip-networks", Title: "Diploma in Network Engineering", Level: "Professional Diploma"},
		{ID: "adv-dip-telecom", Title: "Advanced Diploma in Telecommunications", Level: "Advanced Diploma"},
	},
}

// Default returns the built-in programme list.
func Default() *Catalogue {
	c := defaultCatalogue
	return &c
}

// Load reads a catalogue from a YAML file. An empty path returns the
// built-in list.
func Load(path string) (*Catalogue, error) {
	if path == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, stderrors.NewCatalogueLoadFailedError(path, err)
	}
	var c Catalogue
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, stderrors.NewCatalogueLoadFailedError(path, err)
	}
	if len(c.Programmes) == 0 {
		return nil, stderrors.NewCatalogueLoadFailedError(path, errors.New("catalogue contains no programmes"))
	}
	return &c, nil
}

// Titles returns the programme titles in catalogue order.
func (c *Catalogue) Titles() []string {
	out := make([]string, 0, len(c.Programmes))
	for _, p := range c.Programmes {
		out = append(out, p.Title)
	}
	return out
}

// Levels returns the distinct levels in first-seen order.
func (c *Catalogue) Levels() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range c.Programmes {
		if !seen[p.Level] {
			seen[p.Level] = true
			out = append(out, p.Level)
		}
	}
	return out
}

// Find returns the programme with the given ID.
func (c *Catalogue) Find(id string) (Programme, bool) {
	for _, p := range c.Programmes {
		if p.ID == id {
			return p, true
		}
	}
	return Programme{}, false
}

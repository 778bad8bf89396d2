package domain

import "strings"

// Step is one entry of the step catalog: a named state a document can occupy.
type Step struct {
	ID   int64  `json:"pk" yaml:"pk"`
	Name string `json:"step" yaml:"step"`
}

// User is one entry of the user catalog.
type User struct {
	ID   int64  `json:"pk" yaml:"pk"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// Catalog is the read-only step catalog. Order follows the source system.
type Catalog []Step

// ByID returns the catalog entry with the given id.
func (c Catalog) ByID(id int64) (Step, bool) {
	for _, s := range c {
		if s.ID == id {
			return s, true
		}
	}
	return Step{}, false
}

// ByName returns the first entry whose name matches exactly.
func (c Catalog) ByName(name string) (Step, bool) {
	for _, s := range c {
		if s.Name == name {
			return s, true
		}
	}
	return Step{}, false
}

// ByNameFold returns the first entry whose name matches ignoring case.
func (c Catalog) ByNameFold(name string) (Step, bool) {
	for _, s := range c {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return Step{}, false
}

// Name resolves a step id to its label, or "" if unknown.
func (c Catalog) Name(id int64) string {
	s, _ := c.ByID(id)
	return s.Name
}

// Package catalog holds the fixed option lists offered by the listing wizard.
package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/Beawareofme/warehouse-frontend/internal/domain"
)

//go:embed options.yaml
var optionsYAML []byte

// Option is one choice. Enumerated fields use Value; boolean flags use Key.
type Option struct {
	Value string `yaml:"value,omitempty" json:"value,omitempty"`
	Key   string `yaml:"key,omitempty"   json:"key,omitempty"`
	Label string `yaml:"label"           json:"label"`
}

// Step is a wizard step with its display title.
type Step struct {
	ID    domain.WizardStep `yaml:"id"    json:"id"`
	Title string            `yaml:"title" json:"title"`
}

// Services groups the add-on service options.
type Services struct {
	Inbound  []Option `yaml:"inbound"  json:"inbound"`
	Outbound []Option `yaml:"outbound" json:"outbound"`
	ValueAdd []Option `yaml:"valueAdd" json:"valueAdd"`
}

// Catalog is the full option set.
type Catalog struct {
	Steps          []Step   `yaml:"steps"          json:"steps"`
	FacilityUse    []Option `yaml:"facilityUse"    json:"facilityUse"`
	Security       []Option `yaml:"security"       json:"security"`
	Amenities      []Option `yaml:"amenities"      json:"amenities"`
	ApprovedUses   []Option `yaml:"approvedUses"   json:"approvedUses"`
	Qualifications []Option `yaml:"qualifications" json:"qualifications"`
	Days           []string `yaml:"days"           json:"days"`
	Services       Services `yaml:"services"       json:"services"`
}

var loadDefault = sync.OnceValues(func() (*Catalog, error) {
	return Parse(optionsYAML)
})

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return loadDefault()
}

// Parse decodes a catalog and checks that its steps match the wizard order.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse listing options: %w", err)
	}
	if len(c.Steps) != len(domain.WizardSteps) {
		return nil, fmt.Errorf("listing options: want %d steps, got %d", len(domain.WizardSteps), len(c.Steps))
	}
	for i, s := range c.Steps {
		if s.ID != domain.WizardSteps[i] {
			return nil, fmt.Errorf("listing options: step %d is %q, want %q", i, s.ID, domain.WizardSteps[i])
		}
	}
	return &c, nil
}

// StepTitle returns the display title of step, or the step id when unknown.
func (c *Catalog) StepTitle(step domain.WizardStep) string {
	for _, s := range c.Steps {
		if s.ID == step {
			return s.Title
		}
	}
	return string(step)
}

// Label returns the label for value within opts.
func Label(opts []Option, value string) (string, bool) {
	for _, o := range opts {
		if o.Value == value || (o.Value == "" && o.Key == value) {
			return o.Label, true
		}
	}
	return "", false
}

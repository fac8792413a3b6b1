// Public domain.

package hgprog

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/soniakeys/hg1g2/internal/hgdata"
	"github.com/soniakeys/hg1g2/internal/hgfit"
	"github.com/soniakeys/hg1g2/internal/uncert"
)

// model selection
const (
	modelHG1G2 = "hg1g2"
	modelHG12  = "hg12"
	modelBoth  = "both"
)

// config holds everything that controls a run.
type config struct {
	model       string
	layout      hgdata.Layout
	degrees     bool
	uncertainty bool
	samples     int
	repeatable  bool
	seed        uint64
	magErr      float64 // 0 = use table errors or the default
	families    []hgfit.Family
}

func defaultConfig() *config {
	return &config{
		model:      modelBoth,
		layout:     hgdata.Phase,
		degrees:    true,
		samples:    uncert.DefaultSamples,
		repeatable: true,
		seed:       3,
	}
}

// fileConfig is the YAML form of config.  Nil fields were not given.
type fileConfig struct {
	Model       *string        `yaml:"model"`
	Layout      *string        `yaml:"layout"`
	Degrees     *bool          `yaml:"degrees"`
	Uncertainty *bool          `yaml:"uncertainty"`
	Samples     *int           `yaml:"samples"`
	Repeatable  *bool          `yaml:"repeatable"`
	Seed        *uint64        `yaml:"seed"`
	MagErr      *float64       `yaml:"magErr"`
	Families    []hgfit.Family `yaml:"families"`
}

var errConfig = errors.New("config")

// read overlays settings from YAML on c.
func (c *config) read(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var fc fileConfig
	if err := dec.Decode(&fc); err != nil && err != io.EOF {
		return fmt.Errorf("%w: %v", errConfig, err)
	}
	if fc.Model != nil {
		c.model = *fc.Model
	}
	if fc.Layout != nil {
		l, err := hgdata.ParseLayout(*fc.Layout)
		if err != nil {
			return fmt.Errorf("%w: %v", errConfig, err)
		}
		c.layout = l
	}
	if fc.Degrees != nil {
		c.degrees = *fc.Degrees
	}
	if fc.Uncertainty != nil {
		c.uncertainty = *fc.Uncertainty
	}
	if fc.Samples != nil {
		c.samples = *fc.Samples
	}
	if fc.Repeatable != nil {
		c.repeatable = *fc.Repeatable
	}
	if fc.Seed != nil {
		c.seed = *fc.Seed
	}
	if fc.MagErr != nil {
		c.magErr = *fc.MagErr
	}
	if len(fc.Families) > 0 {
		c.families = fc.Families
	}
	return c.validate()
}

func (c *config) readFile(fn string) error {
	f, err := os.Open(fn)
	if err != nil {
		return err
	}
	defer f.Close()
	return c.read(f)
}

func (c *config) validate() error {
	switch c.model {
	case modelHG1G2, modelHG12, modelBoth:
	default:
		return fmt.Errorf("%w: unknown model %q", errConfig, c.model)
	}
	if c.uncertainty && (c.samples < uncert.MinSamples || c.samples > uncert.MaxSamples) {
		return fmt.Errorf("%w: samples must be %d to %d",
			errConfig, uncert.MinSamples, uncert.MaxSamples)
	}
	if c.magErr < 0 {
		return fmt.Errorf("%w: negative magErr", errConfig)
	}
	return nil
}

// magErrors returns the magnitude errors to use for a table.
func (c *config) magErrors(t *hgdata.Table) hgfit.Errors {
	if c.magErr > 0 {
		return hgfit.ErrorsFromScalar(c.magErr)
	}
	return t.Errors
}

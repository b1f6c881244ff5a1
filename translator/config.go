package translator

import (
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/a-bouts/nav-translator/condor"
)

// Config is the translator configuration file.
type Config struct {
	FlightPlan string
	Sceneries  string
	Gliders    string
	Options    Options
	Targets    []Target
}

var advanceModes = map[string]AutoAdvance{
	"manual":   AdvanceManual,
	"auto":     AdvanceAuto,
	"arm":      AdvanceArm,
	"armstart": AdvanceArmStart,
}

// LoadConfig reads the configuration; relative paths are taken from the
// configuration file's directory.
func LoadConfig(path string) (*Config, error) {
	f, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", condor.ErrInput, path, err)
	}
	base := filepath.Dir(path)
	abs := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}

	c := &Config{}
	condorSec := f.Section("Condor")
	c.FlightPlan = abs(condorSec.Key("FlightPlan").String())
	c.Options.ComPort = condorSec.Key("ComPort").MustInt(0)
	c.Options.BaudRate = condorSec.Key("BaudRate").MustInt(4800)

	tr := f.Section("Translator")
	c.Sceneries = abs(tr.Key("Sceneries").String())
	c.Gliders = abs(tr.Key("Gliders").String())
	c.Options.MapsDir = abs(tr.Key("MapsDir").String())
	mode := strings.ToLower(tr.Key("AutoAdvance").MustString("auto"))
	advance, ok := advanceModes[mode]
	if !ok {
		return nil, fmt.Errorf("%w: Translator/AutoAdvance %q", condor.ErrInput, mode)
	}
	c.Options.AutoAdvance = advance

	if c.Sceneries == "" || c.Gliders == "" {
		return nil, fmt.Errorf("%w: Translator/Sceneries and Translator/Gliders are required", condor.ErrInput)
	}

	for _, name := range tr.Key("Targets").Strings(",") {
		sec, err := f.GetSection(name)
		if err != nil {
			return nil, fmt.Errorf("%w: missing section for target %q", condor.ErrInput, name)
		}
		kind, err := ParseKind(sec.Key("Kind").String())
		if err != nil {
			return nil, fmt.Errorf("%w: %s/Kind: %v", condor.ErrInput, name, err)
		}
		dir := abs(sec.Key("Path").String())
		if dir == "" {
			return nil, fmt.Errorf("%w: missing %s/Path", condor.ErrInput, name)
		}
		c.Targets = append(c.Targets, Target{
			Name:        name,
			Kind:        kind,
			Dir:         dir,
			Profile:     abs(sec.Key("Profile").String()),
			DefaultTask: sec.Key("DefaultTask").MustBool(false),
		})
	}
	if len(c.Targets) == 0 {
		return nil, fmt.Errorf("%w: no targets configured", condor.ErrInput)
	}
	return c, nil
}

package translator

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/a-bouts/nav-translator/profile"
)

// Kind is the task file dialect of a navigation program.
type Kind int

const (
	LegacyBinary Kind = iota
	ExtendedBinary
	XML
)

func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "legacy":
		return LegacyBinary, nil
	case "extended":
		return ExtendedBinary, nil
	case "xml":
		return XML, nil
	}
	return 0, fmt.Errorf("unknown target kind %q", s)
}

func (k Kind) String() string {
	switch k {
	case LegacyBinary:
		return "legacy"
	case ExtendedBinary:
		return "extended"
	case XML:
		return "xml"
	}
	return "unknown"
}

func (k Kind) Capabilities() Capabilities {
	switch k {
	case ExtendedBinary:
		return Capabilities{MaxTaskPoints: 20, MaxStartPoints: 10}
	case XML:
		return Capabilities{MaxTaskPoints: 30, PerPointSectors: true}
	}
	return Capabilities{MaxTaskPoints: 10, MaxStartPoints: 10}
}

func (k Kind) dialect() profile.Dialect {
	if k == ExtendedBinary {
		return profile.Plain
	}
	return profile.Quoted
}

// Target is one installation of a navigation program.
type Target struct {
	Name string
	Kind Kind
	// Dir is the data directory of the program.
	Dir string
	// Profile is the profile file to update; defaults inside Dir.
	Profile string
	// DefaultTask also overwrites the task the program loads on start.
	DefaultTask bool
}

const (
	waypointFile = "Condor.dat"
	polarFile    = "Condor.plr"
	airspaceFile = "Condor.txt"
)

func (t Target) path(name string) string {
	return filepath.Join(t.Dir, name)
}

func (t Target) ProfilePath() string {
	if t.Profile != "" {
		return t.Profile
	}
	switch t.Kind {
	case ExtendedBinary:
		return filepath.Join(t.Dir, "_Configuration", "DEFAULT_PROFILE.prf")
	case XML:
		return t.path("default.prf")
	}
	return t.path("xcsoar-registry.prf")
}

// TaskPaths lists every destination of the task file, primary first.
func (t Target) TaskPaths() []string {
	var paths []string
	switch t.Kind {
	case ExtendedBinary:
		paths = append(paths, filepath.Join(t.Dir, "_Tasks", "Condor.lkt"))
		if t.DefaultTask {
			paths = append(paths, filepath.Join(t.Dir, "_Tasks", "Default.lkt"))
		}
	case XML:
		paths = append(paths, filepath.Join(t.Dir, "tasks", "Condor.tsk"))
		if t.DefaultTask {
			paths = append(paths, t.path("Default.tsk"))
		}
	default:
		paths = append(paths, t.path("Condor.tsk"))
	}
	return paths
}

// EncodeTask serializes a classification in the target's dialect.
func (t Target) EncodeTask(c *Classification, country string) ([]byte, error) {
	switch t.Kind {
	case LegacyBinary:
		return EncodeLegacy(c, t.Kind.Capabilities()), nil
	case ExtendedBinary:
		return EncodeExtended(c, t.Kind.Capabilities(), country), nil
	case XML:
		return EncodeXML(c)
	}
	return nil, fmt.Errorf("%w: unknown target kind %d", ErrCapability, t.Kind)
}

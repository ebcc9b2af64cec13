package config

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/wildstyl3r/subnucleon/internal/dipole"
)

// Config is a run file: global defaults at the top level, one table per target.
//
//	InputUnits = ["fm"]
//	Xpom = 0.001
//	[Targets.Au]
//	Kind = "glauber"
//	A = 197
type Config struct {
	OutputDir  string
	MakeDir    bool
	InputUnits []string
	Targets    map[string]TargetParameters
	TargetParameters
}

type TargetParameters struct {
	Kind          string // ipglasma | glauber
	File          string // Wilson lines of an ipglasma target
	A             int
	Elementary    string // ipsat | ipnonsat
	ThicknessFile string // optional table of b [GeV^-1], T_A(b) [GeV^2]

	Xpom           float64
	DipoleSize     float64 // [length]
	BMax           float64 // [length]
	BPoints        int
	SatScaleMax    float64 // [length]
	SatScalePoints int
	Threads        int // 0: one per CPU

	_verbose bool
}

func (p *TargetParameters) Verbose() bool {
	return p._verbose
}

func (p *TargetParameters) SetVerbosity(verbose bool) {
	p._verbose = verbose
}

// natural units (GeV based) unless noted
var defaultValues = map[string]any{
	"Elementary":     "ipsat",
	"Xpom":           0.01,
	"DipoleSize":     2.,  // [GeV^-1]
	"BMax":           60., // [GeV^-1]
	"BPoints":        121,
	"SatScaleMax":    50., // [GeV^-1]
	"SatScalePoints": 100,
	"Threads":        0,
}

var valueUnits = map[string][]UnitElement{
	"DipoleSize":  {{Class: Length, Power: 1}},
	"BMax":        {{Class: Length, Power: 1}},
	"SatScaleMax": {{Class: Length, Power: 1}},
}

func LoadConfig(configFileName string) (Config, toml.MetaData, error) {
	var config Config
	meta, err := toml.DecodeFile(strings.TrimSuffix(configFileName, ".toml")+".toml", &config)
	if err != nil {
		return config, meta, err
	}

	units, conflicts, err := checkUnits(config.InputUnits)
	if err != nil {
		return config, meta, err
	}
	if len(conflicts) > 0 {
		return config, meta, fmt.Errorf("found input unit conflict: %v", conflicts)
	}
	config.InputUnits = units

	if len(config.Targets) == 0 {
		return config, meta, fmt.Errorf("no targets provided")
	}
	return config, meta, nil
}

func (p *TargetParameters) toNatural(parameterNames, units []string) {
	reflected := reflect.ValueOf(p).Elem()
	for _, name := range parameterNames {
		field := reflected.FieldByName(name)
		if _, some := valueUnits[name]; some && field.CanFloat() {
			field.SetFloat(Natural(field.Float(), valueUnits[name], units, true))
		}
	}
}

/*
field value priority:
1. target table
2. top level of the file
3. default
*/

// Target resolves the parameters of one target and validates them.
func (c *Config) Target(name string, meta *toml.MetaData) (TargetParameters, error) {
	target, some := c.Targets[name]
	if !some {
		return target, fmt.Errorf("target %q not found", name)
	}

	var discoveredParameters []string
	targetReflect := reflect.ValueOf(&target).Elem()
	globalReflect := reflect.ValueOf(&c.TargetParameters).Elem()
	targetType := targetReflect.Type()
	for i := range targetType.NumField() {
		fieldName := targetType.Field(i).Name
		if !targetType.Field(i).IsExported() {
			continue
		}
		if meta.IsDefined("Targets", name, fieldName) {
			discoveredParameters = append(discoveredParameters, fieldName)
		} else if meta.IsDefined(fieldName) {
			targetReflect.Field(i).Set(globalReflect.Field(i))
			discoveredParameters = append(discoveredParameters, fieldName)
		}
	}

	target.toNatural(discoveredParameters, c.InputUnits)

	for fieldName, value := range defaultValues {
		if !slices.Contains(discoveredParameters, fieldName) {
			targetReflect.FieldByName(fieldName).Set(reflect.ValueOf(value))
		}
	}
	target._verbose = c._verbose

	if err := target.validate(); err != nil {
		return target, fmt.Errorf("target %s: %w", name, err)
	}
	return target, nil
}

func (p *TargetParameters) validate() error {
	kind, err := dipole.ParseKind(p.Kind)
	if err != nil {
		return err
	}
	switch kind {
	case dipole.Lattice:
		if p.File == "" {
			return dipole.Configurationf("ipglasma target needs a Wilson line File")
		}
	case dipole.Glauber:
		if p.A <= 0 {
			return dipole.Configurationf("glauber target needs a positive mass number A")
		}
		if _, err := p.Saturation(); err != nil {
			return err
		}
	}
	if !(p.Xpom > 0 && p.Xpom < 1) {
		return dipole.Configurationf("Xpom must be in (0, 1), got %g", p.Xpom)
	}
	if p.BPoints < 2 || p.SatScalePoints < 2 {
		return dipole.Configurationf("scans need at least 2 points")
	}
	if p.Threads < 0 {
		return dipole.Configurationf("negative thread count %d", p.Threads)
	}
	return nil
}

// Saturation tells which nucleon amplitude the Elementary field selects.
func (p *TargetParameters) Saturation() (bool, error) {
	switch p.Elementary {
	case "ipsat":
		return true, nil
	case "ipnonsat":
		return false, nil
	}
	return false, dipole.Configurationf("unknown elementary amplitude %q", p.Elementary)
}

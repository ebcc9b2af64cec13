package config

import (
	"fmt"

	"github.com/wildstyl3r/subnucleon/internal/constants"
	"github.com/wildstyl3r/subnucleon/internal/utils"
)

// lengths are handled in GeV^{-1} internally
var unitToNatural = map[string]float64{
	"GeV-1": 1,
	"fm":    constants.FmGeV,
}

type UnitClass int

const (
	Length UnitClass = iota
)

var unitsInClass = map[UnitClass][]string{
	Length: {"fm", "GeV-1"},
}

var classesOfUnits = map[string]UnitClass{
	"fm":    Length,
	"GeV-1": Length,
}

var defaultUnits = []string{"GeV-1"}

type UnitElement = struct {
	Class UnitClass
	Power int
}

// checkUnits reports units given twice for the same class and fills the
// missing classes from defaultUnits.
func checkUnits(units []string) (extended, conflicts []string, err error) {
	classes := map[UnitClass]struct{}{}
	for _, unit := range units {
		class, known := classesOfUnits[unit]
		if !known {
			return nil, nil, fmt.Errorf("unknown unit %q", unit)
		}
		if _, some := classes[class]; some {
			conflicts = append(conflicts, unit)
		} else {
			classes[class] = struct{}{}
		}
	}
	extended = append([]string{}, units...)
	for _, unit := range defaultUnits {
		if _, some := classes[classesOfUnits[unit]]; !some {
			extended = append(extended, unit)
		}
	}
	return
}

// Natural converts v given in units to GeV based units (direct) or back.
func Natural(v float64, classes []UnitElement, units []string, direct bool) float64 {
	for i := range classes {
		uc := classes[i]
		unit := utils.Intersect(unitsInClass[uc.Class], units)
		if unit == nil {
			continue
		}
		factor := unitToNatural[*unit]
		absPower := uc.Power
		if absPower < 0 {
			absPower = -absPower
		}
		if (uc.Power > 0) == direct {
			for range absPower {
				v *= factor
			}
		} else {
			for range absPower {
				v /= factor
			}
		}
	}
	return v
}

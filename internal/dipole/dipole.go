// Package dipole holds the contract shared by every target model: the
// scattering amplitude of a quark-antiquark dipole with the quark at q1 and the
// antiquark at q2 (transverse coordinates), at momentum fraction xpom.
//
// Implementations are immutable once constructed, so one instance can serve any
// number of goroutines without locking.
package dipole

import "fmt"

type Amplitude interface {
	Amplitude(xpom float64, q1, q2 [2]float64) float64
	InfoStr() string
	InitializeTarget()
}

// Kind enumerates the target models this module builds.
type Kind int

const (
	Lattice Kind = iota // Wilson lines from an IP-Glasma configuration
	Glauber             // smooth Woods-Saxon nucleus in the optical limit
)

var kindNames = map[string]Kind{
	"ipglasma": Lattice,
	"glauber":  Glauber,
}

func (k Kind) String() string {
	for name, kind := range kindNames {
		if kind == k {
			return name
		}
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func ParseKind(name string) (Kind, error) {
	if k, ok := kindNames[name]; ok {
		return k, nil
	}
	return 0, Configurationf("unknown dipole %q", name)
}

package maplib

import "fmt"

// Domain is a unit's movement medium class
type Domain uint8

const (
	DomainLand Domain = iota
	DomainWater
	DomainAir
	DomainAirLow
)

var domainNames = [...]string{"land", "water", "air", "air-low"}

func (d Domain) String() string {
	if int(d) < len(domainNames) {
		return domainNames[d]
	}
	return fmt.Sprintf("domain(%d)", uint8(d))
}

// ParseDomain converts a name such as "land" or "air-low" to a Domain
func ParseDomain(s string) (Domain, error) {
	for i, name := range domainNames {
		if name == s {
			return Domain(i), nil
		}
	}
	return 0, fmt.Errorf("unknown domain %q", s)
}

// IsAir reports whether units of this domain fly
func (d Domain) IsAir() bool { return d == DomainAir || d == DomainAirLow }

// IsGround reports whether units of this domain move on land or water
func (d Domain) IsGround() bool { return d == DomainLand || d == DomainWater }

// DefaultMask returns the passability classes a plain unit of this domain uses
func (d Domain) DefaultMask() TileFlag {
	switch d {
	case DomainWater:
		return FlagWater
	case DomainAir, DomainAirLow:
		return FlagAir
	default:
		return FlagLand
	}
}

// SharesSpace reports whether units of domains d and o block each other.
// Land and water units share the ground; each air band is separate.
func (d Domain) SharesSpace(o Domain) bool {
	if d.IsGround() {
		return o.IsGround()
	}
	return d == o
}

package models

import (
	"fmt"
	"strings"
)

// Location is a body region of a mech that holds one component.
type Location int

// Enum order is the fixed location ordering used for stable tie-breaks.
const (
	Head Location = iota
	LeftArm
	LeftLeg
	LeftTorso
	CenterTorso
	RightTorso
	RightLeg
	RightArm
)

// NumLocations is the number of body locations on a biped mech.
const NumLocations = 8

// Locations lists every location in enum order.
var Locations = []Location{Head, LeftArm, LeftLeg, LeftTorso, CenterTorso, RightTorso, RightLeg, RightArm}

var locationNames = [NumLocations]string{
	"Head", "Left Arm", "Left Leg", "Left Torso", "Center Torso", "Right Torso", "Right Leg", "Right Arm",
}

var locationCodes = [NumLocations]string{"HD", "LA", "LL", "LT", "CT", "RT", "RL", "RA"}

func (l Location) String() string {
	if l < 0 || int(l) >= NumLocations {
		return fmt.Sprintf("Location(%d)", int(l))
	}
	return locationNames[l]
}

// ShortName returns the two letter code, e.g. "RT".
func (l Location) ShortName() string {
	if l < 0 || int(l) >= NumLocations {
		return "??"
	}
	return locationCodes[l]
}

// TwoSided reports whether the location carries front and rear armor.
func (l Location) TwoSided() bool {
	return l == LeftTorso || l == CenterTorso || l == RightTorso
}

// PairedTorso returns the side torso an arm hangs off.
func (l Location) PairedTorso() (Location, bool) {
	switch l {
	case LeftArm:
		return LeftTorso, true
	case RightArm:
		return RightTorso, true
	}
	return 0, false
}

// ParseLocation accepts either the long name ("Right Torso") or the code ("RT").
func ParseLocation(s string) (Location, error) {
	t := strings.TrimSpace(s)
	for i := range locationNames {
		if strings.EqualFold(t, locationNames[i]) || strings.EqualFold(t, locationCodes[i]) {
			return Location(i), nil
		}
	}
	return 0, fmt.Errorf("unknown location %q", s)
}

// ArmorSide selects which face of a component an armor value belongs to.
type ArmorSide int

const (
	// ArmorOnly is the single side of a one-sided location.
	ArmorOnly ArmorSide = iota
	ArmorFront
	ArmorBack
)

func (s ArmorSide) String() string {
	switch s {
	case ArmorFront:
		return "front"
	case ArmorBack:
		return "back"
	default:
		return "only"
	}
}

// SidesOf returns the armor sides valid for a location.
func SidesOf(l Location) []ArmorSide {
	if l.TwoSided() {
		return []ArmorSide{ArmorFront, ArmorBack}
	}
	return []ArmorSide{ArmorOnly}
}

package models

import (
	"fmt"
	"strings"
)

// HardPointType is the weapon category a mounting point accepts.
type HardPointType int

const (
	HardPointNone HardPointType = iota
	HardPointEnergy
	HardPointBallistic
	HardPointMissile
	HardPointAMS
	HardPointECM
)

var hardPointNames = []string{"none", "energy", "ballistic", "missile", "ams", "ecm"}

func (h HardPointType) String() string {
	if h < 0 || int(h) >= len(hardPointNames) {
		return fmt.Sprintf("HardPointType(%d)", int(h))
	}
	return hardPointNames[h]
}

// ParseHardPointType maps "energy", "Energy", "E" etc. onto a type. Empty is none.
func ParseHardPointType(s string) (HardPointType, error) {
	t := strings.ToLower(strings.TrimSpace(s))
	switch t {
	case "", "none", "-":
		return HardPointNone, nil
	case "e":
		return HardPointEnergy, nil
	case "b":
		return HardPointBallistic, nil
	case "m":
		return HardPointMissile, nil
	}
	for i, n := range hardPointNames {
		if t == n {
			return HardPointType(i), nil
		}
	}
	return HardPointNone, fmt.Errorf("unknown hardpoint type %q", s)
}

package models

import (
	"fmt"
	"strings"
)

// ArmorUpgrade is an armor type selection.
type ArmorUpgrade struct {
	Name         string
	PointsPerTon float64
	// Slots is the number of dynamic slots the armor type claims.
	Slots       int
	RequiresECM bool
}

// StructureUpgrade is an internal structure type selection.
type StructureUpgrade struct {
	Name string
	// MassFactor is the structure mass as a fraction of chassis mass.
	MassFactor float64
	Slots      int
}

// HeatSinkUpgrade names the only heat sink item a loadout may mount.
type HeatSinkUpgrade struct {
	Name     string
	HeatSink string
}

// GuidanceUpgrade adds slots and mass to every missile launcher.
type GuidanceUpgrade struct {
	Name       string
	ExtraSlots int
	ExtraMass  float64
}

// Upgrades is the full upgrade selection of one loadout. It is a comparable value.
type Upgrades struct {
	Armor     ArmorUpgrade
	Structure StructureUpgrade
	HeatSink  HeatSinkUpgrade
	Guidance  GuidanceUpgrade
}

var (
	StandardArmor      = ArmorUpgrade{Name: "Standard Armor", PointsPerTon: 32}
	FerroFibrousArmor  = ArmorUpgrade{Name: "Ferro-Fibrous Armor", PointsPerTon: 35.84, Slots: 14}
	StealthArmor       = ArmorUpgrade{Name: "Stealth Armor", PointsPerTon: 32, Slots: 12, RequiresECM: true}
	StandardStructure  = StructureUpgrade{Name: "Standard Structure", MassFactor: 0.1}
	EndoSteelStructure = StructureUpgrade{Name: "Endo-Steel Structure", MassFactor: 0.05, Slots: 14}
	SingleHeatSinks    = HeatSinkUpgrade{Name: "Single Heat Sinks", HeatSink: "Heat Sink"}
	DoubleHeatSinks    = HeatSinkUpgrade{Name: "Double Heat Sinks", HeatSink: "Double Heat Sink"}
	NoGuidance         = GuidanceUpgrade{Name: "No Guidance"}
	ArtemisIV          = GuidanceUpgrade{Name: "Artemis IV", ExtraSlots: 1, ExtraMass: 1}
)

// DefaultUpgrades is the selection of a freshly created loadout.
func DefaultUpgrades() Upgrades {
	return Upgrades{
		Armor:     StandardArmor,
		Structure: StandardStructure,
		HeatSink:  SingleHeatSinks,
		Guidance:  NoGuidance,
	}
}

// ArmorUpgradeByName resolves MTF and catalog spellings, e.g. "Ferro-Fibrous(Inner Sphere)".
func ArmorUpgradeByName(name string) (ArmorUpgrade, error) {
	n := strings.ToLower(name)
	switch {
	case n == "" || strings.HasPrefix(n, "standard"):
		return StandardArmor, nil
	case strings.Contains(n, "ferro"):
		return FerroFibrousArmor, nil
	case strings.Contains(n, "stealth"):
		return StealthArmor, nil
	}
	return ArmorUpgrade{}, fmt.Errorf("unknown armor type %q", name)
}

// StructureUpgradeByName resolves e.g. "IS Endo Steel" or "Standard".
func StructureUpgradeByName(name string) (StructureUpgrade, error) {
	n := strings.ToLower(name)
	switch {
	case n == "" || strings.Contains(n, "standard"):
		return StandardStructure, nil
	case strings.Contains(n, "endo"):
		return EndoSteelStructure, nil
	}
	return StructureUpgrade{}, fmt.Errorf("unknown structure type %q", name)
}

// HeatSinkUpgradeByName resolves e.g. "IS Double" or "Single".
func HeatSinkUpgradeByName(name string) (HeatSinkUpgrade, error) {
	n := strings.ToLower(name)
	switch {
	case n == "" || strings.Contains(n, "single"):
		return SingleHeatSinks, nil
	case strings.Contains(n, "double"):
		return DoubleHeatSinks, nil
	}
	return HeatSinkUpgrade{}, fmt.Errorf("unknown heat sink type %q", name)
}

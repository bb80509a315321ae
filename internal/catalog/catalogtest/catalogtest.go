// Package catalogtest provides a small fixed catalog for tests.
package catalogtest

import (
	"testing"

	"github.com/lisongmechlab/lsml-sub001/internal/catalog"
	"github.com/lisongmechlab/lsml-sub001/internal/models"
)

const (
	Atlas     = "AS7-D"
	Hunchback = "HBK-4P"
	Jenner    = "JR7-D"
)

var (
	headInternals = []string{"Life Support", "Sensors", "Cockpit"}
	armInternals  = []string{"Shoulder", "Upper Arm Actuator", "Lower Arm Actuator", "Hand Actuator"}
	armToggles    = []string{"Lower Arm Actuator", "Hand Actuator"}
	legInternals  = []string{"Hip", "Upper Leg Actuator", "Lower Leg Actuator", "Foot Actuator"}
)

// Document returns the fixture catalog in serialized form.
func Document() catalog.Document {
	return catalog.Document{
		Items: []catalog.ItemRecord{
			{Name: "Medium Laser", Aliases: []string{"ML"}, Kind: "weapon", Slots: 1, Mass: 1, HardPoint: "energy"},
			{Name: "Large Laser", Aliases: []string{"LL"}, Kind: "weapon", Slots: 2, Mass: 5, HardPoint: "energy"},
			{Name: "PPC", Kind: "weapon", Slots: 3, Mass: 7, HardPoint: "energy"},
			{Name: "AC/5", Kind: "weapon", Slots: 4, Mass: 8, HardPoint: "ballistic"},
			{Name: "AC/20", Kind: "weapon", Slots: 10, Mass: 14, HardPoint: "ballistic"},
			{Name: "LRM 10", Aliases: []string{"LRM10"}, Kind: "weapon", Slots: 2, Mass: 5, HardPoint: "missile"},
			{Name: "SRM 6", Aliases: []string{"SRM6"}, Kind: "weapon", Slots: 2, Mass: 3, HardPoint: "missile"},
			{Name: "AMS", Kind: "weapon", Slots: 1, Mass: 0.5, HardPoint: "ams"},
			{Name: "Guardian ECM", Aliases: []string{"ECM"}, Kind: "ecm", Slots: 2, Mass: 1.5, HardPoint: "ecm"},
			{Name: "AC/5 Ammo", Kind: "ammo", Slots: 1, Mass: 1},
			{Name: "AC/20 Ammo", Kind: "ammo", Slots: 1, Mass: 1},
			{Name: "LRM Ammo", Kind: "ammo", Slots: 1, Mass: 1},
			{Name: "Heat Sink", Kind: "heatsink", Slots: 1, Mass: 1},
			{Name: "Double Heat Sink", Kind: "heatsink", Slots: 3, Mass: 1},
			{Name: "Jump Jet", Kind: "jumpjet", Slots: 1, Mass: 0.5, Locations: []string{"LT", "CT", "RT", "LL", "RL"}},
			{Name: "STD Engine 200", Kind: "engine", Slots: 6, Mass: 8.5, EngineRating: 200},
			{Name: "STD Engine 250", Kind: "engine", Slots: 6, Mass: 12.5, EngineRating: 250},
			{Name: "STD Engine 300", Kind: "engine", Slots: 6, Mass: 19, EngineRating: 300},
			{Name: "XL Engine 300", Kind: "engine", Slots: 6, Mass: 9.5, EngineRating: 300, EngineSide: "XL Engine Side"},
			{Name: "XL Engine Side", Kind: "internal", Slots: 3, Mass: 0},
			{Name: "Life Support", Kind: "internal", Slots: 1, Mass: 0},
			{Name: "Sensors", Kind: "internal", Slots: 1, Mass: 0},
			{Name: "Cockpit", Kind: "internal", Slots: 1, Mass: 3},
			{Name: "Gyro", Kind: "internal", Slots: 4, Mass: 3},
			{Name: "Shoulder", Kind: "internal", Slots: 1, Mass: 0},
			{Name: "Upper Arm Actuator", Kind: "internal", Slots: 1, Mass: 0},
			{Name: "Lower Arm Actuator", Kind: "internal", Slots: 1, Mass: 0, Actuator: "lower_arm"},
			{Name: "Hand Actuator", Kind: "internal", Slots: 1, Mass: 0, Actuator: "hand"},
			{Name: "Hip", Kind: "internal", Slots: 1, Mass: 0},
			{Name: "Upper Leg Actuator", Kind: "internal", Slots: 1, Mass: 0},
			{Name: "Lower Leg Actuator", Kind: "internal", Slots: 1, Mass: 0},
			{Name: "Foot Actuator", Kind: "internal", Slots: 1, Mass: 0},
		},
		Chassis: []catalog.ChassisRecord{
			Biped(Atlas, 100, 200, 360, 0, [models.NumLocations]int{18, 68, 83, 84, 120, 84, 83, 68},
				map[string]map[string]int{
					"LA": {"energy": 2},
					"RA": {"energy": 2},
					"LT": {"missile": 1, "ams": 1},
					"RT": {"ballistic": 1, "missile": 1},
					"CT": {"energy": 1},
				}),
			Biped(Hunchback, 50, 100, 300, 0, [models.NumLocations]int{18, 32, 48, 48, 64, 48, 48, 32},
				map[string]map[string]int{
					"HD": {"energy": 1},
					"LA": {"energy": 1},
					"RT": {"energy": 6},
				}),
			Biped(Jenner, 35, 100, 300, 5, [models.NumLocations]int{18, 22, 32, 32, 44, 32, 32, 22},
				map[string]map[string]int{
					"LA": {"energy": 2},
					"RA": {"energy": 2},
					"CT": {"missile": 1},
					"LT": {"ecm": 1},
				}),
		},
	}
}

// Biped builds a chassis record with the standard internals. Max armor is
// given in location enum order.
func Biped(name string, mass float64, engineMin, engineMax, jumpJets int, maxArmor [models.NumLocations]int, hardPoints map[string]map[string]int) catalog.ChassisRecord {
	c := catalog.ChassisRecord{
		Name:        name,
		Mass:        mass,
		EngineMin:   engineMin,
		EngineMax:   engineMax,
		MaxJumpJets: jumpJets,
	}
	for _, loc := range models.Locations {
		cr := catalog.ComponentRecord{
			Location:   loc.ShortName(),
			Slots:      12,
			MaxArmor:   maxArmor[loc],
			HardPoints: hardPoints[loc.ShortName()],
		}
		switch loc {
		case models.Head:
			cr.Slots = 6
			cr.Internals = headInternals
		case models.CenterTorso:
			cr.Internals = []string{"Gyro"}
		case models.LeftArm, models.RightArm:
			cr.Internals = armInternals
			cr.Toggleable = armToggles
		case models.LeftLeg, models.RightLeg:
			cr.Slots = 6
			cr.Internals = legInternals
		}
		c.Components = append(c.Components, cr)
	}
	return c
}

// New builds the fixture catalog.
func New() *catalog.Memory {
	m, err := Document().Build()
	if err != nil {
		panic("catalogtest: " + err.Error())
	}
	return m
}

// Item looks up an item and fails the test if it is missing.
func Item(tb testing.TB, c catalog.Catalog, name string) *models.Item {
	tb.Helper()
	it, err := c.Item(name)
	if err != nil {
		tb.Fatalf("item %q: %v", name, err)
	}
	return it
}

// Chassis looks up a chassis and fails the test if it is missing.
func Chassis(tb testing.TB, c catalog.Catalog, name string) *models.Chassis {
	tb.Helper()
	ch, err := c.Chassis(name)
	if err != nil {
		tb.Fatalf("chassis %q: %v", name, err)
	}
	return ch
}

package models

import (
	"fmt"
	"strings"
)

// ItemKind is the closed set of equipment categories the engine distinguishes.
type ItemKind int

const (
	KindEquipment ItemKind = iota
	KindWeapon
	KindAmmo
	KindHeatSink
	KindJumpJet
	KindECM
	KindEngine
	KindInternal
)

var kindNames = []string{"equipment", "weapon", "ammo", "heatsink", "jumpjet", "ecm", "engine", "internal"}

func (k ItemKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("ItemKind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseItemKind maps a catalog kind string onto an ItemKind. Empty is generic equipment.
func ParseItemKind(s string) (ItemKind, error) {
	t := strings.ToLower(strings.TrimSpace(s))
	if t == "" {
		return KindEquipment, nil
	}
	for i, n := range kindNames {
		if t == n {
			return ItemKind(i), nil
		}
	}
	return KindEquipment, fmt.Errorf("unknown item kind %q", s)
}

// Actuator marks the toggleable arm actuators.
type Actuator int

const (
	ActuatorNone Actuator = iota
	ActuatorLowerArm
	ActuatorHand
)

// ParseActuator maps "lower_arm"/"hand" onto an Actuator.
func ParseActuator(s string) (Actuator, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return ActuatorNone, nil
	case "lower_arm", "lower arm", "laa":
		return ActuatorLowerArm, nil
	case "hand", "ha":
		return ActuatorHand, nil
	}
	return ActuatorNone, fmt.Errorf("unknown actuator %q", s)
}

func (a Actuator) String() string {
	switch a {
	case ActuatorLowerArm:
		return "lower_arm"
	case ActuatorHand:
		return "hand"
	}
	return ""
}

// EngineSpec holds the engine-only facts of an item.
type EngineSpec struct {
	Rating int
	// Side is the part an XL engine occupies in each side torso; nil for standard engines.
	Side *Item
}

// Item is an immutable equipment descriptor. Items are shared between
// loadouts and must never be modified after the catalog is built.
type Item struct {
	Name      string        `json:"name"`
	Aliases   []string      `json:"aliases,omitempty"`
	Kind      ItemKind      `json:"kind"`
	Slots     int           `json:"slots"`
	Mass      float64       `json:"mass"`
	HardPoint HardPointType `json:"hardpoint"`
	// Locations restricts where the item may be mounted. Empty means anywhere.
	Locations []Location  `json:"locations,omitempty"`
	Engine    *EngineSpec `json:"-"`
	Actuator  Actuator    `json:"actuator,omitempty"`
}

func (i *Item) String() string {
	return i.Name
}

// IsInternal reports whether the item is fixed structure that the user and
// the algorithms can never place or remove.
func (i *Item) IsInternal() bool {
	return i.Kind == KindInternal
}

func (i *Item) IsEngine() bool {
	return i.Kind == KindEngine && i.Engine != nil
}

// EngineSide returns the side torso part of an XL engine, or nil.
func (i *Item) EngineSide() *Item {
	if !i.IsEngine() {
		return nil
	}
	return i.Engine.Side
}

// EngineHeatSinkCapacity returns how many heat sinks fit inside the engine
// without taking component slots.
func (i *Item) EngineHeatSinkCapacity() int {
	if !i.IsEngine() {
		return 0
	}
	n := i.Engine.Rating/25 - 10
	if n < 0 {
		return 0
	}
	return n
}

// CountsAsEngineHeatSink reports whether the item may sit in free engine capacity.
func (i *Item) CountsAsEngineHeatSink() bool {
	return i.Kind == KindHeatSink
}

func (i *Item) IsECM() bool {
	return i.Kind == KindECM
}

func (i *Item) IsJumpJet() bool {
	return i.Kind == KindJumpJet
}

// IsMissileWeapon reports whether guidance upgrades apply to the item.
func (i *Item) IsMissileWeapon() bool {
	return i.Kind == KindWeapon && i.HardPoint == HardPointMissile
}

// AllowedIn reports whether the item's location restriction admits loc.
func (i *Item) AllowedIn(loc Location) bool {
	if i.IsEngine() {
		return loc == CenterTorso
	}
	if len(i.Locations) == 0 {
		return true
	}
	for _, l := range i.Locations {
		if l == loc {
			return true
		}
	}
	return false
}

// Matches reports whether name is the item's name or one of its aliases.
func (i *Item) Matches(name string) bool {
	if strings.EqualFold(i.Name, name) {
		return true
	}
	for _, a := range i.Aliases {
		if strings.EqualFold(a, name) {
			return true
		}
	}
	return false
}

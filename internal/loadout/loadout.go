// Package loadout holds the mutable configuration of one mech and the
// read-only feasibility queries the commands and algorithms rely on.
package loadout

import (
	"math"

	"github.com/google/uuid"
	"github.com/lisongmechlab/lsml-sub001/internal/models"
)

// massEpsilon absorbs float noise in mass comparisons.
const massEpsilon = 1e-6

// Loadout is one mech configuration. Invariants: used slots never exceed the
// chassis total and mass never exceeds the chassis mass.
type Loadout struct {
	id         uuid.UUID
	name       string
	chassis    *models.Chassis
	upgrades   models.Upgrades
	components [models.NumLocations]*Component
}

// New creates an empty loadout with internals mounted, no armor and default upgrades.
func New(chassis *models.Chassis) *Loadout {
	l := &Loadout{
		id:       uuid.New(),
		name:     chassis.Name,
		chassis:  chassis,
		upgrades: models.DefaultUpgrades(),
	}
	for _, loc := range models.Locations {
		l.components[loc] = newComponent(l, chassis.Component(loc))
	}
	return l
}

// ID identifies the loadout in change notifications. Clones keep the ID.
func (l *Loadout) ID() uuid.UUID {
	return l.id
}

func (l *Loadout) Name() string {
	return l.name
}

func (l *Loadout) SetName(name string) {
	l.name = name
}

func (l *Loadout) Chassis() *models.Chassis {
	return l.chassis
}

func (l *Loadout) Upgrades() models.Upgrades {
	return l.upgrades
}

// SetUpgrades replaces the upgrade selection without validation.
func (l *Loadout) SetUpgrades(u models.Upgrades) {
	l.upgrades = u
}

func (l *Loadout) Component(loc models.Location) *Component {
	return l.components[loc]
}

// Components returns every component in location enum order.
func (l *Loadout) Components() []*Component {
	out := make([]*Component, 0, models.NumLocations)
	for _, loc := range models.Locations {
		out = append(out, l.components[loc])
	}
	return out
}

// ItemSlots is the slot count of item under the current upgrades.
func (l *Loadout) ItemSlots(item *models.Item) int {
	if item == nil {
		return 0
	}
	if item.IsMissileWeapon() {
		return item.Slots + l.upgrades.Guidance.ExtraSlots
	}
	return item.Slots
}

// ItemMass is the mass of item under the current upgrades.
func (l *Loadout) ItemMass(item *models.Item) float64 {
	if item.IsMissileWeapon() {
		return item.Mass + l.upgrades.Guidance.ExtraMass
	}
	return item.Mass
}

// Engine returns the engine in the center torso, or nil.
func (l *Loadout) Engine() *models.Item {
	return l.components[models.CenterTorso].Engine()
}

// Items returns every non-internal item across all components.
func (l *Loadout) Items() []*models.Item {
	var out []*models.Item
	for _, c := range l.Components() {
		for _, it := range c.items {
			if !it.IsInternal() {
				out = append(out, it)
			}
		}
	}
	return out
}

// Count returns how many mounted items satisfy pred.
func (l *Loadout) Count(pred func(*models.Item) bool) int {
	n := 0
	for _, c := range l.components {
		for _, it := range c.items {
			if pred(it) {
				n++
			}
		}
	}
	return n
}

func (l *Loadout) HasECM() bool {
	return l.Count((*models.Item).IsECM) > 0
}

func (l *Loadout) StructureMass() float64 {
	return l.chassis.Mass * l.upgrades.Structure.MassFactor
}

func (l *Loadout) ItemsMass() float64 {
	m := 0.0
	for _, c := range l.components {
		m += c.ItemMass()
	}
	return m
}

func (l *Loadout) TotalArmor() int {
	n := 0
	for _, c := range l.components {
		n += c.ArmorTotal()
	}
	return n
}

func (l *Loadout) ArmorMass() float64 {
	return float64(l.TotalArmor()) / l.upgrades.Armor.PointsPerTon
}

// UnarmoredMass is structure plus items.
func (l *Loadout) UnarmoredMass() float64 {
	return l.StructureMass() + l.ItemsMass()
}

func (l *Loadout) Mass() float64 {
	return l.UnarmoredMass() + l.ArmorMass()
}

func (l *Loadout) FreeMass() float64 {
	return l.chassis.Mass - l.Mass()
}

// DynamicSlots is the slot count claimed by armor and structure upgrades.
func (l *Loadout) DynamicSlots() int {
	return l.upgrades.Armor.Slots + l.upgrades.Structure.Slots
}

func (l *Loadout) UsedSlots() int {
	n := l.DynamicSlots()
	for _, c := range l.components {
		n += c.UsedSlots()
	}
	return n
}

func (l *Loadout) FreeSlots() int {
	return l.chassis.TotalSlots() - l.UsedSlots()
}

// CanEquipGlobal checks the rules that do not depend on a specific location.
func (l *Loadout) CanEquipGlobal(item *models.Item) EquipResult {
	if item.IsInternal() {
		return Fail(NotSupported)
	}
	if item.Kind == models.KindHeatSink && item.Name != l.upgrades.HeatSink.HeatSink {
		return Fail(NotSupported)
	}
	if item.IsEngine() {
		if l.Engine() != nil {
			return Fail(NotSupported)
		}
		r := item.Engine.Rating
		if r < l.chassis.EngineMin || r > l.chassis.EngineMax {
			return Fail(NotSupported)
		}
	}
	if item.IsJumpJet() && l.Count((*models.Item).IsJumpJet) >= l.chassis.MaxJumpJets {
		return Fail(NotSupported)
	}
	supported := false
	for _, c := range l.components {
		if c.CanEverEquip(item) {
			supported = true
			break
		}
	}
	if !supported {
		return Fail(NotSupported)
	}
	if l.ItemMass(item) > l.FreeMass()+massEpsilon {
		return Fail(TooHeavy)
	}
	if l.globalSlotsFor(item) > l.FreeSlots() {
		return Fail(NotEnoughSlots)
	}
	if t := item.HardPoint; t != models.HardPointNone {
		free := 0
		for _, c := range l.components {
			free += max(c.FreeHardPoints(t), 0)
		}
		if free == 0 {
			return Fail(NotEnoughSlots)
		}
	}
	return SuccessResult
}

func (l *Loadout) globalSlotsFor(item *models.Item) int {
	if item.CountsAsEngineHeatSink() {
		ct := l.components[models.CenterTorso]
		if ct.EngineHeatSinks() < ct.EngineHeatSinkCapacity() {
			return 0
		}
	}
	n := l.ItemSlots(item)
	if side := item.EngineSide(); side != nil {
		n += 2 * side.Slots
	}
	return n
}

// CanEquipDirectly checks whether item can be added to loc right now
// without moving anything else.
func (l *Loadout) CanEquipDirectly(item *models.Item, loc models.Location) EquipResult {
	if r := l.CanEquipGlobal(item); !r.IsSuccess() {
		return r
	}
	if r := l.components[loc].CanEquip(item); !r.IsSuccess() {
		return r
	}
	need := l.components[loc].SlotsFor(item)
	if side := item.EngineSide(); side != nil {
		for _, st := range []models.Location{models.LeftTorso, models.RightTorso} {
			if l.components[st].FreeSlots() < side.Slots {
				return FailAt(NotEnoughSlots, st)
			}
		}
		need += 2 * side.Slots
	}
	if need > l.FreeSlots() {
		return Fail(NotEnoughSlots)
	}
	return SuccessResult
}

// Validate checks the slot and mass invariants of the current state.
func (l *Loadout) Validate() EquipResult {
	for _, c := range l.Components() {
		if c.FreeSlots() < 0 {
			return FailAt(NotEnoughSlots, c.Location())
		}
	}
	if l.FreeSlots() < 0 {
		return Fail(NotEnoughSlots)
	}
	if l.FreeMass() < -massEpsilon {
		return Fail(TooHeavy)
	}
	return SuccessResult
}

// Clone returns an independent copy sharing only the immutable catalog data.
func (l *Loadout) Clone() *Loadout {
	n := &Loadout{id: l.id, name: l.name, chassis: l.chassis, upgrades: l.upgrades}
	for _, loc := range models.Locations {
		n.components[loc] = l.components[loc].clone(n)
	}
	return n
}

// Equal compares chassis, upgrades, armor and the multiset of items per location.
// Identity and name are ignored.
func (l *Loadout) Equal(o *Loadout) bool {
	if l == o {
		return true
	}
	if o == nil || l.chassis.Name != o.chassis.Name || l.upgrades != o.upgrades {
		return false
	}
	for _, loc := range models.Locations {
		if !l.components[loc].equal(o.components[loc]) {
			return false
		}
	}
	return true
}

// ArmorPoints converts tons of armor into points at the current armor type.
func (l *Loadout) ArmorPoints(tons float64) int {
	return int(math.Floor(tons*l.upgrades.Armor.PointsPerTon + massEpsilon))
}

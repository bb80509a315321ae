package loadout

import (
	"github.com/lisongmechlab/lsml-sub001/internal/models"
)

// Component is the equipment holder of one location. It is only mutated by
// commands; the mutators below do not validate.
type Component struct {
	owner  *Loadout
	spec   *models.ComponentSpec
	items  []*models.Item
	armor  [2]int
	manual [2]bool
}

func newComponent(owner *Loadout, spec *models.ComponentSpec) *Component {
	c := &Component{owner: owner, spec: spec}
	c.items = append(c.items, spec.Internals...)
	return c
}

func (c *Component) Location() models.Location {
	return c.spec.Location
}

func (c *Component) Spec() *models.ComponentSpec {
	return c.spec
}

// Items returns a copy of the equipped items, internals included.
func (c *Component) Items() []*models.Item {
	out := make([]*models.Item, len(c.items))
	copy(out, c.items)
	return out
}

// ItemAt returns the item at index i.
func (c *Component) ItemAt(i int) *models.Item {
	return c.items[i]
}

func (c *Component) ItemCount() int {
	return len(c.items)
}

// IndexOf returns the index of the last item named like item, or -1.
func (c *Component) IndexOf(item *models.Item) int {
	for i := len(c.items) - 1; i >= 0; i-- {
		if c.items[i].Name == item.Name {
			return i
		}
	}
	return -1
}

func (c *Component) HasItem(item *models.Item) bool {
	return c.IndexOf(item) >= 0
}

// HasActuator reports whether an actuator of kind a is mounted.
func (c *Component) HasActuator(a models.Actuator) bool {
	for _, it := range c.items {
		if it.Actuator == a {
			return true
		}
	}
	return false
}

// Engine returns the mounted engine, or nil.
func (c *Component) Engine() *models.Item {
	for _, it := range c.items {
		if it.IsEngine() {
			return it
		}
	}
	return nil
}

// EngineHeatSinkCapacity is the number of heat sinks the mounted engine can hold.
func (c *Component) EngineHeatSinkCapacity() int {
	if e := c.Engine(); e != nil {
		return e.EngineHeatSinkCapacity()
	}
	return 0
}

// EngineHeatSinks is the number of heat sinks currently held inside the engine.
func (c *Component) EngineHeatSinks() int {
	capacity := c.EngineHeatSinkCapacity()
	if capacity == 0 {
		return 0
	}
	n := 0
	for _, it := range c.items {
		if it.CountsAsEngineHeatSink() {
			n++
		}
	}
	if n > capacity {
		return capacity
	}
	return n
}

// SlotsFor is the number of component slots item would consume if added now.
func (c *Component) SlotsFor(item *models.Item) int {
	if item.CountsAsEngineHeatSink() && c.EngineHeatSinks() < c.EngineHeatSinkCapacity() {
		return 0
	}
	return c.owner.ItemSlots(item)
}

// UsedSlots counts slots taken by items. The first heat sinks up to the
// engine capacity sit inside the engine and take no slots.
func (c *Component) UsedSlots() int {
	held := c.EngineHeatSinkCapacity()
	used := 0
	for _, it := range c.items {
		if held > 0 && it.CountsAsEngineHeatSink() {
			held--
			continue
		}
		used += c.owner.ItemSlots(it)
	}
	return used
}

func (c *Component) FreeSlots() int {
	return c.spec.Slots - c.UsedSlots()
}

// ItemMass is the mass of every mounted item.
func (c *Component) ItemMass() float64 {
	m := 0.0
	for _, it := range c.items {
		m += c.owner.ItemMass(it)
	}
	return m
}

// UsedHardPoints counts mounted items that take a hardpoint of type t.
func (c *Component) UsedHardPoints(t models.HardPointType) int {
	n := 0
	for _, it := range c.items {
		if it.HardPoint == t {
			n++
		}
	}
	return n
}

func (c *Component) FreeHardPoints(t models.HardPointType) int {
	return c.spec.HardPointCount(t) - c.UsedHardPoints(t)
}

// Armor returns the points on side. ArmorOnly and ArmorFront share storage.
func (c *Component) Armor(side models.ArmorSide) int {
	return c.armor[sideIndex(side)]
}

func (c *Component) ArmorTotal() int {
	return c.armor[0] + c.armor[1]
}

func (c *Component) MaxArmor() int {
	return c.spec.MaxArmor
}

func (c *Component) IsManual(side models.ArmorSide) bool {
	return c.manual[sideIndex(side)]
}

// HasManualArmor reports whether any side of the component is pinned.
func (c *Component) HasManualArmor() bool {
	return c.manual[0] || c.manual[1]
}

// CanEverEquip reports whether the location's fixed rules admit item,
// ignoring what is currently mounted.
func (c *Component) CanEverEquip(item *models.Item) bool {
	if item.IsInternal() || !item.AllowedIn(c.Location()) {
		return false
	}
	if item.HardPoint != models.HardPointNone && c.spec.HardPointCount(item.HardPoint) == 0 {
		return false
	}
	return c.owner.ItemSlots(item) <= c.spec.Slots
}

// CanEquip checks the component-local rules only.
func (c *Component) CanEquip(item *models.Item) EquipResult {
	loc := c.Location()
	if !c.CanEverEquip(item) {
		return FailAt(NotSupported, loc)
	}
	if item.IsEngine() && c.Engine() != nil {
		return FailAt(NotSupported, loc)
	}
	if item.HardPoint != models.HardPointNone && c.FreeHardPoints(item.HardPoint) <= 0 {
		return FailAt(NotSupported, loc)
	}
	if c.SlotsFor(item) > c.FreeSlots() {
		return FailAt(NotEnoughSlots, loc)
	}
	return SuccessResult
}

// Add appends item without validation.
func (c *Component) Add(item *models.Item) int {
	c.items = append(c.items, item)
	return len(c.items) - 1
}

// InsertAt puts item back at index i without validation.
func (c *Component) InsertAt(i int, item *models.Item) {
	if i < 0 || i > len(c.items) {
		i = len(c.items)
	}
	c.items = append(c.items, nil)
	copy(c.items[i+1:], c.items[i:])
	c.items[i] = item
}

// RemoveAt removes and returns the item at index i.
func (c *Component) RemoveAt(i int) *models.Item {
	it := c.items[i]
	c.items = append(c.items[:i], c.items[i+1:]...)
	return it
}

// SetArmor writes points and the manual flag for side without validation.
func (c *Component) SetArmor(side models.ArmorSide, points int, manual bool) {
	idx := sideIndex(side)
	c.armor[idx] = points
	c.manual[idx] = manual
}

func (c *Component) clone(owner *Loadout) *Component {
	n := &Component{owner: owner, spec: c.spec, armor: c.armor, manual: c.manual}
	n.items = make([]*models.Item, len(c.items))
	copy(n.items, c.items)
	return n
}

func (c *Component) equal(o *Component) bool {
	if c.spec.Location != o.spec.Location || c.armor != o.armor || c.manual != o.manual {
		return false
	}
	if len(c.items) != len(o.items) {
		return false
	}
	counts := make(map[string]int, len(c.items))
	for _, it := range c.items {
		counts[it.Name]++
	}
	for _, it := range o.items {
		counts[it.Name]--
		if counts[it.Name] < 0 {
			return false
		}
	}
	return true
}

func sideIndex(side models.ArmorSide) int {
	if side == models.ArmorBack {
		return 1
	}
	return 0
}

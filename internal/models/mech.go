package models

// ComponentSpec holds the fixed facts of one chassis location.
type ComponentSpec struct {
	Location   Location              `json:"location"`
	Slots      int                   `json:"slots"`
	MaxArmor   int                   `json:"max_armor"`
	HardPoints map[HardPointType]int `json:"hardpoints,omitempty"`
	// Internals are mounted when the loadout is created.
	Internals []*Item `json:"internals,omitempty"`
	// Toggleable lists the internals that may be switched off.
	Toggleable []*Item `json:"toggleable,omitempty"`
}

// HardPointCount returns the number of hardpoints of type t.
func (s *ComponentSpec) HardPointCount(t HardPointType) int {
	if s.HardPoints == nil {
		return 0
	}
	return s.HardPoints[t]
}

// IsToggleable reports whether item may be switched on and off here.
func (s *ComponentSpec) IsToggleable(item *Item) bool {
	for _, t := range s.Toggleable {
		if t.Name == item.Name {
			return true
		}
	}
	return false
}

// Chassis is an immutable mech variant.
type Chassis struct {
	Name        string  `json:"name"`
	Mass        float64 `json:"mass"`
	EngineMin   int     `json:"engine_min"`
	EngineMax   int     `json:"engine_max"`
	MaxJumpJets int     `json:"max_jump_jets"`

	Components [NumLocations]ComponentSpec `json:"components"`
}

// Component returns the spec for loc.
func (c *Chassis) Component(loc Location) *ComponentSpec {
	return &c.Components[loc]
}

// TotalSlots is the sum of slots over every location.
func (c *Chassis) TotalSlots() int {
	total := 0
	for i := range c.Components {
		total += c.Components[i].Slots
	}
	return total
}

// MaxArmor is the sum of max armor over every location.
func (c *Chassis) MaxArmor() int {
	total := 0
	for i := range c.Components {
		total += c.Components[i].MaxArmor
	}
	return total
}

// StockItem places one item in a stock configuration.
type StockItem struct {
	Location Location
	Item     *Item
}

// StockArmor is one armor value of a stock configuration.
type StockArmor struct {
	Location Location
	Side     ArmorSide
	Points   int
}

// StockToggle sets the state of a toggleable internal.
type StockToggle struct {
	Location Location
	Item     *Item
	On       bool
}

// StockLoadout is a complete factory configuration for a chassis.
// Toggleable internals not listed in Toggles keep their current state.
type StockLoadout struct {
	Chassis  *Chassis
	Upgrades Upgrades
	Items    []StockItem
	Armor    []StockArmor
	Toggles  []StockToggle
}

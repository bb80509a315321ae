package command

import (
	"fmt"

	"github.com/lisongmechlab/lsml-sub001/internal/loadout"
	"github.com/lisongmechlab/lsml-sub001/internal/messages"
	"github.com/lisongmechlab/lsml-sub001/internal/models"
)

var sideTorsos = []models.Location{models.LeftTorso, models.RightTorso}

// AddItem mounts an item in one location. Adding an XL engine also mounts
// its side parts in both side torsos.
type AddItem struct {
	delivery messages.Delivery
	loadout  *loadout.Loadout
	loc      models.Location
	item     *models.Item
	applied  bool
}

func NewAddItem(d messages.Delivery, l *loadout.Loadout, loc models.Location, item *models.Item) *AddItem {
	return &AddItem{delivery: d, loadout: l, loc: loc, item: item}
}

func (c *AddItem) Apply() error {
	if c.applied {
		return nil
	}
	if r := c.loadout.CanEquipDirectly(c.item, c.loc); !r.IsSuccess() {
		return r.Err()
	}
	idx := c.loadout.Component(c.loc).Add(c.item)
	c.post(messages.ItemAdded, c.loc, c.item, idx)
	if side := c.item.EngineSide(); side != nil {
		for _, st := range sideTorsos {
			i := c.loadout.Component(st).Add(side)
			c.post(messages.ItemAdded, st, side, i)
		}
	}
	c.applied = true
	return nil
}

func (c *AddItem) Undo() {
	if !c.applied {
		return
	}
	if side := c.item.EngineSide(); side != nil {
		for i := len(sideTorsos) - 1; i >= 0; i-- {
			st := sideTorsos[i]
			comp := c.loadout.Component(st)
			if idx := comp.IndexOf(side); idx >= 0 {
				comp.RemoveAt(idx)
				c.post(messages.ItemRemoved, st, side, idx)
			}
		}
	}
	comp := c.loadout.Component(c.loc)
	if idx := comp.IndexOf(c.item); idx >= 0 {
		comp.RemoveAt(idx)
		c.post(messages.ItemRemoved, c.loc, c.item, idx)
	}
	c.applied = false
}

func (c *AddItem) Describe() string {
	return fmt.Sprintf("add %s to %s", c.item.Name, c.loc)
}

func (c *AddItem) CanCoalesce(Command) bool {
	return false
}

func (c *AddItem) post(kind messages.ChangeKind, loc models.Location, item *models.Item, idx int) {
	messages.Post(c.delivery, messages.Message{
		Loadout: c.loadout.ID(), Kind: kind, Location: loc, Item: item, Index: idx,
	})
}

// RemoveItem unmounts one instance of an item from a location.
type RemoveItem struct {
	delivery messages.Delivery
	loadout  *loadout.Loadout
	loc      models.Location
	item     *models.Item
	applied  bool
	index    int
	sideIdx  [2]int
}

func NewRemoveItem(d messages.Delivery, l *loadout.Loadout, loc models.Location, item *models.Item) *RemoveItem {
	return &RemoveItem{delivery: d, loadout: l, loc: loc, item: item}
}

func (c *RemoveItem) check() loadout.EquipResult {
	comp := c.loadout.Component(c.loc)
	if c.item.IsInternal() || !comp.HasItem(c.item) {
		return loadout.FailAt(loadout.NotSupported, c.loc)
	}
	if c.item.IsECM() && c.loadout.Upgrades().Armor.RequiresECM &&
		c.loadout.Count((*models.Item).IsECM) == 1 {
		return loadout.FailAt(loadout.CannotRemoveECM, c.loc)
	}
	if c.item.IsEngine() {
		// Heat sinks held by the engine start taking slots once it is gone.
		extra := 0
		if hs := comp.EngineHeatSinks(); hs > 0 {
			for _, it := range comp.Items() {
				if it.CountsAsEngineHeatSink() {
					extra = hs * c.loadout.ItemSlots(it)
					break
				}
			}
		}
		if comp.FreeSlots()+c.loadout.ItemSlots(c.item)-extra < 0 {
			return loadout.FailAt(loadout.NotEnoughSlots, c.loc)
		}
		freed := c.loadout.ItemSlots(c.item)
		if side := c.item.EngineSide(); side != nil {
			freed += 2 * side.Slots
		}
		if c.loadout.FreeSlots()+freed-extra < 0 {
			return loadout.Fail(loadout.NotEnoughSlots)
		}
	}
	return loadout.SuccessResult
}

func (c *RemoveItem) Apply() error {
	if c.applied {
		return nil
	}
	if r := c.check(); !r.IsSuccess() {
		return r.Err()
	}
	comp := c.loadout.Component(c.loc)
	c.index = comp.IndexOf(c.item)
	comp.RemoveAt(c.index)
	c.post(messages.ItemRemoved, c.loc, c.item, c.index)
	if side := c.item.EngineSide(); side != nil {
		for i, st := range sideTorsos {
			sc := c.loadout.Component(st)
			c.sideIdx[i] = sc.IndexOf(side)
			if c.sideIdx[i] >= 0 {
				sc.RemoveAt(c.sideIdx[i])
				c.post(messages.ItemRemoved, st, side, c.sideIdx[i])
			}
		}
	}
	c.applied = true
	return nil
}

func (c *RemoveItem) Undo() {
	if !c.applied {
		return
	}
	if side := c.item.EngineSide(); side != nil {
		for i := len(sideTorsos) - 1; i >= 0; i-- {
			if c.sideIdx[i] < 0 {
				continue
			}
			c.loadout.Component(sideTorsos[i]).InsertAt(c.sideIdx[i], side)
			c.post(messages.ItemAdded, sideTorsos[i], side, c.sideIdx[i])
		}
	}
	c.loadout.Component(c.loc).InsertAt(c.index, c.item)
	c.post(messages.ItemAdded, c.loc, c.item, c.index)
	c.applied = false
}

func (c *RemoveItem) Describe() string {
	return fmt.Sprintf("remove %s from %s", c.item.Name, c.loc)
}

func (c *RemoveItem) CanCoalesce(Command) bool {
	return false
}

func (c *RemoveItem) post(kind messages.ChangeKind, loc models.Location, item *models.Item, idx int) {
	messages.Post(c.delivery, messages.Message{
		Loadout: c.loadout.ID(), Kind: kind, Location: loc, Item: item, Index: idx,
	})
}

// ToggleItem switches a toggleable actuator on or off.
type ToggleItem struct {
	delivery messages.Delivery
	loadout  *loadout.Loadout
	loc      models.Location
	item     *models.Item
	on       bool
	applied  bool
	changed  bool
	index    int
}

func NewToggleItem(d messages.Delivery, l *loadout.Loadout, loc models.Location, item *models.Item, on bool) *ToggleItem {
	return &ToggleItem{delivery: d, loadout: l, loc: loc, item: item, on: on}
}

func (c *ToggleItem) check(comp *loadout.Component) loadout.EquipResult {
	if !comp.Spec().IsToggleable(c.item) {
		return loadout.FailAt(loadout.NotSupported, c.loc)
	}
	if c.on {
		if c.item.Actuator == models.ActuatorHand && !comp.HasActuator(models.ActuatorLowerArm) {
			return loadout.FailAt(loadout.LaaBeforeHa, c.loc)
		}
		if c.loadout.ItemSlots(c.item) > comp.FreeSlots() {
			return loadout.FailAt(loadout.NotEnoughSlots, c.loc)
		}
		if c.loadout.ItemSlots(c.item) > c.loadout.FreeSlots() {
			return loadout.Fail(loadout.NotEnoughSlots)
		}
		if c.loadout.ItemMass(c.item) > c.loadout.FreeMass()+1e-6 {
			return loadout.Fail(loadout.TooHeavy)
		}
		return loadout.SuccessResult
	}
	if c.item.Actuator == models.ActuatorLowerArm && comp.HasActuator(models.ActuatorHand) {
		return loadout.FailAt(loadout.LaaBeforeHa, c.loc)
	}
	return loadout.SuccessResult
}

func (c *ToggleItem) Apply() error {
	if c.applied {
		return nil
	}
	comp := c.loadout.Component(c.loc)
	if comp.HasItem(c.item) == c.on {
		if !comp.Spec().IsToggleable(c.item) {
			return loadout.FailAt(loadout.NotSupported, c.loc).Err()
		}
		c.applied, c.changed = true, false
		return nil
	}
	if r := c.check(comp); !r.IsSuccess() {
		return r.Err()
	}
	if c.on {
		c.index = comp.Add(c.item)
		c.post(messages.ItemAdded)
	} else {
		c.index = comp.IndexOf(c.item)
		comp.RemoveAt(c.index)
		c.post(messages.ItemRemoved)
	}
	c.applied, c.changed = true, true
	return nil
}

func (c *ToggleItem) Undo() {
	if !c.applied {
		return
	}
	c.applied = false
	if !c.changed {
		return
	}
	comp := c.loadout.Component(c.loc)
	if c.on {
		if idx := comp.IndexOf(c.item); idx >= 0 {
			comp.RemoveAt(idx)
			c.post(messages.ItemRemoved)
		}
		return
	}
	comp.InsertAt(c.index, c.item)
	c.post(messages.ItemAdded)
}

func (c *ToggleItem) Describe() string {
	state := "off"
	if c.on {
		state = "on"
	}
	return fmt.Sprintf("toggle %s %s in %s", c.item.Name, state, c.loc)
}

func (c *ToggleItem) CanCoalesce(Command) bool {
	return false
}

func (c *ToggleItem) post(kind messages.ChangeKind) {
	messages.Post(c.delivery, messages.Message{
		Loadout: c.loadout.ID(), Kind: kind, Location: c.loc, Item: c.item, Index: c.index,
	})
}

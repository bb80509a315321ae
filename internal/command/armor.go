package command

import (
	"fmt"

	"github.com/lisongmechlab/lsml-sub001/internal/loadout"
	"github.com/lisongmechlab/lsml-sub001/internal/messages"
	"github.com/lisongmechlab/lsml-sub001/internal/models"
)

// SetArmor sets the points and manual flag of one side of one component.
type SetArmor struct {
	delivery messages.Delivery
	loadout  *loadout.Loadout
	loc      models.Location
	side     models.ArmorSide
	points   int
	manual   bool

	applied   bool
	oldPoints int
	oldManual bool
}

func NewSetArmor(d messages.Delivery, l *loadout.Loadout, loc models.Location, side models.ArmorSide, points int, manual bool) *SetArmor {
	return &SetArmor{delivery: d, loadout: l, loc: loc, side: side, points: points, manual: manual}
}

func (c *SetArmor) check(comp *loadout.Component) loadout.EquipResult {
	if c.loc.TwoSided() == (c.side == models.ArmorOnly) || c.points < 0 {
		return loadout.FailAt(loadout.NotSupported, c.loc)
	}
	other := comp.ArmorTotal() - comp.Armor(c.side)
	if other+c.points > comp.MaxArmor() {
		return loadout.FailAt(loadout.ExceededMaxArmor, c.loc)
	}
	delta := float64(c.points-comp.Armor(c.side)) / c.loadout.Upgrades().Armor.PointsPerTon
	if delta > c.loadout.FreeMass()+1e-6 {
		return loadout.FailAt(loadout.TooHeavy, c.loc)
	}
	return loadout.SuccessResult
}

func (c *SetArmor) Apply() error {
	if c.applied {
		return nil
	}
	comp := c.loadout.Component(c.loc)
	if r := c.check(comp); !r.IsSuccess() {
		return r.Err()
	}
	c.oldPoints, c.oldManual = comp.Armor(c.side), comp.IsManual(c.side)
	comp.SetArmor(c.side, c.points, c.manual)
	c.post()
	c.applied = true
	return nil
}

func (c *SetArmor) Undo() {
	if !c.applied {
		return
	}
	c.loadout.Component(c.loc).SetArmor(c.side, c.oldPoints, c.oldManual)
	c.post()
	c.applied = false
}

func (c *SetArmor) Describe() string {
	return fmt.Sprintf("set %s armor of %s to %d", c.side, c.loc, c.points)
}

// CanCoalesce merges repeated edits of the same side with the same manual flag.
func (c *SetArmor) CanCoalesce(other Command) bool {
	o, ok := other.(*SetArmor)
	if !ok || o == c {
		return false
	}
	return o.loadout == c.loadout && o.loc == c.loc && o.side == c.side && o.manual == c.manual
}

func (c *SetArmor) post() {
	messages.Post(c.delivery, messages.Message{
		Loadout: c.loadout.ID(), Kind: messages.ArmorChanged, Location: c.loc,
	})
}

// Points returns the value the command writes.
func (c *SetArmor) Points() int {
	return c.points
}

// NewStripArmor zeroes every side of every component and clears manual flags.
func NewStripArmor(d messages.Delivery, l *loadout.Loadout) *Composite {
	return NewComposite("strip armor", func() ([]Command, error) {
		var cmds []Command
		for _, c := range l.Components() {
			for _, side := range models.SidesOf(c.Location()) {
				cmds = append(cmds, NewSetArmor(d, l, c.Location(), side, 0, false))
			}
		}
		return cmds, nil
	})
}

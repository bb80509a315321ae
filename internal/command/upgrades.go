package command

import (
	"fmt"

	"github.com/lisongmechlab/lsml-sub001/internal/loadout"
	"github.com/lisongmechlab/lsml-sub001/internal/messages"
	"github.com/lisongmechlab/lsml-sub001/internal/models"
)

// SetUpgrades changes one part of the upgrade selection. The change is
// computed against the selection current at apply time.
type SetUpgrades struct {
	delivery messages.Delivery
	loadout  *loadout.Loadout
	desc     string
	mutate   func(u *models.Upgrades)
	checkECM bool

	applied bool
	prev    models.Upgrades
}

func (c *SetUpgrades) Apply() error {
	if c.applied {
		return nil
	}
	prev := c.loadout.Upgrades()
	next := prev
	c.mutate(&next)
	if c.checkECM && next.Armor.RequiresECM && !c.loadout.HasECM() {
		return loadout.Fail(loadout.NeedEcm).Err()
	}
	probe := c.loadout.Clone()
	probe.SetUpgrades(next)
	if r := probe.Validate(); !r.IsSuccess() {
		return r.Err()
	}
	c.prev = prev
	c.loadout.SetUpgrades(next)
	c.post()
	c.applied = true
	return nil
}

func (c *SetUpgrades) Undo() {
	if !c.applied {
		return
	}
	c.loadout.SetUpgrades(c.prev)
	c.post()
	c.applied = false
}

func (c *SetUpgrades) Describe() string {
	return c.desc
}

func (c *SetUpgrades) CanCoalesce(Command) bool {
	return false
}

func (c *SetUpgrades) post() {
	messages.Post(c.delivery, messages.Message{Loadout: c.loadout.ID(), Kind: messages.UpgradeChanged})
}

// NewSetArmorType selects an armor type. Stealth armor needs an ECM mounted.
func NewSetArmorType(d messages.Delivery, l *loadout.Loadout, a models.ArmorUpgrade) *SetUpgrades {
	return &SetUpgrades{
		delivery: d, loadout: l, checkECM: true,
		desc:   fmt.Sprintf("set armor type to %s", a.Name),
		mutate: func(u *models.Upgrades) { u.Armor = a },
	}
}

func NewSetStructureType(d messages.Delivery, l *loadout.Loadout, s models.StructureUpgrade) *SetUpgrades {
	return &SetUpgrades{
		delivery: d, loadout: l,
		desc:   fmt.Sprintf("set structure type to %s", s.Name),
		mutate: func(u *models.Upgrades) { u.Structure = s },
	}
}

func NewSetGuidanceType(d messages.Delivery, l *loadout.Loadout, g models.GuidanceUpgrade) *SetUpgrades {
	return &SetUpgrades{
		delivery: d, loadout: l,
		desc:   fmt.Sprintf("set guidance to %s", g.Name),
		mutate: func(u *models.Upgrades) { u.Guidance = g },
	}
}

// newSetAllUpgrades replaces the whole selection; stock loading uses it on a
// stripped loadout where the ECM arrives later in the same transaction.
func newSetAllUpgrades(d messages.Delivery, l *loadout.Loadout, all models.Upgrades) *SetUpgrades {
	return &SetUpgrades{
		delivery: d, loadout: l,
		desc:   "set upgrades",
		mutate: func(u *models.Upgrades) { *u = all },
	}
}

// NewSetHeatSinkType selects a heat sink type and replaces every mounted heat
// sink with heatSink in place. heatSink must be the item the upgrade names.
func NewSetHeatSinkType(d messages.Delivery, l *loadout.Loadout, h models.HeatSinkUpgrade, heatSink *models.Item) *Composite {
	desc := fmt.Sprintf("set heat sinks to %s", h.Name)
	return NewComposite(desc, func() ([]Command, error) {
		if heatSink == nil || heatSink.Name != h.HeatSink || heatSink.Kind != models.KindHeatSink {
			return nil, loadout.Fail(loadout.NotSupported).Err()
		}
		cmds := []Command{&SetUpgrades{
			delivery: d, loadout: l, desc: desc,
			mutate: func(u *models.Upgrades) { u.HeatSink = h },
		}}
		for _, c := range l.Components() {
			for _, it := range c.Items() {
				if it.Kind != models.KindHeatSink || it.Name == heatSink.Name {
					continue
				}
				cmds = append(cmds,
					NewRemoveItem(d, l, c.Location(), it),
					NewAddItem(d, l, c.Location(), heatSink))
			}
		}
		return cmds, nil
	})
}

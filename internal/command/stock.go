package command

import (
	"fmt"
	"sort"

	"github.com/lisongmechlab/lsml-sub001/internal/loadout"
	"github.com/lisongmechlab/lsml-sub001/internal/messages"
	"github.com/lisongmechlab/lsml-sub001/internal/models"
)

// NewStripEquipment removes every non-internal item. The engine goes last so
// that heat sinks never overflow the center torso.
func NewStripEquipment(d messages.Delivery, l *loadout.Loadout) *Composite {
	return NewComposite("strip equipment", func() ([]Command, error) {
		var cmds, engines []Command
		for _, c := range l.Components() {
			items := c.Items()
			for i := len(items) - 1; i >= 0; i-- {
				it := items[i]
				switch {
				case it.IsInternal():
				case it.IsEngine():
					engines = append(engines, NewRemoveItem(d, l, c.Location(), it))
				default:
					cmds = append(cmds, NewRemoveItem(d, l, c.Location(), it))
				}
			}
		}
		return append(cmds, engines...), nil
	})
}

// NewLoadStock replaces the loadout with a stock configuration as one step.
// Stock armor is pinned as manual.
func NewLoadStock(d messages.Delivery, l *loadout.Loadout, stock *models.StockLoadout) *Composite {
	return NewComposite(fmt.Sprintf("load stock %s", stock.Chassis.Name), func() ([]Command, error) {
		if stock.Chassis.Name != l.Chassis().Name {
			return nil, loadout.Fail(loadout.NotSupported).Err()
		}
		cmds := []Command{NewStripArmor(d, l)}
		if l.Upgrades().Armor.RequiresECM {
			// Releases the ECM so the strip below can take it out.
			cmds = append(cmds, NewSetArmorType(d, l, models.StandardArmor))
		}
		cmds = append(cmds,
			NewStripEquipment(d, l),
			newSetAllUpgrades(d, l, stock.Upgrades))
		cmds = append(cmds, stockToggles(d, l, stock.Toggles)...)
		// Engine first, so that heat sinks listed for the center torso land in it.
		for _, si := range stock.Items {
			if si.Item.IsEngine() {
				cmds = append(cmds, NewAddItem(d, l, si.Location, si.Item))
			}
		}
		for _, si := range stock.Items {
			if !si.Item.IsEngine() {
				cmds = append(cmds, NewAddItem(d, l, si.Location, si.Item))
			}
		}
		for _, a := range stock.Armor {
			cmds = append(cmds, NewSetArmor(d, l, a.Location, a.Side, a.Points, true))
		}
		return cmds, nil
	})
}

// stockToggles orders toggles so that the hand actuator is never mounted
// without the lower arm actuator.
func stockToggles(d messages.Delivery, l *loadout.Loadout, toggles []models.StockToggle) []Command {
	ts := append([]models.StockToggle(nil), toggles...)
	sort.SliceStable(ts, func(i, j int) bool { return toggleRank(ts[i]) < toggleRank(ts[j]) })
	cmds := make([]Command, 0, len(ts))
	for _, t := range ts {
		cmds = append(cmds, NewToggleItem(d, l, t.Location, t.Item, t.On))
	}
	return cmds
}

func toggleRank(t models.StockToggle) int {
	switch {
	case !t.On && t.Item.Actuator == models.ActuatorHand:
		return 0
	case !t.On:
		return 1
	case t.Item.Actuator == models.ActuatorLowerArm:
		return 2
	}
	return 3
}

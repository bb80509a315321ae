package ingestion

import (
	"fmt"
	"strings"

	"github.com/lisongmechlab/lsml-sub001/internal/catalog"
	"github.com/lisongmechlab/lsml-sub001/internal/models"
)

// engineHeatSinksIncluded is the number of heat sinks an MTF count folds
// into every fusion engine. They are not mounted items.
const engineHeatSinksIncluded = 10

// Resolve maps parsed MTF data onto catalog descriptors. Crit lines naming
// internals, upgrade slots or empty slots are skipped; lines the catalog does
// not know are returned in unresolved.
func Resolve(data *MTFData, cat catalog.Catalog) (*models.StockLoadout, []string, error) {
	chassis, err := lookupChassis(data, cat)
	if err != nil {
		return nil, nil, err
	}
	upgrades, err := resolveUpgrades(data)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", data.FullName(), err)
	}
	stock := &models.StockLoadout{Chassis: chassis, Upgrades: upgrades}
	var unresolved []string

	var engine *models.Item
	if data.EngineRating > 0 {
		name := engineName(data)
		if engine, err = cat.Item(name); err != nil {
			unresolved = append(unresolved, name)
		} else {
			stock.Items = append(stock.Items, models.StockItem{Location: models.CenterTorso, Item: engine})
		}
	}

	heatSinks, ctHeatSinks := 0, 0
	for _, loc := range models.Locations {
		lines := data.LocationEquipment[loc.String()]
		if len(lines) == 0 {
			continue
		}
		items, missing := resolveCrits(lines, cat)
		unresolved = append(unresolved, missing...)
		for _, it := range items {
			stock.Items = append(stock.Items, models.StockItem{Location: loc, Item: it})
			if it.CountsAsEngineHeatSink() {
				heatSinks++
				if loc == models.CenterTorso {
					ctHeatSinks++
				}
			}
		}
		for _, t := range chassis.Component(loc).Toggleable {
			stock.Toggles = append(stock.Toggles, models.StockToggle{Location: loc, Item: t, On: hasLine(lines, t.Name)})
		}
	}

	if engine != nil {
		extra := data.HeatSinkCount - engineHeatSinksIncluded - heatSinks
		extra = min(extra, engine.EngineHeatSinkCapacity()-ctHeatSinks)
		if extra > 0 {
			hs, err := cat.Item(upgrades.HeatSink.HeatSink)
			if err != nil {
				unresolved = append(unresolved, upgrades.HeatSink.HeatSink)
			} else {
				for i := 0; i < extra; i++ {
					stock.Items = append(stock.Items, models.StockItem{Location: models.CenterTorso, Item: hs})
				}
			}
		}
	}

	stock.Armor = resolveArmor(data)
	return stock, unresolved, nil
}

func lookupChassis(data *MTFData, cat catalog.Catalog) (*models.Chassis, error) {
	var err error
	for _, name := range []string{data.Model, data.FullName(), data.Chassis} {
		if name == "" {
			continue
		}
		var c *models.Chassis
		if c, err = cat.Chassis(name); err == nil {
			return c, nil
		}
	}
	return nil, err
}

func resolveUpgrades(data *MTFData) (models.Upgrades, error) {
	u := models.DefaultUpgrades()
	var err error
	if u.Armor, err = models.ArmorUpgradeByName(data.ArmorType); err != nil {
		return u, err
	}
	if u.Structure, err = models.StructureUpgradeByName(data.Structure); err != nil {
		return u, err
	}
	if u.HeatSink, err = models.HeatSinkUpgradeByName(data.HeatSinkType); err != nil {
		return u, err
	}
	for _, lines := range data.LocationEquipment {
		for _, line := range lines {
			if strings.Contains(strings.ToLower(line), "artemis") {
				u.Guidance = models.ArtemisIV
			}
		}
	}
	return u, nil
}

func engineName(data *MTFData) string {
	if strings.Contains(strings.ToLower(data.EngineType), "xl") {
		return fmt.Sprintf("XL Engine %d", data.EngineRating)
	}
	return fmt.Sprintf("STD Engine %d", data.EngineRating)
}

// resolveCrits turns one location's crit lines into items. A multi-slot item
// is listed once per slot and collapses into a single entry.
func resolveCrits(lines []string, cat catalog.Catalog) ([]*models.Item, []string) {
	var items []*models.Item
	var unresolved []string
	var cur *models.Item
	left := 0
	for _, line := range lines {
		name := cleanCrit(line)
		it, err := cat.Item(name)
		if err != nil {
			if !isFiller(name) {
				unresolved = append(unresolved, name)
			}
			cur = nil
			continue
		}
		if it.IsInternal() {
			cur = nil
			continue
		}
		if it == cur && left > 0 {
			left--
			continue
		}
		cur, left = it, it.Slots-1
		items = append(items, it)
	}
	return items, unresolved
}

// cleanCrit drops mount markers such as " (R)" and " (OMNIPOD)".
func cleanCrit(line string) string {
	name := strings.TrimSpace(line)
	for {
		i := strings.LastIndex(name, " (")
		if i < 0 || !strings.HasSuffix(name, ")") {
			return name
		}
		switch strings.ToUpper(name[i+2 : len(name)-1]) {
		case "R", "OMNIPOD", "T", "ARMORED":
			name = strings.TrimSpace(name[:i])
		default:
			return name
		}
	}
}

var fillerWords = []string{
	"-empty-", "engine", "gyro", "life support", "sensors", "cockpit",
	"shoulder", "actuator", "hip", "endo", "ferro", "stealth", "artemis",
}

func isFiller(name string) bool {
	n := strings.ToLower(name)
	for _, w := range fillerWords {
		if strings.Contains(n, w) {
			return true
		}
	}
	return false
}

func hasLine(lines []string, name string) bool {
	for _, line := range lines {
		if strings.EqualFold(cleanCrit(line), name) {
			return true
		}
	}
	return false
}

func resolveArmor(data *MTFData) []models.StockArmor {
	var out []models.StockArmor
	for _, loc := range models.Locations {
		code := loc.ShortName()
		if !loc.TwoSided() {
			if v, ok := data.ArmorValues[code]; ok {
				out = append(out, models.StockArmor{Location: loc, Side: models.ArmorOnly, Points: v})
			}
			continue
		}
		if v, ok := data.ArmorValues[code]; ok {
			out = append(out, models.StockArmor{Location: loc, Side: models.ArmorFront, Points: v})
		}
		if v, ok := data.ArmorValues["RT"+code[:1]]; ok {
			out = append(out, models.StockArmor{Location: loc, Side: models.ArmorBack, Points: v})
		}
	}
	return out
}

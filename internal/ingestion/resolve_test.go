package ingestion

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/lisongmechlab/lsml-sub001/internal/catalog"
	"github.com/lisongmechlab/lsml-sub001/internal/catalog/catalogtest"
	"github.com/lisongmechlab/lsml-sub001/internal/command"
	"github.com/lisongmechlab/lsml-sub001/internal/loadout"
	"github.com/lisongmechlab/lsml-sub001/internal/models"
)

func parseAtlas(t *testing.T) *MTFData {
	t.Helper()
	data, err := ParseMTF(filepath.Join("testdata", "atlas.mtf"))
	if err != nil {
		t.Fatalf("ParseMTF() = %v", err)
	}
	return data
}

func TestResolve(t *testing.T) {
	cat := catalogtest.New()
	stock, unresolved, err := Resolve(parseAtlas(t), cat)
	if err != nil {
		t.Fatalf("Resolve() = %v", err)
	}
	if stock.Chassis.Name != catalogtest.Atlas {
		t.Errorf("Chassis = %q, want %q", stock.Chassis.Name, catalogtest.Atlas)
	}
	if len(unresolved) != 1 || unresolved[0] != "ISTAG" {
		t.Errorf("unresolved = %v, want [ISTAG]", unresolved)
	}
	if stock.Upgrades != models.DefaultUpgrades() {
		t.Errorf("Upgrades = %+v, want defaults", stock.Upgrades)
	}

	want := []struct {
		loc  models.Location
		name string
	}{
		{models.CenterTorso, "STD Engine 300"},
		{models.LeftArm, "Medium Laser"},
		{models.LeftLeg, "Heat Sink"},
		{models.LeftTorso, "LRM 10"},
		{models.LeftTorso, "LRM Ammo"},
		{models.LeftTorso, "LRM Ammo"},
		{models.LeftTorso, "Heat Sink"},
		{models.CenterTorso, "Medium Laser"},
		{models.RightTorso, "AC/20"},
		{models.RightTorso, "AC/20 Ammo"},
		{models.RightTorso, "AC/20 Ammo"},
		{models.RightLeg, "Heat Sink"},
		{models.RightArm, "Medium Laser"},
		{models.CenterTorso, "Heat Sink"},
		{models.CenterTorso, "Heat Sink"},
	}
	if len(stock.Items) != len(want) {
		t.Fatalf("len(Items) = %d, want %d: %v", len(stock.Items), len(want), stock.Items)
	}
	for i, w := range want {
		got := stock.Items[i]
		if got.Location != w.loc || got.Item.Name != w.name {
			t.Errorf("Items[%d] = %s in %v, want %s in %v", i, got.Item.Name, got.Location, w.name, w.loc)
		}
	}

	toggles := []struct {
		loc  models.Location
		name string
		on   bool
	}{
		{models.LeftArm, "Lower Arm Actuator", true},
		{models.LeftArm, "Hand Actuator", true},
		{models.RightArm, "Lower Arm Actuator", true},
		{models.RightArm, "Hand Actuator", false},
	}
	if len(stock.Toggles) != len(toggles) {
		t.Fatalf("len(Toggles) = %d, want %d", len(stock.Toggles), len(toggles))
	}
	for i, w := range toggles {
		got := stock.Toggles[i]
		if got.Location != w.loc || got.Item.Name != w.name || got.On != w.on {
			t.Errorf("Toggles[%d] = %+v, want %s %v in %v", i, got, w.name, w.on, w.loc)
		}
	}

	armor := map[models.Location][2]int{
		models.Head:        {9, 0},
		models.LeftTorso:   {32, 10},
		models.CenterTorso: {47, 14},
		models.RightTorso:  {32, 10},
		models.RightArm:    {34, 0},
	}
	for _, a := range stock.Armor {
		w, ok := armor[a.Location]
		if !ok {
			continue
		}
		want := w[0]
		if a.Side == models.ArmorBack {
			want = w[1]
		}
		if a.Points != want {
			t.Errorf("armor %v %v = %d, want %d", a.Location, a.Side, a.Points, want)
		}
	}
	if got := len(stock.Armor); got != 11 {
		t.Errorf("len(Armor) = %d, want 11", got)
	}
}

func TestResolveUpgrades(t *testing.T) {
	data := parseAtlas(t)
	data.Structure = "IS Endo Steel"
	data.ArmorType = "Ferro-Fibrous(Inner Sphere)"
	data.HeatSinkType = "IS Double"
	data.LocationEquipment["Left Torso"] = append(data.LocationEquipment["Left Torso"], "Artemis IV FCS")

	u, err := resolveUpgrades(data)
	if err != nil {
		t.Fatalf("resolveUpgrades() = %v", err)
	}
	want := models.Upgrades{
		Armor:     models.FerroFibrousArmor,
		Structure: models.EndoSteelStructure,
		HeatSink:  models.DoubleHeatSinks,
		Guidance:  models.ArtemisIV,
	}
	if u != want {
		t.Errorf("resolveUpgrades() = %+v, want %+v", u, want)
	}

	data.HeatSinkType = "Laser"
	if _, err := resolveUpgrades(data); err == nil {
		t.Errorf("resolveUpgrades(unknown heat sinks) succeeded")
	}
}

func TestResolveUnknownChassis(t *testing.T) {
	data := parseAtlas(t)
	data.Chassis, data.Model = "Marauder", "MAD-3R"
	_, _, err := Resolve(data, catalogtest.New())
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("Resolve() = %v, want ErrNotFound", err)
	}
}

func TestEngineName(t *testing.T) {
	tests := []struct {
		rating int
		kind   string
		want   string
	}{
		{300, "Fusion Engine(IS)", "STD Engine 300"},
		{300, "XL Engine(IS)", "XL Engine 300"},
		{250, "", "STD Engine 250"},
	}
	for _, tt := range tests {
		got := engineName(&MTFData{EngineRating: tt.rating, EngineType: tt.kind})
		if got != tt.want {
			t.Errorf("engineName(%d, %q) = %q, want %q", tt.rating, tt.kind, got, tt.want)
		}
	}
}

func TestResolvedStockLoads(t *testing.T) {
	cat := catalogtest.New()
	stock, _, err := Resolve(parseAtlas(t), cat)
	if err != nil {
		t.Fatalf("Resolve() = %v", err)
	}
	l := loadout.New(stock.Chassis)
	if err := command.NewLoadStock(nil, l, stock).Apply(); err != nil {
		t.Fatalf("LoadStock() = %v", err)
	}

	if got := len(l.Items()); got != 15 {
		t.Errorf("len(Items()) = %d, want 15", got)
	}
	if got := l.TotalArmor(); got != 304 {
		t.Errorf("TotalArmor() = %d, want 304", got)
	}
	if got := l.Component(models.CenterTorso).EngineHeatSinks(); got != 2 {
		t.Errorf("EngineHeatSinks() = %d, want 2", got)
	}
	hand := catalogtest.Item(t, cat, "Hand Actuator")
	if l.Component(models.RightArm).HasItem(hand) {
		t.Errorf("RA hand actuator still mounted")
	}
	if r := l.Validate(); !r.IsSuccess() {
		t.Errorf("Validate() = %v", r)
	}
}

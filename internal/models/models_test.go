package models

import "testing"

func TestParseLocation(t *testing.T) {
	tests := []struct {
		in   string
		want Location
	}{
		{"Head", Head},
		{"HD", Head},
		{"right torso", RightTorso},
		{"rt", RightTorso},
		{" Center Torso ", CenterTorso},
		{"LL", LeftLeg},
		{"Left Arm", LeftArm},
	}
	for _, tt := range tests {
		got, err := ParseLocation(tt.in)
		if err != nil {
			t.Errorf("ParseLocation(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLocation(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if _, err := ParseLocation("Tail"); err == nil {
		t.Errorf("ParseLocation(%q) succeeded, want error", "Tail")
	}
}

func TestLocationSides(t *testing.T) {
	for _, loc := range Locations {
		sides := SidesOf(loc)
		if loc.TwoSided() {
			if len(sides) != 2 || sides[0] != ArmorFront || sides[1] != ArmorBack {
				t.Errorf("SidesOf(%v) = %v, want front/back", loc, sides)
			}
		} else if len(sides) != 1 || sides[0] != ArmorOnly {
			t.Errorf("SidesOf(%v) = %v, want only", loc, sides)
		}
	}
	if torso, ok := LeftArm.PairedTorso(); !ok || torso != LeftTorso {
		t.Errorf("LeftArm.PairedTorso() = %v, %v", torso, ok)
	}
	if _, ok := Head.PairedTorso(); ok {
		t.Errorf("Head.PairedTorso() ok, want none")
	}
}

func TestParseHardPointType(t *testing.T) {
	tests := []struct {
		in   string
		want HardPointType
	}{
		{"", HardPointNone},
		{"energy", HardPointEnergy},
		{"E", HardPointEnergy},
		{"Ballistic", HardPointBallistic},
		{"m", HardPointMissile},
		{"ams", HardPointAMS},
		{"ECM", HardPointECM},
	}
	for _, tt := range tests {
		got, err := ParseHardPointType(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseHardPointType(%q) = %v, %v, want %v", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseHardPointType("laser"); err == nil {
		t.Errorf("ParseHardPointType(%q) succeeded, want error", "laser")
	}
}

func TestEngineHeatSinkCapacity(t *testing.T) {
	tests := []struct {
		rating int
		want   int
	}{
		{100, 0}, {200, 0}, {250, 0}, {275, 1}, {300, 2}, {400, 6},
	}
	for _, tt := range tests {
		e := &Item{Name: "engine", Kind: KindEngine, Engine: &EngineSpec{Rating: tt.rating}}
		if got := e.EngineHeatSinkCapacity(); got != tt.want {
			t.Errorf("EngineHeatSinkCapacity(%d) = %d, want %d", tt.rating, got, tt.want)
		}
	}
	ml := &Item{Name: "Medium Laser", Kind: KindWeapon}
	if got := ml.EngineHeatSinkCapacity(); got != 0 {
		t.Errorf("non-engine capacity = %d, want 0", got)
	}
}

func TestItemCapabilities(t *testing.T) {
	side := &Item{Name: "XL Engine Side", Kind: KindInternal, Slots: 3}
	xl := &Item{Name: "XL Engine 300", Kind: KindEngine, Slots: 6, Engine: &EngineSpec{Rating: 300, Side: side}}
	jj := &Item{Name: "Jump Jet", Kind: KindJumpJet, Locations: []Location{LeftTorso, CenterTorso}}
	lrm := &Item{Name: "LRM 10", Aliases: []string{"LRM10"}, Kind: KindWeapon, HardPoint: HardPointMissile}

	if xl.EngineSide() != side {
		t.Errorf("EngineSide() = %v, want %v", xl.EngineSide(), side)
	}
	if !side.IsInternal() || xl.IsInternal() {
		t.Errorf("IsInternal: side %v, engine %v", side.IsInternal(), xl.IsInternal())
	}
	if xl.AllowedIn(LeftTorso) || !xl.AllowedIn(CenterTorso) {
		t.Errorf("engine AllowedIn torso/ct wrong")
	}
	if !jj.AllowedIn(CenterTorso) || jj.AllowedIn(Head) {
		t.Errorf("jump jet AllowedIn wrong")
	}
	if !lrm.IsMissileWeapon() || !lrm.Matches("lrm10") || lrm.Matches("LRM 20") {
		t.Errorf("LRM capabilities wrong")
	}
}

func TestUpgradeByName(t *testing.T) {
	armor := []struct {
		in   string
		want ArmorUpgrade
	}{
		{"Standard(Inner Sphere)", StandardArmor},
		{"", StandardArmor},
		{"Ferro-Fibrous(Inner Sphere)", FerroFibrousArmor},
		{"Stealth", StealthArmor},
	}
	for _, tt := range armor {
		got, err := ArmorUpgradeByName(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ArmorUpgradeByName(%q) = %v, %v, want %v", tt.in, got.Name, err, tt.want.Name)
		}
	}
	if s, err := StructureUpgradeByName("IS Endo Steel"); err != nil || s != EndoSteelStructure {
		t.Errorf("StructureUpgradeByName(endo) = %v, %v", s.Name, err)
	}
	if h, err := HeatSinkUpgradeByName("IS Double"); err != nil || h != DoubleHeatSinks {
		t.Errorf("HeatSinkUpgradeByName(double) = %v, %v", h.Name, err)
	}
	if _, err := HeatSinkUpgradeByName("Laser"); err == nil {
		t.Errorf("HeatSinkUpgradeByName(%q) succeeded, want error", "Laser")
	}
}

package catalog

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/lisongmechlab/lsml-sub001/internal/models"
)

func TestLoadYAML(t *testing.T) {
	m, err := LoadYAML(filepath.Join("testdata", "catalog.yaml"))
	if err != nil {
		t.Fatalf("LoadYAML() = %v", err)
	}

	items := []struct {
		name string
		want string
	}{
		{"Medium Laser", "Medium Laser"},
		{"medium laser", "Medium Laser"},
		{"ml", "Medium Laser"},
		{" XL Engine 250 ", "XL Engine 250"},
	}
	for _, tt := range items {
		it, err := m.Item(tt.name)
		if err != nil || it.Name != tt.want {
			t.Errorf("Item(%q) = %v, %v, want %s", tt.name, it, err, tt.want)
		}
	}

	xl, _ := m.Item("XL Engine 250")
	if side := xl.EngineSide(); side == nil || side.Name != "XL Engine Side" || side.Slots != 3 {
		t.Errorf("EngineSide() = %v", side)
	}
	jj, _ := m.Item("Jump Jet")
	if jj.AllowedIn(models.LeftArm) || !jj.AllowedIn(models.RightLeg) {
		t.Errorf("jump jet locations = %v", jj.Locations)
	}

	c, err := m.Chassis("cn9-a")
	if err != nil {
		t.Fatalf("Chassis() = %v", err)
	}
	if got := c.TotalSlots(); got != 78 {
		t.Errorf("TotalSlots() = %d, want 78", got)
	}
	if got := c.MaxArmor(); got != 338 {
		t.Errorf("MaxArmor() = %d, want 338", got)
	}
	rt := c.Component(models.RightTorso)
	if rt.HardPointCount(models.HardPointBallistic) != 1 || rt.HardPointCount(models.HardPointAMS) != 1 {
		t.Errorf("RT hardpoints = %v", rt.HardPoints)
	}
	hand, _ := m.Item("Hand Actuator")
	if !c.Component(models.LeftArm).IsToggleable(hand) || c.Component(models.RightArm).IsToggleable(hand) {
		t.Errorf("hand actuator toggleable in LA only")
	}
}

func TestNotFound(t *testing.T) {
	m, err := LoadYAML(filepath.Join("testdata", "catalog.yaml"))
	if err != nil {
		t.Fatalf("LoadYAML() = %v", err)
	}
	if _, err := m.Item("Gauss Rifle"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Item(unknown) = %v, want ErrNotFound", err)
	}
	if _, err := m.Chassis("AS7-D"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Chassis(unknown) = %v, want ErrNotFound", err)
	}
	if _, err := LoadYAML(filepath.Join("testdata", "missing.yaml")); err == nil {
		t.Errorf("LoadYAML(missing) succeeded")
	}
}

func validChassis() ChassisRecord {
	c := ChassisRecord{Name: "TST-1", Mass: 20, EngineMin: 100, EngineMax: 200}
	for _, loc := range models.Locations {
		c.Components = append(c.Components, ComponentRecord{Location: loc.ShortName(), Slots: 6, MaxArmor: 10})
	}
	return c
}

func TestBuildErrors(t *testing.T) {
	laser := ItemRecord{Name: "Laser", Kind: "weapon", Slots: 1, Mass: 1, HardPoint: "energy"}
	tests := []struct {
		name string
		doc  func() Document
	}{
		{"unknown kind", func() Document {
			return Document{Items: []ItemRecord{{Name: "X", Kind: "gadget"}}}
		}},
		{"unknown hardpoint", func() Document {
			return Document{Items: []ItemRecord{{Name: "X", Kind: "weapon", HardPoint: "plasma"}}}
		}},
		{"engine without rating", func() Document {
			return Document{Items: []ItemRecord{{Name: "E", Kind: "engine", Slots: 6}}}
		}},
		{"engine fields on weapon", func() Document {
			return Document{Items: []ItemRecord{{Name: "X", Kind: "weapon", EngineRating: 100}}}
		}},
		{"unknown engine side", func() Document {
			return Document{Items: []ItemRecord{{Name: "E", Kind: "engine", EngineRating: 100, EngineSide: "Side"}}}
		}},
		{"duplicate alias", func() Document {
			return Document{Items: []ItemRecord{laser, {Name: "Other", Aliases: []string{"laser"}}}}
		}},
		{"missing component", func() Document {
			c := validChassis()
			c.Components = c.Components[1:]
			return Document{Chassis: []ChassisRecord{c}}
		}},
		{"duplicate component", func() Document {
			c := validChassis()
			c.Components[1].Location = "HD"
			return Document{Chassis: []ChassisRecord{c}}
		}},
		{"unknown internal", func() Document {
			c := validChassis()
			c.Components[0].Internals = []string{"Cockpit"}
			return Document{Chassis: []ChassisRecord{c}}
		}},
		{"toggleable not internal", func() Document {
			c := validChassis()
			c.Components[0].Toggleable = []string{"Laser"}
			return Document{Items: []ItemRecord{laser}, Chassis: []ChassisRecord{c}}
		}},
		{"duplicate chassis", func() Document {
			return Document{Chassis: []ChassisRecord{validChassis(), validChassis()}}
		}},
	}
	for _, tt := range tests {
		if _, err := tt.doc().Build(); err == nil {
			t.Errorf("%s: Build() succeeded, want error", tt.name)
		}
	}

	if _, err := (Document{Items: []ItemRecord{laser}, Chassis: []ChassisRecord{validChassis()}}).Build(); err != nil {
		t.Errorf("valid document: Build() = %v", err)
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	m, err := LoadYAML(filepath.Join("testdata", "catalog.yaml"))
	if err != nil {
		t.Fatalf("LoadYAML() = %v", err)
	}
	want := DocumentOf(m)
	b, err := want.EncodeYAML()
	if err != nil {
		t.Fatalf("EncodeYAML() = %v", err)
	}
	back, err := ParseYAML(b)
	if err != nil {
		t.Fatalf("ParseYAML() = %v", err)
	}
	if got := DocumentOf(back); !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

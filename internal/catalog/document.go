package catalog

import (
	"fmt"
	"sort"

	"github.com/lisongmechlab/lsml-sub001/internal/models"
)

// Document is the serialized form of a catalog shared by the YAML, SQLite
// and Postgres backends. Items reference each other by name.
type Document struct {
	Items   []ItemRecord    `yaml:"items"`
	Chassis []ChassisRecord `yaml:"chassis"`
}

type ItemRecord struct {
	Name         string   `yaml:"name"`
	Aliases      []string `yaml:"aliases,omitempty"`
	Kind         string   `yaml:"kind,omitempty"`
	Slots        int      `yaml:"slots"`
	Mass         float64  `yaml:"mass"`
	HardPoint    string   `yaml:"hardpoint,omitempty"`
	Locations    []string `yaml:"locations,omitempty"`
	EngineRating int      `yaml:"engine_rating,omitempty"`
	EngineSide   string   `yaml:"engine_side,omitempty"`
	Actuator     string   `yaml:"actuator,omitempty"`
}

type ComponentRecord struct {
	Location   string         `yaml:"location"`
	Slots      int            `yaml:"slots"`
	MaxArmor   int            `yaml:"max_armor"`
	HardPoints map[string]int `yaml:"hardpoints,omitempty"`
	Internals  []string       `yaml:"internals,omitempty"`
	Toggleable []string       `yaml:"toggleable,omitempty"`
}

type ChassisRecord struct {
	Name        string            `yaml:"name"`
	Mass        float64           `yaml:"mass"`
	EngineMin   int               `yaml:"engine_min"`
	EngineMax   int               `yaml:"engine_max"`
	MaxJumpJets int               `yaml:"max_jump_jets,omitempty"`
	Components  []ComponentRecord `yaml:"components"`
}

// Build resolves every record into descriptors.
func (d Document) Build() (*Memory, error) {
	m := NewMemory()
	sides := make(map[*models.Item]string)
	for _, r := range d.Items {
		it, err := r.item()
		if err != nil {
			return nil, fmt.Errorf("item %q: %w", r.Name, err)
		}
		if err := m.AddItem(it); err != nil {
			return nil, err
		}
		if r.EngineSide != "" {
			sides[it] = r.EngineSide
		}
	}
	for it, name := range sides {
		side, err := m.Item(name)
		if err != nil {
			return nil, fmt.Errorf("engine side of %q: %w", it.Name, err)
		}
		it.Engine.Side = side
	}
	for _, r := range d.Chassis {
		c, err := r.chassis(m)
		if err != nil {
			return nil, fmt.Errorf("chassis %q: %w", r.Name, err)
		}
		if err := m.AddChassis(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (r ItemRecord) item() (*models.Item, error) {
	kind, err := models.ParseItemKind(r.Kind)
	if err != nil {
		return nil, err
	}
	hp, err := models.ParseHardPointType(r.HardPoint)
	if err != nil {
		return nil, err
	}
	act, err := models.ParseActuator(r.Actuator)
	if err != nil {
		return nil, err
	}
	it := &models.Item{
		Name:      r.Name,
		Aliases:   append([]string(nil), r.Aliases...),
		Kind:      kind,
		Slots:     r.Slots,
		Mass:      r.Mass,
		HardPoint: hp,
		Actuator:  act,
	}
	for _, s := range r.Locations {
		loc, err := models.ParseLocation(s)
		if err != nil {
			return nil, err
		}
		it.Locations = append(it.Locations, loc)
	}
	if kind == models.KindEngine {
		if r.EngineRating <= 0 {
			return nil, fmt.Errorf("engine without rating")
		}
		it.Engine = &models.EngineSpec{Rating: r.EngineRating}
	} else if r.EngineSide != "" || r.EngineRating != 0 {
		return nil, fmt.Errorf("engine fields on %s item", kind)
	}
	return it, nil
}

func (r ChassisRecord) chassis(m *Memory) (*models.Chassis, error) {
	c := &models.Chassis{
		Name:        r.Name,
		Mass:        r.Mass,
		EngineMin:   r.EngineMin,
		EngineMax:   r.EngineMax,
		MaxJumpJets: r.MaxJumpJets,
	}
	for i := range c.Components {
		c.Components[i].Location = models.Location(i)
	}
	seen := make(map[models.Location]bool)
	for _, cr := range r.Components {
		loc, err := models.ParseLocation(cr.Location)
		if err != nil {
			return nil, err
		}
		if seen[loc] {
			return nil, fmt.Errorf("duplicate component %s", loc)
		}
		seen[loc] = true
		spec := &c.Components[loc]
		spec.Slots = cr.Slots
		spec.MaxArmor = cr.MaxArmor
		if len(cr.HardPoints) > 0 {
			spec.HardPoints = make(map[models.HardPointType]int, len(cr.HardPoints))
			for name, n := range cr.HardPoints {
				t, err := models.ParseHardPointType(name)
				if err != nil {
					return nil, fmt.Errorf("%s: %w", loc, err)
				}
				spec.HardPoints[t] += n
			}
		}
		for _, name := range cr.Internals {
			it, err := m.Item(name)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", loc, err)
			}
			spec.Internals = append(spec.Internals, it)
		}
		for _, name := range cr.Toggleable {
			it, err := m.Item(name)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", loc, err)
			}
			if !contains(spec.Internals, it) {
				return nil, fmt.Errorf("%s: toggleable %q is not an internal", loc, name)
			}
			spec.Toggleable = append(spec.Toggleable, it)
		}
	}
	if len(seen) != models.NumLocations {
		return nil, fmt.Errorf("expected %d components, got %d", models.NumLocations, len(seen))
	}
	return c, nil
}

func contains(items []*models.Item, it *models.Item) bool {
	for _, x := range items {
		if x == it {
			return true
		}
	}
	return false
}

// DocumentOf converts m back into its serialized form.
func DocumentOf(m *Memory) Document {
	var d Document
	for _, it := range m.items {
		r := ItemRecord{
			Name:      it.Name,
			Aliases:   append([]string(nil), it.Aliases...),
			Kind:      it.Kind.String(),
			Slots:     it.Slots,
			Mass:      it.Mass,
			HardPoint: hardPointName(it.HardPoint),
			Actuator:  it.Actuator.String(),
		}
		for _, loc := range it.Locations {
			r.Locations = append(r.Locations, loc.ShortName())
		}
		if it.Engine != nil {
			r.EngineRating = it.Engine.Rating
			if it.Engine.Side != nil {
				r.EngineSide = it.Engine.Side.Name
			}
		}
		d.Items = append(d.Items, r)
	}
	for _, c := range m.ChassisList() {
		r := ChassisRecord{
			Name:        c.Name,
			Mass:        c.Mass,
			EngineMin:   c.EngineMin,
			EngineMax:   c.EngineMax,
			MaxJumpJets: c.MaxJumpJets,
		}
		for _, spec := range c.Components {
			cr := ComponentRecord{
				Location: spec.Location.ShortName(),
				Slots:    spec.Slots,
				MaxArmor: spec.MaxArmor,
			}
			if len(spec.HardPoints) > 0 {
				cr.HardPoints = make(map[string]int)
				for t, n := range spec.HardPoints {
					cr.HardPoints[t.String()] = n
				}
			}
			for _, it := range spec.Internals {
				cr.Internals = append(cr.Internals, it.Name)
			}
			for _, it := range spec.Toggleable {
				cr.Toggleable = append(cr.Toggleable, it.Name)
			}
			r.Components = append(r.Components, cr)
		}
		d.Chassis = append(d.Chassis, r)
	}
	sort.SliceStable(d.Chassis, func(i, j int) bool { return d.Chassis[i].Name < d.Chassis[j].Name })
	return d
}

func hardPointName(t models.HardPointType) string {
	if t == models.HardPointNone {
		return ""
	}
	return t.String()
}

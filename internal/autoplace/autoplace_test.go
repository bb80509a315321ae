package autoplace

import (
	"testing"

	"github.com/lisongmechlab/lsml-sub001/internal/catalog"
	"github.com/lisongmechlab/lsml-sub001/internal/catalog/catalogtest"
	"github.com/lisongmechlab/lsml-sub001/internal/command"
	"github.com/lisongmechlab/lsml-sub001/internal/loadout"
	"github.com/lisongmechlab/lsml-sub001/internal/messages"
	"github.com/lisongmechlab/lsml-sub001/internal/models"
)

const swapper = "SWP-1"

// newCatalog extends the fixtures with a chassis that has a single energy
// hardpoint in each arm.
func newCatalog(t *testing.T) *catalog.Memory {
	t.Helper()
	doc := catalogtest.Document()
	doc.Chassis = append(doc.Chassis, catalogtest.Biped(swapper, 100, 200, 360, 0,
		[models.NumLocations]int{18, 68, 83, 84, 120, 84, 83, 68},
		map[string]map[string]int{
			"LA": {"energy": 1},
			"RA": {"energy": 1},
		}))
	cat, err := doc.Build()
	if err != nil {
		t.Fatalf("Build() = %v", err)
	}
	return cat
}

func newLoadout(t *testing.T, cat catalog.Catalog, chassis string) *loadout.Loadout {
	t.Helper()
	return loadout.New(catalogtest.Chassis(t, cat, chassis))
}

func fill(t *testing.T, cat catalog.Catalog, l *loadout.Loadout, loc models.Location, name string, n int) {
	t.Helper()
	it := catalogtest.Item(t, cat, name)
	for i := 0; i < n; i++ {
		l.Component(loc).Add(it)
	}
}

// swapSetup mounts a laser in the right arm and fills the left arm with ammo,
// so a PPC only fits once the laser and one ammo trade places.
func swapSetup(t *testing.T, cat catalog.Catalog) *loadout.Loadout {
	t.Helper()
	l := newLoadout(t, cat, swapper)
	fill(t, cat, l, models.RightArm, "Medium Laser", 1)
	fill(t, cat, l, models.LeftArm, "AC/20 Ammo", 8)
	return l
}

func countNames(l *loadout.Loadout) map[string]int {
	out := make(map[string]int)
	for _, it := range l.Items() {
		out[it.Name]++
	}
	return out
}

// checkKept verifies after holds everything before had plus exactly one added.
func checkKept(t *testing.T, before, after *loadout.Loadout, added string) {
	t.Helper()
	if got, want := len(after.Items()), len(before.Items())+1; got != want {
		t.Errorf("len(Items()) = %d, want %d", got, want)
	}
	a := countNames(after)
	for name, n := range countNames(before) {
		want := n
		if name == added {
			want++
		}
		if a[name] != want {
			t.Errorf("%s count = %d, want %d", name, a[name], want)
		}
	}
}

func TestAutoAddFirstFreeLocation(t *testing.T) {
	cat := newCatalog(t)
	tests := []struct {
		chassis string
		item    string
		want    models.Location
	}{
		{catalogtest.Atlas, "Medium Laser", models.RightArm},
		{catalogtest.Hunchback, "Medium Laser", models.RightTorso},
		{catalogtest.Atlas, "LRM 10", models.RightTorso},
		{catalogtest.Atlas, "AMS", models.LeftTorso},
		{catalogtest.Atlas, "Heat Sink", models.RightArm},
		{catalogtest.Atlas, "STD Engine 300", models.CenterTorso},
		{catalogtest.Jenner, "Jump Jet", models.RightTorso},
	}
	for _, tt := range tests {
		l := newLoadout(t, cat, tt.chassis)
		item := catalogtest.Item(t, cat, tt.item)
		if err := AutoAdd(nil, l, item, false).Apply(); err != nil {
			t.Errorf("%s: AutoAdd(%s) = %v", tt.chassis, tt.item, err)
			continue
		}
		if !l.Component(tt.want).HasItem(item) {
			t.Errorf("%s: AutoAdd(%s) did not place it in %v", tt.chassis, tt.item, tt.want)
		}
	}
}

func TestAutoAddHeatSinkPrefersEngine(t *testing.T) {
	cat := newCatalog(t)
	l := newLoadout(t, cat, catalogtest.Atlas)
	fill(t, cat, l, models.CenterTorso, "STD Engine 300", 1)
	hs := catalogtest.Item(t, cat, "Heat Sink")

	cmds, r := Placer{}.Plan(l, hs)
	if !r.IsSuccess() || len(cmds) != 1 {
		t.Fatalf("Plan() = %d commands, %v", len(cmds), r)
	}
	if err := cmds[0].Apply(); err != nil {
		t.Fatalf("Apply() = %v", err)
	}
	if got := l.Component(models.CenterTorso).EngineHeatSinks(); got != 1 {
		t.Errorf("EngineHeatSinks() = %d, want 1", got)
	}
}

func TestAutoAddMovesBlockingItem(t *testing.T) {
	cat := newCatalog(t)
	l := newLoadout(t, cat, catalogtest.Atlas)
	fill(t, cat, l, models.RightTorso, "Heat Sink", 3)
	ac := catalogtest.Item(t, cat, "AC/20")
	before := l.Clone()

	if err := AutoAdd(nil, l, ac, false).Apply(); err != nil {
		t.Fatalf("AutoAdd(AC/20) = %v", err)
	}
	if !l.Component(models.RightTorso).HasItem(ac) {
		t.Errorf("AC/20 not in right torso")
	}
	if got := l.Component(models.RightArm).ItemCount(); got != 5 {
		t.Errorf("RA ItemCount() = %d, want 5 with the moved heat sink", got)
	}
	checkKept(t, before, l, ac.Name)
}

func TestAutoAddSwapsItems(t *testing.T) {
	cat := newCatalog(t)
	l := swapSetup(t, cat)
	ppc := catalogtest.Item(t, cat, "PPC")
	before := l.Clone()

	var rec messages.Recorder
	c := AutoAdd(&rec, l, ppc, false)
	if err := c.Apply(); err != nil {
		t.Fatalf("AutoAdd(PPC) = %v", err)
	}

	ra, la := l.Component(models.RightArm), l.Component(models.LeftArm)
	if !ra.HasItem(ppc) || !ra.HasItem(catalogtest.Item(t, cat, "AC/20 Ammo")) {
		t.Errorf("RA items = %v, want PPC and one ammo", ra.Items())
	}
	if !la.HasItem(catalogtest.Item(t, cat, "Medium Laser")) {
		t.Errorf("laser not moved to LA")
	}
	checkKept(t, before, l, ppc.Name)

	if got := len(c.Children()); got != 5 {
		t.Errorf("len(Children()) = %d, want 5", got)
	}
	if got := len(rec.Messages); got != 5 {
		t.Errorf("posted %d messages, want 5 from the live loadout only", got)
	}
}

func TestAutoAddXLEngine(t *testing.T) {
	cat := newCatalog(t)
	l := newLoadout(t, cat, catalogtest.Atlas)
	fill(t, cat, l, models.LeftTorso, "Heat Sink", 10)
	xl := catalogtest.Item(t, cat, "XL Engine 300")
	before := l.Clone()

	if err := AutoAdd(nil, l, xl, false).Apply(); err != nil {
		t.Fatalf("AutoAdd(XL) = %v", err)
	}
	if l.Engine() != xl {
		t.Errorf("Engine() = %v, want %v", l.Engine(), xl)
	}
	for _, loc := range []models.Location{models.LeftTorso, models.RightTorso} {
		if !l.Component(loc).HasItem(xl.EngineSide()) {
			t.Errorf("XL side missing from %v", loc)
		}
	}
	checkKept(t, before, l, xl.Name)
}

func TestAutoAddInfeasible(t *testing.T) {
	cat := newCatalog(t)
	full := func(l *loadout.Loadout) {
		fill(t, cat, l, models.LeftTorso, "Heat Sink", 12)
		fill(t, cat, l, models.RightTorso, "Heat Sink", 12)
		fill(t, cat, l, models.LeftArm, "Heat Sink", 8)
		fill(t, cat, l, models.RightArm, "Heat Sink", 8)
		fill(t, cat, l, models.CenterTorso, "Heat Sink", 8)
	}
	lasers := func(l *loadout.Loadout) {
		fill(t, cat, l, models.Head, "Medium Laser", 1)
		fill(t, cat, l, models.LeftArm, "Medium Laser", 1)
		fill(t, cat, l, models.RightTorso, "Medium Laser", 6)
	}

	tests := []struct {
		name    string
		chassis string
		setup   func(*loadout.Loadout)
		item    string
		want    loadout.EquipResult
	}{
		{"no slots", catalogtest.Atlas, full, "AC/20", loadout.Fail(loadout.NotEnoughSlots)},
		{"no hardpoint", catalogtest.Hunchback, nil, "AC/20", loadout.Fail(loadout.NotSupported)},
		{"no arrangement", catalogtest.Hunchback, lasers, "PPC", loadout.Fail(loadout.NotEnoughSlots)},
	}
	for _, tt := range tests {
		for _, quiet := range []bool{false, true} {
			l := newLoadout(t, cat, tt.chassis)
			if tt.setup != nil {
				tt.setup(l)
			}
			before := l.Clone()
			err := AutoAdd(nil, l, catalogtest.Item(t, cat, tt.item), quiet).Apply()
			if quiet {
				if err != nil {
					t.Errorf("%s: quiet AutoAdd = %v, want nil", tt.name, err)
				}
			} else if got, ok := loadout.ResultOf(err); !ok || got != tt.want {
				t.Errorf("%s: AutoAdd = %v, want %v", tt.name, err, tt.want)
			}
			if !l.Equal(before) {
				t.Errorf("%s (quiet %v): loadout changed", tt.name, quiet)
			}
		}
	}
}

func TestAutoAddRoundTrip(t *testing.T) {
	cat := newCatalog(t)
	l := swapSetup(t, cat)
	before := l.Clone()
	s := command.NewStack(4)

	if err := s.PushAndApply(AutoAdd(nil, l, catalogtest.Item(t, cat, "PPC"), false)); err != nil {
		t.Fatalf("PushAndApply() = %v", err)
	}
	after := l.Clone()
	s.Undo()
	if !l.Equal(before) {
		t.Errorf("loadout differs after undo")
	}
	if ok, err := s.Redo(); !ok || err != nil {
		t.Fatalf("Redo() = %v, %v", ok, err)
	}
	if !l.Equal(after) {
		t.Errorf("redo planned a different result")
	}
}

func TestPlacerUsesCloner(t *testing.T) {
	cat := newCatalog(t)
	l := newLoadout(t, cat, catalogtest.Atlas)
	fill(t, cat, l, models.RightTorso, "Heat Sink", 3)

	clones := 0
	p := Placer{Clone: func(x *loadout.Loadout) *loadout.Loadout {
		clones++
		return x.Clone()
	}}
	if err := p.AutoAdd(l, catalogtest.Item(t, cat, "AC/20")).Apply(); err != nil {
		t.Fatalf("AutoAdd() = %v", err)
	}
	if clones == 0 {
		t.Errorf("search never used the cloner")
	}
}

func TestFingerprintIgnoresOrder(t *testing.T) {
	cat := newCatalog(t)
	a := newLoadout(t, cat, catalogtest.Atlas)
	b := newLoadout(t, cat, catalogtest.Atlas)
	fill(t, cat, a, models.LeftTorso, "Heat Sink", 1)
	fill(t, cat, a, models.LeftTorso, "AMS", 1)
	fill(t, cat, b, models.LeftTorso, "AMS", 1)
	fill(t, cat, b, models.LeftTorso, "Heat Sink", 1)

	if fingerprint(a) != fingerprint(b) {
		t.Errorf("fingerprint differs for reordered items")
	}
	fill(t, cat, b, models.RightArm, "Heat Sink", 1)
	if fingerprint(a) == fingerprint(b) {
		t.Errorf("fingerprint equal for different loadouts")
	}
}

func TestAutoAddNoFreeHardPointSkipsSearch(t *testing.T) {
	cat := newCatalog(t)
	l := newLoadout(t, cat, catalogtest.Atlas)
	fill(t, cat, l, models.LeftArm, "Medium Laser", 2)
	fill(t, cat, l, models.RightArm, "Medium Laser", 2)
	fill(t, cat, l, models.CenterTorso, "Medium Laser", 1)
	fill(t, cat, l, models.LeftTorso, "Heat Sink", 5)
	fill(t, cat, l, models.RightTorso, "Heat Sink", 5)
	fill(t, cat, l, models.LeftLeg, "Heat Sink", 2)
	fill(t, cat, l, models.RightLeg, "Heat Sink", 2)
	fill(t, cat, l, models.CenterTorso, "Heat Sink", 2)
	before := l.Clone()

	clones := 0
	p := Placer{Clone: func(x *loadout.Loadout) *loadout.Loadout {
		clones++
		return x.Clone()
	}}
	err := p.AutoAdd(l, catalogtest.Item(t, cat, "Medium Laser")).Apply()
	if got, ok := loadout.ResultOf(err); !ok || got != loadout.Fail(loadout.NotEnoughSlots) {
		t.Errorf("AutoAdd(Medium Laser) = %v, want not enough slots", err)
	}
	if clones != 0 {
		t.Errorf("search cloned %d states, want none", clones)
	}
	if !l.Equal(before) {
		t.Errorf("loadout changed")
	}
}

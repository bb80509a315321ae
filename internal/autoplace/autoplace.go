// Package autoplace finds room for a new item by relocating and swapping the
// items already mounted on a loadout.
//
// The search is greedy: it expands the most promising candidate first and
// accepts the first configuration that can take the item. It does not look
// for the shortest sequence of moves.
package autoplace

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/lisongmechlab/lsml-sub001/internal/command"
	"github.com/lisongmechlab/lsml-sub001/internal/loadout"
	"github.com/lisongmechlab/lsml-sub001/internal/messages"
	"github.com/lisongmechlab/lsml-sub001/internal/models"
)

// Traversal is the order locations are tried in, both for placing the item
// and for generating moves.
var Traversal = []models.Location{
	models.RightArm, models.RightTorso, models.RightLeg, models.Head,
	models.CenterTorso, models.LeftTorso, models.LeftLeg, models.LeftArm,
}

// Cloner produces an independent copy of a loadout for a search node.
type Cloner func(*loadout.Loadout) *loadout.Loadout

// Placer builds auto-add commands.
type Placer struct {
	Delivery messages.Delivery
	// Clone defaults to (*loadout.Loadout).Clone.
	Clone Cloner
	// Quiet turns infeasibility into a silent no-op.
	Quiet bool
}

// AutoAdd returns a command that mounts item somewhere on l, moving other
// items around if needed.
func AutoAdd(d messages.Delivery, l *loadout.Loadout, item *models.Item, quiet bool) *command.Composite {
	return Placer{Delivery: d, Quiet: quiet}.AutoAdd(l, item)
}

func (p Placer) AutoAdd(l *loadout.Loadout, item *models.Item) *command.Composite {
	return command.NewComposite(fmt.Sprintf("auto add %s", item.Name), func() ([]command.Command, error) {
		cmds, r := p.Plan(l, item)
		if !r.IsSuccess() {
			if p.Quiet {
				return nil, nil
			}
			return nil, r.Err()
		}
		return cmds, nil
	})
}

// Plan computes the commands that mount item on l without applying them.
func (p Placer) Plan(l *loadout.Loadout, item *models.Item) ([]command.Command, loadout.EquipResult) {
	if r := l.CanEquipGlobal(item); !r.IsSuccess() {
		return nil, r
	}
	if item.CountsAsEngineHeatSink() {
		ct := l.Component(models.CenterTorso)
		if ct.EngineHeatSinks() < ct.EngineHeatSinkCapacity() &&
			l.CanEquipDirectly(item, models.CenterTorso).IsSuccess() {
			return []command.Command{command.NewAddItem(p.Delivery, l, models.CenterTorso, item)}, loadout.SuccessResult
		}
	}

	clone := p.Clone
	if clone == nil {
		clone = (*loadout.Loadout).Clone
	}
	s := newSearch(l, item, clone)
	goal, loc, ok := s.run()
	slog.Default().With("component", "autoplace").Debug("search finished",
		"item", item.Name, "nodes", len(s.nodes), "found", ok)
	if !ok {
		return nil, loadout.Fail(loadout.NotEnoughSlots)
	}
	return s.commands(p.Delivery, l, goal, loc), loadout.SuccessResult
}

// node is one candidate state. Nodes live in the search arena and refer to
// their parent by index; the root has parent -1.
type node struct {
	parent int
	data   *loadout.Loadout
	source models.Location
	target models.Location
	item   *models.Item
	// swap is the item moved from target to source, nil for a plain move.
	swap  *models.Item
	score int
}

type search struct {
	item    *models.Item
	clone   Cloner
	capable []models.Location
	order   []models.Location

	nodes  []node
	open   []int
	closed []int
	seen   map[string][]int
}

func newSearch(root *loadout.Loadout, item *models.Item, clone Cloner) *search {
	s := &search{item: item, clone: clone, seen: make(map[string][]int)}
	var rest []models.Location
	for _, loc := range Traversal {
		if item.HardPoint == models.HardPointNone || root.Component(loc).Spec().HardPointCount(item.HardPoint) > 0 {
			s.capable = append(s.capable, loc)
		} else {
			rest = append(rest, loc)
		}
	}
	s.order = append(append([]models.Location(nil), s.capable...), rest...)
	s.add(node{parent: -1, data: root})
	return s
}

func (s *search) run() (int, models.Location, bool) {
	for len(s.open) > 0 {
		idx := s.open[0]
		s.open = s.open[1:]
		s.closed = append(s.closed, idx)
		if loc, ok := s.goal(s.nodes[idx].data); ok {
			return idx, loc, true
		}
		s.expand(idx)
		sort.SliceStable(s.open, func(i, j int) bool {
			return s.nodes[s.open[i]].score > s.nodes[s.open[j]].score
		})
	}
	return -1, 0, false
}

func (s *search) goal(l *loadout.Loadout) (models.Location, bool) {
	for _, loc := range s.order {
		if l.CanEquipDirectly(s.item, loc).IsSuccess() {
			return loc, true
		}
	}
	return 0, false
}

func (s *search) expand(idx int) {
	data := s.nodes[idx].data
	for _, srcLoc := range Traversal {
		src := data.Component(srcLoc)
		tried := make(map[string]bool)
		for _, it := range src.Items() {
			if it.IsInternal() || tried[it.Name] {
				continue
			}
			tried[it.Name] = true
			for _, dstLoc := range Traversal {
				if dstLoc == srcLoc {
					continue
				}
				dst := data.Component(dstLoc)
				if dst.CanEquip(it).IsSuccess() {
					s.branch(idx, srcLoc, dstLoc, it, nil)
					continue
				}
				if dst.CanEverEquip(it) {
					s.swaps(idx, srcLoc, dstLoc, it)
				}
			}
		}
	}
}

// swaps offers exchanges of it with items in dstLoc that free enough room.
func (s *search) swaps(idx int, srcLoc, dstLoc models.Location, it *models.Item) {
	data := s.nodes[idx].data
	src, dst := data.Component(srcLoc), data.Component(dstLoc)
	deficit := dst.SlotsFor(it) - dst.FreeSlots()
	needHardPoint := it.HardPoint != models.HardPointNone && dst.FreeHardPoints(it.HardPoint) <= 0
	tried := make(map[string]bool)
	for _, cand := range dst.Items() {
		switch {
		case cand.IsInternal(), cand.Name == it.Name, tried[cand.Name]:
			continue
		case data.ItemSlots(cand) < deficit:
			continue
		case cand.CountsAsEngineHeatSink() && dst.EngineHeatSinks() > 0:
			continue
		case needHardPoint && cand.HardPoint != it.HardPoint:
			continue
		case !src.CanEverEquip(cand):
			continue
		}
		tried[cand.Name] = true
		s.branch(idx, srcLoc, dstLoc, it, cand)
	}
}

// branch builds the child of idx; a failing construction prunes it.
func (s *search) branch(idx int, srcLoc, dstLoc models.Location, it, swap *models.Item) {
	data := s.clone(s.nodes[idx].data)
	for _, c := range edgeCommands(nil, data, srcLoc, dstLoc, it, swap) {
		if err := c.Apply(); err != nil {
			return
		}
	}
	s.add(node{parent: idx, data: data, source: srcLoc, target: dstLoc, item: it, swap: swap})
}

// add registers n unless an equal state is already open or closed.
func (s *search) add(n node) {
	key := fingerprint(n.data)
	for _, i := range s.seen[key] {
		if s.nodes[i].data.Equal(n.data) {
			return
		}
	}
	n.score = s.score(n.data)
	s.nodes = append(s.nodes, n)
	idx := len(s.nodes) - 1
	s.seen[key] = append(s.seen[key], idx)
	s.open = append(s.open, idx)
}

// score estimates how close l is to taking the item. It always rates the
// item being placed, not the item moved on the edge into l.
func (s *search) score(l *loadout.Loadout) int {
	if side := s.item.EngineSide(); side != nil {
		return min(s.item.Slots, l.Component(models.CenterTorso).FreeSlots()) +
			min(side.Slots, l.Component(models.LeftTorso).FreeSlots()) +
			min(side.Slots, l.Component(models.RightTorso).FreeSlots())
	}
	best := 0
	for _, loc := range s.capable {
		c := l.Component(loc)
		if !c.CanEverEquip(s.item) {
			continue
		}
		if f := c.FreeSlots(); f > best {
			best = f
		}
	}
	return best
}

// commands replays the path from the root to goal on the live loadout and
// finishes with the placement itself.
func (s *search) commands(d messages.Delivery, l *loadout.Loadout, goal int, loc models.Location) []command.Command {
	var path []int
	for i := goal; s.nodes[i].parent >= 0; i = s.nodes[i].parent {
		path = append(path, i)
	}
	var cmds []command.Command
	for k := len(path) - 1; k >= 0; k-- {
		n := s.nodes[path[k]]
		cmds = append(cmds, edgeCommands(d, l, n.source, n.target, n.item, n.swap)...)
	}
	return append(cmds, command.NewAddItem(d, l, loc, s.item))
}

func edgeCommands(d messages.Delivery, l *loadout.Loadout, src, dst models.Location, it, swap *models.Item) []command.Command {
	if swap == nil {
		return []command.Command{
			command.NewRemoveItem(d, l, src, it),
			command.NewAddItem(d, l, dst, it),
		}
	}
	return []command.Command{
		command.NewRemoveItem(d, l, src, it),
		command.NewRemoveItem(d, l, dst, swap),
		command.NewAddItem(d, l, src, swap),
		command.NewAddItem(d, l, dst, it),
	}
}

// fingerprint buckets loadouts by their per-location item names. Equal
// loadouts always share a bucket.
func fingerprint(l *loadout.Loadout) string {
	var b strings.Builder
	for _, c := range l.Components() {
		names := make([]string, 0, c.ItemCount())
		for _, it := range c.Items() {
			names = append(names, it.Name)
		}
		sort.Strings(names)
		b.WriteString(c.Location().ShortName())
		b.WriteByte(':')
		b.WriteString(strings.Join(names, ","))
		b.WriteByte(';')
	}
	return b.String()
}

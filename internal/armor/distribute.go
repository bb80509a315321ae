// Package armor spreads a requested amount of armor over the automatically
// managed sides of a loadout.
package armor

import (
	"fmt"
	"math"
	"sort"

	"github.com/lisongmechlab/lsml-sub001/internal/command"
	"github.com/lisongmechlab/lsml-sub001/internal/loadout"
	"github.com/lisongmechlab/lsml-sub001/internal/messages"
	"github.com/lisongmechlab/lsml-sub001/internal/models"
)

const epsilon = 1e-9

// Distribute returns a command that, when applied, sets armor on every
// component without manual armor so that the loadout carries points in
// total, split front:back at ratio on two-sided locations. The plan is made
// against the loadout state at apply time.
func Distribute(d messages.Delivery, l *loadout.Loadout, points int, ratio float64) *command.Composite {
	desc := fmt.Sprintf("distribute %d armor", points)
	return command.NewComposite(desc, func() ([]command.Command, error) {
		totals := Allocate(l, points)
		return emit(d, l, totals, ratio), nil
	})
}

// SetMaxArmor distributes the chassis maximum, which the budget clamps to
// what the free tonnage allows.
func SetMaxArmor(d messages.Delivery, l *loadout.Loadout, ratio float64) *command.Composite {
	return command.NewComposite("set max armor", func() ([]command.Command, error) {
		totals := Allocate(l, l.Chassis().MaxArmor())
		return emit(d, l, totals, ratio), nil
	})
}

// Budget is the number of automatic armor points the loadout can take when
// points are requested in total, manual armor included.
func Budget(l *loadout.Loadout, points int) int {
	ppt := l.Upgrades().Armor.PointsPerTon
	unarmored := l.UnarmoredMass()

	total := math.Floor((unarmored+float64(points)/ppt)*2+epsilon) / 2
	left := int(math.Floor((total-unarmored)*ppt + epsilon))
	if left < 0 {
		left = 0
	}
	if byMass := int(math.Floor((l.Chassis().Mass-unarmored)*ppt + epsilon)); left > byMass {
		left = byMass
	}

	manual, ceiling := 0, 0
	for _, c := range l.Components() {
		if c.HasManualArmor() {
			manual += c.ArmorTotal()
		} else {
			ceiling += c.MaxArmor()
		}
	}
	left -= manual
	if left > ceiling {
		left = ceiling
	}
	if left < 0 {
		left = 0
	}
	return left
}

// Weights returns the priority of every component without manual armor.
func Weights(l *loadout.Loadout) map[models.Location]int {
	xl := false
	if e := l.Engine(); e != nil && e.EngineSide() != nil {
		xl = true
	}
	w := make(map[models.Location]int)
	for _, c := range l.Components() {
		if c.HasManualArmor() {
			continue
		}
		loc := c.Location()
		switch {
		case loc == models.CenterTorso:
			w[loc] = 2000
		case loc == models.LeftTorso || loc == models.RightTorso:
			if xl {
				w[loc] = 1000
			} else {
				w[loc] = 20
			}
		case loc == models.LeftLeg || loc == models.RightLeg:
			w[loc] = 10
		case loc == models.Head:
			w[loc] = 7
		default:
			if _, seen := w[loc]; !seen && c.ItemMass() == 0 {
				w[loc] = 0
				continue
			}
			w[loc] = 10
			if torso, ok := loc.PairedTorso(); ok && !l.Component(torso).HasManualArmor() && w[torso] < 10 {
				w[torso] = 10
			}
		}
	}
	return w
}

// Allocate computes the total armor per automatic location.
func Allocate(l *loadout.Loadout, points int) map[models.Location]int {
	left := Budget(l, points)
	weights := Weights(l)

	order := make([]models.Location, 0, len(weights))
	weightSum := 0
	for loc, wt := range weights {
		order = append(order, loc)
		weightSum += wt
	}
	sort.Slice(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if weights[a] != weights[b] {
			return weights[a] > weights[b]
		}
		ma, mb := l.Component(a).MaxArmor(), l.Component(b).MaxArmor()
		if ma != mb {
			return ma < mb
		}
		return a < b
	})

	totals := make(map[models.Location]int, len(order))
	for _, loc := range order {
		wt := weights[loc]
		if weightSum <= 0 {
			totals[loc] = 0
			continue
		}
		n := left * wt / weightSum
		if limit := l.Component(loc).MaxArmor(); n > limit {
			n = limit
		}
		totals[loc] = n
		left -= n
		weightSum -= wt
	}

	eligible := make([]models.Location, 0, len(order))
	for _, loc := range order {
		if totals[loc] < l.Component(loc).MaxArmor() {
			eligible = append(eligible, loc)
		}
	}
	for left > 0 && len(eligible) > 0 {
		share := left / len(eligible)
		if share == 0 {
			share = 1
		}
		next := eligible[:0]
		for _, loc := range eligible {
			room := l.Component(loc).MaxArmor() - totals[loc]
			n := share
			if n > room {
				n = room
			}
			if n > left {
				n = left
			}
			totals[loc] += n
			left -= n
			if totals[loc] < l.Component(loc).MaxArmor() {
				next = append(next, loc)
			}
		}
		eligible = next
	}
	return totals
}

// Split divides a two-sided total into front and back at ratio front:back.
func Split(total int, ratio float64) (front, back int) {
	back = int(math.Floor(float64(total) / (ratio + 1)))
	if back < 0 {
		back = 0
	}
	if back > total {
		back = total
	}
	return total - back, back
}

// emit zeroes every automatic side before writing any new value.
func emit(d messages.Delivery, l *loadout.Loadout, totals map[models.Location]int, ratio float64) []command.Command {
	var zeros, sets []command.Command
	for _, loc := range models.Locations {
		total, ok := totals[loc]
		if !ok {
			continue
		}
		if loc.TwoSided() {
			front, back := Split(total, ratio)
			zeros = append(zeros,
				command.NewSetArmor(d, l, loc, models.ArmorFront, 0, false),
				command.NewSetArmor(d, l, loc, models.ArmorBack, 0, false))
			sets = append(sets,
				command.NewSetArmor(d, l, loc, models.ArmorBack, back, false),
				command.NewSetArmor(d, l, loc, models.ArmorFront, front, false))
			continue
		}
		zeros = append(zeros, command.NewSetArmor(d, l, loc, models.ArmorOnly, 0, false))
		sets = append(sets, command.NewSetArmor(d, l, loc, models.ArmorOnly, total, false))
	}
	return append(zeros, sets...)
}

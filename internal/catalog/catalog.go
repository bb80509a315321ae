// Package catalog resolves item and chassis names to the shared immutable
// descriptors used by loadouts.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/lisongmechlab/lsml-sub001/internal/models"
)

var ErrNotFound = errors.New("catalog: not found")

// Catalog looks up descriptors by name. Lookups are case-insensitive and
// accept item aliases.
type Catalog interface {
	Item(name string) (*models.Item, error)
	Chassis(name string) (*models.Chassis, error)
}

// Memory is an in-process Catalog. It is not safe for concurrent writes;
// reads after construction are safe.
type Memory struct {
	items   []*models.Item
	byName  map[string]*models.Item
	chassis map[string]*models.Chassis
}

func NewMemory() *Memory {
	return &Memory{
		byName:  make(map[string]*models.Item),
		chassis: make(map[string]*models.Chassis),
	}
}

func key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// AddItem registers item under its name and aliases.
func (m *Memory) AddItem(item *models.Item) error {
	names := append([]string{item.Name}, item.Aliases...)
	for _, n := range names {
		if _, ok := m.byName[key(n)]; ok {
			return fmt.Errorf("catalog: duplicate item name %q", n)
		}
	}
	for _, n := range names {
		m.byName[key(n)] = item
	}
	m.items = append(m.items, item)
	return nil
}

func (m *Memory) AddChassis(c *models.Chassis) error {
	if _, ok := m.chassis[key(c.Name)]; ok {
		return fmt.Errorf("catalog: duplicate chassis %q", c.Name)
	}
	m.chassis[key(c.Name)] = c
	return nil
}

func (m *Memory) Item(name string) (*models.Item, error) {
	if it, ok := m.byName[key(name)]; ok {
		return it, nil
	}
	return nil, fmt.Errorf("item %q: %w", name, ErrNotFound)
}

func (m *Memory) Chassis(name string) (*models.Chassis, error) {
	if c, ok := m.chassis[key(name)]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("chassis %q: %w", name, ErrNotFound)
}

// Items returns every item in registration order.
func (m *Memory) Items() []*models.Item {
	return append([]*models.Item(nil), m.items...)
}

// ChassisList returns every chassis sorted by name.
func (m *Memory) ChassisList() []*models.Chassis {
	out := make([]*models.Chassis, 0, len(m.chassis))
	for _, c := range m.chassis {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

package ingestion

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/lisongmechlab/lsml-sub001/internal/models"
)

// MTFData holds the loadout-relevant fields of a MegaMek .mtf file.
type MTFData struct {
	Chassis  string
	Model    string
	Config   string
	TechBase string

	Mass         int
	EngineRating int
	EngineType   string
	Structure    string

	HeatSinkCount int
	HeatSinkType  string

	JumpMP int

	ArmorType   string
	ArmorValues map[string]int // armor key ("LT", "RTL", ...) -> points

	// Per-location critical slot lines, keyed by long location name.
	LocationEquipment map[string][]string
}

// TotalArmor returns the sum of all armor values.
func (d *MTFData) TotalArmor() int {
	total := 0
	for _, v := range d.ArmorValues {
		total += v
	}
	return total
}

// FullName returns "Chassis Model" or just "Chassis" if model is empty.
func (d *MTFData) FullName() string {
	if d.Model == "" {
		return d.Chassis
	}
	return d.Chassis + " " + d.Model
}

// armorKeys maps "<code> armor" field names to ArmorValues keys. Rear armor
// of the torsos uses RTL, RTC and RTR.
var armorKeys = func() map[string]string {
	m := make(map[string]string)
	for _, loc := range models.Locations {
		code := loc.ShortName()
		m[strings.ToLower(code)+" armor"] = code
		if loc.TwoSided() {
			rear := "RT" + code[:1]
			m[strings.ToLower(rear)+" armor"] = rear
		}
	}
	return m
}()

// fields sets one header value on d. Keys not listed are ignored.
var fields = map[string]func(d *MTFData, val string){
	"chassis":    func(d *MTFData, v string) { d.Chassis = v },
	"model":      func(d *MTFData, v string) { d.Model = v },
	"config":     func(d *MTFData, v string) { d.Config = v },
	"techbase":   func(d *MTFData, v string) { d.TechBase = v },
	"mass":       func(d *MTFData, v string) { d.Mass, _ = strconv.Atoi(v) },
	"engine":     func(d *MTFData, v string) { d.EngineRating, d.EngineType = parseEngine(v) },
	"structure":  func(d *MTFData, v string) { d.Structure = v },
	"heat sinks": func(d *MTFData, v string) { d.HeatSinkCount, d.HeatSinkType = parseHeatSinks(v) },
	"jump mp":    func(d *MTFData, v string) { d.JumpMP, _ = strconv.Atoi(v) },
	"armor":      func(d *MTFData, v string) { d.ArmorType = v },
}

// ParseMTF reads a MegaMek .mtf file and returns structured data.
func ParseMTF(path string) (*MTFData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mtf: %w", err)
	}
	defer f.Close()
	return ParseMTFReader(f)
}

func ParseMTFReader(r io.Reader) (*MTFData, error) {
	p := mtfParser{data: &MTFData{
		ArmorValues:       make(map[string]int),
		LocationEquipment: make(map[string][]string),
	}}

	scanner := bufio.NewScanner(r)
	// Lore lines can be long.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		p.line(strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan mtf: %w", err)
	}
	if p.data.Chassis == "" {
		return nil, fmt.Errorf("missing chassis field")
	}
	return p.data, nil
}

// mtfParser tracks which block the scanner is in. A location block runs
// from its header to the next blank line; the weapons summary runs until
// the next known header key.
type mtfParser struct {
	data      *MTFData
	location  string
	inWeapons bool
}

func (p *mtfParser) line(s string) {
	switch {
	case s == "":
		p.location = ""
		return
	case strings.HasPrefix(s, "#"):
		return
	}

	if loc, ok := locationHeader(s); ok {
		p.location, p.inWeapons = loc, false
		return
	}
	if p.location != "" {
		p.data.LocationEquipment[p.location] = append(p.data.LocationEquipment[p.location], s)
		return
	}

	key, val, ok := strings.Cut(s, ":")
	if !ok {
		return
	}
	key = strings.ToLower(strings.TrimSpace(key))
	val = strings.TrimSpace(val)

	// The weapons summary repeats the crit lines; the crits are authoritative.
	if key == "weapons" {
		p.inWeapons = true
		return
	}
	code, isArmor := armorKeys[key]
	set, isField := fields[key]
	if p.inWeapons {
		if !isArmor && !isField {
			return
		}
		p.inWeapons = false
	}
	switch {
	case isArmor:
		p.data.ArmorValues[code] = parseArmorValue(val)
	case isField:
		set(p.data, val)
	}
}

// locationHeader matches a biped location header such as "Left Arm:".
func locationHeader(s string) (string, bool) {
	name, ok := strings.CutSuffix(s, ":")
	if !ok {
		return "", false
	}
	for _, loc := range models.Locations {
		if strings.EqualFold(name, loc.String()) {
			return loc.String(), true
		}
	}
	return "", false
}

// parseArmorValue reads "26" or the patchwork form "Reactive(Inner Sphere):26".
func parseArmorValue(val string) int {
	if i := strings.LastIndex(val, ":"); i >= 0 {
		val = val[i+1:]
	}
	n, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		return 0
	}
	return n
}

// leadingCount splits "300 XL Engine(IS)" into 300 and "XL Engine(IS)".
func leadingCount(val string) (int, string) {
	num, rest, _ := strings.Cut(val, " ")
	n, _ := strconv.Atoi(num)
	return n, strings.TrimSpace(rest)
}

func parseEngine(val string) (int, string) {
	return leadingCount(val)
}

// parseHeatSinks reads "14 IS Double"; a bare count means single heat sinks.
func parseHeatSinks(val string) (int, string) {
	n, kind := leadingCount(val)
	if kind == "" {
		kind = "Single"
	}
	return n, kind
}

package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS items (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		kind TEXT NOT NULL,
		slots INTEGER NOT NULL,
		mass REAL NOT NULL,
		hardpoint TEXT NOT NULL DEFAULT '',
		locations TEXT NOT NULL DEFAULT '',
		engine_rating INTEGER NOT NULL DEFAULT 0,
		engine_side TEXT NOT NULL DEFAULT '',
		actuator TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS item_aliases (
		id INTEGER PRIMARY KEY,
		item_name TEXT NOT NULL REFERENCES items(name) ON DELETE CASCADE,
		alias TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS chassis (
		name TEXT PRIMARY KEY,
		mass REAL NOT NULL,
		engine_min INTEGER NOT NULL,
		engine_max INTEGER NOT NULL,
		max_jump_jets INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS chassis_components (
		chassis_name TEXT NOT NULL REFERENCES chassis(name) ON DELETE CASCADE,
		location TEXT NOT NULL,
		slots INTEGER NOT NULL,
		max_armor INTEGER NOT NULL,
		PRIMARY KEY (chassis_name, location)
	)`,
	`CREATE TABLE IF NOT EXISTS component_hardpoints (
		chassis_name TEXT NOT NULL,
		location TEXT NOT NULL,
		type TEXT NOT NULL,
		count INTEGER NOT NULL,
		PRIMARY KEY (chassis_name, location, type),
		FOREIGN KEY (chassis_name, location) REFERENCES chassis_components(chassis_name, location) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS component_internals (
		chassis_name TEXT NOT NULL,
		location TEXT NOT NULL,
		position INTEGER NOT NULL,
		item_name TEXT NOT NULL REFERENCES items(name),
		toggleable INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (chassis_name, location, position),
		FOREIGN KEY (chassis_name, location) REFERENCES chassis_components(chassis_name, location) ON DELETE CASCADE
	)`,
}

// ConnectSQLite opens a catalog database. A read-only connection never
// creates the file.
func ConnectSQLite(path string, readOnly bool) (*sql.DB, error) {
	dsn := path
	pragmas := []string{"PRAGMA foreign_keys=ON"}
	if readOnly {
		dsn = "file:" + path + "?mode=ro"
	} else {
		pragmas = append(pragmas, "PRAGMA journal_mode=WAL", "PRAGMA synchronous=NORMAL")
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("pragma %s: %w", pragma, err)
		}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return db, nil
}

// InitSQLite creates the catalog tables if they do not exist.
func InitSQLite(ctx context.Context, db *sql.DB) error {
	for _, ddl := range sqliteSchema {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	return nil
}

// WriteSQLite replaces the stored catalog with d.
func WriteSQLite(ctx context.Context, db *sql.DB, d Document) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"component_internals", "component_hardpoints", "chassis_components", "chassis", "item_aliases", "items"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, it := range d.Items {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO items (name, kind, slots, mass, hardpoint, locations, engine_rating, engine_side, actuator)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			it.Name, it.Kind, it.Slots, it.Mass, it.HardPoint, strings.Join(it.Locations, ","),
			it.EngineRating, it.EngineSide, it.Actuator,
		); err != nil {
			return fmt.Errorf("insert item %q: %w", it.Name, err)
		}
		for _, a := range it.Aliases {
			if _, err := tx.ExecContext(ctx, `INSERT INTO item_aliases (item_name, alias) VALUES (?, ?)`, it.Name, a); err != nil {
				return fmt.Errorf("insert alias %q: %w", a, err)
			}
		}
	}

	for _, c := range d.Chassis {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO chassis (name, mass, engine_min, engine_max, max_jump_jets) VALUES (?, ?, ?, ?, ?)`,
			c.Name, c.Mass, c.EngineMin, c.EngineMax, c.MaxJumpJets,
		); err != nil {
			return fmt.Errorf("insert chassis %q: %w", c.Name, err)
		}
		for _, cr := range c.Components {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO chassis_components (chassis_name, location, slots, max_armor) VALUES (?, ?, ?, ?)`,
				c.Name, cr.Location, cr.Slots, cr.MaxArmor,
			); err != nil {
				return fmt.Errorf("insert component %s/%s: %w", c.Name, cr.Location, err)
			}
			for t, n := range cr.HardPoints {
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO component_hardpoints (chassis_name, location, type, count) VALUES (?, ?, ?, ?)`,
					c.Name, cr.Location, t, n,
				); err != nil {
					return fmt.Errorf("insert hardpoint %s/%s: %w", c.Name, cr.Location, err)
				}
			}
			for pos, name := range cr.Internals {
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO component_internals (chassis_name, location, position, item_name, toggleable) VALUES (?, ?, ?, ?, ?)`,
					c.Name, cr.Location, pos, name, boolInt(containsName(cr.Toggleable, name)),
				); err != nil {
					return fmt.Errorf("insert internal %s/%s: %w", c.Name, cr.Location, err)
				}
			}
		}
	}

	return tx.Commit()
}

// ReadSQLite reads the stored catalog.
func ReadSQLite(ctx context.Context, db *sql.DB) (Document, error) {
	var d Document
	index := make(map[string]int)

	rows, err := db.QueryContext(ctx,
		`SELECT name, kind, slots, mass, hardpoint, locations, engine_rating, engine_side, actuator FROM items ORDER BY id`)
	if err != nil {
		return d, fmt.Errorf("query items: %w", err)
	}
	for rows.Next() {
		var r ItemRecord
		var locs string
		if err := rows.Scan(&r.Name, &r.Kind, &r.Slots, &r.Mass, &r.HardPoint, &locs, &r.EngineRating, &r.EngineSide, &r.Actuator); err != nil {
			rows.Close()
			return d, fmt.Errorf("scan item: %w", err)
		}
		r.Locations = splitList(locs)
		index[r.Name] = len(d.Items)
		d.Items = append(d.Items, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return d, fmt.Errorf("read items: %w", err)
	}

	rows, err = db.QueryContext(ctx, `SELECT item_name, alias FROM item_aliases ORDER BY id`)
	if err != nil {
		return d, fmt.Errorf("query aliases: %w", err)
	}
	for rows.Next() {
		var name, alias string
		if err := rows.Scan(&name, &alias); err != nil {
			rows.Close()
			return d, fmt.Errorf("scan alias: %w", err)
		}
		if i, ok := index[name]; ok {
			d.Items[i].Aliases = append(d.Items[i].Aliases, alias)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return d, fmt.Errorf("read aliases: %w", err)
	}

	comps, err := readSQLiteChassis(ctx, db, &d)
	if err != nil {
		return d, err
	}

	rows, err = db.QueryContext(ctx, `SELECT chassis_name, location, type, count FROM component_hardpoints ORDER BY chassis_name, location, type`)
	if err != nil {
		return d, fmt.Errorf("query hardpoints: %w", err)
	}
	for rows.Next() {
		var chassis, loc, t string
		var n int
		if err := rows.Scan(&chassis, &loc, &t, &n); err != nil {
			rows.Close()
			return d, fmt.Errorf("scan hardpoint: %w", err)
		}
		if cr := comps[chassis+"/"+loc]; cr != nil {
			if cr.HardPoints == nil {
				cr.HardPoints = make(map[string]int)
			}
			cr.HardPoints[t] = n
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return d, fmt.Errorf("read hardpoints: %w", err)
	}

	rows, err = db.QueryContext(ctx, `SELECT chassis_name, location, item_name, toggleable FROM component_internals ORDER BY chassis_name, location, position`)
	if err != nil {
		return d, fmt.Errorf("query internals: %w", err)
	}
	for rows.Next() {
		var chassis, loc, name string
		var toggleable int
		if err := rows.Scan(&chassis, &loc, &name, &toggleable); err != nil {
			rows.Close()
			return d, fmt.Errorf("scan internal: %w", err)
		}
		if cr := comps[chassis+"/"+loc]; cr != nil {
			cr.Internals = append(cr.Internals, name)
			if toggleable != 0 {
				cr.Toggleable = append(cr.Toggleable, name)
			}
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return d, fmt.Errorf("read internals: %w", err)
	}
	return d, nil
}

// readSQLiteChassis fills d.Chassis and returns the component records keyed
// by "chassis/location".
func readSQLiteChassis(ctx context.Context, db *sql.DB, d *Document) (map[string]*ComponentRecord, error) {
	rows, err := db.QueryContext(ctx, `SELECT name, mass, engine_min, engine_max, max_jump_jets FROM chassis ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query chassis: %w", err)
	}
	index := make(map[string]int)
	for rows.Next() {
		var c ChassisRecord
		if err := rows.Scan(&c.Name, &c.Mass, &c.EngineMin, &c.EngineMax, &c.MaxJumpJets); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan chassis: %w", err)
		}
		index[c.Name] = len(d.Chassis)
		d.Chassis = append(d.Chassis, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read chassis: %w", err)
	}

	rows, err = db.QueryContext(ctx, `SELECT chassis_name, location, slots, max_armor FROM chassis_components ORDER BY chassis_name, location`)
	if err != nil {
		return nil, fmt.Errorf("query components: %w", err)
	}
	for rows.Next() {
		var chassis string
		var cr ComponentRecord
		if err := rows.Scan(&chassis, &cr.Location, &cr.Slots, &cr.MaxArmor); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan component: %w", err)
		}
		if i, ok := index[chassis]; ok {
			d.Chassis[i].Components = append(d.Chassis[i].Components, cr)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read components: %w", err)
	}
	return componentIndex(d), nil
}

// LoadSQLite opens path read-only and builds its catalog.
func LoadSQLite(ctx context.Context, path string) (*Memory, error) {
	db, err := ConnectSQLite(path, true)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	d, err := ReadSQLite(ctx, db)
	if err != nil {
		return nil, err
	}
	return d.Build()
}

func componentIndex(d *Document) map[string]*ComponentRecord {
	out := make(map[string]*ComponentRecord)
	for i := range d.Chassis {
		c := &d.Chassis[i]
		for j := range c.Components {
			out[c.Name+"/"+c.Components[j].Location] = &c.Components[j]
		}
	}
	return out
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

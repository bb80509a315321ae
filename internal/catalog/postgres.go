package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var pgSchema = []string{
	`CREATE TABLE IF NOT EXISTS catalog_items (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		aliases TEXT[] NOT NULL DEFAULT '{}',
		kind TEXT NOT NULL,
		slots INTEGER NOT NULL,
		mass DOUBLE PRECISION NOT NULL,
		hardpoint TEXT NOT NULL DEFAULT '',
		locations TEXT[] NOT NULL DEFAULT '{}',
		engine_rating INTEGER NOT NULL DEFAULT 0,
		engine_side TEXT NOT NULL DEFAULT '',
		actuator TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS catalog_chassis (
		name TEXT PRIMARY KEY,
		mass DOUBLE PRECISION NOT NULL,
		engine_min INTEGER NOT NULL,
		engine_max INTEGER NOT NULL,
		max_jump_jets INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS catalog_components (
		chassis_name TEXT NOT NULL REFERENCES catalog_chassis(name) ON DELETE CASCADE,
		location TEXT NOT NULL,
		slots INTEGER NOT NULL,
		max_armor INTEGER NOT NULL,
		hardpoints JSONB NOT NULL DEFAULT '{}',
		internals TEXT[] NOT NULL DEFAULT '{}',
		toggleable TEXT[] NOT NULL DEFAULT '{}',
		PRIMARY KEY (chassis_name, location)
	)`,
}

// PGStore keeps a catalog in Postgres.
type PGStore struct {
	Pool *pgxpool.Pool
}

func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{Pool: pool}
}

// ConnectPostgres opens a pool and checks that the server answers.
func ConnectPostgres(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pg connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pg ping: %w", err)
	}
	return pool, nil
}

func (s *PGStore) Migrate(ctx context.Context) error {
	for _, ddl := range pgSchema {
		if _, err := s.Pool.Exec(ctx, ddl); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// Upsert writes every record of d, replacing rows with the same name.
func (s *PGStore) Upsert(ctx context.Context, d Document) error {
	tx, err := s.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, it := range d.Items {
		if err := upsertItem(ctx, tx, it); err != nil {
			return fmt.Errorf("upsert item %q: %w", it.Name, err)
		}
	}
	for _, c := range d.Chassis {
		if err := upsertChassis(ctx, tx, c); err != nil {
			return fmt.Errorf("upsert chassis %q: %w", c.Name, err)
		}
	}
	return tx.Commit(ctx)
}

func upsertItem(ctx context.Context, tx pgx.Tx, it ItemRecord) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO catalog_items (name, aliases, kind, slots, mass, hardpoint, locations, engine_rating, engine_side, actuator)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 ON CONFLICT (name) DO UPDATE SET
		   aliases = EXCLUDED.aliases, kind = EXCLUDED.kind, slots = EXCLUDED.slots, mass = EXCLUDED.mass,
		   hardpoint = EXCLUDED.hardpoint, locations = EXCLUDED.locations, engine_rating = EXCLUDED.engine_rating,
		   engine_side = EXCLUDED.engine_side, actuator = EXCLUDED.actuator`,
		it.Name, nonNil(it.Aliases), it.Kind, it.Slots, it.Mass, it.HardPoint, nonNil(it.Locations),
		it.EngineRating, it.EngineSide, it.Actuator)
	return err
}

func upsertChassis(ctx context.Context, tx pgx.Tx, c ChassisRecord) error {
	if _, err := tx.Exec(ctx,
		`INSERT INTO catalog_chassis (name, mass, engine_min, engine_max, max_jump_jets)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (name) DO UPDATE SET
		   mass = EXCLUDED.mass, engine_min = EXCLUDED.engine_min, engine_max = EXCLUDED.engine_max,
		   max_jump_jets = EXCLUDED.max_jump_jets`,
		c.Name, c.Mass, c.EngineMin, c.EngineMax, c.MaxJumpJets); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM catalog_components WHERE chassis_name = $1`, c.Name); err != nil {
		return err
	}
	for _, cr := range c.Components {
		hp := cr.HardPoints
		if hp == nil {
			hp = map[string]int{}
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO catalog_components (chassis_name, location, slots, max_armor, hardpoints, internals, toggleable)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			c.Name, cr.Location, cr.Slots, cr.MaxArmor, hp, nonNil(cr.Internals), nonNil(cr.Toggleable)); err != nil {
			return fmt.Errorf("component %s: %w", cr.Location, err)
		}
	}
	return nil
}

// Read returns the stored catalog.
func (s *PGStore) Read(ctx context.Context) (Document, error) {
	var d Document

	rows, err := s.Pool.Query(ctx,
		`SELECT name, aliases, kind, slots, mass, hardpoint, locations, engine_rating, engine_side, actuator
		 FROM catalog_items ORDER BY id`)
	if err != nil {
		return d, fmt.Errorf("query items: %w", err)
	}
	d.Items, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (ItemRecord, error) {
		var r ItemRecord
		err := row.Scan(&r.Name, &r.Aliases, &r.Kind, &r.Slots, &r.Mass, &r.HardPoint, &r.Locations,
			&r.EngineRating, &r.EngineSide, &r.Actuator)
		return r, err
	})
	if err != nil {
		return d, fmt.Errorf("read items: %w", err)
	}

	rows, err = s.Pool.Query(ctx,
		`SELECT name, mass, engine_min, engine_max, max_jump_jets FROM catalog_chassis ORDER BY name`)
	if err != nil {
		return d, fmt.Errorf("query chassis: %w", err)
	}
	d.Chassis, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (ChassisRecord, error) {
		var c ChassisRecord
		err := row.Scan(&c.Name, &c.Mass, &c.EngineMin, &c.EngineMax, &c.MaxJumpJets)
		return c, err
	})
	if err != nil {
		return d, fmt.Errorf("read chassis: %w", err)
	}
	index := make(map[string]int, len(d.Chassis))
	for i, c := range d.Chassis {
		index[c.Name] = i
	}

	rows, err = s.Pool.Query(ctx,
		`SELECT chassis_name, location, slots, max_armor, hardpoints, internals, toggleable
		 FROM catalog_components ORDER BY chassis_name, location`)
	if err != nil {
		return d, fmt.Errorf("query components: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var chassis string
		var cr ComponentRecord
		if err := rows.Scan(&chassis, &cr.Location, &cr.Slots, &cr.MaxArmor, &cr.HardPoints, &cr.Internals, &cr.Toggleable); err != nil {
			return d, fmt.Errorf("scan component: %w", err)
		}
		if len(cr.HardPoints) == 0 {
			cr.HardPoints = nil
		}
		i, ok := index[chassis]
		if !ok {
			return d, fmt.Errorf("component of unknown chassis %q", chassis)
		}
		d.Chassis[i].Components = append(d.Chassis[i].Components, cr)
	}
	if err := rows.Err(); err != nil {
		return d, fmt.Errorf("read components: %w", err)
	}
	return d, nil
}

// Load reads and builds the stored catalog.
func (s *PGStore) Load(ctx context.Context) (*Memory, error) {
	d, err := s.Read(ctx)
	if err != nil {
		return nil, err
	}
	for i := range d.Items {
		d.Items[i].Aliases = trimEmpty(d.Items[i].Aliases)
		d.Items[i].Locations = trimEmpty(d.Items[i].Locations)
	}
	return d.Build()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func trimEmpty(s []string) []string {
	var out []string
	for _, v := range s {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// PropertyRank - Property Listing and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/propertyrank

// Package sqlstore implements store.Store on database/sql.
//
// Two drivers are supported: DuckDB (duckdb-go) and SQLite (mattn/go-sqlite3).
// Both accept the same schema and the same ? placeholders, so one
// implementation serves either.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2" // registers the "duckdb" driver
	"github.com/goccy/go-json"
	_ "github.com/mattn/go-sqlite3" // registers the "sqlite3" driver

	"github.com/tomtom215/propertyrank/internal/logging"
	"github.com/tomtom215/propertyrank/internal/models"
	"github.com/tomtom215/propertyrank/internal/store"
)

// Supported driver names.
const (
	DriverDuckDB = "duckdb"
	DriverSQLite = "sqlite3"
)

// Config configures the SQL store.
type Config struct {
	// Driver is DriverDuckDB or DriverSQLite.
	Driver string
	// Path is the database file. Empty selects an in-memory database.
	Path string
}

// Store is a database/sql backed store.Store.
type Store struct {
	db     *sql.DB
	driver string
}

var _ store.Store = (*Store)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS properties_list (
  id BIGINT PRIMARY KEY,
  title TEXT NOT NULL DEFAULT '',
  price BIGINT NOT NULL DEFAULT 0,
  location TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS properties_info (
  id BIGINT PRIMARY KEY,
  bedrooms INTEGER NOT NULL,
  bathrooms INTEGER NOT NULL,
  size_sqft INTEGER NOT NULL,
  school_rating INTEGER NOT NULL,
  commute_time INTEGER NOT NULL,
  year_built INTEGER NOT NULL,
  has_pool BOOLEAN NOT NULL,
  has_garage BOOLEAN NOT NULL,
  has_garden BOOLEAN NOT NULL,
  amenities_json TEXT NOT NULL DEFAULT '[]'
);
CREATE TABLE IF NOT EXISTS properties_images (
  id BIGINT NOT NULL,
  seq INTEGER NOT NULL,
  image_url TEXT NOT NULL,
  caption TEXT NOT NULL DEFAULT '',
  PRIMARY KEY (id, seq)
);
CREATE INDEX IF NOT EXISTS idx_properties_list_location ON properties_list(location);
CREATE INDEX IF NOT EXISTS idx_properties_list_price ON properties_list(price);
`

// Open connects to the database and ensures the schema exists.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	dsn := cfg.Path
	switch cfg.Driver {
	case DriverDuckDB:
	case DriverSQLite:
		if dsn == "" {
			dsn = ":memory:"
		}
	default:
		return nil, fmt.Errorf("sqlstore: unsupported driver %q", cfg.Driver)
	}

	db, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}
	if cfg.Path == "" {
		// An in-memory database lives on a single connection.
		db.SetMaxOpenConns(1)
	}

	s := &Store{db: db, driver: cfg.Driver}
	if err := s.ensureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	logging.Info().
		Str("driver", cfg.Driver).
		Str("path", cfg.Path).
		Msg("Listing store opened")
	return s, nil
}

func (s *Store) ensureSchema(ctx context.Context) error {
	for _, stmt := range strings.Split(schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// Driver implements store.Store.
func (s *Store) Driver() string { return s.driver }

// Close implements store.Store.
func (s *Store) Close() error { return s.db.Close() }

// Ping implements store.Store.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", store.ErrUnavailable, err)
	}
	return nil
}

const listingColumns = `l.id, l.title, l.price, l.location`

const propertyColumns = listingColumns + `,
  i.id, i.bedrooms, i.bathrooms, i.size_sqft, i.school_rating, i.commute_time,
  i.year_built, i.has_pool, i.has_garage, i.has_garden, i.amenities_json`

// AllListings implements store.Store.
func (s *Store) AllListings(ctx context.Context) ([]models.Listing, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+listingColumns+` FROM properties_list l ORDER BY l.id`)
	if err != nil {
		return nil, fmt.Errorf("query listings: %w", err)
	}
	defer rows.Close()

	out := []models.Listing{}
	for rows.Next() {
		var l models.Listing
		if err := rows.Scan(&l.ID, &l.Title, &l.Price, &l.Location); err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// GetListing implements store.Store.
func (s *Store) GetListing(ctx context.Context, id int64) (models.Listing, error) {
	var l models.Listing
	err := s.db.QueryRowContext(ctx,
		`SELECT `+listingColumns+` FROM properties_list l WHERE l.id = ?`, id,
	).Scan(&l.ID, &l.Title, &l.Price, &l.Location)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Listing{}, fmt.Errorf("%w: id %d", store.ErrNotFound, id)
	}
	if err != nil {
		return models.Listing{}, fmt.Errorf("get listing %d: %w", id, err)
	}
	return l, nil
}

// GetDetails implements store.Store.
func (s *Store) GetDetails(ctx context.Context, id int64) (*models.Details, error) {
	var d models.Details
	var amenities string
	err := s.db.QueryRowContext(ctx, `
SELECT id, bedrooms, bathrooms, size_sqft, school_rating, commute_time,
  year_built, has_pool, has_garage, has_garden, amenities_json
FROM properties_info WHERE id = ?`, id,
	).Scan(&d.ID, &d.Bedrooms, &d.Bathrooms, &d.SizeSqft, &d.SchoolRating, &d.CommuteTime,
		&d.YearBuilt, &d.HasPool, &d.HasGarage, &d.HasGarden, &amenities)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get details %d: %w", id, err)
	}
	d.Amenities = decodeAmenities(amenities)
	return &d, nil
}

// GetImages implements store.Store.
func (s *Store) GetImages(ctx context.Context, id int64) ([]models.Image, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, image_url, caption FROM properties_images WHERE id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("get images %d: %w", id, err)
	}
	defer rows.Close()

	out := []models.Image{}
	for rows.Next() {
		var img models.Image
		if err := rows.Scan(&img.ID, &img.ImageURL, &img.Caption); err != nil {
			return nil, fmt.Errorf("scan image: %w", err)
		}
		out = append(out, img)
	}
	return out, rows.Err()
}

// AllProperties implements store.Store.
func (s *Store) AllProperties(ctx context.Context) ([]models.Property, error) {
	return s.Search(ctx, store.Filter{})
}

// Search implements store.Store with a WHERE clause built from f.
func (s *Store) Search(ctx context.Context, f store.Filter) ([]models.Property, error) {
	where, args := buildWhere(f)

	q := `SELECT ` + propertyColumns + `
FROM properties_list l
LEFT JOIN properties_info i ON i.id = l.id
` + where + `
ORDER BY l.id`
	if f.Limit > 0 {
		q += "\nLIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query properties: %w", err)
	}
	defer rows.Close()

	out := []models.Property{}
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// buildWhere translates f into a WHERE clause. Listings without a detail
// record are matched against the default attribute values.
func buildWhere(f store.Filter) (string, []any) {
	where := make([]string, 0, 5)
	args := make([]any, 0, 6)

	if strings.TrimSpace(f.Location) != "" {
		where = append(where, `LOWER(l.location) LIKE '%' || LOWER(?) || '%' ESCAPE '\'`)
		args = append(args, escapeLike(f.Location))
	}
	if strings.TrimSpace(f.Query) != "" {
		where = append(where,
			`(LOWER(l.title) LIKE '%' || LOWER(?) || '%' ESCAPE '\' OR LOWER(l.location) LIKE '%' || LOWER(?) || '%' ESCAPE '\')`)
		q := escapeLike(f.Query)
		args = append(args, q, q)
	}
	if f.MaxPrice > 0 {
		where = append(where, "l.price <= ?")
		args = append(args, f.MaxPrice)
	}
	if f.MinBedrooms > 0 {
		where = append(where, "COALESCE(i.bedrooms, ?) >= ?")
		args = append(args, models.DefaultBedrooms, f.MinBedrooms)
	}
	if f.MinBathrooms > 0 {
		where = append(where, "COALESCE(i.bathrooms, ?) >= ?")
		args = append(args, models.DefaultBathrooms, f.MinBathrooms)
	}

	if len(where) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(where, " AND "), args
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProperty(row scanner) (models.Property, error) {
	var (
		p         models.Property
		detailID  sql.NullInt64
		bedrooms  sql.NullInt64
		bathrooms sql.NullInt64
		size      sql.NullInt64
		school    sql.NullInt64
		commute   sql.NullInt64
		yearBuilt sql.NullInt64
		pool      sql.NullBool
		garage    sql.NullBool
		garden    sql.NullBool
		amenities sql.NullString
	)
	err := row.Scan(&p.Listing.ID, &p.Listing.Title, &p.Listing.Price, &p.Listing.Location,
		&detailID, &bedrooms, &bathrooms, &size, &school, &commute,
		&yearBuilt, &pool, &garage, &garden, &amenities)
	if err != nil {
		return models.Property{}, fmt.Errorf("scan property: %w", err)
	}

	if detailID.Valid {
		p.Details = &models.Details{
			ID:           detailID.Int64,
			Bedrooms:     int(bedrooms.Int64),
			Bathrooms:    int(bathrooms.Int64),
			SizeSqft:     int(size.Int64),
			SchoolRating: int(school.Int64),
			CommuteTime:  int(commute.Int64),
			YearBuilt:    int(yearBuilt.Int64),
			HasPool:      pool.Bool,
			HasGarage:    garage.Bool,
			HasGarden:    garden.Bool,
			Amenities:    decodeAmenities(amenities.String),
		}
	}
	return p, nil
}

func decodeAmenities(s string) []string {
	out := []string{}
	if s == "" {
		return out
	}
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		logging.Warn().Err(err).Msg("Listing store found malformed amenities column")
		return []string{}
	}
	return out
}

// Distinct implements store.Store.
func (s *Store) Distinct(ctx context.Context, field string) ([]string, error) {
	var column string
	switch field {
	case store.FieldLocation:
		column = "location"
	case store.FieldTitle:
		column = "title"
	default:
		return nil, store.ErrUnsupportedField
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT `+column+` FROM properties_list WHERE `+column+` <> '' ORDER BY `+column)
	if err != nil {
		return nil, fmt.Errorf("distinct %s: %w", column, err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan distinct: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Counts implements store.Store.
func (s *Store) Counts(ctx context.Context) (store.Counts, error) {
	var c store.Counts
	for _, t := range []struct {
		table string
		dst   *int
	}{
		{store.CollectionListings, &c.Listings},
		{store.CollectionDetails, &c.Details},
		{store.CollectionImages, &c.Images},
	} {
		if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+t.table).Scan(t.dst); err != nil {
			return store.Counts{}, fmt.Errorf("count %s: %w", t.table, err)
		}
	}
	return c, nil
}

// UpsertListings implements store.Store.
func (s *Store) UpsertListings(ctx context.Context, listings []models.Listing) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO properties_list (id, title, price, location) VALUES (?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET title = excluded.title, price = excluded.price, location = excluded.location`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, l := range listings {
			if _, err := stmt.ExecContext(ctx, l.ID, l.Title, l.Price, l.Location); err != nil {
				return fmt.Errorf("upsert listing %d: %w", l.ID, err)
			}
		}
		return nil
	})
}

// UpsertDetails implements store.Store.
func (s *Store) UpsertDetails(ctx context.Context, details []models.Details) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
INSERT INTO properties_info
(id, bedrooms, bathrooms, size_sqft, school_rating, commute_time, year_built, has_pool, has_garage, has_garden, amenities_json)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
  bedrooms = excluded.bedrooms,
  bathrooms = excluded.bathrooms,
  size_sqft = excluded.size_sqft,
  school_rating = excluded.school_rating,
  commute_time = excluded.commute_time,
  year_built = excluded.year_built,
  has_pool = excluded.has_pool,
  has_garage = excluded.has_garage,
  has_garden = excluded.has_garden,
  amenities_json = excluded.amenities_json`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, d := range details {
			amenities := d.Amenities
			if amenities == nil {
				amenities = []string{}
			}
			am, err := json.Marshal(amenities)
			if err != nil {
				return fmt.Errorf("marshal amenities %d: %w", d.ID, err)
			}
			if _, err := stmt.ExecContext(ctx, d.ID, d.Bedrooms, d.Bathrooms, d.SizeSqft, d.SchoolRating,
				d.CommuteTime, d.YearBuilt, d.HasPool, d.HasGarage, d.HasGarden, string(am)); err != nil {
				return fmt.Errorf("upsert details %d: %w", d.ID, err)
			}
		}
		return nil
	})
}

// UpsertImages implements store.Store.
func (s *Store) UpsertImages(ctx context.Context, images []models.Image) error {
	grouped := make(map[int64][]models.Image)
	order := make([]int64, 0)
	for _, img := range images {
		if _, ok := grouped[img.ID]; !ok {
			order = append(order, img.ID)
		}
		grouped[img.ID] = append(grouped[img.ID], img)
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		for _, id := range order {
			if _, err := tx.ExecContext(ctx, `DELETE FROM properties_images WHERE id = ?`, id); err != nil {
				return fmt.Errorf("replace images %d: %w", id, err)
			}
			for pos, img := range grouped[id] {
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO properties_images (id, seq, image_url, caption) VALUES (?, ?, ?, ?)`,
					img.ID, pos, img.ImageURL, img.Caption); err != nil {
					return fmt.Errorf("insert image %d/%d: %w", id, pos, err)
				}
			}
		}
		return nil
	})
}

func (s *Store) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

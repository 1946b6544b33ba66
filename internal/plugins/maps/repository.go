package maps

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	"github.com/keyxmakerx/atlas/internal/catalogdata"
)

// CatalogRepository loads a decoded, unprepared library from its source.
type CatalogRepository interface {
	Load(ctx context.Context) (*Library, error)
}

// fileRepo reads a JSON or YAML library file.
type fileRepo struct {
	path string
}

// NewFileRepository creates a repository over a library file.
func NewFileRepository(path string) CatalogRepository {
	return &fileRepo{path: path}
}

// Load reads and decodes the file.
func (r *fileRepo) Load(_ context.Context) (*Library, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("reading library %s: %w", r.path, err)
	}
	lib, err := Decode(data, FormatFromPath(r.path))
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", r.path, err)
	}
	return lib, nil
}

// embeddedRepo serves the library compiled into the binary.
type embeddedRepo struct{}

// NewEmbeddedRepository creates a repository over the built-in library.
func NewEmbeddedRepository() CatalogRepository {
	return embeddedRepo{}
}

// Load decodes the embedded YAML document.
func (embeddedRepo) Load(_ context.Context) (*Library, error) {
	lib, err := Decode(catalogdata.Default, FormatYAML)
	if err != nil {
		return nil, fmt.Errorf("loading embedded library: %w", err)
	}
	return lib, nil
}

// --- MariaDB ---

// MariaDBRepository stores libraries in the catalog tables. Objects and
// events are kept as JSON documents keyed by map and position, so the
// relational layer does not need to follow every overlay field.
type MariaDBRepository struct {
	db *sql.DB
}

// NewMariaDBRepository creates a MariaDB-backed catalog repository.
func NewMariaDBRepository(db *sql.DB) *MariaDBRepository {
	return &MariaDBRepository{db: db}
}

// mapCols is the column list for map queries.
const mapCols = `id, name, period, min_year, max_year, image, description`

// scanMap reads a row into a MapInfo struct.
func scanMap(scanner interface{ Scan(...any) error }) (*MapInfo, error) {
	m := &MapInfo{}
	err := scanner.Scan(&m.ID, &m.Name, &m.Period, &m.MinYear, &m.MaxYear, &m.Image, &m.Description)
	return m, err
}

// Load reads every map in sort order together with its catalog.
func (r *MariaDBRepository) Load(ctx context.Context) (*Library, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+mapCols+` FROM maps ORDER BY sort_order, id`)
	if err != nil {
		return nil, fmt.Errorf("querying maps: %w", err)
	}
	defer rows.Close()

	lib := &Library{Maps: []MapInfo{}, Catalogs: map[string]*Catalog{}}
	for rows.Next() {
		m, err := scanMap(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning map: %w", err)
		}
		lib.Maps = append(lib.Maps, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, m := range lib.Maps {
		cat, err := r.loadCatalog(ctx, m.ID)
		if err != nil {
			return nil, fmt.Errorf("loading catalog %s: %w", m.ID, err)
		}
		lib.Catalogs[m.ID] = cat
	}
	return lib, nil
}

func (r *MariaDBRepository) loadCatalog(ctx context.Context, mapID string) (*Catalog, error) {
	cat := &Catalog{}

	var categories, names, icons sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT categories, name_overrides, icon_overrides
		 FROM map_catalogs WHERE map_id = ?`, mapID,
	).Scan(&categories, &names, &icons)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}
	if err := decodeColumn(categories, &cat.Categories); err != nil {
		return nil, fmt.Errorf("categories: %w", err)
	}
	if err := decodeColumn(names, &cat.NameOverrides); err != nil {
		return nil, fmt.Errorf("name overrides: %w", err)
	}
	if err := decodeColumn(icons, &cat.IconOverrides); err != nil {
		return nil, fmt.Errorf("icon overrides: %w", err)
	}

	if cat.Objects, err = loadDocuments[MapObject](ctx, r.db,
		`SELECT data FROM map_objects WHERE map_id = ? ORDER BY position`, mapID); err != nil {
		return nil, fmt.Errorf("objects: %w", err)
	}
	if cat.Events, err = loadDocuments[Event](ctx, r.db,
		`SELECT data FROM map_events WHERE map_id = ? ORDER BY position`, mapID); err != nil {
		return nil, fmt.Errorf("events: %w", err)
	}
	return cat, nil
}

// Save replaces the stored library with lib in one transaction.
func (r *MariaDBRepository) Save(ctx context.Context, lib *Library) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Child tables cascade from maps.
	if _, err := tx.ExecContext(ctx, `DELETE FROM maps`); err != nil {
		return fmt.Errorf("clearing maps: %w", err)
	}

	for i, m := range lib.Maps {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO maps (`+mapCols+`, sort_order) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			m.ID, m.Name, m.Period, m.MinYear, m.MaxYear, m.Image, m.Description, i,
		); err != nil {
			return fmt.Errorf("inserting map %s: %w", m.ID, err)
		}

		cat := lib.Catalogs[m.ID]
		if cat == nil {
			continue
		}
		if err := saveCatalog(ctx, tx, m.ID, cat); err != nil {
			return fmt.Errorf("saving catalog %s: %w", m.ID, err)
		}
	}
	return tx.Commit()
}

func saveCatalog(ctx context.Context, tx *sql.Tx, mapID string, cat *Catalog) error {
	categories, err := json.Marshal(cat.Categories)
	if err != nil {
		return err
	}
	names, err := json.Marshal(cat.NameOverrides)
	if err != nil {
		return err
	}
	icons, err := json.Marshal(cat.IconOverrides)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO map_catalogs (map_id, categories, name_overrides, icon_overrides)
		 VALUES (?, ?, ?, ?)`,
		mapID, string(categories), string(names), string(icons),
	); err != nil {
		return err
	}

	for i, o := range cat.Objects {
		data, err := json.Marshal(o)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO map_objects (map_id, id, position, data) VALUES (?, ?, ?, ?)`,
			mapID, o.ID, i, string(data),
		); err != nil {
			return fmt.Errorf("object %s: %w", o.ID, err)
		}
	}
	for i, e := range cat.Events {
		data, err := json.Marshal(e)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO map_events (map_id, id, position, data) VALUES (?, ?, ?, ?)`,
			mapID, e.ID, i, string(data),
		); err != nil {
			return fmt.Errorf("event %s: %w", e.ID, err)
		}
	}
	return nil
}

// loadDocuments scans one JSON document column per row into T.
func loadDocuments[T any](ctx context.Context, db *sql.DB, query string, args ...any) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []T{}
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var doc T
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			return nil, err
		}
		result = append(result, doc)
	}
	return result, rows.Err()
}

func decodeColumn[T any](col sql.NullString, dst *T) error {
	if !col.Valid || col.String == "" {
		return nil
	}
	return json.Unmarshal([]byte(col.String), dst)
}

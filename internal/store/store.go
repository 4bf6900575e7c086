package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/rnleach/satfire/internal/cluster"
	"github.com/rnleach/satfire/internal/pixel"
)

// Store is the embedded-relational cluster/fire database: one *sql.DB and
// the prepared statements it owns. It is not owned by a single goroutine:
// pipeline.Run shares one Store between every path-filter goroutine
// (IsPresent) and the writer (AddClusterList), relying on database/sql's
// DB and Stmt being safe for concurrent use.
type Store struct {
	db   *sql.DB
	path string

	stmtIsPresent       *sql.Stmt
	stmtNewestScanStart *sql.Stmt
	stmtInsertCluster   *sql.Stmt
}

// Open connects to (creating if necessary) the store at path, applies the
// idempotent schema, and prepares the statements used on every hot path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: opening %q: %w", path, err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: pinging %q: %w", path, err)
	}

	if _, err := db.Exec(schemaDDL); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: applying schema: %w", err)
	}

	if _, err := db.Exec(`INSERT OR IGNORE INTO meta (item_name, item_value) VALUES ('schema_version', ?)`, schemaVersion); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: recording schema version: %w", err)
	}

	s := &Store{db: db, path: path}

	if s.stmtIsPresent, err = db.Prepare(queryIsPresent); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: preparing is_present: %w", err)
	}
	if s.stmtNewestScanStart, err = db.Prepare(queryNewestScanStart); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: preparing newest_scan_start: %w", err)
	}
	if s.stmtInsertCluster, err = db.Prepare(insertCluster); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: preparing insert cluster: %w", err)
	}

	return s, nil
}

// Close releases the database handle and every prepared statement it owns.
func (s *Store) Close() error {
	s.stmtIsPresent.Close()
	s.stmtNewestScanStart.Close()
	s.stmtInsertCluster.Close()
	return s.db.Close()
}

// IsPresent reports the count of existing rows matching the granule
// signature (satellite, sector, and the granule's would-be mid_point_time);
// a non-zero count means the granule has already been ingested and should
// be skipped.
func (s *Store) IsPresent(sat cluster.Satellite, sector cluster.Sector, scanStart, scanEnd time.Time) (int, error) {
	mid := scanStart.Add(scanEnd.Sub(scanStart) / 2)

	var count int
	err := s.stmtIsPresent.QueryRow(sat.String(), sector.String(), mid.Unix()).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("store: is_present: %w", err)
	}
	return count, nil
}

// NewestScanStart returns the maximum mid_point_time stored for (sat,
// sector), or the Unix epoch if no rows exist yet, giving a --new run a
// watermark to prune the archive walk against.
func (s *Store) NewestScanStart(sat cluster.Satellite, sector cluster.Sector) (time.Time, error) {
	var unixSeconds int64
	err := s.stmtNewestScanStart.QueryRow(sat.String(), sector.String()).Scan(&unixSeconds)
	if err != nil {
		return time.Time{}, fmt.Errorf("store: newest_scan_start: %w", err)
	}
	return time.Unix(unixSeconds, 0).UTC(), nil
}

// AddClusterList inserts every cluster in list inside a single transaction.
// The uniqueness index makes re-runs idempotent: rows that already exist
// are silently skipped via INSERT OR IGNORE rather than erroring.
func (s *Store) AddClusterList(list *cluster.List) error {
	if list.Failed() {
		return fmt.Errorf("store: refusing to persist a flagged ClusterList: %s", list.Err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("store: beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt := tx.Stmt(s.stmtInsertCluster)
	mid := list.MidPointTime().Unix()

	for _, c := range list.Clusters {
		buf, err := c.Pixels.MarshalBinary()
		if err != nil {
			return fmt.Errorf("store: serializing cluster perimeter: %w", err)
		}

		_, err = stmt.Exec(
			list.Satellite.String(), list.Sector.String(), mid,
			c.Centroid.Lat, c.Centroid.Lon, c.TotalPowerMW, c.MaxTemperatureK, c.PixelCount, buf,
		)
		if err != nil {
			return fmt.Errorf("store: inserting cluster row: %w", err)
		}
	}

	return tx.Commit()
}

// ClusterRow is one streamed row from QueryRows, matching the clusters
// table's columns.
type ClusterRow struct {
	RowID           int64
	Satellite       string
	Sector          string
	MidPointTime    time.Time
	Lat, Lon        float64
	PowerMW         float64
	MaxTemperatureK float64
	CellCount       int
	Perimeter       *pixel.List
}

// Cursor streams ClusterRows matching a spatiotemporal query, used by the
// temporal "connect fires" consumer.
type Cursor struct {
	rows *sql.Rows
}

// QueryRows opens a streaming cursor over clusters matching (sat, sector),
// a time window, and a bounding box.
func (s *Store) QueryRows(sat cluster.Satellite, sector cluster.Sector, start, end time.Time, box struct{ MinLon, MaxLon, MinLat, MaxLat float64 }) (*Cursor, error) {
	rows, err := s.db.Query(queryRowsBase,
		sat.String(), sector.String(), start.Unix(), end.Unix(),
		box.MinLon, box.MaxLon, box.MinLat, box.MaxLat,
	)
	if err != nil {
		return nil, fmt.Errorf("store: query_rows: %w", err)
	}
	return &Cursor{rows: rows}, nil
}

// Next advances the cursor and decodes the next row. It returns
// (nil, nil) at end of stream.
func (c *Cursor) Next() (*ClusterRow, error) {
	if !c.rows.Next() {
		return nil, c.rows.Err()
	}

	var row ClusterRow
	var midUnix int64
	var perimeterBuf []byte

	if err := c.rows.Scan(&row.RowID, &row.Satellite, &row.Sector, &midUnix,
		&row.Lat, &row.Lon, &row.PowerMW, &row.MaxTemperatureK, &row.CellCount, &perimeterBuf); err != nil {
		return nil, fmt.Errorf("store: scanning cluster row: %w", err)
	}

	row.MidPointTime = time.Unix(midUnix, 0).UTC()

	list := pixel.New()
	if err := list.UnmarshalBinary(perimeterBuf); err != nil {
		return nil, fmt.Errorf("store: decoding perimeter: %w", err)
	}
	row.Perimeter = list

	return &row, nil
}

// Close releases the cursor's underlying result set.
func (c *Cursor) Close() error {
	return c.rows.Close()
}

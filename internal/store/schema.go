// Package store implements the persistence layer: an embedded,
// self-contained relational store for clusters and fire tracks, opened
// with database/sql against the pure-Go modernc.org/sqlite driver, in the
// style of _examples/chrissnell-remoteweather/pkg/config's SQLiteProvider.
//
// Schema grounded in
// _examples/original_source/src/fire_database/db_fires.rs for the
// fires/associations table shapes (the ingestion core only creates that
// schema; it is written to by the temporal "connect fires" consumer).
package store

const schemaDDL = `
CREATE TABLE IF NOT EXISTS clusters (
	rowid           INTEGER PRIMARY KEY AUTOINCREMENT,
	satellite       TEXT NOT NULL,
	sector          TEXT NOT NULL,
	mid_point_time  INTEGER NOT NULL,
	lat             REAL NOT NULL,
	lon             REAL NOT NULL,
	power           REAL NOT NULL,
	max_temperature REAL NOT NULL,
	cell_count      INTEGER NOT NULL,
	perimeter       BLOB NOT NULL,
	UNIQUE (satellite, sector, mid_point_time, lat, lon)
);

CREATE TABLE IF NOT EXISTS fires (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	satellite       TEXT NOT NULL,
	last_observed   INTEGER NOT NULL,
	origin_lat      REAL NOT NULL,
	origin_lon      REAL NOT NULL,
	perimeter       BLOB NOT NULL
);

CREATE TABLE IF NOT EXISTS associations (
	cluster_row_id  INTEGER NOT NULL REFERENCES clusters(rowid),
	fire_id         INTEGER NOT NULL REFERENCES fires(id),
	PRIMARY KEY (cluster_row_id, fire_id)
);

CREATE TABLE IF NOT EXISTS meta (
	item_name       TEXT PRIMARY KEY,
	item_value      TEXT NOT NULL
);
`

const schemaVersion = "1"

const (
	queryIsPresent = `
		SELECT COUNT(*) FROM clusters
		WHERE satellite = ? AND sector = ? AND mid_point_time = ?
	`

	queryNewestScanStart = `
		SELECT COALESCE(MAX(mid_point_time), 0) FROM clusters
		WHERE satellite = ? AND sector = ?
	`

	insertCluster = `
		INSERT OR IGNORE INTO clusters
			(satellite, sector, mid_point_time, lat, lon, power, max_temperature, cell_count, perimeter)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	queryRowsBase = `
		SELECT rowid, satellite, sector, mid_point_time, lat, lon, power, max_temperature, cell_count, perimeter
		FROM clusters
		WHERE satellite = ? AND sector = ? AND mid_point_time >= ? AND mid_point_time <= ?
		  AND lon >= ? AND lon <= ? AND lat >= ? AND lat <= ?
		ORDER BY mid_point_time
	`
)

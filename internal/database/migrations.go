package database

// migrationsSQL contains all database migrations.
// Migrations are applied in order by version number.
var migrationsSQL = map[int]string{
	1: migrationV1BSYears,
	2: migrationV2BSYearsIndex,
}

// migrationV1BSYears creates the month-length table backing the calendar
// oracle. One row per BS year:
//
//   - ad_start is the Gregorian date (YYYY-MM-DD) of 1 Baisakh
//   - m01..m12 are the month lengths, Baisakh through Chaitra
//
// Rows must be contiguous and each ad_start must follow from the previous
// row; calendar.NewTable enforces that when the table is loaded.
const migrationV1BSYears = `
CREATE TABLE IF NOT EXISTS bs_years (
    year INTEGER PRIMARY KEY,
    ad_start TEXT NOT NULL,

    m01 INTEGER NOT NULL CHECK (m01 BETWEEN 29 AND 32),
    m02 INTEGER NOT NULL CHECK (m02 BETWEEN 29 AND 32),
    m03 INTEGER NOT NULL CHECK (m03 BETWEEN 29 AND 32),
    m04 INTEGER NOT NULL CHECK (m04 BETWEEN 29 AND 32),
    m05 INTEGER NOT NULL CHECK (m05 BETWEEN 29 AND 32),
    m06 INTEGER NOT NULL CHECK (m06 BETWEEN 29 AND 32),
    m07 INTEGER NOT NULL CHECK (m07 BETWEEN 29 AND 32),
    m08 INTEGER NOT NULL CHECK (m08 BETWEEN 29 AND 32),
    m09 INTEGER NOT NULL CHECK (m09 BETWEEN 29 AND 32),
    m10 INTEGER NOT NULL CHECK (m10 BETWEEN 29 AND 32),
    m11 INTEGER NOT NULL CHECK (m11 BETWEEN 29 AND 32),
    m12 INTEGER NOT NULL CHECK (m12 BETWEEN 29 AND 32),

    created_at TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at TEXT NOT NULL DEFAULT (datetime('now'))
);
`

// migrationV2BSYearsIndex lets AD lookups find a year by its start date.
const migrationV2BSYearsIndex = `
CREATE UNIQUE INDEX IF NOT EXISTS idx_bs_years_ad_start
    ON bs_years(ad_start);
`

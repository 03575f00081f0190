package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"hirescout-engine/internal/domain"
)

// Lookup is one completed research, kept as an audit trail. The pipeline
// itself never reads this table.
type Lookup struct {
	ID                int64   `json:"id"`
	CompanyName       string  `json:"companyName"`
	Website           string  `json:"website"`
	ATSDetected       string  `json:"atsDetected"`
	LiveRoles         *int    `json:"liveRoles"`
	CareersURL        *string `json:"careersUrl"`
	LinkedInSearchURL string  `json:"linkedinSearchUrl"`
	CreatedAt         string  `json:"createdAt"`
}

func Migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}
	if v >= 1 {
		return tx.Commit()
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS lookups (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  company TEXT NOT NULL,
  website TEXT NOT NULL,
  ats TEXT NOT NULL,
  live_roles INTEGER,
  careers_url TEXT,
  search_url TEXT NOT NULL,
  created_at TEXT NOT NULL
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_lookups_created_at
ON lookups(created_at DESC);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}
	return tx.Commit()
}

func InsertLookup(ctx context.Context, db *sql.DB, r domain.ResearchResult) (int64, error) {
	res, err := db.ExecContext(ctx, `
INSERT INTO lookups(company, website, ats, live_roles, careers_url, search_url, created_at)
VALUES(?,?,?,?,?,?,?);`,
		r.CompanyName,
		r.Website,
		r.ATSDetected,
		r.LiveRoles,
		r.CareersURL,
		r.LinkedInSearchURL,
		// Matches datetime('now') so the window filters compare cleanly.
		time.Now().UTC().Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return 0, fmt.Errorf("insert lookup: %w", err)
	}
	id, _ := res.LastInsertId()
	return id, nil
}

type ListLookupsOpts struct {
	Window string // 24h | 7d | all
	Limit  int
}

func ListLookups(ctx context.Context, db *sql.DB, opts ListLookupsOpts) ([]Lookup, error) {
	if opts.Limit <= 0 || opts.Limit > 2000 {
		opts.Limit = 200
	}

	where := ""
	switch opts.Window {
	case "24h":
		where = "WHERE created_at >= datetime('now','-24 hours')"
	case "all":
		// no filter
	default:
		where = "WHERE created_at >= datetime('now','-7 days')"
	}

	query := fmt.Sprintf(`
SELECT id, company, website, ats, live_roles, careers_url, search_url, created_at
FROM lookups
%s
ORDER BY created_at DESC
LIMIT ?;
`, where)

	rows, err := db.QueryContext(ctx, query, opts.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Lookup
	for rows.Next() {
		var l Lookup
		var roles sql.NullInt64
		var careers sql.NullString
		if err := rows.Scan(
			&l.ID,
			&l.CompanyName,
			&l.Website,
			&l.ATSDetected,
			&roles,
			&careers,
			&l.LinkedInSearchURL,
			&l.CreatedAt,
		); err != nil {
			return nil, err
		}
		if roles.Valid {
			n := int(roles.Int64)
			l.LiveRoles = &n
		}
		if careers.Valid {
			s := careers.String
			l.CareersURL = &s
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func DeleteLookup(ctx context.Context, db *sql.DB, id int64) error {
	_, err := db.ExecContext(ctx, `DELETE FROM lookups WHERE id = ?;`, id)
	return err
}

func CleanupOldLookups(db *sql.DB) (int64, error) {
	res, err := db.Exec(`
DELETE FROM lookups
WHERE created_at < datetime('now', '-3 months');
`)
	if err != nil {
		return 0, fmt.Errorf("cleanup old lookups: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

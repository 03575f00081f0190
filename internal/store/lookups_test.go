package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hirescout-engine/internal/domain"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, Migrate(db))
	return db
}

func TestInsertAndListLookups(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	roles := 12
	careers := "https://boards.greenhouse.io/acme"
	id, err := InsertLookup(ctx, db, domain.ResearchResult{
		CompanyName:       "Acme",
		Website:           "https://acme.com",
		ATSDetected:       "Greenhouse",
		LiveRoles:         &roles,
		CareersURL:        &careers,
		LinkedInSearchURL: "https://www.linkedin.com/search/results/people/?keywords=acme",
	})
	require.NoError(t, err)
	assert.Positive(t, id)

	// A lookup where nothing was found: nullable columns stay null.
	_, err = InsertLookup(ctx, db, domain.ResearchResult{
		CompanyName:       "Ghost",
		Website:           "https://ghost.example",
		ATSDetected:       domain.UnknownATS,
		LinkedInSearchURL: "https://www.linkedin.com/search/results/people/?keywords=ghost",
	})
	require.NoError(t, err)

	lookups, err := ListLookups(ctx, db, ListLookupsOpts{Window: "all"})
	require.NoError(t, err)
	require.Len(t, lookups, 2)

	byCompany := map[string]Lookup{}
	for _, l := range lookups {
		byCompany[l.CompanyName] = l
	}

	acme := byCompany["Acme"]
	require.NotNil(t, acme.LiveRoles)
	assert.Equal(t, 12, *acme.LiveRoles)
	require.NotNil(t, acme.CareersURL)
	assert.Equal(t, careers, *acme.CareersURL)

	ghost := byCompany["Ghost"]
	assert.Nil(t, ghost.LiveRoles)
	assert.Nil(t, ghost.CareersURL)
	assert.Equal(t, domain.UnknownATS, ghost.ATSDetected)
}

func TestDeleteLookup(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	id, err := InsertLookup(ctx, db, domain.ResearchResult{
		CompanyName:       "Acme",
		Website:           "https://acme.com",
		ATSDetected:       domain.UnknownATS,
		LinkedInSearchURL: "https://example.com",
	})
	require.NoError(t, err)

	require.NoError(t, DeleteLookup(ctx, db, id))

	lookups, err := ListLookups(ctx, db, ListLookupsOpts{Window: "all"})
	require.NoError(t, err)
	assert.Empty(t, lookups)
}

func TestMigrateIdempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

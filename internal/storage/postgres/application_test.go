package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(gormpostgres.Open("host=localhost user=postgres dbname=shadowmatch"), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db
}

func TestAcceptanceRowCarriesAcceptedAt(t *testing.T) {
	sa := newSuccessfulApplication(7, 42)

	assert.Equal(t, 7, sa.OpportunityID)
	assert.Equal(t, 42, sa.UserID)
	assert.False(t, sa.AcceptedAt.IsZero())
	assert.Equal(t, time.UTC, sa.AcceptedAt.Location())

	// The insert writes accepted_at explicitly, so the value must already be
	// stamped; the column default never fires.
	stmt := dryRunDB(t).Create(&sa).Statement
	assert.Contains(t, stmt.SQL.String(), "accepted_at")

	sawTime := false
	for _, v := range stmt.Vars {
		if ts, ok := v.(time.Time); ok {
			sawTime = true
			assert.False(t, ts.IsZero())
		}
	}
	assert.True(t, sawTime)
}

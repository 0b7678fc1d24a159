package seed_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoshCentner/ShadowMatchPro/internal/seed"
	"github.com/JoshCentner/ShadowMatchPro/internal/storage/memory"
)

func TestRunIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	require.NoError(t, seed.Run(ctx, store))
	require.NoError(t, seed.Run(ctx, store))

	orgs, err := store.ListOrganisations(ctx)
	require.NoError(t, err)
	assert.Len(t, orgs, 7)
	assert.Equal(t, "SEEK", orgs[0].Name)

	areas, err := store.ListLearningAreas(ctx)
	require.NoError(t, err)
	assert.Len(t, areas, 10)
}

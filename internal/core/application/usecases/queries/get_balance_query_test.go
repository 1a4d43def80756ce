package queries_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carveyor/internal/core/application/usecases/queries"
	"carveyor/internal/core/domain/model/kernel"
)

func TestNewGetBalanceQuery(t *testing.T) {
	t.Run("accepts a valid actor id", func(t *testing.T) {
		actorID := kernel.NewUUID()
		query, err := queries.NewGetBalanceQuery(actorID)

		require.NoError(t, err)
		assert.Equal(t, actorID, query.ActorID())
		assert.NoError(t, query.Validate())
	})

	t.Run("rejects a zero actor id", func(t *testing.T) {
		_, err := queries.NewGetBalanceQuery(kernel.UUID{})
		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var query queries.GetBalanceQuery
		assert.ErrorIs(t, query.Validate(), queries.ErrGetBalanceQueryIsNotConstructed)
	})
}

package queries_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carveyor/internal/core/application/usecases/queries"
	"carveyor/internal/core/domain/model/kernel"
)

func TestNewGetLedgerQuery(t *testing.T) {
	actorID := kernel.NewUUID()
	from := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	t.Run("accepts a valid window", func(t *testing.T) {
		query, err := queries.NewGetLedgerQuery(actorID, from, to)

		require.NoError(t, err)
		assert.Equal(t, actorID, query.ActorID())
		assert.Equal(t, from, query.From())
		assert.Equal(t, to, query.To())
	})

	t.Run("rejects a zero actor id", func(t *testing.T) {
		_, err := queries.NewGetLedgerQuery(kernel.UUID{}, from, to)
		require.Error(t, err)
	})

	t.Run("rejects an inverted window", func(t *testing.T) {
		_, err := queries.NewGetLedgerQuery(actorID, to, from)
		require.Error(t, err)
	})

	t.Run("rejects an empty window", func(t *testing.T) {
		_, err := queries.NewGetLedgerQuery(actorID, from, from)
		require.Error(t, err)
	})
}

func TestNewGetMonthlySettlementsQuery(t *testing.T) {
	actorID := kernel.NewUUID()

	t.Run("accepts a valid month", func(t *testing.T) {
		query, err := queries.NewGetMonthlySettlementsQuery(actorID, 2025, time.March)

		require.NoError(t, err)
		assert.Equal(t, 2025, query.Year())
		assert.Equal(t, time.March, query.Month())
	})

	t.Run("rejects a zero actor id", func(t *testing.T) {
		_, err := queries.NewGetMonthlySettlementsQuery(kernel.UUID{}, 2025, time.March)
		require.Error(t, err)
	})

	t.Run("rejects an out of range year", func(t *testing.T) {
		_, err := queries.NewGetMonthlySettlementsQuery(actorID, 199, time.March)
		require.Error(t, err)
	})

	t.Run("rejects an out of range month", func(t *testing.T) {
		_, err := queries.NewGetMonthlySettlementsQuery(actorID, 2025, time.Month(13))
		require.Error(t, err)
	})
}

func TestNewGetWaitingOrdersQuery(t *testing.T) {
	t.Run("constructed query validates", func(t *testing.T) {
		query := queries.NewGetWaitingOrdersQuery()
		assert.NoError(t, query.Validate())
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var query queries.GetWaitingOrdersQuery
		assert.ErrorIs(t, query.Validate(), queries.ErrGetWaitingOrdersQueryIsNotConstructed)
	})
}

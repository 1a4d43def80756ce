package kernel_test

import (
	"testing"

	"carveyor/internal/core/domain/model/kernel"
	"carveyor/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUID(t *testing.T) {
	t.Run("new UUID is valid and unique", func(t *testing.T) {
		first := kernel.NewUUID()
		second := kernel.NewUUID()

		require.NoError(t, first.Validate())
		require.NoError(t, second.Validate())
		assert.False(t, first.IsEqual(second))
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var id kernel.UUID

		require.Error(t, id.Validate())
		assert.ErrorIs(t, id.Validate(), errs.ErrValueIsRequired)
	})

	t.Run("round trips through string", func(t *testing.T) {
		id := kernel.NewUUID()

		parsed, err := kernel.UUIDFromString(id.String())

		require.NoError(t, err)
		assert.True(t, id.IsEqual(parsed))
	})

	t.Run("rejects malformed string", func(t *testing.T) {
		_, err := kernel.UUIDFromString("not-a-uuid")

		require.Error(t, err)
	})

	t.Run("round trips through bytes", func(t *testing.T) {
		id := kernel.NewUUID()
		raw := id.Bytes()

		restored, err := kernel.UUIDFromBytes(raw[:])

		require.NoError(t, err)
		assert.True(t, id.IsEqual(restored))
	})

	t.Run("rejects nil UUID bytes", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes(make([]byte, 16))

		require.Error(t, err)
	})
}

func TestMoney(t *testing.T) {
	t.Run("creates non-negative amount", func(t *testing.T) {
		m, err := kernel.NewMoney(93500)

		require.NoError(t, err)
		assert.Equal(t, int64(93500), m.Int64())
	})

	t.Run("zero is allowed", func(t *testing.T) {
		m, err := kernel.NewMoney(0)

		require.NoError(t, err)
		assert.Equal(t, int64(0), m.Int64())
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		_, err := kernel.NewMoney(-1)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("add and compare", func(t *testing.T) {
		a, _ := kernel.NewMoney(85000)
		b, _ := kernel.NewMoney(8500)

		assert.Equal(t, int64(93500), a.Add(b).Int64())
		assert.True(t, b.LessThan(a))
		assert.False(t, a.LessThan(b))
	})
}

func TestAddress(t *testing.T) {
	t.Run("creates address with detail", func(t *testing.T) {
		a, err := kernel.NewAddress("123 Teheran-ro", "4F")

		require.NoError(t, err)
		assert.Equal(t, "123 Teheran-ro", a.Road())
		assert.Equal(t, "4F", a.Detail())
		assert.Equal(t, "123 Teheran-ro 4F", a.String())
	})

	t.Run("detail is optional", func(t *testing.T) {
		a, err := kernel.NewAddress("123 Teheran-ro", "")

		require.NoError(t, err)
		assert.Equal(t, "123 Teheran-ro", a.String())
	})

	t.Run("requires road address", func(t *testing.T) {
		_, err := kernel.NewAddress("", "4F")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var a kernel.Address

		require.Error(t, a.Validate())
	})
}

package kernel_test

import (
	"testing"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUUID_ProducesValidUniqueIDs(t *testing.T) {
	first := kernel.NewUUID()
	second := kernel.NewUUID()

	require.NoError(t, first.Validate())
	require.NoError(t, second.Validate())
	assert.False(t, first.IsEqual(second))
	assert.Regexp(t, `^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`,
		first.String())
}

func TestUUIDFromString(t *testing.T) {
	canonical := "550e8400-e29b-41d4-a716-446655440000"

	accepted := map[string]string{
		"canonical":  canonical,
		"braced":     "{550e8400-e29b-41d4-a716-446655440000}",
		"urn prefix": "urn:uuid:550e8400-e29b-41d4-a716-446655440000",
		"no hyphens": "550e8400e29b41d4a716446655440000",
	}
	for name, input := range accepted {
		t.Run(name, func(t *testing.T) {
			id, err := kernel.UUIDFromString(input)

			require.NoError(t, err)
			assert.Equal(t, canonical, id.String())
		})
	}

	rejected := []string{
		"",
		"not-a-uuid",
		"550e8400-e29b-41d4-a716",
		"550e8400-e29b-41d4-a716-446655440000-extra",
		"zzze8400-e29b-41d4-a716-446655440000",
	}
	for _, input := range rejected {
		_, err := kernel.UUIDFromString(input)
		require.Error(t, err, "input %q", input)
	}
}

func TestUUIDFromString_NilUUIDValidatesAsUnconstructed(t *testing.T) {
	id, err := kernel.UUIDFromString("00000000-0000-0000-0000-000000000000")

	require.NoError(t, err)
	require.Error(t, id.Validate())
	assert.ErrorIs(t, id.Validate(), errs.ErrValueIsRequired)
}

func TestUUIDFromBytes(t *testing.T) {
	canonical := "550e8400-e29b-41d4-a716-446655440000"
	raw, err := uuid.Parse(canonical)
	require.NoError(t, err)

	t.Run("round trips through binary storage form", func(t *testing.T) {
		id, err := kernel.UUIDFromBytes(raw[:])

		require.NoError(t, err)
		assert.Equal(t, canonical, id.String())
		assert.Equal(t, raw, id.Bytes())
	})

	t.Run("rejects a slice that is not 16 bytes", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes([]byte{0x55, 0x0e, 0x84})

		require.Error(t, err)
	})

	t.Run("rejects the nil UUID", func(t *testing.T) {
		// A zeroed column must not reconstruct into a usable identity.
		_, err := kernel.UUIDFromBytes(make([]byte, 16))

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestUUID_IsEqual(t *testing.T) {
	canonical := "550e8400-e29b-41d4-a716-446655440000"
	first, err := kernel.UUIDFromString(canonical)
	require.NoError(t, err)
	second, err := kernel.UUIDFromString(canonical)
	require.NoError(t, err)

	assert.True(t, first.IsEqual(second))
	assert.True(t, second.IsEqual(first))
	assert.False(t, first.IsEqual(kernel.NewUUID()))
}

func TestUUID_Validate_ZeroValue(t *testing.T) {
	var id kernel.UUID

	err := id.Validate()

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

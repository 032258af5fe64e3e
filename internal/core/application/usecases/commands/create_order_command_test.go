package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand(t *testing.T) {
	t.Run("valid command", func(t *testing.T) {
		reference := "frente al parque"
		cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), nil,
			"Ana Maria", "3001234567", "Calle 10 # 5-23", &reference, nil, 50000, 20)

		require.NoError(t, err)
		assert.NoError(t, cmd.Validate())
		assert.Equal(t, int64(50000), cmd.OrderValue().Amount())
		require.NotNil(t, cmd.AddressReference())
		assert.Equal(t, reference, *cmd.AddressReference())
	})

	t.Run("rejects empty client fields", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), nil,
			"", "", "", nil, nil, 50000, 20)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects non-positive order value", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), nil,
			"Ana", "3001234567", "Calle 10", nil, nil, 0, 20)

		require.Error(t, err)
	})

	t.Run("rejects percentage out of range", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), nil,
			"Ana", "3001234567", "Calle 10", nil, nil, 50000, 130)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("zero value command fails validation", func(t *testing.T) {
		var cmd commands.CreateOrderCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
	})
}

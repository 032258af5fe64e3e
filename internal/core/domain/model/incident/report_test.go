package incident_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/incident"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReport(t *testing.T) {
	now := time.Now().UTC()

	t.Run("records the problem", func(t *testing.T) {
		orderID := kernel.NewUUID()
		reporter := kernel.NewUUID()

		r, err := incident.NewReport(kernel.NewUUID(), orderID, reporter,
			"cliente no contesta el teléfono", now)

		require.NoError(t, err)
		assert.True(t, r.OrderID().IsEqual(orderID))
		assert.True(t, r.ReportedBy().IsEqual(reporter))
		assert.Equal(t, "cliente no contesta el teléfono", r.Description())
		assert.Equal(t, now, r.CreatedAt())
		assert.NoError(t, r.Validate())
	})

	t.Run("rejects an empty description", func(t *testing.T) {
		_, err := incident.NewReport(kernel.NewUUID(), kernel.NewUUID(),
			kernel.NewUUID(), "", now)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects missing ids", func(t *testing.T) {
		_, err := incident.NewReport(kernel.UUID{}, kernel.UUID{}, kernel.UUID{},
			"dirección incompleta", now)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero value report fails validation", func(t *testing.T) {
		var r incident.Report
		require.ErrorIs(t, r.Validate(), incident.ErrReportIsNotConstructed)
	})
}

func TestRestoreReport(t *testing.T) {
	createdAt := time.Date(2026, 2, 3, 9, 15, 0, 0, time.UTC)

	r, err := incident.RestoreReport(kernel.NewUUID(), kernel.NewUUID(),
		kernel.NewUUID(), "restaurante cerrado", createdAt)

	require.NoError(t, err)
	assert.Equal(t, createdAt, r.CreatedAt())
}

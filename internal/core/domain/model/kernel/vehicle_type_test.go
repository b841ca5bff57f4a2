package kernel_test

import (
	"testing"

	"deliveryplanner/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVehicleType(t *testing.T) {
	for _, vt := range kernel.VehicleTypes() {
		t.Run(vt.String(), func(t *testing.T) {
			require.NoError(t, vt.Validate())

			parsed, err := kernel.ParseVehicleType(vt.String())
			require.NoError(t, err)
			assert.Equal(t, vt, parsed)
		})
	}

	t.Run("unknown is invalid", func(t *testing.T) {
		require.Error(t, kernel.UnknownVehicle.Validate())
		assert.Equal(t, "unknown", kernel.VehicleType(42).String())

		_, err := kernel.ParseVehicleType("rocket")
		require.Error(t, err)
	})
}

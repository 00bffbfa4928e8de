package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/negocio-erp-api/internal/domain/inventory"
)

// ──────────────────────────────────────────────────────────────────────────────
// ComputeStockLevel — clasificación pura de niveles de inventario.
// El orden de evaluación importa: critical gana a low, y ambos ganan a high.
// ──────────────────────────────────────────────────────────────────────────────

func TestComputeStockLevel_Clasificacion(t *testing.T) {
	cases := []struct {
		name     string
		quantity int64
		minStock int64
		maxStock int64
		want     string
	}{
		{"igual al mínimo es critical", 5, 10, 100, inventory.LevelCritical},
		{"por debajo del mínimo es critical", 10, 10, 100, inventory.LevelCritical},
		{"cero con mínimo positivo es critical", 0, 10, 100, inventory.LevelCritical},
		{"entre min y 2*min es low", 15, 10, 100, inventory.LevelLow},
		{"exactamente 2*min es low", 20, 10, 100, inventory.LevelLow},
		{"zona media es normal", 50, 10, 100, inventory.LevelNormal},
		{"90% del máximo es high", 90, 10, 100, inventory.LevelHigh},
		{"por encima del máximo es high", 120, 10, 100, inventory.LevelHigh},
		{"justo bajo el 90% es normal", 89, 10, 100, inventory.LevelNormal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := inventory.ComputeStockLevel(tc.quantity, tc.minStock, tc.maxStock)
			assert.Equal(t, tc.want, got)
		})
	}
}

// Un mínimo de cero hace que solo quantity==0 sea critical.
func TestComputeStockLevel_MinimoCero(t *testing.T) {
	assert.Equal(t, inventory.LevelCritical, inventory.ComputeStockLevel(0, 0, 100))
	assert.Equal(t, inventory.LevelHigh, inventory.ComputeStockLevel(95, 0, 100))
	assert.Equal(t, inventory.LevelNormal, inventory.ComputeStockLevel(50, 0, 100))
}

// MaxStock sin configurar (cero) no debe clasificar todo como high ni dividir:
// con existencias por encima de low se reporta high, sin existencias no.
func TestComputeStockLevel_MaximoCero(t *testing.T) {
	assert.Equal(t, inventory.LevelHigh, inventory.ComputeStockLevel(30, 10, 0),
		"con max sin configurar, stock holgado se reporta high")
	assert.Equal(t, inventory.LevelCritical, inventory.ComputeStockLevel(0, 10, 0))
	assert.Equal(t, inventory.LevelLow, inventory.ComputeStockLevel(15, 10, 0))
}

package inventory

// Niveles de stock para alertas (no se persisten).
const (
	LevelCritical = "critical"
	LevelLow      = "low"
	LevelHigh     = "high"
	LevelNormal   = "normal"
)

// ComputeStockLevel clasifica el stock de un producto (servicio de dominio).
// Orden de evaluación: critical, low, high, normal; un producto que cumple
// critical y low se reporta critical.
//
//	critical: quantity <= minStock
//	low:      quantity <= 2*minStock
//	high:     quantity >= 0.9*maxStock
//
// MaxStock == 0 no debe dividir ni clasificar todo como high: en ese caso
// solo es high si quantity > 0.
func ComputeStockLevel(quantity, minStock, maxStock int64) string {
	if quantity <= minStock {
		return LevelCritical
	}
	if quantity <= 2*minStock {
		return LevelLow
	}
	if maxStock == 0 {
		if quantity > 0 {
			return LevelHigh
		}
		return LevelNormal
	}
	// quantity >= 0.9*maxStock, en aritmética entera
	if quantity*10 >= maxStock*9 {
		return LevelHigh
	}
	return LevelNormal
}

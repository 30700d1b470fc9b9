package constants

// Step costs: orthogonal = 100, diagonal = 140 (≈100√2, rounded down)
const (
	CostOrthogonal = 100
	CostDiagonal   = 140

	// CostUnreachable seeds the per-cell best-F table
	CostUnreachable = 1<<31 - 1
)

package registry

// CalculateTotalPrice sums item prices in order. An empty slice totals 0.
// Negative prices are summed like any other.
func CalculateTotalPrice(items []Item) float64 {
	var total float64
	for _, it := range items {
		total += it.Price
	}
	return total
}

package booking

// Pricing is billed in whole-month increments rounded up: a 1-day stay
// costs one full month, a 31-day stay costs two. This is the observed
// business rule, reproduced exactly.

// BilledMonths returns ceil(days / 30).
func BilledMonths(days int) int {
	return (days + 29) / 30
}

// TotalPrice computes the snapshot price for a validated stay against a
// property's monthly rate.
func TotalPrice(days int, monthlyPrice float64) float64 {
	return float64(BilledMonths(days)) * monthlyPrice
}

package domain

// Percent returns part/whole*100 clamped to [0, 100]. A zero whole yields 0.
func Percent(part, whole int64) float64 {
	if whole <= 0 || part <= 0 {
		return 0
	}
	p := float64(part) / float64(whole) * 100
	if p > 100 {
		return 100
	}
	return p
}

// Ratio returns num/den, or 0 when den is not positive.
func Ratio(num float64, den int64) float64 {
	if den <= 0 {
		return 0
	}
	return num / float64(den)
}

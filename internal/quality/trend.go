package quality

// Trend is the ordinary least-squares slope of the scores against their
// sequence index. Records are treated as equally spaced; wall-clock gaps
// between them carry no weight.
func Trend(scores []float64) float64 {
	n := len(scores)
	if n < 2 {
		return 0
	}

	fn := float64(n)
	sumX := fn * (fn + 1) / 2
	sumX2 := fn * (fn + 1) * (2*fn + 1) / 6
	var sumY, sumXY float64
	for i, score := range scores {
		sumY += score
		sumXY += score * float64(i+1)
	}

	return (fn*sumXY - sumX*sumY) / (fn*sumX2 - sumX*sumX)
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

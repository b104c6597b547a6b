package secrets

import "math"

// shannonEntropy computes the Shannon entropy of a string in bits per
// character. Random base64 material sits around 5-6; English words and
// placeholder values like "your-api-key-here" sit well under 4.
func shannonEntropy(s string) float64 {
	if s == "" {
		return 0
	}

	var counts [256]int
	for i := 0; i < len(s); i++ {
		counts[s[i]]++
	}

	entropy := 0.0
	length := float64(len(s))
	for _, count := range counts {
		if count == 0 {
			continue
		}
		p := float64(count) / length
		entropy -= p * math.Log2(p)
	}
	return entropy
}

package efa

// Base26 returns the bijective base-26 letters for n >= 1: 1 is A, 26 is Z, 27 is AA
func Base26(n int) string {
	var out []byte
	for n > 0 {
		n--
		out = append(out, byte('A'+n%26))
		n /= 26
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return string(out)
}

// FactorLabels returns "Factor A", "Factor B", ... for k factors
func FactorLabels(k int) []string {
	labels := make([]string, k)
	for i := range labels {
		labels[i] = "Factor " + Base26(i+1)
	}
	return labels
}

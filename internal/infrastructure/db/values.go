package db

import "strconv"

// Field values cross the capability store as strings; these keep the
// encoding in one place.

func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'g', -1, 64)
}

func parseWeight(s string) float64 {
	w, _ := strconv.ParseFloat(s, 64)
	return w
}

func formatInt(n int) string {
	return strconv.Itoa(n)
}

func parseInt(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func parseBool(s string) bool {
	return s == "true" || s == "1"
}

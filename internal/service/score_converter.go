package service

import "math"

// Percentage is score/total*100 rounded to two decimals; zero questions
// yields 0 rather than a division fault.
func Percentage(score, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(score)/float64(total)*100*100) / 100
}

// LetterGrade follows the five-point university scale used on result slips.
func LetterGrade(percentage float64) string {
	switch {
	case percentage >= 70:
		return "A"
	case percentage >= 60:
		return "B"
	case percentage >= 50:
		return "C"
	case percentage >= 45:
		return "D"
	case percentage >= 40:
		return "E"
	default:
		return "F"
	}
}

package utils

import (
	"math"
	"time"
)

// CalculateRank is the Hacker News gravity formula: (P-1) / (T+2)^G.
// P is the post's vote score (sum of directions, computed from the votes
// table at query time), T hours since submission, G the gravity.
func CalculateRank(score int, createdAt time.Time) float64 {
	p := float64(score)
	t := time.Since(createdAt).Hours()
	g := 1.8
	return (p - 1.0) / math.Pow(t+2.0, g)
}

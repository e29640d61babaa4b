package utils

import (
	"testing"
	"time"
)

func TestCalculateRankOrdersByFreshness(t *testing.T) {
	now := time.Now()
	fresh := CalculateRank(10, now.Add(-1*time.Hour))
	stale := CalculateRank(10, now.Add(-48*time.Hour))
	if fresh <= stale {
		t.Errorf("fresh rank %f should beat stale rank %f at equal score", fresh, stale)
	}
}

func TestCalculateRankOrdersByScore(t *testing.T) {
	created := time.Now().Add(-3 * time.Hour)
	high := CalculateRank(50, created)
	low := CalculateRank(2, created)
	if high <= low {
		t.Errorf("rank %f for score 50 should beat %f for score 2", high, low)
	}
}

func TestCalculateRankNegativeScore(t *testing.T) {
	// Heavily downvoted posts sink below zero
	rank := CalculateRank(-5, time.Now().Add(-1*time.Hour))
	if rank >= 0 {
		t.Errorf("rank = %f, want negative", rank)
	}
}

// ABOUTME: Readiness scoring engine, a pure function over daily stats.
// ABOUTME: Blends sleep, recovery, activity, and HRV into one 0-100 score.
package scoring

import (
	"math"
	"time"

	"github.com/harperreed/readiness/internal/models"
)

// Recommendation text, tiered by overall score.
const (
	RecommendationBaseline = "Moderate activity recommended"
	RecommendationHigh     = "Great day for challenging goals!"
	RecommendationMedium   = "Good for moderate activity"
	RecommendationLow      = "Consider lighter activities today"
)

const baseConfidence = 0.3

// Score computes the readiness score for a date from that day's stats and
// the previous day's (needed only for the HRV trend). Either input may be
// nil; with no stats at all the baseline score is returned.
func Score(date string, current, previous *models.DailyStats) *models.DailyReadinessScore {
	result := &models.DailyReadinessScore{
		Date:                    date,
		HabitRecommendations:    []string{},
		ActivityRecommendations: []string{},
		DataSourcesUsed:         []models.DataSource{},
		CreatedAt:               time.Now(),
	}

	confidence := baseConfidence
	var subScores []int

	if current != nil {
		if hours, ok := current.SleepHours(); ok {
			score := sleepScore(hours)
			result.SleepScore = &score
			subScores = append(subScores, score)
			confidence += 0.20
		}
		if current.RecoveryScore != nil {
			score := int(math.Round(*current.RecoveryScore))
			result.RecoveryScore = &score
			subScores = append(subScores, score)
			confidence += 0.15
		}
		if current.Steps != nil {
			score := activityScore(*current.Steps)
			result.ActivityScore = &score
			subScores = append(subScores, score)
			confidence += 0.15
		}
		// HRV trend needs both days; a gap yields no sub-score.
		if current.HRV != nil && previous != nil && previous.HRV != nil {
			score := hrvScore(*current.HRV - *previous.HRV)
			result.HRVScore = &score
			subScores = append(subScores, score)
			confidence += 0.15
		}
		result.DataSourcesUsed = append(result.DataSourcesUsed, current.Sources...)
	}

	if len(subScores) == 0 {
		result.OverallScore = 50
		result.Recommendation = RecommendationBaseline
		result.ConfidenceLevel = baseConfidence
		return result
	}

	sum := 0
	for _, s := range subScores {
		sum += s
	}
	result.OverallScore = int(math.Round(float64(sum) / float64(len(subScores))))
	result.ConfidenceLevel = clamp(confidence, 0.0, 1.0)

	switch {
	case result.OverallScore >= 80:
		result.Recommendation = RecommendationHigh
		result.HabitRecommendations = append(result.HabitRecommendations, "Perfect time for your hardest habits")
		result.ActivityRecommendations = append(result.ActivityRecommendations, "High-intensity workout recommended")
	case result.OverallScore >= 60:
		result.Recommendation = RecommendationMedium
		result.HabitRecommendations = append(result.HabitRecommendations, "Focus on consistent habit completion")
		result.ActivityRecommendations = append(result.ActivityRecommendations, "Moderate workout or active recovery")
	default:
		result.Recommendation = RecommendationLow
		result.HabitRecommendations = append(result.HabitRecommendations, "Prioritize essential habits only")
		result.ActivityRecommendations = append(result.ActivityRecommendations, "Rest day or light stretching")
	}

	// Poor sleep earns a bedtime hint regardless of the overall tier.
	if result.SleepScore != nil && *result.SleepScore < 60 {
		result.HabitRecommendations = append(result.HabitRecommendations, "Earlier bedtime tonight recommended")
	}

	return result
}

// sleepScore rates sleep duration. 7-9 hours is the target band; anything
// outside it scores by how far short the night fell.
func sleepScore(hours float64) int {
	switch {
	case hours >= 7 && hours <= 9:
		return 90
	case hours >= 6:
		return 70
	default:
		return 40
	}
}

// activityScore rates daily step count against common step goals.
func activityScore(steps int) int {
	switch {
	case steps >= 10000:
		return 100
	case steps >= 7500:
		return 80
	case steps >= 5000:
		return 60
	default:
		return 40
	}
}

// hrvScore rates the day-over-day HRV delta. Rising HRV signals recovery;
// a sharp drop signals accumulated strain.
func hrvScore(delta float64) int {
	switch {
	case delta > 5:
		return 90
	case delta > 0:
		return 70
	case delta > -5:
		return 50
	default:
		return 30
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package service

import (
	"math"
	"sort"
	"time"

	"learnai_backend/internal/model"
)

const (
	behaviorWindow = 30 * 24 * time.Hour
	weeksPerMonth  = 4.3
	trendMargin    = 10.0
)

// AnalyzeBehavior 分析最近30天的活动：内容偏好、学习节奏和测验表现
func AnalyzeBehavior(activities []model.Activity, now time.Time) model.BehaviorInsights {
	since := now.Add(-behaviorWindow)
	recent := make([]model.Activity, 0, len(activities))
	for _, a := range activities {
		if !a.Timestamp.Before(since) {
			recent = append(recent, a)
		}
	}
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Timestamp.Before(recent[j].Timestamp)
	})

	usage := contentUsage(recent)
	insights := model.BehaviorInsights{
		ContentUsage: usage,
		Distribution: make(map[model.ContentType]float64, len(usage)),
		MostUsed:     model.ContentVideo,
	}

	total, best := 0, 0
	for _, u := range usage {
		total += u.Count
		if u.Count > best {
			best = u.Count
			insights.MostUsed = u.ContentType
		}
	}
	for _, u := range usage {
		insights.Distribution[u.ContentType] = round1(float64(u.Count) / float64(total) * 100)
	}

	hours := 0.0
	for _, a := range recent {
		if a.Type == model.ActivityLearningTime && a.Details.Hours != nil {
			hours += *a.Details.Hours
		}
	}
	perWeek := hours / weeksPerMonth
	insights.HoursPerWeek = round1(perWeek)
	switch {
	case perWeek >= 10:
		insights.LearningPace = model.PaceIntensive
	case perWeek >= 5:
		insights.LearningPace = model.PaceModerate
	default:
		insights.LearningPace = model.PaceSlow
	}

	insights.QuizPerformance = quizPerformance(recent)
	return insights
}

// contentUsage 按首次出现顺序统计内容类型
func contentUsage(activities []model.Activity) []model.ContentTypeCount {
	usage := make([]model.ContentTypeCount, 0, 4)
	index := make(map[model.ContentType]int)
	for _, a := range activities {
		ct := a.Details.ContentType
		if !ct.Valid() {
			continue
		}
		i, ok := index[ct]
		if !ok {
			i = len(usage)
			index[ct] = i
			usage = append(usage, model.ContentTypeCount{ContentType: ct})
		}
		usage[i].Count++
	}
	return usage
}

// quizPerformance activities 需按时间升序
func quizPerformance(activities []model.Activity) model.QuizPerformance {
	scores := make([]float64, 0)
	for _, a := range activities {
		if a.Type == model.ActivityQuizCompleted && a.Details.Score != nil {
			scores = append(scores, *a.Details.Score)
		}
	}
	perf := model.QuizPerformance{Count: len(scores), Trend: model.TrendStable, Scores: scores}
	if len(scores) == 0 {
		return perf
	}
	perf.Average = round1(mean(scores))

	mid := len(scores) / 2
	if mid > 0 {
		first, second := mean(scores[:mid]), mean(scores[mid:])
		switch {
		case second > first+trendMargin:
			perf.Trend = model.TrendImproving
		case second < first-trendMargin:
			perf.Trend = model.TrendDeclining
		}
	}
	return perf
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

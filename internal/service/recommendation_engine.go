package service

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"learnai_backend/internal/model"
)

const (
	DefaultRecommendationLimit = 6

	weightInterest   = 30
	weightSkill      = 25
	weightContent    = 20
	weightProgress   = 15
	weightPopularity = 10

	// 因子原始分超过该值才生成推荐理由
	reasonThreshold = 0.7

	popularityEnrollmentCap = 2000.0
)

var contentTypeScores = map[model.ContentType]float64{
	model.ContentVideo:       0.9,
	model.ContentText:        0.7,
	model.ContentInteractive: 0.85,
	model.ContentProject:     0.8,
}

const defaultContentScore = 0.7

// RecommendationEngine 对课程目录做加权多因子打分，纯函数，无状态
type RecommendationEngine struct {
	Limit int
}

// Rank 按总分降序返回前 Limit 门课程，同分保持目录顺序
func (e RecommendationEngine) Rank(profile model.LearningProfile, courses []model.Course) []model.RecommendationResult {
	results := make([]model.RecommendationResult, 0, len(courses))
	for _, c := range courses {
		results = append(results, e.Score(profile, c))
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	limit := e.Limit
	if limit <= 0 {
		limit = DefaultRecommendationLimit
	}
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

func (e RecommendationEngine) Score(profile model.LearningProfile, course model.Course) model.RecommendationResult {
	factors := []model.FactorScore{
		{Name: model.FactorInterest, Score: clamp01(InterestMatch(course, profile.Interests)), Weight: weightInterest},
		{Name: model.FactorSkill, Score: clamp01(LevelMatch(course, profile.SkillLevel)), Weight: weightSkill},
		{Name: model.FactorContent, Score: clamp01(ContentMatch(profile.PreferredContentType)), Weight: weightContent},
		{Name: model.FactorProgress, Score: clamp01(ProgressFactor(course)), Weight: weightProgress},
		{Name: model.FactorPopularity, Score: clamp01(PopularityFactor(course)), Weight: weightPopularity},
	}

	total := 0.0
	for _, f := range factors {
		total += f.Score * f.Weight
	}

	return model.RecommendationResult{
		Course:  course,
		Score:   math.Min(math.Max(total, 0), 100),
		Factors: factors,
		Reasons: Reasons(course, factors),
	}
}

// courseKeywords 标题整体作为一个关键词，不拆词
func courseKeywords(course model.Course) []string {
	keywords := make([]string, 0, len(course.Topics)+2)
	keywords = append(keywords, course.Topics...)
	keywords = append(keywords, course.Category, course.Title)

	out := keywords[:0]
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			out = append(out, k)
		}
	}
	return out
}

// containsWords 报告 phrase 的词序列是否完整出现在 text 的词序列中
func containsWords(text, phrase string) bool {
	words, target := strings.Fields(text), strings.Fields(phrase)
	if len(target) == 0 || len(target) > len(words) {
		return false
	}
	for i := 0; i+len(target) <= len(words); i++ {
		match := true
		for j, w := range target {
			if words[i+j] != w {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// InterestMatch 每个兴趣最多计一次，无兴趣时为 0.5
// 关键词包含兴趣按子串匹配；兴趣包含关键词时必须是完整的词
func InterestMatch(course model.Course, interests []string) float64 {
	interests = model.NormalizeInterests(interests)
	if len(interests) == 0 {
		return 0.5
	}

	keywords := courseKeywords(course)
	matches := 0
	for _, interest := range interests {
		lower := strings.ToLower(interest)
		for _, k := range keywords {
			if strings.Contains(k, lower) || containsWords(lower, k) {
				matches++
				break
			}
		}
	}
	return math.Min(float64(matches)/float64(len(interests)), 1)
}

func LevelMatch(course model.Course, userLevel model.Level) float64 {
	diff := course.Level.Rank(2) - userLevel.Rank(1)
	if diff < 0 {
		diff = -diff
	}
	switch diff {
	case 0:
		return 1
	case 1:
		return 0.7
	default:
		return 0.4
	}
}

// ContentMatch 静态查表，与课程本身无关
func ContentMatch(preferred model.ContentType) float64 {
	if s, ok := contentTypeScores[preferred]; ok {
		return s
	}
	return defaultContentScore
}

func ProgressFactor(course model.Course) float64 {
	switch {
	case course.Progress > 0 && course.Progress < 100:
		return 0.9
	case course.Progress == 0:
		return 0.8
	default:
		return 0.3
	}
}

func PopularityFactor(course model.Course) float64 {
	rating := course.Rating / 5
	enrollment := math.Min(float64(course.Enrolled)/popularityEnrollmentCap, 1)
	return rating*0.6 + enrollment*0.4
}

// Reasons 按因子顺序生成推荐理由
func Reasons(course model.Course, factors []model.FactorScore) []string {
	reasons := make([]string, 0, len(factors))
	for _, f := range factors {
		if f.Score <= reasonThreshold {
			continue
		}
		switch f.Name {
		case model.FactorInterest:
			reasons = append(reasons, "Matches your interest in "+course.Category)
		case model.FactorSkill:
			reasons = append(reasons, fmt.Sprintf("Perfect for your %s skill level", strings.ToLower(string(course.Level))))
		case model.FactorContent:
			reasons = append(reasons, "Delivered in your preferred format")
		case model.FactorProgress:
			reasons = append(reasons, "Continue your progress in this course")
		case model.FactorPopularity:
			reasons = append(reasons, fmt.Sprintf("Highly rated by %d+ learners", course.Enrolled))
		}
	}
	if len(reasons) == 0 {
		return []string{"Recommended based on your learning profile"}
	}
	return reasons
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

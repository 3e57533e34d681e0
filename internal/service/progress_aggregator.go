package service

import (
	"math"

	"learnai_backend/internal/config"
	"learnai_backend/internal/model"
)

// ProgressAggregator 根据一条活动更新学习进度，不修改入参
type ProgressAggregator struct {
	// QuizAverageMode 为 config.QuizAverageRounded 或 config.QuizAverageExact
	QuizAverageMode string
}

func (a ProgressAggregator) Apply(p model.Progress, t model.ActivityType, d model.ActivityDetails) model.Progress {
	switch t {
	case model.ActivityLessonCompleted:
		p.LessonsCompleted++
	case model.ActivityQuizCompleted:
		p.QuizzesTaken++
		if d.Score != nil {
			score := *d.Score
			p.QuizScoreSum += score
			p.QuizScoreCount++
			if a.QuizAverageMode == config.QuizAverageExact {
				p.QuizAverage = roundHalfUp(p.QuizScoreSum / float64(p.QuizScoreCount))
			} else {
				// 每次更新都取整，n 包含没有分数的测验
				n := float64(p.QuizzesTaken)
				p.QuizAverage = roundHalfUp((float64(p.QuizAverage)*(n-1) + score) / n)
			}
		}
	case model.ActivityCourseEnrolled:
		p.CoursesEnrolled++
	case model.ActivityLearningTime:
		if d.Hours != nil {
			p.TotalLearningHours += *d.Hours
		}
	}
	return p
}

// roundHalfUp .5 向上取整，与前端 Math.round 一致
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

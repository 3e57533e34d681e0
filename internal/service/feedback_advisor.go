package service

import (
	"fmt"
	"time"

	"learnai_backend/internal/model"
)

const (
	DefaultFeedbackWindow = 20

	milestoneEvery      = 10
	excellenceThreshold = 85
	declineSampleSize   = 5
	declineMinQuizzes   = 3
	declineMargin       = 10.0
	inactiveDays        = 3
	efficiencyHours     = 20
	efficiencyLessons   = 10
)

// AdviseFeedback 根据进度和最近活动（按时间倒序）生成学习建议，规则顺序固定
func AdviseFeedback(progress model.Progress, recent []model.Activity, now time.Time) []model.FeedbackItem {
	feedback := make([]model.FeedbackItem, 0)

	if progress.LessonsCompleted > 0 && progress.LessonsCompleted%milestoneEvery == 0 {
		feedback = append(feedback, model.FeedbackItem{
			Type:    model.FeedbackSuccess,
			Title:   "🎉 Milestone Achieved!",
			Message: fmt.Sprintf("Congratulations! You've completed %d lessons. Keep up the great momentum!", progress.LessonsCompleted),
		})
	}

	if progress.QuizAverage >= excellenceThreshold {
		feedback = append(feedback, model.FeedbackItem{
			Type:    model.FeedbackSuccess,
			Title:   "⭐ Excellent Performance!",
			Message: fmt.Sprintf("Your quiz average of %d%% shows exceptional understanding of the material.", progress.QuizAverage),
		})
	}

	scores := make([]float64, 0, declineSampleSize)
	for _, a := range recent {
		if len(scores) == declineSampleSize {
			break
		}
		if a.Type == model.ActivityQuizCompleted && a.Details.Score != nil {
			scores = append(scores, *a.Details.Score)
		}
	}
	if len(scores) >= declineMinQuizzes && mean(scores) < float64(progress.QuizAverage)-declineMargin {
		feedback = append(feedback, model.FeedbackItem{
			Type:    model.FeedbackWarning,
			Title:   "⚠️ Performance Decline",
			Message: "Your recent quiz scores have dropped. Consider reviewing previous lessons or taking a short break.",
		})
	}

	if len(recent) > 0 {
		days := int(now.Sub(recent[0].Timestamp) / (24 * time.Hour))
		if days > inactiveDays {
			feedback = append(feedback, model.FeedbackItem{
				Type:    model.FeedbackInfo,
				Title:   "💡 Stay Consistent",
				Message: fmt.Sprintf("It's been %d days since your last activity. Regular learning helps maintain momentum and improves retention.", days),
			})
		}
	}

	if progress.TotalLearningHours > efficiencyHours && progress.LessonsCompleted < efficiencyLessons {
		feedback = append(feedback, model.FeedbackItem{
			Type:    model.FeedbackInfo,
			Title:   "📊 Learning Efficiency",
			Message: "You're spending significant time on lessons. Consider exploring different learning formats or asking for help if concepts are challenging.",
		})
	}

	return feedback
}

package model

// ContentTypeCount 内容类型使用次数，切片顺序决定并列时的选择
type ContentTypeCount struct {
	ContentType ContentType `json:"contentType"`
	Count       int         `json:"count"`
}

// ActivityData 画像自适应的输入
// swagger:model ActivityData
type ActivityData struct {
	ContentTypeUsage []ContentTypeCount `json:"contentTypeUsage"`
	QuizPerformance  []float64          `json:"quizPerformance"`
	CompletedCourses []string           `json:"completedCourses"`
}

type QuizTrend string

const (
	TrendImproving QuizTrend = "improving"
	TrendDeclining QuizTrend = "declining"
	TrendStable    QuizTrend = "stable"
)

// swagger:model QuizPerformance
type QuizPerformance struct {
	Average float64   `json:"average"`
	Count   int       `json:"count"`
	Trend   QuizTrend `json:"trend"`
	Scores  []float64 `json:"-"`
}

// BehaviorInsights 最近30天的学习行为分析结果
// swagger:model BehaviorInsights
type BehaviorInsights struct {
	ContentUsage    []ContentTypeCount      `json:"contentUsage"`
	Distribution    map[ContentType]float64 `json:"distribution"`
	MostUsed        ContentType             `json:"mostUsed"`
	LearningPace    LearningPace            `json:"learningPace"`
	HoursPerWeek    float64                 `json:"hoursPerWeek"`
	QuizPerformance QuizPerformance         `json:"quizPerformance"`
}

package model

import "time"

// ActivityDetails 活动附带的数据，不同类型使用不同字段
// swagger:model ActivityDetails
type ActivityDetails struct {
	Score       *float64    `json:"score,omitempty"` // quiz_completed
	Hours       *float64    `json:"hours,omitempty"` // learning_time
	CourseID    string      `json:"courseId,omitempty"`
	ContentType ContentType `json:"contentType,omitempty"`
	Correct     *bool       `json:"correct,omitempty"`
}

// swagger:model Activity
type Activity struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	Type      ActivityType    `json:"type"`
	Details   ActivityDetails `json:"details"`
	Timestamp time.Time       `json:"timestamp"`
}

// swagger:model DayProgress
type DayProgress struct {
	Lessons int     `json:"lessons"`
	Quizzes int     `json:"quizzes"`
	Hours   float64 `json:"hours"`
}

// WeekdayLabels 图表按周一到周日展示
var WeekdayLabels = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// swagger:model DayProgressPoint
type DayProgressPoint struct {
	Day string `json:"day"`
	DayProgress
}

// swagger:model WeeklyProgress
type WeeklyProgress struct {
	Days  map[string]DayProgress `json:"days"`
	Chart []DayProgressPoint     `json:"chart"`
}

// swagger:model ProgressStats
type ProgressStats struct {
	CoursesEnrolled  int `json:"coursesEnrolled"`
	LessonsCompleted int `json:"lessonsCompleted"`
	QuizzesTaken     int `json:"quizzesTaken"`
	QuizAverage      int `json:"quizAverage"`
	LearningHours    int `json:"learningHours"`
}

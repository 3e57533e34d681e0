package model

import "strings"

// Level 课程难度 / 用户技能等级
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

var levelRanks = map[Level]int{
	LevelBeginner:     1,
	LevelIntermediate: 2,
	LevelAdvanced:     3,
}

// ParseLevel 不区分大小写，种子数据里的等级是首字母大写的
func ParseLevel(s string) (Level, bool) {
	l := Level(strings.ToLower(strings.TrimSpace(s)))
	_, ok := levelRanks[l]
	return l, ok
}

func (l Level) Valid() bool {
	_, ok := ParseLevel(string(l))
	return ok
}

// Rank 返回 1/2/3，无法识别时返回 def
func (l Level) Rank(def int) int {
	parsed, ok := ParseLevel(string(l))
	if !ok {
		return def
	}
	return levelRanks[parsed]
}

// ContentType 用户偏好的学习内容形式
type ContentType string

const (
	ContentVideo       ContentType = "video"
	ContentText        ContentType = "text"
	ContentInteractive ContentType = "interactive"
	ContentProject     ContentType = "project"
)

func (c ContentType) Valid() bool {
	switch c {
	case ContentVideo, ContentText, ContentInteractive, ContentProject:
		return true
	}
	return false
}

type ActivityType string

const (
	ActivityLessonCompleted ActivityType = "lesson_completed"
	ActivityQuizCompleted   ActivityType = "quiz_completed"
	ActivityCourseEnrolled  ActivityType = "course_enrolled"
	ActivityLearningTime    ActivityType = "learning_time"
	ActivityContentViewed   ActivityType = "content_viewed"
)

func (t ActivityType) Valid() bool {
	switch t {
	case ActivityLessonCompleted, ActivityQuizCompleted, ActivityCourseEnrolled, ActivityLearningTime, ActivityContentViewed:
		return true
	}
	return false
}

type LearningStyle string

const (
	StyleVisual      LearningStyle = "visual"
	StyleAuditory    LearningStyle = "auditory"
	StyleKinesthetic LearningStyle = "kinesthetic"
	StyleReading     LearningStyle = "reading"
)

func (s LearningStyle) Valid() bool {
	switch s {
	case StyleVisual, StyleAuditory, StyleKinesthetic, StyleReading:
		return true
	}
	return false
}

type LearningPace string

const (
	PaceSlow      LearningPace = "slow"
	PaceModerate  LearningPace = "moderate"
	PaceIntensive LearningPace = "intensive"
)

func (p LearningPace) Valid() bool {
	switch p {
	case PaceSlow, PaceModerate, PaceIntensive:
		return true
	}
	return false
}

type FeedbackType string

const (
	FeedbackSuccess FeedbackType = "success"
	FeedbackWarning FeedbackType = "warning"
	FeedbackInfo    FeedbackType = "info"
)

// FactorName 推荐打分的五个维度，顺序即评估顺序
type FactorName string

const (
	FactorInterest   FactorName = "Interest Match"
	FactorSkill      FactorName = "Skill Level"
	FactorContent    FactorName = "Content Type"
	FactorProgress   FactorName = "Progress Factor"
	FactorPopularity FactorName = "Popularity"
)

package model

import (
	"strings"
	"time"
)

// swagger:model LearningProfile
type LearningProfile struct {
	LearningStyle        LearningStyle `json:"learningStyle"`
	SkillLevel           Level         `json:"skillLevel"`
	Interests            []string      `json:"interests"`
	LearningPace         LearningPace  `json:"learningPace"`
	PreferredContentType ContentType   `json:"preferredContentType"`
}

// swagger:model Progress
type Progress struct {
	CoursesEnrolled    int     `json:"coursesEnrolled"`
	LessonsCompleted   int     `json:"lessonsCompleted"`
	QuizzesTaken       int     `json:"quizzesTaken"`
	QuizAverage        int     `json:"quizAverage"` // 0-100
	TotalLearningHours float64 `json:"totalLearningHours"`

	// exact 模式下用于计算平均分
	QuizScoreSum   float64 `json:"quizScoreSum"`
	QuizScoreCount int     `json:"quizScoreCount"`
}

// swagger:model Behavior
type Behavior struct {
	LastActiveDate         time.Time `json:"lastActiveDate"`
	LoginCount             int       `json:"loginCount"`
	AverageSessionDuration float64   `json:"averageSessionDuration"`
	PreferredStudyTime     string    `json:"preferredStudyTime"`
}

// swagger:model User
type User struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	PasswordHash    string          `json:"passwordHash"`
	CreatedAt       time.Time       `json:"createdAt"`
	LearningProfile LearningProfile `json:"learningProfile"`
	Progress        Progress        `json:"progress"`
	Behavior        Behavior        `json:"behavior"`
}

// UserProfile 对外返回的用户信息，不包含密码哈希
// swagger:model UserProfile
type UserProfile struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	CreatedAt       time.Time       `json:"createdAt"`
	LearningProfile LearningProfile `json:"learningProfile"`
	Progress        Progress        `json:"progress"`
	Behavior        Behavior        `json:"behavior"`
}

func (u User) Profile() UserProfile {
	return UserProfile{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		CreatedAt:       u.CreatedAt,
		LearningProfile: u.LearningProfile,
		Progress:        u.Progress,
		Behavior:        u.Behavior,
	}
}

// DefaultLearningProfile 新注册用户的默认画像
func DefaultLearningProfile(interests []string) LearningProfile {
	return LearningProfile{
		LearningStyle:        StyleVisual,
		SkillLevel:           LevelBeginner,
		Interests:            NormalizeInterests(interests),
		LearningPace:         PaceModerate,
		PreferredContentType: ContentVideo,
	}
}

// NormalizeEmail 邮箱按小写比较
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeInterests 去除空白项，并按不区分大小写去重（保留第一次出现的写法）
func NormalizeInterests(interests []string) []string {
	out := make([]string, 0, len(interests))
	seen := make(map[string]bool, len(interests))
	for _, raw := range interests {
		interest := strings.TrimSpace(raw)
		if interest == "" {
			continue
		}
		key := strings.ToLower(interest)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, interest)
	}
	return out
}

package service

import "learnai_backend/internal/model"

// AdaptProfile 根据最近的学习数据返回更新后的画像，不修改入参。
// 内容偏好取使用次数最多的类型，并列时取调用方给出的第一个；技能等级只升不降。
func AdaptProfile(profile model.LearningProfile, data model.ActivityData) model.LearningProfile {
	best := -1
	for i, u := range data.ContentTypeUsage {
		if !u.ContentType.Valid() {
			continue
		}
		if best < 0 || u.Count > data.ContentTypeUsage[best].Count {
			best = i
		}
	}
	if best >= 0 {
		profile.PreferredContentType = data.ContentTypeUsage[best].ContentType
	}

	if len(data.QuizPerformance) == 0 {
		return profile
	}
	sum := 0.0
	for _, s := range data.QuizPerformance {
		sum += s
	}
	avg := sum / float64(len(data.QuizPerformance))
	completed := len(data.CompletedCourses)

	target := profile.SkillLevel
	switch {
	case avg > 85 && completed > 2:
		target = model.LevelAdvanced
	case avg > 70 && completed > 0:
		target = model.LevelIntermediate
	}
	if target.Rank(1) > profile.SkillLevel.Rank(1) {
		profile.SkillLevel = target
	}
	return profile
}

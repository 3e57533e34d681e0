package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"learnai_backend/internal/config"
	"learnai_backend/internal/model"
)

func TestAnonymousReads(t *testing.T) {
	env := newTestEnv(t, config.QuizAverageRounded)
	ctx := context.Background()

	recs, ok, err := env.recommendation.GetRecommendations(ctx, nil)
	if err != nil || ok || recs == nil || len(recs) != 0 {
		t.Fatalf("recommendations = %v ok=%v err=%v", recs, ok, err)
	}
	items, ok, err := env.feedback.GetFeedback(ctx, nil)
	if err != nil || ok || items == nil || len(items) != 0 {
		t.Fatalf("feedback = %v ok=%v err=%v", items, ok, err)
	}
	if _, ok, err := env.profile.Refresh(ctx, nil); err != nil || ok {
		t.Fatalf("Refresh(nil) ok=%v err=%v", ok, err)
	}
	if _, ok, err := env.tracking.Stats(ctx, nil); err != nil || ok {
		t.Fatalf("Stats(nil) ok=%v err=%v", ok, err)
	}
}

func TestRecommendationsFollowProfile(t *testing.T) {
	env := newTestEnv(t, config.QuizAverageRounded)
	ctx := context.Background()
	session := env.login(t, "rec@example.com")

	level := model.LevelIntermediate
	if _, _, err := env.profile.UpdateProfile(ctx, session, ProfilePatch{SkillLevel: &level, Interests: []string{"data"}}); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}

	recs, ok, err := env.recommendation.GetRecommendations(ctx, session)
	if err != nil || !ok {
		t.Fatalf("GetRecommendations ok=%v err=%v", ok, err)
	}
	if len(recs) != DefaultRecommendationLimit {
		t.Fatalf("got %d recommendations", len(recs))
	}
	if recs[0].Course.ID != "course_ml" || recs[1].Course.ID != "course_data" {
		t.Fatalf("top two = %s, %s", recs[0].Course.ID, recs[1].Course.ID)
	}
	pos := make(map[string]int, len(recs))
	for i, r := range recs {
		pos[r.Course.ID] = i
	}
	if pos["course_data"] > pos["course_ai"] {
		t.Fatalf("course_data ranked below course_ai: %v", pos)
	}
}

func TestUpdateProfileValidation(t *testing.T) {
	env := newTestEnv(t, config.QuizAverageRounded)
	session := env.login(t, "patch@example.com")

	style := model.LearningStyle("telepathic")
	_, _, err := env.profile.UpdateProfile(context.Background(), session, ProfilePatch{LearningStyle: &style})
	if err == nil {
		t.Fatalf("expected validation error")
	}

	name := "Grace"
	user, _, err := env.profile.UpdateProfile(context.Background(), session, ProfilePatch{Name: &name})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if user.Name != "Grace" || user.LearningProfile.LearningStyle != model.StyleVisual {
		t.Fatalf("user = %+v", user)
	}
}

func TestRefreshProfileFromActivities(t *testing.T) {
	env := newTestEnv(t, config.QuizAverageRounded)
	ctx := context.Background()
	session := env.login(t, "refresh@example.com")

	steps := []struct {
		typ model.ActivityType
		d   model.ActivityDetails
	}{
		{model.ActivityContentViewed, model.ActivityDetails{ContentType: model.ContentVideo}},
		{model.ActivityContentViewed, model.ActivityDetails{ContentType: model.ContentText}},
		{model.ActivityContentViewed, model.ActivityDetails{ContentType: model.ContentText}},
		{model.ActivityLearningTime, model.ActivityDetails{Hours: hours(50)}},
		{model.ActivityQuizCompleted, model.ActivityDetails{Score: score(95)}},
	}
	for _, s := range steps {
		if _, _, err := env.tracking.Record(ctx, session, s.typ, s.d); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	user, ok, err := env.profile.Refresh(ctx, session)
	if err != nil || !ok {
		t.Fatalf("Refresh ok=%v err=%v", ok, err)
	}
	lp := user.LearningProfile
	if lp.PreferredContentType != model.ContentText || lp.LearningPace != model.PaceIntensive {
		t.Fatalf("profile = %+v", lp)
	}
	// 没有已完成课程，等级不变
	if lp.SkillLevel != model.LevelBeginner {
		t.Fatalf("skill = %s", lp.SkillLevel)
	}

	insights, _, err := env.profile.Insights(ctx, session)
	if err != nil {
		t.Fatalf("Insights: %v", err)
	}
	if insights.MostUsed != model.ContentText || insights.QuizPerformance.Count != 1 {
		t.Fatalf("insights = %+v", insights)
	}
}

func TestAdaptProfileService(t *testing.T) {
	env := newTestEnv(t, config.QuizAverageRounded)
	session := env.login(t, "adapt@example.com")

	user, ok, err := env.profile.Adapt(context.Background(), session, model.ActivityData{
		ContentTypeUsage: []model.ContentTypeCount{{ContentType: model.ContentProject, Count: 3}},
		QuizPerformance:  []float64{90, 92},
		CompletedCourses: []string{"a", "b", "c"},
	})
	if err != nil || !ok {
		t.Fatalf("Adapt ok=%v err=%v", ok, err)
	}
	if user.LearningProfile.SkillLevel != model.LevelAdvanced || user.LearningProfile.PreferredContentType != model.ContentProject {
		t.Fatalf("profile = %+v", user.LearningProfile)
	}
	if stored := env.user(t, session); stored.LearningProfile.SkillLevel != model.LevelAdvanced {
		t.Fatalf("adapted profile not saved")
	}
}

func TestFeedbackService(t *testing.T) {
	env := newTestEnv(t, config.QuizAverageRounded)
	ctx := context.Background()
	session := env.login(t, "feedback@example.com")

	start := env.now
	for i := 0; i < 10; i++ {
		env.now = start.Add(-5*24*time.Hour + time.Duration(i)*time.Minute)
		if _, _, err := env.tracking.Record(ctx, session, model.ActivityLessonCompleted, model.ActivityDetails{}); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	env.now = start

	items, ok, err := env.feedback.GetFeedback(ctx, session)
	if err != nil || !ok {
		t.Fatalf("GetFeedback ok=%v err=%v", ok, err)
	}
	if len(items) != 2 || items[0].Title != "🎉 Milestone Achieved!" || items[1].Type != model.FeedbackInfo {
		t.Fatalf("items = %+v", items)
	}
}

func TestCourseQueries(t *testing.T) {
	env := newTestEnv(t, config.QuizAverageRounded)
	ctx := context.Background()

	all, err := env.courses.All(ctx)
	if err != nil || len(all) != 6 {
		t.Fatalf("All = %d courses, err=%v", len(all), err)
	}
	if all[0].Level != model.LevelIntermediate {
		t.Fatalf("seed level not normalized: %s", all[0].Level)
	}

	byCategory, _ := env.courses.ByCategory(ctx, "data science")
	if len(byCategory) != 2 {
		t.Fatalf("ByCategory = %d courses", len(byCategory))
	}
	react, _ := env.courses.Search(ctx, "React")
	if len(react) != 2 || react[0].ID != "course_web" || react[1].ID != "course_mobile" {
		t.Fatalf("Search(React) = %+v", react)
	}
	blank, _ := env.courses.Search(ctx, "  ")
	if len(blank) != 6 {
		t.Fatalf("blank search = %d courses", len(blank))
	}

	// 已有课程时不重复写入
	if err := env.courses.Seed(ctx); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if again, _ := env.courses.All(ctx); len(again) != 6 {
		t.Fatalf("reseed duplicated courses: %d", len(again))
	}
}

func TestLoadSeedCoursesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "courses.yaml")
	content := `courses:
  - title: Go Concurrency Patterns
    category: Programming
    level: Advanced
    rating: 7
    enrolled: 10
    topics: [goroutines, channels]
  - id: course_sql
    title: SQL Basics
    category: Data
    level: beginner
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	courses, err := LoadSeedCourses(path)
	if err != nil {
		t.Fatalf("LoadSeedCourses: %v", err)
	}
	if len(courses) != 2 {
		t.Fatalf("got %d courses", len(courses))
	}
	first := courses[0]
	if first.ID != "course_go-concurrency-patterns" || first.Level != model.LevelAdvanced || first.Rating != 5 {
		t.Fatalf("first = %+v", first)
	}
	if courses[1].Topics == nil {
		t.Fatalf("topics should default to empty slice")
	}
}

func TestPrepareSeedRejectsDuplicates(t *testing.T) {
	_, err := prepareSeed([]model.Course{{ID: "x", Title: "A"}, {ID: "x", Title: "B"}})
	if err == nil {
		t.Fatalf("expected duplicate id error")
	}
	if _, err := prepareSeed([]model.Course{{ID: "y"}}); err == nil {
		t.Fatalf("expected missing title error")
	}
}

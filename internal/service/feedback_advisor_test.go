package service

import (
	"strings"
	"testing"
	"time"

	"learnai_backend/internal/model"
)

var adviceNow = time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)

func titles(items []model.FeedbackItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Title
	}
	return out
}

func hasTitle(items []model.FeedbackItem, title string) bool {
	for _, it := range items {
		if it.Title == title {
			return true
		}
	}
	return false
}

func quizAt(s float64, ago time.Duration) model.Activity {
	return model.Activity{Type: model.ActivityQuizCompleted, Details: model.ActivityDetails{Score: score(s)}, Timestamp: adviceNow.Add(-ago)}
}

func TestMilestoneFeedback(t *testing.T) {
	for lessons, want := range map[int]bool{0: false, 5: false, 10: true, 15: false, 20: true, 30: true} {
		items := AdviseFeedback(model.Progress{LessonsCompleted: lessons}, nil, adviceNow)
		if got := hasTitle(items, "🎉 Milestone Achieved!"); got != want {
			t.Fatalf("lessons=%d milestone=%v, want %v", lessons, got, want)
		}
	}
}

func TestExcellenceFeedback(t *testing.T) {
	items := AdviseFeedback(model.Progress{QuizAverage: 85}, nil, adviceNow)
	if !hasTitle(items, "⭐ Excellent Performance!") {
		t.Fatalf("expected excellence at 85, got %q", titles(items))
	}
	if !strings.Contains(items[0].Message, "85%") {
		t.Fatalf("message = %q", items[0].Message)
	}
	items = AdviseFeedback(model.Progress{QuizAverage: 84}, nil, adviceNow)
	if len(items) != 0 {
		t.Fatalf("unexpected feedback at 84: %q", titles(items))
	}
}

func TestDeclineFeedback(t *testing.T) {
	decline := "⚠️ Performance Decline"
	tests := []struct {
		name   string
		avg    int
		recent []model.Activity
		want   bool
	}{
		{"three low quizzes", 90, []model.Activity{quizAt(70, time.Hour), quizAt(75, 2*time.Hour), quizAt(72, 3*time.Hour)}, true},
		{"only two quizzes", 90, []model.Activity{quizAt(50, time.Hour), quizAt(50, 2*time.Hour)}, false},
		{"exactly ten below", 90, []model.Activity{quizAt(80, time.Hour), quizAt(80, 2*time.Hour), quizAt(80, 3*time.Hour)}, false},
		{"unscored quizzes ignored", 90, []model.Activity{
			quizAt(70, time.Hour),
			{Type: model.ActivityQuizCompleted, Timestamp: adviceNow.Add(-2 * time.Hour)},
			quizAt(70, 3*time.Hour),
		}, false},
		// 只看最近5次：最近5次都是高分，更早的低分不计入
		{"only five most recent", 80, []model.Activity{
			quizAt(95, 1*time.Hour), quizAt(95, 2*time.Hour), quizAt(95, 3*time.Hour),
			quizAt(95, 4*time.Hour), quizAt(95, 5*time.Hour),
			quizAt(10, 6*time.Hour), quizAt(10, 7*time.Hour), quizAt(10, 8*time.Hour),
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := AdviseFeedback(model.Progress{QuizAverage: tt.avg}, tt.recent, adviceNow)
			if got := hasTitle(items, decline); got != tt.want {
				t.Fatalf("decline = %v, want %v (%q)", got, tt.want, titles(items))
			}
		})
	}
}

func TestConsistencyReminder(t *testing.T) {
	recent := []model.Activity{{Type: model.ActivityLessonCompleted, Timestamp: adviceNow.Add(-(4*24*time.Hour + time.Hour))}}
	items := AdviseFeedback(model.Progress{}, recent, adviceNow)
	if len(items) != 1 || items[0].Type != model.FeedbackInfo {
		t.Fatalf("items = %+v", items)
	}
	if !strings.Contains(items[0].Message, "It's been 4 days") {
		t.Fatalf("message = %q", items[0].Message)
	}

	recent[0].Timestamp = adviceNow.Add(-(3*24*time.Hour + 23*time.Hour))
	if items := AdviseFeedback(model.Progress{}, recent, adviceNow); len(items) != 0 {
		t.Fatalf("3 full days should not remind, got %q", titles(items))
	}
}

func TestRulesFireInOrder(t *testing.T) {
	progress := model.Progress{LessonsCompleted: 10, QuizAverage: 100, TotalLearningHours: 25}
	recent := []model.Activity{
		quizAt(60, 5*24*time.Hour),
		quizAt(60, 6*24*time.Hour),
		quizAt(60, 7*24*time.Hour),
	}
	items := AdviseFeedback(progress, recent, adviceNow)
	want := []string{"🎉 Milestone Achieved!", "⭐ Excellent Performance!", "⚠️ Performance Decline", "💡 Stay Consistent"}
	got := titles(items)
	if len(got) != len(want) {
		t.Fatalf("titles = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("titles = %q, want %q", got, want)
		}
	}

	progress.LessonsCompleted = 9
	items = AdviseFeedback(progress, nil, adviceNow)
	if !hasTitle(items, "📊 Learning Efficiency") {
		t.Fatalf("expected efficiency feedback, got %q", titles(items))
	}
}

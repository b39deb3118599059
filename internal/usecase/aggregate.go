package usecase

import (
	"math"

	"minilms-backend/internal/domain"
)

// The functions in this file are the pure core of progress tracking. They
// never touch storage; the progress usecase feeds them records and persists
// the results.

// Unanswered marks a question the caller left blank. It matches no answer
// index.
const Unanswered = -1

// mergeCompletedLessons returns the union of the completed set and
// {lessonID}, preserving first-seen order. Marking the same lesson twice
// yields the same set as marking it once. The lesson is not checked for
// membership in the course.
func mergeCompletedLessons(completed []string, lessonID string) []string {
	if lessonID == "" {
		return completed
	}
	for _, id := range completed {
		if id == lessonID {
			return completed
		}
	}
	out := make([]string, 0, len(completed)+1)
	out = append(out, completed...)
	return append(out, lessonID)
}

// scoreQuiz grades answers against the questions positionally: answers[i]
// is the submitted choice index for questions[i]. Missing or out-of-range
// entries count as wrong. The result is round(100 * correct / total); a quiz
// with no questions scores 0.
func scoreQuiz(questions []domain.Question, answers []int) (score, correct int) {
	total := len(questions)
	if total == 0 {
		return 0, 0
	}
	for i, q := range questions {
		if i < len(answers) && answers[i] == q.AnswerIndex {
			correct++
		}
	}
	score = int(math.Round(float64(correct) / float64(total) * 100))
	return score, correct
}

// aggregateDashboard computes the cross-course summary. TotalLessons counts
// every lesson in the catalog, not only enrolled courses. AverageScore is
// nil until at least one quiz score exists; presence is decided by the
// pointer, never by the value, so a stored 0% pulls the average down instead
// of vanishing.
func aggregateDashboard(enrolledCount int, totalLessons int, records []domain.Progress) *domain.DashboardSummary {
	summary := &domain.DashboardSummary{
		EnrolledCount: enrolledCount,
		TotalLessons:  totalLessons,
	}

	sum, scored := 0, 0
	for _, p := range records {
		summary.CompletedCount += len(p.CompletedLessonIDs)
		if p.QuizScore != nil {
			sum += *p.QuizScore
			scored++
		}
	}
	if scored > 0 {
		avg := int(math.Round(float64(sum) / float64(scored)))
		summary.AverageScore = &avg
	}
	return summary
}

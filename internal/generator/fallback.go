package generator

import (
	"fmt"
	"strings"
	"time"

	"github.com/vy1216/v4learnease/internal/domain/chat"
	"github.com/vy1216/v4learnease/internal/domain/quiz"
	"github.com/vy1216/v4learnease/internal/id"
)

// mcqStems rotate across the multiple-choice slots so consecutive quizzes on
// the same topic do not read identically.
var mcqStems = []string{
	"Which statement about %s is most accurate?",
	"Choose the best example of %s.",
	"Which concept is fundamental to %s?",
	"Identify a misconception about %s.",
	"Select the correct property related to %s.",
}

// Fallback synthesizes a quiz from templates alone. It always produces
// exactly quiz.QuestionCount questions in a repeating 3-slot pattern
// (multiple-choice, true/false, short-answer) with positional difficulty:
// questions 1-4 easy, 5-8 medium, 9-10 hard.
func Fallback(topic string) *quiz.Quiz {
	base := strings.TrimSpace(topic)
	if base == "" {
		base = chat.DefaultTopic
	}

	quizID := id.New("quiz")
	questions := make([]quiz.Question, 0, quiz.QuestionCount)

	for i := 1; i <= quiz.QuestionCount; i++ {
		difficulty := quiz.DifficultyForPosition(i)
		qid := quiz.QuestionID(quizID, i)

		switch i % 3 {
		case 1:
			correct := fmt.Sprintf("Key principle of %s", base)
			questions = append(questions, quiz.Question{
				ID:   qid,
				Type: quiz.TypeMultipleChoice,
				Text: fmt.Sprintf(mcqStems[i%len(mcqStems)], base),
				Options: []string{
					correct,
					fmt.Sprintf("Irrelevant detail about %s", base),
					fmt.Sprintf("Common misconception in %s", base),
					fmt.Sprintf("Statement not true for %s", base),
				},
				Answer:     correct,
				Topic:      base,
				Difficulty: difficulty,
			})
		case 2:
			answer := "False"
			if i%2 == 0 {
				answer = "True"
			}
			questions = append(questions, quiz.Question{
				ID:         qid,
				Type:       quiz.TypeTrueFalse,
				Text:       fmt.Sprintf("The statement about %s is correct.", base),
				Options:    []string{"True", "False"},
				Answer:     answer,
				Topic:      base,
				Difficulty: difficulty,
			})
		default:
			questions = append(questions, quiz.Question{
				ID:         qid,
				Type:       quiz.TypeShortAnswer,
				Text:       fmt.Sprintf("Briefly explain %s or list a core element.", base),
				Answer:     fmt.Sprintf("Core element of %s", base),
				Topic:      base,
				Difficulty: difficulty,
			})
		}
	}

	return &quiz.Quiz{
		ID:        quizID,
		Topic:     base,
		Questions: questions,
		CreatedAt: time.Now().UTC(),
	}
}

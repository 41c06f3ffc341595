package model

import "fmt"

// Question is the service payload. AlternativeAnswers holds exactly three
// distractors on success.
type Question struct {
	Text               string   `json:"q"`
	CorrectAnswer      string   `json:"correctAnswer"`
	AlternativeAnswers []string `json:"alternativeAnswers"`
}

// QuestionText renders the fixed question template.
func QuestionText(propertyLabel, entityLabel string) string {
	return fmt.Sprintf("What is the %s of %s?", propertyLabel, entityLabel)
}

// NewQuestion assembles a question from a resolved fact and its distractors.
func NewQuestion(entity Entity, fact Fact, distractors []string) Question {
	return Question{
		Text:               QuestionText(fact.Property.Label, entity.Label),
		CorrectAnswer:      fact.CorrectAnswer,
		AlternativeAnswers: distractors,
	}
}

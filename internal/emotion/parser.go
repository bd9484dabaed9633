// Package emotion parses emotion analysis responses returned by the
// chat-completion model. The model is asked for a flat JSON object of
// category scores but sometimes wraps it in prose, so parsing falls back
// to extracting the outermost brace-delimited block.
package emotion

import (
	"encoding/json"
	"errors"
	"strings"

	"api/internal/models"
)

// Categories the model is prompted to score, 0 to 100 each.
const (
	CategoryHappiness = "happiness"
	CategorySadness   = "sadness"
	CategoryAnger     = "anger"
	CategoryAnxiety   = "anxiety"
	CategoryCalmness  = "calmness"
	CategoryEtc       = "etc"
)

var ErrInvalidContent = errors.New("invalid emotion json content")

// Parse extracts category scores from raw model output. The content is
// tried as-is first; if that fails, the substring between the first '{'
// and the last '}' is tried.
func Parse(content string) (map[string]int, error) {
	scores, err := unmarshalScores(content)
	if err == nil {
		return scores, nil
	}

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return nil, ErrInvalidContent
	}

	scores, err = unmarshalScores(content[start : end+1])
	if err != nil {
		return nil, ErrInvalidContent
	}
	return scores, nil
}

func unmarshalScores(content string) (map[string]int, error) {
	var scores map[string]int
	if err := json.Unmarshal([]byte(content), &scores); err != nil {
		return nil, err
	}
	return scores, nil
}

// ToRecord maps parsed scores onto a persistent record. Missing
// categories default to zero.
func ToRecord(userEmail string, inputText string, scores map[string]int) models.EmotionRecord {
	return models.EmotionRecord{
		UserEmail: userEmail,
		InputText: inputText,
		Happiness: scores[CategoryHappiness],
		Sadness:   scores[CategorySadness],
		Anger:     scores[CategoryAnger],
		Anxiety:   scores[CategoryAnxiety],
		Calmness:  scores[CategoryCalmness],
		Etc:       scores[CategoryEtc],
	}
}

package service

import (
	"testing"

	"mathclicks-be/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestTrailingStreak(t *testing.T) {
	problems := fixedProblems()
	problems = append(problems, problems[0], problems[1]) // 4 slots
	for i := range problems {
		problems[i].Id = string(rune('a' + i))
	}

	tests := []struct {
		name    string
		results map[string]bool
		want    int
	}{
		{"no results", map[string]bool{}, 0},
		{"one correct", map[string]bool{"a": true}, 1},
		{"three straight", map[string]bool{"a": true, "b": true, "c": true}, 3},
		{"miss resets", map[string]bool{"a": true, "b": false, "c": true}, 1},
		{"miss at end", map[string]bool{"a": true, "b": true, "c": false}, 0},
		{"gap stops counting", map[string]bool{"a": true, "c": true}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := &entity.PracticeSession{
				Problems: problems,
				Results:  tt.results,
			}
			assert.Equal(t, tt.want, trailingStreak(session))
		})
	}
}

package learning

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextInterval(t *testing.T) {
	tests := []struct {
		name     string
		previous time.Duration
		response Response
		expected time.Duration
	}{
		{name: "wrong resets to the smallest interval", previous: 48 * time.Hour, response: ResponseWrong, expected: 5 * time.Minute},
		{name: "wrong on a new question", previous: 0, response: ResponseWrong, expected: 5 * time.Minute},
		{name: "first right answer", previous: 0, response: ResponseRight, expected: 5 * time.Minute},
		{name: "right steps up to eight hours", previous: 5 * time.Minute, response: ResponseRight, expected: 8 * time.Hour},
		{name: "right steps up to a day", previous: 8 * time.Hour, response: ResponseRight, expected: 24 * time.Hour},
		{name: "right doubles beyond a day", previous: 24 * time.Hour, response: ResponseRight, expected: 48 * time.Hour},
		{name: "right keeps doubling", previous: 96 * time.Hour, response: ResponseRight, expected: 192 * time.Hour},
		{name: "skip keeps the previous interval", previous: 8 * time.Hour, response: ResponseSkip, expected: 8 * time.Hour},
		{name: "skip on a new question stays unscheduled", previous: 0, response: ResponseSkip, expected: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, NextInterval(tc.previous, tc.response))
		})
	}
}

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsOutdoorFriendly(t *testing.T) {
	cases := []struct {
		condition string
		expected  bool
	}{
		{"sunny", true},
		{"clear", true},
		{"partly cloudy", true},
		{"rain", false},
		{"Rain", false},
		{"drizzle", false},
		{"thunderstorm", false},
		{"snow", false},
		{"", true},
	}

	for _, c := range cases {
		t.Run(c.condition, func(t *testing.T) {
			assert.Equal(t, c.expected, IsOutdoorFriendly(c.condition))
		})
	}
}

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsUUID(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"550e8400-e29b-41d4-a716-446655440000", true},
		{"550E8400-E29B-41D4-A716-446655440000", true},
		{"AS-2024-001", false},
		{"550e8400e29b41d4a716446655440000", false},
		{"550e8400-e29b-41d4-a716-44665544000", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsUUID(tt.input), "input: %q", tt.input)
	}
}

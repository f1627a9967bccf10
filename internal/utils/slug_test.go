package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Wireless Headphones", "wireless-headphones"},
		{"  Trimmed  ", "trimmed"},
		{"Crème Brûlée!", "crme-brle"},
		{"already-a-slug", "already-a-slug"},
		{"Size 42 (EU)", "size-42-eu"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "input %q", tt.in)
	}
}

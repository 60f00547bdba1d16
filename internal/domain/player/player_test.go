package player

import (
	"errors"
	"strings"
	"testing"

	"github.com/kailas-cloud/radar/internal/domain"
)

func TestValidateID(t *testing.T) {
	tests := []struct {
		id    string
		valid bool
	}{
		{"alice", true},
		{"3f0c1e2a-9d7b-4f7e-8a51-0c2b5f1d9e44", true},
		{"", false},
		{"with space", false},
		{"a:b", false},
		{strings.Repeat("x", 129), false},
	}
	for _, tt := range tests {
		err := ValidateID(tt.id)
		if tt.valid && err != nil {
			t.Errorf("ValidateID(%q) unexpected error %v", tt.id, err)
		}
		if !tt.valid && !errors.Is(err, domain.ErrInvalidPlayer) {
			t.Errorf("ValidateID(%q) expected ErrInvalidPlayer, got %v", tt.id, err)
		}
	}
}

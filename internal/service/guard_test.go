package service

import (
	"testing"

	"github.com/crimsondominion/crimson-go/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	alice := model.Identity{ID: "u1", Username: "alice"}

	tests := []struct {
		name     string
		identity model.Identity
		owner    string
		want     Decision
	}{
		{"owner", alice, "u1", Allowed},
		{"other owner", alice, "u2", Denied},
		{"empty owner", alice, "", Denied},
		{"empty identity", model.Identity{}, "", Denied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Authorize(tt.identity, tt.owner)
			assert.Equal(t, tt.want, got)
			if got == Allowed {
				assert.NoError(t, got.Err())
			} else {
				assert.ErrorIs(t, got.Err(), ErrForbidden)
			}
		})
	}
}

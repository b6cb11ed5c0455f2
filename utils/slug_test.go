package utils

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestGenerateSlug(t *testing.T) {
	id := uuid.MustParse("a1b2c3d4-0000-0000-0000-000000000000")

	tests := []struct {
		title string
		want  string
	}{
		{"Apartament 3 camere", "apartament-3-camere-a1b2c3d4"},
		{"Casă cu grădină!", "cas-cu-grdin-a1b2c3d4"},
		{"  spatii   multiple  ", "spatii-multiple-a1b2c3d4"},
		{"UPPER Case Title", "upper-case-title-a1b2c3d4"},
	}

	for _, tt := range tests {
		if got := GenerateSlug(tt.title, id); got != tt.want {
			t.Errorf("GenerateSlug(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestGenerateSlug_UniquePerID(t *testing.T) {
	a := GenerateSlug("Apartament 2 camere", uuid.New())
	b := GenerateSlug("Apartament 2 camere", uuid.New())
	if a == b {
		t.Error("expected different IDs to produce different slugs")
	}
	if !strings.HasPrefix(a, "apartament-2-camere-") {
		t.Errorf("unexpected slug shape: %q", a)
	}
}

package models

import (
	"testing"
)

func TestStringerMethods(t *testing.T) {
	t.Run("Severity", func(t *testing.T) {
		s := SeverityCritical
		if s.String() != "CRITICAL" {
			t.Errorf("Severity.String() = %q, want %q", s.String(), "CRITICAL")
		}
	})

	t.Run("ImportKind", func(t *testing.T) {
		k := ImportFrom
		if k.String() != "from_import" {
			t.Errorf("ImportKind.String() = %q, want %q", k.String(), "from_import")
		}
	})
}

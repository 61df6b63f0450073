package logging

import (
	"testing"
)

func TestConstants(t *testing.T) {
	fields := []string{
		FieldComponent,
		FieldKey,
		FieldBackend,
		FieldTransactionID,
		FieldCategory,
		FieldCount,
		FieldKind,
		FieldOutputFile,
	}
	seen := make(map[string]bool)
	for _, f := range fields {
		if f == "" {
			t.Error("field constant should not be empty")
		}
		if seen[f] {
			t.Errorf("duplicate field constant %q", f)
		}
		seen[f] = true
	}
}

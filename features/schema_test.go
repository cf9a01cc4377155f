package features

import (
	"testing"

	kcalErrors "github.com/ezoic/caloriedash/pkg/errors"
)

func TestDefaultSchema(t *testing.T) {
	s := DefaultSchema()
	if s.Len() != 10 {
		t.Fatalf("expected 10 columns, got %d", s.Len())
	}
	if s.Index(SessionDuration) != 5 || s.Index(ExperienceLevel2) != 9 {
		t.Errorf("unexpected column order: %v", s.Names)
	}
	if s.Index("Height (m)") != -1 {
		t.Error("Height is not a model input")
	}
}

func TestSchemaValidate(t *testing.T) {
	s := DefaultSchema()
	reordered := append([]string(nil), s.Names...)
	reordered[7], reordered[8] = reordered[8], reordered[7]

	tests := []struct {
		name    string
		version string
		names   []string
		wantErr bool
	}{
		{"exact", SchemaVersion, s.Names, false},
		{"no version recorded", "", s.Names, false},
		{"other version", "2", s.Names, true},
		{"reordered", "", reordered, true},
		{"missing column", "", s.Names[:9], true},
		{"extra column", "", append(append([]string(nil), s.Names...), "Height (m)"), true},
		{"renamed column", "", append([]string{"age"}, s.Names[1:]...), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Validate(tt.version, tt.names)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !kcalErrors.Is(err, kcalErrors.ErrSchemaMismatch) {
				t.Errorf("expected ErrSchemaMismatch mark, got %v", err)
			}
		})
	}
}

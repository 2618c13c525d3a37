package manual_test

import (
	"errors"
	"testing"

	"github.com/p-n-ai/pai-manual/internal/manual"
)

func TestNewCatalog_ConcatenatesGroupsInOrder(t *testing.T) {
	cat := campaignCatalog()

	var ids []string
	for _, s := range cat.ListSections() {
		ids = append(ids, s.ID)
	}
	want := []string{"getting-started", "campaigns", "templates"}
	if len(ids) != len(want) {
		t.Fatalf("sections = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("section[%d] = %s, want %s", i, ids[i], want[i])
		}
	}

	flat := cat.Flatten()
	if len(flat) != 6 {
		t.Fatalf("Flatten() = %d positions, want 6", len(flat))
	}
	if flat[2] != (manual.Position{SectionID: "campaigns", SubsectionID: "create"}) {
		t.Errorf("flat[2] = %+v, want campaigns/create", flat[2])
	}
}

func TestStaticCatalog_Lookup(t *testing.T) {
	cat := campaignCatalog()

	s, sub, ok := cat.Lookup("campaigns", "results")
	if !ok {
		t.Fatal("Lookup(campaigns, results) not found")
	}
	if s.Title != "Campañas de phishing" || sub.Title != "Resultados" {
		t.Errorf("Lookup() = %q/%q", s.Title, sub.Title)
	}

	if _, _, ok := cat.Lookup("campaigns", "editor"); ok {
		t.Error("Lookup() should not find a subsection under another section")
	}
}

func TestStaticCatalog_Validate(t *testing.T) {
	basico := map[manual.Level]string{manual.LevelBasico: "x"}

	tests := []struct {
		name     string
		sections []manual.Section[string]
		wantErr  bool
	}{
		{
			name: "valid",
			sections: []manual.Section[string]{
				{ID: "a", Subsections: []manual.Subsection[string]{{ID: "1", Content: basico}}},
				{ID: "b", Subsections: []manual.Subsection[string]{{ID: "1", Content: basico}}},
			},
		},
		{
			name:    "empty",
			wantErr: true,
		},
		{
			name: "section without subsections",
			sections: []manual.Section[string]{
				{ID: "a"},
			},
			wantErr: true,
		},
		{
			name: "duplicate section",
			sections: []manual.Section[string]{
				{ID: "a", Subsections: []manual.Subsection[string]{{ID: "1", Content: basico}}},
				{ID: "a", Subsections: []manual.Subsection[string]{{ID: "2", Content: basico}}},
			},
			wantErr: true,
		},
		{
			name: "duplicate subsection",
			sections: []manual.Section[string]{
				{ID: "a", Subsections: []manual.Subsection[string]{
					{ID: "1", Content: basico},
					{ID: "1", Content: basico},
				}},
			},
			wantErr: true,
		},
		{
			name: "missing basico",
			sections: []manual.Section[string]{
				{ID: "a", Subsections: []manual.Subsection[string]{
					{ID: "1", Content: map[manual.Level]string{manual.LevelAvanzado: "deep"}},
				}},
			},
			wantErr: true,
		},
		{
			name: "blank basico",
			sections: []manual.Section[string]{
				{ID: "a", Subsections: []manual.Subsection[string]{
					{ID: "1", Content: map[manual.Level]string{manual.LevelBasico: "  "}},
				}},
			},
			wantErr: true,
		},
		{
			name: "unknown level",
			sections: []manual.Section[string]{
				{ID: "a", Subsections: []manual.Subsection[string]{
					{ID: "1", Content: map[manual.Level]string{manual.LevelBasico: "x", "experto": "y"}},
				}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := manual.NewCatalog(tt.sections).Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, manual.ErrMalformedCatalog) {
				t.Errorf("Validate() error = %v, want ErrMalformedCatalog", err)
			}
		})
	}
}

package manual_test

import (
	"reflect"
	"testing"

	"github.com/p-n-ai/pai-manual/internal/manual"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    manual.Level
		wantErr bool
	}{
		{"basico", manual.LevelBasico, false},
		{" Intermedio ", manual.LevelIntermedio, false},
		{"AVANZADO", manual.LevelAvanzado, false},
		{"experto", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := manual.ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestLevel_Less(t *testing.T) {
	if !manual.LevelBasico.Less(manual.LevelIntermedio) || !manual.LevelIntermedio.Less(manual.LevelAvanzado) {
		t.Error("levels should be ordered basico < intermedio < avanzado")
	}
	if manual.LevelAvanzado.Less(manual.LevelBasico) {
		t.Error("avanzado should not be less than basico")
	}
}

func TestResolveContent(t *testing.T) {
	full := manual.Subsection[string]{
		ID: "full",
		Content: map[manual.Level]string{
			manual.LevelBasico:     "b",
			manual.LevelIntermedio: "i",
			manual.LevelAvanzado:   "a",
		},
	}
	basicOnly := manual.Subsection[string]{
		ID:      "basic",
		Content: map[manual.Level]string{manual.LevelBasico: "b"},
	}

	tests := []struct {
		name  string
		sub   manual.Subsection[string]
		level manual.Level
		want  string
	}{
		{"avanzado present", full, manual.LevelAvanzado, "a"},
		{"intermedio present", full, manual.LevelIntermedio, "i"},
		{"avanzado falls back", basicOnly, manual.LevelAvanzado, "b"},
		{"intermedio falls back", basicOnly, manual.LevelIntermedio, "b"},
		{"basico", basicOnly, manual.LevelBasico, "b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := manual.ResolveContent(tt.sub, tt.level); got != tt.want {
				t.Errorf("ResolveContent() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveContent_EveryCatalogSubsection(t *testing.T) {
	for _, s := range campaignCatalog().ListSections() {
		for _, sub := range s.Subsections {
			if got, want := manual.ResolveContent(sub, manual.LevelAvanzado), sub.Content[manual.LevelBasico]; got != want {
				t.Errorf("%s/%s: ResolveContent(avanzado) = %q, want basico %q", s.ID, sub.ID, got, want)
			}
		}
	}
}

func TestAvailableLevels(t *testing.T) {
	sub := manual.Subsection[string]{
		Content: map[manual.Level]string{
			manual.LevelAvanzado: "a",
			manual.LevelBasico:   "b",
		},
	}
	want := []manual.Level{manual.LevelBasico, manual.LevelAvanzado}
	if got := manual.AvailableLevels(sub); !reflect.DeepEqual(got, want) {
		t.Errorf("AvailableLevels() = %v, want %v", got, want)
	}
}

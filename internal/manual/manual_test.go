package manual_test

import (
	"github.com/p-n-ai/pai-manual/internal/manual"
)

// introSetupCatalog is the two-section catalog used throughout the navigation tests.
func introSetupCatalog() *manual.StaticCatalog[string] {
	intro := []manual.Section[string]{{
		ID:    "intro",
		Title: "Introduction",
		Subsections: []manual.Subsection[string]{{
			ID:             "s1",
			Title:          "What is it",
			Content:        map[manual.Level]string{manual.LevelBasico: "basics"},
			SearchKeywords: []string{"overview"},
		}},
	}}
	setup := []manual.Section[string]{{
		ID:    "setup",
		Title: "Setup",
		Subsections: []manual.Subsection[string]{{
			ID:      "s2",
			Title:   "Login",
			Content: map[manual.Level]string{manual.LevelBasico: "log in"},
		}},
	}}
	return manual.NewCatalog(intro, setup)
}

// campaignCatalog is a larger catalog with several subsections per section.
func campaignCatalog() *manual.StaticCatalog[string] {
	page := func(id, title string, keywords ...string) manual.Subsection[string] {
		return manual.Subsection[string]{
			ID:             id,
			Title:          title,
			Content:        map[manual.Level]string{manual.LevelBasico: title + " (basico)"},
			SearchKeywords: keywords,
		}
	}
	return manual.NewCatalog(
		[]manual.Section[string]{{
			ID:    "getting-started",
			Title: "Primeros pasos",
			Subsections: []manual.Subsection[string]{
				page("welcome", "Bienvenida", "inicio"),
				page("dashboard", "Panel principal", "métricas", "resumen semanal", "resumen"),
			},
		}},
		[]manual.Section[string]{{
			ID:    "campaigns",
			Title: "Campañas de phishing",
			Subsections: []manual.Subsection[string]{
				page("create", "Crear campaña", "plantilla", "envío"),
				page("schedule", "Programar envíos", "calendario"),
				page("results", "Resultados", "clics", "credenciales"),
			},
		}},
		[]manual.Section[string]{{
			ID:    "templates",
			Title: "Plantillas de correo",
			Subsections: []manual.Subsection[string]{
				page("editor", "Editor HTML", "Phishing simulado"),
			},
		}},
	)
}

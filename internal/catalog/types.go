package catalog

// Manifest lists the topic-group files of a manual in concatenation order.
type Manifest struct {
	Title  string   `yaml:"title"`
	Groups []string `yaml:"groups"`
}

// GroupFile is a topic group loaded from YAML.
type GroupFile struct {
	Sections []SectionDoc `yaml:"sections"`
}

// SectionDoc is a section as authored in YAML.
type SectionDoc struct {
	ID          string          `yaml:"id" json:"id"`
	Title       string          `yaml:"title" json:"title"`
	Subsections []SubsectionDoc `yaml:"subsections" json:"subsections"`
}

// SubsectionDoc is a subsection as authored in YAML. ContentFiles point at markdown
// files, relative to the group file, that provide a level's content instead of an
// inline string.
type SubsectionDoc struct {
	ID           string            `yaml:"id" json:"id"`
	Title        string            `yaml:"title" json:"title"`
	Keywords     []string          `yaml:"keywords,omitempty" json:"keywords,omitempty"`
	Content      map[string]string `yaml:"content,omitempty" json:"content,omitempty"`
	ContentFiles map[string]string `yaml:"content_files,omitempty" json:"-"`
}

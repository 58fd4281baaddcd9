package config

// SourceMode selects where raw export HTML comes from.
type SourceMode string

const (
	// SourceExport fetches documents from the editor's HTML export endpoint.
	SourceExport SourceMode = "export"
	// SourceDir reads pre-downloaded exports from a local directory.
	SourceDir SourceMode = "dir"
)

// DocumentConfig declares one registered document.
type DocumentConfig struct {
	ID    string `yaml:"id" koanf:"id"`
	Name  string `yaml:"name" koanf:"name"`
	Route string `yaml:"route" koanf:"route"`
}

// SourceConfig holds raw-HTML source settings.
type SourceConfig struct {
	Mode           SourceMode `yaml:"mode" koanf:"mode"`
	Dir            string     `yaml:"dir" koanf:"dir"`
	TimeoutSeconds int        `yaml:"timeout_seconds" koanf:"timeout_seconds"`
}

// Config is the top-level docpress configuration, corresponding to
// docpress.yml.
type Config struct {
	Port            int              `yaml:"port" koanf:"port"`
	DataDir         string           `yaml:"data_dir" koanf:"data_dir"`
	IndexFile       string           `yaml:"index_file" koanf:"index_file"`
	AllowAllOrigins bool             `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	Source          SourceConfig     `yaml:"source" koanf:"source"`
	Documents       []DocumentConfig `yaml:"documents" koanf:"documents"`
}

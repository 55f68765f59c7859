package types

// ScanConfig holds settings for the scan stage.
type ScanConfig struct {
	// Root is the repository root that section paths and record paths
	// are resolved against (default ".").
	Root string `json:"root" yaml:"root"`

	// AssetsDir is the directory containing the section subdirectories,
	// relative to Root (default ".github").
	AssetsDir string `json:"assets_dir" yaml:"assets_dir"`

	// OutFile is the manifest destination, relative to Root
	// (default "build/agent_metadata.json").
	OutFile string `json:"out_file" yaml:"out_file"`
}

// CatalogConfig holds settings for the catalog stage.
type CatalogConfig struct {
	// CatalogDir is the directory holding the SQLite index and exports
	// (default "build/catalog").
	CatalogDir string `json:"catalog_dir" yaml:"catalog_dir"`

	// ManifestFile is the manifest the catalog is built from
	// (default "build/agent_metadata.json").
	ManifestFile string `json:"manifest_file" yaml:"manifest_file"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

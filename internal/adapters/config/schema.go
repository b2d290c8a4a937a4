package config

// Fusefile represents the structure of the fuse.yaml project file.
type Fusefile struct {
	Version    string            `yaml:"version"`
	Packages   string            `yaml:"packages"`
	WorkDir    string            `yaml:"workDir"`
	Go         string            `yaml:"go"`
	BuildFlags []string          `yaml:"buildFlags"`
	References map[string]string `yaml:"references"`
	Cache      *bool             `yaml:"cache"`
	Debug      *bool             `yaml:"debug"`
	Verbose    *bool             `yaml:"verbose"`
}

// Package templates locates the project templates bundled with quickstart.
package templates

// ManifestExt is the extension of a template's metadata file. The manifest
// for template <name> lives next to it as <root>/<name>.yaml, outside the
// tree that gets copied.
const ManifestExt = ".yaml"

// Template describes an available template.
type Template struct {
	// Name is the template identifier (its directory name).
	Name string

	// Description comes from the template's manifest, if any.
	Description string

	// Path is the absolute template directory.
	Path string
}

// Manifest is the content of <root>/<name>.yaml.
type Manifest struct {
	// Description is a one-line summary shown by `quickstart templates`.
	Description string `yaml:"description"`
}

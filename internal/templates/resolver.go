package templates

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	oerrors "github.com/quickstart-dev/quickstart/internal/errors"
	"github.com/quickstart-dev/quickstart/internal/output"
)

// dirName is the name of the templates folder next to the installation.
const dirName = "templates"

// Resolver maps template names to directories under a templates root.
type Resolver struct {
	root string
}

// NewResolver creates a resolver for the given templates root.
func NewResolver(root string) *Resolver {
	return &Resolver{root: root}
}

// Root returns the templates root directory.
func (r *Resolver) Root() string {
	return r.root
}

// DefaultRoot returns the templates folder of the running installation:
// <exe-dir>/templates, or <exe-dir>/../templates for a bin/ layout.
// If neither exists, the first candidate is returned so that resolution
// reports a missing template.
func DefaultRoot() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locating executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return rootFor(filepath.Dir(exe)), nil
}

// rootFor picks the templates folder for an installation directory.
func rootFor(installDir string) string {
	candidates := []string{
		filepath.Join(installDir, dirName),
		filepath.Join(installDir, "..", dirName),
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && info.IsDir() {
			return filepath.Clean(c)
		}
	}
	return candidates[0]
}

// Resolve returns the absolute directory of the named template after checking
// that it exists and can be read. It performs no writes.
// Failures are returned as *errors.TemplateNotFoundError.
func (r *Resolver) Resolve(name string) (string, error) {
	if !validName(name) {
		return "", &oerrors.TemplateNotFoundError{Name: name}
	}

	dir, err := filepath.Abs(filepath.Join(r.root, name))
	if err != nil {
		return "", &oerrors.TemplateNotFoundError{Name: name, Err: err}
	}

	if err := checkReadableDir(dir); err != nil {
		return "", &oerrors.TemplateNotFoundError{Name: name, Path: dir, Err: err}
	}

	output.Debug("template resolved", "name", name, "path", dir)
	return dir, nil
}

// List returns all templates under the root, sorted by name.
// A missing root yields an empty list.
func (r *Resolver) List() ([]Template, error) {
	entries, err := os.ReadDir(r.root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading templates directory %s: %w", r.root, err)
	}

	var list []Template
	for _, e := range entries {
		if !e.IsDir() || !validName(e.Name()) {
			continue
		}

		dir, err := filepath.Abs(filepath.Join(r.root, e.Name()))
		if err != nil {
			return nil, err
		}

		t := Template{Name: e.Name(), Path: dir}
		m, err := ReadManifest(r.root, e.Name())
		if err != nil {
			output.Warn("ignoring invalid template manifest", "template", e.Name(), "error", err)
		} else if m != nil {
			t.Description = m.Description
		}
		list = append(list, t)
	}

	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

// Names returns the names of all available templates.
func (r *Resolver) Names() []string {
	list, err := r.List()
	if err != nil {
		return nil
	}
	names := make([]string, len(list))
	for i, t := range list {
		names[i] = t.Name
	}
	return names
}

// ManifestPath returns the manifest file of template name under root.
func ManifestPath(root, name string) string {
	return filepath.Join(root, name+ManifestExt)
}

// ReadManifest parses the manifest of template name under root. It returns
// nil, nil when the template has no manifest.
func ReadManifest(root, name string) (*Manifest, error) {
	file := ManifestPath(root, name)
	data, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(file), err)
	}
	return &m, nil
}

// validName rejects empty names, hidden entries and anything that could
// escape the templates root.
func validName(name string) bool {
	if name == "" || strings.HasPrefix(name, ".") {
		return false
	}
	if strings.ContainsAny(name, `/\`) {
		return false
	}
	return filepath.Base(name) == name
}

// checkReadableDir verifies dir is a directory whose entries can be listed.
func checkReadableDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Readdirnames(1); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

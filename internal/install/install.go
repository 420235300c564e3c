// Package install installs a new project's dependencies with its package manager.
package install

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	oerrors "github.com/quickstart-dev/quickstart/internal/errors"
	"github.com/quickstart-dev/quickstart/internal/output"
)

// Installer installs dependencies for the project in dir.
type Installer interface {
	Install(ctx context.Context, dir string) error
}

// Supported package managers.
const (
	NPM  = "npm"
	Yarn = "yarn"
	PNPM = "pnpm"
)

// lockfiles maps lockfile names to their package manager, in detection order.
var lockfiles = []struct {
	file    string
	manager string
}{
	{"pnpm-lock.yaml", PNPM},
	{"yarn.lock", Yarn},
	{"package-lock.json", NPM},
}

// maxOutputLines bounds how much package manager output an InstallError carries.
const maxOutputLines = 20

// Managers returns the supported package manager names.
func Managers() []string {
	return []string{NPM, Yarn, PNPM}
}

// IsValidManager reports whether name is a supported package manager.
// The empty string is valid and means auto-detect.
func IsValidManager(name string) bool {
	switch name {
	case "", NPM, Yarn, PNPM:
		return true
	default:
		return false
	}
}

// Detect returns the package manager for dir based on its lockfile.
// It falls back to npm.
func Detect(dir string) string {
	for _, lf := range lockfiles {
		if _, err := os.Stat(filepath.Join(dir, lf.file)); err == nil {
			return lf.manager
		}
	}
	return NPM
}

// PackageManager runs `<manager> install`.
type PackageManager struct {
	// Name forces a package manager. Empty means detect from lockfiles.
	Name string

	// lookPath resolves the binary. Tests may override it.
	lookPath func(string) (string, error)
}

// NewPackageManager returns an installer for the given manager name
// (empty to auto-detect).
func NewPackageManager(name string) *PackageManager {
	return &PackageManager{Name: name, lookPath: exec.LookPath}
}

// Install runs the package manager's install command with dir as working
// directory and waits for it. Failures are returned as *errors.InstallError.
func (p *PackageManager) Install(ctx context.Context, dir string) error {
	manager := p.Name
	if manager == "" {
		manager = Detect(dir)
	}
	if !IsValidManager(manager) {
		return &oerrors.InstallError{
			Manager: manager,
			Dir:     dir,
			Err:     fmt.Errorf("unsupported package manager; use one of %s", strings.Join(Managers(), ", ")),
		}
	}

	lookPath := p.lookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	bin, err := lookPath(manager)
	if err != nil {
		return &oerrors.InstallError{Manager: manager, Dir: dir, Err: err}
	}

	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, "install")
	cmd.Dir = dir
	cmd.Stdout = &out
	cmd.Stderr = &out

	log := output.StepLogger(manager)
	log.Debug("installing dependencies", "dir", dir, "bin", bin)

	if err := cmd.Run(); err != nil {
		return &oerrors.InstallError{
			Manager: manager,
			Dir:     dir,
			Output:  tail(out.String(), maxOutputLines),
			Err:     err,
		}
	}

	log.Debug("dependencies installed", "output", tail(out.String(), maxOutputLines))
	return nil
}

// tail returns the last n lines of s.
func tail(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

package project

import (
	"context"
	"errors"
	"os"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/quickstart-dev/quickstart/internal/errors"
	"github.com/quickstart-dev/quickstart/internal/tasks"
	"github.com/quickstart-dev/quickstart/internal/templates"
	"github.com/quickstart-dev/quickstart/internal/testutil"
)

type fakeInitializer struct {
	mu   sync.Mutex
	dirs []string
	err  error
}

func (f *fakeInitializer) Init(_ context.Context, dir string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dirs = append(f.dirs, dir)
	return f.err
}

type fakeInstaller struct {
	dirs []string
	err  error
}

func (f *fakeInstaller) Install(_ context.Context, dir string) error {
	f.dirs = append(f.dirs, dir)
	return f.err
}

type recordingReporter struct {
	events []string
}

func (r *recordingReporter) Started(title string)         { r.events = append(r.events, "start:"+title) }
func (r *recordingReporter) Succeeded(title string)       { r.events = append(r.events, "ok:"+title) }
func (r *recordingReporter) Skipped(title, reason string) { r.events = append(r.events, "skip:"+title) }
func (r *recordingReporter) Failed(title string, _ error) { r.events = append(r.events, "fail:"+title) }

func newTestCreator(t *testing.T, git *fakeInitializer, inst *fakeInstaller, rep tasks.Reporter) *Creator {
	t.Helper()
	opts := []Option{WithInitializer(git), WithInstaller(inst)}
	if rep != nil {
		opts = append(opts, WithRunner(tasks.NewRunner(tasks.WithReporter(rep))))
	}
	return NewCreator(templates.NewResolver(testutil.TemplatesRoot(t)), opts...)
}

// treeEntries lists every non-directory entry under root as sorted slash paths.
func treeEntries(t *testing.T, root string) []string {
	t.Helper()
	var entries []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		entries = append(entries, filepath.ToSlash(rel))
		return nil
	})
	require.NoError(t, err)
	sort.Strings(entries)
	return entries
}

func TestCreateCopiesWholeTemplate(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need extra privileges on windows")
	}

	root := t.TempDir()
	dir := testutil.WriteTemplate(t, root, "sam", map[string]string{
		"template.yaml":  "AWSTemplateFormatVersion: '2010-09-09'\n",
		"index.js":       "exports.handler = async () => ({})\n",
		"events/ev.json": "{}\n",
	})
	require.NoError(t, os.Symlink("index.js", filepath.Join(dir, "main.js")))
	testutil.WriteManifest(t, root, "sam", "AWS SAM function")

	c := NewCreator(templates.NewResolver(root), WithInitializer(&fakeInitializer{}), WithInstaller(&fakeInstaller{}))
	target := filepath.Join(t.TempDir(), "fn")

	result, err := c.Create(context.Background(), &Options{TemplateName: "sam", TargetDirectory: target})
	require.NoError(t, err)

	want := treeEntries(t, dir)
	assert.Equal(t, []string{"events/ev.json", "index.js", "main.js", "template.yaml"}, want)
	assert.Equal(t, want, treeEntries(t, target))
	assert.ElementsMatch(t, want, result.Copy.Copied)

	data, err := os.ReadFile(filepath.Join(target, "template.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "AWSTemplateFormatVersion")
	assert.NoFileExists(t, filepath.Join(target, "sam.yaml"))
}

func TestCreateTypescriptDemoApp(t *testing.T) {
	git := &fakeInitializer{}
	inst := &fakeInstaller{}
	rep := &recordingReporter{}
	c := newTestCreator(t, git, inst, rep)

	target := filepath.Join(t.TempDir(), "demo-app")
	opts := &Options{TemplateName: "typescript", TargetDirectory: target}

	result, err := c.Create(context.Background(), opts)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(target, "index.ts"))
	assert.FileExists(t, filepath.Join(target, "package.json"))
	assert.FileExists(t, filepath.Join(target, "src", "util.ts"))

	assert.Empty(t, git.dirs, "git disabled by default")
	assert.Empty(t, inst.dirs, "install not requested")

	assert.Equal(t, target, result.TargetDirectory)
	assert.ElementsMatch(t, []string{"index.ts", "package.json", "src/util.ts"}, result.Copy.Copied)

	gitRes, ok := result.Report.Get(StepGit)
	require.True(t, ok)
	assert.Equal(t, tasks.StateDisabled, gitRes.State)
	assert.True(t, gitRes.Skipped())

	installRes, ok := result.Report.Get(StepInstall)
	require.True(t, ok)
	assert.Equal(t, tasks.StateSkipped, installRes.State)
	assert.Equal(t, InstallSkipMessage, installRes.SkipReason)

	assert.Equal(t, []string{
		"start:" + StepCopy,
		"ok:" + StepCopy,
		"skip:" + StepInstall,
	}, rep.events, "disabled git step must not be reported")
}

func TestCreateSetsDerivedOptions(t *testing.T) {
	c := newTestCreator(t, &fakeInitializer{}, &fakeInstaller{}, nil)
	target := t.TempDir()

	opts := &Options{TemplateName: "typescript", TargetDirectory: target}
	_, err := c.Create(context.Background(), opts)
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(opts.TemplateDirectory))
	assert.Equal(t, "typescript", filepath.Base(opts.TemplateDirectory))
}

func TestCreateRelativeTargetIsMadeAbsolute(t *testing.T) {
	c := newTestCreator(t, &fakeInitializer{}, &fakeInstaller{}, nil)
	work := t.TempDir()
	t.Chdir(work)

	opts := &Options{TemplateName: "typescript", TargetDirectory: "demo-app"}
	result, err := c.Create(context.Background(), opts)
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(opts.TargetDirectory))
	assert.Equal(t, opts.TargetDirectory, result.TargetDirectory)
	assert.FileExists(t, filepath.Join(work, "demo-app", "index.ts"))
}

func TestCreateEmptyTargetUsesWorkingDirectory(t *testing.T) {
	c := newTestCreator(t, &fakeInitializer{}, &fakeInstaller{}, nil)
	work := t.TempDir()
	t.Chdir(work)

	opts := &Options{TemplateName: "typescript"}
	_, err := c.Create(context.Background(), opts)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(work, "package.json"))
}

func TestCreateGitAndInstallRunInTarget(t *testing.T) {
	git := &fakeInitializer{}
	inst := &fakeInstaller{}
	c := newTestCreator(t, git, inst, nil)
	target := filepath.Join(t.TempDir(), "demo-app")

	result, err := c.Create(context.Background(), &Options{
		TemplateName:    "typescript",
		TargetDirectory: target,
		Git:             true,
		RunInstall:      true,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{target}, git.dirs)
	assert.Equal(t, []string{target}, inst.dirs)

	for _, r := range result.Report.Results {
		assert.Equal(t, tasks.StateSucceeded, r.State, r.Title)
	}
}

func TestCreateUnknownTemplateWritesNothing(t *testing.T) {
	git := &fakeInitializer{}
	inst := &fakeInstaller{}
	c := newTestCreator(t, git, inst, nil)
	target := filepath.Join(t.TempDir(), "demo-app")

	result, err := c.Create(context.Background(), &Options{
		TemplateName:    "nonexistent",
		TargetDirectory: target,
		Git:             true,
		RunInstall:      true,
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, oerrors.ErrTemplateNotFound))
	assert.NoDirExists(t, target, "no write may happen before resolution")
	assert.Empty(t, git.dirs)
	assert.Empty(t, inst.dirs)
}

func TestCreateKeepsExistingFiles(t *testing.T) {
	c := newTestCreator(t, &fakeInitializer{}, &fakeInstaller{}, nil)
	target := t.TempDir()
	existing := filepath.Join(target, "package.json")
	require.NoError(t, os.WriteFile(existing, []byte(`{"name":"mine"}`), 0o644))

	result, err := c.Create(context.Background(), &Options{TemplateName: "typescript", TargetDirectory: target})
	require.NoError(t, err)

	data, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"mine"}`, string(data))
	assert.Equal(t, []string{"package.json"}, result.Copy.Skipped)
}

func TestCreateGitFailureStopsInstall(t *testing.T) {
	gitErr := &oerrors.GitInitError{Dir: "x", Stderr: "fatal: nope", Err: errors.New("exit status 128")}
	git := &fakeInitializer{err: gitErr}
	inst := &fakeInstaller{}
	c := newTestCreator(t, git, inst, nil)

	result, err := c.Create(context.Background(), &Options{
		TemplateName:    "typescript",
		TargetDirectory: t.TempDir(),
		Git:             true,
		RunInstall:      true,
	})
	require.Error(t, err)

	var stepErr *tasks.StepError
	require.True(t, errors.As(err, &stepErr))
	assert.Equal(t, StepGit, stepErr.Title)
	assert.True(t, errors.Is(err, oerrors.ErrGitInit))
	assert.Empty(t, inst.dirs, "install must not run after a failed step")

	installRes, _ := result.Report.Get(StepInstall)
	assert.Equal(t, tasks.StatePending, installRes.State)
}

func TestCreateInstallFailure(t *testing.T) {
	instErr := &oerrors.InstallError{Manager: "npm", Err: errors.New("exit status 1")}
	c := newTestCreator(t, &fakeInitializer{}, &fakeInstaller{err: instErr}, nil)

	_, err := c.Create(context.Background(), &Options{
		TemplateName:    "typescript",
		TargetDirectory: t.TempDir(),
		RunInstall:      true,
	})

	var stepErr *tasks.StepError
	require.True(t, errors.As(err, &stepErr))
	assert.Equal(t, StepInstall, stepErr.Title)
	assert.True(t, errors.Is(err, oerrors.ErrInstall))
}

func TestCreateCancelled(t *testing.T) {
	git := &fakeInitializer{}
	c := newTestCreator(t, git, &fakeInstaller{}, nil)
	target := filepath.Join(t.TempDir(), "demo-app")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Create(ctx, &Options{TemplateName: "typescript", TargetDirectory: target, Git: true})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, git.dirs)
}

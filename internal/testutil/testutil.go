// Package testutil provides test helpers for quickstart tests.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// TypescriptFiles is the content of the typescript template used across tests.
var TypescriptFiles = map[string]string{
	"index.ts":     "console.log('hello')\n",
	"package.json": `{"name":"app","version":"0.0.0"}` + "\n",
	"src/util.ts":  "export const answer = 42\n",
}

// TypescriptDescription is the manifest description of the test typescript template.
const TypescriptDescription = "TypeScript project"

// WriteFile creates a file with the given content in the specified directory.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dirs for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	return path
}

// WriteTemplate creates template name under root with the given files
// (slash-separated relative paths) and returns the template directory.
func WriteTemplate(t *testing.T, root, name string, files map[string]string) string {
	t.Helper()
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("failed to create template dir %s: %v", dir, err)
	}
	for p, content := range files {
		WriteFile(t, dir, p, content)
	}
	return dir
}

// WriteManifest writes the <name>.yaml manifest next to template name.
func WriteManifest(t *testing.T, root, name, description string) {
	t.Helper()
	WriteFile(t, root, name+".yaml", "description: "+description+"\n")
}

// WriteTypescriptTemplate creates the typescript template and its manifest under root.
func WriteTypescriptTemplate(t *testing.T, root string) string {
	t.Helper()
	dir := WriteTemplate(t, root, "typescript", TypescriptFiles)
	WriteManifest(t, root, "typescript", TypescriptDescription)
	return dir
}

// TemplatesRoot returns a fresh templates root holding the typescript template.
func TemplatesRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	WriteTypescriptTemplate(t, root)
	return root
}

// FakeTool writes an executable shell script named name into dir and returns
// its path. Tests that need it are skipped on Windows.
func FakeTool(t *testing.T, dir, name, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fakes need a unix shell")
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755); err != nil {
		t.Fatalf("failed to write fake tool %s: %v", path, err)
	}
	return path
}

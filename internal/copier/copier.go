// Package copier copies a template tree into a target directory without
// overwriting files that already exist there.
package copier

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	oerrors "github.com/quickstart-dev/quickstart/internal/errors"
	"github.com/quickstart-dev/quickstart/internal/output"
)

// Result lists what a copy did, as slash-separated paths relative to the target.
type Result struct {
	// Copied are files written to the target.
	Copied []string

	// Skipped are files left untouched because they already existed.
	Skipped []string
}

// Copy recursively copies every directory, regular file and symlink from src
// into dst. dst is created if missing. Existing entries in dst always win over
// entries from src at the same relative path. Symlinks are recreated with their
// original target, so src must implement fs.ReadLinkFS when it holds any.
// Any failure is returned as *errors.CopyError.
func Copy(ctx context.Context, src fs.FS, dst string) (*Result, error) {
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return nil, &oerrors.CopyError{Path: dst, Err: err}
	}

	result := &Result{}

	err := fs.WalkDir(src, ".", func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return &oerrors.CopyError{Path: p, Err: walkErr}
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if p == "." {
			return nil
		}

		target := filepath.Join(dst, filepath.FromSlash(p))

		switch {
		case d.IsDir():
			info, err := d.Info()
			if err != nil {
				return &oerrors.CopyError{Path: p, Err: err}
			}
			if err := os.MkdirAll(target, dirPerm(info.Mode())); err != nil {
				return &oerrors.CopyError{Path: target, Err: err}
			}
			return nil

		case d.Type().IsRegular():
			copied, err := copyFile(src, p, target)
			if err != nil {
				return err
			}
			result.record(p, copied)
			return nil

		case d.Type()&fs.ModeSymlink != 0:
			copied, err := copySymlink(src, p, target)
			if err != nil {
				return err
			}
			result.record(p, copied)
			return nil

		default:
			output.Debug("skipping special file", "path", p, "mode", d.Type())
			return nil
		}
	})
	if err != nil {
		var copyErr *oerrors.CopyError
		if errors.As(err, &copyErr) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return result, err
		}
		return result, &oerrors.CopyError{Path: dst, Err: err}
	}

	return result, nil
}

func (r *Result) record(p string, copied bool) {
	if copied {
		r.Copied = append(r.Copied, p)
		output.Debug("copied", "path", p)
		return
	}
	r.Skipped = append(r.Skipped, p)
	output.Debug("kept existing", "path", p)
}

// copyFile writes src file p to target unless target already exists.
// It reports whether the file was written.
func copyFile(src fs.FS, p, target string) (bool, error) {
	in, err := src.Open(p)
	if err != nil {
		return false, &oerrors.CopyError{Path: p, Err: err}
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return false, &oerrors.CopyError{Path: p, Err: err}
	}

	// O_EXCL makes the existence check and the create a single operation.
	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm(info.Mode()))
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}
		return false, &oerrors.CopyError{Path: target, Err: err}
	}

	// A partial file would be kept as "existing" by the next run.
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(target)
		return false, &oerrors.CopyError{Path: p, Err: fmt.Errorf("copying contents: %w", err)}
	}
	if err := out.Close(); err != nil {
		os.Remove(target)
		return false, &oerrors.CopyError{Path: target, Err: err}
	}

	return true, nil
}

// copySymlink recreates symlink p at target unless something already exists
// there. The link target is copied verbatim.
func copySymlink(src fs.FS, p, target string) (bool, error) {
	link, err := fs.ReadLink(src, p)
	if err != nil {
		return false, &oerrors.CopyError{Path: p, Err: err}
	}

	// os.Symlink fails with EEXIST for any existing entry, dangling links included.
	if err := os.Symlink(link, target); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}
		return false, &oerrors.CopyError{Path: target, Err: err}
	}
	return true, nil
}

func filePerm(mode fs.FileMode) fs.FileMode {
	perm := mode.Perm()
	if perm == 0 {
		return 0o644
	}
	return perm | 0o200
}

func dirPerm(mode fs.FileMode) fs.FileMode {
	perm := mode.Perm()
	if perm == 0 {
		return 0o755
	}
	return perm | 0o700
}

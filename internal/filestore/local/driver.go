// Package local provides the local-filesystem implementation of
// filestore.Store.
//
// Usage:
//
//	store, err := local.New(filestore.DefaultConfig("uploads"), log)
//	if err != nil { ... }
//
//	err = store.Put(ctx, "report.txt", file)
package local

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/koustreak/filedrop/internal/errs"
	"github.com/koustreak/filedrop/internal/filestore"
	"github.com/koustreak/filedrop/internal/logger"
)

const (
	defaultDirPerm  os.FileMode = 0o755
	defaultFilePerm os.FileMode = 0o644
)

// Driver stores every file directly under a single root directory.
// It keeps no in-memory index: List always re-reads the directory.
// It is safe for concurrent use; conflicting uploads are settled by the
// filesystem's exclusive create.
type Driver struct {
	root     string
	filePerm os.FileMode
	log      *logger.Logger
}

// New resolves cfg.Root and creates it (with parents) when it does not
// exist yet. An existing root is used as-is and never recreated. The root
// is checked once here and not re-validated per call.
func New(cfg *filestore.Config, log *logger.Logger) (*Driver, error) {
	if log == nil {
		log = logger.Nop()
	}
	if cfg == nil || cfg.Root == "" {
		return nil, errs.New(errs.ErrKindInvalidInput, "storage root path is required")
	}

	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindInvalidInput, "failed to resolve storage root", err)
	}

	dirPerm := cfg.DirPerm
	if dirPerm == 0 {
		dirPerm = defaultDirPerm
	}
	filePerm := cfg.FilePerm
	if filePerm == 0 {
		filePerm = defaultFilePerm
	}

	info, err := os.Stat(root)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := os.MkdirAll(root, dirPerm); err != nil {
			return nil, mapError(err, "failed to create storage root")
		}
	case err != nil:
		return nil, mapError(err, "failed to stat storage root")
	case !info.IsDir():
		return nil, errs.New(errs.ErrKindInvalidInput, "storage root "+root+" is not a directory")
	}

	log = log.Component("filestore")
	log.Infof("permanent storage path is at %s", root)

	return &Driver{root: root, filePerm: filePerm, log: log}, nil
}

// Root returns the absolute storage root.
func (d *Driver) Root() string {
	return d.root
}

// --- filestore.Store implementation ---

// List returns the names of all regular entries in the root, sorted.
// Sub-directories are not stored files and are skipped.
func (d *Driver) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, mapError(err, "list cancelled")
	}

	entries, err := os.ReadDir(d.root)
	if err != nil {
		d.log.ErrorWith("failed to list stored files", err, map[string]interface{}{"root": d.root})
		// a vanished root is an I/O failure, not an absent file
		return nil, errs.Wrap(errs.ErrKindIOFailed, "failed to list stored files", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}

	d.log.Debugf("returning list of %d stored files", len(names))
	return names, nil
}

// Put copies src to <root>/<name>. The destination is opened with
// O_CREATE|O_EXCL so an existing file is never overwritten, even by a
// concurrent Put for the same name. A failed copy removes the partial file.
func (d *Driver) Put(ctx context.Context, name string, src io.Reader) error {
	if err := filestore.ValidateName(name); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return mapError(err, "store cancelled")
	}

	dst := filepath.Join(d.root, name)
	d.log.Debugf("storing file at %s", dst)

	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, d.filePerm)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			d.log.Errorf("there already exists a file called %s", name)
			return errs.Wrap(errs.ErrKindAlreadyExists, name+" already exists", err)
		}
		d.log.ErrorWith("failed to create file", err, map[string]interface{}{"file": name})
		return mapError(err, "failed to create file")
	}

	_, err = io.Copy(f, &ctxReader{ctx: ctx, r: src})
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		if rmErr := os.Remove(dst); rmErr != nil {
			d.log.ErrorWith("failed to remove partial file", rmErr, map[string]interface{}{"file": name})
		}
		d.log.ErrorWith("failed to write file", err, map[string]interface{}{"file": name})
		// the copy error never means "exists" or "missing" at this point
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return errs.Wrap(errs.ErrKindTimeout, "store cancelled", err)
		}
		return errs.Wrap(errs.ErrKindIOFailed, "failed to write file", err)
	}

	d.log.Debugf("stored file %s", name)
	return nil
}

// Delete removes <root>/<name>. A missing name, or one that refers to a
// directory, is reported as errs.ErrKindNotFound.
func (d *Driver) Delete(ctx context.Context, name string) error {
	if err := filestore.ValidateName(name); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return mapError(err, "delete cancelled")
	}

	target := filepath.Join(d.root, name)
	d.log.Debugf("attempting to delete stored file at %s", target)

	info, err := os.Lstat(target)
	if err == nil && info.IsDir() {
		err = fs.ErrNotExist
	}
	if err == nil {
		err = os.Remove(target)
	}
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			d.log.Errorf("there is no stored file called %s", name)
			return errs.Wrap(errs.ErrKindNotFound, name+" is not stored", err)
		}
		d.log.ErrorWith("failed to delete file", err, map[string]interface{}{"file": name})
		return mapError(err, "failed to delete file")
	}

	d.log.Debugf("deleted stored file %s", name)
	return nil
}

// --- internal types ---

// ctxReader stops a copy as soon as ctx is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

var _ filestore.Store = (*Driver)(nil)

package ini

import (
	"os"
	"path/filepath"

	"focusctl/internal/focuserr"
)

// WriteOption adjusts how WriteAtomic creates the file.
type WriteOption func(*writeOptions)

type writeOptions struct {
	mode  os.FileMode
	chown bool
	uid   int
	gid   int
}

// WithMode sets the permission bits of the written file.
func WithMode(mode os.FileMode) WriteOption {
	return func(o *writeOptions) { o.mode = mode }
}

// WithOwner makes the written file owned by uid:gid. Requires privilege.
func WithOwner(uid, gid int) WriteOption {
	return func(o *writeOptions) {
		o.chown = true
		o.uid = uid
		o.gid = gid
	}
}

// WriteAtomic replaces path with contents so that no reader ever sees a
// partial file. The data goes to a temporary sibling, is synced, and is then
// renamed over path. On failure the temporary file is removed and path is
// left as it was.
//
// Without WithMode the existing file's permissions are kept (0644 for a new
// file).
func WriteAtomic(path string, contents []byte, opts ...WriteOption) error {
	o := writeOptions{mode: 0o644}
	if info, err := os.Stat(path); err == nil {
		o.mode = info.Mode().Perm()
	}
	for _, opt := range opts {
		opt(&o)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return focuserr.IO(err, "creating temporary file in", dir)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(contents); err != nil {
		tmp.Close()
		return focuserr.IO(err, "writing", tmpPath)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return focuserr.IO(err, "syncing", tmpPath)
	}
	if err := tmp.Close(); err != nil {
		return focuserr.IO(err, "closing", tmpPath)
	}
	if err := os.Chmod(tmpPath, o.mode); err != nil {
		return focuserr.IO(err, "setting mode on", tmpPath)
	}
	if o.chown {
		if err := os.Chown(tmpPath, o.uid, o.gid); err != nil {
			return focuserr.IO(err, "changing owner of", tmpPath)
		}
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return focuserr.IO(err, "renaming onto", path)
	}

	success = true
	return nil
}

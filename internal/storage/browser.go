// filepath: internal/storage/browser.go
// Package storage exposes the directory browser behind GET /api/files.
package storage

import (
	"errors"
	"flexnas/internal/logging"
	"flexnas/internal/models"
	"flexnas/internal/services"
	"fmt"
	"os"
	"path"
	"sort"

	"github.com/spf13/afero"
)

// Entry types reported in FileEntry.Type.
const (
	TypeDirectory = "directory"
	TypeFile      = "file"
)

// Browser lists directories below a fixed root.
type Browser struct {
	fs afero.Fs
}

var _ services.FileBrowser = (*Browser)(nil)

// NewBrowser confines listings to root on the host filesystem.
func NewBrowser(root string) *Browser {
	return NewBrowserFs(afero.NewBasePathFs(afero.NewOsFs(), root))
}

// NewBrowserFs lists fs directly; fs is expected to be rooted already.
func NewBrowserFs(fs afero.Fs) *Browser {
	return &Browser{fs: fs}
}

// List returns the entries of the directory at p, directories first and
// then by name. Symlinks are reported but never followed.
func (b *Browser) List(p string) ([]models.FileEntry, error) {
	dir, err := cleanPath(p)
	if err != nil {
		return nil, err
	}

	info, err := b.stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: directory '%s'", services.ErrNotFound, dir)
		}
		return nil, fmt.Errorf("failed to stat '%s': %w", dir, err)
	}
	if !info.IsDir() {
		return nil, ErrNotDirectory
	}

	infos, err := afero.ReadDir(b.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory '%s': %w", dir, err)
	}

	entries := make([]models.FileEntry, 0, len(infos))
	for _, fi := range infos {
		entry := models.FileEntry{
			Name:     fi.Name(),
			Path:     path.Join(dir, fi.Name()),
			Type:     TypeFile,
			Modified: fi.ModTime().UTC(),
		}
		if fi.IsDir() {
			entry.Type = TypeDirectory
			entry.IsDirectory = true
		} else {
			size := fi.Size()
			entry.Size = &size
		}
		entries = append(entries, entry)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsDirectory != entries[j].IsDirectory {
			return entries[i].IsDirectory
		}
		return entries[i].Name < entries[j].Name
	})
	logging.Log.Debugf("Browser: listed %d entries in '%s'", len(entries), dir)
	return entries, nil
}

// stat refuses to traverse a symlink at the target itself.
func (b *Browser) stat(name string) (os.FileInfo, error) {
	if l, ok := b.fs.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(name)
		if err != nil {
			return nil, err
		}
		if info.Mode()&os.ModeSymlink != 0 {
			return nil, ErrNotDirectory
		}
		return info, nil
	}
	return b.fs.Stat(name)
}

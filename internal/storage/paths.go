// filepath: internal/storage/paths.go
package storage

import (
	"flexnas/internal/services"
	"fmt"
	"path"
	"strings"
)

// ErrPathEscapesRoot is returned for paths that resolve above the browse root.
var ErrPathEscapesRoot = fmt.Errorf("%w: path escapes the browse root", services.ErrValidation)

// ErrNotDirectory is returned when a listing targets a regular file.
var ErrNotDirectory = fmt.Errorf("%w: path is not a directory", services.ErrValidation)

// cleanPath turns a client-supplied path into a slash-rooted path relative
// to the browse root. "", "." and "/" all mean the root itself.
func cleanPath(p string) (string, error) {
	if strings.ContainsRune(p, 0) {
		return "", fmt.Errorf("%w: path contains a NUL byte", services.ErrValidation)
	}
	p = strings.ReplaceAll(p, "\\", "/")
	rel := path.Clean(strings.TrimLeft(p, "/"))
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", ErrPathEscapesRoot
	}
	if rel == "." {
		return "/", nil
	}
	return "/" + rel, nil
}

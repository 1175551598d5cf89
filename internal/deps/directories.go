package deps

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

// DirectoryRequirement names a directory captioner writes into.
type DirectoryRequirement struct {
	Name string
	Path string
	// Optional directories may be unset; an empty Path then passes.
	Optional bool
}

// CheckDirectories reports whether each directory exists and is writable, or
// can be created because its nearest existing ancestor is writable.
func CheckDirectories(requirements []DirectoryRequirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		path := strings.TrimSpace(req.Path)
		status := Status{
			Name:     req.Name,
			Command:  path,
			Optional: req.Optional,
		}
		switch {
		case path == "" && req.Optional:
			status.Available = true
			status.Detail = "not configured"
		case path == "":
			status.Detail = "path not configured"
		default:
			status.Available, status.Detail = checkWritable(path)
		}
		results = append(results, status)
	}
	return results
}

func checkWritable(path string) (bool, string) {
	info, err := os.Stat(path)
	switch {
	case err == nil && !info.IsDir():
		return false, "not a directory"
	case err == nil:
		if err := unix.Access(path, unix.W_OK|unix.X_OK); err != nil {
			return false, fmt.Sprintf("not writable: %v", err)
		}
		return true, ""
	case !errors.Is(err, fs.ErrNotExist):
		return false, fmt.Sprintf("stat failed: %v", err)
	}

	parent := filepath.Dir(path)
	for parent != filepath.Dir(parent) {
		if _, err := os.Stat(parent); err == nil {
			break
		}
		parent = filepath.Dir(parent)
	}
	if err := unix.Access(parent, unix.W_OK|unix.X_OK); err != nil {
		return false, fmt.Sprintf("cannot create under %s: %v", parent, err)
	}
	return true, "will be created"
}

package utils

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/funvibe/symtab/internal/config"
)

// HasDeclExt checks if a path has a recognized declaration file extension
func HasDeclExt(path string) bool {
	for _, ext := range config.DeclFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// CollectDeclFiles expands directories into the declaration files they
// contain, sorted by path. Plain file arguments are kept as given, in order,
// whatever their extension.
func CollectDeclFiles(paths []string) ([]string, error) {
	var out []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			out = append(out, path)
			continue
		}

		var found []string
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && HasDeclExt(p) {
				found = append(found, p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		sort.Strings(found)
		out = append(out, found...)
	}
	return out, nil
}

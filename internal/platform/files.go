package platform

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// findFiles walks roots and returns every file with the given extension.
// Roots that do not exist are skipped.
func findFiles(roots []string, ext string) ([]string, error) {
	var files []string
	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if path == root && errors.Is(err, fs.ErrNotExist) {
					return nil
				}
				return err
			}
			if !d.IsDir() && filepath.Ext(d.Name()) == ext {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

// collectJars expands directories to the .jar files found below them.
// Anything else is taken as a jar path as is.
func collectJars(paths []string) ([]string, error) {
	var jars []string
	for _, p := range paths {
		if st, err := os.Stat(p); err == nil && st.IsDir() {
			found, err := findFiles([]string{p}, ".jar")
			if err != nil {
				return nil, err
			}
			jars = append(jars, found...)
			continue
		}
		jars = append(jars, p)
	}
	return jars, nil
}

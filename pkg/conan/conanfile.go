package conan

import (
	"fmt"
	"os"
	"path/filepath"
)

// conanfileNames lists recognized recipe file names, most preferred first.
var conanfileNames = []string{"conanfile.py", "conanfile.txt"}

// FindConanfile locates a conanfile.py or conanfile.txt.
//
// It performs the following operations:
//   - If path names a file, verifies it is a recognized conanfile
//   - If path names a directory, probes for conanfile.py then conanfile.txt
//
// Parameters:
//   - path: A recipe file path or a directory containing one
//
// Returns:
//   - string: The resolved conanfile path
//   - error: When path is invalid or no conanfile is found
func FindConanfile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("invalid path %q: %w", path, err)
	}

	if !info.IsDir() {
		base := filepath.Base(path)
		for _, name := range conanfileNames {
			if base == name {
				return path, nil
			}
		}
		return "", fmt.Errorf("path is not a conanfile: %s", path)
	}

	for _, name := range conanfileNames {
		candidate := filepath.Join(path, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("could not find conanfile in path: %s", path)
}

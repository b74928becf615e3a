package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/mod/modfile"
)

// ParseModuleName extracts the module path from a go.mod file
func ParseModuleName(goModPath string) (string, error) {
	cleanPath := filepath.Clean(goModPath)
	if filepath.Base(cleanPath) != "go.mod" {
		return "", fmt.Errorf("file is not a go.mod file: %s", goModPath)
	}

	content, err := os.ReadFile(cleanPath)
	if err != nil {
		return "", WrapLoadError("go.mod", err)
	}

	modulePath := modfile.ModulePath(content)
	if modulePath == "" {
		return "", fmt.Errorf("no module declaration found in %s", cleanPath)
	}

	return modulePath, nil
}

// FindGoModFile searches for go.mod starting from startDir and walking up
func FindGoModFile(startDir string) (string, error) {
	currentDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		goModPath := filepath.Join(currentDir, "go.mod")
		if info, err := os.Stat(goModPath); err == nil && !info.IsDir() {
			return goModPath, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return "", fmt.Errorf("go.mod file not found above %s", startDir)
}

// ModuleNameFor returns the module path of the module containing dir
func ModuleNameFor(dir string) (string, error) {
	goModPath, err := FindGoModFile(dir)
	if err != nil {
		return "", err
	}
	return ParseModuleName(goModPath)
}

package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ibexa/ci-scripts/internal/domain/entities"
	"github.com/ibexa/ci-scripts/internal/domain/repositories"
)

const (
	indent   = "    "
	fileMode = 0o644
)

// JSONManifestRepository stores dependencies.json as pretty-printed JSON with unescaped slashes.
type JSONManifestRepository struct{}

// NewManifestRepository creates a JSONManifestRepository.
func NewManifestRepository() repositories.ManifestRepository {
	return &JSONManifestRepository{}
}

func (r *JSONManifestRepository) Save(dir string, manifest *entities.DependencyManifest) (string, error) {
	content, err := Encode(manifest)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, entities.DependenciesFile)
	if err = os.WriteFile(path, content, fileMode); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

func (r *JSONManifestRepository) Load(path string) (*entities.DependencyManifest, error) {
	content, err := r.read(path)
	if err != nil {
		return nil, err
	}

	manifest := entities.NewDependencyManifest()
	if err = json.Unmarshal(content, manifest); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", entities.ErrManifestInvalid, path, err)
	}
	if manifest.Packages == nil {
		manifest.Packages = []entities.PullRequestDependency{}
	}
	return manifest, nil
}

func (r *JSONManifestRepository) read(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf(
				"%w: %s, please run the dependencies:link command first",
				entities.ErrManifestNotFound, path,
			)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return content, nil
}

// Encode renders the manifest with four-space indentation, leaving "/" and "&" unescaped.
func Encode(manifest *entities.DependencyManifest) ([]byte, error) {
	var buffer bytes.Buffer
	encoder := json.NewEncoder(&buffer)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", indent)
	if err := encoder.Encode(manifest); err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", entities.DependenciesFile, err)
	}
	return bytes.TrimRight(buffer.Bytes(), "\n"), nil
}

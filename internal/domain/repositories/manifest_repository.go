package repositories

import "github.com/ibexa/ci-scripts/internal/domain/entities"

// ManifestRepository persists the dependencies manifest shared by both workflows.
type ManifestRepository interface {
	// Save writes the manifest into dir and returns the written file path.
	Save(dir string, manifest *entities.DependencyManifest) (string, error)

	// Load reads and decodes the manifest at path. A missing file or malformed JSON
	// is reported with ErrManifestNotFound or ErrManifestInvalid.
	Load(path string) (*entities.DependencyManifest, error)
}

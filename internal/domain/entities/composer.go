package entities

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ComposerFile is the name of the package manifest read from target repositories.
const ComposerFile = "composer.json"

// BranchAlias maps a development branch to the version it stands for (e.g. "dev-main" => "4.6.x-dev").
type BranchAlias struct {
	Branch string
	Alias  string
}

// ComposerManifest is the subset of composer.json used to build dependency overrides.
type ComposerManifest struct {
	Name string

	// BranchAliases keeps the declaration order of extra.branch-alias.
	BranchAliases []BranchAlias
}

type composerDocument struct {
	Name  string `json:"name"`
	Extra struct {
		BranchAlias json.RawMessage `json:"branch-alias"`
	} `json:"extra"`
}

// ParseComposerManifest decodes composer.json content.
func ParseComposerManifest(content []byte) (*ComposerManifest, error) {
	var document composerDocument
	if err := json.Unmarshal(content, &document); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ComposerFile, err)
	}

	aliases, err := parseBranchAliases(document.Extra.BranchAlias)
	if err != nil {
		return nil, fmt.Errorf("failed to parse extra.branch-alias of %q: %w", document.Name, err)
	}

	return &ComposerManifest{
		Name:          document.Name,
		BranchAliases: aliases,
	}, nil
}

// FirstBranchAlias returns the alias of the first declared branch alias.
func (m *ComposerManifest) FirstBranchAlias() (string, error) {
	if len(m.BranchAliases) == 0 {
		return "", fmt.Errorf("%w: %s of %q declares no extra.branch-alias entry", ErrBranchAliasNotFound, ComposerFile, m.Name)
	}
	return m.BranchAliases[0].Alias, nil
}

// parseBranchAliases walks the JSON object token by token so the declaration order survives.
// An absent value, null or an empty array (how PHP encodes an empty map) yields no aliases.
func parseBranchAliases(raw json.RawMessage) ([]BranchAlias, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte("[]")) {
		return nil, nil
	}

	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	token, err := decoder.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("expected an object")
	}

	var aliases []BranchAlias
	for decoder.More() {
		keyToken, keyErr := decoder.Token()
		if keyErr != nil {
			return nil, keyErr
		}
		branch, _ := keyToken.(string)

		var alias string
		if valueErr := decoder.Decode(&alias); valueErr != nil {
			return nil, fmt.Errorf("alias of %q: %w", branch, valueErr)
		}
		aliases = append(aliases, BranchAlias{Branch: branch, Alias: alias})
	}

	if _, err = decoder.Token(); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return aliases, nil
}

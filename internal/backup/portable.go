package backup

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dharmalog/dharmalog/internal/constants"
	apperrors "github.com/dharmalog/dharmalog/internal/errors"
	"github.com/dharmalog/dharmalog/internal/models"
	"github.com/dharmalog/dharmalog/internal/storage"
)

// requiredKeys are the collections a portable backup must carry to be
// importable. A file missing any of them is rejected before anything is
// written.
var requiredKeys = []string{constants.KeyCards, constants.KeyPractices, constants.KeyTeachings}

// WritePortable exports the full store contents as a portable JSON file.
// When passphrase is non-empty the payload is sealed with it.
func WritePortable(store storage.Provider, path, passphrase string) error {
	data, err := store.ExportAll()
	if err != nil {
		return fmt.Errorf("%w: export failed: %v", apperrors.ErrStorage, err)
	}

	payload, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize backup: %w", err)
	}

	if passphrase != "" {
		payload, err = seal(payload, passphrase)
		if err != nil {
			return fmt.Errorf("failed to encrypt backup: %w", err)
		}
	}

	if err := os.WriteFile(path, payload, 0600); err != nil {
		return fmt.Errorf("%w: failed to write backup: %v", apperrors.ErrStorage, err)
	}
	return nil
}

// ReadPortable parses and validates a portable backup file. Encrypted files
// need the passphrase they were sealed with.
func ReadPortable(path, passphrase string) (models.Backup, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return models.Backup{}, fmt.Errorf("%w: failed to read backup: %v", apperrors.ErrStorage, err)
	}

	if isSealed(payload) {
		if passphrase == "" {
			return models.Backup{}, apperrors.Formatf("backup is encrypted, a passphrase is required")
		}
		payload, err = open(payload, passphrase)
		if err != nil {
			return models.Backup{}, apperrors.Formatf("failed to decrypt backup: %v", err)
		}
	}

	return parsePortable(payload)
}

// ImportPortable validates the file and replaces the store contents in one
// step. Validation failures leave the store untouched.
func ImportPortable(store storage.Provider, path, passphrase string) (models.Backup, error) {
	data, err := ReadPortable(path, passphrase)
	if err != nil {
		return models.Backup{}, err
	}
	if err := store.ImportAll(data); err != nil {
		return models.Backup{}, fmt.Errorf("%w: import failed: %v", apperrors.ErrStorage, err)
	}
	return data, nil
}

func parsePortable(payload []byte) (models.Backup, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(payload, &probe); err != nil {
		return models.Backup{}, apperrors.Formatf("backup is not valid JSON: %v", err)
	}

	for _, key := range requiredKeys {
		if _, ok := probe[key]; !ok {
			return models.Backup{}, apperrors.Formatf("backup is missing required key %q", key)
		}
	}

	var data models.Backup
	if err := json.Unmarshal(payload, &data); err != nil {
		return models.Backup{}, apperrors.Formatf("backup has malformed contents: %v", err)
	}
	return data, nil
}

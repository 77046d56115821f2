package credentials

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/apexfit/apexfit-go/internal/client/models"
	"github.com/apexfit/apexfit-go/internal/common"
	"github.com/apexfit/apexfit-go/internal/cryptox"
)

// FileBackend stores the token pair sealed in a JSON file. The sealing key
// is derived from the configured client secret and a per-file random salt,
// so the tokens are not readable at rest.
type FileBackend struct {
	path   string
	secret []byte
}

// sealedFile is the on-disk envelope.
type sealedFile struct {
	Salt       []byte `json:"salt"`
	Nonce      []byte `json:"nonce"`
	Ciphertext []byte `json:"ciphertext"`
}

func NewFileBackend(path string, secret []byte) *FileBackend {
	return &FileBackend{path: path, secret: secret}
}

func (f *FileBackend) Name() string { return "file" }

func (f *FileBackend) Get(_ context.Context) (*models.Credentials, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	var env sealedFile
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to parse credentials file: %w", err)
	}

	key := cryptox.DeriveKey(f.secret, env.Salt)
	var c models.Credentials
	if err := cryptox.OpenJSON(env.Ciphertext, env.Nonce, key, &c); err != nil {
		return nil, fmt.Errorf("failed to unseal credentials file: %w", err)
	}
	return &c, nil
}

func (f *FileBackend) Set(_ context.Context, creds models.Credentials) error {
	salt := common.GenerateRandByteArray(16)
	key := cryptox.DeriveKey(f.secret, salt)

	ciphertext, nonce, err := cryptox.SealJSON(creds, key)
	if err != nil {
		return fmt.Errorf("failed to seal credentials: %w", err)
	}

	data, err := json.Marshal(sealedFile{Salt: salt, Nonce: nonce, Ciphertext: ciphertext})
	if err != nil {
		return err
	}

	// Write-then-rename keeps the pair atomic on disk.
	tmp := f.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("failed to create credentials dir: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write credentials file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("failed to replace credentials file: %w", err)
	}
	return nil
}

func (f *FileBackend) Clear(_ context.Context) error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove credentials file: %w", err)
	}
	return nil
}

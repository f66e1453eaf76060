package auth

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/zalando/go-keyring"
)

// StorageBackend defines the interface for credential storage
type StorageBackend interface {
	Save(profile string, data []byte) error
	Load(profile string) ([]byte, error)
	Delete(profile string) error
	Name() string
}

// KeyringStorage uses the system keyring for credential storage
type KeyringStorage struct {
	serviceName string
}

// NewKeyringStorage creates a keyring storage backend
func NewKeyringStorage(serviceName string) *KeyringStorage {
	return &KeyringStorage{serviceName: serviceName}
}

func (s *KeyringStorage) Save(profile string, data []byte) error {
	return keyring.Set(s.serviceName, profile, string(data))
}

func (s *KeyringStorage) Load(profile string) ([]byte, error) {
	data, err := keyring.Get(s.serviceName, profile)
	if err != nil {
		return nil, err
	}
	return []byte(data), nil
}

func (s *KeyringStorage) Delete(profile string) error {
	return keyring.Delete(s.serviceName, profile)
}

func (s *KeyringStorage) Name() string {
	return "system-keyring"
}

// FileStorage stores credentials as files under the config directory.
// Fallback for hosts without a usable keyring; files are written with
// owner-only permissions.
type FileStorage struct {
	baseDir string
}

// NewFileStorage creates a file storage backend
func NewFileStorage(baseDir string) *FileStorage {
	return &FileStorage{baseDir: baseDir}
}

func (s *FileStorage) credentialPath(profile string) string {
	return filepath.Join(s.baseDir, "credentials", profile+".json")
}

func (s *FileStorage) Save(profile string, data []byte) error {
	credFile := s.credentialPath(profile)
	if err := os.MkdirAll(filepath.Dir(credFile), 0700); err != nil {
		return err
	}
	return os.WriteFile(credFile, data, 0600)
}

func (s *FileStorage) Load(profile string) ([]byte, error) {
	return os.ReadFile(s.credentialPath(profile))
}

func (s *FileStorage) Delete(profile string) error {
	err := os.Remove(s.credentialPath(profile))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *FileStorage) Name() string {
	return "file"
}

// checkKeyringAvailable tests if the system keyring is usable
func checkKeyringAvailable(serviceName string) bool {
	testKey := fmt.Sprintf("%s-probe", serviceName)
	if err := keyring.Set(serviceName, testKey, "probe"); err != nil {
		return false
	}
	_ = keyring.Delete(serviceName, testKey)
	return true
}

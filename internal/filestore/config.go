package filestore

import "os"

// Provider identifies the file storage backend.
type Provider string

const (
	ProviderLocal Provider = "local"
)

// Config holds all settings needed to open a file storage backend.
type Config struct {
	// Provider is the storage backend (e.g. ProviderLocal).
	Provider Provider `yaml:"provider"`

	// Root is the directory that owns every stored file.
	// It is created, with its parents, when missing.
	Root string `yaml:"uploaded_files_path"`

	// DirPerm is the permission used when Root has to be created.
	DirPerm os.FileMode `yaml:"-"`

	// FilePerm is the permission of newly stored files.
	FilePerm os.FileMode `yaml:"-"`
}

// DefaultConfig returns a local-filesystem config rooted at root.
func DefaultConfig(root string) *Config {
	return &Config{
		Provider: ProviderLocal,
		Root:     root,
		DirPerm:  0o755,
		FilePerm: 0o644,
	}
}

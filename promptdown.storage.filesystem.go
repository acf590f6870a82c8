package promptdown

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// FilesystemStorage stores prompts as promptdown files on the filesystem,
// so stored documents stay hand-editable and diffable. Versioning is
// supported through separate files per version; storage metadata lives in a
// YAML sidecar next to each document.
//
// Directory structure:
//
//	<root>/
//	  <prompt-name>/
//	    v1.prompt.md
//	    v1.meta.yaml
//	    v2.prompt.md
//	    v2.meta.yaml
//	    ...
type FilesystemStorage struct {
	mu     sync.RWMutex
	root   string
	closed bool
}

// Filesystem file name parts
const (
	filesystemVersionPrefix = "v"
	filesystemMetaSuffix    = ".meta.yaml"
)

// Filesystem storage error messages
const (
	ErrMsgInvalidStorageRoot    = "invalid storage root path"
	ErrMsgCreateStorageDir      = "failed to create storage directory"
	ErrMsgReadStorageDir        = "failed to read storage directory"
	ErrMsgWritePrompt           = "failed to write prompt file"
	ErrMsgReadPrompt            = "failed to read prompt file"
	ErrMsgDeletePrompt          = "failed to delete prompt"
	ErrMsgMarshalMeta           = "failed to marshal prompt metadata"
	ErrMsgUnmarshalMeta         = "failed to unmarshal prompt metadata"
	ErrMsgInvalidPromptName     = "invalid prompt name"
	ErrMsgPathTraversalDetected = "path traversal detected in prompt name"
)

// FilesystemStorageDriver is the driver for creating FilesystemStorage instances.
type FilesystemStorageDriver struct{}

func init() {
	RegisterStorageDriver(StorageDriverNameFilesystem, &FilesystemStorageDriver{})
}

// Open creates a new FilesystemStorage instance.
// The connection string is the root directory path.
func (d *FilesystemStorageDriver) Open(connectionString string) (PromptStorage, error) {
	return NewFilesystemStorage(connectionString)
}

// NewFilesystemStorage creates a new filesystem-based prompt storage.
// The root directory will be created if it doesn't exist.
func NewFilesystemStorage(root string) (*FilesystemStorage, error) {
	if root == "" {
		return nil, &StorageError{Message: ErrMsgInvalidStorageRoot}
	}

	if err := os.MkdirAll(root, FilesystemDirPermissions); err != nil {
		return nil, &StorageError{
			Message: ErrMsgCreateStorageDir,
			Name:    root,
			Cause:   err,
		}
	}

	return &FilesystemStorage{
		root: root,
	}, nil
}

// Get retrieves the latest version of a prompt by name.
func (s *FilesystemStorage) Get(ctx context.Context, name string) (*StoredPrompt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := validatePromptNameForFilesystem(name); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	versions, err := s.listVersionsInternal(name)
	if err != nil {
		return nil, err
	}
	if len(versions) == 0 {
		return nil, NewStoragePromptNotFoundError(name)
	}

	// Latest version is first (sorted descending)
	return s.loadPrompt(name, versions[0])
}

// GetByID retrieves a specific prompt version by ID.
// This scans all prompts; the filesystem layout is keyed by name.
func (s *FilesystemStorage) GetByID(ctx context.Context, id PromptID) (*StoredPrompt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, &StorageError{Message: ErrMsgReadStorageDir, Cause: err}
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		versions, err := s.listVersionsInternal(entry.Name())
		if err != nil {
			continue
		}
		for _, version := range versions {
			prompt, err := s.loadPrompt(entry.Name(), version)
			if err != nil {
				continue
			}
			if prompt.ID == id {
				return prompt, nil
			}
		}
	}

	return nil, NewStoragePromptNotFoundError(string(id))
}

// GetVersion retrieves a specific version of a prompt.
func (s *FilesystemStorage) GetVersion(ctx context.Context, name string, version int) (*StoredPrompt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := validatePromptNameForFilesystem(name); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	return s.loadPrompt(name, version)
}

// Save stores a prompt, creating a new version if one exists.
// The source must parse as a promptdown document.
func (s *FilesystemStorage) Save(ctx context.Context, prompt *StoredPrompt) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := validateStoredPrompt(prompt); err != nil {
		return err
	}
	if err := validatePromptNameForFilesystem(prompt.Name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}

	promptDir := filepath.Join(s.root, prompt.Name)
	if err := os.MkdirAll(promptDir, FilesystemDirPermissions); err != nil {
		return &StorageError{Message: ErrMsgCreateStorageDir, Name: promptDir, Cause: err}
	}

	versions, err := s.listVersionsInternal(prompt.Name)
	if err != nil {
		return err
	}
	nextVersion := 1
	if len(versions) > 0 {
		nextVersion = versions[0] + 1
	}

	now := time.Now()
	stored := copyStoredPrompt(prompt)
	stored.ID = generatePromptID()
	stored.Version = nextVersion
	stored.CreatedAt = now
	stored.UpdatedAt = now

	sourcePath := s.sourcePath(prompt.Name, nextVersion)
	if err := os.WriteFile(sourcePath, []byte(stored.Source), FilesystemFilePermissions); err != nil {
		return &StorageError{Message: ErrMsgWritePrompt, Name: prompt.Name, Cause: err}
	}

	metaBytes, err := yaml.Marshal(stored)
	if err != nil {
		return &StorageError{Message: ErrMsgMarshalMeta, Name: prompt.Name, Cause: err}
	}
	metaPath := s.metaPath(prompt.Name, nextVersion)
	if err := os.WriteFile(metaPath, metaBytes, FilesystemFilePermissions); err != nil {
		return &StorageError{Message: ErrMsgWritePrompt, Name: prompt.Name, Cause: err}
	}

	// Reflect generated fields back to the caller's value
	prompt.ID = stored.ID
	prompt.Version = stored.Version
	prompt.CreatedAt = stored.CreatedAt
	prompt.UpdatedAt = stored.UpdatedAt

	return nil
}

// Delete removes all versions of a prompt by name.
func (s *FilesystemStorage) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := validatePromptNameForFilesystem(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}

	promptDir := filepath.Join(s.root, name)
	if _, err := os.Stat(promptDir); os.IsNotExist(err) {
		return NewStoragePromptNotFoundError(name)
	}

	if err := os.RemoveAll(promptDir); err != nil {
		return &StorageError{Message: ErrMsgDeletePrompt, Name: name, Cause: err}
	}
	return nil
}

// DeleteVersion removes a specific version of a prompt.
func (s *FilesystemStorage) DeleteVersion(ctx context.Context, name string, version int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := validatePromptNameForFilesystem(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}

	sourcePath := s.sourcePath(name, version)
	if _, err := os.Stat(sourcePath); os.IsNotExist(err) {
		return NewStorageVersionNotFoundError(name, version)
	}

	if err := os.Remove(sourcePath); err != nil {
		return &StorageError{Message: ErrMsgDeletePrompt, Name: name, Version: version, Cause: err}
	}
	_ = os.Remove(s.metaPath(name, version))

	// Remove the directory when the last version is gone
	if remaining, err := s.listVersionsInternal(name); err == nil && len(remaining) == 0 {
		_ = os.Remove(filepath.Join(s.root, name))
	}

	return nil
}

// List returns prompts matching the query, ordered by name then by version
// descending.
func (s *FilesystemStorage) List(ctx context.Context, query *PromptQuery) ([]*StoredPrompt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, &StorageError{Message: ErrMsgReadStorageDir, Cause: err}
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	var results []*StoredPrompt
	for _, name := range names {
		versions, err := s.listVersionsInternal(name)
		if err != nil {
			continue
		}
		for i, version := range versions {
			if i > 0 && (query == nil || !query.IncludeAllVersions) {
				break
			}
			prompt, err := s.loadPrompt(name, version)
			if err != nil {
				continue
			}
			if matchesQuery(prompt, query) {
				results = append(results, prompt)
			}
		}
	}

	return paginate(results, query), nil
}

// Exists checks if a prompt with the given name exists.
func (s *FilesystemStorage) Exists(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	if err := validatePromptNameForFilesystem(name); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false, NewStorageClosedError()
	}

	versions, err := s.listVersionsInternal(name)
	if err != nil {
		return false, err
	}
	return len(versions) > 0, nil
}

// ListVersions returns all version numbers for a prompt, newest first.
func (s *FilesystemStorage) ListVersions(ctx context.Context, name string) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := validatePromptNameForFilesystem(name); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	return s.listVersionsInternal(name)
}

// Close releases the storage. Subsequent operations fail.
func (s *FilesystemStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}

// sourcePath returns the path of a version's promptdown file.
func (s *FilesystemStorage) sourcePath(name string, version int) string {
	file := filesystemVersionPrefix + strconv.Itoa(version) + PromptFileExtension
	return filepath.Join(s.root, name, file)
}

// metaPath returns the path of a version's metadata sidecar.
func (s *FilesystemStorage) metaPath(name string, version int) string {
	file := filesystemVersionPrefix + strconv.Itoa(version) + filesystemMetaSuffix
	return filepath.Join(s.root, name, file)
}

// listVersionsInternal returns version numbers for a prompt, sorted
// descending. Caller must hold at least a read lock.
func (s *FilesystemStorage) listVersionsInternal(name string) ([]int, error) {
	promptDir := filepath.Join(s.root, name)
	entries, err := os.ReadDir(promptDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &StorageError{Message: ErrMsgReadStorageDir, Name: name, Cause: err}
	}

	var versions []int
	for _, entry := range entries {
		fileName := entry.Name()
		if !strings.HasPrefix(fileName, filesystemVersionPrefix) || !strings.HasSuffix(fileName, PromptFileExtension) {
			continue
		}
		numText := strings.TrimSuffix(strings.TrimPrefix(fileName, filesystemVersionPrefix), PromptFileExtension)
		version, err := strconv.Atoi(numText)
		if err != nil {
			continue
		}
		versions = append(versions, version)
	}

	sort.Sort(sort.Reverse(sort.IntSlice(versions)))
	return versions, nil
}

// loadPrompt reads a version's promptdown file and metadata sidecar.
// Caller must hold at least a read lock.
func (s *FilesystemStorage) loadPrompt(name string, version int) (*StoredPrompt, error) {
	sourceBytes, err := os.ReadFile(s.sourcePath(name, version))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewStorageVersionNotFoundError(name, version)
		}
		return nil, &StorageError{Message: ErrMsgReadPrompt, Name: name, Version: version, Cause: err}
	}

	prompt := &StoredPrompt{
		Name:    name,
		Version: version,
	}

	metaBytes, err := os.ReadFile(s.metaPath(name, version))
	if err == nil {
		if err := yaml.Unmarshal(metaBytes, prompt); err != nil {
			return nil, &StorageError{Message: ErrMsgUnmarshalMeta, Name: name, Version: version, Cause: err}
		}
	}

	prompt.Source = string(sourceBytes)
	return prompt, nil
}

// validatePromptNameForFilesystem validates a prompt name for filesystem
// safety. Prevents path traversal and invalid filesystem characters.
func validatePromptNameForFilesystem(name string) error {
	if name == "" {
		return &StorageError{Message: ErrMsgInvalidPromptName}
	}
	if strings.Contains(name, "..") {
		return &StorageError{Message: ErrMsgPathTraversalDetected, Name: name}
	}
	if strings.ContainsAny(name, "/\\:*?\"<>|") {
		return &StorageError{Message: ErrMsgInvalidPromptName, Name: name}
	}
	return nil
}

// Ensure FilesystemStorage implements PromptStorage
var _ PromptStorage = (*FilesystemStorage)(nil)

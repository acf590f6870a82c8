package promptdown

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStorage is an in-memory implementation of PromptStorage.
// It is primarily intended for testing and development.
// All data is lost when the process terminates.
type MemoryStorage struct {
	mu      sync.RWMutex
	prompts map[string][]*StoredPrompt // name -> versions (sorted by version desc)
	byID    map[PromptID]*StoredPrompt
	closed  bool
}

// MemoryStorageDriver is the driver for creating MemoryStorage instances.
type MemoryStorageDriver struct{}

func init() {
	RegisterStorageDriver(StorageDriverNameMemory, &MemoryStorageDriver{})
}

// Open creates a new MemoryStorage instance.
// The connection string is ignored for memory storage.
func (d *MemoryStorageDriver) Open(connectionString string) (PromptStorage, error) {
	return NewMemoryStorage(), nil
}

// NewMemoryStorage creates a new in-memory prompt storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		prompts: make(map[string][]*StoredPrompt),
		byID:    make(map[PromptID]*StoredPrompt),
	}
}

// Get retrieves the latest version of a prompt by name.
func (s *MemoryStorage) Get(ctx context.Context, name string) (*StoredPrompt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	versions, ok := s.prompts[name]
	if !ok || len(versions) == 0 {
		return nil, NewStoragePromptNotFoundError(name)
	}

	// Latest version is first (sorted desc)
	return copyStoredPrompt(versions[0]), nil
}

// GetByID retrieves a specific prompt version by ID.
func (s *MemoryStorage) GetByID(ctx context.Context, id PromptID) (*StoredPrompt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	prompt, ok := s.byID[id]
	if !ok {
		return nil, NewStoragePromptNotFoundError(string(id))
	}

	return copyStoredPrompt(prompt), nil
}

// GetVersion retrieves a specific version of a prompt.
func (s *MemoryStorage) GetVersion(ctx context.Context, name string, version int) (*StoredPrompt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	for _, prompt := range s.prompts[name] {
		if prompt.Version == version {
			return copyStoredPrompt(prompt), nil
		}
	}

	return nil, NewStorageVersionNotFoundError(name, version)
}

// Save stores a prompt, creating a new version if one exists.
// The source must parse as a promptdown document.
func (s *MemoryStorage) Save(ctx context.Context, prompt *StoredPrompt) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := validateStoredPrompt(prompt); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}

	now := time.Now()
	versions := s.prompts[prompt.Name]

	nextVersion := 1
	if len(versions) > 0 {
		nextVersion = versions[0].Version + 1
	}

	stored := copyStoredPrompt(prompt)
	stored.ID = generatePromptID()
	stored.Version = nextVersion
	stored.CreatedAt = now
	stored.UpdatedAt = now

	// Reflect generated fields back to the caller's value
	prompt.ID = stored.ID
	prompt.Version = stored.Version
	prompt.CreatedAt = stored.CreatedAt
	prompt.UpdatedAt = stored.UpdatedAt

	// Insert at the beginning (newest first)
	s.prompts[prompt.Name] = append([]*StoredPrompt{stored}, versions...)
	s.byID[stored.ID] = stored

	return nil
}

// Delete removes all versions of a prompt by name.
func (s *MemoryStorage) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}

	versions, ok := s.prompts[name]
	if !ok {
		return NewStoragePromptNotFoundError(name)
	}

	for _, prompt := range versions {
		delete(s.byID, prompt.ID)
	}
	delete(s.prompts, name)

	return nil
}

// DeleteVersion removes a specific version of a prompt.
func (s *MemoryStorage) DeleteVersion(ctx context.Context, name string, version int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}

	versions := s.prompts[name]
	for i, prompt := range versions {
		if prompt.Version != version {
			continue
		}
		delete(s.byID, prompt.ID)
		remaining := append(versions[:i:i], versions[i+1:]...)
		if len(remaining) == 0 {
			delete(s.prompts, name)
		} else {
			s.prompts[name] = remaining
		}
		return nil
	}

	return NewStorageVersionNotFoundError(name, version)
}

// List returns prompts matching the query, ordered by name then by version
// descending.
func (s *MemoryStorage) List(ctx context.Context, query *PromptQuery) ([]*StoredPrompt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	names := make([]string, 0, len(s.prompts))
	for name := range s.prompts {
		names = append(names, name)
	}
	sort.Strings(names)

	var results []*StoredPrompt
	for _, name := range names {
		for i, prompt := range s.prompts[name] {
			if query != nil && !query.IncludeAllVersions && i > 0 {
				break
			}
			if query == nil && i > 0 {
				break
			}
			if matchesQuery(prompt, query) {
				results = append(results, copyStoredPrompt(prompt))
			}
		}
	}

	return paginate(results, query), nil
}

// Exists checks if a prompt with the given name exists.
func (s *MemoryStorage) Exists(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false, NewStorageClosedError()
	}

	versions, ok := s.prompts[name]
	return ok && len(versions) > 0, nil
}

// ListVersions returns all version numbers for a prompt, newest first.
func (s *MemoryStorage) ListVersions(ctx context.Context, name string) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	versions := s.prompts[name]
	numbers := make([]int, 0, len(versions))
	for _, prompt := range versions {
		numbers = append(numbers, prompt.Version)
	}
	return numbers, nil
}

// Close releases the storage. Subsequent operations fail.
func (s *MemoryStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.prompts = nil
	s.byID = nil
	return nil
}

// paginate applies Offset and Limit from the query.
func paginate(results []*StoredPrompt, query *PromptQuery) []*StoredPrompt {
	if query == nil {
		return results
	}
	if query.Offset > 0 {
		if query.Offset >= len(results) {
			return nil
		}
		results = results[query.Offset:]
	}
	if query.Limit > 0 && query.Limit < len(results) {
		results = results[:query.Limit]
	}
	return results
}

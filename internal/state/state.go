package state

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FileState records what the converter last wrote to one output file
type FileState struct {
	MTime    int64  `json:"mtime"`
	Hash     string `json:"hash"`
	Source   string `json:"source"`
	Question int    `json:"question"` // 1-based position in the source
}

// State is the output manifest shared across runs
type State struct {
	Files map[string]*FileState `json:"files"` // output path -> state
}

// NewState creates a new empty state
func NewState() *State {
	return &State{
		Files: make(map[string]*FileState),
	}
}

// Load reads state from the state file
func Load(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewState(), nil
		}
		return nil, err
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}

	if state.Files == nil {
		state.Files = make(map[string]*FileState)
	}

	return &state, nil
}

// Save writes state to the state file
func (s *State) Save(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	return nil
}

// HashContent computes the SHA256 hash of generated content
func HashContent(content string) string {
	return fmt.Sprintf("sha256:%x", sha256.Sum256([]byte(content)))
}

// ComputeHash computes SHA256 hash of a file
func ComputeHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("sha256:%x", h.Sum(nil)), nil
}

// NeedsWrite reports whether the file at path differs from content
// Uses hybrid mtime + hash approach: a file untouched since we wrote it
// is compared by recorded hash, anything else is hashed from disk
func (s *State) NeedsWrite(path, content string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, err
	}

	want := HashContent(content)

	// Fast path: file unchanged since our last write
	if fileState, exists := s.Files[path]; exists && fileState.MTime == info.ModTime().UnixNano() {
		return fileState.Hash != want, nil
	}

	hash, err := ComputeHash(path)
	if err != nil {
		return false, err
	}

	return hash != want, nil
}

// Update records the file at path as written from the given source question
func (s *State) Update(path, source string, question int) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	hash, err := ComputeHash(path)
	if err != nil {
		return err
	}

	s.Files[path] = &FileState{
		MTime:    info.ModTime().UnixNano(),
		Hash:     hash,
		Source:   source,
		Question: question,
	}

	return nil
}

// Forget drops the entry for path
func (s *State) Forget(path string) {
	delete(s.Files, path)
}

// FilesFrom returns the output paths recorded for source
func (s *State) FilesFrom(source string) []string {
	var paths []string
	for path, fileState := range s.Files {
		if fileState.Source == source {
			paths = append(paths, path)
		}
	}
	return paths
}

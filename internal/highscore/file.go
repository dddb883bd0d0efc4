package highscore

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// FileStore keeps the best scores in a text file, one score per line.
type FileStore struct {
	mu   sync.Mutex
	path string
	keep int
}

// NewFileStore keeps the best keep scores in the file at path. The file is
// created on the first submit.
func NewFileStore(path string, keep int) *FileStore {
	return &FileStore{path: path, keep: keep}
}

func (f *FileStore) Submit(_ context.Context, score int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	scores, err := f.read()
	if err != nil {
		return err
	}
	scores = best(append(scores, score), f.keep)

	var buf bytes.Buffer
	for _, s := range scores {
		fmt.Fprintln(&buf, s)
	}
	// Replaced atomically through a temp file in the same directory.
	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".highscores-*")
	if err != nil {
		return fmt.Errorf("failed to write high scores: %w", err)
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write high scores: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write high scores: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace high scores: %w", err)
	}
	return nil
}

func (f *FileStore) Top(_ context.Context, n int) ([]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	scores, err := f.read()
	if err != nil {
		return nil, err
	}
	return best(scores, n), nil
}

func (f *FileStore) Close() error { return nil }

// read returns the stored scores; a missing file holds none.
func (f *FileStore) read() ([]int, error) {
	file, err := os.Open(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open high scores: %w", err)
	}
	defer file.Close()

	var scores []int
	scanner := bufio.NewScanner(file)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		s, err := strconv.Atoi(text)
		if err != nil {
			return nil, fmt.Errorf("high scores line %d: %w", line, err)
		}
		scores = append(scores, s)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read high scores: %w", err)
	}
	return scores, nil
}

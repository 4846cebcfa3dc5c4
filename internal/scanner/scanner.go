package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kpauljoseph/lingocards/internal/language"
	"github.com/kpauljoseph/lingocards/pkg/logger"
)

const deckExt = ".json"

// DeckFile is a deck found on disk. Its language comes from the file name,
// e.g. "unit1/es.json".
type DeckFile struct {
	AbsolutePath string
	RelativePath string
	Language     language.Code
}

type DirectoryScanner struct {
	logger *logger.Logger
}

func New(logger *logger.Logger) *DirectoryScanner {
	return &DirectoryScanner{
		logger: logger,
	}
}

// FindDeckFiles walks dir for <code>.json files of supported languages,
// sorted by relative path.
func (s *DirectoryScanner) FindDeckFiles(ctx context.Context, dir string) ([]DeckFile, error) {
	var decks []DeckFile

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			return fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if info.IsDir() {
			s.logger.Trace("Scanning directory: %s", path)
			return nil
		}

		if !strings.EqualFold(filepath.Ext(path), deckExt) {
			return nil
		}

		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		code, err := language.Parse(base)
		if err != nil {
			s.logger.Debug("Skipping %s: %v", path, err)
			return nil
		}

		relPath, err := filepath.Rel(dir, path)
		if err != nil {
			relPath = path
		}
		absPath, err := filepath.Abs(path)
		if err != nil {
			absPath = path
		}

		decks = append(decks, DeckFile{
			AbsolutePath: absPath,
			RelativePath: relPath,
			Language:     code,
		})
		s.logger.Debug("Found %s deck: %s", code, relPath)
		return nil
	})

	if err != nil {
		return nil, err
	}

	if len(decks) == 0 {
		return nil, fmt.Errorf("no deck files found in %s or its subdirectories", dir)
	}

	sort.Slice(decks, func(i, j int) bool {
		return decks[i].RelativePath < decks[j].RelativePath
	})
	return decks, nil
}

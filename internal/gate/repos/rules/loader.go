package rules

import (
	"fmt"
	"os"

	"pagegate/internal/gate/common/log"
	"pagegate/internal/gate/repos/rules/parsers"
)

// FileLoader reloads the repository from plain-text rule list files.
// Either path may be empty, which loads an empty list for that side.
type FileLoader struct {
	RulesPath     string
	WhitelistPath string
	Repo          Repository
	Logger        log.Logger
}

// Reload reads both files, parses them, and updates the repository.
func (l *FileLoader) Reload() error {
	blocked, err := l.readList(l.RulesPath)
	if err != nil {
		return fmt.Errorf("reading block list: %w", err)
	}
	allowed, err := l.readList(l.WhitelistPath)
	if err != nil {
		return fmt.Errorf("reading whitelist: %w", err)
	}
	return l.Repo.Update(blocked, allowed)
}

func (l *FileLoader) readList(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parsers.ParseRuleList(f, path, l.Logger)
}

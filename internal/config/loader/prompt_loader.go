package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"stockpilot/internal/logger"
)

type promptFile struct {
	System string `yaml:"system"`
}

// PromptLoader serves the system prompt template from a YAML file and
// reloads it on change, so prompt tuning does not need a restart. A loader
// with an empty path is valid and always serves the empty string, letting
// the composer fall back to its built-in prompt.
type PromptLoader struct {
	path string

	mu     sync.RWMutex
	system string
}

func NewPromptLoader(path string) (*PromptLoader, error) {
	l := &PromptLoader{path: strings.TrimSpace(path)}
	if l.path == "" {
		return l, nil
	}
	if err := l.reload(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *PromptLoader) SystemPrompt() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.system
}

func (l *PromptLoader) reload() error {
	raw, err := os.ReadFile(l.path)
	if err != nil {
		return fmt.Errorf("reading prompt file: %w", err)
	}
	var pf promptFile
	if err := yaml.Unmarshal(raw, &pf); err != nil {
		return fmt.Errorf("parsing prompt file %s: %w", l.path, err)
	}
	l.mu.Lock()
	l.system = strings.TrimSpace(pf.System)
	l.mu.Unlock()
	return nil
}

// Watch reloads the template on file changes until ctx is done. Editors
// often replace the file instead of writing in place, so the watch is on
// the directory.
func (l *PromptLoader) Watch(ctx context.Context) error {
	if l.path == "" {
		<-ctx.Done()
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("prompt watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(l.path)); err != nil {
		return fmt.Errorf("prompt watcher: %w", err)
	}

	target := filepath.Clean(l.path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case evt, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(evt.Name) != target {
				continue
			}
			if evt.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := l.reload(); err != nil {
				logger.Warnf("prompt reload failed, keeping previous template: %v", err)
				continue
			}
			logger.Infof("prompt template reloaded from %s", l.path)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warnf("prompt watcher error: %v", err)
		}
	}
}

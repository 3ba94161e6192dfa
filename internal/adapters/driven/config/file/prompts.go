package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/aikcal/internal/core/ports/driven"
	"github.com/custodia-labs/aikcal/internal/logger"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// PromptStore loads oracle prompts from user-editable files on disk.
// Prompts are loaded from a configurable directory with fallback to embedded defaults.
//
// The store uses lazy initialisation - files are only created when first accessed,
// not in the constructor.
type PromptStore struct {
	mu        sync.RWMutex
	promptDir string
	cache     map[string]string
	initOnce  sync.Once
	initErr   error
}

// defaultPrompts contains embedded default prompts.
// These are used when user files don't exist and as the initial content for new files.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
var defaultPrompts = map[string]string{
	driven.PromptPhotoParse: `Analyse this meal photo. Answer ONLY with a JSON object with the keys "name" (the dish name, in Polish), "quantity" (estimated weight or volume as a number) and "unit" ("g" for solids, "ml" for liquids).

Example for a solid: {"name": "jajecznica na boczku", "quantity": 180, "unit": "g"}
Example for a liquid: {"name": "zupa pomidorowa", "quantity": 300, "unit": "ml"}`,

	driven.PromptLearnAggregate: `You are a dietitian. Analyse the food "%s" eaten as %s.
Answer ONLY with a JSON object with the keys:
- "is_complex": true for a multi-ingredient dish, false for a simple product,
- "name": the correct name of the food,
- "quantity": the typical serving weight in grams,
- "unit": always "g",
- "state": "solid" or "liquid",
- "calories", "protein", "fat", "carbs": totals for that typical serving.`,

	driven.PromptLearnDecomposition: `Give the recipe of "%s" as a list of ingredients with their weights in grams for a %s serving.
Answer ONLY with a JSON array of objects with the keys "ingredient_name" and "weight_g".`,

	driven.PromptLearnProduct: `You are a nutrition encyclopedia. Give complete data for the ingredient "%s".
Answer ONLY with a JSON object with the keys:
- "state": "solid" or "liquid",
- "average_weight_g": the typical weight of one piece in grams, or 0 if it is not counted in pieces,
- "nutrients": an object with the keys "calories", "protein", "fat", "carbs" per 100 g or 100 ml.`,

	driven.PromptWorkoutEstimate: `You are a strict personal trainer. Estimate the calories burned by a person weighing %[2]s kg who did: "%[1]s".
Rules:
1. If this is a REAL workout or physical exercise (running, push-ups, walking, yoga), answer with a JSON object with the keys "name" (the workout name) and "calories_burned".
2. If it is NOT a real exercise ("apple workout", "eating pizza", "thinking"), answer with "name" set to "Unrecognized activity" and "calories_burned" ALWAYS 0. Do not be creative.`,
}

// NewPromptStore creates a new file-based prompt store.
// If promptDir is empty, defaults to ~/.aikcal/prompts/.
//
// The constructor does not perform any I/O - directory creation and
// file writes happen lazily on first Load() call.
func NewPromptStore(promptDir string) (*PromptStore, error) {
	if promptDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		promptDir = filepath.Join(dir, "prompts")
	}

	return &PromptStore{
		promptDir: promptDir,
		cache:     make(map[string]string),
	}, nil
}

// Load returns the prompt template for the given name.
// On first call, initialises the prompt directory and creates default files.
// Returns cached value if available, otherwise loads from file.
// Falls back to embedded default if file doesn't exist.
func (s *PromptStore) Load(name string) (string, error) {
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		if prompt, ok := defaultPrompts[name]; ok {
			return prompt, nil
		}
		return "", fmt.Errorf("prompt store init failed: %w", s.initErr)
	}

	s.mu.RLock()
	if prompt, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return prompt, nil
	}
	s.mu.RUnlock()

	// Load from file (no lock held during I/O)
	prompt, err := s.loadFromFile(name)
	if err != nil {
		if defaultPrompt, ok := defaultPrompts[name]; ok {
			return defaultPrompt, nil
		}
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	}

	// Double-check so a concurrent load is not overwritten
	s.mu.Lock()
	if cached, ok := s.cache[name]; ok {
		prompt = cached
	} else {
		s.cache[name] = prompt
	}
	s.mu.Unlock()

	return prompt, nil
}

// Reload clears the prompt cache, forcing fresh loads from disk.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.promptDir
}

// Watch reloads the cache whenever a prompt file changes, until ctx is done.
// It is meant for long-running servers; one-shot commands read files once.
func (s *PromptStore) Watch(ctx context.Context) error {
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		return s.initErr
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create prompt watcher: %w", err)
	}
	if err := watcher.Add(s.promptDir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", s.promptDir, err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if s.handleEvent(event) {
					logger.Info("Prompt %s changed, reloading", filepath.Base(event.Name))
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("Prompt watcher: %v", err)
			}
		}
	}()
	return nil
}

// handleEvent clears the cache for edits to prompt files and reports
// whether it did.
func (s *PromptStore) handleEvent(event fsnotify.Event) bool {
	if filepath.Ext(event.Name) != ".txt" {
		return false
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	s.Reload()
	return true
}

// initialise creates the prompt directory and default files.
// Called once via sync.Once.
func (s *PromptStore) initialise() {
	if err := os.MkdirAll(s.promptDir, 0700); err != nil {
		s.initErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}

	// Create default prompt files (only if they don't exist)
	for name, content := range defaultPrompts {
		path := filepath.Join(s.promptDir, name+".txt")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				s.initErr = fmt.Errorf("create default prompt %q: %w", name, err)
				return
			}
		}
	}

	if err := s.createReadme(); err != nil {
		s.initErr = err
	}
}

// loadFromFile reads a prompt from disk.
func (s *PromptStore) loadFromFile(name string) (string, error) {
	path := filepath.Join(s.promptDir, name+".txt")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// createReadme writes a README file explaining the prompts directory.
func (s *PromptStore) createReadme() error {
	path := filepath.Join(s.promptDir, "README.md")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil
	}

	content := `# aikcal Prompts

This directory contains the prompts aikcal sends to the AI oracle.

## Files

- ` + "`photo_parse.txt`" + ` - Reads name, quantity and unit from a meal photo
- ` + "`learn_aggregate.txt`" + ` - Estimates nutrients of an unknown food
- ` + "`learn_decomposition.txt`" + ` - Breaks a dish into a base recipe
- ` + "`learn_product.txt`" + ` - Profiles a single ingredient per 100 g/ml
- ` + "`workout_estimate.txt`" + ` - Estimates calories burned by an activity

## Customisation

Edit any file to customise oracle behaviour. Changes take effect on the next
command, or immediately while ` + "`aikcal serve`" + ` is running.

Answers must stay JSON with the same keys.

## Format Placeholders

Prompts are rendered with Go fmt verbs. Keep every ` + "`%s`" + ` in place
and write a literal percent sign as ` + "`%%`" + `.
`
	return os.WriteFile(path, []byte(content), 0600)
}

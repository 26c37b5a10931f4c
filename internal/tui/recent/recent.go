// ABOUTME: Manages the recently searched numbers list for the search screen
// ABOUTME: Stores the numbers in the XDG config directory

package recent

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// MaxNumbers is the maximum number of recent searches to keep
const MaxNumbers = 5

// Numbers manages the list of recently searched mobile numbers
type Numbers struct {
	configDir string
	numbers   []string
}

type recentData struct {
	Numbers []string `json:"numbers"`
}

// New creates a manager with the given config directory
func New(configDir string) *Numbers {
	return &Numbers{configDir: configDir}
}

// configFile returns the path to the recent numbers JSON
func (r *Numbers) configFile() string {
	return filepath.Join(r.configDir, "recent.json")
}

// Load reads the recent list from disk. Missing or invalid files yield an
// empty list rather than an error.
func (r *Numbers) Load() ([]string, error) {
	data, err := os.ReadFile(r.configFile())
	if os.IsNotExist(err) {
		r.numbers = []string{}
		return r.numbers, nil
	}
	if err != nil {
		return nil, err
	}

	var recent recentData
	if err := json.Unmarshal(data, &recent); err != nil {
		r.numbers = []string{}
		return r.numbers, nil
	}

	r.numbers = recent.Numbers
	return r.numbers, nil
}

// Save writes the list to disk, trimmed to MaxNumbers
func (r *Numbers) Save(numbers []string) error {
	if err := os.MkdirAll(r.configDir, 0700); err != nil {
		return err
	}

	if len(numbers) > MaxNumbers {
		numbers = numbers[:MaxNumbers]
	}
	r.numbers = numbers

	data, err := json.MarshalIndent(recentData{Numbers: numbers}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.configFile(), data, 0644)
}

// Add puts a number at the front of the list, deduplicating it
func (r *Numbers) Add(number string) error {
	if r.numbers == nil {
		if _, err := r.Load(); err != nil {
			r.numbers = []string{}
		}
	}

	updated := make([]string, 0, len(r.numbers)+1)
	updated = append(updated, number)
	for _, n := range r.numbers {
		if n != number {
			updated = append(updated, n)
		}
	}
	return r.Save(updated)
}

// List returns the current recent numbers
func (r *Numbers) List() []string {
	if r.numbers == nil {
		r.Load()
	}
	return r.numbers
}

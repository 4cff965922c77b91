// Package store provides the file-backed snapshot the engine reads from and
// writes normalized records to. The engine itself never touches the
// filesystem; callers load a snapshot, run computations, and save updated
// records back.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/polykhel/billcycle/internal/config"
	"github.com/polykhel/billcycle/internal/models"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Use the centralized logger from config package
var log = config.Logger

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Snapshot is the complete record collection the engine operates on.
type Snapshot struct {
	Profiles     []models.Profile     `yaml:"profiles,omitempty"`
	Cards        []models.Card        `yaml:"cards,omitempty"`
	Accounts     []models.BankAccount `yaml:"accounts,omitempty"`
	Transactions []models.Transaction `yaml:"transactions,omitempty"`
	Statements   []models.Statement   `yaml:"statements,omitempty"`
	Balances     []models.BankBalance `yaml:"balances,omitempty"`
	Budgets      []models.Budget      `yaml:"budgets,omitempty"`
	Loans        []models.LoanPlan    `yaml:"loans,omitempty"`
}

// FindDataFile looks for the snapshot file in standard locations
func FindDataFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,                        // Current directory
		filepath.Join("data", filename), // ./data/ directory
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	// If still not found, check in user's home directory under .billcycle/
	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".billcycle", filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

// Load reads a snapshot from a YAML file, normalizing legacy field names on
// the way in. A missing file yields an empty snapshot, not an error.
func Load(filename string) (*Snapshot, error) {
	filePath, err := FindDataFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warnf("Snapshot file not found: %s", filename)
			return &Snapshot{}, nil
		}
		return nil, fmt.Errorf("error resolving snapshot file: %w", err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading snapshot file: %w", err)
	}

	snapshot, err := Decode(data)
	if err != nil {
		return nil, err
	}

	log.Debugf("Loaded snapshot from %s: %d cards, %d transactions, %d statements",
		filePath, len(snapshot.Cards), len(snapshot.Transactions), len(snapshot.Statements))
	return snapshot, nil
}

// Decode parses snapshot YAML and normalizes legacy field names.
func Decode(data []byte) (*Snapshot, error) {
	var raw rawSnapshot
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("error parsing snapshot: %w", err)
	}
	return raw.normalize(), nil
}

// Save writes the snapshot to a YAML file, creating parent directories as
// needed.
func Save(filename string, snapshot *Snapshot) error {
	filePath, err := FindDataFile(filename)
	if err != nil {
		// New file: write it where the caller asked.
		filePath = filename
	}

	dir := filepath.Dir(filePath)
	if dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating directory: %w", err)
		}
	}

	data, err := yaml.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("error marshaling snapshot: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("error writing snapshot: %w", err)
	}

	log.Debugf("Saved snapshot to %s", filePath)
	return nil
}

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the full checker configuration loaded at process start.
// A missing file yields defaults; a malformed file fails the run before
// any source unit is processed.
type Config struct {
	Logger      Logger                `yaml:"logger"`
	Checker     Checker               `yaml:"checker"`
	Rules       map[string]RuleConfig `yaml:"rules"`
	Naming      Naming                `yaml:"naming"`
	Pointers    Pointers              `yaml:"pointers"`
	Terminology Terminology           `yaml:"terminology"`
}

type Logger struct {
	Level string `yaml:"level"`
}

// Checker holds engine-level options
type Checker struct {
	Jobs       int      `yaml:"jobs"`
	Extensions []string `yaml:"extensions"`
	Exclude    []string `yaml:"exclude"`
}

// RuleConfig is the per-rule override block
type RuleConfig struct {
	Enabled  *bool  `yaml:"enabled"`
	Severity string `yaml:"severity"`
}

// Naming holds the naming-category policy knobs
type Naming struct {
	// QuestionPrefixes are the verb prefixes that make a boolean-returning
	// function read as a yes/no question.
	QuestionPrefixes []string `yaml:"question_prefixes"`
	// MacroPrefix is the required prefix for globally scoped macros.
	MacroPrefix string `yaml:"macro_prefix"`
	// ClassRoots maps a root base type to the prefix its descendants carry.
	ClassRoots map[string]string `yaml:"class_roots"`
}

// Pointers holds the pointer-usage policy knobs
type Pointers struct {
	ReflectedWrapper string `yaml:"reflected_wrapper"`
	StrongWrapper    string `yaml:"strong_wrapper"`
	WeakWrapper      string `yaml:"weak_wrapper"`
	// GCNamePrefixes identify garbage-collected types by naming convention
	// when the base-class chain is not available in the unit.
	GCNamePrefixes []string `yaml:"gc_name_prefixes"`
}

// Terminology maps deny-listed terms to their replacements
type Terminology struct {
	Terms map[string]string `yaml:"terms"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Logger: Logger{Level: "info"},
		Checker: Checker{
			Extensions: []string{".h", ".hpp", ".cpp", ".cc", ".cxx", ".inl"},
		},
		Naming: Naming{
			QuestionPrefixes: []string{"Is", "Has", "Can", "Should", "Try", "Does", "Will"},
			MacroPrefix:      "UE_",
			ClassRoots: map[string]string{
				"AActor":     "A",
				"UObject":    "U",
				"SWidget":    "S",
				"IInterface": "I",
			},
		},
		Pointers: Pointers{
			ReflectedWrapper: "TObjectPtr",
			StrongWrapper:    "TStrongObjectPtr",
			WeakWrapper:      "TWeakObjectPtr",
			GCNamePrefixes:   []string{"U", "A"},
		},
		Terminology: Terminology{
			Terms: map[string]string{
				"blacklist": "deny list",
				"whitelist": "allow list",
				"master":    "primary",
				"slave":     "replica",
			},
		},
	}
}

// Load reads the configuration at path, layered over defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if err := ValidatePath(path); err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}
	return cfg, nil
}

// ValidatePath ensures the configuration path exists and is a regular file
func ValidatePath(path string) error {
	s, err := os.Stat(path)
	if err != nil {
		return err
	}
	if s.IsDir() {
		return fmt.Errorf("'%s' is a directory, not a file", path)
	}
	return nil
}

func (c *Config) validate() error {
	if c.Checker.Jobs < 0 {
		return fmt.Errorf("checker.jobs must not be negative")
	}
	if len(c.Naming.ClassRoots) == 0 {
		return fmt.Errorf("naming.class_roots must not be empty")
	}
	for root, prefix := range c.Naming.ClassRoots {
		if prefix == "" {
			return fmt.Errorf("naming.class_roots[%s]: empty prefix", root)
		}
	}
	if c.Pointers.ReflectedWrapper == "" || c.Pointers.StrongWrapper == "" || c.Pointers.WeakWrapper == "" {
		return fmt.Errorf("pointers: wrapper names must not be empty")
	}
	for term, replacement := range c.Terminology.Terms {
		if term == "" || replacement == "" {
			return fmt.Errorf("terminology.terms: empty term or replacement")
		}
	}
	return nil
}

package logging

import "time"

// Config tunes the event router and its sinks.
type Config struct {
	EnabledSinks     []string       `yaml:"enabledSinks"`
	BufferSize       int            `yaml:"bufferSize"`
	MinimumSeverity  Severity       `yaml:"minimumSeverity"`
	Fields           map[string]any `yaml:"fields"`
	JSON             JSONConfig     `yaml:"json"`
	Console          ConsoleConfig  `yaml:"console"`
	DropWarnInterval time.Duration  `yaml:"dropWarnInterval"`
}

// JSONConfig configures the batching JSON file sink.
type JSONConfig struct {
	FilePath      string        `yaml:"filePath"`
	MaxBatch      int           `yaml:"maxBatch"`
	FlushInterval time.Duration `yaml:"flushInterval"`
}

// ConsoleConfig configures the console sink.
type ConsoleConfig struct {
	UseColor bool `yaml:"useColor"`
}

// DefaultConfig returns the configuration used when nothing is specified.
func DefaultConfig() Config {
	return Config{
		EnabledSinks:     []string{"console"},
		BufferSize:       512,
		MinimumSeverity:  SeverityInfo,
		DropWarnInterval: 5 * time.Second,
		JSON: JSONConfig{
			MaxBatch:      32,
			FlushInterval: 2 * time.Second,
		},
	}
}

// HasSink reports whether the named sink is enabled.
func (c Config) HasSink(name string) bool {
	for _, s := range c.EnabledSinks {
		if s == name {
			return true
		}
	}
	return false
}

// CloneFields copies the static field map attached to every event.
func (c Config) CloneFields() map[string]any {
	if len(c.Fields) == 0 {
		return nil
	}
	cloned := make(map[string]any, len(c.Fields))
	for k, v := range c.Fields {
		cloned[k] = v
	}
	return cloned
}

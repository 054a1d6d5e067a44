package cli

import (
	"encoding/json"
	"os"
	"path/filepath"

	"videopoker-server/internal/util"
)

// Config holds CLI configuration
type Config struct {
	ServerURL   string
	SessionFile string
	Output      string

	Session Session
}

// Session is what the CLI remembers between invocations
type Session struct {
	UserID  string `json:"user_id"`
	Name    string `json:"name"`
	Token   string `json:"token"`
	RoundID string `json:"round_id,omitempty"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:   util.Getenv("VPCTL_SERVER", "http://localhost:5000"),
		SessionFile: util.Getenv("VPCTL_SESSION_FILE", defaultSessionFile()),
		Output:      "text",
	}
}

// LoadSession loads the session from file
// A missing file is an empty session.
func (c *Config) LoadSession() error {
	data, err := os.ReadFile(c.SessionFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	return json.Unmarshal(data, &c.Session)
}

// SaveSession writes the session to the session file
func (c *Config) SaveSession() error {
	dir := filepath.Dir(c.SessionFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	data, err := json.Marshal(c.Session)
	if err != nil {
		return err
	}

	return os.WriteFile(c.SessionFile, data, 0600)
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".vpctl/session.json"
	}
	return filepath.Join(home, ".vpctl", "session.json")
}

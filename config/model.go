package config

import (
	"strconv"
	"time"
)

type Credentials struct {
	AccountID   string `json:"account_id" validate:"required"`
	Password    string `json:"password" validate:"required"`
	DeviceToken string `json:"device_token,omitempty"`
}

// Config is the record persisted in the user's home directory. It is written
// wholesale on every save.
type Config struct {
	Credentials *Credentials `json:"credentials,omitempty"`
	// Unix milliseconds as a decimal string.
	LastUpdateCheck string `json:"lastUpdateCheck,omitempty"`
}

// LastChecked reports the last update check time, if one was recorded and parses.
func (c *Config) LastChecked() (time.Time, bool) {
	if c == nil || c.LastUpdateCheck == "" {
		return time.Time{}, false
	}
	ms, err := strconv.ParseInt(c.LastUpdateCheck, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(ms), true
}

func (c *Config) SetLastChecked(t time.Time) {
	c.LastUpdateCheck = strconv.FormatInt(t.UnixMilli(), 10)
}

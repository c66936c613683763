package conf

import (
	"encoding/json"
	"fmt"
	"time"
)

// Bootstrap is the root of configs/config.yaml.
type Bootstrap struct {
	Server    *Server    `json:"server"`
	Data      *Data      `json:"data"`
	Auth      *Auth      `json:"auth"`
	Sweep     *Sweep     `json:"sweep"`
	Selection *Selection `json:"selection"`
}

type Server struct {
	Http *Server_HTTP `json:"http"`
	Grpc *Server_GRPC `json:"grpc"`
}

type Server_HTTP struct {
	Network string    `json:"network"`
	Addr    string    `json:"addr"`
	Timeout *Duration `json:"timeout"`
}

type Server_GRPC struct {
	Network string    `json:"network"`
	Addr    string    `json:"addr"`
	Timeout *Duration `json:"timeout"`
}

// Data selects and configures the key-value backend.
// Driver is one of "memory", "redis", "sqlite3" or "postgres".
type Data struct {
	Driver   string         `json:"driver"`
	Redis    *Data_Redis    `json:"redis"`
	Database *Data_Database `json:"database"`
}

type Data_Redis struct {
	Addr         string    `json:"addr"`
	Password     string    `json:"password"`
	Db           int       `json:"db"`
	ReadTimeout  *Duration `json:"read_timeout"`
	WriteTimeout *Duration `json:"write_timeout"`
}

type Data_Database struct {
	Source string `json:"source"`
}

type Auth struct {
	Username   string    `json:"username"`
	Password   string    `json:"password"`
	SigningKey string    `json:"signing_key"`
	SessionTtl *Duration `json:"session_ttl"`
}

// Sweep configures the liveness sweep. Concurrency 0 means one probe per
// record, all in flight at once. Interval 0 disables the scheduled sweep.
type Sweep struct {
	ProbeTimeout *Duration `json:"probe_timeout"`
	Concurrency  int       `json:"concurrency"`
	Interval     *Duration `json:"interval"`
	UserAgent    string    `json:"user_agent"`
}

type Selection struct {
	RateLimitPerMinute int `json:"rate_limit_per_minute"`
}

// Duration is a time.Duration written as a Go duration string ("5s", "1h").
type Duration struct {
	time.Duration
}

// NewDuration wraps d.
func NewDuration(d time.Duration) *Duration {
	return &Duration{Duration: d}
}

// AsDuration returns the wrapped value; a nil receiver yields 0.
func (d *Duration) AsDuration() time.Duration {
	if d == nil {
		return 0
	}
	return d.Duration
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", value, err)
		}
		d.Duration = parsed
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
	return nil
}

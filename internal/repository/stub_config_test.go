package repository

import "time"

type stubConfig struct {
	url     string
	timeout time.Duration
}

func (c *stubConfig) GetServerPort() string              { return "0" }
func (c *stubConfig) GetMaxFileSize() int64              { return 50 << 20 }
func (c *stubConfig) GetLogLevel() string                { return "info" }
func (c *stubConfig) GetLogFormat() string               { return "json" }
func (c *stubConfig) GetVersion() string                 { return "test" }
func (c *stubConfig) GetSanitizerURL() string            { return c.url }
func (c *stubConfig) GetSanitizerTimeout() time.Duration { return c.timeout }
func (c *stubConfig) GetRateLimitMax() int               { return 200 }
func (c *stubConfig) GetRateLimitWindow() time.Duration  { return time.Minute }
func (c *stubConfig) GetCORSAllowedOrigins() []string    { return []string{"*"} }

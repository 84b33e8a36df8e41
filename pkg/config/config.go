package config

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/sitevault/config"
	ConfigFileName    = "sitevault.yml"
)

// Config holds all SiteVault configuration settings.
type Config struct {
	// TrustedProxies is a list of CIDR ranges for trusted proxies
	TrustedProxies []string `yaml:"trusted_proxies" json:"trusted_proxies"`

	// SessionTokenTTL is the accepted lifetime of identity-provider
	// session tokens, in seconds
	SessionTokenTTL int `yaml:"session_token_ttl" json:"session_token_ttl"`

	// APIListLimitMax is the maximum number of results for listing requests
	APIListLimitMax int `yaml:"api_list_limit_max" json:"api_list_limit_max"`

	// RetainHistoryOnDelete keeps credential history rows when their
	// credential is deleted. The history is an audit trail, so this
	// defaults to true; set it to false for a cascading delete.
	RetainHistoryOnDelete *bool `yaml:"retain_history_on_delete" json:"retain_history_on_delete"`

	// LegacyBase64Fallback lets the secret codec decode rows imported
	// from the legacy base64-encoded store
	LegacyBase64Fallback bool `yaml:"legacy_base64_fallback" json:"legacy_base64_fallback"`

	// AuditEnabled enables audit event emission
	AuditEnabled *bool `yaml:"audit_enabled" json:"audit_enabled"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// Attribute represents a configuration attribute with its value and source.
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// Global singleton config
var (
	globalConfig *Config
	configMu     sync.RWMutex
)

// Get returns the global configuration, loading it if necessary.
func Get() *Config {
	configMu.RLock()
	if globalConfig != nil {
		configMu.RUnlock()
		return globalConfig
	}
	configMu.RUnlock()

	configMu.Lock()
	defer configMu.Unlock()

	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			globalConfig = newDefault()
		} else {
			globalConfig = cfg
		}
	}
	return globalConfig
}

// Reload reloads the configuration from file and environment.
func Reload() error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	configMu.Lock()
	globalConfig = cfg
	configMu.Unlock()
	return nil
}

func boolPtr(b bool) *bool { return &b }

// newDefault returns a config with default values.
func newDefault() *Config {
	return &Config{
		TrustedProxies:        []string{},
		SessionTokenTTL:       480,
		APIListLimitMax:       1000,
		RetainHistoryOnDelete: boolPtr(true),
		LegacyBase64Fallback:  false,
		AuditEnabled:          boolPtr(true),
		sources:               make(map[string]string),
	}
}

// Load loads configuration from file and environment variables.
// Environment variables take precedence over file values.
func Load() (*Config, error) {
	config := newDefault()

	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	configPath := os.Getenv("SITEVAULT_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var fileConfig Config
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&fileConfig)
	}

	config.applyEnvConfig()

	return config, nil
}

func attributeNames() []string {
	return []string{
		"trusted_proxies", "session_token_ttl", "api_list_limit_max",
		"retain_history_on_delete", "legacy_base64_fallback", "audit_enabled",
	}
}

func (c *Config) applyFileConfig(file *Config) {
	if len(file.TrustedProxies) > 0 {
		c.TrustedProxies = file.TrustedProxies
		c.sources["trusted_proxies"] = "file"
	}
	if file.SessionTokenTTL != 0 {
		c.SessionTokenTTL = file.SessionTokenTTL
		c.sources["session_token_ttl"] = "file"
	}
	if file.APIListLimitMax != 0 {
		c.APIListLimitMax = file.APIListLimitMax
		c.sources["api_list_limit_max"] = "file"
	}
	if file.RetainHistoryOnDelete != nil {
		c.RetainHistoryOnDelete = file.RetainHistoryOnDelete
		c.sources["retain_history_on_delete"] = "file"
	}
	if file.LegacyBase64Fallback {
		c.LegacyBase64Fallback = true
		c.sources["legacy_base64_fallback"] = "file"
	}
	if file.AuditEnabled != nil {
		c.AuditEnabled = file.AuditEnabled
		c.sources["audit_enabled"] = "file"
	}
}

func (c *Config) applyEnvConfig() {
	if val := os.Getenv("SITEVAULT_TRUSTED_PROXIES"); val != "" {
		c.TrustedProxies = splitAndTrim(val)
		c.sources["trusted_proxies"] = "environment"
	}
	if val := os.Getenv("SITEVAULT_SESSION_TOKEN_TTL"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.SessionTokenTTL = i
			c.sources["session_token_ttl"] = "environment"
		}
	}
	if val := os.Getenv("SITEVAULT_API_LIST_LIMIT_MAX"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.APIListLimitMax = i
			c.sources["api_list_limit_max"] = "environment"
		}
	}
	if val := os.Getenv("SITEVAULT_RETAIN_HISTORY_ON_DELETE"); val != "" {
		c.RetainHistoryOnDelete = boolPtr(val == "true" || val == "1")
		c.sources["retain_history_on_delete"] = "environment"
	}
	if val := os.Getenv("SITEVAULT_LEGACY_BASE64_FALLBACK"); val != "" {
		c.LegacyBase64Fallback = val == "true" || val == "1"
		c.sources["legacy_base64_fallback"] = "environment"
	}
	if val := os.Getenv("SITEVAULT_AUDIT_ENABLED"); val != "" {
		c.AuditEnabled = boolPtr(val != "false" && val != "0" && val != "no")
		c.sources["audit_enabled"] = "environment"
	}
}

// ConfigFilePath returns the path to the config file.
func (c *Config) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute.
func (c *Config) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// SessionTTL returns the session token TTL as a duration.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTokenTTL) * time.Second
}

// RetainHistory reports whether credential history survives a delete.
func (c *Config) RetainHistory() bool {
	return c.RetainHistoryOnDelete == nil || *c.RetainHistoryOnDelete
}

// AuditOn reports whether audit emission is enabled.
func (c *Config) AuditOn() bool {
	return c.AuditEnabled == nil || *c.AuditEnabled
}

// IsTrustedProxy checks if an IP is from a trusted proxy.
func (c *Config) IsTrustedProxy(ip string) bool {
	if len(c.TrustedProxies) == 0 {
		return false
	}

	parsedIP := net.ParseIP(ip)
	if parsedIP == nil {
		return false
	}

	for _, cidr := range c.TrustedProxies {
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			if net.ParseIP(cidr) != nil && cidr == ip {
				return true
			}
			continue
		}
		if network.Contains(parsedIP) {
			return true
		}
	}
	return false
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	for _, cidr := range c.TrustedProxies {
		if _, _, err := net.ParseCIDR(cidr); err != nil {
			if net.ParseIP(cidr) == nil {
				return fmt.Errorf("invalid trusted_proxies value: %s", cidr)
			}
		}
	}

	if c.SessionTokenTTL < 0 {
		return fmt.Errorf("session_token_ttl must not be negative")
	}
	if c.APIListLimitMax < 1 {
		return fmt.Errorf("api_list_limit_max must be at least 1")
	}

	return nil
}

// Attributes returns all configuration attributes with their values and sources.
func (c *Config) Attributes() []Attribute {
	return []Attribute{
		{Name: "trusted_proxies", Value: strings.Join(c.TrustedProxies, ","), Source: c.Source("trusted_proxies")},
		{Name: "session_token_ttl", Value: strconv.Itoa(c.SessionTokenTTL), Source: c.Source("session_token_ttl")},
		{Name: "api_list_limit_max", Value: strconv.Itoa(c.APIListLimitMax), Source: c.Source("api_list_limit_max")},
		{Name: "retain_history_on_delete", Value: strconv.FormatBool(c.RetainHistory()), Source: c.Source("retain_history_on_delete")},
		{Name: "legacy_base64_fallback", Value: strconv.FormatBool(c.LegacyBase64Fallback), Source: c.Source("legacy_base64_fallback")},
		{Name: "audit_enabled", Value: strconv.FormatBool(c.AuditOn()), Source: c.Source("audit_enabled")},
	}
}

// FormatText returns a text representation of the configuration.
func (c *Config) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-30s %-30s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-30s %-30s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-30s %-30s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration.
func (c *Config) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

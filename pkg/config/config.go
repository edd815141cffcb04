// Package config holds the gateway client configuration.
//
// Configuration can be built in code or loaded from a YAML file with
// environment variable expansion (${VAR} or $VAR syntax), which keeps
// credentials out of the file itself.
//
// # Example Configuration
//
//	environment: sandbox
//	client_id: ${PAYGW_CLIENT_ID}
//	client_secret: ${PAYGW_CLIENT_SECRET}
//	merchant_id: "999999999997"
//	merchant_key: ${PAYGW_MERCHANT_KEY}
//	application_id: DEMO
//	language_id: EN
//	timeout: 30s
//	retry:
//	  429:
//	    global: 2
//	    endpoints:
//	      charges: 1
//
// Required keys are checked by each client at construction; see
// [Config.RequireDirect] and [Config.RequireSEVD].
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sirosfoundation/go-paygw/internal/validation"
	"github.com/sirosfoundation/go-paygw/pkg/gwerr"
	"github.com/sirosfoundation/go-paygw/pkg/retry"
)

// Environment selects the vendor host and the default debug setting.
type Environment string

const (
	Sandbox    Environment = "sandbox"
	Production Environment = "production"
)

// Vendor endpoints
const (
	SandboxBaseURL    = "https://api-cert.sagepayments.com"
	ProductionBaseURL = "https://api.sagepayments.com"
	DefaultBasePath   = "bankcard/v1"
	DefaultSEVDURL    = "https://www.sageexchange.com/sevd/frmEnvelope.aspx"
)

// Config is the client configuration shared by the Direct API and SEVD
// clients. Treat it as read-only once a client has been built from it.
type Config struct {
	ApplicationID string `yaml:"application_id" validate:"required"`
	ClientID      string `yaml:"client_id" validate:"required"`
	ClientSecret  string `yaml:"client_secret" validate:"required"`
	MerchantID    string `yaml:"merchant_id" validate:"required"`
	MerchantKey   string `yaml:"merchant_key" validate:"required"`
	LanguageID    string `yaml:"language_id" validate:"required"`

	Environment Environment `yaml:"environment"`
	BaseURL     string      `yaml:"base_url"`
	BasePath    string      `yaml:"base_path"`
	SEVDURL     string      `yaml:"sevd_url"`

	// Debug is tri-state; nil means "depends on Environment".
	Debug *bool `yaml:"debug"`

	// Timeout applies to the standard HTTP transport.
	Timeout time.Duration `yaml:"timeout"`

	// RawMethods lists the methods sent through the raw-stream transport.
	// Nil means POST and PUT.
	RawMethods []string `yaml:"raw_methods"`

	Retry retry.Policy `yaml:"retry"`
}

var (
	directKeys = []string{"ClientID", "ClientSecret", "MerchantID", "MerchantKey"}
	sevdKeys   = []string{"ApplicationID", "ClientID", "ClientSecret", "MerchantID", "MerchantKey", "LanguageID"}
)

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration after expanding environment variables.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, &gwerr.ConfigurationError{Reason: fmt.Sprintf("parsing config: %v", err)}
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Environment == "" {
		c.Environment = Sandbox
	}
	c.Environment = Environment(strings.ToLower(string(c.Environment)))
}

func (c *Config) validate() error {
	switch c.Environment {
	case Sandbox, Production, "":
	default:
		return &gwerr.ConfigurationError{
			Reason: fmt.Sprintf("environment must be 'sandbox' or 'production', got '%s'", c.Environment),
		}
	}
	if c.Timeout < 0 {
		return &gwerr.ConfigurationError{Reason: "timeout must not be negative"}
	}
	if err := c.Retry.Validate(); err != nil {
		return &gwerr.ConfigurationError{Reason: err.Error()}
	}
	return nil
}

// RequireDirect checks the keys needed by the Direct API client.
func (c *Config) RequireDirect() error {
	return c.require(directKeys)
}

// RequireSEVD checks the keys needed by the SEVD client.
func (c *Config) RequireSEVD() error {
	return c.require(sevdKeys)
}

func (c *Config) require(fields []string) error {
	if c == nil {
		return &gwerr.ConfigurationError{Reason: "config is required"}
	}
	missing, err := validation.Missing(c, fields...)
	if err != nil {
		return &gwerr.ConfigurationError{Reason: err.Error()}
	}
	if len(missing) > 0 {
		return &gwerr.ConfigurationError{Missing: missing}
	}
	return c.validate()
}

// ResolvedBaseURL returns BaseURL, or the vendor host for the environment.
func (c *Config) ResolvedBaseURL() string {
	if c.BaseURL != "" {
		return strings.TrimRight(c.BaseURL, "/")
	}
	if c.Environment == Production {
		return ProductionBaseURL
	}
	return SandboxBaseURL
}

// ResolvedBasePath returns BasePath without surrounding slashes.
func (c *Config) ResolvedBasePath() string {
	if c.BasePath != "" {
		return strings.Trim(c.BasePath, "/")
	}
	return DefaultBasePath
}

// ResolvedSEVDURL returns SEVDURL or the hosted-checkout default.
func (c *Config) ResolvedSEVDURL() string {
	if c.SEVDURL != "" {
		return c.SEVDURL
	}
	return DefaultSEVDURL
}

// ResolvedDebug returns Debug when set, else true outside production.
func (c *Config) ResolvedDebug() bool {
	if c.Debug != nil {
		return *c.Debug
	}
	return c.Environment != Production
}

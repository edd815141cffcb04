package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sirosfoundation/go-paygw/pkg/gwerr"
)

const sampleYAML = `
environment: production
application_id: APP
client_id: ${TEST_PAYGW_CLIENT_ID}
client_secret: secret
merchant_id: "999999999997"
merchant_key: key
language_id: EN
timeout: 45s
raw_methods: [POST]
retry:
  429:
    global: 2
    backoff: 100ms
    endpoints:
      charges: 1
  503:
    global: 1
`

func TestParse(t *testing.T) {
	t.Setenv("TEST_PAYGW_CLIENT_ID", "client-from-env")

	cfg, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, Production, cfg.Environment)
	assert.Equal(t, "client-from-env", cfg.ClientID)
	assert.Equal(t, "999999999997", cfg.MerchantID)
	assert.Equal(t, 45*time.Second, cfg.Timeout)
	assert.Equal(t, []string{"POST"}, cfg.RawMethods)

	require.Contains(t, cfg.Retry, 429)
	assert.Equal(t, 2, cfg.Retry[429].Global)
	assert.Equal(t, 100*time.Millisecond, cfg.Retry[429].Backoff)
	assert.Equal(t, 1, cfg.Retry[429].Endpoints["charges"])
	assert.Equal(t, 1, cfg.Retry[503].Global)

	require.NoError(t, cfg.RequireDirect())
	require.NoError(t, cfg.RequireSEVD())
}

func TestLoad(t *testing.T) {
	t.Setenv("TEST_PAYGW_CLIENT_ID", "id")

	path := filepath.Join(t.TempDir(), "paygw.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "id", cfg.ClientID)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte("client_id: a\n"))
	require.NoError(t, err)

	assert.Equal(t, Sandbox, cfg.Environment)
	assert.Equal(t, SandboxBaseURL, cfg.ResolvedBaseURL())
	assert.Equal(t, DefaultBasePath, cfg.ResolvedBasePath())
	assert.Equal(t, DefaultSEVDURL, cfg.ResolvedSEVDURL())
	assert.True(t, cfg.ResolvedDebug())
	assert.Nil(t, cfg.RawMethods)
}

func TestParse_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad environment", "environment: staging\n"},
		{"negative timeout", "timeout: -1s\n"},
		{"bad retry status", "retry:\n  200:\n    global: 1\n"},
		{"negative retry", "retry:\n  429:\n    global: -1\n"},
		{"malformed yaml", "client_id: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)

			var cfgErr *gwerr.ConfigurationError
			assert.True(t, errors.As(err, &cfgErr), "expected ConfigurationError, got %T", err)
		})
	}
}

func TestRequireDirect_ListsEveryMissingKey(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		missing []string
	}{
		{
			name:    "empty",
			cfg:     &Config{},
			missing: []string{"client_id", "client_secret", "merchant_id", "merchant_key"},
		},
		{
			name:    "secret and key missing",
			cfg:     &Config{ClientID: "c", MerchantID: "m"},
			missing: []string{"client_secret", "merchant_key"},
		},
		{
			name:    "sevd-only keys are not required",
			cfg:     &Config{ClientID: "c", ClientSecret: "s", MerchantID: "m", MerchantKey: "k"},
			missing: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.RequireDirect()
			if tt.missing == nil {
				assert.NoError(t, err)
				return
			}

			var cfgErr *gwerr.ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.missing, cfgErr.Missing)
			for _, key := range tt.missing {
				assert.Contains(t, err.Error(), key)
			}
		})
	}
}

func TestRequireSEVD_ListsEveryMissingKey(t *testing.T) {
	err := (&Config{ClientID: "c", MerchantKey: "k"}).RequireSEVD()

	var cfgErr *gwerr.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, []string{"application_id", "client_secret", "merchant_id", "language_id"}, cfgErr.Missing)
}

func TestRequire_NilConfig(t *testing.T) {
	var cfg *Config
	assert.Error(t, cfg.RequireDirect())
}

func TestResolved(t *testing.T) {
	off := false

	cfg := &Config{
		Environment: Production,
		BaseURL:     "https://gateway.test/",
		BasePath:    "/custom/v2/",
		SEVDURL:     "https://sevd.test/submit",
	}
	assert.Equal(t, "https://gateway.test", cfg.ResolvedBaseURL())
	assert.Equal(t, "custom/v2", cfg.ResolvedBasePath())
	assert.Equal(t, "https://sevd.test/submit", cfg.ResolvedSEVDURL())
	assert.False(t, cfg.ResolvedDebug())

	cfg = &Config{Environment: Production}
	assert.Equal(t, ProductionBaseURL, cfg.ResolvedBaseURL())

	cfg = &Config{Debug: &off}
	assert.False(t, cfg.ResolvedDebug())
}

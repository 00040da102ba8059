// SPDX-License-Identifier: MPL-2.0

package config

import "context"

// LoadOptions lets a caller override the config path, mainly for tests
// and for the daemon, which loads from its resolved config path.
type LoadOptions struct {
	// FilePath forces loading from a specific file when set, bypassing
	// FilePath()'s CWM_CONFIG/default-location resolution.
	FilePath string
}

// Provider loads configuration from explicit options. The daemon holds
// one Provider and calls Load again on each fsnotify reload event.
type Provider interface {
	Load(ctx context.Context, opts LoadOptions) (*Config, string, error)
}

type fileProvider struct{}

// NewProvider returns the default file-backed Provider.
func NewProvider() Provider { return fileProvider{} }

func (fileProvider) Load(_ context.Context, opts LoadOptions) (*Config, string, error) {
	if opts.FilePath == "" {
		return Load()
	}

	raw, err := readFile(opts.FilePath)
	if err != nil {
		return nil, "", err
	}
	cfg, err := parse(raw)
	if err != nil {
		return nil, "", err
	}
	return cfg, opts.FilePath, nil
}

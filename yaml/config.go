// Package yaml loads pagescrape configuration files.
package yaml

import (
	"errors"
	"io"
	"os"

	"github.com/fwojciec/pagescrape"
	"gopkg.in/yaml.v3"
)

// LoadConfig reads the YAML file at path on top of base. Keys missing from
// the file keep their value from base. Unknown keys are rejected.
func LoadConfig(path string, base pagescrape.Config) (pagescrape.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return base, pagescrape.Errorf(pagescrape.ENOTFOUND, "config file not found: %s", path)
		}
		return base, err
	}
	defer f.Close()

	return DecodeConfig(f, base)
}

// DecodeConfig decodes YAML from r on top of base.
func DecodeConfig(r io.Reader, base pagescrape.Config) (pagescrape.Config, error) {
	cfg := base
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return base, nil
		}
		return base, pagescrape.Errorf(pagescrape.EINVALID, "invalid config: %v", err)
	}
	return cfg, nil
}

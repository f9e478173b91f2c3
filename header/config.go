// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package header

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/tools/txtar"
	"gopkg.in/yaml.v3"
)

// Load overlays the settings from the config file at path on c. Settings
// missing from the file keep their current values.
//
// A file with the .txtar extension is a txtar archive that may contain:
//
//   - license.txt: the license text; a single trailing newline is dropped;
//   - extensions.json: a JSON array of file name suffixes;
//   - exclusions.json: a JSON array of path suffixes to skip.
//
// A file with the .yaml or .yml extension holds the same settings under the
// keys license, extensions and exclusions.
func (c *Config) Load(path string) error {
	var err error
	switch ext := filepath.Ext(path); ext {
	case ".txtar":
		err = c.loadTxtar(path)
	case ".yaml", ".yml":
		err = c.loadYAML(path)
	default:
		err = fmt.Errorf("unsupported config format %q", ext)
	}
	if err != nil {
		return fmt.Errorf("loading config %s: %w", path, err)
	}
	return nil
}

func (c *Config) loadTxtar(path string) error {
	ar, err := txtar.ParseFile(path)
	if err != nil {
		return err
	}
	for _, f := range ar.Files {
		switch f.Name {
		case "license.txt":
			c.License = strings.TrimSuffix(string(f.Data), "\n")
		case "extensions.json":
			if err := json.Unmarshal(f.Data, &c.Extensions); err != nil {
				return fmt.Errorf("%s: %w", f.Name, err)
			}
		case "exclusions.json":
			if err := json.Unmarshal(f.Data, &c.Exclusions); err != nil {
				return fmt.Errorf("%s: %w", f.Name, err)
			}
		}
	}
	return nil
}

type yamlConfig struct {
	License    *string  `yaml:"license"`
	Extensions []string `yaml:"extensions"`
	Exclusions []string `yaml:"exclusions"`
}

func (c *Config) loadYAML(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var yc yamlConfig
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	// An empty document decodes to io.EOF and changes nothing.
	if err := dec.Decode(&yc); err != nil && len(bytes.TrimSpace(b)) > 0 {
		return err
	}
	if yc.License != nil {
		c.License = strings.TrimSuffix(*yc.License, "\n")
	}
	if yc.Extensions != nil {
		c.Extensions = yc.Extensions
	}
	if yc.Exclusions != nil {
		c.Exclusions = yc.Exclusions
	}
	return nil
}

/*
 * Copyright (c) 2023 The ratprod-worker-go Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package externals models the manifest of third-party package versions
// consumed by the packaging tool: pure-python pins, architecture-dependent
// pins with their target triples, and the version "bloat" table used to
// compare pinned versions against upstream ones.
package externals

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/tidwall/gjson"
)

// Pin is a [package, version] pair.
type Pin struct {
	Name    string
	Version string
}

// Bloat is a substring some packages carry in their version strings that
// must be rewritten before numeric comparison, e.g. "_ganga_patch" -> ".".
type Bloat struct {
	Match   string
	Replace string
}

type Manifest struct {
	// Noarch lists packages with only python code.
	Noarch []Pin

	// Arch lists packages with architecture-dependent code, built for
	// every triple in Archs.
	Arch  []Pin
	Archs []string

	// VersionBloats maps package name to its bloat rewrites.
	VersionBloats map[string][]Bloat
}

// Load reads a manifest file and parses it.
func Load(fs afero.Fs, path string) (*Manifest, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read externals manifest %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes the manifest JSON.
func Parse(data []byte) (*Manifest, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid externals manifest json")
	}

	m := &Manifest{
		VersionBloats: make(map[string][]Bloat),
	}

	var err error
	m.Noarch, err = parsePins(gjson.GetBytes(data, "noarch"))
	if err != nil {
		return nil, err
	}
	m.Arch, err = parsePins(gjson.GetBytes(data, "arch"))
	if err != nil {
		return nil, err
	}

	gjson.GetBytes(data, "archs").ForEach(func(_, value gjson.Result) bool {
		m.Archs = append(m.Archs, value.String())
		return true
	})

	gjson.GetBytes(data, "version_check_bloats").ForEach(func(key, value gjson.Result) bool {
		var bloats []Bloat
		value.ForEach(func(_, pair gjson.Result) bool {
			entries := pair.Array()
			if len(entries) == 2 {
				bloats = append(bloats, Bloat{
					Match:   entries[0].String(),
					Replace: entries[1].String(),
				})
			}
			return true
		})
		m.VersionBloats[key.String()] = bloats
		return true
	})

	return m, nil
}

func parsePins(list gjson.Result) ([]Pin, error) {
	var pins []Pin
	var badEntry bool
	list.ForEach(func(_, value gjson.Result) bool {
		pair := value.Array()
		if len(pair) != 2 {
			badEntry = true
			return false
		}
		pins = append(pins, Pin{Name: pair[0].String(), Version: pair[1].String()})
		return true
	})
	if badEntry {
		return nil, fmt.Errorf("externals manifest entries must be [name, version] pairs")
	}
	return pins, nil
}

// Find looks a package up by name, noarch pins first.
func (m *Manifest) Find(name string) (Pin, bool) {
	for _, p := range m.Noarch {
		if p.Name == name {
			return p, true
		}
	}
	for _, p := range m.Arch {
		if p.Name == name {
			return p, true
		}
	}
	return Pin{}, false
}

// NormalizeVersion rewrites the bloat substrings a package's version string
// may carry so only dot-separated digits remain to compare.
func (m *Manifest) NormalizeVersion(pkg, version string) string {
	for _, b := range m.VersionBloats[pkg] {
		version = strings.ReplaceAll(version, b.Match, b.Replace)
	}
	return version
}

// SameVersion reports whether two version strings for pkg agree on their
// dot-separated numeric fields after bloat normalization.
func (m *Manifest) SameVersion(pkg, a, b string) bool {
	fa := versionFields(m.NormalizeVersion(pkg, a))
	fb := versionFields(m.NormalizeVersion(pkg, b))
	if len(fa) != len(fb) {
		return false
	}
	for i := range fa {
		if fa[i] != fb[i] {
			return false
		}
	}
	return true
}

// versionFields keeps the leading digit run of every dot-separated field.
func versionFields(version string) []string {
	var fields []string
	for _, part := range strings.Split(version, ".") {
		end := 0
		for end < len(part) && part[end] >= '0' && part[end] <= '9' {
			end++
		}
		if end > 0 {
			fields = append(fields, part[:end])
		}
	}
	return fields
}

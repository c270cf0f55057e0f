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

package externals

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

const sampleManifest = `{
  "noarch": [
    ["ApMon", "2.2.11"],
    ["paramiko", "1.7.3"],
    ["ipython", "0.6.13_ganga_patch1"]
  ],
  "arch": [
    ["matplotlib", "1.1.1"],
    ["numpy", "1.6.2"],
    ["pycrypto", "2.0.1"]
  ],
  "archs": ["x86_64-slc6-gcc48-opt", "x86_64-slc5-gcc46-opt"],
  "version_check_bloats": {
    "ipython": [["_ganga_patch", "."]],
    "pyqt": [["_python2.5", ""]]
  }
}`

func TestParse(t *testing.T) {
	ass := assert.New(t)

	m, err := Parse([]byte(sampleManifest))
	ass.NoError(err)
	ass.Len(m.Noarch, 3)
	ass.Len(m.Arch, 3)
	ass.Equal([]string{"x86_64-slc6-gcc48-opt", "x86_64-slc5-gcc46-opt"}, m.Archs)
	ass.Equal(Pin{Name: "ApMon", Version: "2.2.11"}, m.Noarch[0])
	ass.Equal([]Bloat{{Match: "_ganga_patch", Replace: "."}}, m.VersionBloats["ipython"])
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte("not json"))
	assert.Error(t, err)

	_, err = Parse([]byte(`{"noarch": [["only-name"]]}`))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	assert.NoError(t, afero.WriteFile(fs, "/etc/externals.json", []byte(sampleManifest), 0o644))

	m, err := Load(fs, "/etc/externals.json")
	assert.NoError(t, err)
	assert.Len(t, m.Noarch, 3)

	_, err = Load(fs, "/etc/missing.json")
	assert.Error(t, err)
}

func TestFind(t *testing.T) {
	ass := assert.New(t)
	m, err := Parse([]byte(sampleManifest))
	ass.NoError(err)

	pin, ok := m.Find("numpy")
	ass.True(ok)
	ass.Equal("1.6.2", pin.Version)

	_, ok = m.Find("nonexistent")
	ass.False(ok)
}

func TestVersionComparison(t *testing.T) {
	ass := assert.New(t)
	m, err := Parse([]byte(sampleManifest))
	ass.NoError(err)

	ass.Equal("0.6.13.1", m.NormalizeVersion("ipython", "0.6.13_ganga_patch1"))
	// packages without bloats pass through
	ass.Equal("1.6.2", m.NormalizeVersion("numpy", "1.6.2"))

	ass.True(m.SameVersion("ipython", "0.6.13_ganga_patch1", "0.6.13.1"))
	ass.True(m.SameVersion("numpy", "1.6.2", "1.6.2"))
	ass.False(m.SameVersion("numpy", "1.6.2", "1.6.3"))
	ass.False(m.SameVersion("numpy", "1.6.2", "1.6"))
}

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

package config

import (
	"os"

	"github.com/spf13/afero"

	"github.com/snoplus/ratprod-worker-go/internal/constants"
)

type Option func(*ProdConfig)

// WithLocalSoftwareDir sets the default snoing-install directory used when a
// spec does not name one on a local or batch backend.
func WithLocalSoftwareDir(dir string) Option {
	return func(config *ProdConfig) {
		config.localSoftwareDir = dir
	}
}

// WithLocalOutputDir sets the default output directory on batch and local
// backends; specs can override it.
func WithLocalOutputDir(dir string) Option {
	return func(config *ProdConfig) {
		config.localOutputDir = dir
	}
}

// WithGridOutputDir sets the default output directory on backends with grid
// storage; specs can override it.
func WithGridOutputDir(dir string) Option {
	return func(config *ProdConfig) {
		config.gridOutputDir = dir
	}
}

// WithLocalEnvironment sets default environment commands applied on local
// and batch backends when a spec carries no override of its own.
func WithLocalEnvironment(commands ...string) Option {
	return func(config *ProdConfig) {
		config.localEnvironment = commands
	}
}

// WithScriptDir sets the directory holding the runner and wrapper scripts.
func WithScriptDir(dir string) Option {
	return func(config *ProdConfig) {
		config.scriptDir = dir
	}
}

func WithTempDir(dir string) Option {
	return func(config *ProdConfig) {
		config.tempDir = dir
	}
}

func WithPreparePoolSize(size int) Option {
	return func(config *ProdConfig) {
		config.preparePoolSize = size
	}
}

// WithFs swaps the filesystem used for env-file materialization and proxy
// checks; tests pass a memory-backed one.
func WithFs(fs afero.Fs) Option {
	return func(config *ProdConfig) {
		config.fs = fs
	}
}

// ProdConfig carries the submission defaults. It is handed explicitly to
// the client and handlers rather than read from a process-wide registry.
type ProdConfig struct {
	localSoftwareDir string
	localOutputDir   string
	gridOutputDir    string
	localEnvironment []string
	scriptDir        string
	tempDir          string
	preparePoolSize  int
	fs               afero.Fs
}

func NewProdConfig(opts ...Option) *ProdConfig {
	prodConfig := defaultProdConfig()
	for _, opt := range opts {
		opt(prodConfig)
	}
	return prodConfig
}

func (c *ProdConfig) LocalSoftwareDir() string {
	return c.localSoftwareDir
}

func (c *ProdConfig) LocalOutputDir() string {
	return c.localOutputDir
}

func (c *ProdConfig) GridOutputDir() string {
	return c.gridOutputDir
}

func (c *ProdConfig) LocalEnvironment() []string {
	return c.localEnvironment
}

func (c *ProdConfig) ScriptDir() string {
	return c.scriptDir
}

func (c *ProdConfig) TempDir() string {
	return c.tempDir
}

func (c *ProdConfig) PreparePoolSize() int {
	return c.preparePoolSize
}

func (c *ProdConfig) Fs() afero.Fs {
	return c.fs
}

func defaultProdConfig() *ProdConfig {
	return &ProdConfig{
		scriptDir:       ".",
		tempDir:         os.TempDir(),
		preparePoolSize: constants.PreparePoolSizeDefault,
		fs:              afero.NewOsFs(),
	}
}

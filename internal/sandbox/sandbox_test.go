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

package sandbox

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"

	"github.com/snoplus/ratprod-worker-go/job"
)

func TestMaterializeFileReference(t *testing.T) {
	ass := assert.New(t)
	fs := afero.NewMemMapFs()

	path, name, err := Materialize(fs, "/tmp", job.EnvFile("/home/prod/env_rat-4.sh"))
	ass.NoError(err)
	ass.Equal("/home/prod/env_rat-4.sh", path)
	ass.Equal("env_rat-4.sh", name)
}

func TestMaterializeCommands(t *testing.T) {
	ass := assert.New(t)
	fs := afero.NewMemMapFs()

	env := job.EnvCommands("source /opt/setup.sh", "export RAT_SCALE=1")
	path, name, err := Materialize(fs, "/tmp", env)
	ass.NoError(err)
	ass.True(strings.HasPrefix(name, "tempRATProdEnv_"))
	ass.Equal("/tmp/"+name, path)

	content, err := afero.ReadFile(fs, path)
	ass.NoError(err)
	ass.Equal("source /opt/setup.sh \nexport RAT_SCALE=1 \n", string(content))
}

func TestMaterializeUniqueNames(t *testing.T) {
	ass := assert.New(t)
	fs := afero.NewMemMapFs()

	env := job.EnvCommands("export A=1")
	path1, name1, err := Materialize(fs, "/tmp", env)
	ass.NoError(err)
	path2, name2, err := Materialize(fs, "/tmp", env)
	ass.NoError(err)

	ass.NotEqual(name1, name2)
	ass.NotEqual(path1, path2)
}

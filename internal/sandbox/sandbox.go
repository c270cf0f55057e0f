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
	"fmt"
	"os/user"
	"path/filepath"

	"github.com/spf13/afero"
	atom "go.uber.org/atomic"

	"github.com/snoplus/ratprod-worker-go/internal/constants"
	"github.com/snoplus/ratprod-worker-go/internal/utils"
	"github.com/snoplus/ratprod-worker-go/job"
)

var envFileSeq = atom.NewInt64(0)

// Materialize resolves an environment override into something the sandbox
// can ship. For a file reference the file itself goes in the sandbox and the
// wrapper sees its base name. Inline commands are written one per line to a
// uniquely named temp file first.
//
// Returns the path to append to the input sandbox and the file name to hand
// the wrapper's -f flag.
func Materialize(fs afero.Fs, tempDir string, env *job.EnvironmentOverride) (sandboxPath, envName string, err error) {
	if env.IsFile() {
		return env.File(), utils.FileTail(env.File()), nil
	}

	envName = constants.EnvTempPrefix + login()
	sandboxPath = filepath.Join(tempDir, envName)
	if exists, _ := afero.Exists(fs, sandboxPath); exists {
		envName = fmt.Sprintf("%s%s_%d", constants.EnvTempPrefix, login(), envFileSeq.Inc())
		sandboxPath = filepath.Join(tempDir, envName)
	}

	f, err := fs.Create(sandboxPath)
	if err != nil {
		return "", "", fmt.Errorf("create env file %s: %w", sandboxPath, err)
	}
	defer f.Close()

	for _, line := range env.Commands() {
		if _, err := fmt.Fprintf(f, "%s \n", line); err != nil {
			return "", "", fmt.Errorf("write env file %s: %w", sandboxPath, err)
		}
	}
	return sandboxPath, envName, nil
}

func login() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "ratprod"
}

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

package job

import "github.com/snoplus/ratprod-worker-go/internal/utils"

// EnvironmentOverride is a custom environment setup to run before the job:
// either a file already containing the setup commands, or an inline command
// list that gets written to a temp file and shipped at prepare time. Build
// one with EnvFile or EnvCommands; a nil override means the backend default
// environment is fine.
type EnvironmentOverride struct {
	file     string
	commands []string
}

// EnvFile references an existing environment setup file by path.
func EnvFile(path string) *EnvironmentOverride {
	return &EnvironmentOverride{file: path}
}

// EnvCommands carries setup commands to materialize into a shipped file.
func EnvCommands(commands ...string) *EnvironmentOverride {
	return &EnvironmentOverride{commands: commands}
}

// IsFile reports whether the override references a file rather than inline
// commands.
func (e *EnvironmentOverride) IsFile() bool {
	return e.file != ""
}

func (e *EnvironmentOverride) File() string {
	return e.file
}

func (e *EnvironmentOverride) Commands() []string {
	return e.commands
}

func (e *EnvironmentOverride) clone() *EnvironmentOverride {
	if e == nil {
		return nil
	}
	return &EnvironmentOverride{
		file:     e.file,
		commands: utils.CopyStringSlice(e.commands),
	}
}

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

package handler

import (
	"errors"
	"path/filepath"

	"github.com/snoplus/ratprod-worker-go/config"
	"github.com/snoplus/ratprod-worker-go/handler/jobconfig"
	"github.com/snoplus/ratprod-worker-go/internal/args"
	"github.com/snoplus/ratprod-worker-go/internal/constants"
	"github.com/snoplus/ratprod-worker-go/internal/sandbox"
	"github.com/snoplus/ratprod-worker-go/internal/utils"
	"github.com/snoplus/ratprod-worker-go/job"
	"github.com/snoplus/ratprod-worker-go/logger"
)

var ErrNoRatDirectory = errors.New("must specify a RAT directory")

// localRTHandler prepares jobs for all local and batch submission. Without
// an environment override the runner is submitted directly with list-form
// arguments; with one, the wrapper script runs first and receives the
// runner arguments as a single string.
type localRTHandler struct{}

func (h *localRTHandler) Prepare(j *job.Job, cfg *config.ProdConfig) (*jobconfig.JobConfig, error) {
	logger.Debugf("RTHandler prepare ...")
	app := j.Application

	swDir := app.RatDirectory
	if swDir == "" {
		logger.Errorf("must specify a RAT directory")
		return nil, ErrNoRatDirectory
	}

	if app.Environment == nil {
		return &jobconfig.JobConfig{
			Executable:    filepath.Join(cfg.ScriptDir(), constants.RunnerScript),
			Args:          args.List(app, swDir),
			InputSandbox:  utils.CopyStringSlice(j.InputSandbox),
			OutputSandbox: utils.CopyStringSlice(j.OutputSandbox),
		}, nil
	}

	// a specific environment setup: ship an env file and let the wrapper
	// source it before launching the runner
	envPath, envName, err := sandbox.Materialize(cfg.Fs(), cfg.TempDir(), app.Environment)
	if err != nil {
		return nil, err
	}

	inbox := utils.CopyStringSlice(j.InputSandbox)
	inbox = append(inbox, envPath)
	inbox = append(inbox, filepath.Join(cfg.ScriptDir(), constants.RunnerScript))

	wrapperArgs := []string{
		"-s", constants.RunnerScript,
		"-l", constants.LauncherMisc,
		"-f", envName,
		"-a", args.String(app, swDir, "", ""),
	}

	return &jobconfig.JobConfig{
		Executable:    filepath.Join(cfg.ScriptDir(), constants.WrapperScript),
		Args:          wrapperArgs,
		InputSandbox:  inbox,
		OutputSandbox: utils.CopyStringSlice(j.OutputSandbox),
	}, nil
}

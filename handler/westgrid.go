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
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/snoplus/ratprod-worker-go/config"
	"github.com/snoplus/ratprod-worker-go/handler/jobconfig"
	"github.com/snoplus/ratprod-worker-go/internal/args"
	"github.com/snoplus/ratprod-worker-go/internal/constants"
	"github.com/snoplus/ratprod-worker-go/internal/utils"
	"github.com/snoplus/ratprod-worker-go/job"
	"github.com/snoplus/ratprod-worker-go/logger"
)

var ErrNoVOProxy = errors.New("cannot run without voproxy either in environment (X509_USER_PROXY) or specified for WestGrid backend")

// wgRTHandler prepares jobs for WestGrid submission. Outputs go to grid
// storage over srm and the user's VO proxy travels with the job.
type wgRTHandler struct{}

func (h *wgRTHandler) Prepare(j *job.Job, cfg *config.ProdConfig) (*jobconfig.JobConfig, error) {
	logger.Debugf("WGRTHandler prepare ...")
	app := j.Application

	swDir := app.RatDirectory
	if swDir == "" {
		logger.Errorf("must specify a RAT directory")
		return nil, ErrNoRatDirectory
	}

	voproxy := j.VOProxy
	if voproxy == "" {
		// default behaviour takes the proxy from the environment
		voproxy = os.Getenv(constants.EnvVarUserProxy)
		if voproxy == "" {
			logger.Errorf("cannot run without voproxy either in environment (%s) or specified for WestGrid backend", constants.EnvVarUserProxy)
			return nil, ErrNoVOProxy
		}
	}
	if exists, _ := afero.Exists(cfg.Fs(), voproxy); !exists {
		logger.Errorf("valid WestGrid voproxy location MUST be specified: %s", voproxy)
		return nil, fmt.Errorf("voproxy location does not exist: %s", voproxy)
	}

	inbox := utils.CopyStringSlice(j.InputSandbox)
	inbox = append(inbox, filepath.Join(cfg.ScriptDir(), constants.RunnerScript))

	wrapperArgs := []string{
		"-s", constants.RunnerScript,
		"-l", constants.LauncherWG,
		"-a", args.String(app, swDir, constants.GridProtocolSRM, voproxy),
	}

	return &jobconfig.JobConfig{
		Executable:    filepath.Join(cfg.ScriptDir(), constants.WrapperScript),
		Args:          wrapperArgs,
		InputSandbox:  inbox,
		OutputSandbox: utils.CopyStringSlice(j.OutputSandbox),
	}, nil
}

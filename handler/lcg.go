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
	"fmt"
	"path/filepath"

	"github.com/snoplus/ratprod-worker-go/config"
	"github.com/snoplus/ratprod-worker-go/handler/jobconfig"
	"github.com/snoplus/ratprod-worker-go/internal/args"
	"github.com/snoplus/ratprod-worker-go/internal/constants"
	"github.com/snoplus/ratprod-worker-go/internal/utils"
	"github.com/snoplus/ratprod-worker-go/job"
	"github.com/snoplus/ratprod-worker-go/logger"
)

// lcgRTHandler prepares jobs for LCG grid submission. The software area
// falls back to the VO default and the matching RAT release is requested
// via the grid requirements tag.
type lcgRTHandler struct{}

func (h *lcgRTHandler) Prepare(j *job.Job, cfg *config.ProdConfig) (*jobconfig.JobConfig, error) {
	logger.Debugf("LCGRTHandler prepare ...")
	app := j.Application

	swDir := app.RatDirectory
	if swDir == "" {
		swDir = constants.GridSoftwareDirDefault
	}

	inbox := utils.CopyStringSlice(j.InputSandbox)
	inbox = append(inbox, filepath.Join(cfg.ScriptDir(), constants.RunnerScript))

	// the whole runner argument string is quoted for the grid middleware
	wrapperArgs := []string{
		"-s", constants.RunnerScript,
		"-l", constants.LauncherLCG,
		"-a", `"` + args.String(app, swDir, constants.GridProtocolLCG, "") + `"`,
	}

	return &jobconfig.JobConfig{
		Executable:    filepath.Join(cfg.ScriptDir(), constants.WrapperScript),
		Args:          wrapperArgs,
		InputSandbox:  inbox,
		OutputSandbox: utils.CopyStringSlice(j.OutputSandbox),
		Requirements: &jobconfig.GridRequirements{
			Software: fmt.Sprintf(constants.GridSoftwareTagFormat, app.RatVersion),
		},
	}, nil
}

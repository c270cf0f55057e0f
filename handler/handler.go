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

// Package handler prepares a configured job for a specific backend,
// translating the spec into the runner (or wrapper) invocation the host
// framework submits.
package handler

import (
	"fmt"

	"github.com/snoplus/ratprod-worker-go/config"
	"github.com/snoplus/ratprod-worker-go/handler/jobconfig"
	"github.com/snoplus/ratprod-worker-go/job"
)

type RuntimeHandler interface {
	Prepare(j *job.Job, cfg *config.ProdConfig) (*jobconfig.JobConfig, error)
}

// handlers maps each backend to its handler. Local and batch systems share
// one handler; the grid backends get their own.
var handlers = map[job.Backend]RuntimeHandler{
	job.BackendLocal:         &localRTHandler{},
	job.BackendPBS:           &localRTHandler{},
	job.BackendSGE:           &localRTHandler{},
	job.BackendCondor:        &localRTHandler{},
	job.BackendBatch:         &localRTHandler{},
	job.BackendInteractive:   &localRTHandler{},
	job.BackendTestSubmitter: &localRTHandler{},
	job.BackendWestGrid:      &wgRTHandler{},
	job.BackendLCG:           &lcgRTHandler{},
}

// For returns the runtime handler for a backend.
func For(b job.Backend) (RuntimeHandler, error) {
	h, ok := handlers[b]
	if !ok {
		return nil, fmt.Errorf("no runtime handler for backend %s", b)
	}
	return h, nil
}

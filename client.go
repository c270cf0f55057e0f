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

// Package ratprod prepares RAT production jobs for submission: it splits a
// job into per-subrun subjobs and translates each one into the runner (or
// wrapper) invocation its backend expects. Scheduling, sandbox transfer and
// execution stay with the host framework.
package ratprod

import (
	"runtime/debug"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/snoplus/ratprod-worker-go/config"
	"github.com/snoplus/ratprod-worker-go/handler"
	"github.com/snoplus/ratprod-worker-go/handler/jobconfig"
	"github.com/snoplus/ratprod-worker-go/job"
	"github.com/snoplus/ratprod-worker-go/logger"
	"github.com/snoplus/ratprod-worker-go/splitter"
)

type Client struct {
	cfg *config.ProdConfig
}

// NewClient builds a client around the given submission defaults. A nil
// config gets the defaults.
func NewClient(cfg *config.ProdConfig) *Client {
	if cfg == nil {
		cfg = config.NewProdConfig()
	}
	return &Client{cfg: cfg}
}

// Submit runs the preparation pipeline: split (when a request is given),
// configure every subjob, and prepare each one for the job's backend. The
// returned configs are in subjob order. Any failure aborts the whole
// submission; nothing is retried.
func (c *Client) Submit(j *job.Job, req *splitter.SplitRequest) ([]*jobconfig.JobConfig, error) {
	subjobs := []*job.Job{j}
	if req != nil {
		var err error
		subjobs, err = splitter.Split(j, req)
		if err != nil {
			return nil, err
		}
		j.Subjobs = subjobs
	}

	h, err := handler.For(j.Backend)
	if err != nil {
		return nil, err
	}

	pool, err := ants.NewPool(
		c.cfg.PreparePoolSize(),
		ants.WithExpiryDuration(30*time.Second),
		ants.WithPanicHandler(func(i interface{}) {
			logger.Errorf("Catch panic in prepare pool, %v\n%s", i, debug.Stack())
		}))
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	configs := make([]*jobconfig.JobConfig, len(subjobs))
	errs := make([]error, len(subjobs))
	var wg sync.WaitGroup
	for i := range subjobs {
		i := i
		sub := subjobs[i]
		wg.Add(1)
		task := func() {
			defer wg.Done()
			c.applyDefaults(sub)
			if err := sub.Application.Configure(sub); err != nil {
				errs[i] = err
				return
			}
			configs[i], errs[i] = h.Prepare(sub, c.cfg)
		}
		if submitErr := pool.Submit(task); submitErr != nil {
			wg.Done()
			errs[i] = submitErr
		}
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			logger.Errorf("submission aborted: %s", err)
			return nil, err
		}
	}

	logger.Infof("prepared %d subjob(s) for backend %s", len(configs), j.Backend)
	return configs, nil
}

// applyDefaults fills spec gaps from the submission defaults before
// configuration. Specs always win over defaults.
func (c *Client) applyDefaults(j *job.Job) {
	app := j.Application
	switch j.Backend {
	case job.BackendLCG, job.BackendWestGrid:
		if app.OutputDir == "" {
			app.OutputDir = c.cfg.GridOutputDir()
		}
	default:
		if app.RatDirectory == "" {
			app.RatDirectory = c.cfg.LocalSoftwareDir()
		}
		if app.OutputDir == "" {
			app.OutputDir = c.cfg.LocalOutputDir()
		}
		if app.Environment == nil && len(c.cfg.LocalEnvironment()) > 0 {
			app.Environment = job.EnvCommands(c.cfg.LocalEnvironment()...)
		}
	}
}

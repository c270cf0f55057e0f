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

// Package splitter turns one job into per-subrun subjobs. Essentially an
// argument splitter keyed on the file lists.
package splitter

import (
	"errors"

	"github.com/snoplus/ratprod-worker-go/job"
	"github.com/snoplus/ratprod-worker-go/logger"
)

var (
	ErrBothRunFiles = errors.New("cannot provide both scripts and macros, must be either or")
	ErrNoRunFiles   = errors.New("must provide EITHER macros or scripts")
	ErrNoFiles      = errors.New("nothing to split on, need input or output files")
	ErrFileCount    = errors.New("input/output numbers dont match")
	ErrScriptCount  = errors.New("script/file numbers dont match")
	ErrMacroCount   = errors.New("macro/file numbers dont match")
)

// SplitRequest holds parallel lists: one entry per subjob. Exactly one of
// ProdScript / RatMacro must be populated, and whichever of InputFiles /
// OutputFiles is present must match its length.
type SplitRequest struct {
	// OutputFiles is a list of output file groups, one group per subjob.
	OutputFiles [][]string

	// InputFiles is a list of input file groups, one group per subjob.
	InputFiles [][]string

	// ProdScript lists the scripts, if used.
	ProdScript []string

	// RatMacro lists the macros, if used.
	RatMacro []string
}

// Validate applies the consistency rules and returns the subjob count.
func (r *SplitRequest) Validate() (int, error) {
	fin := len(r.InputFiles) != 0
	fout := len(r.OutputFiles) != 0

	nFiles := 0
	if fin {
		nFiles = len(r.InputFiles)
	}
	if fout {
		nFiles = len(r.OutputFiles)
	}

	nScript := len(r.ProdScript)
	nMacro := len(r.RatMacro)
	if nScript != 0 && nMacro != 0 {
		logger.Errorf("cannot provide both scripts and macros, must be either or")
		return 0, ErrBothRunFiles
	}
	if nScript == 0 && nMacro == 0 {
		logger.Errorf("must provide EITHER macros or scripts")
		return 0, ErrNoRunFiles
	}

	// if neither, what are we splitting for?
	if !fin && !fout {
		logger.Errorf("nothing to split on, need input or output files")
		return 0, ErrNoFiles
	}

	// with both input and output they must pair up
	if fin && fout && len(r.InputFiles) != len(r.OutputFiles) {
		logger.Errorf("input/output numbers dont match")
		return 0, ErrFileCount
	}
	if nScript != 0 && nScript != nFiles {
		logger.Errorf("script/file numbers dont match")
		return 0, ErrScriptCount
	}
	if nMacro != 0 && nMacro != nFiles {
		logger.Errorf("macro/file numbers dont match")
		return 0, ErrMacroCount
	}
	return nFiles, nil
}

// Split produces one subjob per file group, in source order. Subjob i
// inherits the parent spec with the i-th file groups and the i-th script or
// macro; downstream tooling relies on that positional correspondence.
func Split(j *job.Job, req *SplitRequest) ([]*job.Job, error) {
	nFiles, err := req.Validate()
	if err != nil {
		return nil, err
	}

	fin := len(req.InputFiles) != 0
	fout := len(req.OutputFiles) != 0

	subjobs := make([]*job.Job, 0, nFiles)
	for i := 0; i < nFiles; i++ {
		sub := j.CreateSubjob()
		if fout {
			sub.Application.OutputFiles = req.OutputFiles[i]
		}
		if fin {
			sub.Application.InputFiles = req.InputFiles[i]
		}
		if len(req.RatMacro) != 0 {
			sub.Application.RatMacro = req.RatMacro[i]
		} else {
			sub.Application.ProdScript = req.ProdScript[i]
		}
		subjobs = append(subjobs, sub)
	}
	return subjobs, nil
}

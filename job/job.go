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

// Backend identifies the submission target a job is prepared for.
type Backend int

const (
	BackendLocal Backend = iota
	BackendPBS
	BackendSGE
	BackendCondor
	BackendBatch
	BackendInteractive
	BackendTestSubmitter
	BackendWestGrid
	BackendLCG
)

func (b Backend) String() string {
	switch b {
	case BackendLocal:
		return "Local"
	case BackendPBS:
		return "PBS"
	case BackendSGE:
		return "SGE"
	case BackendCondor:
		return "Condor"
	case BackendBatch:
		return "Batch"
	case BackendInteractive:
		return "Interactive"
	case BackendTestSubmitter:
		return "TestSubmitter"
	case BackendWestGrid:
		return "WestGrid"
	case BackendLCG:
		return "LCG"
	default:
		return "Unknown"
	}
}

// Job couples an application spec with a backend target and the sandboxes the
// host framework ships alongside the run. Subjobs produced by splitting hang
// off the parent until the host takes ownership of them.
type Job struct {
	Application *Spec
	Backend     Backend

	// VOProxy is a WestGrid backend setting, the location of the proxy
	// certificate to ship. Falls back to X509_USER_PROXY when empty.
	VOProxy string

	InputSandbox  []string
	OutputSandbox []string

	Subjobs []*Job
}

func New(spec *Spec, backend Backend) *Job {
	if spec == nil {
		spec = NewSpec()
	}
	return &Job{
		Application: spec,
		Backend:     backend,
	}
}

// CreateSubjob returns a job inheriting the parent's spec and backend with
// fresh sandboxes. The spec is deep-copied so the splitter can override file
// lists without touching siblings.
func (j *Job) CreateSubjob() *Job {
	return &Job{
		Application: j.Application.clone(),
		Backend:     j.Backend,
		VOProxy:     j.VOProxy,
	}
}

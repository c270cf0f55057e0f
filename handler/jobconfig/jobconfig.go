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

package jobconfig

// GridRequirements carries backend resource requirements for grid
// submission, currently just the published software tag.
type GridRequirements struct {
	Software string
}

// JobConfig is what a runtime handler hands back to the host framework: the
// executable to submit, its argument vector, and the sandboxes to transfer.
type JobConfig struct {
	Executable    string
	Args          []string
	InputSandbox  []string
	OutputSandbox []string

	// Requirements is only set for grid backends.
	Requirements *GridRequirements
}

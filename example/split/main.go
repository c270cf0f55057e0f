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

package main

import (
	"fmt"

	ratprod "github.com/snoplus/ratprod-worker-go"
	"github.com/snoplus/ratprod-worker-go/config"
	"github.com/snoplus/ratprod-worker-go/job"
	"github.com/snoplus/ratprod-worker-go/splitter"
)

// Splits one production job into a subjob per subrun and prepares each for
// LCG grid submission.
func main() {
	spec := job.NewSpec()
	spec.RatVersion = "5"
	spec.OutputDir = "prod/2023"

	req := &splitter.SplitRequest{
		InputFiles:  [][]string{{"f1.root"}, {"f2.root"}},
		OutputFiles: [][]string{{"o1.root"}, {"o2.root"}},
		RatMacro:    []string{"s1.mac", "s2.mac"},
	}

	client := ratprod.NewClient(config.NewProdConfig(
		config.WithScriptDir("/opt/ratprod"),
	))
	configs, err := client.Submit(job.New(spec, job.BackendLCG), req)
	if err != nil {
		panic(err)
	}

	for i, jc := range configs {
		fmt.Printf("subjob %d: %s %v (requires %s)\n",
			i, jc.Executable, jc.Args, jc.Requirements.Software)
	}
}

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
)

func main() {
	cfg := config.NewProdConfig(
		config.WithLocalSoftwareDir("/opt/snoing-install"),
		config.WithLocalOutputDir("/data/snoplus/out"),
		config.WithScriptDir("/opt/ratprod"),
	)

	spec := job.NewSpec()
	spec.RatVersion = "5"
	spec.RatMacro = "/macros/prod_run.mac"
	spec.OutputFiles = []string{"o1.root"}

	client := ratprod.NewClient(cfg)
	configs, err := client.Submit(job.New(spec, job.BackendBatch), nil)
	if err != nil {
		panic(err)
	}

	for _, jc := range configs {
		fmt.Println(jc.Executable, jc.Args)
	}
}

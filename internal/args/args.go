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

// Package args assembles the argument vector for ratProdRunner.py. The flag
// order is part of the runner's wire contract and must not change: version,
// software dir, output dir, output list, input dir, input list, run file,
// then the optional ratdb and nostore tails.
package args

import (
	"fmt"
	"strings"

	"github.com/snoplus/ratprod-worker-go/internal/utils"
	"github.com/snoplus/ratprod-worker-go/job"
)

// RenderFileList serializes file names as a bracketed comma-joined list with
// no trailing comma, e.g. [a,b,c]. An empty list renders as [].
func RenderFileList(files []string) string {
	return "[" + strings.Join(files, ",") + "]"
}

// RunFile resolves the bare name of the file the runner executes.
func RunFile(spec *job.Spec) string {
	if spec.RatMacro != "" {
		return utils.FileTail(spec.RatMacro)
	}
	return utils.FileTail(spec.ProdScript)
}

// List builds the argument vector for backends that exec the runner
// directly.
func List(spec *job.Spec, swDir string) []string {
	a := []string{
		"-v", spec.RatVersion,
		"-s", swDir,
		"-d", spec.OutputDir,
		"-o", RenderFileList(spec.OutputFiles),
		"-x", spec.InputDir,
		"-i", RenderFileList(spec.InputFiles),
	}
	if spec.RatMacro != "" {
		a = append(a, "-m", RunFile(spec))
	} else {
		// -k tells the runner this is a script, not a macro
		a = append(a, "-k", "-m", RunFile(spec))
	}
	if spec.UseDB {
		a = append(a,
			"--dbuser", spec.RatDBUser,
			"--dbpassword", spec.RatDBPswd,
			"--dbname", spec.RatDBName,
			"--dbprotocol", spec.RatDBProtocol,
			"--dburl", spec.RatDBURL,
		)
	}
	if spec.DiscardOutput {
		a = append(a, "--nostore")
	}
	return a
}

// String builds the single-string form used inside wrapper invocations.
// Every token is followed by a space, including the last; the wrapper passes
// the string through to the runner verbatim. gridProtocol prepends -g and
// voproxy appends --voproxy when non-empty.
func String(spec *job.Spec, swDir, gridProtocol, voproxy string) string {
	var sb strings.Builder
	if gridProtocol != "" {
		fmt.Fprintf(&sb, "-g %s ", gridProtocol)
	}
	fmt.Fprintf(&sb, "-v %s ", spec.RatVersion)
	fmt.Fprintf(&sb, "-s %s ", swDir)
	fmt.Fprintf(&sb, "-d %s ", spec.OutputDir)
	fmt.Fprintf(&sb, "-o %s ", RenderFileList(spec.OutputFiles))
	fmt.Fprintf(&sb, "-x %s ", spec.InputDir)
	fmt.Fprintf(&sb, "-i %s ", RenderFileList(spec.InputFiles))
	if spec.RatMacro != "" {
		fmt.Fprintf(&sb, "-m %s ", RunFile(spec))
	} else {
		fmt.Fprintf(&sb, "-k -m %s ", RunFile(spec))
	}
	if voproxy != "" {
		fmt.Fprintf(&sb, "--voproxy %s ", voproxy)
	}
	if spec.UseDB {
		fmt.Fprintf(&sb, "--dbuser %s ", spec.RatDBUser)
		fmt.Fprintf(&sb, "--dbpassword %s ", spec.RatDBPswd)
		fmt.Fprintf(&sb, "--dbname %s ", spec.RatDBName)
		fmt.Fprintf(&sb, "--dbprotocol %s ", spec.RatDBProtocol)
		fmt.Fprintf(&sb, "--dburl %s ", spec.RatDBURL)
	}
	if spec.DiscardOutput {
		sb.WriteString("--nostore ")
	}
	return sb.String()
}

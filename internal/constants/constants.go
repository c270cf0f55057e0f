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

package constants

const (
	// Scripts shipped with every submission. The runner executes RAT (or a
	// production script) on the worker node, the wrapper sets up a custom
	// environment first and then invokes the runner.
	RunnerScript  = "ratProdRunner.py"
	WrapperScript = "sillyPythonWrapper.py"

	// Launcher kinds understood by the wrapper script, passed via its -l flag.
	LauncherMisc = "misc"
	LauncherWG   = "wg"
	LauncherLCG  = "lcg"

	// Grid storage protocols, passed to the runner via -g.
	GridProtocolSRM = "srm"
	GridProtocolLCG = "lcg"

	EnvVarUserProxy = "X509_USER_PROXY"
	EnvVarLogLevel  = "RATPROD_LOG_LEVEL"

	RatVersionDefault = "4"
	OutputLogDefault  = "rat_output.log"

	// Sandbox files every RAT run produces.
	RatLogName     = "rat.log"
	ReturnCardName = "return_card.js"

	// LCG worker nodes resolve the software area from the VO environment
	// unless the job overrides it.
	GridSoftwareDirDefault = "$VO_SNOPLUS_SNOLAB_CA_SW_DIR/snoing-install"
	GridSoftwareTagFormat  = "VO-snoplus.snolab.ca-rat-%s"

	EnvTempPrefix = "tempRATProdEnv_"

	PreparePoolSizeDefault = 8
)

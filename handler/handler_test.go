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
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"

	"github.com/snoplus/ratprod-worker-go/config"
	"github.com/snoplus/ratprod-worker-go/job"
)

func testConfig(fs afero.Fs) *config.ProdConfig {
	return config.NewProdConfig(
		config.WithScriptDir("/opt/ratprod"),
		config.WithTempDir("/tmp"),
		config.WithFs(fs),
	)
}

func testJob(backend job.Backend) *job.Job {
	spec := job.NewSpec()
	spec.RatMacro = "/macros/run.mac"
	spec.RatVersion = "5"
	spec.RatDirectory = "/opt/snoing-install"
	spec.OutputDir = "out"
	spec.OutputFiles = []string{"o1.root"}
	j := job.New(spec, backend)
	if err := spec.Configure(j); err != nil {
		panic(err)
	}
	return j
}

func TestHandlerTable(t *testing.T) {
	ass := assert.New(t)

	local := []job.Backend{
		job.BackendLocal, job.BackendPBS, job.BackendSGE, job.BackendCondor,
		job.BackendBatch, job.BackendInteractive, job.BackendTestSubmitter,
	}
	for _, b := range local {
		h, err := For(b)
		ass.NoError(err)
		ass.IsType(&localRTHandler{}, h)
	}

	h, err := For(job.BackendWestGrid)
	ass.NoError(err)
	ass.IsType(&wgRTHandler{}, h)

	h, err = For(job.BackendLCG)
	ass.NoError(err)
	ass.IsType(&lcgRTHandler{}, h)

	_, err = For(job.Backend(99))
	ass.Error(err)
}

func TestLocalPrepareDirectExec(t *testing.T) {
	ass := assert.New(t)

	j := testJob(job.BackendLocal)
	cfg := testConfig(afero.NewMemMapFs())

	jc, err := (&localRTHandler{}).Prepare(j, cfg)
	ass.NoError(err)
	ass.Equal("/opt/ratprod/ratProdRunner.py", jc.Executable)
	ass.Equal([]string{
		"-v", "5",
		"-s", "/opt/snoing-install",
		"-d", "out",
		"-o", "[o1.root]",
		"-x", "",
		"-i", "[]",
		"-m", "run.mac",
	}, jc.Args)
	ass.Equal([]string{"/macros/run.mac"}, jc.InputSandbox)
	ass.Equal([]string{"rat.log", "return_card.js"}, jc.OutputSandbox)
	ass.Nil(jc.Requirements)
}

func TestLocalPrepareRequiresRatDirectory(t *testing.T) {
	j := testJob(job.BackendLocal)
	j.Application.RatDirectory = ""

	_, err := (&localRTHandler{}).Prepare(j, testConfig(afero.NewMemMapFs()))
	assert.ErrorIs(t, err, ErrNoRatDirectory)
}

func TestLocalPrepareWithEnvOverride(t *testing.T) {
	ass := assert.New(t)
	fs := afero.NewMemMapFs()

	j := testJob(job.BackendBatch)
	j.Application.Environment = job.EnvCommands("source /opt/setup.sh")

	jc, err := (&localRTHandler{}).Prepare(j, testConfig(fs))
	ass.NoError(err)
	ass.Equal("/opt/ratprod/sillyPythonWrapper.py", jc.Executable)

	ass.Len(jc.Args, 8)
	ass.Equal([]string{"-s", "ratProdRunner.py", "-l", "misc", "-f"}, jc.Args[:5])
	envName := jc.Args[5]
	ass.True(strings.HasPrefix(envName, "tempRATProdEnv_"))
	ass.Equal("-a", jc.Args[6])
	ass.Equal("-v 5 -s /opt/snoing-install -d out -o [o1.root] -x  -i [] -m run.mac ", jc.Args[7])

	// env file and runner join the shipped sandbox
	ass.Equal([]string{"/macros/run.mac", "/tmp/" + envName, "/opt/ratprod/ratProdRunner.py"}, jc.InputSandbox)
	content, err := afero.ReadFile(fs, "/tmp/"+envName)
	ass.NoError(err)
	ass.Equal("source /opt/setup.sh \n", string(content))
}

func TestLocalPrepareWithEnvFileReference(t *testing.T) {
	ass := assert.New(t)

	j := testJob(job.BackendLocal)
	j.Application.Environment = job.EnvFile("/home/prod/env_rat-5.sh")

	jc, err := (&localRTHandler{}).Prepare(j, testConfig(afero.NewMemMapFs()))
	ass.NoError(err)
	ass.Equal("env_rat-5.sh", jc.Args[5])
	ass.Contains(jc.InputSandbox, "/home/prod/env_rat-5.sh")
}

func TestWestGridPrepare(t *testing.T) {
	ass := assert.New(t)
	fs := afero.NewMemMapFs()
	ass.NoError(afero.WriteFile(fs, "/tmp/x509_proxy", []byte("proxy"), 0o600))

	j := testJob(job.BackendWestGrid)
	j.VOProxy = "/tmp/x509_proxy"

	jc, err := (&wgRTHandler{}).Prepare(j, testConfig(fs))
	ass.NoError(err)
	ass.Equal("/opt/ratprod/sillyPythonWrapper.py", jc.Executable)
	ass.Equal([]string{"-s", "ratProdRunner.py", "-l", "wg", "-a"}, jc.Args[:5])
	ass.Equal("-g srm -v 5 -s /opt/snoing-install -d out -o [o1.root] -x  -i [] "+
		"-m run.mac --voproxy /tmp/x509_proxy ", jc.Args[5])
	ass.Contains(jc.InputSandbox, "/opt/ratprod/ratProdRunner.py")
}

func TestWestGridPrepareProxyFromEnv(t *testing.T) {
	ass := assert.New(t)
	fs := afero.NewMemMapFs()
	ass.NoError(afero.WriteFile(fs, "/tmp/env_proxy", []byte("proxy"), 0o600))
	t.Setenv("X509_USER_PROXY", "/tmp/env_proxy")

	j := testJob(job.BackendWestGrid)
	jc, err := (&wgRTHandler{}).Prepare(j, testConfig(fs))
	ass.NoError(err)
	ass.Contains(jc.Args[5], "--voproxy /tmp/env_proxy ")
}

func TestWestGridPrepareProxyErrors(t *testing.T) {
	ass := assert.New(t)
	t.Setenv("X509_USER_PROXY", "")

	j := testJob(job.BackendWestGrid)
	_, err := (&wgRTHandler{}).Prepare(j, testConfig(afero.NewMemMapFs()))
	ass.ErrorIs(err, ErrNoVOProxy)

	// a named proxy must exist on disk
	j.VOProxy = "/tmp/missing_proxy"
	_, err = (&wgRTHandler{}).Prepare(j, testConfig(afero.NewMemMapFs()))
	ass.ErrorContains(err, "voproxy location does not exist")
}

func TestLCGPrepare(t *testing.T) {
	ass := assert.New(t)

	j := testJob(job.BackendLCG)
	jc, err := (&lcgRTHandler{}).Prepare(j, testConfig(afero.NewMemMapFs()))
	ass.NoError(err)
	ass.Equal("/opt/ratprod/sillyPythonWrapper.py", jc.Executable)
	ass.Equal([]string{"-s", "ratProdRunner.py", "-l", "lcg", "-a"}, jc.Args[:5])
	ass.Equal(`"-g lcg -v 5 -s /opt/snoing-install -d out -o [o1.root] -x  -i [] -m run.mac "`, jc.Args[5])
	ass.NotNil(jc.Requirements)
	ass.Equal("VO-snoplus.snolab.ca-rat-5", jc.Requirements.Software)
}

func TestLCGPrepareDefaultSoftwareDir(t *testing.T) {
	j := testJob(job.BackendLCG)
	j.Application.RatDirectory = ""

	jc, err := (&lcgRTHandler{}).Prepare(j, testConfig(afero.NewMemMapFs()))
	assert.NoError(t, err)
	assert.Contains(t, jc.Args[5], "-s $VO_SNOPLUS_SNOLAB_CA_SW_DIR/snoing-install ")
}

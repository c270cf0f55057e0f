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

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/snoplus/ratprod-worker-go/internal/constants"
	"github.com/snoplus/ratprod-worker-go/internal/utils"
	"github.com/snoplus/ratprod-worker-go/logger"
)

var (
	ErrNoRunFile   = errors.New("prodScript or ratMacro not defined")
	ErrBothRunFile = errors.New("both prodScript and ratMacro are defined")
	ErrNoDBPswd    = errors.New("need a password in order to contact the ratdb database")
)

// Spec describes a single RAT production run: which macro or script to
// execute, where the software lives, which files go in and out, and the
// optional ratdb connection. Exactly one of RatMacro / ProdScript must be
// set before the job is configured.
type Spec struct {
	// Environment optionally overrides the backend environment setup.
	Environment *EnvironmentOverride

	// DiscardOutput stops outputs being stored.
	DiscardOutput bool

	// InputDir and OutputDir are relative paths, resolved against a base
	// directory that depends on the backend.
	InputDir  string
	OutputDir string

	InputFiles  []string
	OutputFiles []string

	// OutputLog is the log file name, only used when RAT itself runs.
	OutputLog string

	// ProdScript points to a production script to run. May be set by the
	// splitter.
	ProdScript string

	// RatMacro points to the macro file to run. May be set by the splitter.
	RatMacro string

	// RatDirectory is the snoing install directory. Required on local and
	// batch backends, defaulted from the VO software area on LCG.
	RatDirectory string

	// RatVersion is needed to set up the environment even when RAT is not run.
	RatVersion string

	// UseDB enables the ratdb connection arguments below. Only the password
	// is checked at configure time.
	UseDB         bool
	RatDBName     string
	RatDBPswd     string
	RatDBProtocol string
	RatDBURL      string
	RatDBUser     string
}

func NewSpec() *Spec {
	return &Spec{
		OutputLog:  constants.OutputLogDefault,
		RatVersion: constants.RatVersionDefault,
	}
}

// Validate checks the field-level rules. The run-file rules live in
// Configure since they depend on two fields at once.
func (s *Spec) Validate() error {
	return validation.ValidateStruct(s,
		validation.Field(&s.RatVersion, validation.Required),
		validation.Field(&s.RatDBPswd,
			validation.Required.When(s.UseDB).Error(ErrNoDBPswd.Error())),
	)
}

// Configure validates the spec and seeds the job sandboxes, once per job
// before backend preparation. The macro (or script) travels in the input
// sandbox; rat.log comes back whenever RAT runs, return_card.js always does.
func (s *Spec) Configure(j *Job) error {
	logger.Debugf("RATProd configure ...")

	if s.ProdScript == "" && s.RatMacro == "" {
		logger.Errorf("prodScript or ratMacro not defined")
		return ErrNoRunFile
	}
	if s.ProdScript != "" && s.RatMacro != "" {
		logger.Errorf("both prodScript and ratMacro are defined")
		return ErrBothRunFile
	}
	if s.UseDB && s.RatDBPswd == "" {
		logger.Errorf("need a password in order to contact the ratdb database")
		return ErrNoDBPswd
	}
	if err := s.Validate(); err != nil {
		logger.Errorf("invalid spec: %s", err)
		return err
	}

	if s.RatMacro != "" {
		j.InputSandbox = append(j.InputSandbox, s.RatMacro)
		// rat always logs to rat.log
		j.OutputSandbox = append(j.OutputSandbox, constants.RatLogName)
	} else {
		j.InputSandbox = append(j.InputSandbox, s.ProdScript)
	}
	j.OutputSandbox = append(j.OutputSandbox, constants.ReturnCardName)

	return nil
}

func (s *Spec) clone() *Spec {
	if s == nil {
		return nil
	}
	cp := *s
	cp.InputFiles = utils.CopyStringSlice(s.InputFiles)
	cp.OutputFiles = utils.CopyStringSlice(s.OutputFiles)
	cp.Environment = s.Environment.clone()
	return &cp
}

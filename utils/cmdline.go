/*
 * UpdateHub
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package utils

import (
	"fmt"
	"os/exec"

	shellwords "github.com/mattn/go-shellwords"
)

// CmdLineExecuter runs an external helper and returns its combined output
type CmdLineExecuter interface {
	Execute(cmdline string) ([]byte, error)
}

// CmdLine is the default CmdLineExecuter, it splits the command line
// following shell quoting rules
type CmdLine struct {
}

// Execute runs "cmdline" and waits for it to exit
func (cl *CmdLine) Execute(cmdline string) ([]byte, error) {
	list, err := shellwords.NewParser().Parse(cmdline)
	if err != nil {
		return nil, err
	}

	if len(list) == 0 {
		return nil, fmt.Errorf("empty command line")
	}

	output, err := exec.Command(list[0], list[1:]...).CombinedOutput()
	if exitErr, ok := err.(*exec.ExitError); ok && !exitErr.Success() {
		return output, fmt.Errorf("failed to execute '%s': %s", cmdline, string(output))
	}

	return output, err
}

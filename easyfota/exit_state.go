/*
 * UpdateHub
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package easyfota

// ExitState is the final state of the state machine
type ExitState struct {
	BaseState

	exitCode int
}

// ExitCode is the process exit status
func (state *ExitState) ExitCode() int {
	return state.exitCode
}

// NewExitState creates a new ExitState
func NewExitState(exitCode int) *ExitState {
	return &ExitState{
		BaseState: BaseState{id: EasyFotaStateExit},
		exitCode:  exitCode,
	}
}

// Handle for ExitState
func (state *ExitState) Handle(ef *EasyFota) (State, error) {
	panic("ExitState handler should not be called")
}

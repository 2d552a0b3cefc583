/*
 * UpdateHub
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package easyfota

type Daemon struct {
	ef   *EasyFota
	stop bool
}

func NewDaemon(ef *EasyFota) *Daemon {
	return &Daemon{
		ef: ef,
	}
}

// Stop makes Run return once the current state is handled
func (d *Daemon) Stop() {
	d.stop = true
}

// Run loops over the states until an ExitState is reached and returns
// its exit code
func (d *Daemon) Run() int {
	if finalState, _ := d.ef.GetState().(*ExitState); finalState != nil {
		return finalState.exitCode
	}

	for {
		nextState := d.ef.ProcessCurrentState()

		if d.stop || nextState.ID() == EasyFotaStateExit {
			if finalState, _ := nextState.(*ExitState); finalState != nil {
				return finalState.exitCode
			}

			return 0
		}
	}
}

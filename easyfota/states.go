/*
 * UpdateHub
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package easyfota

// EasyFotaState holds the possible states for the agent
type EasyFotaState int

const (
	// EasyFotaDummyState is a dummy state
	EasyFotaDummyState = iota
	// EasyFotaStateAwaitingConnectivity is set while the agent waits
	// for the network to come up
	EasyFotaStateAwaitingConnectivity
	// EasyFotaStateOpeningSession is set when the agent is opening
	// a session with the image source
	EasyFotaStateOpeningSession
	// EasyFotaStateFetchingHeader is set when the agent is reading
	// the candidate image descriptor
	EasyFotaStateFetchingHeader
	// EasyFotaStateValidating is set when the agent is checking the
	// candidate descriptor against the update policy
	EasyFotaStateValidating
	// EasyFotaStateTransferring is set when the agent is writing the
	// image into the inactive slot
	EasyFotaStateTransferring
	// EasyFotaStateFinishing is set when the agent is finalizing
	// the session
	EasyFotaStateFinishing
	// EasyFotaStateRebooting is set when the agent is about to restart
	// into the new image
	EasyFotaStateRebooting
	// EasyFotaStateCoolingDown is set when the agent is waiting before
	// a new attempt
	EasyFotaStateCoolingDown
	// EasyFotaStateExit is set when the daemon is about to quit
	EasyFotaStateExit
)

var statusNames = map[EasyFotaState]string{
	EasyFotaDummyState:                "dummy",
	EasyFotaStateAwaitingConnectivity: "awaiting-connectivity",
	EasyFotaStateOpeningSession:       "opening-session",
	EasyFotaStateFetchingHeader:       "fetching-header",
	EasyFotaStateValidating:           "validating",
	EasyFotaStateTransferring:         "transferring",
	EasyFotaStateFinishing:            "finishing",
	EasyFotaStateRebooting:            "rebooting",
	EasyFotaStateCoolingDown:          "cooling-down",
	EasyFotaStateExit:                 "exit",
}

// ProgressTracker will define which way the progress is kept
type ProgressTracker interface {
	SetProgress(progress int)
	GetProgress() int
}

// ProgressTrackerImpl is for the ProgressTracker interface implementation
type ProgressTrackerImpl struct {
	progress int
}

// SetProgress is for the ProgressTracker interface implementation
func (pti *ProgressTrackerImpl) SetProgress(progress int) {
	pti.progress = progress
}

// GetProgress is for the ProgressTracker interface implementation
func (pti *ProgressTrackerImpl) GetProgress() int {
	return pti.progress
}

// BaseState is the state from which all others must do composition
type BaseState struct {
	id EasyFotaState
}

// ID returns the state id
func (b *BaseState) ID() EasyFotaState {
	return b.id
}

// ToMap is for the State interface implementation
func (b *BaseState) ToMap() map[string]interface{} {
	m := map[string]interface{}{}
	m["status"] = StateToString(b.ID())
	return m
}

// State interface describes the necessary operations for a State
type State interface {
	ID() EasyFotaState
	// Handle implements the behavior when the State is set. The
	// returned error is only informative, the next state already
	// reflects it.
	Handle(*EasyFota) (State, error)
	ToMap() map[string]interface{}
}

// StateToString converts a "EasyFotaState" to string
func StateToString(status EasyFotaState) string {
	return statusNames[status]
}

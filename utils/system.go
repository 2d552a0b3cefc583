/*
 * UpdateHub
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package utils

// RebootCommand is the helper used to restart the device
const RebootCommand = "/sbin/reboot"

// Rebooter restarts the device
type Rebooter interface {
	Reboot() error
}

// RebooterImpl restarts the device by running RebootCommand
type RebooterImpl struct {
	CmdLineExecuter
}

// NewRebooter returns a Rebooter backed by the system reboot helper
func NewRebooter() *RebooterImpl {
	return &RebooterImpl{CmdLineExecuter: &CmdLine{}}
}

// Reboot is the Rebooter interface implementation
func (r *RebooterImpl) Reboot() error {
	_, err := r.Execute(RebootCommand)

	return err
}

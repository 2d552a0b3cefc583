/*
 * UpdateHub
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

// Package activeinactive selects which of the two firmware slots boots
package activeinactive

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/OSSystems/pkg/log"

	"github.com/UpdateHub/easyfota/utils"
)

const (
	activeGetCommand = "easyfota-active-get"
	activeSetCommand = "easyfota-active-set"
)

// Interface describes the operations on the boot slot selector
type Interface interface {
	Active() (int, error)
	SetActive(active int) error
}

// DefaultImpl talks to the bootloader through the platform helpers
type DefaultImpl struct {
	utils.CmdLineExecuter
}

// Inactive returns the slot that is not "active"
func Inactive(active int) int {
	return (active - 1) * -1
}

// Active returns the slot the device booted from
func (i *DefaultImpl) Active() (int, error) {
	log.Debug(fmt.Sprintf("Running '%s'", activeGetCommand))

	output, err := i.Execute(activeGetCommand)
	if err != nil {
		finalErr := fmt.Errorf("failed to execute '%s': %s", activeGetCommand, err)
		log.Error(finalErr)
		return 0, finalErr
	}

	active, err := strconv.Atoi(strings.TrimSpace(string(output)))
	if err != nil {
		finalErr := fmt.Errorf("failed to parse response from '%s': %s", activeGetCommand, err)
		log.Error(finalErr)
		return 0, finalErr
	}

	if active != 0 && active != 1 {
		finalErr := fmt.Errorf("invalid active slot reported by '%s': %d", activeGetCommand, active)
		log.Error(finalErr)
		return 0, finalErr
	}

	log.Debug("Active slot: ", active)

	return active, nil
}

// SetActive makes "active" the slot used on next boot
func (i *DefaultImpl) SetActive(active int) error {
	log.Debug(fmt.Sprintf("Running '%s' for slot: %d", activeSetCommand, active))

	_, err := i.Execute(fmt.Sprintf("%s %d", activeSetCommand, active))
	if err != nil {
		finalErr := fmt.Errorf("failed to execute '%s': %s", activeSetCommand, err)
		log.Error(finalErr)
		return finalErr
	}

	return nil
}

/*
 * UpdateHub
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

// Package partition gives access to the two firmware slots of the device
package partition

import (
	"fmt"
	"io"
	"os"

	"github.com/OSSystems/pkg/log"
	"github.com/spf13/afero"

	"github.com/UpdateHub/easyfota/activeinactive"
	"github.com/UpdateHub/easyfota/metadata"
	"github.com/UpdateHub/easyfota/utils"
)

// Slot is an open handle to the slot receiving a new image
type Slot struct {
	afero.File

	Index int
	Path  string
}

// Manager maps slot indexes to their block devices
type Manager struct {
	FileSystemBackend     afero.Fs
	ActiveInactiveBackend activeinactive.Interface
	Devices               [2]string
}

// NewManager creates a Manager for the "slot0" and "slot1" devices
func NewManager(fs afero.Fs, aii activeinactive.Interface, slot0, slot1 string) *Manager {
	return &Manager{
		FileSystemBackend:     fs,
		ActiveInactiveBackend: aii,
		Devices:               [2]string{slot0, slot1},
	}
}

// RunningDescriptor reads the descriptor of the image in the active slot
func (m *Manager) RunningDescriptor() (*metadata.RunningImageInfo, error) {
	active, err := m.ActiveInactiveBackend.Active()
	if err != nil {
		return nil, err
	}

	header, err := m.ReadHeader(active)
	if err != nil {
		return nil, err
	}

	info := metadata.RunningImageInfo(header.Descriptor)

	return &info, nil
}

// ReadHeader decodes the image header stored in "slot"
func (m *Manager) ReadHeader(slot int) (*metadata.ImageHeader, error) {
	file, err := m.FileSystemBackend.Open(m.Devices[slot])
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data := make([]byte, metadata.ImageHeaderLength)

	_, err = io.ReadFull(file, data)
	if err != nil {
		return nil, fmt.Errorf("failed to read image header from '%s': %s", m.Devices[slot], err)
	}

	return metadata.ParseImageHeader(data)
}

// OpenInactive opens the slot that is not running for writing
func (m *Manager) OpenInactive() (*Slot, error) {
	active, err := m.ActiveInactiveBackend.Active()
	if err != nil {
		return nil, err
	}

	index := activeinactive.Inactive(active)
	path := m.Devices[index]

	file, err := m.FileSystemBackend.OpenFile(path, os.O_WRONLY|os.O_CREATE, 0666)
	if err != nil {
		return nil, err
	}

	log.Debug(fmt.Sprintf("writing image to slot %d (%s)", index, path))

	return &Slot{File: file, Index: index, Path: path}, nil
}

// Verify checks the SHA-256 digest appended to the "length" bytes image
// written into "slot"
func (m *Manager) Verify(slot int, length int64) (bool, error) {
	return utils.CheckTrailingSha256sum(m.FileSystemBackend, m.Devices[slot], length)
}

// SetBootable makes "slot" the one used on next boot
func (m *Manager) SetBootable(slot int) error {
	err := m.ActiveInactiveBackend.SetActive(slot)
	if err != nil {
		return err
	}

	log.Info(fmt.Sprintf("slot %d (%s) set as bootable", slot, m.Devices[slot]))

	return nil
}

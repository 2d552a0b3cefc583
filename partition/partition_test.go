/*
 * UpdateHub
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package partition

import (
	"fmt"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"

	"github.com/UpdateHub/easyfota/metadata"
	"github.com/UpdateHub/easyfota/testsmocks/activeinactivemock"
	"github.com/UpdateHub/easyfota/utils"
)

func newTestManager(aim *activeinactivemock.ActiveInactiveMock) (*Manager, afero.Fs) {
	fs := afero.NewMemMapFs()
	return NewManager(fs, aim, "/dev/slot0", "/dev/slot1"), fs
}

func TestRunningDescriptor(t *testing.T) {
	aim := &activeinactivemock.ActiveInactiveMock{}
	aim.On("Active").Return(1, nil)

	m, fs := newTestManager(aim)

	h := &metadata.ImageHeader{Descriptor: metadata.FirmwareDescriptor{Version: "1.0.0", SecureVersion: 2}}
	assert.NoError(t, afero.WriteFile(fs, "/dev/slot1", append(h.Encode(), 0x00, 0x01), 0644))

	info, err := m.RunningDescriptor()
	assert.NoError(t, err)
	assert.Equal(t, "1.0.0", info.Version)
	assert.Equal(t, uint32(2), info.SecureVersion)

	aim.AssertExpectations(t)
}

func TestRunningDescriptorWithActiveError(t *testing.T) {
	aim := &activeinactivemock.ActiveInactiveMock{}
	aim.On("Active").Return(0, fmt.Errorf("active error"))

	m, _ := newTestManager(aim)

	info, err := m.RunningDescriptor()
	assert.EqualError(t, err, "active error")
	assert.Nil(t, info)

	aim.AssertExpectations(t)
}

func TestRunningDescriptorWithTruncatedSlot(t *testing.T) {
	aim := &activeinactivemock.ActiveInactiveMock{}
	aim.On("Active").Return(0, nil)

	m, fs := newTestManager(aim)
	assert.NoError(t, afero.WriteFile(fs, "/dev/slot0", []byte{metadata.ImageMagic}, 0644))

	info, err := m.RunningDescriptor()
	assert.EqualError(t, err, "failed to read image header from '/dev/slot0': unexpected EOF")
	assert.Nil(t, info)

	aim.AssertExpectations(t)
}

func TestOpenInactive(t *testing.T) {
	aim := &activeinactivemock.ActiveInactiveMock{}
	aim.On("Active").Return(0, nil)

	m, fs := newTestManager(aim)

	slot, err := m.OpenInactive()
	assert.NoError(t, err)
	assert.Equal(t, 1, slot.Index)
	assert.Equal(t, "/dev/slot1", slot.Path)

	_, err = slot.Write([]byte("image"))
	assert.NoError(t, err)
	assert.NoError(t, slot.Close())

	data, err := afero.ReadFile(fs, "/dev/slot1")
	assert.NoError(t, err)
	assert.Equal(t, []byte("image"), data)

	aim.AssertExpectations(t)
}

func TestVerify(t *testing.T) {
	aim := &activeinactivemock.ActiveInactiveMock{}
	m, fs := newTestManager(aim)

	payload := []byte("payload")
	image := append(append([]byte{}, payload...), utils.DataSha256sum(payload)...)
	assert.NoError(t, afero.WriteFile(fs, "/dev/slot1", image, 0644))

	ok, err := m.Verify(1, int64(len(image)))
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = m.Verify(1, int64(len(image)-1))
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestSetBootable(t *testing.T) {
	aim := &activeinactivemock.ActiveInactiveMock{}
	aim.On("SetActive", 1).Return(nil).Once()
	aim.On("SetActive", 0).Return(fmt.Errorf("set error")).Once()

	m, _ := newTestManager(aim)

	assert.NoError(t, m.SetBootable(1))
	assert.EqualError(t, m.SetBootable(0), "set error")

	aim.AssertExpectations(t)
}

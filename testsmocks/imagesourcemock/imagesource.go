/*
 * UpdateHub
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package imagesourcemock

import (
	"github.com/stretchr/testify/mock"

	"github.com/UpdateHub/easyfota/imagesource"
	"github.com/UpdateHub/easyfota/metadata"
)

// SourceMock is an imagesource.Source mock
type SourceMock struct {
	mock.Mock
}

func (sm *SourceMock) Begin(cfg *imagesource.Config) (imagesource.Session, error) {
	args := sm.Called(cfg)

	s, _ := args.Get(0).(imagesource.Session)

	return s, args.Error(1)
}

// SessionMock is an imagesource.Session mock
type SessionMock struct {
	mock.Mock
}

func (sm *SessionMock) ReadDescriptor() (*metadata.FirmwareDescriptor, error) {
	args := sm.Called()

	d, _ := args.Get(0).(*metadata.FirmwareDescriptor)

	return d, args.Error(1)
}

func (sm *SessionMock) PerformStep() (imagesource.StepStatus, error) {
	args := sm.Called()
	return args.Get(0).(imagesource.StepStatus), args.Error(1)
}

func (sm *SessionMock) BytesRead() int64 {
	args := sm.Called()
	return args.Get(0).(int64)
}

func (sm *SessionMock) IsComplete() bool {
	args := sm.Called()
	return args.Bool(0)
}

func (sm *SessionMock) Finish() error {
	args := sm.Called()
	return args.Error(0)
}

func (sm *SessionMock) Abort() error {
	args := sm.Called()
	return args.Error(0)
}

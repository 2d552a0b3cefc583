/*
 * UpdateHub
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package activeinactive

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/UpdateHub/easyfota/testsmocks/cmdlinemock"
)

func TestInactive(t *testing.T) {
	assert.Equal(t, 1, Inactive(0))
	assert.Equal(t, 0, Inactive(1))
}

func TestDefaultImplActive(t *testing.T) {
	clm := &cmdlinemock.CmdLineExecuterMock{}
	clm.On("Execute", "easyfota-active-get").Return([]byte("1\n"), nil)

	di := DefaultImpl{CmdLineExecuter: clm}

	active, err := di.Active()

	assert.NoError(t, err)
	assert.Equal(t, 1, active)

	clm.AssertExpectations(t)
}

func TestDefaultImplActiveWithExecuteError(t *testing.T) {
	clm := &cmdlinemock.CmdLineExecuterMock{}
	clm.On("Execute", "easyfota-active-get").Return([]byte(""), fmt.Errorf("execute error"))

	di := DefaultImpl{CmdLineExecuter: clm}

	active, err := di.Active()

	assert.EqualError(t, err, "failed to execute 'easyfota-active-get': execute error")
	assert.Equal(t, 0, active)

	clm.AssertExpectations(t)
}

func TestDefaultImplActiveWithParseError(t *testing.T) {
	clm := &cmdlinemock.CmdLineExecuterMock{}
	clm.On("Execute", "easyfota-active-get").Return([]byte("a"), nil)

	di := DefaultImpl{CmdLineExecuter: clm}

	active, err := di.Active()

	assert.EqualError(t, err, "failed to parse response from 'easyfota-active-get': strconv.Atoi: parsing \"a\": invalid syntax")
	assert.Equal(t, 0, active)

	clm.AssertExpectations(t)
}

func TestDefaultImplActiveWithOutOfRangeSlot(t *testing.T) {
	clm := &cmdlinemock.CmdLineExecuterMock{}
	clm.On("Execute", "easyfota-active-get").Return([]byte("2"), nil)

	di := DefaultImpl{CmdLineExecuter: clm}

	active, err := di.Active()

	assert.EqualError(t, err, "invalid active slot reported by 'easyfota-active-get': 2")
	assert.Equal(t, 0, active)

	clm.AssertExpectations(t)
}

func TestDefaultImplSetActive(t *testing.T) {
	clm := &cmdlinemock.CmdLineExecuterMock{}
	clm.On("Execute", "easyfota-active-set 1").Return([]byte(""), nil)

	di := DefaultImpl{CmdLineExecuter: clm}

	assert.NoError(t, di.SetActive(1))

	clm.AssertExpectations(t)
}

func TestDefaultImplSetActiveWithExecuteError(t *testing.T) {
	clm := &cmdlinemock.CmdLineExecuterMock{}
	clm.On("Execute", "easyfota-active-set 0").Return([]byte(""), fmt.Errorf("execute error"))

	di := DefaultImpl{CmdLineExecuter: clm}

	assert.EqualError(t, di.SetActive(0), "failed to execute 'easyfota-active-set': execute error")

	clm.AssertExpectations(t)
}

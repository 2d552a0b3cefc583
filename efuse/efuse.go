/*
 * UpdateHub
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

// Package efuse reads the anti-rollback security floor
package efuse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/OSSystems/pkg/log"
	"github.com/spf13/afero"
)

// Reader returns the minimum secure version the device accepts
type Reader interface {
	SecureVersion() (uint32, error)
}

// FileReader reads the security floor from a file exported by the
// secure boot mechanism. The file holds a single decimal counter.
type FileReader struct {
	FileSystemBackend afero.Fs
	Path              string
}

// NewFileReader creates a FileReader for "path"
func NewFileReader(fs afero.Fs, path string) *FileReader {
	return &FileReader{
		FileSystemBackend: fs,
		Path:              path,
	}
}

// SecureVersion is the Reader interface implementation
func (r *FileReader) SecureVersion() (uint32, error) {
	data, err := afero.ReadFile(r.FileSystemBackend, r.Path)
	if err != nil {
		finalErr := fmt.Errorf("failed to read secure version from '%s': %s", r.Path, err)
		log.Error(finalErr)
		return 0, finalErr
	}

	v, err := strconv.ParseUint(strings.TrimSpace(string(data)), 10, 32)
	if err != nil {
		finalErr := fmt.Errorf("failed to parse secure version from '%s': %s", r.Path, err)
		log.Error(finalErr)
		return 0, finalErr
	}

	log.Debug("eFuse secure version: ", v)

	return uint32(v), nil
}

/*
 * UpdateHub
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package metadata

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

const (
	// ImageMagic is the first byte of every application image
	ImageMagic = 0xE9
	// DescriptorMagic identifies the application descriptor
	DescriptorMagic = 0xABCD5432

	imageHeaderLength   = 24
	segmentHeaderLength = 8
	hashAppendedOffset  = 23

	// DescriptorOffset is where the application descriptor starts
	DescriptorOffset = imageHeaderLength + segmentHeaderLength
	// DescriptorLength is the encoded size of the application descriptor
	DescriptorLength = 256
	// ImageHeaderLength is how many bytes of an image must be read to
	// extract its descriptor
	ImageHeaderLength = DescriptorOffset + DescriptorLength

	versionLength     = 32
	projectNameLength = 32
	timeLength        = 16
	dateLength        = 16
	idfVersionLength  = 32
)

// FirmwareDescriptor is the metadata carried in the header of a
// candidate image
type FirmwareDescriptor struct {
	Version       string
	SecureVersion uint32
	ProjectName   string
	Time          string
	Date          string
	IDFVersion    string
	ELFSha256     [32]byte
}

// RunningImageInfo describes the image currently executing
type RunningImageInfo FirmwareDescriptor

// ImageHeader is the decoded prefix of an image
type ImageHeader struct {
	SegmentCount uint8
	HashAppended bool
	Descriptor   FirmwareDescriptor
}

// rawDescriptor mirrors the on-flash layout of the application descriptor
type rawDescriptor struct {
	Magic         uint32
	SecureVersion uint32
	_             [2]uint32
	Version       [versionLength]byte
	ProjectName   [projectNameLength]byte
	Time          [timeLength]byte
	Date          [dateLength]byte
	IDFVersion    [idfVersionLength]byte
	ELFSha256     [32]byte
	_             [20]uint32
}

// ParseImageHeader decodes the first ImageHeaderLength bytes of an image
func ParseImageHeader(data []byte) (*ImageHeader, error) {
	if len(data) < ImageHeaderLength {
		return nil, fmt.Errorf("image header too short: %d bytes, expected %d", len(data), ImageHeaderLength)
	}

	if data[0] != ImageMagic {
		return nil, fmt.Errorf("invalid image magic: 0x%02x", data[0])
	}

	var raw rawDescriptor

	err := binary.Read(bytes.NewReader(data[DescriptorOffset:ImageHeaderLength]), binary.LittleEndian, &raw)
	if err != nil {
		return nil, err
	}

	if raw.Magic != DescriptorMagic {
		return nil, fmt.Errorf("invalid descriptor magic: 0x%08x", raw.Magic)
	}

	return &ImageHeader{
		SegmentCount: data[1],
		HashAppended: data[hashAppendedOffset] == 1,
		Descriptor: FirmwareDescriptor{
			Version:       cString(raw.Version[:]),
			SecureVersion: raw.SecureVersion,
			ProjectName:   cString(raw.ProjectName[:]),
			Time:          cString(raw.Time[:]),
			Date:          cString(raw.Date[:]),
			IDFVersion:    cString(raw.IDFVersion[:]),
			ELFSha256:     raw.ELFSha256,
		},
	}, nil
}

// Encode returns the ImageHeaderLength bytes that ParseImageHeader
// decodes back into "h"
func (h *ImageHeader) Encode() []byte {
	raw := rawDescriptor{
		Magic:         DescriptorMagic,
		SecureVersion: h.Descriptor.SecureVersion,
		ELFSha256:     h.Descriptor.ELFSha256,
	}

	copy(raw.Version[:], h.Descriptor.Version)
	copy(raw.ProjectName[:], h.Descriptor.ProjectName)
	copy(raw.Time[:], h.Descriptor.Time)
	copy(raw.Date[:], h.Descriptor.Date)
	copy(raw.IDFVersion[:], h.Descriptor.IDFVersion)

	buf := bytes.NewBuffer(make([]byte, 0, ImageHeaderLength))

	prefix := make([]byte, DescriptorOffset)
	prefix[0] = ImageMagic
	prefix[1] = h.SegmentCount
	if h.HashAppended {
		prefix[hashAppendedOffset] = 1
	}
	binary.LittleEndian.PutUint32(prefix[imageHeaderLength+4:], DescriptorLength)

	buf.Write(prefix)

	// writing into a bytes.Buffer never fails
	_ = binary.Write(buf, binary.LittleEndian, &raw)

	return buf.Bytes()
}

func cString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}

	return string(b)
}

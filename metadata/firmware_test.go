/*
 * UpdateHub
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testImageHeader() *ImageHeader {
	return &ImageHeader{
		SegmentCount: 4,
		HashAppended: true,
		Descriptor: FirmwareDescriptor{
			Version:       "v1.2.0",
			SecureVersion: 3,
			ProjectName:   "advanced_https_ota",
			Time:          "10:00:00",
			Date:          "Oct 15 2026",
			IDFVersion:    "v5.1",
			ELFSha256:     [32]byte{0xde, 0xad, 0xbe, 0xef},
		},
	}
}

func TestImageHeaderEncodeParseRoundTrip(t *testing.T) {
	h := testImageHeader()

	data := h.Encode()
	assert.Equal(t, ImageHeaderLength, len(data))

	parsed, err := ParseImageHeader(data)
	assert.NoError(t, err)
	assert.Equal(t, h, parsed)
}

func TestParseImageHeaderLayout(t *testing.T) {
	data := testImageHeader().Encode()

	assert.Equal(t, byte(ImageMagic), data[0])
	assert.Equal(t, byte(1), data[23])
	assert.Equal(t, []byte{0x32, 0x54, 0xcd, 0xab}, data[32:36])
	assert.Equal(t, []byte{3, 0, 0, 0}, data[36:40])
	assert.Equal(t, []byte("v1.2.0"), data[48:54])
	assert.Equal(t, byte(0), data[54])
}

func TestParseImageHeaderWithShortData(t *testing.T) {
	h, err := ParseImageHeader(make([]byte, 10))

	assert.EqualError(t, err, "image header too short: 10 bytes, expected 288")
	assert.Nil(t, h)
}

func TestParseImageHeaderWithInvalidImageMagic(t *testing.T) {
	data := testImageHeader().Encode()
	data[0] = 0x00

	h, err := ParseImageHeader(data)

	assert.EqualError(t, err, "invalid image magic: 0x00")
	assert.Nil(t, h)
}

func TestParseImageHeaderWithInvalidDescriptorMagic(t *testing.T) {
	data := testImageHeader().Encode()
	data[DescriptorOffset] = 0x00

	h, err := ParseImageHeader(data)

	assert.EqualError(t, err, "invalid descriptor magic: 0xabcd5400")
	assert.Nil(t, h)
}

func TestParseImageHeaderKeepsVersionBytes(t *testing.T) {
	h := testImageHeader()
	h.Descriptor.Version = " 2.0 "

	parsed, err := ParseImageHeader(h.Encode())
	assert.NoError(t, err)
	assert.Equal(t, " 2.0 ", parsed.Descriptor.Version)
}

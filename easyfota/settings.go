/*
 * UpdateHub
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package easyfota

import (
	"fmt"
	"io"
	"io/ioutil"
	"time"

	"github.com/go-ini/ini"

	"github.com/UpdateHub/easyfota/policy"
)

// URLFromStdinMarker is the UpgradeURL value required when the URL is
// read from the standard input
const URLFromStdinMarker = "FROM_STDIN"

type Settings struct {
	FirmwareSettings     `ini:"Firmware"`
	DownloadSettings     `ini:"Download"`
	AntiRollbackSettings `ini:"AntiRollback"`
	PartitionsSettings   `ini:"Partitions"`
	TimingSettings       `ini:"Timing"`
	NetworkSettings      `ini:"Network"`
}

type FirmwareSettings struct {
	UpgradeURL          string        `ini:"UpgradeURL"`
	URLFromStdin        bool          `ini:"URLFromStdin"`
	CertPath            string        `ini:"CertPath"`
	RecvTimeout         time.Duration `ini:"RecvTimeout"`
	SkipCommonNameCheck bool          `ini:"SkipCommonNameCheck"`
	SkipVersionCheck    bool          `ini:"SkipVersionCheck"`
	VersionScheme       string        `ini:"VersionScheme"`
	KeepAlive           bool          `ini:"KeepAlive"`
}

type DownloadSettings struct {
	PartialHTTPDownload bool  `ini:"PartialHTTPDownload"`
	MaxHTTPRequestSize  int64 `ini:"MaxHTTPRequestSize"`
	ChunkSize           int   `ini:"ChunkSize"`
}

type AntiRollbackSettings struct {
	AntiRollbackEnabled bool   `ini:"Enabled"`
	SecureVersionPath   string `ini:"SecureVersionPath"`
}

type PartitionsSettings struct {
	Slot0 string `ini:"Slot0"`
	Slot1 string `ini:"Slot1"`
}

type TimingSettings struct {
	StartupDelay        time.Duration `ini:"StartupDelay"`
	ConnectivityTimeout time.Duration `ini:"ConnectivityTimeout"`
	CooldownInterval    time.Duration `ini:"CooldownInterval"`
	RebootDelay         time.Duration `ini:"RebootDelay"`
}

type NetworkSettings struct {
	CheckAddress  string        `ini:"CheckAddress"`
	CheckInterval time.Duration `ini:"CheckInterval"`
	MaximumRetry  int           `ini:"MaximumRetry"`
}

func init() {
	ini.PrettyFormat = false
}

// DefaultSettings returns the settings used for every key missing
// from the configuration file
func DefaultSettings() *Settings {
	return &Settings{
		FirmwareSettings: FirmwareSettings{
			UpgradeURL:          "",
			URLFromStdin:        false,
			CertPath:            "/etc/easyfota/ca_cert.pem",
			RecvTimeout:         5 * time.Second,
			SkipCommonNameCheck: false,
			SkipVersionCheck:    false,
			VersionScheme:       "bytes",
			KeepAlive:           true,
		},

		DownloadSettings: DownloadSettings{
			PartialHTTPDownload: false,
			MaxHTTPRequestSize:  16384,
			ChunkSize:           1024,
		},

		AntiRollbackSettings: AntiRollbackSettings{
			AntiRollbackEnabled: false,
			SecureVersionPath:   "/var/lib/easyfota/secure_version",
		},

		PartitionsSettings: PartitionsSettings{
			Slot0: "/dev/mmcblk0p2",
			Slot1: "/dev/mmcblk0p3",
		},

		TimingSettings: TimingSettings{
			StartupDelay:        10 * time.Second,
			ConnectivityTimeout: 100 * time.Millisecond,
			CooldownInterval:    60 * time.Second,
			RebootDelay:         time.Second,
		},

		NetworkSettings: NetworkSettings{
			CheckAddress:  "",
			CheckInterval: 5 * time.Second,
			MaximumRetry:  5,
		},
	}
}

func LoadSettings(r io.Reader) (*Settings, error) {
	cfg, err := ini.Load(ioutil.NopCloser(r))
	if err != nil || cfg == nil {
		return nil, err
	}

	s := DefaultSettings()

	err = cfg.MapTo(s)
	if err != nil {
		return nil, err
	}

	switch policy.VersionScheme(s.VersionScheme) {
	case policy.VersionSchemeBytes, policy.VersionSchemeSemver:
	default:
		return nil, fmt.Errorf("invalid version scheme '%s'", s.VersionScheme)
	}

	return s, nil
}

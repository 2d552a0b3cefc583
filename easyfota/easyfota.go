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
	"os"
	"strings"
	"sync"
	"time"

	"github.com/OSSystems/pkg/log"
	"github.com/pkg/errors"

	"github.com/UpdateHub/easyfota/connectivity"
	"github.com/UpdateHub/easyfota/efuse"
	"github.com/UpdateHub/easyfota/imagesource"
	"github.com/UpdateHub/easyfota/metadata"
	"github.com/UpdateHub/easyfota/policy"
	"github.com/UpdateHub/easyfota/utils"
)

// MaxURLLength is the longest URL accepted from the standard input
const MaxURLLength = 256

// RunningImageProvider describes the image the device is running
type RunningImageProvider interface {
	RunningDescriptor() (*metadata.RunningImageInfo, error)
}

type EasyFota struct {
	ProgressTracker

	Settings     *Settings
	Gate         connectivity.Gate
	Source       imagesource.Source
	RunningImage RunningImageProvider
	FloorReader  efuse.Reader
	Validator    *policy.Validator
	Rebooter     utils.Rebooter
	Stdin        io.Reader
	CertPEM      []byte
	ClientInit   imagesource.HeaderInitFunc
	Sleep        func(time.Duration)

	URL         string
	Session     *UpdateSession
	LastOutcome Outcome

	state      State
	stateMutex sync.Mutex
}

func NewEasyFota(settings *Settings, gate connectivity.Gate, source imagesource.Source, running RunningImageProvider, floor efuse.Reader) *EasyFota {
	ef := &EasyFota{
		ProgressTracker: &ProgressTrackerImpl{},
		Settings:        settings,
		Gate:            gate,
		Source:          source,
		RunningImage:    running,
		FloorReader:     floor,
		Validator: &policy.Validator{
			SkipVersionCheck: settings.SkipVersionCheck,
			AntiRollback:     settings.AntiRollbackEnabled,
			Scheme:           policy.VersionScheme(settings.VersionScheme),
		},
		Rebooter: utils.NewRebooter(),
		Stdin:    os.Stdin,
		Sleep:    time.Sleep,
		state:    NewAwaitingConnectivityState(),
	}

	return ef
}

func (ef *EasyFota) GetState() State {
	return ef.state
}

func (ef *EasyFota) SetState(state State) {
	ef.stateMutex.Lock()
	defer ef.stateMutex.Unlock()

	ef.state = state
}

// ProcessCurrentState handles the current state and moves to the next one
func (ef *EasyFota) ProcessCurrentState() State {
	ef.stateMutex.Lock()
	defer ef.stateMutex.Unlock()

	log.Debug(fmt.Sprintf("handling state: %v", ef.state.ToMap()))

	state, err := ef.state.Handle(ef)
	if err != nil {
		log.Debug(fmt.Sprintf("leaving state '%s' with error: %s", StateToString(ef.state.ID()), err))
	}

	ef.state = state

	return ef.state
}

// Start runs once before the state machine loop. It gives the network
// time to come up and resolves the image URL.
func (ef *EasyFota) Start() {
	if ef.Settings.StartupDelay > 0 {
		log.Info(fmt.Sprintf("waiting %s before the first update attempt", ef.Settings.StartupDelay))
		ef.Sleep(ef.Settings.StartupDelay)
	}

	url, err := ef.resolveURL()
	if err != nil {
		finalErr := NewFatalError(FatalConfigurationMismatch, err)
		log.Error(finalErr)
		ef.SetState(NewExitState(1))
		return
	}

	ef.URL = url

	log.Info(fmt.Sprintf("firmware upgrade URL: %s", ef.URL))

	ef.SetState(NewAwaitingConnectivityState())
}

func (ef *EasyFota) resolveURL() (string, error) {
	if !ef.Settings.URLFromStdin {
		if ef.Settings.UpgradeURL == URLFromStdinMarker {
			return "", fmt.Errorf("upgrade URL is '%s' but reading it from stdin is disabled", URLFromStdinMarker)
		}

		return ef.Settings.UpgradeURL, nil
	}

	if ef.Settings.UpgradeURL != URLFromStdinMarker {
		return "", fmt.Errorf("configuration mismatched: reading the URL from stdin requires the upgrade URL to be '%s', got '%s'", URLFromStdinMarker, ef.Settings.UpgradeURL)
	}

	if ef.Stdin == nil {
		return "", errors.New("no stdin to read the upgrade URL from")
	}

	log.Info("reading the upgrade URL from stdin")

	url, err := readLine(ef.Stdin, MaxURLLength)
	if err != nil {
		return "", errors.Wrap(err, "failed to read the upgrade URL from stdin")
	}

	if url == "" {
		return "", errors.New("empty upgrade URL read from stdin")
	}

	return url, nil
}

// readLine reads up to "max" bytes or a newline, one byte at a time so
// nothing past the line is consumed
func readLine(r io.Reader, max int) (string, error) {
	line := make([]byte, 0, max)
	b := make([]byte, 1)

	for len(line) < max {
		n, err := r.Read(b)
		if n == 1 {
			if b[0] == '\n' {
				break
			}

			line = append(line, b[0])
			continue
		}

		if err == io.EOF {
			break
		}

		if err != nil {
			return "", err
		}
	}

	return strings.TrimSpace(string(line)), nil
}

func (ef *EasyFota) sessionConfig() *imagesource.Config {
	return &imagesource.Config{
		URL:                 ef.URL,
		CertPEM:             ef.CertPEM,
		Timeout:             ef.Settings.RecvTimeout,
		SkipCommonNameCheck: ef.Settings.SkipCommonNameCheck,
		KeepAlive:           ef.Settings.KeepAlive,
		PartialHTTPDownload: ef.Settings.PartialHTTPDownload,
		MaxHTTPRequestSize:  ef.Settings.MaxHTTPRequestSize,
		ChunkSize:           ef.Settings.ChunkSize,
		AntiRollback:        ef.Settings.AntiRollbackEnabled,
		ClientInit:          ef.ClientInit,
	}
}

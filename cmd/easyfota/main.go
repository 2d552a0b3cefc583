/*
 * UpdateHub
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package main

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"

	"github.com/OSSystems/pkg/log"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/UpdateHub/easyfota/activeinactive"
	"github.com/UpdateHub/easyfota/connectivity"
	"github.com/UpdateHub/easyfota/easyfota"
	"github.com/UpdateHub/easyfota/efuse"
	"github.com/UpdateHub/easyfota/imagesource"
	"github.com/UpdateHub/easyfota/partition"
	"github.com/UpdateHub/easyfota/utils"
)

const defaultSettingsPath = "/etc/easyfota.conf"

func main() {
	log.SetLevel(logrus.InfoLevel)

	cmd := &cobra.Command{
		Use:   "easyfota",
		Short: "Firmware self-update agent",
		Run:   func(cmd *cobra.Command, args []string) {},
	}

	settingsPath := cmd.PersistentFlags().StringP("config", "c", defaultSettingsPath, "path to the configuration file")
	isQuiet := cmd.PersistentFlags().Bool("quiet", false, "sets the log level to 'error'")
	isDebug := cmd.PersistentFlags().Bool("debug", false, "sets the log level to 'debug'")
	headers := cmd.PersistentFlags().StringArray("header", nil, "extra 'Name: value' header sent with every image request")

	err := cmd.Execute()
	if err != nil {
		log.Fatal(err)
		os.Exit(1)
	}

	helpCalled, err := cmd.Flags().GetBool("help")
	if err != nil {
		log.Fatal(err)
		os.Exit(1)
	}

	if helpCalled {
		os.Exit(1)
	}

	if *isQuiet {
		log.SetLevel(logrus.ErrorLevel)
	}

	if *isDebug {
		log.SetLevel(logrus.DebugLevel)
	}

	osFs := afero.NewOsFs()

	settings, err := loadSettings(osFs, *settingsPath)
	if err != nil {
		log.Fatal(err)
		os.Exit(1)
	}

	certPEM, err := readCertificate(osFs, settings.CertPath)
	if err != nil {
		log.Fatal(err)
		os.Exit(1)
	}

	pairs, err := parseHeaders(*headers)
	if err != nil {
		log.Fatal(err)
		os.Exit(1)
	}

	aii := &activeinactive.DefaultImpl{CmdLineExecuter: &utils.CmdLine{}}
	partitions := partition.NewManager(osFs, aii, settings.Slot0, settings.Slot1)
	floor := efuse.NewFileReader(osFs, settings.SecureVersionPath)
	group := connectivity.NewEventGroup()

	ef := easyfota.NewEasyFota(settings, group, imagesource.NewHTTPSource(partitions, floor), partitions, floor)
	ef.CertPEM = certPEM

	if len(pairs) > 0 {
		ef.ClientInit = imagesource.HeaderFromPairs(pairs...)
	}

	ef.Start()

	if _, exiting := ef.GetState().(*easyfota.ExitState); !exiting {
		address, err := checkAddress(settings.CheckAddress, ef.URL)
		if err != nil {
			log.Warn(fmt.Sprintf("network monitor disabled: %s", err))
		} else {
			monitor := connectivity.NewMonitor(group, address, settings.CheckInterval, settings.MaximumRetry)
			go monitor.Run(context.Background())
		}
	}

	d := easyfota.NewDaemon(ef)

	os.Exit(d.Run())
}

func loadSettings(fs afero.Fs, path string) (*easyfota.Settings, error) {
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return nil, err
	}

	if !exists {
		log.Warn(fmt.Sprintf("configuration file '%s' not found, using defaults", path))
		return easyfota.DefaultSettings(), nil
	}

	file, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return easyfota.LoadSettings(file)
}

// readCertificate returns nil when there is no certificate so the
// system roots are used
func readCertificate(fs afero.Fs, path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}

	exists, err := afero.Exists(fs, path)
	if err != nil {
		return nil, err
	}

	if !exists {
		log.Warn(fmt.Sprintf("certificate '%s' not found, using the system roots", path))
		return nil, nil
	}

	return afero.ReadFile(fs, path)
}

// parseHeaders turns "Name: value" flags into name/value pairs
func parseHeaders(headers []string) ([]string, error) {
	pairs := []string{}

	for _, h := range headers {
		i := strings.Index(h, ":")
		if i < 1 {
			return nil, fmt.Errorf("invalid header '%s', expected 'Name: value'", h)
		}

		pairs = append(pairs, strings.TrimSpace(h[:i]), strings.TrimSpace(h[i+1:]))
	}

	return pairs, nil
}

// checkAddress returns the host:port probed by the network monitor
func checkAddress(configured string, imageURL string) (string, error) {
	if configured != "" {
		return configured, nil
	}

	u, err := url.Parse(imageURL)
	if err != nil {
		return "", err
	}

	if u.Hostname() == "" {
		return "", fmt.Errorf("no host in '%s'", imageURL)
	}

	port := u.Port()
	if port == "" {
		switch u.Scheme {
		case "https":
			port = "443"
		case "http":
			port = "80"
		default:
			return "", fmt.Errorf("unsupported scheme '%s'", u.Scheme)
		}
	}

	return net.JoinHostPort(u.Hostname(), port), nil
}

/*
 * UpdateHub
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package utils

import (
	"fmt"
	"strings"
)

// MergeErrorList joins the non-nil errors of "errorList" into a single
// error. It returns nil when there is nothing to report.
func MergeErrorList(errorList []error) error {
	filtered := []error{}
	for _, err := range errorList {
		if err != nil {
			filtered = append(filtered, err)
		}
	}

	switch len(filtered) {
	case 0:
		return nil
	case 1:
		return filtered[0]
	}

	errorMessages := []string{}
	for _, err := range filtered {
		errorMessages = append(errorMessages, fmt.Sprintf("(%v)", err))
	}

	return fmt.Errorf("%s", strings.Join(errorMessages, "; "))
}

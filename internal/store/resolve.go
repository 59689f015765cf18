// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/refdiff/refdiff/internal/corpus"
)

// Resolve takes the available versions plus user-supplied specs and returns
// the matching version ids, in spec order. The list of versions is in
// ascending number order. A spec can be -
//
//	id      - the exact version id (e.g. postgres_10).
//	number  - the version with that numeric component (e.g. 9.6).
//	~N      - the Nth version back from the latest (~0 is the latest).
func Resolve(versions []corpus.Version, specs ...string) ([]string, error) {
	result := make([]string, 0, len(specs))

	for _, spec := range specs {
		v, err := resolveSpec(spec, versions)
		if err != nil {
			return nil, err
		}
		result = append(result, v.ID)
	}

	return result, nil
}

func resolveSpec(spec string, versions []corpus.Version) (corpus.Version, error) {
	switch {
	case strings.HasPrefix(spec, "~"):
		return resolveRelativeSpec(spec, versions)

	case isNumeric(spec):
		return resolveNumericSpec(spec, versions)

	default:
		return resolveIDSpec(spec, versions)
	}
}

// resolveRelativeSpec handles ~N format specs, counting back from the latest.
func resolveRelativeSpec(spec string, versions []corpus.Version) (corpus.Version, error) {
	back, err := strconv.Atoi(spec[1:])
	if err != nil {
		return corpus.Version{}, fmt.Errorf("invalid relative spec: %s", spec)
	}

	index := len(versions) - 1 - back
	if back < 0 || index < 0 {
		return corpus.Version{}, fmt.Errorf("spec %s out of range for %d versions", spec, len(versions))
	}

	return versions[index], nil
}

// resolveNumericSpec finds the version whose numeric component matches.
func resolveNumericSpec(spec string, versions []corpus.Version) (corpus.Version, error) {
	n, _ := strconv.ParseFloat(spec, 64)

	for _, v := range versions {
		if v.Number == n {
			return v, nil
		}
	}

	return corpus.Version{}, fmt.Errorf("failed to find version with number %s", spec)
}

// resolveIDSpec finds the version with the exact id.
func resolveIDSpec(spec string, versions []corpus.Version) (corpus.Version, error) {
	for _, v := range versions {
		if v.ID == spec {
			return v, nil
		}
	}

	return corpus.Version{}, fmt.Errorf("failed to find version with id %s", spec)
}

// isNumeric checks if a string parses as a float.
func isNumeric(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

//go:build mage

package main

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/magefile/mage/sh"
	"github.com/pkg/errors"
)

const goMinorVersionMin = 18

func binaryWithExt(name string) string {
	if runtime.GOOS == "windows" {
		return fmt.Sprintf("%s.exe", name)
	}
	return name
}

func goRun(args ...string) error {
	return sh.RunV("go", args...)
}

// goCheck fails unless go1.18 or later is on $PATH.
func goCheck() error {
	out, err := sh.Output("go", "version")
	if err != nil {
		return errors.Errorf("error running go version: %v", err)
	}
	// e.g., "go version go1.19.3 linux/amd64"
	fields := strings.Fields(out)
	if len(fields) < 3 {
		return errors.Errorf("unexpected go version output: %s", out)
	}
	var major, minor int
	if _, err := fmt.Sscanf(strings.TrimPrefix(fields[2], "go"), "%d.%d", &major, &minor); err != nil {
		return errors.Errorf("error parsing go version %s: %v", fields[2], err)
	}
	if major < 1 || (major == 1 && minor < goMinorVersionMin) {
		return errors.Errorf("found go version %s but need go1.%d or later", fields[2], goMinorVersionMin)
	}
	return nil
}

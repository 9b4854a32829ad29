//go:build mage

package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
	"github.com/pkg/errors"
)

const buildPackage = "github.com/G-Research/loadsweep/internal/loadsweep/build"

// Build compiles the loadsweep binary into ./bin, stamping it with the current version and commit.
func Build() error {
	mg.Deps(goCheck, makeLocalBin)
	commit, err := sh.Output("git", "rev-parse", "--short", "HEAD")
	if err != nil {
		commit = "unknown"
	}
	version := os.Getenv("LOADSWEEP_VERSION")
	if version == "" {
		version = "dev"
	}
	ldflags := strings.Join([]string{
		ldflag("ReleaseVersion", version),
		ldflag("GitCommit", commit),
		ldflag("GoVersion", runtime.Version()),
		ldflag("BuildTime", time.Now().UTC().Format(time.RFC3339)),
	}, " ")
	return goRun("build", "-ldflags", ldflags, "-o", binaryWithExt(LocalBin+"/loadsweep"), "./cmd/loadsweep")
}

// Check dependent tools are present.
func CheckDeps() error {
	checks := []struct {
		name  string
		check func() error
	}{
		{"go", goCheck},
	}
	failures := false
	for _, check := range checks {
		fmt.Printf("Checking %s... ", check.name)
		if err := check.check(); err != nil {
			fmt.Printf("FAILED\nReason: %v\n", err)
			failures = true
		} else {
			fmt.Println("PASSED")
		}
	}
	if failures {
		return errors.New("check(s) failed.")
	}
	return nil
}

// Clean removes build and test output.
func Clean() {
	fmt.Println("Cleaning...")
	for _, path := range []string{LocalBin, "test_reports"} {
		os.RemoveAll(path)
	}
}

func ldflag(name, value string) string {
	return fmt.Sprintf("-X %s.%s=%s", buildPackage, name, value)
}

//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main provides build targets for shelf using Mage.
//
// Usage:
//
//	mage build          Compile the shelf binary to bin/
//	mage test:all       Run every test; Postgres tests skip without a DSN
//	mage test:unit      Run tests in short mode
//	mage test:postgres  Run the Postgres backend tests (needs SHELF_TEST_POSTGRES_DSN)
//	mage test:cover     Write a coverage profile to bin/coverage.out
//	mage lint           Run golangci-lint
//	mage check          Lint, then run the short tests
//	mage clean          Remove build artifacts
//	mage install        Install shelf to GOPATH/bin
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binaryName  = "shelf"
	binaryDir   = "bin"
	cmdPkg      = "./cmd/shelf"
	postgresPkg = "./internal/postgres/..."

	envPostgresDSN = "SHELF_TEST_POSTGRES_DSN"
)

// gocmd runs the go tool with output streamed to the terminal.
func gocmd(args ...string) error {
	return sh.RunV(mg.GoCmd(), args...)
}

// inBin returns name under bin/, creating the directory if needed.
func inBin(name string) (string, error) {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(binaryDir, name), nil
}

// Build compiles the shelf binary to bin/.
func Build() error {
	out, err := inBin(binaryName)
	if err != nil {
		return err
	}
	return gocmd("build", "-trimpath", "-o", out, cmdPkg)
}

// Install builds shelf and copies it to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(mg.GoCmd(), "env", "GOPATH")
	if err != nil {
		return err
	}
	return sh.Copy(filepath.Join(gopath, "bin", binaryName), filepath.Join(binaryDir, binaryName))
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Check lints, then runs the short tests.
func Check() {
	mg.SerialDeps(Lint, Test.Unit)
}

// Clean removes build artifacts.
func Clean() error {
	if err := sh.Rm(binaryDir); err != nil {
		return err
	}
	return gocmd("clean", "-testcache")
}

// Test groups the test targets.
type Test mg.Namespace

// All runs every test.
func (Test) All() error {
	return gocmd("test", "./...")
}

// Unit runs tests in short mode.
func (Test) Unit() error {
	return gocmd("test", "-short", "./...")
}

// Postgres runs the Postgres backend tests uncached against
// SHELF_TEST_POSTGRES_DSN.
func (Test) Postgres() error {
	if os.Getenv(envPostgresDSN) == "" {
		return fmt.Errorf("%s must point at a disposable database", envPostgresDSN)
	}
	return gocmd("test", "-v", "-count=1", postgresPkg)
}

// Cover writes a coverage profile to bin/coverage.out and prints the
// per-function summary.
func (Test) Cover() error {
	profile, err := inBin("coverage.out")
	if err != nil {
		return err
	}
	if err := gocmd("test", "-coverprofile", profile, "./..."); err != nil {
		return err
	}
	return gocmd("tool", "cover", "-func", profile)
}

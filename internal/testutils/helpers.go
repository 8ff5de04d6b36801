package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/stretchr/testify/require"
)

// SetupTestRepo creates a temporary directory and initializes a Loam repository in it.
// It returns the absolute path to the temp dir and the initialized repository.
// It fails the test immediately on error.
func SetupTestRepo(t *testing.T, opts ...loam.Option) (string, core.Repository) {
	t.Helper()

	absPath, err := filepath.Abs(t.TempDir())
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	repo, err := loam.Init(absPath, opts...)
	require.NoError(t, err, "Failed to init loam repo")

	return absPath, repo
}

// WriteFiles writes each filename -> content pair under dir, creating parent directories.
func WriteFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644), "Failed to write %s", name)
	}
}

// CompletorDocs is a small documentation bundle used across tests.
var CompletorDocs = map[string]string{
	"description.md": `---
id: about/description
title: Introduction
description: Introduction to Completor
sidebar_position: 1
---
Completor is a script for modelling wells with Inflow Control Technology.

It reads a case file
and a schedule file.`,

	"general_preparations.md": `---
id: fmu/general_preparations
title: General Preparation to Completor in FMU
sidebar_position: 2
components:
  p: lead
body:
  - kind: header
    children:
      - kind: h1
        text: General Preparation
  - kind: h2
    text: Completor case file
  - kind: p
    text: The case file describes the completion.
  - kind: scope
    id: isolated
    isolate: true
    components:
      h2: plain-heading
    children:
      - kind: h2
        text: Tubing MSW input schedule file
      - kind: p
        text: Generated by the simulator.
---
`,

	"run_completor.md": `---
id: fmu/run_completor
title: Running Completor in FMU
sidebar_position: 3
transform: no-anchors
---
Run it from the forward model.`,
}

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun_VersionExitsZero(t *testing.T) {
	assert.Equal(t, 0, run([]string{"-V"}))
}

func TestRun_BenchmarksExitsZero(t *testing.T) {
	assert.Equal(t, 0, run([]string{"--benchmarks"}))
}

func TestRun_MissingBaudmodeExitsOne(t *testing.T) {
	assert.Equal(t, 1, run([]string{}))
}

func TestRun_ConflictingFramingExitsOne(t *testing.T) {
	assert.Equal(t, 1, run([]string{"-8", "-5", "1200"}))
}

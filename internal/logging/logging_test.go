package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func Test_ParseLevel(t *testing.T) {
	testCases := []struct {
		input  string
		expect log.Level
	}{
		{input: "debug", expect: log.DebugLevel},
		{input: " INFO ", expect: log.InfoLevel},
		{input: "warning", expect: log.WarnLevel},
		{input: "error", expect: log.ErrorLevel},
		{input: "fatal", expect: log.FatalLevel},
		{input: "", expect: log.WarnLevel},
		{input: "chatty", expect: log.WarnLevel},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert := assert.New(t)

			actual := ParseLevel(tc.input)

			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_Configure_File(t *testing.T) {
	assert := assert.New(t)
	file := filepath.Join(t.TempDir(), "gamecmd.log")

	closer, err := Configure("debug", file)
	if !assert.NoError(err) {
		return
	}
	NewComponent("pipeline").Debug("dropping command", "id", 500)
	assert.NoError(closer.Close())

	// put things back for other tests
	_, err = Configure("warn", "")
	assert.NoError(err)

	data, err := os.ReadFile(file)
	assert.NoError(err)
	assert.Contains(string(data), "pipeline")
	assert.Contains(string(data), "dropping command")
}

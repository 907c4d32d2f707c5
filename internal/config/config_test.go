package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ParseJournalConnString(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expect    Journal
		expectErr bool
	}{
		{name: "empty", input: "", expect: Journal{Type: JournalNone}},
		{name: "none", input: "none", expect: Journal{Type: JournalNone}},
		{name: "inmem", input: "inmem", expect: Journal{Type: JournalInMemory}},
		{name: "inmem ignores case", input: "InMem", expect: Journal{Type: JournalInMemory}},
		{name: "sqlite", input: "sqlite:/var/gamecmd", expect: Journal{Type: JournalSQLite, DataDir: "/var/gamecmd"}},
		{name: "sqlite path with colon", input: "sqlite:C:/data", expect: Journal{Type: JournalSQLite, DataDir: "C:/data"}},
		{name: "sqlite without path", input: "sqlite", expectErr: true},
		{name: "sqlite with blank path", input: "sqlite:  ", expectErr: true},
		{name: "inmem with params", input: "inmem:/data", expectErr: true},
		{name: "unknown engine", input: "postgres:localhost", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual, err := ParseJournalConnString(tc.input)

			if tc.expectErr {
				assert.Error(err)
				return
			}
			assert.NoError(err)
			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_Config_Validate(t *testing.T) {
	valid := func() Config {
		cfg := Default()
		cfg.LevelFile = "cave.toml"
		return cfg
	}

	testCases := []struct {
		name      string
		modify    func(cfg *Config)
		expectErr bool
	}{
		{name: "defaults with level", modify: func(cfg *Config) {}},
		{name: "smallest queue", modify: func(cfg *Config) { cfg.QueueSize = 2 }},
		{name: "queue too small", modify: func(cfg *Config) { cfg.QueueSize = 1 }, expectErr: true},
		{name: "no level", modify: func(cfg *Config) { cfg.LevelFile = "" }, expectErr: true},
		{name: "narrow output", modify: func(cfg *Config) { cfg.OutputWidth = 10 }, expectErr: true},
		{name: "debug logging", modify: func(cfg *Config) { cfg.LogLevel = "DEBUG" }},
		{name: "bad log level", modify: func(cfg *Config) { cfg.LogLevel = "loud" }, expectErr: true},
		{name: "sqlite journal", modify: func(cfg *Config) { cfg.Journal = "sqlite:data" }},
		{name: "bad journal", modify: func(cfg *Config) { cfg.Journal = "sqlite" }, expectErr: true},
		{name: "auto-repeat override", modify: func(cfg *Config) { cfg.AutoRepeat = map[string]int{"search": 5, "open": 0} }},
		{name: "negative auto-repeat", modify: func(cfg *Config) { cfg.AutoRepeat = map[string]int{"search": -1} }, expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			cfg := valid()
			tc.modify(&cfg)

			err := cfg.Validate()

			if tc.expectErr {
				assert.Error(err)
			} else {
				assert.NoError(err)
			}
		})
	}
}

func Test_Load(t *testing.T) {
	testCases := []struct {
		name      string
		file      string
		env       map[string]string
		expect    func() Config
		expectErr bool
	}{
		{
			name: "no file",
			expect: func() Config {
				return Default()
			},
		},
		{
			name: "file overrides defaults",
			file: `
queue_size = 8
level_file = "cave.toml"
easy_open = false
journal = "inmem"

[auto_repeat]
search = 3
`,
			expect: func() Config {
				cfg := Default()
				cfg.QueueSize = 8
				cfg.LevelFile = "cave.toml"
				cfg.EasyOpen = false
				cfg.Journal = "inmem"
				cfg.AutoRepeat = map[string]int{"search": 3}
				return cfg
			},
		},
		{
			name: "env overrides file",
			file: `
queue_size = 8
level_file = "cave.toml"
`,
			env: map[string]string{
				"GAMECMD_QUEUE_SIZE": "12",
				"GAMECMD_LOG_LEVEL":  "debug",
				"GAMECMD_EASY_OPEN":  "false",
			},
			expect: func() Config {
				cfg := Default()
				cfg.QueueSize = 12
				cfg.LevelFile = "cave.toml"
				cfg.LogLevel = "debug"
				cfg.EasyOpen = false
				return cfg
			},
		},
		{
			name:      "bad toml",
			file:      `queue_size = "lots"`,
			expectErr: true,
		},
		{
			name:      "bad env",
			env:       map[string]string{"GAMECMD_QUEUE_SIZE": "lots"},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			var path string
			if tc.file != "" {
				path = filepath.Join(t.TempDir(), "gamecmd.toml")
				if err := os.WriteFile(path, []byte(tc.file), 0600); err != nil {
					t.Fatalf("writing config: %v", err)
				}
			}

			actual, err := Load(path)

			if tc.expectErr {
				assert.Error(err)
				return
			}
			assert.NoError(err)
			assert.Equal(tc.expect(), actual)
		})
	}
}

func Test_Load_MissingFile(t *testing.T) {
	assert := assert.New(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))

	assert.Error(err)
}

func Test_Journal_Connect(t *testing.T) {
	assert := assert.New(t)

	repo, err := Journal{Type: JournalNone}.Connect()
	assert.NoError(err)
	assert.Nil(repo)

	repo, err = Journal{Type: JournalInMemory}.Connect()
	assert.NoError(err)
	assert.NotNil(repo)

	dir := filepath.Join(t.TempDir(), "journal")
	repo, err = Journal{Type: JournalSQLite, DataDir: dir}.Connect()
	if assert.NoError(err) {
		assert.NoError(repo.Close())
		assert.FileExists(filepath.Join(dir, "journal.db"))
	}
}

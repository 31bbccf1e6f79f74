package runner

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/projectdiscovery/gologger"
	fileutil "github.com/projectdiscovery/utils/file"
)

// Config pins the CLI's default CSV column names and output-line template,
// persisted at $HOME/.config/transducer/config.yaml the way
// internal/runner/config.go persists alterx's permutation config.
type Config struct {
	WordColumn    string `yaml:"word_column"`
	OutputColumn  string `yaml:"output_column"`
	ContentColumn string `yaml:"content_column"`
	Format        string `yaml:"format"`
}

// DefaultConfig is overwritten by init() if a saved config exists.
var DefaultConfig = Config{
	WordColumn:    "word",
	OutputColumn:  "output",
	ContentColumn: "content",
	Format:        "{{word}} -> {{output}}",
}

func getUserHomeDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}
	return homeDir
}

func defaultConfigPath() string {
	return filepath.Join(getUserHomeDir(), ".config/transducer/config.yaml")
}

func init() {
	cfgPath := defaultConfigPath()
	if fileutil.FileExists(cfgPath) {
		if bin, err := os.ReadFile(cfgPath); err == nil {
			var cfg Config
			if errx := yaml.Unmarshal(bin, &cfg); errx == nil {
				DefaultConfig = cfg
				return
			}
			gologger.Error().Msgf("transducer yaml configuration syntax error.\n %v\n.", yaml.FormatError(errx, true, true))
		}
	}
	if err := validateDir(filepath.Join(getUserHomeDir(), ".config/transducer")); err != nil {
		gologger.Error().Msgf("transducer config dir not found and failed to create got: %v", err)
		return
	}
	bin, err := yaml.Marshal(DefaultConfig)
	if err != nil {
		gologger.Error().Msgf("failed to marshal default config got: %v", err)
		return
	}
	if err := os.WriteFile(cfgPath, bin, 0600); err != nil {
		gologger.Error().Msgf("failed to save default config to %v got: %v", cfgPath, err)
	}
}

func validateDir(dirPath string) error {
	if fileutil.FolderExists(dirPath) {
		return nil
	}
	return fileutil.CreateFolder(dirPath)
}

package config

import (
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var (
	Version = "Dev"
	Build   = "Dev"
	Date    = "Dev"
)

const (
	ConfigFileName = ".PiCK-cli-config.json"
	EnvFileName    = ".pick.env"
	EnvPrefix      = "PICK"

	KeyServerURL  = "server_url"
	KeyProxyURL   = "proxy_url"
	KeyModulePath = "module_path"
	KeyConfigPath = "config_path"
	KeyLogLevel   = "log_level"
	KeyDebug      = "debug"
	KeyEnvFile    = "env_file"

	DefaultServerURL  = "http://pick-core.dsmhs.kr/dsm-pick"
	DefaultProxyURL   = "https://proxy.golang.org"
	DefaultModulePath = "github.com/DSM-PICK/pick-cli"
	DefaultLogLevel   = "warn"
)

// Settings holds everything the CLI needs to know before it talks to anyone.
type Settings struct {
	ServerURL  string
	ProxyURL   string
	ModulePath string
	ConfigPath string
	LogLevel   string
	Debug      bool
}

// NewViper returns a viper instance carrying the defaults and the PICK_ env
// binding. Flags are bound onto it by the caller.
func NewViper() (*viper.Viper, error) {
	home, err := homeDir()
	if err != nil {
		return nil, err
	}
	v := viper.New()
	v.SetTypeByDefaultValue(true)
	v.SetDefault(KeyServerURL, DefaultServerURL)
	v.SetDefault(KeyProxyURL, DefaultProxyURL)
	v.SetDefault(KeyModulePath, DefaultModulePath)
	v.SetDefault(KeyConfigPath, filepath.Join(home, ConfigFileName))
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyDebug, false)
	v.SetDefault(KeyEnvFile, filepath.Join(home, EnvFileName))
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	return v, nil
}

// LoadSettings loads the optional .env file and resolves the settings from v.
func LoadSettings(v *viper.Viper) (*Settings, error) {
	envFile := v.GetString(KeyEnvFile)
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return nil, errors.Wrapf(err, "loading %s", envFile)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "checking %s", envFile)
	}
	s := &Settings{
		ServerURL:  strings.TrimRight(v.GetString(KeyServerURL), "/"),
		ProxyURL:   strings.TrimRight(v.GetString(KeyProxyURL), "/"),
		ModulePath: v.GetString(KeyModulePath),
		ConfigPath: v.GetString(KeyConfigPath),
		LogLevel:   v.GetString(KeyLogLevel),
		Debug:      v.GetBool(KeyDebug),
	}
	if s.ServerURL == "" {
		return nil, errors.New("server url is empty")
	}
	return s, nil
}

// InitLogger configures the package-level logrus logger.
func InitLogger(s *Settings) {
	logLevel, err := log.ParseLevel(s.LogLevel)
	if err != nil {
		logLevel = log.WarnLevel
	}
	if s.Debug {
		logLevel = log.DebugLevel
	}
	log.SetLevel(logLevel)
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
}

func homeDir() (string, error) {
	usr, err := user.Current()
	if err == nil && usr.HomeDir != "" {
		return usr.HomeDir, nil
	}
	home, herr := os.UserHomeDir()
	if herr != nil {
		return "", errors.Wrap(herr, "error while getting current user location")
	}
	return home, nil
}

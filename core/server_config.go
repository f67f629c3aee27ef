/*
 * Copyright (C) 2026 Nuts community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 *
 */

package core

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/knadh/koanf/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

const defaultConfigFile = "authz.yaml"
const configFileFlag = "configfile"

const defaultPrefix = "AUTHZ_"
const defaultDelimiter = "."
const configValueListSeparator = ","

// ServerConfig has global server settings.
type ServerConfig struct {
	Verbosity    string           `koanf:"verbosity"`
	LoggerFormat string           `koanf:"loggerformat"`
	Strictmode   bool             `koanf:"strictmode"`
	Datadir      string           `koanf:"datadir"`
	URL          string           `koanf:"url"`
	HTTPClient   HTTPClientConfig `koanf:"httpclient"`
	configMap    *koanf.Koanf
}

// HTTPClientConfig contains settings for HTTP clients used to call remote services.
type HTTPClientConfig struct {
	// Timeout specifies the default timeout for outbound HTTP requests.
	Timeout time.Duration `koanf:"timeout"`
}

// NewServerConfig creates an initialized empty server config
func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		configMap: koanf.New(defaultDelimiter),
	}
}

// loadConfigMap populates the configMap with values from the config file, environment and pFlags
func (ngc *ServerConfig) loadConfigMap(flags *pflag.FlagSet) error {
	if err := loadDefaultsFromFlagset(ngc.configMap, flags); err != nil {
		return err
	}

	if err := loadFromFile(ngc.configMap, resolveConfigFilePath(flags)); err != nil {
		return err
	}

	if err := loadFromEnv(ngc.configMap); err != nil {
		return err
	}

	return loadFromFlagSet(ngc.configMap, flags)
}

// Load loads the server config  follows the load order of configfile, env vars and then commandline param
func (ngc *ServerConfig) Load(flags *pflag.FlagSet) (err error) {
	if err := ngc.loadConfigMap(flags); err != nil {
		return err
	}

	if err := ngc.configMap.UnmarshalWithConf("", ngc, koanf.UnmarshalConf{
		FlatPaths: false,
	}); err != nil {
		return err
	}

	lvl, err := logrus.ParseLevel(ngc.Verbosity)
	if err != nil {
		return err
	}
	logrus.SetLevel(lvl)

	switch ngc.LoggerFormat {
	case "text":
		logrus.SetFormatter(&logrus.TextFormatter{})
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("invalid formatter: '%s'", ngc.LoggerFormat)
	}

	return nil
}

// ServerURL returns the parsed public URL of this server.
// In strict mode the URL must use https and may not point to a reserved address.
func (ngc ServerConfig) ServerURL() (*url.URL, error) {
	if ngc.URL == "" {
		return nil, errors.New("'url' must be configured")
	}
	var result *url.URL
	var err error
	if ngc.Strictmode {
		result, err = ParsePublicURL(ngc.URL)
		if err == nil && result.Scheme != "https" {
			err = errors.New("scheme must be https")
		}
	} else {
		result, err = url.Parse(ngc.URL)
		if err == nil && (result.Scheme == "" || result.Host == "") {
			err = errors.New("URL must be absolute")
		}
	}
	if err != nil {
		return nil, fmt.Errorf("invalid 'url': %w", err)
	}
	return result, nil
}

// resolveConfigFilePath resolves the path of the config file using the following sources:
// 1. commandline params (using the given flags)
// 2. environment vars,
// 3. default location.
func resolveConfigFilePath(flags *pflag.FlagSet) string {
	k := koanf.New(defaultDelimiter)
	_ = loadFromEnv(k)
	// this also loads the default flag value of authz.yaml
	_ = loadFromFlagSet(k, flags)
	return k.String(configFileFlag)
}

// FlagSet returns the default server flags
func FlagSet() *pflag.FlagSet {
	flagSet := pflag.NewFlagSet("server", pflag.ContinueOnError)
	flagSet.String(configFileFlag, defaultConfigFile, "Server config file")
	flagSet.String("verbosity", "info", "Log level (trace, debug, info, warn, error)")
	flagSet.String("loggerformat", "text", "Log format (text, json)")
	flagSet.Bool("strictmode", true, "When set, insecure settings are forbidden.")
	flagSet.String("datadir", "./data", "Directory where the server stores its files.")
	flagSet.String("url", "", "Public facing URL of the server (required). Must be HTTPS when strictmode is set.")
	flagSet.Duration("httpclient.timeout", 30*time.Second, "Request time-out for HTTP clients, such as '10s'. Refer to Golang's 'time.Duration' syntax for a more elaborate description of the syntax.")
	return flagSet
}

// PrintConfig return the current config in string form
func (ngc *ServerConfig) PrintConfig() string {
	return ngc.configMap.Sprint()
}

// InjectIntoEngine takes the loaded config and sets the engine's config struct
func (ngc *ServerConfig) InjectIntoEngine(e Injectable) error {
	return unmarshalRecursive([]string{strings.ToLower(e.Name())}, e.Config(), ngc.configMap)
}

func elemType(ty reflect.Type) (reflect.Type, bool) {
	if ty.Kind() == reflect.Ptr {
		return ty.Elem(), true
	}
	return ty, false
}

func unmarshalRecursive(path []string, config interface{}, configMap *koanf.Koanf) error {
	decoderConfig := koanf.UnmarshalConf{
		FlatPaths: false,
	}
	if err := configMap.UnmarshalWithConf(strings.Join(path, defaultDelimiter), config, decoderConfig); err != nil {
		return err
	}

	configType, isPtr := elemType(reflect.TypeOf(config))

	// If `config` is a struct or a pointer to a struct we're iterating its fields to find structs
	if configType.Kind() == reflect.Struct {
		valueOfConfig := reflect.ValueOf(config)
		if isPtr {
			valueOfConfig = valueOfConfig.Elem()
		}

		for i := 0; i < configType.NumField(); i++ {
			field := configType.Field(i)
			fieldType, _ := elemType(field.Type)
			tagValue := field.Tag.Get("koanf")

			if fieldType.Kind() == reflect.Struct && tagValue != "" && field.IsExported() {
				fieldAddr := valueOfConfig.Field(i).Addr()
				if err := unmarshalRecursive(append(path, tagValue), fieldAddr.Interface(), configMap); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

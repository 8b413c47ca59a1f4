/*
Copyright © 2020 Marvin

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package migrator

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"

	"github.com/wentaojin/docmigrate/logger"
	"github.com/wentaojin/docmigrate/utils/configutil"
	"github.com/wentaojin/docmigrate/utils/stringutil"
)

// Config is the configuration for docmigrate
type Config struct {
	ConfigFile     string                     `toml:"config-file" json:"config-file"`
	MySQLConfig    *configutil.MySQLOptions   `toml:"mysql" json:"mysql"`
	MongoDBConfig  *configutil.MongoOptions   `toml:"mongodb" json:"mongodb"`
	MigrateConfig  *configutil.MigrateOptions `toml:"app" json:"app"`
	LogConfig      *logger.Config             `toml:"log" json:"log"`
	undecodedItems []string
}

func NewConfig() *Config {
	return &Config{
		MySQLConfig:   configutil.DefaultMySQLConfig(),
		MongoDBConfig: configutil.DefaultMongoConfig(),
		MigrateConfig: configutil.DefaultMigrateConfig(),
		LogConfig:     logger.DefaultConfig(),
	}
}

// LoadFile decodes the toml file over the defaults
func (c *Config) LoadFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return fmt.Errorf("config decode from file [%s] failed: [%v]", path, err)
	}
	c.ConfigFile = path
	for _, k := range md.Undecoded() {
		c.undecodedItems = append(c.undecodedItems, k.String())
	}
	return nil
}

// UndecodedItems returns the keys of the config file no field was decoded from
func (c *Config) UndecodedItems() []string {
	return c.undecodedItems
}

func (c *Config) Validate() error {
	if err := c.MySQLConfig.Validate(); err != nil {
		return err
	}
	if err := c.MongoDBConfig.Validate(); err != nil {
		return err
	}
	return c.MigrateConfig.Validate()
}

// String renders the config as json with the passwords masked
func (c *Config) String() string {
	mysqlCfg := *c.MySQLConfig
	mysqlCfg.Password = stringutil.MaskSecret(mysqlCfg.Password)
	mongoCfg := *c.MongoDBConfig
	mongoCfg.Password = stringutil.MaskSecret(mongoCfg.Password)

	masked := *c
	masked.MySQLConfig = &mysqlCfg
	masked.MongoDBConfig = &mongoCfg

	cfg, err := stringutil.MarshalIndentJSON(masked)
	if err != nil {
		logger.Error("marshal to json", zap.String("config file", c.ConfigFile), zap.Error(err))
	}
	return cfg
}

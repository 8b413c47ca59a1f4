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
package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wentaojin/docmigrate/logger"
	"github.com/wentaojin/docmigrate/migrator"
)

// Cmder is implemented by every docmigrate command
type Cmder interface {
	Cmd() *cobra.Command
	RunE(*cobra.Command, []string) error
}

type App struct {
	ConfigFile string
	LogLevel   string
	LogFile    string

	Config *migrator.Config
}

func NewApp() *App {
	return &App{Config: migrator.NewConfig()}
}

func (a *App) Cmd() *cobra.Command {
	c := &cobra.Command{
		Use:               "docmigrate",
		Short:             "CLI docmigrate app for jd goods and comments migrate from mysql to mongodb",
		PersistentPreRunE: a.PersistentPreRunE,
		RunE:              a.RunE,
		SilenceUsage:      true,
	}
	c.PersistentFlags().StringVarP(&a.ConfigFile, "config", "c", "", "path to config file")
	c.PersistentFlags().StringVar(&a.LogLevel, "log-level", "", "log level, overrides the config file")
	c.PersistentFlags().StringVar(&a.LogFile, "log-file", "", "log file, overrides the config file")
	return c
}

func (a *App) RunE(cmd *cobra.Command, args []string) error {
	return cmd.Help()
}

// PersistentPreRunE loads the config file and installs the root logger before any subcommand runs
func (a *App) PersistentPreRunE(cmd *cobra.Command, args []string) error {
	if !strings.EqualFold(a.ConfigFile, "") {
		if err := a.Config.LoadFile(a.ConfigFile); err != nil {
			return err
		}
	}
	if !strings.EqualFold(a.LogLevel, "") {
		a.Config.LogConfig.LogLevel = a.LogLevel
	}
	if !strings.EqualFold(a.LogFile, "") {
		a.Config.LogConfig.LogFile = a.LogFile
	}

	logger.NewRootLogger(a.Config.LogConfig)
	if items := a.Config.UndecodedItems(); len(items) > 0 {
		logger.Warn("config file contains unknown items", zap.String("config", a.ConfigFile), zap.Strings("items", items))
	}
	return nil
}

// Root assembles the command tree
func (a *App) Root() *cobra.Command {
	root := a.Cmd()
	root.AddCommand(a.AppGoods().Cmd(), a.AppComment().Cmd(), a.AppConfig().Cmd())
	return root
}

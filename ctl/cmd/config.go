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
	"fmt"

	"github.com/spf13/cobra"
)

type AppConfig struct {
	*App
}

func (a *App) AppConfig() Cmder {
	return &AppConfig{App: a}
}

func (a *AppConfig) Cmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:              "config",
		Short:            "Print the effective config",
		Long:             `Print the effective config, passwords are masked`,
		Args:             cobra.NoArgs,
		RunE:             a.RunE,
		TraverseChildren: true,
		SilenceUsage:     true,
	}
	return cmd
}

func (a *AppConfig) RunE(cmd *cobra.Command, args []string) error {
	_, err := fmt.Fprintln(cmd.OutOrStdout(), a.Config.String())
	return err
}

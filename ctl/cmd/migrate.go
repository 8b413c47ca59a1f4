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

	"github.com/wentaojin/docmigrate/migrator"
	"github.com/wentaojin/docmigrate/utils/configutil"
	"github.com/wentaojin/docmigrate/utils/constant"
)

type AppMigrate struct {
	*App
	kind        string
	startCursor uint64
	pageSize    uint64
	collection  string
}

func (a *App) AppGoods() Cmder {
	return &AppMigrate{App: a, kind: constant.MigrateKindGoods}
}

func (a *App) AppComment() Cmder {
	return &AppMigrate{App: a, kind: constant.MigrateKindComment}
}

func (a *AppMigrate) Cmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:              a.kind,
		Short:            fmt.Sprintf("Migrate %s rows into mongodb documents", a.kind),
		Long:             fmt.Sprintf("Migrate %s rows page by page into mongodb documents, every document is inserted once without upsert", a.kind),
		Args:             cobra.NoArgs,
		RunE:             a.RunE,
		TraverseChildren: true,
		SilenceUsage:     true,
	}
	cmd.Flags().Uint64Var(&a.startCursor, "start-cursor", 0, "row offset of the first page, overrides the config file")
	cmd.Flags().Uint64Var(&a.pageSize, "page-size", constant.DefaultMigratePageSize, "rows per page, overrides the config file")
	cmd.Flags().StringVar(&a.collection, "collection", "", "target mongodb collection, overrides the config file")
	return cmd
}

func (a *AppMigrate) RunE(cmd *cobra.Command, args []string) error {
	var opts []configutil.MigrateOption
	if cmd.Flags().Changed("start-cursor") {
		opts = append(opts, configutil.WithStartCursor(a.startCursor))
	}
	if cmd.Flags().Changed("page-size") {
		opts = append(opts, configutil.WithPageSize(a.pageSize))
	}
	for _, opt := range opts {
		opt(a.Config.MigrateConfig)
	}
	if cmd.Flags().Changed("collection") {
		a.Config.MongoDBConfig.Collection = a.collection
	}

	srv := migrator.NewServer(a.Config)
	srv.SetWriter(cmd.OutOrStdout())
	if err := srv.Start(cmd.Context()); err != nil {
		return err
	}

	_, err := srv.Migrate(cmd.Context(), a.kind)
	if closeErr := srv.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}

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
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wentaojin/docmigrate/database"
	"github.com/wentaojin/docmigrate/database/mongodb"
	"github.com/wentaojin/docmigrate/database/mysql"
	"github.com/wentaojin/docmigrate/logger"
	"github.com/wentaojin/docmigrate/service"
	"github.com/wentaojin/docmigrate/utils/constant"
	"github.com/wentaojin/docmigrate/utils/stringutil"
)

type Server struct {
	*Config

	Extractor database.IDatabaseExtractor
	Loader    database.IDatabaseLoader

	writer io.Writer
}

// NewServer creates a new server
func NewServer(cfg *Config) *Server {
	return &Server{
		Config: cfg,
		writer: os.Stdout,
	}
}

// SetWriter redirects the console output of migrate runs
func (s *Server) SetWriter(w io.Writer) {
	s.writer = w
}

// Start validates the config and connects the source and the target
func (s *Server) Start(ctx context.Context) error {
	if err := s.Validate(); err != nil {
		return err
	}

	extractor, err := mysql.NewDatabase(ctx, s.MySQLConfig,
		logger.GetGormLogger(s.LogConfig.LogLevel, s.MySQLConfig.SlowThreshold))
	if err != nil {
		return fmt.Errorf("create mysql database [%s:%d/%s] failed: [%v]",
			s.MySQLConfig.Host, s.MySQLConfig.Port, s.MySQLConfig.Schema, err)
	}

	loader, err := mongodb.NewDatabase(ctx, s.MongoDBConfig)
	if err != nil {
		_ = extractor.Close()
		return fmt.Errorf("create mongodb database [%s:%d/%s] failed: [%v]",
			s.MongoDBConfig.Host, s.MongoDBConfig.Port, s.MongoDBConfig.Database, err)
	}

	s.Extractor = extractor
	s.Loader = loader
	logger.Info("migrate server started",
		zap.String("mysql", fmt.Sprintf("%s:%d/%s", s.MySQLConfig.Host, s.MySQLConfig.Port, s.MySQLConfig.Schema)),
		zap.String("mongodb", fmt.Sprintf("%s:%d/%s.%s", s.MongoDBConfig.Host, s.MongoDBConfig.Port, s.MongoDBConfig.Database, s.MongoDBConfig.Collection)))
	return nil
}

// Migrate runs one migrate pass of the given kind and renders its summary
func (s *Server) Migrate(ctx context.Context, kind string) (*service.Summary, error) {
	if !strings.EqualFold(kind, constant.MigrateKindGoods) && !strings.EqualFold(kind, constant.MigrateKindComment) {
		return nil, fmt.Errorf("migrate kind [%s] is not supported, please reselect [%s] or [%s]",
			kind, constant.MigrateKindGoods, constant.MigrateKindComment)
	}
	if s.Extractor == nil || s.Loader == nil {
		return nil, fmt.Errorf("migrate server is not started")
	}

	runID := uuid.New().String()
	fmt.Fprintf(s.writer, "%s %s\n", color.CyanString("Migrate %s", stringutil.StringLower(kind)),
		color.New(color.FgWhite).Sprintf("[run_id=%s, start_cursor=%d, page_size=%d, collection=%s]",
			runID, s.MigrateConfig.StartCursor, s.MigrateConfig.PageSize, s.MongoDBConfig.Collection))

	summary, err := service.Migrate(ctx, &service.MigrateTask{
		RunID:       runID,
		Kind:        stringutil.StringLower(kind),
		Collection:  s.MongoDBConfig.Collection,
		StartCursor: s.MigrateConfig.StartCursor,
		PageSize:    s.MigrateConfig.PageSize,
		Extractor:   s.Extractor,
		Loader:      s.Loader,
		Writer:      s.writer,
	})
	if summary != nil {
		summary.Render(s.writer)
	}
	if err != nil {
		fmt.Fprintf(s.writer, "%s\n", color.RedString("Migrate %s failed", kind))
		return summary, err
	}
	fmt.Fprintf(s.writer, "%s\n", color.GreenString("Migrate %s finished", kind))
	return summary, nil
}

// Close releases both connections
func (s *Server) Close() error {
	var errs []error
	if s.Extractor != nil {
		if err := s.Extractor.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close mysql database failed: [%v]", err))
		}
	}
	if s.Loader != nil {
		if err := s.Loader.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close mongodb database failed: [%v]", err))
		}
	}
	return errors.Join(errs...)
}

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
package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/wentaojin/docmigrate/database"
	"github.com/wentaojin/docmigrate/logger"
	"github.com/wentaojin/docmigrate/model/record"
	"github.com/wentaojin/docmigrate/utils/constant"
)

// LoopState is the whole state of a migrate run
type LoopState struct {
	Cursor   uint64
	PageSize uint64
	Total    uint64
}

// Done reports whether the cursor passed the total row count. The comparison is
// strict, a cursor equal to the total still reads one final page.
func (s LoopState) Done() bool {
	return s.Cursor > s.Total
}

// PageFunc reads up to size records starting at offset
type PageFunc[T any] func(ctx context.Context, offset, size uint64) ([]T, error)

// DocumentFunc assembles the target document of one record
type DocumentFunc[T any] func(T) bson.D

type Migration[T any] struct {
	Kind     string
	Fetch    PageFunc[T]
	Assemble DocumentFunc[T]
	Loader   database.IDatabaseLoader
}

func NewGoodsMigration(extractor database.IDatabaseExtractor, loader database.IDatabaseLoader) *Migration[record.Goods] {
	return &Migration[record.Goods]{
		Kind:     constant.MigrateKindGoods,
		Fetch:    extractor.GetGoodsByPage,
		Assemble: record.Goods.ToDocument,
		Loader:   loader,
	}
}

func NewCommentMigration(extractor database.IDatabaseExtractor, loader database.IDatabaseLoader) *Migration[record.Comment] {
	return &Migration[record.Comment]{
		Kind:     constant.MigrateKindComment,
		Fetch:    extractor.GetCommentsByPage,
		Assemble: record.Comment.ToDocument,
		Loader:   loader,
	}
}

// Step migrates the page at st.Cursor and returns the advanced state and the
// number of inserted documents. On error the returned state is st unchanged and
// the documents inserted before the failing one stay in the target.
func (m *Migration[T]) Step(ctx context.Context, st LoopState) (LoopState, uint64, error) {
	records, err := m.Fetch(ctx, st.Cursor, st.PageSize)
	if err != nil {
		return st, 0, fmt.Errorf("migrate [%s] fetch page [cursor=%d, size=%d] failed: %w", m.Kind, st.Cursor, st.PageSize, err)
	}

	var inserted uint64
	for _, r := range records {
		if err = m.Loader.InsertDocument(ctx, m.Assemble(r)); err != nil {
			return st, inserted, fmt.Errorf("migrate [%s] page [cursor=%d] record [%d] failed: %w", m.Kind, st.Cursor, inserted, err)
		}
		inserted++
	}

	st.Cursor += st.PageSize
	return st, inserted, nil
}

// Run steps page by page in increasing offset order until the state is done
func (m *Migration[T]) Run(ctx context.Context, st LoopState, progress *Progress) (LoopState, error) {
	for !st.Done() {
		next, inserted, err := m.Step(ctx, st)
		progress.UpdatePage(st.Cursor, inserted)
		if err != nil {
			return st, err
		}
		st = next
	}
	return st, nil
}

type MigrateTask struct {
	RunID       string
	Kind        string
	Collection  string
	StartCursor uint64
	PageSize    uint64
	Extractor   database.IDatabaseExtractor
	Loader      database.IDatabaseLoader
	Writer      io.Writer
}

// Migrate counts the source rows once and runs the loop from the task start cursor.
// The summary is returned on failure as well, its final cursor is the page that failed.
func Migrate(ctx context.Context, task *MigrateTask, opts ...Options) (*Summary, error) {
	if task.PageSize == 0 {
		return nil, fmt.Errorf("migrate [%s] page size must be greater than zero", task.Kind)
	}

	progress := NewProgresser(task.Kind, append([]Options{WithRunID(task.RunID), WithWriter(task.Writer)}, opts...)...)
	summary := &Summary{
		RunID:       task.RunID,
		Kind:        task.Kind,
		Collection:  task.Collection,
		StartCursor: task.StartCursor,
		FinalCursor: task.StartCursor,
		PageSize:    task.PageSize,
	}

	logger.Info("migrate task starting",
		zap.String("run_id", task.RunID),
		zap.String("kind", task.Kind),
		zap.String("collection", task.Collection),
		zap.Uint64("start_cursor", task.StartCursor),
		zap.Uint64("page_size", task.PageSize))

	total, err := task.Extractor.CountRows(ctx, task.Kind)
	if err != nil {
		return summary, err
	}
	summary.Total = total
	progress.Start(total)

	st := LoopState{Cursor: task.StartCursor, PageSize: task.PageSize, Total: total}
	switch {
	case strings.EqualFold(task.Kind, constant.MigrateKindGoods):
		st, err = NewGoodsMigration(task.Extractor, task.Loader).Run(ctx, st, progress)
	case strings.EqualFold(task.Kind, constant.MigrateKindComment):
		st, err = NewCommentMigration(task.Extractor, task.Loader).Run(ctx, st, progress)
	default:
		err = fmt.Errorf("migrate kind [%s] is not supported, please reselect [%s] or [%s]",
			task.Kind, constant.MigrateKindGoods, constant.MigrateKindComment)
	}

	summary.FinalCursor = st.Cursor
	summary.Pages = progress.PagesProcessed
	summary.Documents = progress.RowsProcessed
	if elapsed, elapsedErr := progress.Elapsed(); elapsedErr == nil {
		summary.Elapsed = elapsed
	}
	if err != nil {
		summary.Err = err
		logger.Error("migrate task failed",
			zap.String("run_id", task.RunID),
			zap.String("kind", task.Kind),
			zap.Uint64("cursor", st.Cursor),
			zap.Uint64("documents", summary.Documents),
			zap.Error(err))
		return summary, err
	}

	logger.Info("migrate task finished",
		zap.String("run_id", task.RunID),
		zap.String("kind", task.Kind),
		zap.Uint64("final_cursor", st.Cursor),
		zap.Uint64("pages", summary.Pages),
		zap.Uint64("documents", summary.Documents),
		zap.Duration("elapsed", summary.Elapsed))
	return summary, nil
}

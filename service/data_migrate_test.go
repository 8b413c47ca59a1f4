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
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wentaojin/docmigrate/database/mongodb"
	"github.com/wentaojin/docmigrate/model/record"
	"github.com/wentaojin/docmigrate/utils/constant"
)

type fakeExtractor struct {
	goods    []record.Goods
	comments []record.Comment

	countErr error
	pageErr  error
	offsets  []uint64
}

func (f *fakeExtractor) CountRows(_ context.Context, kind string) (uint64, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	switch kind {
	case constant.MigrateKindGoods:
		return uint64(len(f.goods)), nil
	case constant.MigrateKindComment:
		return uint64(len(f.comments)), nil
	}
	return 0, fmt.Errorf("unknown kind [%s]", kind)
}

func window[T any](all []T, offset, size uint64) []T {
	if offset >= uint64(len(all)) {
		return nil
	}
	end := offset + size
	if end > uint64(len(all)) {
		end = uint64(len(all))
	}
	return append([]T(nil), all[offset:end]...)
}

func (f *fakeExtractor) GetGoodsByPage(_ context.Context, offset, size uint64) ([]record.Goods, error) {
	f.offsets = append(f.offsets, offset)
	if f.pageErr != nil {
		return nil, f.pageErr
	}
	return window(f.goods, offset, size), nil
}

func (f *fakeExtractor) GetCommentsByPage(_ context.Context, offset, size uint64) ([]record.Comment, error) {
	f.offsets = append(f.offsets, offset)
	if f.pageErr != nil {
		return nil, f.pageErr
	}
	return window(f.comments, offset, size), nil
}

func (f *fakeExtractor) GetCommentsByGoods(_ context.Context, goodsID string) ([]record.Comment, error) {
	var res []record.Comment
	for _, c := range f.comments {
		if c.Product.ID == goodsID {
			res = append(res, c)
		}
	}
	return res, nil
}

func (f *fakeExtractor) Close() error { return nil }

// memLoader behaves like a collection with a unique _id index
type memLoader struct {
	docs   []bson.D
	ids    map[interface{}]struct{}
	failAt int
}

func newMemLoader() *memLoader {
	return &memLoader{ids: make(map[interface{}]struct{}), failAt: -1}
}

func (m *memLoader) InsertDocument(_ context.Context, doc bson.D) error {
	if m.failAt == len(m.docs) {
		return fmt.Errorf("insert document failed: network is unreachable")
	}
	id := doc.Map()[constant.DocumentFieldID]
	if _, ok := m.ids[id]; ok {
		return fmt.Errorf("insert document [_id=%v] failed: %w", id, mongodb.ErrDuplicateDocument)
	}
	m.ids[id] = struct{}{}
	m.docs = append(m.docs, doc)
	return nil
}

func (m *memLoader) Close() error { return nil }

func comments(n int) []record.Comment {
	var res []record.Comment
	for i := 1; i <= n; i++ {
		res = append(res, record.Comment{
			User:    record.User{ID: fmt.Sprintf("u%d", i), Name: fmt.Sprintf("jd_u%d", i)},
			Product: record.Product{ID: "g1", Name: "phone"},
			Content: fmt.Sprintf("comment %d", i),
			Score:   5,
		})
	}
	return res
}

func fixedClock() func() time.Time {
	t0 := time.Date(2019, 6, 18, 0, 0, 0, 0, time.UTC)
	return func() time.Time { return t0 }
}

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	t.Cleanup(restore)
	return logs
}

func newTask(kind string, ext *fakeExtractor, loader *memLoader, out *bytes.Buffer) *MigrateTask {
	return &MigrateTask{
		RunID:      "run-1",
		Kind:       kind,
		Collection: kind,
		PageSize:   2,
		Extractor:  ext,
		Loader:     loader,
		Writer:     out,
	}
}

func TestLoopStateDone(t *testing.T) {
	assert.False(t, LoopState{Cursor: 0, Total: 0}.Done())
	assert.False(t, LoopState{Cursor: 4, Total: 5}.Done())
	assert.False(t, LoopState{Cursor: 5, Total: 5}.Done())
	assert.True(t, LoopState{Cursor: 6, Total: 5}.Done())
	assert.True(t, LoopState{Cursor: 1, Total: 0}.Done())
}

func TestStepAdvancesCursor(t *testing.T) {
	ext := &fakeExtractor{comments: comments(5)}
	loader := newMemLoader()
	m := NewCommentMigration(ext, loader)

	st := LoopState{Cursor: 4, PageSize: 2, Total: 5}
	next, inserted, err := m.Step(context.Background(), st)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), inserted)
	assert.Equal(t, LoopState{Cursor: 6, PageSize: 2, Total: 5}, next)
	assert.True(t, next.Done())
	// the input state is a value
	assert.Equal(t, uint64(4), st.Cursor)
}

func TestMigrateCommentsPages(t *testing.T) {
	observeLogs(t)
	ext := &fakeExtractor{comments: comments(5)}
	loader := newMemLoader()
	var out bytes.Buffer

	summary, err := Migrate(context.Background(), newTask(constant.MigrateKindComment, ext, loader, &out), WithClock(fixedClock()))
	require.NoError(t, err)

	assert.Equal(t, []uint64{0, 2, 4}, ext.offsets)
	assert.Equal(t, uint64(5), summary.Total)
	assert.Equal(t, uint64(6), summary.FinalCursor)
	assert.Equal(t, uint64(3), summary.Pages)
	assert.Equal(t, uint64(5), summary.Documents)
	assert.NoError(t, summary.Err)

	require.Len(t, loader.docs, 5)
	for i, doc := range loader.docs {
		assert.Equal(t, fmt.Sprintf("u%d", i+1), doc.Map()[constant.DocumentFieldID])
	}
}

func TestMigrateProgressOutput(t *testing.T) {
	observeLogs(t)
	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	ext := &fakeExtractor{comments: comments(5)}
	var out bytes.Buffer
	_, err := Migrate(context.Background(), newTask(constant.MigrateKindComment, ext, newMemLoader(), &out), WithClock(fixedClock()))
	require.NoError(t, err)

	assert.Equal(t, strings.Join([]string{
		"There are 5 comment in total.",
		"Process 2 comment.", "0",
		"Process 2 comment.", "0",
		"Process 1 comment.", "0",
	}, "\n")+"\n", out.String())
}

func TestMigrateEmptySource(t *testing.T) {
	observeLogs(t)
	ext := &fakeExtractor{}
	loader := newMemLoader()
	var out bytes.Buffer

	summary, err := Migrate(context.Background(), newTask(constant.MigrateKindComment, ext, loader, &out), WithClock(fixedClock()))
	require.NoError(t, err)

	// cursor 0 is not past a total of 0, one empty page is read
	assert.Equal(t, []uint64{0}, ext.offsets)
	assert.Equal(t, uint64(1), summary.Pages)
	assert.Equal(t, uint64(0), summary.Documents)
	assert.Equal(t, uint64(2), summary.FinalCursor)
	assert.Empty(t, loader.docs)
}

func TestMigrateCursorEqualTotal(t *testing.T) {
	observeLogs(t)
	ext := &fakeExtractor{comments: comments(4)}
	loader := newMemLoader()
	var out bytes.Buffer

	summary, err := Migrate(context.Background(), newTask(constant.MigrateKindComment, ext, loader, &out), WithClock(fixedClock()))
	require.NoError(t, err)

	assert.Equal(t, []uint64{0, 2, 4}, ext.offsets)
	assert.Equal(t, uint64(3), summary.Pages)
	assert.Equal(t, uint64(4), summary.Documents)
	assert.Equal(t, uint64(6), summary.FinalCursor)
}

func TestMigrateStartCursor(t *testing.T) {
	observeLogs(t)
	ext := &fakeExtractor{comments: comments(5)}
	loader := newMemLoader()
	var out bytes.Buffer

	task := newTask(constant.MigrateKindComment, ext, loader, &out)
	task.StartCursor = 3
	summary, err := Migrate(context.Background(), task, WithClock(fixedClock()))
	require.NoError(t, err)
	assert.Equal(t, []uint64{3, 5}, ext.offsets)
	assert.Equal(t, uint64(2), summary.Documents)
	assert.Equal(t, uint64(7), summary.FinalCursor)

	// a start cursor past the total reads nothing
	ext.offsets = nil
	task.StartCursor = 9
	summary, err = Migrate(context.Background(), task, WithClock(fixedClock()))
	require.NoError(t, err)
	assert.Empty(t, ext.offsets)
	assert.Equal(t, uint64(0), summary.Pages)
	assert.Equal(t, uint64(9), summary.FinalCursor)
}

func TestMigrateSecondRunCollides(t *testing.T) {
	observeLogs(t)
	ext := &fakeExtractor{comments: comments(5)}
	loader := newMemLoader()
	var out bytes.Buffer

	_, err := Migrate(context.Background(), newTask(constant.MigrateKindComment, ext, loader, &out), WithClock(fixedClock()))
	require.NoError(t, err)

	summary, err := Migrate(context.Background(), newTask(constant.MigrateKindComment, ext, loader, &out), WithClock(fixedClock()))
	require.Error(t, err)
	assert.True(t, errors.Is(err, mongodb.ErrDuplicateDocument))
	assert.Equal(t, uint64(0), summary.FinalCursor)
	assert.Equal(t, uint64(0), summary.Documents)
	assert.Equal(t, "FAILED", summary.Status())
	assert.Len(t, loader.docs, 5)
}

func TestMigrateSameUserCommentsCollide(t *testing.T) {
	observeLogs(t)
	cs := comments(3)
	// two comments written by one user share the document identity
	cs[2].User = cs[0].User
	ext := &fakeExtractor{comments: cs}
	loader := newMemLoader()
	var out bytes.Buffer

	summary, err := Migrate(context.Background(), newTask(constant.MigrateKindComment, ext, loader, &out), WithClock(fixedClock()))
	require.Error(t, err)
	assert.True(t, errors.Is(err, mongodb.ErrDuplicateDocument))
	assert.Equal(t, uint64(2), summary.FinalCursor)
	assert.Equal(t, uint64(2), summary.Documents)
	assert.Len(t, loader.docs, 2)
}

func TestMigratePartialPage(t *testing.T) {
	logs := observeLogs(t)
	ext := &fakeExtractor{comments: comments(5)}
	loader := newMemLoader()
	loader.failAt = 3
	var out bytes.Buffer

	summary, err := Migrate(context.Background(), newTask(constant.MigrateKindComment, ext, loader, &out), WithClock(fixedClock()))
	require.Error(t, err)
	assert.False(t, errors.Is(err, mongodb.ErrDuplicateDocument))

	// the document before the failing one in the same page stays inserted
	assert.Len(t, loader.docs, 3)
	assert.Equal(t, uint64(2), summary.FinalCursor)
	assert.Equal(t, uint64(3), summary.Documents)
	assert.Equal(t, uint64(2), summary.Pages)
	assert.Equal(t, 1, logs.FilterMessage("migrate task failed").Len())
}

func TestMigrateFetchFailed(t *testing.T) {
	observeLogs(t)
	ext := &fakeExtractor{comments: comments(5), pageErr: fmt.Errorf("lost connection")}
	var out bytes.Buffer

	summary, err := Migrate(context.Background(), newTask(constant.MigrateKindComment, ext, newMemLoader(), &out), WithClock(fixedClock()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lost connection")
	assert.Equal(t, uint64(0), summary.Documents)
}

func TestMigrateCountFailed(t *testing.T) {
	observeLogs(t)
	ext := &fakeExtractor{countErr: fmt.Errorf("access denied")}
	var out bytes.Buffer

	summary, err := Migrate(context.Background(), newTask(constant.MigrateKindGoods, ext, newMemLoader(), &out), WithClock(fixedClock()))
	require.Error(t, err)
	assert.Empty(t, ext.offsets)
	assert.Empty(t, out.String())
	assert.Equal(t, uint64(0), summary.Pages)
}

func TestMigrateInvalidTask(t *testing.T) {
	observeLogs(t)
	var out bytes.Buffer

	task := newTask(constant.MigrateKindComment, &fakeExtractor{}, newMemLoader(), &out)
	task.PageSize = 0
	_, err := Migrate(context.Background(), task)
	require.Error(t, err)

	task = newTask("orders", &fakeExtractor{}, newMemLoader(), &out)
	_, err = Migrate(context.Background(), task, WithClock(fixedClock()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "orders")
}

func TestMigrateGoodsNestsComments(t *testing.T) {
	observeLogs(t)
	cs := comments(2)
	ext := &fakeExtractor{
		goods: []record.Goods{
			{ID: "g1", Name: "phone", Comments: cs},
			{ID: "g2", Name: "case"},
			{ID: "g3", Name: "charger"},
		},
	}
	loader := newMemLoader()
	var out bytes.Buffer

	summary, err := Migrate(context.Background(), newTask(constant.MigrateKindGoods, ext, loader, &out), WithClock(fixedClock()))
	require.NoError(t, err)
	assert.Equal(t, []uint64{0, 2}, ext.offsets)
	assert.Equal(t, uint64(3), summary.Documents)
	assert.Equal(t, uint64(4), summary.FinalCursor)

	require.Len(t, loader.docs, 3)
	first := loader.docs[0].Map()
	assert.Equal(t, "g1", first[constant.DocumentFieldID])
	nested, ok := first["comments"].(bson.A)
	require.True(t, ok)
	require.Len(t, nested, 2)
	assert.Equal(t, "u1", nested[0].(bson.D).Map()[constant.DocumentFieldID])
	assert.Equal(t, "u2", nested[1].(bson.D).Map()[constant.DocumentFieldID])
}

func TestMigrateClockBackwards(t *testing.T) {
	logs := observeLogs(t)
	t0 := time.Date(2019, 6, 18, 0, 0, 0, 0, time.UTC)
	calls := 0
	clock := func() time.Time {
		calls++
		if calls == 1 {
			return t0
		}
		return t0.Add(-time.Minute)
	}
	ext := &fakeExtractor{comments: comments(3)}
	loader := newMemLoader()
	var out bytes.Buffer

	summary, err := Migrate(context.Background(), newTask(constant.MigrateKindComment, ext, loader, &out), WithClock(clock))
	require.NoError(t, err)
	assert.Len(t, loader.docs, 3)
	assert.Equal(t, uint64(4), summary.FinalCursor)
	assert.Equal(t, time.Duration(0), summary.Elapsed)
	assert.Equal(t, 2, logs.FilterMessage("migrate elapsed time unavailable").Len())
	assert.Contains(t, out.String(), "Error: ")
}

func TestSummaryRender(t *testing.T) {
	var out bytes.Buffer
	s := &Summary{RunID: "run-1", Kind: "comment", Collection: "comments", Total: 5, FinalCursor: 6, PageSize: 2, Pages: 3, Documents: 5}
	s.Render(&out)
	assert.Contains(t, out.String(), "run-1")
	assert.Contains(t, out.String(), "SUCCESS")

	out.Reset()
	s.Err = mongodb.ErrDuplicateDocument
	s.Render(&out)
	assert.Contains(t, out.String(), "FAILED")
	assert.Contains(t, out.String(), "duplicate document identity")
}

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
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/wentaojin/docmigrate/logger"
)

// Progress prints a console line after every page and keeps the run counters.
// The migrate loop is single threaded, counters are plain fields.
type Progress struct {
	RunID string
	Kind  string
	Total uint64

	PagesProcessed uint64
	RowsProcessed  uint64

	StartedTime time.Time

	writer io.Writer
	clock  func() time.Time
}

type Options func(opts *Progress)

func NewProgresser(kind string, opts ...Options) *Progress {
	p := &Progress{
		Kind:   kind,
		writer: os.Stdout,
		clock:  time.Now,
	}
	p.Init(opts...)
	return p
}

func (p *Progress) Init(opts ...Options) {
	for _, opt := range opts {
		opt(p)
	}
}

func WithRunID(str string) Options {
	return func(opts *Progress) {
		opts.RunID = str
	}
}

func WithWriter(w io.Writer) Options {
	return func(opts *Progress) {
		opts.writer = w
	}
}

// WithClock replaces the wall clock used for elapsed time
func WithClock(clock func() time.Time) Options {
	return func(opts *Progress) {
		opts.clock = clock
	}
}

// Start records the total row count and the start time
func (p *Progress) Start(total uint64) {
	p.Total = total
	p.StartedTime = p.wallClock()

	fmt.Fprintf(p.writer, "There are %s %s in total.\n", color.CyanString("%d", total), p.Kind)
	logger.Info("migrate rows counted",
		zap.String("run_id", p.RunID),
		zap.String("kind", p.Kind),
		zap.Uint64("total", total))
}

// UpdatePage records one finished (or failed) page that started at cursor
func (p *Progress) UpdatePage(cursor, rows uint64) {
	p.PagesProcessed++
	p.RowsProcessed += rows

	fmt.Fprintf(p.writer, "Process %s %s.\n", color.GreenString("%d", rows), p.Kind)

	fields := []zap.Field{
		zap.String("run_id", p.RunID),
		zap.String("kind", p.Kind),
		zap.Uint64("cursor", cursor),
		zap.Uint64("page_rows", rows),
		zap.Uint64("rows_processed", p.RowsProcessed),
		zap.Uint64("total", p.Total),
	}

	elapsed, err := p.Elapsed()
	if err != nil {
		fmt.Fprintf(p.writer, "Error: %s\n", color.RedString("%v", err))
		logger.Warn("migrate elapsed time unavailable", append(fields, zap.Error(err))...)
		return
	}
	fmt.Fprintf(p.writer, "%d\n", int64(elapsed.Seconds()))
	logger.Info("migrate page processed", append(fields, zap.Duration("elapsed", elapsed))...)
}

// Elapsed returns the wall time since Start, it fails when the clock went backwards
func (p *Progress) Elapsed() (time.Duration, error) {
	now := p.wallClock()
	if now.Before(p.StartedTime) {
		return 0, fmt.Errorf("system clock moved backwards, started [%s] now [%s]",
			p.StartedTime.Format(logger.LogTimeFmt), now.Format(logger.LogTimeFmt))
	}
	return now.Sub(p.StartedTime), nil
}

// wallClock drops the monotonic reading so elapsed time follows the system clock
func (p *Progress) wallClock() time.Time {
	return p.clock().Round(0)
}

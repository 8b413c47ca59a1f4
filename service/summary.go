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
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Summary is the outcome of one migrate run
type Summary struct {
	RunID       string
	Kind        string
	Collection  string
	Total       uint64
	StartCursor uint64
	FinalCursor uint64
	PageSize    uint64
	Pages       uint64
	Documents   uint64
	Elapsed     time.Duration
	Err         error
}

func (s *Summary) Status() string {
	if s.Err != nil {
		return "FAILED"
	}
	return "SUCCESS"
}

// Render writes the summary as a console table
func (s *Summary) Render(w io.Writer) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"RUN_ID", "KIND", "COLLECTION", "TOTAL", "START_CURSOR", "FINAL_CURSOR", "PAGE_SIZE", "PAGES", "DOCUMENTS", "ELAPSED", "STATUS"})
	tw.AppendRow(table.Row{
		s.RunID,
		s.Kind,
		s.Collection,
		s.Total,
		s.StartCursor,
		s.FinalCursor,
		s.PageSize,
		s.Pages,
		s.Documents,
		s.Elapsed.Round(time.Millisecond).String(),
		s.Status(),
	})
	if s.Err != nil {
		tw.AppendFooter(table.Row{"ERROR", fmt.Sprintf("%v", s.Err)})
	}
	tw.Render()
}

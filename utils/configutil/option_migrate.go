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
package configutil

import (
	"fmt"

	"github.com/wentaojin/docmigrate/utils/constant"
)

// MigrateOptions migrate loop config items
type MigrateOptions struct {
	PageSize uint64 `toml:"page-size" json:"page-size"`
	// StartCursor is the row offset the first page is read from, a resumed run sets it to where the previous run stopped
	StartCursor uint64 `toml:"start-cursor" json:"start-cursor"`
}

type MigrateOption func(opts *MigrateOptions)

func DefaultMigrateConfig() *MigrateOptions {
	return &MigrateOptions{
		PageSize: constant.DefaultMigratePageSize,
	}
}

func NewMigrateOptions(opts ...MigrateOption) *MigrateOptions {
	o := DefaultMigrateConfig()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func WithPageSize(size uint64) MigrateOption {
	return func(opts *MigrateOptions) {
		opts.PageSize = size
	}
}

func WithStartCursor(cursor uint64) MigrateOption {
	return func(opts *MigrateOptions) {
		opts.StartCursor = cursor
	}
}

func (o *MigrateOptions) Validate() error {
	if o.PageSize == 0 {
		return fmt.Errorf("migrate config [page-size] must be greater than zero")
	}
	return nil
}

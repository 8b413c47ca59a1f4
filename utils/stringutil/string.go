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
package stringutil

import (
	"encoding/json"
	"strconv"
	"strings"
	"unsafe"

	"github.com/wentaojin/docmigrate/utils/constant"
)

// StringBuilder used for string builder, and returns string
func StringBuilder(str ...string) string {
	var b strings.Builder
	for _, p := range str {
		b.WriteString(p)
	}
	return b.String() // no copying
}

// StringLower used for string lower, and returns lower string
func StringLower(str string) string {
	return strings.ToLower(str)
}

// QuoteIdentifier wraps a mysql identifier in backticks
func QuoteIdentifier(name string) string {
	return StringBuilder(constant.StringSeparatorBacktick,
		strings.ReplaceAll(name, constant.StringSeparatorBacktick, constant.StringSeparatorBacktick+constant.StringSeparatorBacktick),
		constant.StringSeparatorBacktick)
}

func StrconvUintBitSize(s string, bitSize int) (uint64, error) {
	i, err := strconv.ParseUint(s, 10, bitSize)
	if err != nil {
		return i, err
	}
	return i, nil
}

func StrconvFloatBitSize(s string, bitSize int) (float64, error) {
	i, err := strconv.ParseFloat(s, bitSize)
	if err != nil {
		return i, err
	}
	return i, nil
}

// MaskSecret hides a non-empty secret for display
func MaskSecret(s string) string {
	if s == "" {
		return s
	}
	return constant.StringMaskedSecret
}

// BytesToString used for bytes to string, reduce memory
// https://segmentfault.com/a/1190000037679588
func BytesToString(b []byte) string {
	return *(*string)(unsafe.Pointer(&b))
}

// MarshalIndentJSON returns marshal indent object json
func MarshalIndentJSON(v any) (string, error) {
	jsonStr, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return "", err
	}
	return BytesToString(jsonStr), nil
}

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
	"net"
	"net/url"
	"strconv"
	"strings"

	mysqldriver "github.com/go-sql-driver/mysql"

	"github.com/wentaojin/docmigrate/utils/constant"
)

// MySQLOptions relational source config items
type MySQLOptions struct {
	Host          string `toml:"host" json:"host"`
	Port          uint64 `toml:"port" json:"port"`
	Username      string `toml:"username" json:"username"`
	Password      string `toml:"password" json:"password"`
	Schema        string `toml:"schema" json:"schema"`
	ConnectParams string `toml:"connect-params" json:"connect-params"`
	SlowThreshold uint64 `toml:"slow-threshold" json:"slow-threshold"`
	GoodsTable    string `toml:"goods-table" json:"goods-table"`
	CommentTable  string `toml:"comment-table" json:"comment-table"`
}

type MySQLOption func(opts *MySQLOptions)

func DefaultMySQLConfig() *MySQLOptions {
	return &MySQLOptions{
		Host:          "127.0.0.1",
		Port:          constant.DefaultMySQLPort,
		Username:      "root",
		SlowThreshold: constant.DefaultMySQLSlowThreshold,
		GoodsTable:    constant.DefaultGoodsTableName,
		CommentTable:  constant.DefaultCommentTableName,
	}
}

func NewMySQLOptions(opts ...MySQLOption) *MySQLOptions {
	o := DefaultMySQLConfig()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func WithMySQLAddr(host string, port uint64) MySQLOption {
	return func(opts *MySQLOptions) {
		opts.Host = host
		opts.Port = port
	}
}

func WithMySQLUser(username, password string) MySQLOption {
	return func(opts *MySQLOptions) {
		opts.Username = username
		opts.Password = password
	}
}

func WithMySQLSchema(schema string) MySQLOption {
	return func(opts *MySQLOptions) {
		opts.Schema = schema
	}
}

func WithMySQLConnectParams(params string) MySQLOption {
	return func(opts *MySQLOptions) {
		opts.ConnectParams = params
	}
}

func WithSourceTables(goodsTable, commentTable string) MySQLOption {
	return func(opts *MySQLOptions) {
		opts.GoodsTable = goodsTable
		opts.CommentTable = commentTable
	}
}

// DSN builds the go-sql-driver data source name, connect-params is a url query string
func (o *MySQLOptions) DSN() (string, error) {
	cfg := mysqldriver.NewConfig()
	cfg.User = o.Username
	cfg.Passwd = o.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(o.Host, strconv.FormatUint(o.Port, 10))
	cfg.DBName = o.Schema

	if !strings.EqualFold(o.ConnectParams, "") {
		values, err := url.ParseQuery(o.ConnectParams)
		if err != nil {
			return "", fmt.Errorf("mysql connect-params [%s] parse failed: %v", o.ConnectParams, err)
		}
		cfg.Params = make(map[string]string, len(values))
		for k := range values {
			cfg.Params[k] = values.Get(k)
		}
	}
	return cfg.FormatDSN(), nil
}

func (o *MySQLOptions) Validate() error {
	if strings.EqualFold(o.Host, "") {
		return fmt.Errorf("mysql config [host] can't be null")
	}
	if strings.EqualFold(o.GoodsTable, "") || strings.EqualFold(o.CommentTable, "") {
		return fmt.Errorf("mysql config [goods-table] and [comment-table] can't be null")
	}
	return nil
}

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

	"github.com/wentaojin/docmigrate/utils/constant"
)

// MongoOptions document target config items
type MongoOptions struct {
	Host       string `toml:"host" json:"host"`
	Port       uint64 `toml:"port" json:"port"`
	Username   string `toml:"username" json:"username"`
	Password   string `toml:"password" json:"password"`
	Database   string `toml:"database" json:"database"`
	Collection string `toml:"collection" json:"collection"`
	// ConnectTimeout represented connect and server selection timeout (seconds)
	ConnectTimeout uint64 `toml:"connect-timeout" json:"connect-timeout"`
}

type MongoOption func(opts *MongoOptions)

func DefaultMongoConfig() *MongoOptions {
	return &MongoOptions{
		Host:           "127.0.0.1",
		Port:           constant.DefaultMongoDBPort,
		ConnectTimeout: constant.DefaultMongoDBConnectTimeout,
	}
}

func NewMongoOptions(opts ...MongoOption) *MongoOptions {
	o := DefaultMongoConfig()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func WithMongoAddr(host string, port uint64) MongoOption {
	return func(opts *MongoOptions) {
		opts.Host = host
		opts.Port = port
	}
}

func WithMongoUser(username, password string) MongoOption {
	return func(opts *MongoOptions) {
		opts.Username = username
		opts.Password = password
	}
}

func WithMongoNamespace(database, collection string) MongoOption {
	return func(opts *MongoOptions) {
		opts.Database = database
		opts.Collection = collection
	}
}

// URI returns the mongodb connection string
func (o *MongoOptions) URI() string {
	u := url.URL{
		Scheme: "mongodb",
		Host:   net.JoinHostPort(o.Host, strconv.FormatUint(o.Port, 10)),
		Path:   "/",
	}
	if !strings.EqualFold(o.Username, "") {
		u.User = url.UserPassword(o.Username, o.Password)
	}
	return u.String()
}

func (o *MongoOptions) Validate() error {
	if strings.EqualFold(o.Host, "") {
		return fmt.Errorf("mongodb config [host] can't be null")
	}
	if strings.EqualFold(o.Database, "") {
		return fmt.Errorf("mongodb config [database] can't be null")
	}
	if strings.EqualFold(o.Collection, "") {
		return fmt.Errorf("mongodb config [collection] can't be null")
	}
	return nil
}

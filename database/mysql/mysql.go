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
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/wentaojin/docmigrate/utils/configutil"
	"github.com/wentaojin/docmigrate/utils/constant"
)

type Database struct {
	DBConn       *gorm.DB
	GoodsTable   string
	CommentTable string
}

// NewDatabase opens the relational source, the pool is capped to one connection
// and held until Close
func NewDatabase(ctx context.Context, opts *configutil.MySQLOptions, logger gormlogger.Interface) (*Database, error) {
	dsn, err := opts.DSN()
	if err != nil {
		return nil, err
	}

	mysqlDB, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("error on open mysql database connection: %v", err)
	}

	mysqlDB.SetMaxIdleConns(constant.MYSQLDatabaseMaxIdleConn)
	mysqlDB.SetMaxOpenConns(constant.MYSQLDatabaseMaxConn)

	if err = mysqlDB.PingContext(ctx); err != nil {
		_ = mysqlDB.Close()
		return nil, fmt.Errorf("error on ping mysql database connection: %v", err)
	}
	return newDatabase(mysqlDB, opts.GoodsTable, opts.CommentTable, logger)
}

func newDatabase(conn *sql.DB, goodsTable, commentTable string, logger gormlogger.Interface) (*Database, error) {
	db, err := gorm.Open(gormmysql.New(gormmysql.Config{
		Conn:                      conn,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger:               logger,
		DisableAutomaticPing: true,
	})
	if err != nil {
		return nil, fmt.Errorf("error on open gorm database session: %v", err)
	}
	return &Database{
		DBConn:       db,
		GoodsTable:   goodsTable,
		CommentTable: commentTable,
	}, nil
}

func (d *Database) tableName(kind string) (string, error) {
	switch {
	case strings.EqualFold(kind, constant.MigrateKindGoods):
		return d.GoodsTable, nil
	case strings.EqualFold(kind, constant.MigrateKindComment):
		return d.CommentTable, nil
	default:
		return "", fmt.Errorf("migrate kind [%s] is not supported, please reselect [%s] or [%s]",
			kind, constant.MigrateKindGoods, constant.MigrateKindComment)
	}
}

func (d *Database) Close() error {
	conn, err := d.DBConn.DB()
	if err != nil {
		return err
	}
	return conn.Close()
}

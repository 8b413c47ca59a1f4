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
package constant

// Migrate Kind
const (
	MigrateKindGoods   = "goods"
	MigrateKindComment = "comment"
)

// Default source tables
const (
	DefaultGoodsTableName   = "jd_goods"
	DefaultCommentTableName = "jd_comment"
)

// Source column names, goods table
const (
	GoodsColumnID             = "ID"
	GoodsColumnName           = "name"
	GoodsColumnCommentNum     = "comment_num"
	GoodsColumnShopName       = "shop_name"
	GoodsColumnLink           = "link"
	GoodsColumnCommentVersion = "commentVersion"
	GoodsColumnScore1Count    = "score1count"
	GoodsColumnScore2Count    = "score2count"
	GoodsColumnScore3Count    = "score3count"
	GoodsColumnScore4Count    = "score4count"
	GoodsColumnScore5Count    = "score5count"
	GoodsColumnPrice          = "price"
)

// Source column names, comment table
const (
	CommentColumnUserID           = "user_ID"
	CommentColumnUserName         = "user_name"
	CommentColumnUserProvince     = "userProvince"
	CommentColumnUserRegisterTime = "userRegisterTime"
	CommentColumnUserLevelName    = "userLevelName"
	CommentColumnIsMobile         = "isMobile"
	CommentColumnGoodsID          = "good_ID"
	CommentColumnGoodsName        = "good_name"
	CommentColumnProductColor     = "productColor"
	CommentColumnProductSize      = "productSize"
	CommentColumnContent          = "content"
	CommentColumnDate             = "date"
	CommentColumnReplyCount       = "replyCount"
	CommentColumnScore            = "score"
	CommentColumnStatus           = "status"
	CommentColumnTitle            = "title"
	CommentColumnDays             = "days"
	CommentColumnTags             = "tags"
)

// Document field names
const (
	DocumentFieldID = "_id"
)

const (
	StringSeparatorBacktick = "`"
	StringMaskedSecret      = "******"
)

const (
	MYSQLDatabaseMaxIdleConn = 1
	MYSQLDatabaseMaxConn     = 1
)

const (
	DefaultMigratePageSize       = 1000
	DefaultMongoDBPort           = 27017
	DefaultMySQLPort             = 3306
	DefaultMongoDBConnectTimeout = 10
	DefaultMySQLSlowThreshold    = 300
)

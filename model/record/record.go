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

// Package record holds the value records read from the relational source and
// their nested document form written to the document store.
//
// Known issue: a comment document takes its _id from the embedded user id, not
// from a comment key. Two comments written by the same user collide in the
// target collection and the second insert is rejected. The behavior is kept
// as-is until the intended identity is clarified.
package record

type User struct {
	ID           string
	Name         string
	Province     string
	RegisterTime string
	LevelName    string
	IsMobile     string
}

type Product struct {
	ID    string
	Name  string
	Color string
	Size  string
}

type Comment struct {
	User       User
	Product    Product
	Content    string
	Date       string
	ReplyCount uint32
	Score      uint32
	Status     string
	Title      string
	Days       uint32
	Tags       string
}

type Goods struct {
	ID             string
	Name           string
	CommentNum     uint32
	ShopName       string
	Link           string
	CommentVersion string
	Score1Count    uint32
	Score2Count    uint32
	Score3Count    uint32
	Score4Count    uint32
	Score5Count    uint32
	Price          float32
	Comments       []Comment
}

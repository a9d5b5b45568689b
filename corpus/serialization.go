// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package corpus

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/refsearch/core"
)

// MarshalHeader serializes a catalog entry to bytes.
func MarshalHeader(h core.ArticleHeader) []byte {
	size := varint.SizeInt(int(h.Number)) + ord.SizeString(h.Title, nil)
	buf := make([]byte, size)
	n := varint.MarshalInt(int(h.Number), buf)
	ord.MarshalString(h.Title, nil, buf[n:])
	return buf
}

// UnmarshalHeader deserializes a catalog entry from bytes.
func UnmarshalHeader(data []byte) (core.ArticleHeader, error) {
	number, n, err := varint.UnmarshalInt(data)
	if err != nil {
		return core.ArticleHeader{}, err
	}
	title, _, err := ord.UnmarshalString(nil, data[n:])
	if err != nil {
		return core.ArticleHeader{}, err
	}
	return core.ArticleHeader{Number: core.ArticleID(number), Title: title}, nil
}

// MarshalArticle serializes an article to bytes. The article number is not
// encoded; it is the storage key.
func MarshalArticle(a *core.Article) []byte {
	size := ord.SizeString(a.URL, nil) + ord.SizeString(a.Body, nil)
	buf := make([]byte, size)
	n := ord.MarshalString(a.URL, nil, buf)
	ord.MarshalString(a.Body, nil, buf[n:])
	return buf
}

// UnmarshalArticle deserializes an article from bytes.
func UnmarshalArticle(id core.ArticleID, data []byte) (*core.Article, error) {
	url, n, err := ord.UnmarshalString(nil, data)
	if err != nil {
		return nil, err
	}
	body, _, err := ord.UnmarshalString(nil, data[n:])
	if err != nil {
		return nil, err
	}
	return &core.Article{Number: id, URL: url, Body: body}, nil
}

// MarshalDigest serializes a content digest to bytes.
func MarshalDigest(d uint64) []byte {
	buf := make([]byte, varint.SizeUint64(d))
	varint.MarshalUint64(d, buf)
	return buf
}

// UnmarshalDigest deserializes a content digest from bytes.
func UnmarshalDigest(data []byte) (uint64, error) {
	d, _, err := varint.UnmarshalUint64(data)
	return d, err
}

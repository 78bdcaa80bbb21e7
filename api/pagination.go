// Copyright 2025 Blink Labs Software
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

package api

import (
	"errors"
	"net/http"
	"strconv"
)

const (
	DefaultPaginationCount = 100
	MaxPaginationCount     = 500
)

var ErrInvalidPaginationParameters = errors.New(
	"invalid pagination parameters",
)

// PaginationParams contains parsed journal query values. From is the first
// sequence number to return.
type PaginationParams struct {
	From  uint64
	Count int
}

// ParsePagination parses the from and count query parameters and clamps
// count to [1, MaxPaginationCount].
func ParsePagination(r *http.Request) (PaginationParams, error) {
	params := PaginationParams{
		Count: DefaultPaginationCount,
	}
	query := r.URL.Query()
	if countParam := query.Get("count"); countParam != "" {
		count, err := strconv.Atoi(countParam)
		if err != nil {
			return PaginationParams{},
				ErrInvalidPaginationParameters
		}
		params.Count = count
	}
	if fromParam := query.Get("from"); fromParam != "" {
		from, err := strconv.ParseUint(fromParam, 10, 64)
		if err != nil {
			return PaginationParams{},
				ErrInvalidPaginationParameters
		}
		params.From = from
	}
	if params.Count < 1 {
		params.Count = 1
	}
	if params.Count > MaxPaginationCount {
		params.Count = MaxPaginationCount
	}
	return params, nil
}

// setNextHeader points clients at the following page when the current one
// came back full.
func setNextHeader(
	w http.ResponseWriter,
	params PaginationParams,
	entries int,
	lastSeq uint64,
) {
	if entries < params.Count {
		return
	}
	w.Header().Set("X-Next-From", strconv.FormatUint(lastSeq+1, 10))
}

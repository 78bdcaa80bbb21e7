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

package models

// Report is the per-content report counter
type Report struct {
	ContentID   uint64 `gorm:"primaryKey;autoIncrement:false" json:"contentId"`
	ReportCount uint64 `gorm:"not null;default:0"             json:"reportCount"`
	Resolved    bool   `gorm:"not null;default:false"         json:"resolved"`
}

func (Report) TableName() string {
	return "report"
}

// ReportMarker is the (content, reporter) dedup record
type ReportMarker struct {
	Reporter  string `gorm:"uniqueIndex:idx_report_content_reporter;size:128;not null" json:"reporter"`
	Reason    string `gorm:"size:256"                                                 json:"reason"`
	ID        uint   `gorm:"primarykey"                                               json:"-"`
	ContentID uint64 `gorm:"uniqueIndex:idx_report_content_reporter;not null"         json:"contentId"`
	Height    uint64 `gorm:"not null"                                                 json:"height"`
}

func (ReportMarker) TableName() string {
	return "report_marker"
}

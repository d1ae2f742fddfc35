package model

import "time"

// 端末ローカルのkey/value（ブラウザのlocalStorage相当）
type LocalEntry struct {
	Key       string    `gorm:"primaryKey;column:entry_key;type:varchar(64)"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"`
}

package models

import "time"

// ActivationCodeType 激活码类型表
type ActivationCodeType struct {
	ID        string    `gorm:"primarykey;type:varchar(36)" json:"id"` // 主键（UUID）
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`      // 类型名称（唯一）
	CreatedAt time.Time `gorm:"index" json:"createdAt"`                // 创建时间
	UpdatedAt time.Time `json:"updatedAt"`                             // 更新时间
}

// TableName 指定表名
func (ActivationCodeType) TableName() string {
	return "activation_code_types"
}

package models

import "time"

// ActivationCode 激活码台账表
// activated/refunded/revoked 三个布尔状态各自配对一个时间戳：
// 状态为 true 时时间戳必须非空，为 false 时必须为空。
type ActivationCode struct {
	ID          uint       `gorm:"primarykey" json:"id"`                         // 主键
	Code        string     `gorm:"uniqueIndex;not null" json:"code"`             // 激活码内容（全局唯一）
	Type        int        `gorm:"not null;default:0" json:"type"`               // 类型（激活天数，legacy 字段）
	TypeID      *string    `gorm:"index;column:type_id" json:"typeId,omitempty"` // 关联的激活码类型ID
	Activated   bool       `gorm:"index;not null;default:false" json:"activated"` // 是否已激活
	ActivatedAt *time.Time `json:"activatedAt"`                                  // 激活时间
	Refunded    bool       `gorm:"index;not null;default:false" json:"refunded"` // 是否已退款
	RefundedAt  *time.Time `json:"refundedAt"`                                   // 退款时间
	RefundNote  *string    `gorm:"type:text" json:"refundNote"`                  // 退款原因
	Revoked     bool       `gorm:"index;not null;default:false" json:"revoked"`  // 是否已收回
	RevokedAt   *time.Time `json:"revokedAt"`                                    // 收回时间
	DataDate    time.Time  `gorm:"index;not null" json:"dataDate"`               // 数据归属日期
	ImportedAt  time.Time  `gorm:"index;not null" json:"importedAt"`             // 导入时间（创建后不再变更）

	CodeType *ActivationCodeType `gorm:"foreignKey:TypeID" json:"codeType,omitempty"` // 类型信息
}

// TableName 指定表名
func (ActivationCode) TableName() string {
	return "activation_codes"
}

package model

// swagger:model Content
type Content struct {
	UUIDBase
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	ContentType string `gorm:"size:50;default:'lesson'" json:"contentType"` // lesson / article / video
	Body        string `gorm:"type:longtext" json:"body"`
	FileURL     string `gorm:"size:512" json:"fileUrl"`
	OrderIndex  int    `gorm:"default:0" json:"orderIndex"`
	IsPublished bool   `gorm:"default:false" json:"isPublished"`
	CreatorID   string `gorm:"index;type:varchar(36)" json:"creatorId"`
}

func (Content) TableName() string {
	return "contents"
}

package model

// swagger:model Document
type Document struct {
	BaseModel
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	CourseID    uint   `gorm:"index;type:bigint unsigned" json:"courseId"`
	URL         string `gorm:"size:255;not null" json:"url"`
	Format      string `gorm:"size:50" json:"format"`
	Size        int64  `gorm:"column:size;default:0" json:"size"`
	UploaderID  uint   `gorm:"index;type:bigint unsigned" json:"uploaderId"`
	ViewCount   int    `gorm:"column:view_count;default:0" json:"viewCount"`
}

func (Document) TableName() string {
	return "documents"
}

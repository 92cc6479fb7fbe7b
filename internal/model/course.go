package model

// swagger:model Course
type Course struct {
	BaseModel
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Category    string `gorm:"size:100;index" json:"category"`
	Thumbnail   string `gorm:"size:255" json:"thumbnail"`
	Premium     bool   `gorm:"default:false" json:"premium"`
	CreatorID   uint   `gorm:"index;type:bigint unsigned" json:"creatorId"`
}

func (Course) TableName() string {
	return "courses"
}

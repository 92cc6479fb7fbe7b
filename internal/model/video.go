package model

// swagger:model Video
type Video struct {
	BaseModel
	Title       string  `gorm:"size:255;not null" json:"title"`
	Description string  `gorm:"type:text" json:"description"`
	CourseID    uint    `gorm:"index;type:bigint unsigned" json:"courseId"`
	URL         string  `gorm:"size:255;not null" json:"url"`
	Duration    float64 `gorm:"column:duration;default:0" json:"duration"` // seconds, from ffprobe
	Format      string  `gorm:"size:50" json:"format"`
	Size        int64   `gorm:"column:size;default:0" json:"size"`
	Thumbnail   string  `gorm:"size:255" json:"thumbnail"`
	UploaderID  uint    `gorm:"index;type:bigint unsigned" json:"uploaderId"`
	ViewCount   int     `gorm:"column:view_count;default:0" json:"viewCount"`
}

func (Video) TableName() string {
	return "videos"
}

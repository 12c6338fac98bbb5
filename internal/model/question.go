package model

// Question is one hunt quiz item. Normal-track questions are served in
// Position order; bonus questions form a separate pool with their own
// positions. ImageURL is an opaque reference into the blob store.
//
// swagger:model Question
type Question struct {
	BaseModel
	Text          string `gorm:"type:text;not null" json:"question"`
	Points        int    `gorm:"not null" json:"points"`
	RequiresImage bool   `gorm:"default:false" json:"requires_image"`
	IsBonus       bool   `gorm:"default:false" json:"is_bonus"`
	ImageURL      string `gorm:"size:255" json:"image_url,omitempty"`
	Position      int    `gorm:"index" json:"position"`
}

func (Question) TableName() string {
	return "questions"
}

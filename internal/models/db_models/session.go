package db_models

// SessionRecord stores one planner session as a JSON document. The document
// column is the source of truth; provider and language are denormalized for
// listing without unmarshalling.
type SessionRecord struct {
	BaseModel
	Name     string `gorm:"uniqueIndex;size:255"`
	Provider string `gorm:"size:64"`
	Language string `gorm:"size:64"`
	Document []byte `gorm:"type:jsonb"`
}

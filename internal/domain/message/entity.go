package message

import (
	"time"

	"github.com/google/uuid"
)

// Conversation modes. A turn is always tagged with exactly one of these.
const (
	ModeAssistant = "assistant"
	ModeCoder     = "coder"
	ModeDesigner  = "designer"
	ModeInnovator = "innovator"
)

// ValidMode reports whether mode is one of the fixed conversation modes.
func ValidMode(mode string) bool {
	switch mode {
	case ModeAssistant, ModeCoder, ModeDesigner, ModeInnovator:
		return true
	}
	return false
}

// UserTag is the fixed marker attached to user-authored turns.
const UserTag = "user"

// TagVocabulary is the fixed set model-authored turns draw their tags from.
var TagVocabulary = []string{
	"AI", "Design", "Code", "UX/UI", "Innovation", "Technology", "Advice", "Explanation",
}

// Message represents the messages table: one turn of a conversation,
// append-only. Only IsPinned may change after creation.
type Message struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`
	Text      string    `gorm:"not null" json:"text"`
	IsUser    bool      `gorm:"not null" json:"isUser"`
	Mode      string    `gorm:"not null" json:"mode"`
	Tags      []string  `gorm:"serializer:json" json:"tags"`
	IsPinned  bool      `gorm:"default:false" json:"isPinned"`
	CreatedAt time.Time `json:"timestamp"`
}

func (Message) TableName() string {
	return "messages"
}

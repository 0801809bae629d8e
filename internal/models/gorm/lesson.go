package gorm

import "time"

type Lesson struct {
	ID             string `gorm:"column:id;primaryKey;type:uuid"`
	OrganizationID string `gorm:"column:organization_id;type:uuid;index"`
	Name           string `gorm:"column:name"`
	Description    *string `gorm:"column:description"`

	// Relationships
	Prerequisites []LessonPrerequisite `gorm:"foreignKey:LessonID"`
}

// TableName specifies the table name for GORM
func (Lesson) TableName() string {
	return "lessons"
}

type LessonPrerequisite struct {
	ID                   string `gorm:"column:id;primaryKey;type:uuid"`
	LessonID             string `gorm:"column:lesson_id;type:uuid;index"`
	PrerequisiteLessonID string `gorm:"column:prerequisite_lesson_id;type:uuid"`

	// Relationships
	PrerequisiteLesson *Lesson `gorm:"foreignKey:PrerequisiteLessonID"`
}

func (LessonPrerequisite) TableName() string {
	return "lesson_prerequisites"
}

// Debrief is the instructor's post-flight assessment for a booking's lesson.
type Debrief struct {
	ID             string    `gorm:"column:id;primaryKey;type:uuid"`
	OrganizationID string    `gorm:"column:organization_id;type:uuid;index"`
	BookingID      string    `gorm:"column:booking_id;type:uuid;uniqueIndex"`
	LessonID       *string   `gorm:"column:lesson_id;type:uuid"`
	StudentID      *string   `gorm:"column:student_id;type:uuid;index"`
	InstructorID   *string   `gorm:"column:instructor_id;type:uuid"`
	Outcome        string    `gorm:"column:outcome"`
	Comments       *string   `gorm:"column:comments"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`

	// Relationships
	Items []DebriefItem `gorm:"foreignKey:DebriefID"`
}

func (Debrief) TableName() string {
	return "debriefs"
}

type DebriefItem struct {
	ID        string `gorm:"column:id;primaryKey;type:uuid"`
	DebriefID string `gorm:"column:debrief_id;type:uuid;index"`
	Criterion string `gorm:"column:criterion"`
	Score     int    `gorm:"column:score"`
}

func (DebriefItem) TableName() string {
	return "debrief_items"
}

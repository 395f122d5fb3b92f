package models

import (
	"time"
)

type Project struct {
	ID              uint    `gorm:"primaryKey;autoIncrement"  json:"id"`
	Title           string  `gorm:"not null"                  json:"title"`
	Description     string  `gorm:"not null"                  json:"description"`
	FullDescription *string `json:"full_description"`
	AcademicTrack   *string `json:"academic_track"`
	Students        *string `json:"students"`
	Mentor          *string `json:"mentor"`
	YoutubeURL      *string `gorm:"column:youtube_url"        json:"youtube_url"`
	Image           *string `json:"image"`
	Live            *string `json:"live"`
	Github          *string `json:"github"`
}

type Skill struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string `gorm:"not null"                 json:"name"`
	Category string `json:"category"`
}

// ProjectTechnology links a project to a skill. Position keeps the order the
// links were submitted in.
type ProjectTechnology struct {
	ProjectID uint     `gorm:"primaryKey;autoIncrement:false"                 json:"project_id"`
	SkillID   uint     `gorm:"primaryKey;autoIncrement:false;index"           json:"skill_id"`
	Position  int      `gorm:"not null;default:0"                             json:"position"`
	Project   *Project `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"-"`
	Skill     *Skill   `gorm:"foreignKey:SkillID;constraint:OnDelete:CASCADE"   json:"-"`
}

func (ProjectTechnology) TableName() string { return "technologies" }

type AboutSkill struct {
	ID      uint   `gorm:"primaryKey;autoIncrement"                       json:"id"`
	Type    string `gorm:"not null"                                       json:"type"`
	SkillID uint   `gorm:"index;not null"                                 json:"skill_id"`
	Skill   *Skill `gorm:"foreignKey:SkillID;constraint:OnDelete:CASCADE" json:"-"`
}

type Message struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	SenderName  string    `gorm:"not null"                 json:"sender_name"`
	SenderEmail string    `gorm:"not null"                 json:"sender_email"`
	Body        string    `gorm:"column:message;not null"  json:"message"`
	SentAt      time.Time `gorm:"index;not null"           json:"sent_at"`
}

type Rating struct {
	ID        uint     `gorm:"primaryKey;autoIncrement"                         json:"id"`
	ProjectID uint     `gorm:"index;not null"                                   json:"project_id"`
	Rating    int      `gorm:"not null;check:rating BETWEEN 1 AND 5"            json:"rating"`
	Project   *Project `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"-"`
}

func All() []any {
	return []any{&Project{}, &Skill{}, &ProjectTechnology{}, &AboutSkill{}, &Message{}, &Rating{}}
}

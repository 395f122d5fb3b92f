package transport

import (
	"math"
	"time"

	"github.com/Skotchmaster/portfolio/internal/models"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type ProjectRequest struct {
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	FullDescription *string `json:"full_description"`
	AcademicTrack   *string `json:"academic_track"`
	Students        *string `json:"students"`
	Mentor          *string `json:"mentor"`
	YoutubeURL      *string `json:"youtube_url"`
	Image           *string `json:"image"`
	Live            *string `json:"live"`
	Github          *string `json:"github"`
	Technologies    []uint  `json:"technologies"`
}

func (r ProjectRequest) Model() models.Project {
	return models.Project{
		Title:           r.Title,
		Description:     r.Description,
		FullDescription: r.FullDescription,
		AcademicTrack:   r.AcademicTrack,
		Students:        r.Students,
		Mentor:          r.Mentor,
		YoutubeURL:      r.YoutubeURL,
		Image:           r.Image,
		Live:            r.Live,
		Github:          r.Github,
	}
}

// ProjectSummary is the public list shape: technologies are skill names.
type ProjectSummary struct {
	models.Project
	Technologies  []string `json:"technologies"`
	RatingCount   int64    `json:"rating_count"`
	AverageRating float64  `json:"average_rating"`
}

type TechnologyRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type ProjectDetail struct {
	models.Project
	Technologies  []TechnologyRef `json:"technologies"`
	RatingCount   int64           `json:"rating_count"`
	AverageRating float64         `json:"average_rating"`
}

type MutationResponse struct {
	Message string `json:"message"`
	ID      uint   `json:"id"`
}

type SkillRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

type SkillResponse struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

type AboutSkill struct {
	ID      uint   `json:"id"`
	Type    string `json:"type"`
	SkillID uint   `json:"skill_id"`
	Name    string `json:"name"`
}

type MessageRequest struct {
	SenderName  string `json:"sender_name"`
	SenderEmail string `json:"sender_email"`
	Message     string `json:"message"`
}

type MessageResponse struct {
	ID          uint      `json:"id"`
	SenderName  string    `json:"sender_name"`
	SenderEmail string    `json:"sender_email"`
	Message     string    `json:"message"`
	SentAt      time.Time `json:"sent_at"`
}

type RatingRequest struct {
	ProjectID *uint `json:"project_id"`
	Rating    *int  `json:"rating"`
}

type RatingSummary struct {
	Count   int64   `json:"count"`
	Average float64 `json:"average"`
}

type SearchMeta struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
	HasPrev    bool  `json:"has_prev"`
	HasNext    bool  `json:"has_next"`
}

type SearchResponse struct {
	Data []ProjectSummary `json:"data"`
	Meta SearchMeta       `json:"meta"`
}

// RoundRating rounds an average to one decimal place.
func RoundRating(avg float64) float64 {
	if math.IsNaN(avg) {
		return 0
	}
	return math.Round(avg*10) / 10
}

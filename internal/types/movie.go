package types

import (
	"time"
)

// Movie is the primary entity. The (name, date) pair is unique across all
// movies; the composite index backs the conflict check on create.
type Movie struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Name      string     `gorm:"size:255;not null;uniqueIndex:uniq_movies_name_date" json:"name"`
	Date      time.Time  `gorm:"type:date;not null;uniqueIndex:uniq_movies_name_date" json:"date"`
	Score     float64    `gorm:"not null" json:"score"`
	Overview  string     `gorm:"not null;default:''" json:"overview"`
	Status    string     `gorm:"not null" json:"status"`
	Budget    float64    `gorm:"not null" json:"budget"`
	Revenue   float64    `gorm:"not null" json:"revenue"`
	CountryID uint       `gorm:"not null;index" json:"country_id"`
	Country   *Country   `gorm:"foreignKey:CountryID;references:ID" json:"country,omitempty"`
	Genres    []Genre    `gorm:"many2many:movie_genres" json:"genres,omitempty"`
	Actors    []Actor    `gorm:"many2many:movie_actors" json:"actors,omitempty"`
	Languages []Language `gorm:"many2many:movie_languages" json:"languages,omitempty"`
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null" json:"updated_at"`
}

func (Movie) TableName() string { return "movies" }

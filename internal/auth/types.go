package auth

import "time"

// User is a staff account belonging to exactly one shelter.
type User struct {
	ID           int64     `json:"id"`
	UserName     string    `json:"user_name"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	ShelterID    int64     `json:"shelter_id"`
	DateCreated  time.Time `json:"date_created"`
}

// Shelter is the organizational tenant users authenticate against.
type Shelter struct {
	ID              int64  `json:"id"`
	ShelterName     string `json:"shelter_name"`
	ShelterUsername string `json:"shelter_username"`
	ShelterCountry  string `json:"shelter_country"`
	ShelterAddress  string `json:"shelter_address"`
	ShelterPhone    string `json:"shelter_phone"`
	ShelterEmail    string `json:"shelter_email"`
	ShelterStatus   string `json:"shelter_status"`
}

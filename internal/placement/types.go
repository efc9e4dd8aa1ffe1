// Package placement covers adoption and foster records. These carry adopter
// and foster PII, which is why their wire representation travels inside an
// encrypted envelope rather than plain JSON.
package placement

import "time"

// Adoption is a completed adoption record for a dog.
type Adoption struct {
	ID             int64      `json:"id"`
	DogID          int64      `json:"dog_id"`
	AdopterName    string     `json:"adopter_name"`
	AdoptionDate   *time.Time `json:"adoption_date,omitempty"`
	AdopterEmail   string     `json:"adopter_email,omitempty"`
	AdopterPhone   string     `json:"adopter_phone,omitempty"`
	AdopterCountry string     `json:"adopter_country,omitempty"`
	ContractImgURL string     `json:"contract_img_url,omitempty"`
	DogStatus      string     `json:"dog_status,omitempty"`
}

// Foster is an active foster placement for a dog.
type Foster struct {
	ID            int64      `json:"id"`
	DogID         int64      `json:"dog_id"`
	FosterName    string     `json:"foster_name"`
	FosterDate    *time.Time `json:"foster_date,omitempty"`
	FosterEmail   string     `json:"foster_email,omitempty"`
	FosterPhone   string     `json:"foster_phone,omitempty"`
	FosterCountry string     `json:"foster_country,omitempty"`
	ContractURL   string     `json:"contract_url,omitempty"`
	DogStatus     string     `json:"dog_status,omitempty"`
}

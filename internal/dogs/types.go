package dogs

import "time"

// Dog statuses as they appear on the wire and in the database.
const (
	StatusCurrent  = "Current"
	StatusArchived = "Archived"
	StatusAdopted  = "Adopted"
	StatusFostered = "Fostered"
)

// Dog is a shelter resident.
type Dog struct {
	ID             int64      `json:"id"`
	DogName        string     `json:"dog_name"`
	ProfileImg     string     `json:"profile_img,omitempty"`
	Age            string     `json:"age,omitempty"`
	ArrivalDate    *time.Time `json:"arrival_date,omitempty"`
	Gender         string     `json:"gender,omitempty"`
	SpayedNeutered bool       `json:"spayedneutered"`
	UpdatedBy      string     `json:"updated_by,omitempty"`
	TagNumber      string     `json:"tag_number,omitempty"`
	Microchip      string     `json:"microchip,omitempty"`
	DogStatus      string     `json:"dog_status"`
	ArchiveDate    *time.Time `json:"archive_date,omitempty"`
	AdoptionDate   *time.Time `json:"adoption_date,omitempty"`
}

// DogListing is the trimmed shape returned by the dogs collection endpoint.
type DogListing struct {
	ID         int64  `json:"id"`
	ProfileImg string `json:"profile_img,omitempty"`
	DogName    string `json:"dog_name"`
	DogStatus  string `json:"dog_status"`
}

// Shot is one vaccination record for a dog.
type Shot struct {
	ID            int64      `json:"id"`
	ShotName      string     `json:"shot_name"`
	ShotCompleted bool       `json:"shot_iscompleted"`
	ShotDate      *time.Time `json:"shot_date,omitempty"`
	DogID         int64      `json:"dog_id"`
}

// ShotSummary is the per-dog aggregation embedded in a normalized record.
type ShotSummary struct {
	ShotName      string     `json:"shot_name"`
	ShotCompleted bool       `json:"shot_iscompleted"`
	ShotDate      *time.Time `json:"shot_date,omitempty"`
}

// NormalizedDog joins a dog with its vaccination history.
type NormalizedDog struct {
	Dog
	ShotsCompleted []ShotSummary `json:"shotsCompleted"`
}

// Note is a free-form record attached to a dog.
type Note struct {
	ID            int64     `json:"id"`
	TypeOfNote    string    `json:"type_of_note"`
	Notes         string    `json:"notes"`
	DogID         int64     `json:"dog_id"`
	CreatedBy     int64     `json:"created_by"`
	NoteUpdatedBy string    `json:"note_updated_by,omitempty"`
	DateCreated   time.Time `json:"date_created"`
}

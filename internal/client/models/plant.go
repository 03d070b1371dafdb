package models

type PlantStatus string

const (
	PlantStatusActive PlantStatus = "active"
	PlantStatusDead   PlantStatus = "dead"
	PlantStatusGifted PlantStatus = "gifted"
)

// ParsePlantStatus accepts the wire names; ok is false for anything else.
func ParsePlantStatus(s string) (PlantStatus, bool) {
	switch st := PlantStatus(s); st {
	case PlantStatusActive, PlantStatusDead, PlantStatusGifted:
		return st, true
	}
	return "", false
}

type Plant struct {
	ID        string      `json:"_id"`
	UserID    string      `json:"userId"`
	Name      string      `json:"name"`
	Species   string      `json:"species"`
	Status    PlantStatus `json:"status"`
	ImageURL  string      `json:"imageUrl"`
	CreatedAt string      `json:"createdAt"`
	UpdatedAt string      `json:"updatedAt"`
}

const plantTitleLimit = 20

// DisplayTitle is the name cut to 20 runes with an ellipsis.
func (p Plant) DisplayTitle() string {
	r := []rune(p.Name)
	if len(r) <= plantTitleLimit {
		return p.Name
	}
	return string(r[:plantTitleLimit]) + "..."
}

func (p Plant) DisplayCategory() string {
	return p.Species + " Plant"
}

func (p Plant) Badge() string {
	switch p.Status {
	case PlantStatusDead:
		return "Dead"
	case PlantStatusGifted:
		return "Gifted"
	default:
		return "Active"
	}
}

type CreatePlantRequest struct {
	Name     string `json:"name"`
	Species  string `json:"species"`
	ImageURL string `json:"imageUrl"`
}

// UpdatePlantRequest is a PATCH body; nil fields are left unchanged.
type UpdatePlantRequest struct {
	Name     *string      `json:"name,omitempty"`
	Species  *string      `json:"species,omitempty"`
	ImageURL *string      `json:"imageUrl,omitempty"`
	Status   *PlantStatus `json:"status,omitempty"`
}

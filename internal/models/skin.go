package models

// Skin represents a tradable weapon skin listed in the catalogue
type Skin struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Weapon      string   `json:"weapon"`
	Rarity      Rarity   `json:"rarity"`
	Wear        string   `json:"wear"`  // Free text, e.g. "Field-Tested"
	Price       int64    `json:"price"` // Integer currency units
	ImageURL    string   `json:"image_url"`
	FloatValue  float64  `json:"float_value"` // Conventionally in [0,1], never validated
	OwnerName   string   `json:"owner_name"`
	IsAvailable bool     `json:"is_available"`
	Stickers    []string `json:"stickers,omitempty"`
}

// SkinDraft is the working buffer of the add/edit dialog and the request body for creating a skin
type SkinDraft struct {
	Name       string   `json:"name" validate:"required"`
	Weapon     string   `json:"weapon" validate:"required"`
	Rarity     Rarity   `json:"rarity" validate:"required,rarity"`
	Wear       string   `json:"wear"`
	Price      int64    `json:"price" validate:"gte=0"`
	ImageURL   string   `json:"image_url"`
	FloatValue float64  `json:"float_value"`
	OwnerName  string   `json:"owner_name"`
	Stickers   []string `json:"stickers,omitempty"`
}

// SkinCreated is the response body of a successful create
type SkinCreated struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// DefaultOwner is assigned to skins created without an owner
const DefaultOwner = "Admin"

// Draft returns the mutable fields of s as a draft
func (s Skin) Draft() SkinDraft {
	return SkinDraft{
		Name:       s.Name,
		Weapon:     s.Weapon,
		Rarity:     s.Rarity,
		Wear:       s.Wear,
		Price:      s.Price,
		ImageURL:   s.ImageURL,
		FloatValue: s.FloatValue,
		OwnerName:  s.OwnerName,
		Stickers:   append([]string(nil), s.Stickers...),
	}
}

// Skin builds the full record for id from the draft
func (d SkinDraft) Skin(id string) Skin {
	return Skin{
		ID:          id,
		Name:        d.Name,
		Weapon:      d.Weapon,
		Rarity:      d.Rarity,
		Wear:        d.Wear,
		Price:       d.Price,
		ImageURL:    d.ImageURL,
		FloatValue:  d.FloatValue,
		OwnerName:   d.OwnerName,
		IsAvailable: true,
		Stickers:    append([]string(nil), d.Stickers...),
	}
}

// Validate checks the draft before it is submitted
func (d SkinDraft) Validate() error {
	return Validate.Struct(d)
}

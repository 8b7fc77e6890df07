package dto

import "yamdb/internal/http-api/models"

// CreateTitleDTO used for POST /api/v1/titles. Genre and category are
// referenced by slug.
type CreateTitleDTO struct {
	Name        string   `json:"name" binding:"required,max=200"`
	Year        *int     `json:"year,omitempty"`
	Description *string  `json:"description,omitempty"`
	Genre       []string `json:"genre,omitempty"`
	Category    *string  `json:"category,omitempty"`
}

// UpdateTitleDTO used for PATCH /api/v1/titles/:title_id (partial updates allowed).
// A nil Genre leaves genres untouched; an empty Category clears it.
type UpdateTitleDTO struct {
	Name        *string  `json:"name,omitempty" binding:"omitempty,max=200"`
	Year        *int     `json:"year,omitempty"`
	Description *string  `json:"description,omitempty"`
	Genre       []string `json:"genre,omitempty"`
	Category    *string  `json:"category,omitempty"`
}

type TitleResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Year        *int              `json:"year"`
	Rating      *float64          `json:"rating"`
	Description *string           `json:"description"`
	Genre       []GenreResponse   `json:"genre"`
	Category    *CategoryResponse `json:"category"`
}

func (d CreateTitleDTO) ToModel() models.Title {
	return models.Title{
		Name:        d.Name,
		Year:        d.Year,
		Description: d.Description,
	}
}

// ApplyTo copies scalar fields onto t and returns the changed field names.
// Genre and category need lookups and are handled by the caller.
func (d UpdateTitleDTO) ApplyTo(t *models.Title) []string {
	var fields []string
	if d.Name != nil {
		t.Name = *d.Name
		fields = append(fields, "Name")
	}
	if d.Year != nil {
		t.Year = d.Year
		fields = append(fields, "Year")
	}
	if d.Description != nil {
		t.Description = d.Description
		fields = append(fields, "Description")
	}
	return fields
}

func FromModelToTitleResponse(t models.Title) TitleResponse {
	resp := TitleResponse{
		ID:          t.ID,
		Name:        t.Name,
		Year:        t.Year,
		Rating:      t.Rating,
		Description: t.Description,
		Genre:       MapSlice(t.Genres, FromModelToGenreResponse),
	}
	if t.Category != nil {
		category := FromModelToCategoryResponse(*t.Category)
		resp.Category = &category
	}
	return resp
}

package dto

import (
	"bytes"
	"encoding/json"
	"reflect"

	"yamdb/internal/microservices/http-api/models"
)

// NullableSlug tells an absent key apart from an explicit null. Set is true
// whenever the key was present; a nil Value then means "clear".
type NullableSlug struct {
	Set   bool
	Value *string

	notString bool
}

// SlugOf returns a set slug reference.
func SlugOf(slug string) NullableSlug {
	return NullableSlug{Set: true, Value: &slug}
}

// NullSlug returns a set reference that clears the relation.
func NullSlug() NullableSlug {
	return NullableSlug{Set: true}
}

func (n NullableSlug) IsZero() bool { return !n.Set }

func (n *NullableSlug) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var slug string
	if err := json.Unmarshal(data, &slug); err != nil {
		// reported by TitleRequest.Validate under the field name
		n.notString = true
		return nil
	}
	n.Value = &slug
	return nil
}

func (n NullableSlug) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}

// TitleRequest references category and genres by slug. Nil fields are left
// unchanged on PATCH; "category": null detaches the category.
type TitleRequest struct {
	Name        *string      `json:"name" binding:"omitempty,max=256"`
	Year        *int         `json:"year" binding:"omitempty,notfuture"`
	Description *string      `json:"description"`
	Category    NullableSlug `json:"category,omitzero"`
	Genre       []string     `json:"genre" binding:"omitempty,dive,slug"`
}

// Validate checks presence rules; full is set for POST and PUT.
func (r TitleRequest) Validate(full bool) map[string]string {
	errs := map[string]string{}
	requireText(errs, "name", r.Name, full)
	switch {
	case r.Category.notString:
		errs["category"] = typeMessage(reflect.String)
	case r.Category.Value != nil && !slugPattern.MatchString(*r.Category.Value):
		errs["category"] = MsgInvalidSlug
	}
	return errs
}

type TitleResponse struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Year        *int           `json:"year"`
	Rating      *float64       `json:"rating"`
	Description *string        `json:"description"`
	Category    *SlugResponse  `json:"category"`
	Genre       []SlugResponse `json:"genre"`
}

func FromModelToTitleResponse(t *models.Title) TitleResponse {
	resp := TitleResponse{
		ID:          t.ID,
		Name:        t.Name,
		Year:        t.Year,
		Rating:      t.Rating,
		Description: t.Description,
		Genre:       make([]SlugResponse, 0, len(t.Genres)),
	}
	if t.Category != nil {
		resp.Category = &SlugResponse{Name: t.Category.Name, Slug: t.Category.Slug}
	}
	for _, g := range t.Genres {
		resp.Genre = append(resp.Genre, SlugResponse{Name: g.Name, Slug: g.Slug})
	}
	return resp
}

func FromModelsToTitleResponses(titles []models.Title) []TitleResponse {
	out := make([]TitleResponse, 0, len(titles))
	for i := range titles {
		out = append(out, FromModelToTitleResponse(&titles[i]))
	}
	return out
}

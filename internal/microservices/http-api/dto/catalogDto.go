package dto

// SlugRequest is the body for creating a category or a genre.
type SlugRequest struct {
	Name string `json:"name" binding:"required,max=100"`
	Slug string `json:"slug" binding:"required,max=50,slug"`
}

// SlugResponse is the nested {name, slug} shape of categories and genres.
type SlugResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

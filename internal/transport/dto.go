package transport

type CreateProductRequest struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
}

// UpdateProductRequest uses pointer fields so an omitted field and an
// explicit zero value are distinguishable.
type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	Image       *string  `json:"image"`
	Description *string  `json:"description"`
}

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

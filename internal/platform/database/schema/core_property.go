package schema

// CorePropertyTable represents the 'core.property' table
type CorePropertyTable struct {
	Table           string
	ID              string
	Slug            string
	Title           string
	Description     string
	TransactionType string
	PropertyType    string
	Price           string
	Currency        string
	Address         string
	LocalidadID     string
	LocalidadNombre string
	Bedrooms        string
	Bathrooms       string
	AreaM2          string
	Images          string
	Published       string
	Featured        string
	CreatedAt       string
	UpdatedAt       string

	// SlugConstraint is the unique constraint guarding Slug
	SlugConstraint string
}

// CoreProperty is the schema definition for core.property
var CoreProperty = CorePropertyTable{
	Table:           "core.property",
	ID:              "id",
	Slug:            "slug",
	Title:           "title",
	Description:     "description",
	TransactionType: "transactiontype",
	PropertyType:    "propertytype",
	Price:           "price",
	Currency:        "currency",
	Address:         "address",
	LocalidadID:     "localidadid",
	LocalidadNombre: "localidadnombre",
	Bedrooms:        "bedrooms",
	Bathrooms:       "bathrooms",
	AreaM2:          "aream2",
	Images:          "images",
	Published:       "published",
	Featured:        "featured",
	CreatedAt:       "createdat",
	UpdatedAt:       "updatedat",
	SlugConstraint:  "property_slug_key",
}

// Columns returns all standard column names in scan order
func (t CorePropertyTable) Columns() []string {
	return []string{
		t.ID, t.Slug, t.Title, t.Description, t.TransactionType, t.PropertyType,
		t.Price, t.Currency, t.Address, t.LocalidadID, t.LocalidadNombre,
		t.Bedrooms, t.Bathrooms, t.AreaM2, t.Images, t.Published, t.Featured,
		t.CreatedAt, t.UpdatedAt,
	}
}

package schema

// CoreContactMessageTable represents the 'core.contactmessage' table
type CoreContactMessageTable struct {
	Table      string
	ID         string
	Name       string
	Email      string
	Phone      string
	Message    string
	PropertyID string
	IPAddress  string
	NotifiedAt string
	CreatedAt  string
}

// CoreContactMessage is the schema definition for core.contactmessage
var CoreContactMessage = CoreContactMessageTable{
	Table:      "core.contactmessage",
	ID:         "id",
	Name:       "name",
	Email:      "email",
	Phone:      "phone",
	Message:    "message",
	PropertyID: "propertyid",
	IPAddress:  "ipaddress",
	NotifiedAt: "notifiedat",
	CreatedAt:  "createdat",
}

// Columns returns all standard column names
func (t CoreContactMessageTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.Email, t.Phone, t.Message, t.PropertyID,
		t.IPAddress, t.NotifiedAt, t.CreatedAt,
	}
}

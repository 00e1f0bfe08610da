package schema

// UserAdminTable represents the 'users.admin' table
type UserAdminTable struct {
	Table       string
	ID          string
	Email       string
	Password    string
	DisplayName string
	Role        string
	IsActive    string
	LastLoginAt string
	CreatedAt   string
	UpdatedAt   string

	// EmailConstraint is the unique constraint guarding Email
	EmailConstraint string
}

// UserAdmin is the schema definition for users.admin
var UserAdmin = UserAdminTable{
	Table:       "users.admin",
	ID:          "id",
	Email:       "email",
	Password:    "passwordhash",
	DisplayName: "displayname",
	Role:        "role",
	IsActive:    "isactive",
	LastLoginAt: "lastloginat",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",

	EmailConstraint: "admin_email_key",
}

// Columns returns all standard column names
func (t UserAdminTable) Columns() []string {
	return []string{
		t.ID, t.Email, t.Password, t.DisplayName, t.Role,
		t.IsActive, t.LastLoginAt, t.CreatedAt, t.UpdatedAt,
	}
}

package model

type UserRole string

const (
	Participant UserRole = "participant"
	Admin       UserRole = "admin"
)

// User is a registered team account. Usernames are stored lowercase and the
// unique index is what makes registration race-safe.
//
// DeviceID holds the single active device for the account; a login from a
// new device overwrites it, which invalidates every token minted for the
// old one (the auth middleware re-checks this column on each request).
//
// swagger:model User
type User struct {
	BaseModel
	Username string   `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Password string   `gorm:"size:100;not null" json:"-"`
	Role     UserRole `gorm:"type:enum('participant','admin');default:'participant'" json:"role"`
	DeviceID *string  `gorm:"size:100" json:"-"`
	Points   int      `gorm:"default:0" json:"points"`
}

func (User) TableName() string {
	return "users"
}

package types

import "time"

// Email address types.
const (
	EmailTypePersonal = "personal"
	EmailTypeWork     = "work"
	EmailTypeOther    = "other"
)

// Phone number types.
const (
	PhoneTypeMobile = "mobile"
	PhoneTypeHome   = "home"
	PhoneTypeWork   = "work"
	PhoneTypeOther  = "other"
)

// Postal address types.
const (
	AddressTypeHome  = "home"
	AddressTypeWork  = "work"
	AddressTypeOther = "other"
)

// Contact is a user-owned address-book entry composed of three child
// collections, each stored in its own table and cascading on contact delete.
// Tags is persisted as a single JSON-encoded text column, not normalized.
//
// Nothing caps child membership or enforces a single primary per collection;
// multiple rows marked primary at once are accepted.
type Contact struct {
	ID        string // UUID v7, generated on creation.
	UserID    string // Owner; contact rows cascade when the owner is deleted.
	Name      string
	Tags      []string
	Emails    []EmailAddress
	Phones    []PhoneNumber
	Addresses []ContactAddress
	IsSystem  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EmailAddress is a child record of a Contact.
type EmailAddress struct {
	ID        string
	ContactID string
	Email     string
	Type      string // EmailTypePersonal, EmailTypeWork, or EmailTypeOther.
	IsPrimary bool
	Tags      []string
	IsSystem  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PhoneNumber is a child record of a Contact.
type PhoneNumber struct {
	ID        string
	ContactID string
	Number    string
	Type      string // PhoneTypeMobile, PhoneTypeHome, PhoneTypeWork, or PhoneTypeOther.
	IsPrimary bool
	Tags      []string
	IsSystem  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ContactAddress is a child record of a Contact.
type ContactAddress struct {
	ID         string
	ContactID  string
	Street     string
	City       string
	State      string
	PostalCode string
	Country    string
	Type       string // AddressTypeHome, AddressTypeWork, or AddressTypeOther.
	IsPrimary  bool
	Tags       []string
	IsSystem   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

package types

// Customer identifies the buyer attached to an order. Identity is by ID;
// the name fields exist purely for display.
type Customer struct {
	ID        int64   `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
}

package domain

// User represents the Discord account that invoked a command
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Bot      bool   `json:"bot"`
}

// String renders the user the way command logs refer to them
func (u User) String() string {
	if u.Username == "" {
		return u.ID
	}
	return u.Username
}

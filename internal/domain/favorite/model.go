package favorite

import "time"

// User is a dashboard account. Authentication lives outside this service;
// only the identity and its followed teams are stored here.
type User struct {
	ID        int64
	Username  string
	CreatedAt time.Time
}

// Favorite links a user to a followed team.
type Favorite struct {
	UserID    int64
	TeamID    int64
	CreatedAt time.Time
}

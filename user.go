package trailhead

import "time"

// A User is the authenticated person as the backend reports them.
//
// The backend owns the record; trailhead only ever holds a projection of it
// for the lifetime of a request.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// GetID retrieves the backend's identifier for the User.
func (u User) GetID() string { return u.ID }

// GetEmail retrieves the email address of the User.
func (u User) GetEmail() string { return u.Email }

// HomePath returns the relative URL path designated
// as the landing page for an authenticated User.
func (u User) HomePath() string { return "/dashboard" }

// A UserPatch carries the fields of a User a person may change about themselves.
// Zero-value fields are left untouched.
type UserPatch struct {
	Name string `json:"name" schema:"name" label:"Name" validate:"required,min=2,max=100"`
}

// Apply merges the non-zero fields of p into u.
func (p UserPatch) Apply(u User) User {
	if p.Name != "" {
		u.Name = p.Name
	}

	return u
}

// A UserListItem is a row in the paginated list of all users.
type UserListItem struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	RegistrationDate    int64  `json:"registrationDate"`
	TotalLoginCount     int    `json:"totalLoginCount"`
	LastActiveTimestamp *int64 `json:"lastActiveTimestamp"`
}

// RegisteredAt converts RegistrationDate, milliseconds since the epoch, into a time.Time.
func (u UserListItem) RegisteredAt() time.Time { return time.UnixMilli(u.RegistrationDate).UTC() }

// LastActiveAt converts LastActiveTimestamp into a time.Time.
// The zero time.Time returns if the user was never active.
func (u UserListItem) LastActiveAt() time.Time {
	if u.LastActiveTimestamp == nil {
		return time.Time{}
	}

	return time.UnixMilli(*u.LastActiveTimestamp).UTC()
}

// A UserPage is one page of UserListItems and the total number of users.
type UserPage struct {
	Data  []UserListItem `json:"data"`
	Total int            `json:"total"`
}

// UserStats are aggregate usage numbers shown on the dashboard.
type UserStats struct {
	UserSignUp           int     `json:"userSignUp"`
	TodaysActiveSession  int     `json:"todaysActiveSession"`
	Average7dActiveUsers float64 `json:"average7dActiveUsers"`
}

// A PasswordStatus reports whether a User may use password sign-in
// and whether they already set a password.
type PasswordStatus struct {
	AllowPassword   bool `json:"allowPassword"`
	PasswordEnabled bool `json:"passwordEnabled"`
}

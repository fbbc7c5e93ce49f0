package domain

// Activity is one extracurricular offering, stored as a single document in
// the activities collection and keyed by its unique name.
type Activity struct {
	Name            string   `bson:"name" json:"name"`
	Description     string   `bson:"description" json:"description"`
	Schedule        string   `bson:"schedule" json:"schedule"`
	MaxParticipants int      `bson:"max_participants" json:"max_participants"`
	Participants    []string `bson:"participants" json:"participants"`
}

// HasParticipant reports whether the email is already on the roster.
func (a Activity) HasParticipant(email string) bool {
	for _, participant := range a.Participants {
		if participant == email {
			return true
		}
	}
	return false
}

package domain

// Email identifies a participant. It is the only participant identity.
type Email = string

// Activity is an extracurricular offering with a capacity and an ordered
// list of enrolled participants. The order is whatever the server returns.
type Activity struct {
	Name            string
	Description     string
	Schedule        string
	MaxParticipants int
	Participants    []Email
}

// SpotsLeft is capacity minus enrollment. It is not clamped: inconsistent
// data yields a negative number.
func (a Activity) SpotsLeft() int {
	return a.MaxParticipants - len(a.Participants)
}

func (a Activity) HasParticipant(email Email) bool {
	for _, p := range a.Participants {
		if p == email {
			return true
		}
	}
	return false
}

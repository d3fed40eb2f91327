// Package storage defines the activity store contract shared by the memory
// and postgres back-ends.
package storage

import (
	"context"
	"errors"

	"github.com/mergington/activities/shared/domain"
)

var (
	ErrNotFound          = errors.New("activity not found")
	ErrAlreadyRegistered = errors.New("participant already registered")
	ErrFull              = errors.New("activity is full")
	ErrNotRegistered     = errors.New("participant not registered")
)

// Storage keeps activities in a stable order. AddParticipant checks, in this
// order, that the activity exists, that email is not enrolled yet and that a
// spot is left, atomically with the insert.
type Storage interface {
	Activities(ctx context.Context) ([]domain.Activity, error)
	AddParticipant(ctx context.Context, activity string, email domain.Email) error
	RemoveParticipant(ctx context.Context, activity string, email domain.Email) error
	Ping(ctx context.Context) error
	Cleanup() error
}

// Seed returns the activities a fresh store starts with.
func Seed() []domain.Activity {
	return []domain.Activity{
		{
			Name:            "Chess Club",
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 12,
			Participants:    []domain.Email{"michael@mergington.edu", "daniel@mergington.edu"},
		},
		{
			Name:            "Programming Class",
			Description:     "Learn programming fundamentals and build software projects",
			Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 20,
			Participants:    []domain.Email{"emma@mergington.edu", "sophia@mergington.edu"},
		},
		{
			Name:            "Gym Class",
			Description:     "Physical education and sports activities",
			Schedule:        "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
			MaxParticipants: 30,
			Participants:    []domain.Email{"john@mergington.edu", "olivia@mergington.edu"},
		},
		{
			Name:            "Soccer Team",
			Description:     "Join the school soccer team for practices and matches",
			Schedule:        "Tuesdays and Thursdays, 5:00 PM - 7:00 PM",
			MaxParticipants: 25,
			Participants:    []domain.Email{"liam@mergington.edu", "ava@mergington.edu"},
		},
		{
			Name:            "Basketball Club",
			Description:     "Pickup games and skill development for basketball players",
			Schedule:        "Wednesdays and Fridays, 4:00 PM - 6:00 PM",
			MaxParticipants: 20,
			Participants:    []domain.Email{"noah@mergington.edu", "isabella@mergington.edu"},
		},
		{
			Name:            "Art Club",
			Description:     "Explore drawing, painting, and mixed media projects",
			Schedule:        "Mondays, 3:30 PM - 5:00 PM",
			MaxParticipants: 18,
			Participants:    []domain.Email{"mia@mergington.edu", "charlotte@mergington.edu"},
		},
		{
			Name:            "Drama Club",
			Description:     "Acting, stagecraft, and school theater productions",
			Schedule:        "Thursdays, 4:00 PM - 6:30 PM",
			MaxParticipants: 30,
			Participants:    []domain.Email{"amelia@mergington.edu", "harper@mergington.edu"},
		},
		{
			Name:            "Science Olympiad",
			Description:     "Prepare for science competitions and hands-on challenges",
			Schedule:        "Wednesdays, 3:30 PM - 5:30 PM",
			MaxParticipants: 24,
			Participants:    []domain.Email{"lucas@mergington.edu", "grace@mergington.edu"},
		},
		{
			Name:            "Debate Team",
			Description:     "Practice argumentation, public speaking, and competitive debates",
			Schedule:        "Fridays, 4:00 PM - 5:30 PM",
			MaxParticipants: 16,
			Participants:    []domain.Email{"henry@mergington.edu", "evelyn@mergington.edu"},
		},
	}
}

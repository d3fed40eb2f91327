package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/mergington/activities/backend/internal/storage"
	"github.com/mergington/activities/shared/domain"
	internal_errors "github.com/mergington/activities/shared/errors"
)

// to mock service in tests
type ActivityService interface {
	List(ctx context.Context) ([]domain.Activity, error)
	Signup(ctx context.Context, activity string, email domain.Email) (string, error)
	Unregister(ctx context.Context, activity string, email domain.Email) (string, error)
}

type ActivityStorage interface {
	Activities(ctx context.Context) ([]domain.Activity, error)
	AddParticipant(ctx context.Context, activity string, email domain.Email) error
	RemoveParticipant(ctx context.Context, activity string, email domain.Email) error
}

type Activity struct {
	storage  ActivityStorage
	validate *validator.Validate
}

func NewActivity(storage ActivityStorage) ActivityService {
	return &Activity{storage: storage, validate: validator.New()}
}

func (a *Activity) List(ctx context.Context) ([]domain.Activity, error) {
	return a.storage.Activities(ctx)
}

func (a *Activity) Signup(ctx context.Context, activity string, email domain.Email) (string, error) {
	if err := a.validateEmail(email); err != nil {
		return "", err
	}
	if err := a.storage.AddParticipant(ctx, activity, email); err != nil {
		return "", storageError(err)
	}
	return fmt.Sprintf("Signed up %s for %s", email, activity), nil
}

func (a *Activity) Unregister(ctx context.Context, activity string, email domain.Email) (string, error) {
	if err := a.validateEmail(email); err != nil {
		return "", err
	}
	if err := a.storage.RemoveParticipant(ctx, activity, email); err != nil {
		return "", storageError(err)
	}
	return fmt.Sprintf("Unregistered %s from %s", email, activity), nil
}

func (a *Activity) validateEmail(email domain.Email) error {
	if email == "" {
		return internal_errors.Unprocessable("Email is required")
	}
	if err := a.validate.Var(email, "email"); err != nil {
		return internal_errors.Unprocessable("Invalid email address")
	}
	return nil
}

// storageError turns store sentinels into the API's answers. Anything else
// is passed through and becomes a 500.
func storageError(err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return internal_errors.NotFound("Activity not found")
	case errors.Is(err, storage.ErrAlreadyRegistered):
		return internal_errors.BadRequest("Student is already signed up")
	case errors.Is(err, storage.ErrFull):
		return internal_errors.BadRequest("Activity is full")
	case errors.Is(err, storage.ErrNotRegistered):
		return internal_errors.BadRequest("Student is not registered for this activity")
	default:
		return err
	}
}

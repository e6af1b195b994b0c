package service

import (
	"context"
	"errors"
	"time"

	rentalerrors "campusmove/internal/rentals/errors"
	"campusmove/internal/rentals/events"
	"campusmove/internal/rentals/repository"
	"campusmove/internal/rentals/validator"
	"campusmove/pkg/config"
	apperrors "campusmove/pkg/errors"
	"campusmove/pkg/metrics"
	"campusmove/pkg/middleware"
	"campusmove/pkg/model"
	"campusmove/pkg/sanitizer"
)

const (
	MessageRented          = "Location added successfully"
	messageRentalNotFound  = "Rental item not found"
	messageItemUnavailable = "Item not available for rent"
	messageUserNotFound    = "User not found"
	messageInternal        = "Internal server error"

	publishTimeout = 5 * time.Second
)

const (
	outcomeRented         = "rented"
	outcomeRentalNotFound = "rental_not_found"
	outcomeUnavailable    = "unavailable"
	outcomeUserNotFound   = "user_not_found"
	outcomeInvalid        = "invalid"
	outcomeError          = "error"
)

type RentalService interface {
	Rent(ctx context.Context, req *model.RentRequest) error
}

type rentalService struct {
	repo      repository.RentalRepository
	validator *validator.RentValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewRentalService(
	repo repository.RentalRepository,
	validator *validator.RentValidator,
	publisher events.Publisher,
	cfg *config.Config,
) RentalService {
	if publisher == nil {
		publisher = events.NewNoopPublisher()
	}
	return &rentalService{
		repo:      repo,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

// Rent takes one unit of the rental item and records the item and location
// on the user. In transactional mode a missing user rolls the decrement back;
// in sequential mode the decrement stays and is reported as a partial write.
func (s *rentalService) Rent(ctx context.Context, req *model.RentRequest) error {
	s.sanitize(req)

	if err := s.validator.Validate(req); err != nil {
		s.cfg.Log.Warn("Rent request validation failed",
			"rental_id", req.RentalID,
			"user_id", req.UserID,
			"error", err,
		)
		metrics.RecordRental(outcomeInvalid)
		return apperrors.InvalidInput("Invalid rent request").WithDetails(map[string]any{
			"error": err.Error(),
		})
	}

	var remaining int
	decremented := false
	err := s.repo.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		decremented = false
		left, err := s.repo.DecrementAvailability(txCtx, req.RentalID)
		if err != nil {
			return err
		}
		remaining = left
		decremented = true
		return s.repo.AssignToUser(txCtx, req.UserID, req.Item, req.Location)
	})
	if err != nil {
		if decremented && s.cfg.RentConsistency == config.RentConsistencySequential {
			metrics.RentalPartialWrites.Inc()
			s.cfg.Log.Warn("Availability decremented but user update failed",
				"rental_id", req.RentalID,
				"user_id", req.UserID,
				"error", err,
			)
		}
		return s.translateError(req, err)
	}

	metrics.RecordRental(outcomeRented)
	s.cfg.Log.Info("Rental recorded",
		"rental_id", req.RentalID,
		"user_id", req.UserID,
		"remaining", remaining,
	)
	s.publish(ctx, req, remaining)
	return nil
}

func (s *rentalService) translateError(req *model.RentRequest, err error) error {
	switch {
	case errors.Is(err, rentalerrors.ErrRentalNotFound):
		metrics.RecordRental(outcomeRentalNotFound)
		s.cfg.Log.Warn("Rental item not found", "rental_id", req.RentalID)
		return apperrors.NotFound(messageRentalNotFound)
	case errors.Is(err, rentalerrors.ErrItemUnavailable):
		metrics.RecordRental(outcomeUnavailable)
		s.cfg.Log.Warn("Rental item not available", "rental_id", req.RentalID)
		return apperrors.ItemUnavailable(messageItemUnavailable)
	case errors.Is(err, rentalerrors.ErrUserNotFound):
		metrics.RecordRental(outcomeUserNotFound)
		s.cfg.Log.Warn("User not found", "user_id", req.UserID, "rental_id", req.RentalID)
		return apperrors.NotFound(messageUserNotFound)
	case apperrors.IsAppError(err):
		metrics.RecordRental(outcomeError)
		return err
	default:
		metrics.RecordRental(outcomeError)
		s.cfg.Log.Error("Failed to record rental",
			"rental_id", req.RentalID,
			"user_id", req.UserID,
			"error", err,
		)
		return apperrors.Internal(messageInternal, err)
	}
}

// publish never fails the rental; the write has already committed.
func (s *rentalService) publish(ctx context.Context, req *model.RentRequest, remaining int) {
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	evt := model.RentalCreated{
		RentalID:     req.RentalID,
		UserID:       req.UserID,
		Item:         req.Item,
		Location:     req.Location,
		Availability: remaining,
		Consistency:  s.cfg.RentConsistency,
	}
	if err := s.publisher.PublishRentalCreated(pubCtx, evt, middleware.RequestIDFromContext(ctx)); err != nil {
		s.cfg.Log.Error("Failed to publish rental event",
			"rental_id", req.RentalID,
			"user_id", req.UserID,
			"error", err,
		)
	}
}

func (s *rentalService) sanitize(req *model.RentRequest) {
	req.RentalID = sanitizer.NormalizeID(req.RentalID)
	req.UserID = sanitizer.NormalizeID(req.UserID)
	if item, ok := req.Item.(string); ok {
		req.Item = sanitizer.TrimAndNormalize(item)
	}
}

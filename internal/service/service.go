package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/staynest/rental-service/internal/auth"
	"github.com/staynest/rental-service/internal/config"
	"github.com/staynest/rental-service/internal/events"
	"github.com/staynest/rental-service/internal/repository"
)

// Dependencies encapsulates what every resource service needs.
type Dependencies struct {
	Repos      repository.Repositories
	Tokens     *auth.TokenManager
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// Services bundles the resource services handed to the HTTP layer.
type Services struct {
	Auth       *AuthService
	Users      *UserService
	Hosts      *HostService
	Properties *PropertyService
	Amenities  *AmenityService
	Bookings   *BookingService
	Reviews    *ReviewService
}

// New wires every service around one shared Guard.
func New(cfg config.Config, deps Dependencies) *Services {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Dispatcher == nil {
		deps.Dispatcher = events.NewInMemoryDispatcher(deps.Logger)
	}
	guard := NewGuard(deps.Repos)
	pub := publisher{dispatcher: deps.Dispatcher}
	return &Services{
		Auth:       NewAuthService(deps.Repos.Users, deps.Tokens, deps.Logger),
		Users:      &UserService{users: deps.Repos.Users, guard: guard, pub: pub, bcryptCost: cfg.Auth.BcryptCost},
		Hosts:      &HostService{hosts: deps.Repos.Hosts, guard: guard, pub: pub, bcryptCost: cfg.Auth.BcryptCost},
		Properties: &PropertyService{properties: deps.Repos.Properties, guard: guard, pub: pub},
		Amenities:  &AmenityService{amenities: deps.Repos.Amenities, guard: guard, pub: pub},
		Bookings:   &BookingService{bookings: deps.Repos.Bookings, guard: guard, pub: pub},
		Reviews:    &ReviewService{reviews: deps.Repos.Reviews, guard: guard, pub: pub},
	}
}

type publisher struct {
	dispatcher events.Dispatcher
}

// emit announces a committed mutation. Subscribers never fail the request.
func (p publisher) emit(ctx context.Context, resource, action, id string, actor *auth.Principal, payload any) {
	if p.dispatcher == nil {
		return
	}
	actorID := ""
	if actor != nil {
		actorID = actor.UserID
	}
	_ = p.dispatcher.Publish(ctx, events.NewEvent(resource, action, id, actorID, payload))
}

package service

import (
	"staybook/internal/messaging"
	redisx "staybook/internal/redis"
	"staybook/internal/repository"
	redisrepo "staybook/internal/repository/redis"
	"staybook/internal/service/booking"
	"staybook/internal/service/property"
	"staybook/internal/service/user"
)

type Services struct {
	Booking  *booking.Service
	Property *property.Service
	User     *user.Service
}

type Config struct {
	Booking  booking.Config
	Property property.Config
	User     user.Config
}

func NewServices(
	store repository.Store,
	uow repository.UnitOfWork,
	cache *redisrepo.Cache,
	pubsub *redisx.PropertiesPubSub,
	limiter *redisrepo.SlidingWindowLimiter,
	events *messaging.Producer,
	cfg Config,
) *Services {
	return &Services{
		Booking:  booking.New(store, uow, cache, pubsub, limiter, events, cfg.Booking),
		Property: property.New(store, cache, cfg.Property),
		User:     user.New(store, cfg.User),
	}
}

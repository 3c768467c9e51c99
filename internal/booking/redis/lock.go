package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Redis holds seat locks taken at confirmation time. Keys are scoped
// to the trip so seat "12" on two different departures never collides.
type Redis struct {
	Client  *redis.Client
	LockTTL time.Duration
}

func NewRedis(client *redis.Client, lockTTL time.Duration) *Redis {
	if lockTTL <= 0 {
		lockTTL = 5 * time.Minute
	}
	return &Redis{Client: client, LockTTL: lockTTL}
}

func lockKey(tripID, seatNumber string) string {
	return fmt.Sprintf("seat_lock:%s:%s", tripID, seatNumber)
}

// LockSeat takes a single seat lock. Returns false when someone else
// holds it.
func (r *Redis) LockSeat(tripID, seatNumber, orderID string) (bool, error) {
	return r.Client.SetNX(context.Background(), lockKey(tripID, seatNumber), orderID, r.LockTTL).Result()
}

// UnlockSeat releases a seat only if this order holds it.
func (r *Redis) UnlockSeat(tripID, seatNumber, orderID string) error {
	ctx := context.Background()
	key := lockKey(tripID, seatNumber)
	val, err := r.Client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil // already unlocked
	}
	if err != nil {
		return err
	}
	if val == orderID {
		_, err := r.Client.Del(ctx, key).Result()
		return err
	}
	return nil
}

// LockSeats locks every seat or none: a partial failure rolls back the
// locks already taken.
func (r *Redis) LockSeats(tripID string, seatNumbers []string, orderID string) (bool, error) {
	locked := []string{}
	for _, seatNumber := range seatNumbers {
		ok, err := r.LockSeat(tripID, seatNumber, orderID)
		if err != nil {
			for _, l := range locked {
				_ = r.UnlockSeat(tripID, l, orderID)
			}
			return false, err
		}
		if !ok {
			for _, l := range locked {
				_ = r.UnlockSeat(tripID, l, orderID)
			}
			return false, nil
		}
		locked = append(locked, seatNumber)
	}
	return true, nil
}

// UnlockSeats releases all seats, returning the first error seen.
func (r *Redis) UnlockSeats(tripID string, seatNumbers []string, orderID string) error {
	var firstErr error
	for _, seatNumber := range seatNumbers {
		if err := r.UnlockSeat(tripID, seatNumber, orderID); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

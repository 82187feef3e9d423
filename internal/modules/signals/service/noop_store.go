package service

import (
	"context"

	"signal_bot/internal/models"
)

// NoopStore keeps nothing. Used when no database is configured and in tests.
type NoopStore struct{}

func NewNoopStore() *NoopStore { return &NoopStore{} }

func (NoopStore) SaveActive(context.Context, *models.Signal) error     { return nil }
func (NoopStore) DeleteActive(context.Context, string) error           { return nil }
func (NoopStore) SaveClosed(context.Context, models.Signal) error      { return nil }
func (NoopStore) LoadActive(context.Context) ([]*models.Signal, error) { return nil, nil }

package service

import (
	"context"

	"equipment-rental-manager/internal/domain"
	"equipment-rental-manager/internal/lifecycle"
	"equipment-rental-manager/internal/logger"
)

type settingsService struct {
	ws *Workspace
}

func NewSettingsService(ws *Workspace) SettingsService {
	return &settingsService{ws: ws}
}

func (s *settingsService) GetSettings(ctx context.Context) (domain.Settings, error) {
	db, err := s.ws.Snapshot(ctx)
	if err != nil {
		return domain.Settings{}, err
	}
	return db.Settings, nil
}

func (s *settingsService) UpdateSettings(ctx context.Context, in domain.Settings) (domain.Settings, error) {
	logger.EnterMethod("settingsService.UpdateSettings", "language", in.Language)

	var saved domain.Settings
	_, _, err := s.ws.Apply(ctx, "UpdateSettings", func(db domain.Database) (domain.Database, bool, error) {
		next, out, err := lifecycle.SaveSettings(db, in)
		saved = out
		return next, err == nil, err
	})
	if err != nil {
		logger.ExitMethodWithError("settingsService.UpdateSettings", err)
		return domain.Settings{}, err
	}

	logger.ExitMethod("settingsService.UpdateSettings", "next_invoice_number", saved.NextInvoiceNumber)
	return saved, nil
}

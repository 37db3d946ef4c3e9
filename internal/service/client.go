package service

import (
	"context"

	"equipment-rental-manager/internal/domain"
	"equipment-rental-manager/internal/lifecycle"
	"equipment-rental-manager/internal/logger"
)

type clientService struct {
	ws *Workspace
}

func NewClientService(ws *Workspace) ClientService {
	return &clientService{ws: ws}
}

func (s *clientService) ListClients(ctx context.Context) ([]domain.Client, error) {
	db, err := s.ws.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return db.Clients, nil
}

func (s *clientService) GetClient(ctx context.Context, id int) (domain.Client, error) {
	db, err := s.ws.Snapshot(ctx)
	if err != nil {
		return domain.Client{}, err
	}
	c, ok := db.FindClient(id)
	if !ok {
		return domain.Client{}, &domain.NotFoundError{Entity: "client", ID: id}
	}
	return c, nil
}

func (s *clientService) CreateClient(ctx context.Context, c domain.Client) (domain.Client, error) {
	c.ID = 0
	return s.save(ctx, "CreateClient", c)
}

func (s *clientService) UpdateClient(ctx context.Context, c domain.Client) (domain.Client, error) {
	if c.ID <= 0 {
		return domain.Client{}, &domain.NotFoundError{Entity: "client", ID: c.ID}
	}
	return s.save(ctx, "UpdateClient", c)
}

func (s *clientService) save(ctx context.Context, method string, c domain.Client) (domain.Client, error) {
	logger.EnterMethod("clientService."+method, "client_id", c.ID)

	var saved domain.Client
	_, changed, err := s.ws.Apply(ctx, method, func(db domain.Database) (domain.Database, bool, error) {
		next, out, changed, err := lifecycle.SaveClient(db, c)
		saved = out
		return next, changed, err
	})
	if err == nil && !changed {
		err = &domain.NotFoundError{Entity: "client", ID: c.ID}
	}
	if err != nil {
		logger.ExitMethodWithError("clientService."+method, err)
		return domain.Client{}, err
	}

	logger.ExitMethod("clientService."+method, "client_id", saved.ID)
	return saved, nil
}

// DeleteClient removes the client; its rentals keep the dangling reference.
func (s *clientService) DeleteClient(ctx context.Context, id int) error {
	logger.EnterMethod("clientService.DeleteClient", "client_id", id)

	_, changed, err := s.ws.Apply(ctx, "DeleteClient", func(db domain.Database) (domain.Database, bool, error) {
		next, changed := lifecycle.DeleteClient(db, id)
		return next, changed, nil
	})
	if err == nil && !changed {
		err = &domain.NotFoundError{Entity: "client", ID: id}
	}
	if err != nil {
		logger.ExitMethodWithError("clientService.DeleteClient", err)
		return err
	}

	logger.ExitMethod("clientService.DeleteClient")
	return nil
}

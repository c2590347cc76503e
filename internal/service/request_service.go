package service

import (
	"context"
	"strings"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type RequestService struct {
	repo   domain.Repository
	logger *zerolog.Logger
}

func NewRequestService(repo domain.Repository, logger *zerolog.Logger) *RequestService {
	return &RequestService{repo: repo, logger: logger}
}

// Save files a new item request for the caller.
func (s *RequestService) Save(ctx context.Context, requesterID int64, description string) (*models.ItemRequest, error) {
	if _, err := s.repo.GetUserByID(ctx, requesterID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(description) == "" {
		return nil, ErrEmptyDescription
	}

	request := &models.ItemRequest{
		Description: description,
		RequesterID: requesterID,
		Items:       []models.Item{},
	}
	if err := s.repo.CreateRequest(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

// FindByID returns a request with the items offered against it. Any
// existing user may look a request up.
func (s *RequestService) FindByID(ctx context.Context, callerID, requestID int64) (*models.ItemRequest, error) {
	if _, err := s.repo.GetUserByID(ctx, callerID); err != nil {
		return nil, err
	}

	request, err := s.repo.GetRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if err := s.attachItems(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

// FindAllOwn lists the caller's own requests, newest first.
func (s *RequestService) FindAllOwn(ctx context.Context, requesterID int64) ([]*models.ItemRequest, error) {
	if _, err := s.repo.GetUserByID(ctx, requesterID); err != nil {
		return nil, err
	}

	requests, err := s.repo.GetRequestsByRequester(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	for _, request := range requests {
		if err := s.attachItems(ctx, request); err != nil {
			return nil, err
		}
	}
	return requests, nil
}

// FindAllFromOthers pages through requests filed by other users.
func (s *RequestService) FindAllFromOthers(ctx context.Context, callerID int64, from, size int) ([]*models.ItemRequest, error) {
	if _, err := s.repo.GetUserByID(ctx, callerID); err != nil {
		return nil, err
	}

	page, err := NormalizePage(from, size)
	if err != nil {
		return nil, err
	}

	requests, err := s.repo.GetRequestsFromOthers(ctx, callerID, page)
	if err != nil {
		return nil, err
	}

	for _, request := range requests {
		if err := s.attachItems(ctx, request); err != nil {
			return nil, err
		}
	}
	return requests, nil
}

func (s *RequestService) attachItems(ctx context.Context, request *models.ItemRequest) error {
	items, err := s.repo.GetItemsByRequestID(ctx, request.ID)
	if err != nil {
		return err
	}

	request.Items = make([]models.Item, 0, len(items))
	for _, item := range items {
		request.Items = append(request.Items, *item)
	}
	return nil
}

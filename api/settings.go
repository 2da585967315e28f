package api

import (
	"context"
	"net/http"

	"github.com/zahabco/gold-dashboard/models"
)

// SettingsService wraps the /settings endpoints: store display details and
// the open/closed market flag.
type SettingsService struct {
	client *Client
}

func NewSettingsService(client *Client) *SettingsService {
	return &SettingsService{client: client}
}

// StoreInfo returns the shop's display details.
func (s *SettingsService) StoreInfo(ctx context.Context) (models.StoreInfo, error) {
	var info models.StoreInfo
	payload, err := s.client.RequestWithRetry(ctx, http.MethodGet, "/settings/store", nil, nil)
	if err != nil {
		return info, err
	}
	err = unwrap(payload, &info)
	return info, err
}

// MarketStatus returns the open/closed flag.
func (s *SettingsService) MarketStatus(ctx context.Context) (models.MarketStatus, error) {
	var status models.MarketStatus
	payload, err := s.client.RequestWithRetry(ctx, http.MethodGet, "/settings/market-status", nil, nil)
	if err != nil {
		return status, err
	}
	err = unwrap(payload, &status)
	return status, err
}

// UpdateStoreInfo replaces the shop's display details.
func (s *SettingsService) UpdateStoreInfo(ctx context.Context, info models.StoreInfo) (models.StoreInfo, error) {
	var updated models.StoreInfo
	payload, err := s.client.Put(ctx, "/settings/store", info)
	if err != nil {
		return updated, err
	}
	err = unwrap(payload, &updated)
	return updated, err
}

// UpdateMarketStatus flips the open/closed flag.
func (s *SettingsService) UpdateMarketStatus(ctx context.Context, status models.MarketStatus) (models.MarketStatus, error) {
	var updated models.MarketStatus
	payload, err := s.client.Put(ctx, "/settings/market-status", status)
	if err != nil {
		return updated, err
	}
	err = unwrap(payload, &updated)
	return updated, err
}

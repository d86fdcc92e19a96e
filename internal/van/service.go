// Copyright (c) 2026 Vanlife. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package van

import (
	"context"
	"fmt"
	"log/slog"
)

// ImageResolver turns a stored image reference into a URL a browser can load.
type ImageResolver interface {
	ImageURL(ctx context.Context, ref string) (string, error)
}

type Service struct {
	repo   Repository
	images ImageResolver
	logger *slog.Logger
}

// NewService builds the catalogue service. images may be nil, in which case
// references are served as stored.
func NewService(repo Repository, images ImageResolver, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		images: images,
		logger: logger,
	}
}

// ListVans returns the full, unfiltered catalogue. Filtering by type is the
// caller's job, done on this collection in memory.
func (service *Service) ListVans(context context.Context) ([]*Van, error) {
	vans, err := service.repo.ListVans(context)
	if err != nil {
		return nil, err
	}
	return service.resolveAll(context, vans)
}

func (service *Service) GetVan(context context.Context, id string) (*Van, error) {
	v, err := service.repo.GetVan(context, id)
	if err != nil {
		return nil, err
	}
	return service.resolve(context, v)
}

func (service *Service) ListHostVans(context context.Context, hostID string) ([]*Van, error) {
	vans, err := service.repo.ListHostVans(context, hostID)
	if err != nil {
		return nil, err
	}
	return service.resolveAll(context, vans)
}

func (service *Service) GetHostVan(context context.Context, hostID, id string) (*Van, error) {
	v, err := service.repo.GetHostVan(context, hostID, id)
	if err != nil {
		return nil, err
	}
	return service.resolve(context, v)
}

// # Image Resolution

func (service *Service) resolveAll(context context.Context, vans []*Van) ([]*Van, error) {
	resolved := make([]*Van, 0, len(vans))
	for _, v := range vans {
		r, err := service.resolve(context, v)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, r)
	}
	return resolved, nil
}

// resolve returns a copy so repository snapshots are never mutated.
func (service *Service) resolve(context context.Context, v *Van) (*Van, error) {
	if service.images == nil {
		return v, nil
	}

	imageURL, err := service.images.ImageURL(context, v.ImageURL)
	if err != nil {
		service.logger.Error("van_image_resolve_failed",
			slog.String("van_id", v.ID),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("van: resolve image for %s: %w", v.ID, err)
	}

	resolved := *v
	resolved.ImageURL = imageURL
	return &resolved, nil
}

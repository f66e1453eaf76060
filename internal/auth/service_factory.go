package auth

import (
	"context"

	"github.com/dmateos/tagsync/internal/types"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// ServiceFactory builds API service clients from stored credentials
type ServiceFactory struct {
	manager *Manager
}

// NewServiceFactory creates a service factory
func NewServiceFactory(manager *Manager) *ServiceFactory {
	return &ServiceFactory{manager: manager}
}

// CreateDriveService builds a Drive v3 service from the credentials
func (f *ServiceFactory) CreateDriveService(ctx context.Context, creds *types.Credentials) (*drive.Service, error) {
	client := f.manager.GetHTTPClient(ctx, creds)
	return drive.NewService(ctx, option.WithHTTPClient(client))
}

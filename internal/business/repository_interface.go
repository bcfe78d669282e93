package business

import "context"

type Repository interface {
	List(ctx context.Context, filter Filter) ([]Business, int, error)
	FindByID(ctx context.Context, id int) (*BusinessWithImages, error)
	Create(ctx context.Context, req SaveRequest) (*Business, error)
	Update(ctx context.Context, id int, req SaveRequest) (*Business, error)
	Delete(ctx context.Context, id int) ([]string, error)
	AddImage(ctx context.Context, businessID int, filePath string, sortOrder int) (*Image, error)
	UpdateImage(ctx context.Context, imageID, sortOrder int) (*Image, error)
	DeleteImage(ctx context.Context, imageID int) (string, error)
}

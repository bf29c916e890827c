package service

import (
	"context"

	"github.com/xuri/excelize/v2"

	"bookmanager-backend/internal/domains/book/model"
	"bookmanager-backend/internal/shared/response"
)

// ServiceInterface is the catalog service. Expected business conditions
// (bad identifier, duplicate title, not found) travel inside the response
// envelope; the error return is reserved for infrastructure faults, which
// the transport turns into a generic server error.
type ServiceInterface interface {
	List(ctx context.Context, pageNumber, pageSize int) (*response.Response, error)
	Get(ctx context.Context, id int64) (*response.Response, error)
	Create(ctx context.Context, req model.BookRequest) (*response.Response, error)
	Update(ctx context.Context, id int64, req model.BookRequest) (*response.Response, error)
	DeleteImage(ctx context.Context, id int64) (*response.Response, error)
	Delete(ctx context.Context, id int64) (*response.Response, error)
	Export(ctx context.Context) (*excelize.File, error)
}

package issues

import "context"

type Repository interface {
	Create(ctx context.Context, ir IssueReport) error
	Update(ctx context.Context, ir IssueReport) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (IssueReport, error)
	List(ctx context.Context) ([]IssueReport, error)
}

package intake

import (
	"context"
	"mime/multipart"

	"github.com/feichai0017/document-intake/internal/models"
	"github.com/feichai0017/document-intake/pkg/queue"
)

// IntakeService 文档入库服务接口
type IntakeService interface {
	// IntakeFile stores an uploaded document and enqueues it for processing.
	IntakeFile(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*models.IntakeTask, error)
	// IntakeBatch runs IntakeFile for every upload in the form.
	IntakeBatch(ctx context.Context, files []*multipart.FileHeader) ([]*models.IntakeTask, error)
	// ProcessSync runs the pipeline inline and returns the finished record.
	ProcessSync(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*models.Record, error)
	// HandleIntake is the worker-side entry: it processes one queued task.
	HandleIntake(ctx context.Context, task *queue.Task) error
	GetStatus(ctx context.Context, taskID string) (*models.IntakeTask, error)
	GetRecord(ctx context.Context, taskID string) (*models.Record, error)
	CancelTask(ctx context.Context, taskID string) error
}

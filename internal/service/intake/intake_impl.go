package intake

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	cfg "github.com/feichai0017/document-intake/config"
	"github.com/feichai0017/document-intake/internal/models"
	"github.com/feichai0017/document-intake/internal/pipeline"
	"github.com/feichai0017/document-intake/pkg/logger"
	"github.com/feichai0017/document-intake/pkg/queue"
	"github.com/feichai0017/document-intake/pkg/storage"
)

type Service struct {
	processor *pipeline.Processor
	queue     queue.Queue
	storage   storage.Storage
	logger    logger.Logger
	config    *ServiceConfig
}

type ServiceConfig struct {
	MaxFileSize     int64
	AllowedTypes    []string
	QueuePriority   int
	RetentionPeriod time.Duration
}

func defaultConfig() *ServiceConfig {
	return &ServiceConfig{
		MaxFileSize:     50 * 1024 * 1024, // 50MB
		AllowedTypes:    []string{".pdf", ".jpg", ".jpeg", ".png", ".tif", ".tiff", ".txt"},
		QueuePriority:   2,
		RetentionPeriod: 24 * time.Hour,
	}
}

func NewService(
	processor *pipeline.Processor,
	q queue.Queue,
	store storage.Storage,
	log logger.Logger,
	config *ServiceConfig,
) IntakeService {
	if config == nil {
		config = defaultConfig()
	}

	return &Service{
		processor: processor,
		queue:     q,
		storage:   store,
		logger:    log,
		config:    config,
	}
}

// GetService 按环境配置组装入库服务
func GetService(log logger.Logger) (IntakeService, error) {
	store, err := storage.NewStorage(storage.StorageType(cfg.GetStorageConfig().Backend), log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	q, err := queue.GetQueue()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize queue: %w", err)
	}

	processor, err := pipeline.GetProcessor(log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize processor: %w", err)
	}

	return NewService(processor, q, store, log, nil), nil
}

// IntakeFile 接收单个文件
func (s *Service) IntakeFile(
	ctx context.Context,
	file multipart.File,
	header *multipart.FileHeader,
) (*models.IntakeTask, error) {
	s.logger.Info("Starting document intake",
		logger.String("filename", header.Filename),
		logger.Int64("size", header.Size),
	)

	if err := s.validateFile(header); err != nil {
		s.logger.Error("File validation failed",
			logger.String("filename", header.Filename),
			logger.Error(err),
		)
		return nil, err
	}

	taskID := uuid.New().String()
	ext := strings.ToLower(filepath.Ext(header.Filename))

	task := &models.IntakeTask{
		ID:        taskID,
		Status:    models.StatusPending,
		Type:      queue.TaskTypeDocumentIntake,
		Priority:  s.config.QueuePriority,
		Progress:  0,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		Metadata: map[string]string{
			"filename": header.Filename,
			"size":     fmt.Sprintf("%d", header.Size),
			"type":     ext,
		},
	}

	// 保留扩展名，处理端按扩展名识别内容类型
	fileID, err := s.storage.Store(ctx, file, taskID+ext)
	if err != nil {
		s.logger.Error("Failed to store file",
			logger.String("filename", header.Filename),
			logger.Error(err),
		)
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	queueTask := &queue.Task{
		ID:       taskID,
		Type:     task.Type,
		Priority: task.Priority,
		Payload: map[string]interface{}{
			"fileId":   fileID,
			"filename": header.Filename,
		},
		Metadata:  task.Metadata,
		CreatedAt: task.CreatedAt,
	}

	if err := s.queue.Enqueue(ctx, queueTask); err != nil {
		s.logger.Error("Failed to enqueue task",
			logger.String("taskId", taskID),
			logger.Error(err),
		)
		return nil, fmt.Errorf("failed to enqueue task: %w", err)
	}

	initialStatus := &queue.TaskStatus{
		TaskID:    taskID,
		Status:    string(models.StatusPending),
		Progress:  0,
		StartedAt: time.Now(),
	}
	if err := s.queue.SaveStatus(ctx, initialStatus); err != nil {
		s.logger.Error("Failed to save initial status",
			logger.String("taskId", taskID),
			logger.Error(err),
		)
	}

	s.logger.Info("Intake task created",
		logger.String("taskId", taskID),
		logger.String("filename", header.Filename),
	)

	return task, nil
}

// IntakeBatch 批量接收文件
func (s *Service) IntakeBatch(ctx context.Context, files []*multipart.FileHeader) ([]*models.IntakeTask, error) {
	tasks := make([]*models.IntakeTask, 0, len(files))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for _, header := range files {
		header := header
		g.Go(func() error {
			file, err := header.Open()
			if err != nil {
				return fmt.Errorf("failed to open file %s: %w", header.Filename, err)
			}
			defer file.Close()

			task, err := s.IntakeFile(ctx, file, header)
			if err != nil {
				return fmt.Errorf("failed to intake file %s: %w", header.Filename, err)
			}

			mu.Lock()
			tasks = append(tasks, task)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return tasks, err
	}
	return tasks, nil
}

// ProcessSync 同步处理，不经过队列
func (s *Service) ProcessSync(
	ctx context.Context,
	file multipart.File,
	header *multipart.FileHeader,
) (*models.Record, error) {
	if err := s.validateFile(header); err != nil {
		return nil, err
	}

	path, cleanup, err := spoolToDisk(file, filepath.Ext(header.Filename))
	if err != nil {
		return nil, err
	}
	defer cleanup()

	rec := s.processor.Process(ctx, path)
	// 临时路径对调用方没有意义
	rec.Path = header.Filename
	return &rec, nil
}

// HandleIntake 处理队列中的入库任务
func (s *Service) HandleIntake(ctx context.Context, task *queue.Task) error {
	if task == nil || task.Payload == nil || task.Metadata == nil {
		return fmt.Errorf("invalid task: missing required data")
	}

	s.logger.Info("Processing intake task",
		logger.String("taskId", task.ID),
		logger.String("filename", task.Metadata["filename"]),
	)

	fileID, ok := task.Payload["fileId"].(string)
	if !ok || fileID == "" {
		return fmt.Errorf("invalid task: missing fileId")
	}

	reader, err := s.storage.Get(ctx, fileID)
	if err != nil {
		s.failTask(ctx, task, err)
		return fmt.Errorf("failed to get file: %w", err)
	}
	defer reader.Close()

	path, cleanup, err := spoolToDisk(reader, filepath.Ext(fileID))
	if err != nil {
		s.failTask(ctx, task, err)
		return err
	}
	defer cleanup()

	rec := s.processor.Process(ctx, path)
	rec.Path = task.Metadata["filename"]

	data, err := json.Marshal(rec)
	if err != nil {
		s.failTask(ctx, task, err)
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	if _, err := s.storage.Store(ctx, bytes.NewReader(data), recordKey(task.ID)); err != nil {
		s.failTask(ctx, task, err)
		return fmt.Errorf("failed to store record: %w", err)
	}

	s.logger.Info("Intake task completed",
		logger.String("taskId", task.ID),
		logger.String("class", string(rec.Class)),
		logger.String("route", string(rec.Route)),
	)

	finalStatus := &queue.TaskStatus{
		TaskID:     task.ID,
		Status:     string(models.StatusCompleted),
		Progress:   1.0,
		StartedAt:  task.CreatedAt,
		FinishedAt: time.Now(),
	}
	if err := s.queue.SaveStatus(ctx, finalStatus); err != nil {
		s.logger.Error("Failed to save final status",
			logger.String("taskId", task.ID),
			logger.Error(err),
		)
	}

	return nil
}

// GetStatus 查询任务状态
func (s *Service) GetStatus(ctx context.Context, taskID string) (*models.IntakeTask, error) {
	status, err := s.queue.GetTaskStatus(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task status: %w", err)
	}

	var taskStatus models.IntakeStatus
	switch status.Status {
	case "pending":
		taskStatus = models.StatusPending
	case "running", "active":
		taskStatus = models.StatusRunning
	case "completed":
		taskStatus = models.StatusCompleted
	case "failed":
		taskStatus = models.StatusFailed
	case "cancelled":
		taskStatus = models.StatusCancelled
	default:
		taskStatus = models.StatusPending
	}

	return &models.IntakeTask{
		ID:        status.TaskID,
		Status:    taskStatus,
		Type:      queue.TaskTypeDocumentIntake,
		Progress:  status.Progress,
		Error:     status.Error,
		Metadata:  make(map[string]string),
		CreatedAt: status.StartedAt,
		UpdatedAt: status.FinishedAt,
	}, nil
}

// GetRecord 获取处理完成的记录
func (s *Service) GetRecord(ctx context.Context, taskID string) (*models.Record, error) {
	status, err := s.GetStatus(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if status.Status != models.StatusCompleted {
		return nil, fmt.Errorf("task is not completed: %s", status.Status)
	}

	reader, err := s.storage.Get(ctx, recordKey(taskID))
	if err != nil {
		return nil, fmt.Errorf("failed to get record: %w", err)
	}
	defer reader.Close()

	var rec models.Record
	if err := json.NewDecoder(reader).Decode(&rec); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}

	return &rec, nil
}

// CancelTask 取消任务
func (s *Service) CancelTask(ctx context.Context, taskID string) error {
	if err := s.queue.CancelTask(ctx, taskID); err != nil {
		return fmt.Errorf("failed to cancel task: %w", err)
	}

	cancelled := &queue.TaskStatus{
		TaskID:     taskID,
		Status:     string(models.StatusCancelled),
		FinishedAt: time.Now(),
	}
	if err := s.queue.SaveStatus(ctx, cancelled); err != nil {
		s.logger.Error("Failed to save cancelled status",
			logger.String("taskId", taskID),
			logger.Error(err),
		)
	}

	s.logger.Info("Task cancelled",
		logger.String("taskId", taskID),
	)
	return nil
}

// CleanupTasks 清理过期文件和记录
func (s *Service) CleanupTasks(ctx context.Context) error {
	threshold := time.Now().Add(-s.config.RetentionPeriod)

	if err := s.storage.CleanupBefore(ctx, threshold); err != nil {
		return fmt.Errorf("failed to cleanup storage: %w", err)
	}

	s.logger.Info("Completed tasks cleanup",
		logger.Time("threshold", threshold),
	)
	return nil
}

func (s *Service) failTask(ctx context.Context, task *queue.Task, cause error) {
	status := &queue.TaskStatus{
		TaskID:     task.ID,
		Status:     string(models.StatusFailed),
		Error:      cause.Error(),
		StartedAt:  task.CreatedAt,
		FinishedAt: time.Now(),
	}
	if err := s.queue.SaveStatus(ctx, status); err != nil {
		s.logger.Error("Failed to save failure status",
			logger.String("taskId", task.ID),
			logger.Error(err),
		)
	}
}

func (s *Service) validateFile(header *multipart.FileHeader) error {
	if header.Size > s.config.MaxFileSize {
		return fmt.Errorf("file size exceeds maximum limit of %d bytes", s.config.MaxFileSize)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	for _, t := range s.config.AllowedTypes {
		if t == ext {
			return nil
		}
	}
	return fmt.Errorf("unsupported file type: %s", ext)
}

func recordKey(taskID string) string {
	return "record:" + taskID
}

// spoolToDisk copies an incoming stream to a temp file so the pipeline can
// work from a path. The extension is kept for content-kind sniffing.
func spoolToDisk(r io.Reader, ext string) (string, func(), error) {
	f, err := os.CreateTemp("", "intake-*"+strings.ToLower(ext))
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", nil, fmt.Errorf("failed to spool file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", nil, fmt.Errorf("failed to close temp file: %w", err)
	}

	return f.Name(), func() { os.Remove(f.Name()) }, nil
}

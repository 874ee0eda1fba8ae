package intake

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feichai0017/document-intake/internal/enrich"
	"github.com/feichai0017/document-intake/internal/entity"
	"github.com/feichai0017/document-intake/internal/extract"
	"github.com/feichai0017/document-intake/internal/extract/text"
	"github.com/feichai0017/document-intake/internal/models"
	"github.com/feichai0017/document-intake/internal/pipeline"
	"github.com/feichai0017/document-intake/pkg/logger"
	"github.com/feichai0017/document-intake/pkg/queue"
)

type memStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemStorage() *memStorage {
	return &memStorage{objects: make(map[string][]byte)}
}

func (m *memStorage) Store(_ context.Context, r io.Reader, key string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	return key, nil
}

func (m *memStorage) Get(_ context.Context, key string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[key]
	if !ok {
		return nil, fmt.Errorf("object not found: %s", key)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *memStorage) CleanupBefore(context.Context, time.Time) error { return nil }

type memQueue struct {
	mu       sync.Mutex
	enqueued []*queue.Task
	statuses map[string]*queue.TaskStatus
}

func newMemQueue() *memQueue {
	return &memQueue{statuses: make(map[string]*queue.TaskStatus)}
}

func (q *memQueue) Enqueue(_ context.Context, task *queue.Task) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.enqueued = append(q.enqueued, task)
	return nil
}

func (q *memQueue) GetTaskStatus(_ context.Context, taskID string) (*queue.TaskStatus, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	status, ok := q.statuses[taskID]
	if !ok {
		return nil, fmt.Errorf("task not found: %s", taskID)
	}
	return status, nil
}

func (q *memQueue) CancelTask(_ context.Context, taskID string) error {
	return nil
}

func (q *memQueue) SaveStatus(_ context.Context, status *queue.TaskStatus) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.statuses[status.TaskID] = status
	return nil
}

// uploadFile satisfies multipart.File for in-memory test content.
type uploadFile struct{ *bytes.Reader }

func (uploadFile) Close() error { return nil }

func upload(content, filename string) (multipart.File, *multipart.FileHeader) {
	return uploadFile{bytes.NewReader([]byte(content))},
		&multipart.FileHeader{Filename: filename, Size: int64(len(content))}
}

func newTestService(t *testing.T) (*Service, *memQueue, *memStorage) {
	t.Helper()

	log := logger.NewTestLogger()
	registry := extract.NewRegistry(log)
	registry.Register(models.KindText, text.NewExtractor())
	processor := pipeline.NewProcessor(registry, entity.NewRegexRecognizer(), enrich.NewEnricher(), log)

	q := newMemQueue()
	store := newMemStorage()
	svc := NewService(processor, q, store, log, nil).(*Service)
	return svc, q, store
}

const invoiceText = "Invoice\nBill From: Acme Corp\nInvoice Number: INV-77\nTotal $500.00\nDate: Jan 5, 2024"

func TestIntakeFileStoresAndEnqueues(t *testing.T) {
	svc, q, store := newTestService(t)
	file, header := upload(invoiceText, "acme.txt")

	task, err := svc.IntakeFile(context.Background(), file, header)
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, task.Status)
	assert.Equal(t, queue.TaskTypeDocumentIntake, task.Type)
	assert.Equal(t, "acme.txt", task.Metadata["filename"])

	require.Len(t, q.enqueued, 1)
	assert.Equal(t, task.ID, q.enqueued[0].ID)
	assert.Equal(t, task.ID+".txt", q.enqueued[0].Payload["fileId"])

	// 原始文件按 taskID 加扩展名落盘
	assert.Contains(t, store.objects, task.ID+".txt")

	status, err := q.GetTaskStatus(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Equal(t, "pending", status.Status)
}

func TestIntakeFileRejectsUnsupportedType(t *testing.T) {
	svc, q, _ := newTestService(t)
	file, header := upload("MZ", "payload.exe")

	_, err := svc.IntakeFile(context.Background(), file, header)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
	assert.Empty(t, q.enqueued)
}

func TestIntakeFileRejectsOversize(t *testing.T) {
	svc, _, _ := newTestService(t)
	file, header := upload("x", "big.pdf")
	header.Size = 51 * 1024 * 1024

	_, err := svc.IntakeFile(context.Background(), file, header)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds maximum limit")
}

func TestHandleIntakeProducesRecord(t *testing.T) {
	svc, q, store := newTestService(t)

	_, err := store.Store(context.Background(), bytes.NewReader([]byte(invoiceText)), "task-1.txt")
	require.NoError(t, err)

	task := &queue.Task{
		ID:       "task-1",
		Type:     queue.TaskTypeDocumentIntake,
		Payload:  map[string]interface{}{"fileId": "task-1.txt", "filename": "acme.txt"},
		Metadata: map[string]string{"filename": "acme.txt", "type": ".txt"},
	}

	require.NoError(t, svc.HandleIntake(context.Background(), task))

	data, ok := store.objects["record:task-1"]
	require.True(t, ok)

	var rec models.Record
	require.NoError(t, json.Unmarshal(data, &rec))
	assert.Equal(t, "acme.txt", rec.Path)
	assert.Equal(t, models.ClassInvoice, rec.Class)
	assert.Equal(t, models.RouteAutoApprove, rec.Route)

	status, err := q.GetTaskStatus(context.Background(), "task-1")
	require.NoError(t, err)
	assert.Equal(t, "completed", status.Status)
}

func TestHandleIntakeMissingFileFailsTask(t *testing.T) {
	svc, q, _ := newTestService(t)

	task := &queue.Task{
		ID:       "task-2",
		Payload:  map[string]interface{}{"fileId": "gone.txt"},
		Metadata: map[string]string{"filename": "gone.txt"},
	}

	require.Error(t, svc.HandleIntake(context.Background(), task))

	status, err := q.GetTaskStatus(context.Background(), "task-2")
	require.NoError(t, err)
	assert.Equal(t, "failed", status.Status)
	assert.NotEmpty(t, status.Error)
}

func TestProcessSync(t *testing.T) {
	svc, q, _ := newTestService(t)
	file, header := upload(invoiceText, "acme.txt")

	rec, err := svc.ProcessSync(context.Background(), file, header)
	require.NoError(t, err)

	assert.Equal(t, "acme.txt", rec.Path)
	assert.Equal(t, models.ClassInvoice, rec.Class)
	assert.InDelta(t, 0.88, rec.DocumentConfidence, 1e-9)
	// 同步路径不经过队列
	assert.Empty(t, q.enqueued)
}

func TestGetRecordRequiresCompletion(t *testing.T) {
	svc, q, _ := newTestService(t)

	require.NoError(t, q.SaveStatus(context.Background(), &queue.TaskStatus{
		TaskID: "task-3",
		Status: "pending",
	}))

	_, err := svc.GetRecord(context.Background(), "task-3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not completed")
}

func TestGetRecordRoundTrip(t *testing.T) {
	svc, q, store := newTestService(t)

	rec := models.Record{Path: "acme.txt", Class: models.ClassInvoice, Route: models.RouteAutoApprove}
	data, err := json.Marshal(rec)
	require.NoError(t, err)
	_, err = store.Store(context.Background(), bytes.NewReader(data), "record:task-4")
	require.NoError(t, err)
	require.NoError(t, q.SaveStatus(context.Background(), &queue.TaskStatus{
		TaskID: "task-4",
		Status: "completed",
	}))

	got, err := svc.GetRecord(context.Background(), "task-4")
	require.NoError(t, err)
	assert.Equal(t, rec.Path, got.Path)
	assert.Equal(t, rec.Class, got.Class)
	assert.Equal(t, rec.Route, got.Route)
}

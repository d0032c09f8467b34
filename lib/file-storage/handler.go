package filestorage

import (
	"bytes"
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"task-exchange-backend/config"
	taskfilestore "task-exchange-backend/lib/file-storage/store"
	initchecker "task-exchange-backend/lib/utils/init-checker"
	"task-exchange-backend/db"
	dbmodels "task-exchange-backend/models/db"
	s3client "task-exchange-backend/s3"
)

type Provider interface {
	// UploadTaskFile сохранение вложения задачи в S3 и запись в справочник
	UploadTaskFile(ctx context.Context, taskID, uploadedBy, fileName, contentType string, file []byte) (id string, err error)
	// GetTaskFile содержимое вложения по идентификатору записи
	GetTaskFile(ctx context.Context, fileID string) (rec *dbmodels.TaskFile, body []byte, err error)
	ListByTask(taskID string) (list []dbmodels.TaskFile, err error)
	// MakeBucket создание рабочей корзины, вызывается на старте
	MakeBucket(ctx context.Context) error
}

var Instance Provider

func NewHandler() {
	instance := impl{
		s3client: s3client.Client,
		store:    taskfilestore.NewInstance(db.DB),
		bucket:   config.Conf.S3.Bucket,
	}
	initchecker.CheckInit(
		"s3client", instance.s3client,
		"store", instance.store,
	)
	Instance = instance
}

type impl struct {
	s3client *minio.Client
	store    taskfilestore.Provider
	bucket   string
}

func (i impl) UploadTaskFile(ctx context.Context, taskID, uploadedBy, fileName, contentType string, file []byte) (id string, err error) {
	objectID := uuid.NewString()
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err = i.s3client.PutObject(ctx, i.bucket, objectID,
		bytes.NewReader(file), int64(len(file)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", errors.Wrap(err, "ошибка сохранения файла в хранилище")
	}
	rec := dbmodels.TaskFile{
		TaskID:      taskID,
		FileName:    fileName,
		ContentType: contentType,
		ObjectID:    objectID,
		UploadedBy:  uploadedBy,
	}
	id, err = i.store.SaveFile(rec)
	if err != nil {
		return "", errors.Wrap(err, "ошибка сохранения записи о файле")
	}
	log.
		WithField("task_id", taskID).
		WithField("file_id", id).
		Info("загружено вложение задачи")
	return id, nil
}

func (i impl) GetTaskFile(ctx context.Context, fileID string) (*dbmodels.TaskFile, []byte, error) {
	rec, err := i.store.GetByID(fileID)
	if err != nil {
		return nil, nil, err
	}
	if rec == nil {
		return nil, nil, errors.New("файл не найден")
	}
	object, err := i.s3client.GetObject(ctx, i.bucket, rec.ObjectID, minio.GetObjectOptions{})
	if err != nil {
		return nil, nil, errors.Wrap(err, "ошибка чтения файла из хранилища")
	}
	defer object.Close()
	body, err := io.ReadAll(object)
	if err != nil {
		return nil, nil, errors.Wrap(err, "ошибка чтения файла из хранилища")
	}
	return rec, body, nil
}

func (i impl) ListByTask(taskID string) ([]dbmodels.TaskFile, error) {
	return i.store.ListByTask(taskID)
}

func (i impl) MakeBucket(ctx context.Context) error {
	exists, err := i.s3client.BucketExists(ctx, i.bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return i.s3client.MakeBucket(ctx, i.bucket, minio.MakeBucketOptions{})
}

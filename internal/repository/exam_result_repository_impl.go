package repository

import (
	"context"
	"time"

	"medconnect/internal/domain/entity"
	domainRepo "medconnect/internal/domain/repository"
	"medconnect/internal/infrastructure/docstore"

	"cloud.google.com/go/firestore"
	"github.com/sirupsen/logrus"
)

const examResultsCollection = "exam_results"

func decodeExamResult(snap *firestore.DocumentSnapshot) (entity.ExamResult, error) {
	var result entity.ExamResult
	if err := snap.DataTo(&result); err != nil {
		return entity.ExamResult{}, err
	}
	result.ID = snap.Ref.ID
	return result, nil
}

type examResultRepository struct {
	client *firestore.Client
	log    *logrus.Logger
}

func NewExamResultRepository(client *firestore.Client, log *logrus.Logger) domainRepo.ExamResultRepository {
	return &examResultRepository{client: client, log: log}
}

func (r *examResultRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(examResultsCollection)
}

func (r *examResultRepository) Create(ctx context.Context, result *entity.ExamResult) error {
	ref := r.collection().NewDoc()
	now := time.Now().UTC()
	result.ID = ref.ID
	result.CreatedAt = now
	result.UpdatedAt = now

	_, err := ref.Create(ctx, result)
	return err
}

func (r *examResultRepository) FindByID(ctx context.Context, id string) (*entity.ExamResult, error) {
	snap, err := r.collection().Doc(id).Get(ctx)
	if err != nil {
		if docstore.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	result, err := decodeExamResult(snap)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *examResultRepository) FindAll(ctx context.Context, filter *entity.ExamResultFilter) ([]entity.ExamResult, error) {
	query := r.collection().Query
	if filter != nil && filter.PatientID != "" {
		query = query.Where("patient_id", "==", filter.PatientID)
	}

	ordered := func(ctx context.Context) ([]entity.ExamResult, error) {
		return docstore.Collect(query.OrderBy("exam_date", firestore.Desc).Documents(ctx), decodeExamResult)
	}
	unordered := func(ctx context.Context) ([]entity.ExamResult, error) {
		return docstore.Collect(query.Documents(ctx), decodeExamResult)
	}

	return docstore.QueryWithFallback(ctx, r.log, examResultsCollection, ordered, unordered,
		func(a, b entity.ExamResult) bool { return a.ExamDate.After(b.ExamDate) })
}

func (r *examResultRepository) Update(ctx context.Context, result *entity.ExamResult) error {
	result.UpdatedAt = time.Now().UTC()
	_, err := r.collection().Doc(result.ID).Set(ctx, result)
	return err
}

func (r *examResultRepository) Delete(ctx context.Context, id string) error {
	_, err := r.collection().Doc(id).Delete(ctx)
	return err
}

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ai-pipeline-be/internal/dto"
	"ai-pipeline-be/internal/entity"
	"ai-pipeline-be/internal/repository/specification"
	"ai-pipeline-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IDocumentService interface {
	Create(ctx context.Context, req *dto.CreateDocumentRequest) (*dto.DocumentResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.DocumentResponse, error)
	List(ctx context.Context) ([]*dto.DocumentResponse, error)
	Update(ctx context.Context, req *dto.UpdateDocumentRequest) (*dto.DocumentResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Reindex(ctx context.Context, id uuid.UUID) error
}

type documentService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
) IDocumentService {
	return &documentService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
	}
}

func (s *documentService) Create(ctx context.Context, req *dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	document := entity.Document{
		Id:        uuid.New(),
		Title:     req.Title,
		Source:    req.Source,
		Content:   req.Content,
		CreatedAt: time.Now(),
	}

	if err := uow.DocumentRepository().Create(ctx, &document); err != nil {
		return nil, err
	}

	if err := s.publishEmbedding(ctx, document.Id); err != nil {
		return nil, err
	}

	return toDocumentResponse(&document), nil
}

func (s *documentService) Show(ctx context.Context, id uuid.UUID) (*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	document, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if document == nil {
		return nil, nil // Not found
	}

	res := toDocumentResponse(document)
	chunkCount, err := uow.DocumentChunkRepository().Count(ctx, specification.ByDocumentID{DocumentID: id})
	if err != nil {
		return nil, err
	}
	res.ChunkCount = chunkCount
	return res, nil
}

func (s *documentService) List(ctx context.Context) ([]*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	documents, err := uow.DocumentRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.DocumentResponse, len(documents))
	for i, d := range documents {
		r := toDocumentResponse(d)
		r.Content = "" // listing stays light, fetch Show for the body
		res[i] = r
	}
	return res, nil
}

func (s *documentService) Update(ctx context.Context, req *dto.UpdateDocumentRequest) (*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	document, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if document == nil {
		return nil, fmt.Errorf("document not found")
	}

	document.Title = req.Title
	document.Source = req.Source
	document.Content = req.Content
	now := time.Now()
	document.UpdatedAt = &now

	if err := uow.DocumentRepository().Update(ctx, document); err != nil {
		return nil, err
	}

	// Content changed, embeddings must be rebuilt.
	if err := s.publishEmbedding(ctx, document.Id); err != nil {
		return nil, err
	}

	return toDocumentResponse(document), nil
}

func (s *documentService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.DocumentChunkRepository().DeleteByDocumentId(ctx, id); err != nil {
		return err
	}
	if err := uow.DocumentRepository().Delete(ctx, id); err != nil {
		return err
	}

	return uow.Commit()
}

func (s *documentService) Reindex(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	document, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if document == nil {
		return fmt.Errorf("document not found")
	}
	return s.publishEmbedding(ctx, id)
}

func (s *documentService) publishEmbedding(ctx context.Context, documentId uuid.UUID) error {
	msgPayload := dto.PublishEmbedDocumentMessage{
		DocumentId: documentId,
	}
	msgJson, err := json.Marshal(msgPayload)
	if err != nil {
		return err
	}

	return s.publisherService.Publish(ctx, msgJson)
}

func toDocumentResponse(d *entity.Document) *dto.DocumentResponse {
	return &dto.DocumentResponse{
		Id:        d.Id,
		Title:     d.Title,
		Source:    d.Source,
		Content:   d.Content,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

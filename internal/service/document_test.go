package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"docqa/internal/extract"
	"docqa/internal/model"
	"docqa/internal/repository"
	repoMocks "docqa/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestDocumentService_Upload(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		data       []byte
		filename   string
		extract    ExtractFunc
		setupMocks func(mRepo *repoMocks.MockDocumentRepository)
		wantErr    error
		wantErrMsg string
		checkDoc   func(t *testing.T, doc *model.Document)
	}{
		{
			name:     "happy path",
			data:     []byte("Paris is the capital of France."),
			filename: "notes.txt",
			extract: func(data []byte, filename string) (string, error) {
				return "Paris is the capital of France.", nil
			},
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("Create", ctx, mock.MatchedBy(func(doc *model.Document) bool {
					return doc.ID != "" &&
						doc.Filename == "notes.txt" &&
						doc.Content == "Paris is the capital of France." &&
						doc.Size == int64(len("Paris is the capital of France.")) &&
						!doc.CreatedAt.IsZero()
				})).Return(&model.Document{ID: "gen-id", Filename: "notes.txt"}, nil)
			},
			checkDoc: func(t *testing.T, doc *model.Document) {
				assert.Equal(t, "gen-id", doc.ID)
			},
		},
		{
			name:       "validation error - empty file",
			data:       nil,
			filename:   "notes.txt",
			extract:    extract.Extract,
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {},
			wantErr:    ErrFileEmpty,
		},
		{
			name:     "unsupported format passes through typed",
			data:     []byte("data"),
			filename: "image.png",
			extract:  extract.Extract,
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
			},
			wantErr: extract.ErrUnsupportedFormat,
		},
		{
			name:     "corrupt file passes through typed",
			data:     []byte{0xff, 0xfe},
			filename: "notes.txt",
			extract:  extract.Extract,
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
			},
			wantErr: extract.ErrCorruptFile,
		},
		{
			name:     "repository error",
			data:     []byte("hello"),
			filename: "notes.txt",
			extract: func(data []byte, filename string) (string, error) {
				return "hello", nil
			},
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("Create", ctx, mock.Anything).Return(nil, errors.New("db fail"))
			},
			wantErrMsg: "db save failed: db fail",
		},
		{
			name:     "empty extraction is stored",
			data:     []byte("   \n"),
			filename: "blank.txt",
			extract:  extract.Extract,
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("Create", ctx, mock.MatchedBy(func(doc *model.Document) bool {
					return doc.Content == ""
				})).Return(&model.Document{ID: "empty-id"}, nil)
			},
			checkDoc: func(t *testing.T, doc *model.Document) {
				assert.Equal(t, "empty-id", doc.ID)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockDocumentRepository)
			svc := NewDocumentService(tt.extract, mRepo)

			tt.setupMocks(mRepo)

			doc, err := svc.Upload(ctx, tt.data, tt.filename)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else if tt.wantErrMsg != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, doc)
				if tt.checkDoc != nil {
					tt.checkDoc(t, doc)
				}
			}

			mRepo.AssertExpectations(t)
		})
	}
}

func TestDocumentService_List(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		limit      int
		offset     int
		setupMocks func(mRepo *repoMocks.MockDocumentRepository)
		wantErr    error
		checkRes   func(t *testing.T, res *DocumentListResult)
	}{
		{
			name:   "happy path",
			limit:  10,
			offset: 0,
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("List", ctx, repository.PageQuery{Limit: 10, Offset: 0}).
					Return(&repository.PageResult[model.DocumentSummary]{
						Items: []model.DocumentSummary{{ID: "1"}, {ID: "2"}},
						Total: 2,
					}, nil)
			},
			checkRes: func(t *testing.T, res *DocumentListResult) {
				assert.Equal(t, 2, len(res.Items))
				assert.Equal(t, 2, res.Total)
			},
		},
		{
			name:   "pagination boundary - zero limit uses default",
			limit:  0,
			offset: -1,
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("List", ctx, repository.PageQuery{Limit: 10, Offset: 0}).
					Return(&repository.PageResult[model.DocumentSummary]{Items: []model.DocumentSummary{}, Total: 0}, nil)
			},
		},
		{
			name:  "repository error",
			limit: 10,
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("List", ctx, mock.Anything).Return(nil, errors.New("db fail"))
			},
			wantErr: errors.New("db fail"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockDocumentRepository)
			svc := NewDocumentService(nil, mRepo)

			tt.setupMocks(mRepo)

			res, err := svc.List(ctx, tt.limit, tt.offset)

			if tt.wantErr != nil {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				if tt.checkRes != nil {
					tt.checkRes(t, res)
				}
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestDocumentService_Get(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		id         string
		setupMocks func(mRepo *repoMocks.MockDocumentRepository)
		wantErr    error
	}{
		{
			name: "happy path",
			id:   "valid-id",
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("FindByID", ctx, "valid-id").Return(&model.Document{ID: "valid-id"}, nil)
			},
		},
		{
			name:       "validation - empty id",
			id:         "",
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {},
			wantErr:    ErrIDRequired,
		},
		{
			name: "not found - mapping sql.ErrNoRows",
			id:   "missing-id",
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("FindByID", ctx, "missing-id").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrNotFound,
		},
		{
			name: "generic repository error",
			id:   "error-id",
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("FindByID", ctx, "error-id").Return(nil, errors.New("db fail"))
			},
			wantErr: errors.New("db fail"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockDocumentRepository)
			svc := NewDocumentService(nil, mRepo)

			tt.setupMocks(mRepo)

			doc, err := svc.Get(ctx, tt.id)

			if tt.wantErr != nil {
				if errors.Is(tt.wantErr, ErrIDRequired) || errors.Is(tt.wantErr, ErrNotFound) {
					assert.ErrorIs(t, err, tt.wantErr)
				} else {
					assert.Error(t, err)
				}
				assert.Nil(t, doc)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, doc)
				assert.Equal(t, tt.id, doc.ID)
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestDocumentService_Delete(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		id         string
		setupMocks func(mRepo *repoMocks.MockDocumentRepository)
		wantErr    error
	}{
		{
			name: "happy path",
			id:   "valid-id",
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("Delete", ctx, "valid-id").Return(true, nil)
			},
		},
		{
			name:       "validation - empty id",
			id:         "",
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {},
			wantErr:    ErrIDRequired,
		},
		{
			name: "not found",
			id:   "missing-id",
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("Delete", ctx, "missing-id").Return(false, nil)
			},
			wantErr: ErrNotFound,
		},
		{
			name: "repository delete error",
			id:   "repo-fail-id",
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("Delete", ctx, "repo-fail-id").Return(false, errors.New("db fail"))
			},
			wantErr: errors.New("db fail"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockDocumentRepository)
			svc := NewDocumentService(nil, mRepo)

			tt.setupMocks(mRepo)

			err := svc.Delete(ctx, tt.id)

			if tt.wantErr != nil {
				if errors.Is(tt.wantErr, ErrIDRequired) || errors.Is(tt.wantErr, ErrNotFound) {
					assert.ErrorIs(t, err, tt.wantErr)
				} else {
					assert.Error(t, err)
				}
			} else {
				assert.NoError(t, err)
			}
			mRepo.AssertExpectations(t)
		})
	}
}

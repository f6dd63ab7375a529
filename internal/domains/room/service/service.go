package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Room=MockRoomService

import (
	"context"
	"errors"
	"fmt"
	"hotel/config"
	"hotel/infras/otel"
	"hotel/infras/s3"
	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/domains/room/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/identity"
	"hotel/shared/timezone"
	"hotel/shared/validator"
	"mime"
	"mime/multipart"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetRoom = "room:get"

	uploadPrefix   = "uploads/"
	uploadURLPath  = "/uploads/"
	allowedImages  = "fileext=png jpg jpeg gif"
	maxImageBytes  = 5 << 20

	msgRoomNotFound   = "Room not found"
	msgFileNotFound   = "File not found"
	msgNoImage        = "No image file provided"
	msgNoSelectedFile = "No selected file"
	msgTypeNotAllowed = "File type not allowed"
	msgFileTooLarge   = "File exceeds 5 MB"
)

type Room interface {
	Create(ctx context.Context, req dto.CreateRoomRequest) (dto.RoomResponse, error)
	List(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]dto.RoomResponse, error)
	Get(ctx context.Context, id string) (dto.RoomResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateRoomRequest) (dto.RoomResponse, error)
	Delete(ctx context.Context, id string) error
	// Upload stores an image under uploads/ and returns its public path.
	Upload(ctx context.Context, image *multipart.FileHeader) (dto.UploadResponse, error)
	// Download opens a stored upload. The caller closes the body.
	Download(ctx context.Context, filename string) (*s3.Object, error)
}

type serviceImpl struct {
	repo  repository.Room
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.Room, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Room {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

func actor(ctx context.Context) string {
	if caller, ok := identity.FromContext(ctx); ok {
		return caller.UserID
	}

	return constant.ContextGuest
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	shared.InvalidateCaches(ctx, s.cache, shared.BuildCacheKey(cacheGetRoom, id))
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	room := req.ToModel(actor(ctx), timezone.Now())

	if err = s.repo.Insert(ctx, room); err != nil {
		return res, fmt.Errorf("failed to create room: %w", err)
	}

	res.FromModel(room)

	return res, nil
}

func (s *serviceImpl) List(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res []dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	params.RestrictSort(constant.FieldCreatedAt, model.FieldName, model.FieldRoomType, model.FieldPricePerDay)

	rooms, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get rooms: %w", err)
	}

	return dto.FromModels(rooms), nil
}

// find loads a room by id. Ids that are not UUIDs cannot exist.
func (s *serviceImpl) find(ctx context.Context, id string) (model.Room, error) {
	if uuid.Validate(id) != nil {
		return model.Room{}, failure.NotFound(msgRoomNotFound) // nolint:wrapcheck
	}

	room, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return room, failure.NotFound(msgRoomNotFound) // nolint:wrapcheck
		}

		return room, fmt.Errorf("failed to get room: %w", err)
	}

	return room, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetRoom, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for room")

		return res, nil
	}

	if !cache.IsMiss(err) {
		log.Warn().Err(err).Str("cacheKey", cacheKey).Msg("failed to read room cache")
	}

	room, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(room)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateRoomRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	room, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	changes := req.Apply(&room, actor(ctx), timezone.Now())

	if len(changes) > 0 {
		if err = s.repo.Update(ctx, changes, shared.FilterByID(room.ID, model.FieldID, model.TableName)); err != nil {
			return res, fmt.Errorf("failed to update room: %w", err)
		}

		s.invalidate(ctx, room.ID)
	}

	res.FromModel(room)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if uuid.Validate(id) != nil {
		return failure.NotFound(msgRoomNotFound) // nolint:wrapcheck
	}

	deleted, err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}

	if deleted == 0 {
		return failure.NotFound(msgRoomNotFound) // nolint:wrapcheck
	}

	s.invalidate(ctx, id)

	return nil
}

// sanitizeFilename keeps letters, digits, dots, dashes and underscores of
// the base name and drops leading dots.
func sanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))

	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		case r == ' ':
			return '_'
		default:
			return -1
		}
	}, name)

	return strings.TrimLeft(clean, ".")
}

func (s *serviceImpl) Upload(ctx context.Context, image *multipart.FileHeader) (res dto.UploadResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Upload")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if image == nil {
		return res, failure.BadRequestFromString(msgNoImage) // nolint:wrapcheck
	}

	if image.Filename == "" {
		return res, failure.BadRequestFromString(msgNoSelectedFile) // nolint:wrapcheck
	}

	if validator.ValidateVar(image.Filename, allowedImages) != nil {
		return res, failure.BadRequestFromString(msgTypeNotAllowed) // nolint:wrapcheck
	}

	if image.Size > maxImageBytes {
		return res, failure.BadRequestFromString(msgFileTooLarge) // nolint:wrapcheck
	}

	name := uuid.NewString() + "-" + sanitizeFilename(image.Filename)

	contentType := image.Header.Get(constant.RequestHeaderContentType)
	if contentType == "" || contentType == constant.ContentTypeOctetStream {
		contentType = mime.TypeByExtension(strings.ToLower(filepath.Ext(name)))
	}

	file, err := image.Open()
	if err != nil {
		return res, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	if err = s.s3.Put(ctx, uploadPrefix+name, contentType, file, image.Size); err != nil {
		return res, fmt.Errorf("failed to store image: %w", err)
	}

	res.URL = uploadURLPath + name

	return res, nil
}

func (s *serviceImpl) Download(ctx context.Context, filename string) (obj *s3.Object, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Download")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if filename == "" || path.Base(filename) != filename || strings.HasPrefix(filename, ".") {
		return nil, failure.NotFound(msgFileNotFound) // nolint:wrapcheck
	}

	obj, err = s.s3.Get(ctx, uploadPrefix+filename)
	if err != nil {
		if errors.Is(err, s3.ErrObjectNotFound) {
			return nil, failure.NotFound(msgFileNotFound) // nolint:wrapcheck
		}

		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	return obj, nil
}

package product

import (
	"SmartShop/entity"
	"SmartShop/internal/lib/fileurl"
	"SmartShop/internal/lib/sl"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const ImagePath = "/api/v1/products/images"

type Repository interface {
	SaveProduct(ctx context.Context, product *entity.Product) error
	UpdateProduct(ctx context.Context, product *entity.Product) error
	DeleteProduct(ctx context.Context, id string) error
	GetProduct(ctx context.Context, id string) (*entity.Product, error)
	ListProducts(ctx context.Context, filter entity.ProductFilter) ([]entity.Product, error)
	Categories(ctx context.Context) ([]string, error)
}

type ImageStore interface {
	UploadImage(ctx context.Context, filename string, reader io.Reader, meta entity.ImageMetadata) (string, int64, error)
	DownloadImage(ctx context.Context, id string) (string, entity.ImageMetadata, io.ReadCloser, error)
	DeleteImage(ctx context.Context, id string) error
}

type Options struct {
	AllowedExtensions []string
	MaxSize           int64
	URLSecret         string
	URLTTL            time.Duration
}

type Service struct {
	repository Repository
	images     ImageStore
	opts       Options
	now        func() time.Time
	log        *slog.Logger
}

func NewProductService(repo Repository, images ImageStore, opts Options, logger *slog.Logger) *Service {
	if opts.MaxSize <= 0 {
		opts.MaxSize = entity.MaxImageSize
	}
	if opts.URLTTL <= 0 {
		opts.URLTTL = time.Hour
	}
	return &Service{
		repository: repo,
		images:     images,
		opts:       opts,
		now:        time.Now,
		log:        logger.With(sl.Module("product-service")),
	}
}

func (s *Service) withURL(p *entity.Product) {
	if p.ImageID != "" {
		p.ImageURL = fileurl.SignURL(ImagePath, p.ImageID, s.opts.URLSecret, s.opts.URLTTL)
	}
}

func (s *Service) List(ctx context.Context, filter entity.ProductFilter) ([]entity.Product, error) {
	products, err := s.repository.ListProducts(ctx, filter)
	if err != nil {
		return nil, entity.PersistenceError(err)
	}
	for i := range products {
		s.withURL(&products[i])
	}
	return products, nil
}

func (s *Service) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.repository.Categories(ctx)
	if err != nil {
		return nil, entity.PersistenceError(err)
	}
	return categories, nil
}

func (s *Service) Get(ctx context.Context, id string) (*entity.Product, error) {
	p, err := s.repository.GetProduct(ctx, id)
	if err != nil {
		return nil, entity.PersistenceError(err)
	}
	if p == nil {
		return nil, entity.NotFoundError("product " + id)
	}
	s.withURL(p)
	return p, nil
}

func (s *Service) ListForSeller(ctx context.Context, seller *entity.UserAuth) ([]entity.Product, error) {
	if !seller.IsSeller() {
		return nil, entity.AuthorizationError("Only sellers can access this page.")
	}
	return s.List(ctx, entity.ProductFilter{SellerID: seller.ID})
}

func (s *Service) Create(ctx context.Context, seller *entity.UserAuth, input *entity.ProductInput, upload *entity.ImageUpload) (*entity.Product, error) {
	if !seller.IsSeller() {
		return nil, entity.AuthorizationError("Only sellers can add products.")
	}

	p := &entity.Product{
		ID:        uuid.NewString(),
		SellerID:  seller.ID,
		CreatedAt: s.now().UTC(),
	}
	input.Apply(p)

	if upload != nil {
		imageID, err := s.storeImage(ctx, seller.ID, upload)
		if err != nil {
			return nil, err
		}
		p.ImageID = imageID
	}

	if err := s.repository.SaveProduct(ctx, p); err != nil {
		s.log.With(sl.Err(err)).Error("save product")
		s.dropImage(ctx, p.ImageID)
		return nil, entity.PersistenceError(err)
	}

	s.log.With(
		slog.String("product", p.ID),
		slog.String("seller", seller.ID),
	).Info("product created")

	s.withURL(p)
	return p, nil
}

func (s *Service) owned(ctx context.Context, seller *entity.UserAuth, id, action string) (*entity.Product, error) {
	if !seller.IsSeller() {
		return nil, entity.AuthorizationError(fmt.Sprintf("Only sellers can %s products.", action))
	}
	p, err := s.repository.GetProduct(ctx, id)
	if err != nil {
		return nil, entity.PersistenceError(err)
	}
	if p == nil {
		return nil, entity.NotFoundError("product " + id)
	}
	if p.SellerID != seller.ID {
		return nil, entity.AuthorizationError(fmt.Sprintf("You can only %s your own products.", action))
	}
	return p, nil
}

// Update rewrites the product fields; a new image replaces the old one.
func (s *Service) Update(ctx context.Context, seller *entity.UserAuth, id string, input *entity.ProductInput, upload *entity.ImageUpload) (*entity.Product, error) {
	p, err := s.owned(ctx, seller, id, "edit")
	if err != nil {
		return nil, err
	}
	input.Apply(p)

	oldImage := ""
	if upload != nil {
		imageID, err := s.storeImage(ctx, seller.ID, upload)
		if err != nil {
			return nil, err
		}
		oldImage = p.ImageID
		p.ImageID = imageID
	}

	if err = s.repository.UpdateProduct(ctx, p); err != nil {
		s.log.With(sl.Err(err)).Error("update product")
		if upload != nil {
			s.dropImage(ctx, p.ImageID)
		}
		return nil, entity.PersistenceError(err)
	}
	s.dropImage(ctx, oldImage)

	s.log.With(slog.String("product", p.ID)).Info("product updated")

	s.withURL(p)
	return p, nil
}

func (s *Service) Delete(ctx context.Context, seller *entity.UserAuth, id string) error {
	p, err := s.owned(ctx, seller, id, "delete")
	if err != nil {
		return err
	}
	if err = s.repository.DeleteProduct(ctx, p.ID); err != nil {
		return entity.PersistenceError(err)
	}
	s.dropImage(ctx, p.ImageID)

	s.log.With(slog.String("product", p.ID)).Info("product deleted")
	return nil
}

func (s *Service) storeImage(ctx context.Context, sellerID string, upload *entity.ImageUpload) (string, error) {
	if !entity.AllowedFile(upload.Filename, s.opts.AllowedExtensions) {
		return "", entity.NewValidationError("File type not allowed")
	}
	if upload.Size > s.opts.MaxSize {
		return "", entity.NewValidationError(entity.FileTooLargeError(upload.Filename, upload.Size, s.opts.MaxSize).Error())
	}

	// the reader is capped in case the declared size lies
	reader := io.LimitReader(upload.Reader, s.opts.MaxSize+1)
	filename := entity.ImageFilename(upload.Filename, s.now())
	id, size, err := s.images.UploadImage(ctx, filename, reader, entity.ImageMetadata{
		MIMEType: upload.MIMEType,
		SellerID: sellerID,
	})
	if err != nil {
		s.log.With(sl.Err(err)).Error("upload image")
		return "", entity.PersistenceError(err)
	}
	if size > s.opts.MaxSize {
		s.dropImage(ctx, id)
		return "", entity.NewValidationError(entity.FileTooLargeError(upload.Filename, size, s.opts.MaxSize).Error())
	}
	return id, nil
}

// dropImage removes a stored image; failures are only logged.
func (s *Service) dropImage(ctx context.Context, id string) {
	if id == "" {
		return
	}
	if err := s.images.DeleteImage(ctx, id); err != nil {
		s.log.With(
			slog.String("image", id),
			sl.Err(err),
		).Warn("delete image")
	}
}

// Image opens a stored image after checking the signed URL parameters.
func (s *Service) Image(ctx context.Context, id, expires, sig string) (string, string, io.ReadCloser, error) {
	if !fileurl.Verify(id, expires, sig, s.opts.URLSecret) {
		return "", "", nil, entity.AuthorizationError("image link is invalid or has expired")
	}
	filename, meta, reader, err := s.images.DownloadImage(ctx, id)
	if err != nil {
		return "", "", nil, entity.NotFoundError("image " + id)
	}
	return filename, meta.MIMEType, reader, nil
}

package memory

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"SmartShop/entity"
)

func (s *Store) UploadImage(_ context.Context, filename string, reader io.Reader, meta entity.ImageMetadata) (string, int64, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", 0, fmt.Errorf("read image: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.imageSeq++
	id := fmt.Sprintf("img%06d", s.imageSeq)
	s.images[id] = &image{filename: filename, meta: meta, data: data}
	return id, int64(len(data)), nil
}

func (s *Store) DownloadImage(_ context.Context, id string) (string, entity.ImageMetadata, io.ReadCloser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	img, ok := s.images[id]
	if !ok {
		return "", entity.ImageMetadata{}, nil, entity.NotFoundError("image " + id)
	}
	return img.filename, img.meta, io.NopCloser(bytes.NewReader(img.data)), nil
}

func (s *Store) DeleteImage(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.images[id]; !ok {
		return entity.NotFoundError("image " + id)
	}
	delete(s.images, id)
	return nil
}

package repository

import (
	"context"
	"fmt"
	"io"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"SmartShop/entity"
)

const imagesBucket = "product_images"

func (m *MongoDB) imageBucket(connection *mongo.Client) (*gridfs.Bucket, error) {
	bucket, err := gridfs.NewBucket(connection.Database(m.database), options.GridFSBucket().SetName(imagesBucket))
	if err != nil {
		return nil, fmt.Errorf("gridfs bucket: %w", err)
	}
	return bucket, nil
}

// UploadImage stores an image in GridFS and returns its hex id and size.
func (m *MongoDB) UploadImage(ctx context.Context, filename string, reader io.Reader, meta entity.ImageMetadata) (string, int64, error) {
	connection, err := m.connect(ctx)
	if err != nil {
		return "", 0, err
	}
	defer m.disconnect(connection)

	bucket, err := m.imageBucket(connection)
	if err != nil {
		return "", 0, err
	}

	uploadOpts := options.GridFSUpload().SetMetadata(meta)
	uploadStream, err := bucket.OpenUploadStream(filename, uploadOpts)
	if err != nil {
		return "", 0, fmt.Errorf("gridfs open upload: %w", err)
	}

	size, err := io.Copy(uploadStream, reader)
	if err != nil {
		_ = uploadStream.Abort()
		return "", 0, fmt.Errorf("gridfs copy: %w", err)
	}

	if err := uploadStream.Close(); err != nil {
		return "", 0, fmt.Errorf("gridfs close upload: %w", err)
	}

	fileID := uploadStream.FileID.(primitive.ObjectID)
	return fileID.Hex(), size, nil
}

// gridfsReadCloser wraps a GridFS download stream and disconnects
// the MongoDB client when closed.
type gridfsReadCloser struct {
	stream     *gridfs.DownloadStream
	disconnect func()
}

func (r *gridfsReadCloser) Read(p []byte) (int, error) {
	return r.stream.Read(p)
}

func (r *gridfsReadCloser) Close() error {
	err := r.stream.Close()
	r.disconnect()
	return err
}

// DownloadImage opens an image by id.
// The caller must close the returned ReadCloser to release the MongoDB connection.
func (m *MongoDB) DownloadImage(ctx context.Context, id string) (string, entity.ImageMetadata, io.ReadCloser, error) {
	fileID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return "", entity.ImageMetadata{}, nil, entity.NotFoundError("image " + id)
	}

	connection, err := m.connect(ctx)
	if err != nil {
		return "", entity.ImageMetadata{}, nil, err
	}

	bucket, err := m.imageBucket(connection)
	if err != nil {
		m.disconnect(connection)
		return "", entity.ImageMetadata{}, nil, err
	}

	stream, err := bucket.OpenDownloadStream(fileID)
	if err != nil {
		m.disconnect(connection)
		return "", entity.ImageMetadata{}, nil, fmt.Errorf("gridfs open download: %w", err)
	}

	file := stream.GetFile()

	var meta entity.ImageMetadata
	if len(file.Metadata) > 0 {
		if err := bson.Unmarshal(file.Metadata, &meta); err != nil {
			m.log.Error("failed to unmarshal gridfs metadata", "error", err.Error())
		}
	}

	reader := &gridfsReadCloser{
		stream:     stream,
		disconnect: func() { m.disconnect(connection) },
	}

	return file.Name, meta, reader, nil
}

func (m *MongoDB) DeleteImage(ctx context.Context, id string) error {
	fileID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return entity.NotFoundError("image " + id)
	}

	connection, err := m.connect(ctx)
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	bucket, err := m.imageBucket(connection)
	if err != nil {
		return err
	}
	if err = bucket.DeleteContext(ctx, fileID); err != nil {
		return fmt.Errorf("gridfs delete: %w", err)
	}
	return nil
}

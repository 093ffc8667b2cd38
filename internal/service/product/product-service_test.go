package product

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"testing"
	"time"

	"SmartShop/entity"
	"SmartShop/internal/database/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	seller = &entity.UserAuth{ID: "s1", Role: entity.SellerRole}
	rival  = &entity.UserAuth{ID: "s2", Role: entity.SellerRole}
	buyer  = &entity.UserAuth{ID: "u1", Role: entity.ClientRole}
)

func newService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	store := memory.New()
	s := NewProductService(store, store, Options{
		AllowedExtensions: []string{"png", "jpg"},
		MaxSize:           1024,
		URLSecret:         "secret",
		URLTTL:            time.Hour,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return s, store
}

func input(t *testing.T, name, price, category, stock string) *entity.ProductInput {
	t.Helper()
	in, err := entity.ParseProductInput(name, name+" description", price, category, stock)
	require.NoError(t, err)
	return in
}

func image(name, body string) *entity.ImageUpload {
	return &entity.ImageUpload{
		Filename: name,
		MIMEType: "image/png",
		Size:     int64(len(body)),
		Reader:   strings.NewReader(body),
	}
}

func TestCreateAndGet(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()

	p, err := s.Create(ctx, seller, input(t, "Kettle", "25.5", "Kitchen", "3"), image("my kettle.png", "png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "s1", p.SellerID)
	assert.NotEmpty(t, p.ImageID)
	require.NotEmpty(t, p.ImageURL)

	got, err := s.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kettle", got.Name)
	assert.InDelta(t, 25.5, got.Price, 0.001)

	u, err := url.Parse(got.ImageURL)
	require.NoError(t, err)
	filename, mime, reader, err := s.Image(ctx, p.ImageID, u.Query().Get("expires"), u.Query().Get("sig"))
	require.NoError(t, err)
	defer reader.Close()
	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
	assert.Equal(t, "image/png", mime)
	assert.True(t, strings.HasSuffix(filename, "_my_kettle.png"), filename)

	_, _, _, err = s.Image(ctx, p.ImageID, u.Query().Get("expires"), "forged")
	assert.ErrorIs(t, err, entity.ErrAuthorization)

	_, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestCreateRules(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()

	_, err := s.Create(ctx, buyer, input(t, "Kettle", "10", "Kitchen", "1"), nil)
	assert.ErrorIs(t, err, entity.ErrAuthorization)

	_, err = s.Create(ctx, seller, input(t, "Kettle", "10", "Kitchen", "1"), image("virus.exe", "x"))
	assert.ErrorIs(t, err, entity.ErrValidation)

	_, err = s.Create(ctx, seller, input(t, "Kettle", "10", "Kitchen", "1"), image("big.png", strings.Repeat("x", 2048)))
	assert.ErrorIs(t, err, entity.ErrValidation)

	// declared size is small but the body is not
	lying := image("big.png", strings.Repeat("x", 2048))
	lying.Size = 10
	_, err = s.Create(ctx, seller, input(t, "Kettle", "10", "Kitchen", "1"), lying)
	assert.ErrorIs(t, err, entity.ErrValidation)

	p, err := s.Create(ctx, seller, input(t, "Kettle", "10", "Kitchen", "1"), nil)
	require.NoError(t, err)
	assert.Empty(t, p.ImageURL)
}

func TestParseProductInput(t *testing.T) {
	_, err := entity.ParseProductInput("Kettle", "d", "abc", "Kitchen", "1")
	assert.ErrorIs(t, err, entity.ErrValidation)
	_, err = entity.ParseProductInput("Kettle", "d", "1", "Kitchen", "x")
	assert.ErrorIs(t, err, entity.ErrValidation)
	_, err = entity.ParseProductInput("", "d", "1", "Kitchen", "1")
	assert.ErrorIs(t, err, entity.ErrValidation)
	_, err = entity.ParseProductInput("Kettle", "d", "-1", "Kitchen", "1")
	assert.ErrorIs(t, err, entity.ErrValidation)
}

func TestUpdateReplacesImage(t *testing.T) {
	s, store := newService(t)
	ctx := context.Background()

	p, err := s.Create(ctx, seller, input(t, "Kettle", "10", "Kitchen", "1"), image("a.png", "old"))
	require.NoError(t, err)
	oldImage := p.ImageID

	_, err = s.Update(ctx, rival, p.ID, input(t, "Stolen", "1", "Kitchen", "1"), nil)
	assert.ErrorIs(t, err, entity.ErrAuthorization)

	updated, err := s.Update(ctx, seller, p.ID, input(t, "Kettle XL", "15", "Kitchen", "4"), image("b.jpg", "new"))
	require.NoError(t, err)
	assert.Equal(t, "Kettle XL", updated.Name)
	assert.Equal(t, 4, updated.StockQuantity)
	assert.NotEqual(t, oldImage, updated.ImageID)

	_, _, _, err = store.DownloadImage(ctx, oldImage)
	assert.ErrorIs(t, err, entity.ErrNotFound)

	kept, err := s.Update(ctx, seller, p.ID, input(t, "Kettle XL", "16", "Kitchen", "4"), nil)
	require.NoError(t, err)
	assert.Equal(t, updated.ImageID, kept.ImageID)
}

func TestDelete(t *testing.T) {
	s, store := newService(t)
	ctx := context.Background()

	p, err := s.Create(ctx, seller, input(t, "Kettle", "10", "Kitchen", "1"), image("a.png", "img"))
	require.NoError(t, err)

	assert.ErrorIs(t, s.Delete(ctx, rival, p.ID), entity.ErrAuthorization)
	assert.ErrorIs(t, s.Delete(ctx, seller, "missing"), entity.ErrNotFound)

	require.NoError(t, s.Delete(ctx, seller, p.ID))
	_, err = s.Get(ctx, p.ID)
	assert.ErrorIs(t, err, entity.ErrNotFound)
	_, _, _, err = store.DownloadImage(ctx, p.ImageID)
	assert.Error(t, err)
}

func TestListFilters(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()

	for _, in := range []*entity.ProductInput{
		input(t, "Red Kettle", "20", "Kitchen", "3"),
		input(t, "Blue Mug", "5", "Kitchen", "0"),
		input(t, "Desk Lamp", "45", "Office", "7"),
	} {
		_, err := s.Create(ctx, seller, in, nil)
		require.NoError(t, err)
	}
	_, err := s.Create(ctx, rival, input(t, "Green Mug", "6", "Kitchen", "2"), nil)
	require.NoError(t, err)

	names := func(filter entity.ProductFilter) []string {
		t.Helper()
		products, err := s.List(ctx, filter)
		require.NoError(t, err)
		var out []string
		for _, p := range products {
			out = append(out, p.Name)
		}
		return out
	}

	assert.ElementsMatch(t, []string{"Blue Mug", "Green Mug"}, names(entity.NewProductFilter("mug", "", "", "", "")))
	assert.ElementsMatch(t, []string{"Desk Lamp"}, names(entity.NewProductFilter("", "Office", "", "", "")))
	assert.ElementsMatch(t, []string{"Red Kettle", "Desk Lamp"}, names(entity.NewProductFilter("", "", "10", "", "")))
	assert.ElementsMatch(t, []string{"Blue Mug", "Green Mug"}, names(entity.NewProductFilter("", "", "abc", "6", "")))
	assert.ElementsMatch(t, []string{"Blue Mug"}, names(entity.NewProductFilter("", "", "", "", "out")))
	assert.Len(t, names(entity.NewProductFilter("", "", "", "", "in")), 3)
	assert.ElementsMatch(t, []string{"Red Kettle"}, names(entity.NewProductFilter("KETTLE DESCRIPTION", "Kitchen", "", "", "in")))

	mine, err := s.ListForSeller(ctx, seller)
	require.NoError(t, err)
	assert.Len(t, mine, 3)
	_, err = s.ListForSeller(ctx, buyer)
	assert.ErrorIs(t, err, entity.ErrAuthorization)

	categories, err := s.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Kitchen", "Office"}, categories)
}

package core

import (
	"context"
	"io"
	"log/slog"

	"SmartShop/entity"
	"SmartShop/internal/lib/sl"
	"SmartShop/internal/service/chatbot"
)

type AuthService interface {
	Signup(ctx context.Context, req *entity.SignupRequest) (*entity.User, error)
	VerifyEmail(ctx context.Context, token string) error
	Login(ctx context.Context, username, password string) (*entity.LoginResult, error)
	AuthenticateByToken(token string) (*entity.UserAuth, error)
	RequestReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
	Me(ctx context.Context, auth *entity.UserAuth) (*entity.User, error)
}

type ProductService interface {
	List(ctx context.Context, filter entity.ProductFilter) ([]entity.Product, error)
	Categories(ctx context.Context) ([]string, error)
	Get(ctx context.Context, id string) (*entity.Product, error)
	ListForSeller(ctx context.Context, seller *entity.UserAuth) ([]entity.Product, error)
	Create(ctx context.Context, seller *entity.UserAuth, input *entity.ProductInput, upload *entity.ImageUpload) (*entity.Product, error)
	Update(ctx context.Context, seller *entity.UserAuth, id string, input *entity.ProductInput, upload *entity.ImageUpload) (*entity.Product, error)
	Delete(ctx context.Context, seller *entity.UserAuth, id string) error
	Image(ctx context.Context, id, expires, sig string) (string, string, io.ReadCloser, error)
}

type CartService interface {
	Cart(ctx context.Context, sessionID string) (*entity.Cart, error)
	Add(ctx context.Context, sessionID, productID string) (*entity.Cart, error)
	Update(ctx context.Context, sessionID string, quantities map[string]int) (*entity.Cart, error)
	Remove(ctx context.Context, sessionID, productID string) (*entity.Cart, error)
}

type OrderService interface {
	Checkout(ctx context.Context, user *entity.UserAuth, sessionID string, shipping entity.Shipping) (*entity.Order, error)
	GetForUser(ctx context.Context, user *entity.UserAuth, id string) (*entity.Order, error)
	ListForUser(ctx context.Context, user *entity.UserAuth) ([]entity.Order, error)
	ListForSeller(ctx context.Context, user *entity.UserAuth) ([]entity.Order, error)
	UpdateStatus(ctx context.Context, orderID, sellerID, status string) (*entity.Order, error)
}

type SupportService interface {
	SubmitQuestion(ctx context.Context, email, phone, question string) (*entity.CustomQuestion, error)
	ListQuestions(ctx context.Context, status string) ([]entity.CustomQuestion, error)
	SetQuestionStatus(ctx context.Context, id, status string) error
}

// Core is the facade the HTTP handlers talk to.
type Core struct {
	chatbot *chatbot.Registry
	auth    AuthService
	ps      ProductService
	carts   CartService
	orders  OrderService
	support SupportService
	log     *slog.Logger
}

func New(registry *chatbot.Registry, log *slog.Logger) *Core {
	return &Core{
		chatbot: registry,
		log:     log.With(sl.Module("core")),
	}
}

func (c *Core) SetAuthService(auth AuthService) {
	c.auth = auth
}

func (c *Core) SetProductService(ps ProductService) {
	c.ps = ps
}

func (c *Core) SetCartService(carts CartService) {
	c.carts = carts
}

func (c *Core) SetOrderService(orders OrderService) {
	c.orders = orders
}

func (c *Core) SetSupportService(support SupportService) {
	c.support = support
}

// Init starts background housekeeping until ctx is done.
func (c *Core) Init(ctx context.Context) {
	if c.chatbot != nil {
		go c.chatbot.Run(ctx)
	}
}

package chatbot

import (
	"fmt"
	"regexp"
)

const FallbackIntent = "fallback"

// IntentDef is the uncompiled form of an intent.
type IntentDef struct {
	Name      string
	Patterns  []string
	Responses []string
}

// IntentRule is a compiled intent. Patterns match whole words, case-insensitively.
type IntentRule struct {
	Name      string
	Patterns  []*regexp.Regexp
	Responses []string
}

// Match reports whether any pattern hits, stopping at the first one.
func (r *IntentRule) Match(msg string) bool {
	for _, p := range r.Patterns {
		if p.MatchString(msg) {
			return true
		}
	}
	return false
}

type ButtonResponse struct {
	ID       string `json:"button_id"`
	Title    string `json:"title"`
	Response string `json:"response"`
}

// RuleSet is the immutable intent and button table shared by all engines.
type RuleSet struct {
	intents  []IntentRule
	fallback *IntentRule
	buttons  []ButtonResponse
	byButton map[string]int
}

func compilePattern(p string) (*regexp.Regexp, error) {
	return regexp.Compile(`(?i)\b` + p + `\b`)
}

// NewRuleSet compiles the tables. Intent order is kept as given and decides
// the order of composed replies.
func NewRuleSet(intents []IntentDef, buttons []ButtonResponse) (*RuleSet, error) {
	rs := &RuleSet{
		intents:  make([]IntentRule, 0, len(intents)),
		buttons:  make([]ButtonResponse, 0, len(buttons)),
		byButton: make(map[string]int, len(buttons)),
	}

	seen := make(map[string]bool, len(intents))
	for _, def := range intents {
		if def.Name == "" {
			return nil, fmt.Errorf("intent without name")
		}
		if seen[def.Name] {
			return nil, fmt.Errorf("duplicate intent %q", def.Name)
		}
		seen[def.Name] = true
		if len(def.Responses) == 0 {
			return nil, fmt.Errorf("intent %q has no responses", def.Name)
		}
		if def.Name == FallbackIntent && len(def.Patterns) > 0 {
			return nil, fmt.Errorf("fallback intent must not have patterns")
		}

		rule := IntentRule{
			Name:      def.Name,
			Patterns:  make([]*regexp.Regexp, 0, len(def.Patterns)),
			Responses: append([]string(nil), def.Responses...),
		}
		for _, p := range def.Patterns {
			re, err := compilePattern(p)
			if err != nil {
				return nil, fmt.Errorf("intent %q pattern %q: %w", def.Name, p, err)
			}
			rule.Patterns = append(rule.Patterns, re)
		}
		rs.intents = append(rs.intents, rule)
	}
	for i := range rs.intents {
		if rs.intents[i].Name == FallbackIntent {
			rs.fallback = &rs.intents[i]
		}
	}

	for _, b := range buttons {
		if b.ID == "" {
			return nil, fmt.Errorf("button without id")
		}
		if _, ok := rs.byButton[b.ID]; ok {
			return nil, fmt.Errorf("duplicate button %q", b.ID)
		}
		rs.byButton[b.ID] = len(rs.buttons)
		rs.buttons = append(rs.buttons, b)
	}

	return rs, nil
}

func MustRuleSet(intents []IntentDef, buttons []ButtonResponse) *RuleSet {
	rs, err := NewRuleSet(intents, buttons)
	if err != nil {
		panic(err)
	}
	return rs
}

// DefaultRuleSet returns the shop's built-in tables.
func DefaultRuleSet() *RuleSet {
	return MustRuleSet(DefaultIntents, DefaultButtons)
}

func (rs *RuleSet) Intents() []IntentRule {
	return rs.intents
}

func (rs *RuleSet) Intent(name string) (*IntentRule, bool) {
	for i := range rs.intents {
		if rs.intents[i].Name == name {
			return &rs.intents[i], true
		}
	}
	return nil, false
}

// Fallback is only ever used when selected explicitly.
func (rs *RuleSet) Fallback() (*IntentRule, bool) {
	return rs.fallback, rs.fallback != nil
}

func (rs *RuleSet) Button(id string) (ButtonResponse, bool) {
	i, ok := rs.byButton[id]
	if !ok {
		return ButtonResponse{}, false
	}
	return rs.buttons[i], true
}

func (rs *RuleSet) Buttons() []ButtonResponse {
	return append([]ButtonResponse(nil), rs.buttons...)
}

var DefaultButtons = []ButtonResponse{
	{
		ID:       "shipping",
		Title:    "Shipping Information",
		Response: "We offer three shipping options:\n1. Standard Shipping (3-5 business days) - Free for orders over $50\n2. Express Shipping (1-2 business days) - $10\n3. Same Day Delivery (selected areas) - $15",
	},
	{
		ID:       "returns",
		Title:    "Return Policy",
		Response: "Our return policy allows returns within 30 days of delivery:\n1. Log into your account\n2. Go to \"Orders\"\n3. Select the order\n4. Click \"Return Item\"\n5. Follow the instructions",
	},
	{
		ID:       "track_order",
		Title:    "Track Order",
		Response: "To track your order:\n1. Log into your account\n2. Go to \"Orders\"\n3. Find your order\n4. Click \"Track Order\"\nYou'll see real-time updates on your order status.",
	},
	{
		ID:       "payment",
		Title:    "Payment Methods",
		Response: "We accept multiple payment methods:\n- All major credit/debit cards\n- PayPal\n- Bank transfer\n- Cash on delivery (selected areas)",
	},
	{
		ID:       "pricing",
		Title:    "Pricing & Discounts",
		Response: "Our pricing includes:\n- Competitive market rates\n- Volume discounts\n- Seasonal promotions\n- Special member prices\n- First-time buyer offers",
	},
	{
		ID:       "refund",
		Title:    "Refund Policy",
		Response: "Refund process:\n1. Return the item within 30 days\n2. Once received, refund is processed\n3. Refund appears in 5-7 business days\n4. Original payment method is credited",
	},
	{
		ID:       "warranty",
		Title:    "Warranty Information",
		Response: "Our warranty policy:\n- Standard warranty: 1 year\n- Extended warranty available\n- Covers manufacturing defects\n- Free repair or replacement",
	},
	{
		ID:       "product_info",
		Title:    "Product Details",
		Response: "Product information includes:\n- Full specifications\n- Features and benefits\n- Customer reviews\n- Related products\n- Size and color options",
	},
	{
		ID:       "availability",
		Title:    "Stock Availability",
		Response: "Stock information:\n- Real-time inventory updates\n- Back-in-stock notifications\n- Pre-order options\n- Store availability checker",
	},
	{
		ID:       "contact",
		Title:    "Contact Us",
		Response: "You can reach us through:\n- Email: support@smartshop.com\n- Phone: 1-800-SHOP\n- Live chat: Available 24/7\n- Social media: @SmartShopOfficial",
	},
	{
		ID:       "hours",
		Title:    "Business Hours",
		Response: "Our service hours:\n- Online store: 24/7\n- Customer service: 24/7\n- Phone support: 9 AM - 9 PM EST\n- Live chat: 24/7",
	},
	{
		ID:       "faq",
		Title:    "FAQ",
		Response: "Common questions:\n1. How do I track my order?\n2. What is your return policy?\n3. How do I change my order?\n4. What payment methods do you accept?\nFor more FAQs, visit our Help Center.",
	},
}

var DefaultIntents = []IntentDef{
	{
		Name:     "greeting",
		Patterns: []string{`hi`, `hello`, `hey`, `greetings`, `good morning`, `good afternoon`, `good evening`},
		Responses: []string{
			"Hello! Welcome to SmartShop. How can I assist you today?",
			"Hi there! I'm your SmartShop assistant. What can I help you with?",
			"Welcome to SmartShop! How may I help you with your shopping today?",
		},
	},
	{
		Name:     "order_status",
		Patterns: []string{`order status`, `where is my order`, `track order`, `order tracking`, `when will i get my order`, `order delivery`},
		Responses: []string{
			"To check your order status, please visit the \"Orders\" section in your account. You can track your order's current location and estimated delivery date there.",
			"You can track your order by logging into your account and visiting the \"Orders\" section. Each order has a detailed tracking history.",
			"For real-time order tracking, please check the \"Orders\" section in your account. You'll find the current status and delivery updates there.",
		},
	},
	{
		Name:     "shipping",
		Patterns: []string{`shipping`, `delivery`, `when will i receive`, `shipping time`, `delivery time`, `how long to deliver`, `shipping cost`},
		Responses: []string{
			"We offer three shipping options:\n1. Standard Shipping (3-5 business days) - Free for orders over $50\n2. Express Shipping (1-2 business days) - $10\n3. Same Day Delivery (selected areas) - $15",
			"Shipping times vary by location:\n- Local deliveries: 1-2 business days\n- National deliveries: 3-5 business days\n- International: 7-14 business days",
			"Our standard shipping is free for orders over $50. Express shipping is available for faster delivery at an additional cost.",
		},
	},
	{
		Name:     "returns",
		Patterns: []string{`return`, `refund`, `exchange`, `how to return`, `return policy`, `refund policy`, `return item`},
		Responses: []string{
			"Our return policy allows returns within 30 days of delivery:\n1. Log into your account\n2. Go to \"Orders\"\n3. Select the order\n4. Click \"Return Item\"\n5. Follow the instructions",
			"You can return items within 30 days if they're unused and in original packaging. Refunds are processed within 5-7 business days after we receive the item.",
			"To initiate a return:\n1. Visit the \"Returns\" section in your account\n2. Select the item(s) to return\n3. Print the return label\n4. Ship the item back",
		},
	},
	{
		Name:     "payment",
		Patterns: []string{`payment`, `pay`, `credit card`, `debit card`, `payment method`, `how to pay`, `payment options`},
		Responses: []string{
			"We accept multiple payment methods:\n- All major credit/debit cards\n- PayPal\n- Bank transfer\n- Cash on delivery (selected areas)",
			"You can pay using:\n1. Credit/Debit cards (Visa, MasterCard, American Express)\n2. PayPal\n3. Bank transfer\n4. Cash on delivery (limited areas)",
			"Our secure payment system accepts all major credit cards, PayPal, and bank transfers. All transactions are encrypted for your security.",
		},
	},
	{
		Name:     "pricing",
		Patterns: []string{`price`, `cost`, `how much`, `pricing`, `discount`, `sale`, `promotion`, `offer`},
		Responses: []string{
			"Prices are listed on each product page. We offer:\n- Regular discounts for bulk orders\n- Seasonal sales\n- Loyalty program discounts\n- First-time buyer offers",
			"Our pricing includes:\n- Competitive market rates\n- Volume discounts\n- Seasonal promotions\n- Special member prices",
			"Check our website for current prices and promotions. We regularly update our offers and discounts.",
		},
	},
	{
		Name:     "contact",
		Patterns: []string{`contact`, `support`, `help`, `customer service`, `email`, `phone`, `call`, `speak to`},
		Responses: []string{
			"You can reach us through:\n- Email: support@smartshop.com\n- Phone: 1-800-SHOP\n- Live chat: Available 24/7\n- Social media: @SmartShopOfficial",
			"Our customer service team is available:\n- 24/7 via email and live chat\n- Phone support: 9 AM - 9 PM EST\n- Social media: @SmartShopOfficial",
			"For immediate assistance:\n1. Use our live chat (24/7)\n2. Email: support@smartshop.com\n3. Call: 1-800-SHOP (9 AM - 9 PM EST)",
		},
	},
	{
		Name:     "hours",
		Patterns: []string{`hours`, `open`, `business hours`, `operating hours`, `when are you open`, `working hours`},
		Responses: []string{
			"Our service hours:\n- Online store: 24/7\n- Customer service: 24/7\n- Phone support: 9 AM - 9 PM EST\n- Live chat: 24/7",
			"We're always open online! Customer service is available through:\n- Live chat: 24/7\n- Phone: 9 AM - 9 PM EST\n- Email: 24/7",
		},
	},
	{
		Name:     "account",
		Patterns: []string{`account`, `login`, `sign in`, `register`, `sign up`, `create account`, `password`, `forgot password`},
		Responses: []string{
			"To manage your account:\n1. Click \"Sign In\" at the top right\n2. For new accounts, click \"Register\"\n3. For password reset, use \"Forgot Password\"",
			"Account features include:\n- Order history\n- Saved addresses\n- Payment methods\n- Wishlist\n- Account settings",
			"You can create an account by clicking \"Register\" at the top right. Benefits include:\n- Faster checkout\n- Order tracking\n- Saved preferences",
		},
	},
	{
		Name:     "product_info",
		Patterns: []string{`product`, `item`, `description`, `details`, `specifications`, `features`, `what is`, `tell me about`},
		Responses: []string{
			"Product details are available on each product page, including:\n- Full description\n- Specifications\n- Customer reviews\n- Related items",
			"You can find detailed product information on the product page, including:\n- Features\n- Specifications\n- Reviews\n- Shipping info",
			"Each product page contains comprehensive information about:\n- Product details\n- Technical specifications\n- Customer reviews\n- Availability",
		},
	},
	{
		Name:     "warranty",
		Patterns: []string{`warranty`, `guarantee`, `product guarantee`, `warranty period`, `how long warranty`},
		Responses: []string{
			"Our warranty policy:\n- Standard warranty: 1 year\n- Extended warranty available\n- Covers manufacturing defects\n- Free repair or replacement",
			"Products come with:\n- 1-year standard warranty\n- Option to purchase extended warranty\n- Coverage for defects\n- Quick repair service",
		},
	},
	{
		Name:     "loyalty",
		Patterns: []string{`loyalty`, `rewards`, `points`, `member benefits`, `loyalty program`, `rewards program`},
		Responses: []string{
			"Our loyalty program benefits:\n- Earn points on every purchase\n- Exclusive member discounts\n- Early access to sales\n- Birthday rewards\n- Free shipping for members",
			"Join our loyalty program to get:\n- 1 point per $1 spent\n- Special member-only deals\n- Priority customer service\n- Free shipping on all orders",
		},
	},
	{
		Name: FallbackIntent,
		Responses: []string{
			"I apologize, but I don't have information about that. Please contact our customer service team at support@smartshop.com for assistance.",
			"I'm not sure about that. For detailed information, please reach out to our customer service team at support@smartshop.com.",
			"I don't have that information. You can get help from our customer service team by emailing support@smartshop.com or calling 1-800-SHOP.",
		},
	},
}

package chatbot

// History is a fixed-capacity FIFO of normalized messages.
type History struct {
	items []string
	start int
	size  int
}

func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{items: make([]string, capacity)}
}

func (h *History) Push(msg string) {
	capacity := len(h.items)
	if h.size < capacity {
		h.items[(h.start+h.size)%capacity] = msg
		h.size++
		return
	}
	h.items[h.start] = msg
	h.start = (h.start + 1) % capacity
}

// Items returns the messages oldest first.
func (h *History) Items() []string {
	out := make([]string, h.size)
	for i := 0; i < h.size; i++ {
		out[i] = h.items[(h.start+i)%len(h.items)]
	}
	return out
}

func (h *History) Len() int {
	return h.size
}

func (h *History) Cap() int {
	return len(h.items)
}

package stability

import (
	"errors"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"adforge/pkg/queue"
	"adforge/pkg/utils"
)

// Queue runs generations one at a time against the Stability API.
type Queue struct {
	client *Client
	stop   chan struct{}
	items  chan *item
	once   sync.Once
}

type item struct {
	request  *queue.Request
	response chan []io.Reader
	err      chan error
}

func New(apiKey string) *Queue {
	return &Queue{
		client: NewClient(apiKey),
		items:  make(chan *item, 100),
		stop:   make(chan struct{}),
	}
}

func (q *Queue) Start() {
	go q.processLoop()
}

func (q *Queue) Stop() {
	q.once.Do(func() { close(q.stop) })
}

// Add enqueues a generation without blocking. A full queue is refused.
func (q *Queue) Add(req *queue.Request) (chan []io.Reader, chan error, error) {
	respCh := make(chan []io.Reader, 1)
	errCh := make(chan error, 1)

	select {
	case q.items <- &item{
		request:  req,
		response: respCh,
		err:      errCh,
	}:
		return respCh, errCh, nil
	default:
		return nil, nil, errors.New("queue is full")
	}
}

func (q *Queue) processLoop() {
	log.Info("image queue started")
	for {
		select {
		case <-q.stop:
			log.Info("image queue stopped")
			return
		case it := <-q.items:
			q.processItem(it)
		}
	}
}

func (q *Queue) processItem(it *item) {
	log.Info("processing image generation", "prompt", utils.LimitStr(it.request.Prompt, 50))

	images, err := q.client.Generate(it.request)
	if err != nil {
		log.Error("image generation failed", "err", err)
		it.err <- err
		close(it.response)
		return
	}

	it.response <- images
	close(it.err)
}

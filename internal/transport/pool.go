package transport

import (
	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"
)

const taskChanSize = 100

// WorkerFunc processes one queued task; t.Dying() is closed when the pool
// is shutting down.
type WorkerFunc func(t *tomb.Tomb, task any) error

// WorkerPool is a bounded pool of goroutines draining a shared task
// channel. Workers only perform socket I/O and message decoding; book
// mutation happens elsewhere, on the session handler goroutine.
type WorkerPool struct {
	size  int
	tasks chan any
}

// NewWorkerPool constructs a pool with the given number of workers.
func NewWorkerPool(size int) *WorkerPool {
	return &WorkerPool{
		size:  size,
		tasks: make(chan any, taskChanSize),
	}
}

// AddTask enqueues a task for some worker to pick up.
func (p *WorkerPool) AddTask(task any) {
	p.tasks <- task
}

// Setup starts size workers under t, each repeatedly calling work on the
// next queued task until t is dying.
func (p *WorkerPool) Setup(t *tomb.Tomb, work WorkerFunc) {
	log.Info().Int("workers", p.size).Msg("starting worker pool")
	for i := 0; i < p.size; i++ {
		t.Go(func() error {
			return p.run(t, work)
		})
	}
}

func (p *WorkerPool) run(t *tomb.Tomb, work WorkerFunc) error {
	for {
		select {
		case <-t.Dying():
			return nil
		case task := <-p.tasks:
			if err := work(t, task); err != nil {
				log.Error().Err(err).Msg("worker task failed")
			}
		}
	}
}

package transcription

import (
	"log"
	"sync"
	"time"
)

// Task represents one candidate's submission job
type Task struct {
	ID        string              // Unique ID for the task
	Index     int                 // Position of the candidate in the batch
	Process   func() *Result      // Function to execute; never fails, worst case is a demo result
	Result    chan *Result        // Channel to receive the result
	Timestamp time.Time           // When the task was created
}

// NewTask creates a new task for the candidate at the given batch position
func NewTask(id string, index int, process func() *Result) *Task {
	return &Task{
		ID:        id,
		Index:     index,
		Process:   process,
		Result:    make(chan *Result, 1),
		Timestamp: time.Now(),
	}
}

// WorkerPool runs submission tasks with bounded concurrency. A pool with a
// single worker degenerates to the strictly sequential behavior the pipeline
// ships with; raising the worker count is a configuration change only.
type WorkerPool struct {
	tasks   chan *Task
	workers int
	wg      sync.WaitGroup
	quit    chan struct{}
	active  map[string]*Task
	mu      sync.RWMutex
}

// NewWorkerPool creates and starts a worker pool
func NewWorkerPool(workers, queueSize int) *WorkerPool {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}

	pool := &WorkerPool{
		tasks:   make(chan *Task, queueSize),
		workers: workers,
		quit:    make(chan struct{}),
		active:  make(map[string]*Task),
	}
	pool.start()
	return pool
}

// start launches the workers
func (p *WorkerPool) start() {
	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go p.worker(i)
	}
}

// Stop stops the worker pool after in-flight tasks finish
func (p *WorkerPool) Stop() {
	close(p.quit)
	p.wg.Wait()
}

// Submit adds a task to the pool
func (p *WorkerPool) Submit(task *Task) error {
	p.mu.Lock()
	p.active[task.ID] = task
	p.mu.Unlock()

	select {
	case p.tasks <- task:
		return nil
	default:
		// Queue is full
		p.mu.Lock()
		delete(p.active, task.ID)
		p.mu.Unlock()
		return ErrQueueFull
	}
}

// ActiveTasks returns the number of tasks submitted but not yet finished
func (p *WorkerPool) ActiveTasks() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.active)
}

// worker drains the queue until the pool is stopped
func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	for {
		select {
		case task := <-p.tasks:
			result := task.Process()

			p.mu.Lock()
			delete(p.active, task.ID)
			p.mu.Unlock()

			task.Result <- result
		case <-p.quit:
			log.Printf("Worker %d stopping", id)
			return
		}
	}
}

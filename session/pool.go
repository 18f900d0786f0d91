package session

import "github.com/havenwing/pawnbot/engine"

// searchJob is one unit of work submitted to a SearchPool: search board
// from color's perspective and deliver the result on reply. reply is
// buffered size 1 so a worker's send never blocks even if nobody is
// left to receive it (the per-game task exited on Abort, say).
type searchJob struct {
	board engine.Board
	color engine.Color
	reply chan SearchResult
}

// SearchResult is what a search worker hands back to the submitting game.
type SearchResult struct {
	Move  engine.Move
	Value engine.Evaluation
}

// SearchPool is a fixed-size pool of goroutines evaluating searchJobs.
// Workers never suspend mid-negamax; once started, a job runs to
// completion even if its reply is later abandoned.
type SearchPool struct {
	jobs chan searchJob
	done chan struct{}
}

// NewSearchPool starts n worker goroutines.
func NewSearchPool(n int) *SearchPool {
	if n < 1 {
		n = 1
	}
	p := &SearchPool{jobs: make(chan searchJob), done: make(chan struct{})}
	for i := 0; i < n; i++ {
		go p.worker()
	}
	return p
}

func (p *SearchPool) worker() {
	for {
		select {
		case job := <-p.jobs:
			move, value := engine.Search(job.board, job.color)
			job.reply <- SearchResult{Move: move, Value: value}
		case <-p.done:
			return
		}
	}
}

// Submit enqueues a search and returns the one-shot channel its result
// will arrive on.
func (p *SearchPool) Submit(board engine.Board, color engine.Color) chan SearchResult {
	reply := make(chan SearchResult, 1)
	p.jobs <- searchJob{board: board, color: color, reply: reply}
	return reply
}

// Close stops every worker goroutine. In-flight jobs still run to
// completion and deliver to their (buffered, so never-blocking) reply
// channel; nobody is obligated to receive from it afterwards.
func (p *SearchPool) Close() {
	close(p.done)
}

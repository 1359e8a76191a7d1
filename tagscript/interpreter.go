// Package tagscript evaluates block-structured script tags.
//
// A tag is text containing blocks like {if(cond):then&&else} or
// {random:a,b,c}. Blocks may nest; inner blocks evaluate before the blocks
// that contain them, and each block's output is spliced back into the text
// in its place. Evaluation walks a fixed list of blocks found in the input,
// so every finite input terminates.
//
// Malformed blocks never fail a script. A block whose arguments do not
// parse, or which no registered Block accepts, is left in the text or
// replaced with nothing, and evaluation continues.
package tagscript

import (
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/sablebot/scripting/metrics"
)

// Response is the result of one evaluation.
type Response struct {
	// Body is the evaluated text.
	Body string
	// Actions collects side effects defined by blocks, such as the "embeds"
	// list built by the embed block.
	Actions map[string]any
	// Variables is the evaluation's variable environment. It is seeded by
	// the caller and mutated by assignment blocks; lookups during the same
	// evaluation see those writes.
	Variables map[string]string

	overridden bool
}

// Override sets the response body, discarding whatever the remaining
// evaluation would otherwise produce as the body.
func (r *Response) Override(body string) {
	r.Body = body
	r.overridden = true
}

// Context carries one block evaluation's inputs.
type Context struct {
	// Verb is the parsed block under evaluation.
	Verb *Verb
	// Original is the input text as passed to Process.
	Original string
	// Interpreter is the evaluating interpreter.
	Interpreter *Interpreter
	// Response is the in-progress response, shared by all blocks of one
	// evaluation.
	Response *Response
}

// Block evaluates one kind of tag block.
type Block interface {
	// WillAccept reports whether the block applies to the verb in ctx.
	WillAccept(ctx *Context) bool
	// Process evaluates the block. If ok is false the block declined to
	// produce output and the next accepting block is tried. Returning an
	// error of type *Stop halts the evaluation.
	Process(ctx *Context) (out string, ok bool, err error)
}

// Stop is returned by a block to halt evaluation. Text becomes the remainder
// of the body after the point at which evaluation stopped.
type Stop struct {
	Text string
}

func (s *Stop) Error() string { return "script stopped" }

// WorkloadError reports that an evaluation exceeded its character limit.
type WorkloadError struct {
	Attempted, Limit int
}

func (e *WorkloadError) Error() string {
	return fmt.Sprintf("script workload exceeded: %d/%d characters", e.Attempted, e.Limit)
}

// Interpreter evaluates tags against a list of blocks. An Interpreter is
// stateless across calls and safe for concurrent use.
type Interpreter struct {
	blocks []Block

	// CharLimit bounds the total characters produced by block outputs in
	// one evaluation. Zero means no limit.
	CharLimit int
	// VerbLimit bounds the parsed length of a single block. Zero means the
	// default of 2000.
	VerbLimit int
	// Metrics, if set, observes evaluation counts and latency.
	Metrics *metrics.Metrics
}

// New returns an interpreter evaluating the given blocks, in order.
func New(blocks ...Block) *Interpreter {
	return &Interpreter{blocks: blocks}
}

// node is a bracketed span awaiting evaluation.
type node struct {
	start, end int
}

// buildTree finds every bracketed span in evaluation order. Spans are
// ordered by closing brace, so nested blocks come before the blocks
// containing them. A backslash before a brace hides it from the scan.
func buildTree(msg string) []node {
	var nodes []node
	var starts []int
	prev := byte(0)
	for i := 0; i < len(msg); i++ {
		c := msg[i]
		if c == '{' && prev != '\\' {
			starts = append(starts, i)
		}
		if c == '}' && prev != '\\' && len(starts) > 0 {
			nodes = append(nodes, node{start: starts[len(starts)-1], end: i})
			starts = starts[:len(starts)-1]
		}
		prev = c
	}
	return nodes
}

// Process evaluates msg with the given seed variables. The returned error is
// non-nil only for a workload limit violation; malformed script is never an
// error.
func (in *Interpreter) Process(msg string, seed map[string]string) (*Response, error) {
	if in.Metrics != nil {
		in.Metrics.RendersCount.Observe(1)
		start := time.Now()
		defer func() {
			in.Metrics.RenderLatency.Observe(time.Since(start).Seconds())
		}()
	}
	resp := &Response{
		Actions:   make(map[string]any),
		Variables: make(map[string]string, len(seed)),
	}
	maps.Copy(resp.Variables, seed)

	nodes := buildTree(msg)
	final := msg
	work := 0
	for i := range nodes {
		start, end := nodes[i].start, nodes[i].end
		if start < 0 || end >= len(final) || start >= end {
			// Coordinates went stale; skip rather than fault on
			// user-authored input.
			continue
		}
		ctx := &Context{
			Verb:        parseVerb(final[start:end+1], in.verbLimit()),
			Original:    msg,
			Interpreter: in,
			Response:    resp,
		}
		out, ok, err := in.processBlocks(ctx)
		if err != nil {
			if stop, isStop := err.(*Stop); isStop {
				return in.finish(resp, final[:start]+stop.Text), nil
			}
			return resp, err
		}
		if !ok {
			continue
		}
		work += len(out)
		if in.CharLimit > 0 && work > in.CharLimit {
			if in.Metrics != nil {
				in.Metrics.WorkloadsCount.Observe(1)
			}
			return resp, &WorkloadError{Attempted: work, Limit: in.CharLimit}
		}
		diff := len(out) - (end + 1 - start)
		final = final[:start] + out + final[end+1:]
		for j := i + 1; j < len(nodes); j++ {
			if nodes[j].start > start {
				nodes[j].start += diff
			}
			if nodes[j].end > start {
				nodes[j].end += diff
			}
		}
	}
	return in.finish(resp, final), nil
}

// processBlocks tries each accepting block in order and keeps the first
// output produced.
func (in *Interpreter) processBlocks(ctx *Context) (string, bool, error) {
	for _, b := range in.blocks {
		if !b.WillAccept(ctx) {
			continue
		}
		out, ok, err := b.Process(ctx)
		if err != nil {
			return "", false, err
		}
		if ok {
			if in.Metrics != nil {
				in.Metrics.BlocksCount.Observe(1, strings.ToLower(ctx.Verb.Declaration))
			}
			return out, true, nil
		}
	}
	return "", false, nil
}

func (in *Interpreter) finish(resp *Response, body string) *Response {
	if resp.overridden {
		resp.Body = strings.TrimSpace(resp.Body)
	} else {
		resp.Body = strings.TrimSpace(body)
	}
	return resp
}

func (in *Interpreter) verbLimit() int {
	if in.VerbLimit > 0 {
		return in.VerbLimit
	}
	return 2000
}

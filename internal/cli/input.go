// Package cli handles cmd line input for debugging the spell checker in
// real time.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/searchkit/spellserve/internal/logger"
	"github.com/searchkit/spellserve/pkg/index"
	"github.com/searchkit/spellserve/pkg/query"
	"github.com/searchkit/spellserve/pkg/reply"
	"github.com/searchkit/spellserve/pkg/spell"
)

// InputHandler reads whitespace-separated terms from stdin, spell-checks
// them against the index and prints ranked suggestions.
type InputHandler struct {
	ix         *index.Index
	dicts      spell.Dictionaries
	distance   int
	include    []string
	exclude    []string
	maxTermLen int
	log        *log.Logger
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(ix *index.Index, dicts spell.Dictionaries, distance, maxTermLen int, include, exclude []string) *InputHandler {
	return &InputHandler{
		ix:         ix,
		dicts:      dicts,
		distance:   distance,
		include:    include,
		exclude:    exclude,
		maxTermLen: maxTermLen,
		log:        logger.NewWithConfig("", log.GetLevel(), false, false, log.TextFormatter),
	}
}

// Start begins the interface loop. It continuously prompts for input, reads
// a line from stdin and spell-checks every term on it. The loop terminates
// when stdin closes.
func (h *InputHandler) Start() error {
	h.log.Print("spellserve CLI")
	reader := bufio.NewReader(os.Stdin)
	h.log.Print("type one or more terms and press Enter to spell-check them (Ctrl+C to exit):")

	for {
		h.log.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		h.handleInput(line)
	}
}

// handleInput spell-checks one input line and pretty-prints the result.
func (h *InputHandler) handleInput(line string) {
	var tokens []*query.Node
	for _, term := range strings.Fields(line) {
		if len(term) > h.maxTermLen {
			h.log.Errorf("Term too long: %s", term)
			return
		}
		tokens = append(tokens, query.NewToken(strings.ToLower(term), index.AllFields))
	}

	checker := spell.New(h.ix, h.dicts, spell.Options{
		MaxDistance: h.distance,
		Include:     h.include,
		Exclude:     h.exclude,
	})

	start := time.Now()
	b := reply.NewBuilder()
	if err := checker.Run(b, query.NewUnion(tokens...)); err != nil {
		h.log.Errorf("Spell check failed: %v", err)
		return
	}
	elapsed := time.Since(start)
	h.log.Debugf("Took [ %v ] for line '%s'", elapsed, line)

	result, err := b.Value()
	if err != nil {
		h.log.Errorf("Malformed reply: %v", err)
		return
	}

	blocks, _ := result.([]any)
	if len(blocks) == 0 {
		h.log.Print("All terms spelled correctly.")
		return
	}
	for _, block := range blocks {
		h.printTermBlock(block)
	}
}

// printTermBlock renders one ["TERM", term, suggestions] block.
func (h *InputHandler) printTermBlock(block any) {
	parts, ok := block.([]any)
	if !ok || len(parts) != 3 {
		h.log.Errorf("Unexpected term block shape: %v", block)
		return
	}
	term := parts[1]

	switch suggestions := parts[2].(type) {
	case string:
		h.log.Printf("%s: %s", term, suggestions)
	case []any:
		h.log.Printf("Found %d suggestions for '%s':", len(suggestions), term)
		for i, raw := range suggestions {
			pair, ok := raw.([]any)
			if !ok || len(pair) != 2 {
				continue
			}
			clWord := fmt.Sprintf("\033[38;5;75m%v\033[0m", pair[1])
			h.log.Printf("%2d. %-40s (score: %.4f)", i+1, clWord, pair[0])
		}
	default:
		h.log.Errorf("Unexpected suggestion list shape: %v", parts[2])
	}
}

package fileproc

import "github.com/halcyonic/strata/pkg/parser"

// parserPool recycles parsers across tasks. Tree-sitter parsers hold CGO
// state, so reusing them avoids an allocation and a finalizer per file.
type parserPool struct {
	parsers chan *parser.Parser
}

// newParserPool creates a pool with n parsers ready.
func newParserPool(n int) *parserPool {
	p := &parserPool{parsers: make(chan *parser.Parser, n)}
	for i := 0; i < n; i++ {
		p.parsers <- parser.New()
	}
	return p
}

// get borrows a parser from the pool, blocking until one is free.
func (p *parserPool) get() *parser.Parser {
	return <-p.parsers
}

// put returns a parser to the pool.
func (p *parserPool) put(psr *parser.Parser) {
	p.parsers <- psr
}

// close releases all parsers. Callers must have returned every borrowed
// parser before calling close.
func (p *parserPool) close() {
	close(p.parsers)
	for psr := range p.parsers {
		psr.Close()
	}
}

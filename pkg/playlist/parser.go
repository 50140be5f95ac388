package playlist

import (
	"bufio"
	"errors"
	"io"
	"iter"
	"strings"
)

const (
	extinfTag = "#EXTINF:"
	extgrpTag = "#EXTGRP:"
	utf8BOM   = "\ufeff"

	maxLineSize = 1 << 20 // 1 MiB per line
)

var (
	errNoComma        = errors.New("no title separator")
	errUnclosedQuote  = errors.New("unterminated quoted attribute")
	errEmptyAttribute = errors.New("attribute without name")
)

// Parser reads entries from an M3U playlist one at a time.
// It makes a single pass over the reader and cannot be restarted.
type Parser struct {
	sc    *bufio.Scanner
	line  int
	entry Entry
	stats Stats

	pending *Entry // #EXTINF waiting for its URL
	group   string // #EXTGRP applying to the pending entry
	err     error
}

// NewParser returns a parser reading from r.
func NewParser(r io.Reader) *Parser {
	sc := bufio.NewScanner(r)
	sc.Buffer(nil, maxLineSize)
	return &Parser{
		sc:    sc,
		stats: Stats{Skipped: make(map[SkipReason]int)},
	}
}

// Next advances to the next entry. It returns false at end of input or on
// a read error; check Err afterwards.
func (p *Parser) Next() bool {
	for p.sc.Scan() {
		p.line++
		line := strings.TrimSpace(p.sc.Text())
		if p.line == 1 {
			line = strings.TrimPrefix(line, utf8BOM)
		}
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, extinfTag):
			if p.pending != nil {
				p.skip(SkipMissingURL)
			}
			p.pending = nil
			p.group = ""
			e, err := parseExtinf(line)
			if err != nil {
				p.skip(SkipBadMetadata)
				continue
			}
			e.Line = p.line
			p.pending = &e
		case strings.HasPrefix(line, extgrpTag):
			p.group = strings.TrimSpace(strings.TrimPrefix(line, extgrpTag))
		case strings.HasPrefix(line, "#"):
			// Header and other directives carry nothing we use.
			continue
		default:
			if p.pending == nil {
				p.skip(SkipOrphanURL)
				continue
			}
			e := *p.pending
			p.pending = nil
			e.URL = line
			if e.Attributes[AttrGroupTitle] == "" && p.group != "" {
				e.Attributes[AttrGroupTitle] = p.group
			}
			p.group = ""
			p.entry = e
			p.stats.Entries++
			return true
		}
	}
	if p.pending != nil {
		p.pending = nil
		p.skip(SkipMissingURL)
	}
	p.err = p.sc.Err()
	return false
}

// Entry returns the entry read by the last successful call to Next.
func (p *Parser) Entry() Entry {
	return p.entry
}

// Err returns the first read error, if any.
func (p *Parser) Err() error {
	return p.err
}

// Stats returns counts for the lines consumed so far.
func (p *Parser) Stats() Stats {
	return p.stats
}

func (p *Parser) skip(reason SkipReason) {
	p.stats.Skipped[reason]++
}

// Entries returns an iterator over the entries of p.
func (p *Parser) Entries() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for p.Next() {
			if !yield(p.Entry()) {
				return
			}
		}
	}
}

// ParseAll reads every entry from r.
func ParseAll(r io.Reader) ([]Entry, Stats, error) {
	p := NewParser(r)
	var entries []Entry
	for e := range p.Entries() {
		entries = append(entries, e)
	}
	return entries, p.Stats(), p.Err()
}

// parseExtinf parses `#EXTINF:<duration> key="value" ...,<title>`.
// Commas inside quoted attribute values do not end the attribute list.
func parseExtinf(line string) (Entry, error) {
	rest := strings.TrimLeft(strings.TrimPrefix(line, extinfTag), " \t")
	e := Entry{Attributes: make(map[string]string)}

	i := 0
	for i < len(rest) && rest[i] != ' ' && rest[i] != '\t' && rest[i] != ',' {
		i++
	}
	e.Duration = rest[:i]

	for {
		for i < len(rest) && (rest[i] == ' ' || rest[i] == '\t') {
			i++
		}
		if i >= len(rest) {
			return Entry{}, errNoComma
		}
		if rest[i] == ',' {
			i++
			break
		}
		start := i
		for i < len(rest) && rest[i] != '=' && rest[i] != ' ' && rest[i] != '\t' && rest[i] != ',' {
			i++
		}
		name := strings.ToLower(rest[start:i])
		if i >= len(rest) || rest[i] != '=' {
			// Bare flag without a value.
			if name != "" {
				e.Attributes[name] = ""
			}
			continue
		}
		if name == "" {
			return Entry{}, errEmptyAttribute
		}
		i++ // '='
		var value string
		if i < len(rest) && rest[i] == '"' {
			end := strings.IndexByte(rest[i+1:], '"')
			if end < 0 {
				return Entry{}, errUnclosedQuote
			}
			value = rest[i+1 : i+1+end]
			i += end + 2
		} else {
			start := i
			for i < len(rest) && rest[i] != ' ' && rest[i] != '\t' && rest[i] != ',' {
				i++
			}
			value = rest[start:i]
		}
		e.Attributes[name] = strings.TrimSpace(value)
	}

	e.Title = strings.TrimSpace(rest[i:])
	if e.Title == "" {
		e.Title = e.Attributes[AttrTVGName]
	}
	return e, nil
}

package literate

import "strings"

// State is the position of the Scanner within a document.
type State int

const (
	StateOutside State = iota
	StateInFrontMatter
	StateInCodeBlock
)

func (s State) String() string {
	switch s {
	case StateOutside:
		return "outside"
	case StateInFrontMatter:
		return "front_matter"
	case StateInCodeBlock:
		return "code_block"
	default:
		return "invalid"
	}
}

// Scanner is a line-at-a-time automaton that collects the front matter
// block and the contents of recognized code blocks.
//
// Front matter opens only when the first line of the document is a
// delimiter, matching frontmatter.Split, and closes on the next delimiter.
// Any other `---` line (a setext underline or a thematic break) is ordinary
// content. A fence line opens a block when it names a
// recognized language and closes any open block. Fences naming other
// languages are inert, and so are the lines between them.
type Scanner struct {
	state      State
	lang       Language
	delimiters int
	sawContent bool
	meta       strings.Builder
	blocks     map[Language]*strings.Builder
}

// NewScanner returns a Scanner in StateOutside.
func NewScanner() *Scanner {
	return &Scanner{blocks: make(map[Language]*strings.Builder)}
}

// State reports the current automaton state.
func (s *Scanner) State() State { return s.state }

// Language reports the open block language while in StateInCodeBlock.
func (s *Scanner) Language() Language {
	if s.state != StateInCodeBlock {
		return LanguageUnknown
	}
	return s.lang
}

// Feed advances the automaton by one line. line must not contain the
// trailing newline.
func (s *Scanner) Feed(line string) {
	first := !s.sawContent
	s.sawContent = true

	switch s.state {
	case StateOutside:
		switch {
		case first && isDelimiter(line):
			s.delimiters++
			s.state = StateInFrontMatter
		case isFence(line):
			lang, ok := DetectLanguage(line)
			if !ok {
				return
			}
			if _, exists := s.blocks[lang]; !exists {
				s.blocks[lang] = &strings.Builder{}
			}
			s.lang = lang
			s.state = StateInCodeBlock
		}
	case StateInFrontMatter:
		if isDelimiter(line) {
			s.delimiters++
			s.state = StateOutside
			return
		}
		s.meta.WriteString(line)
		s.meta.WriteByte('\n')
	case StateInCodeBlock:
		if isFence(line) {
			s.state = StateOutside
			s.lang = LanguageUnknown
			return
		}
		b := s.blocks[s.lang]
		b.WriteString(line)
		b.WriteByte('\n')
	}
}

// Result snapshots what has been collected so far.
func (s *Scanner) Result() Document {
	doc := Document{
		FrontMatter:    s.meta.String(),
		HasFrontMatter: s.delimiters > 0,
		Terminated:     s.delimiters >= 2,
		Blocks:         make(Blocks, len(s.blocks)),
	}
	for lang, b := range s.blocks {
		doc.Blocks[lang] = b.String()
	}
	return doc
}

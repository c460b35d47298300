package fluxcsv

// TrimMode controls which whitespace the field processor strips.
type TrimMode int

const (
	// TrimNone performs no whitespace trimming.
	TrimNone TrimMode = iota
	// TrimOutside trims whitespace before quote-stripping, i.e. whitespace
	// surrounding the field as a whole (including around the quotes).
	TrimOutside
	// TrimInside trims whitespace inside the quotes of a quoted field.
	TrimInside
	// TrimBoth applies both TrimOutside and TrimInside.
	TrimBoth
)

// WhitespaceSet is a membership set over the 256 possible byte values,
// used to configure which bytes count as trimmable whitespace.
type WhitespaceSet [256]bool

// NewWhitespaceSet builds a WhitespaceSet containing exactly the bytes in
// chars.
func NewWhitespaceSet(chars string) WhitespaceSet {
	var set WhitespaceSet
	for i := 0; i < len(chars); i++ {
		set[chars[i]] = true
	}
	return set
}

// DefaultWhitespace returns the default trimmable set: space and tab.
func DefaultWhitespace() WhitespaceSet {
	return NewWhitespaceSet(" \t")
}

// Config holds a Reader's settings, immutable for the lifetime of the
// parser. It is validated once, at Reader construction.
type Config struct {
	// Delimiter separates fields. May be one or more bytes; may not be
	// empty, "\r", "\n", or equal to Quote as a single-byte string.
	Delimiter string
	// Quote is the quote character. Zero resolves to '"' unless
	// IgnoreQuotes is set; IgnoreQuotes is what disables quote recognition.
	Quote byte
	// Escape is the character that, inside a quoted field, marks the
	// following byte as literal content rather than structural. Zero
	// defaults to Quote (doubled-quote escaping).
	Escape byte
	// Comment, if AllowComments is set, marks a line as a comment when it
	// is the first byte of a record.
	Comment byte

	// AllowComments enables comment-line skipping using Comment.
	AllowComments bool
	// IgnoreBlankLines causes a record consisting of only a line
	// terminator to be skipped instead of emitted as a single empty field.
	IgnoreBlankLines bool
	// IgnoreQuotes disables all quote handling; Quote becomes an ordinary
	// character and fields are never considered quoted.
	IgnoreQuotes bool
	// LineBreakInQuotedFieldIsBadData causes an embedded CR or LF inside a
	// quoted field to invoke OnBadData when the field is processed.
	LineBreakInQuotedFieldIsBadData bool
	// CountBytes enables the byte_count counter via ByteEncoding.
	CountBytes bool
	// LeaveSourceOpen, if the source implements io.Closer, prevents Close
	// from closing it.
	LeaveSourceOpen bool

	// InitialBufferSize is the starting capacity of the working buffer.
	// Zero selects a reasonable default; the buffer grows on demand.
	InitialBufferSize int

	// Whitespace is the set of bytes considered trimmable by Trim. The
	// zero value resolves to DefaultWhitespace.
	Whitespace WhitespaceSet
	// Trim selects which stage(s) of the field processor's trimming run.
	Trim TrimMode

	// ByteEncoding backs CountBytes. Nil resolves to UTF8Encoding.
	ByteEncoding ByteCountEncoding
	// OnBadData is invoked whenever the field processor detects malformed
	// quoting or a disallowed embedded line break, from within Field or
	// Record. It may panic to abort the parse; the Reader does not recover.
	OnBadData BadDataFunc
}

// DefaultConfig returns the RFC-4180-ish defaults: comma delimiter,
// double-quote, doubled-quote escaping, no comments, no trimming.
func DefaultConfig() Config {
	return Config{
		Delimiter:         ",",
		Quote:             '"',
		InitialBufferSize: defaultBufferSize,
	}
}

func (c *Config) setDefaults() {
	if c.Delimiter == "" {
		c.Delimiter = ","
	}
	if c.Quote == 0 && !c.IgnoreQuotes {
		c.Quote = '"'
	}
	if c.Escape == 0 {
		c.Escape = c.Quote
	}
	if c.InitialBufferSize <= 0 {
		c.InitialBufferSize = defaultBufferSize
	}
	var zero WhitespaceSet
	if c.Whitespace == zero {
		c.Whitespace = DefaultWhitespace()
	}
	if c.ByteEncoding == nil {
		c.ByteEncoding = UTF8Encoding
	}
}

// validate enforces the construction-time character checks, returning a
// ConfigError wrapping the offending sentinel.
func (c Config) validate() error {
	if len(c.Delimiter) == 0 {
		return &ConfigError{Err: ErrInvalidDelimiter, Detail: "delimiter must not be empty"}
	}
	if c.Delimiter == "\r" || c.Delimiter == "\n" {
		return &ConfigError{Err: ErrInvalidDelimiter, Detail: "delimiter must not be a bare line terminator"}
	}
	if !c.IgnoreQuotes && len(c.Delimiter) == 1 && c.Quote != 0 && c.Delimiter[0] == c.Quote {
		return &ConfigError{Err: ErrInvalidDelimiter, Detail: "delimiter must not equal the quote character"}
	}

	if !c.IgnoreQuotes {
		if c.Quote == '\r' || c.Quote == '\n' || c.Quote == 0x00 {
			return &ConfigError{Err: ErrInvalidQuote, Detail: "quote must not be CR, LF, or NUL"}
		}
	}

	if c.Escape == '\r' || c.Escape == '\n' {
		return &ConfigError{Err: ErrInvalidEscape, Detail: "escape must not be CR or LF"}
	}
	if len(c.Delimiter) == 1 && c.Escape == c.Delimiter[0] {
		return &ConfigError{Err: ErrInvalidEscape, Detail: "escape must not equal a single-byte delimiter"}
	}

	return nil
}

package input

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/sortbench/internal/record"
)

// ErrInvalidInput marks malformed or out-of-range input.
var ErrInvalidInput = errors.New("invalid input")

// recordSchema is compiled once per Validator.
var recordSchema = fmt.Sprintf(`
import "strings"

#Record: {
	name:     string & strings.MinRunes(1) & strings.MaxRunes(%d)
	category: string & strings.MinRunes(1) & strings.MaxRunes(%d)
	priority: int & >=%d & <=%d
}
`, record.MaxNameLen, record.MaxCategoryLen, record.MinPriority, record.MaxPriority)

// Validator checks records against the CUE record schema.
// A Validator is not safe for concurrent use.
type Validator struct {
	ctx *cue.Context
	def cue.Value
}

// NewValidator compiles the record schema.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()
	schema := ctx.CompileString(recordSchema, cue.Filename("record.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("failed to compile record schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Record"))
	if !def.Exists() {
		return nil, fmt.Errorf("record schema has no #Record definition")
	}
	return &Validator{ctx: ctx, def: def}, nil
}

// Validate reports whether r satisfies the schema.
func (v *Validator) Validate(r record.Record) error {
	val := v.def.Unify(v.ctx.Encode(r))
	if err := val.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidInput, strings.TrimSpace(cueerrors.Details(err, nil)))
	}
	return nil
}

// Normalize trims surrounding whitespace and applies Unicode NFC.
func Normalize(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// ParseInt parses s as a base-10 integer within [min, max].
func ParseInt(s string, min, max int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidInput, strings.TrimSpace(s))
	}
	if n < min || n > max {
		return 0, fmt.Errorf("%w: value must be between %d and %d", ErrInvalidInput, min, max)
	}
	return n, nil
}

// ParsePriority parses a priority in the record range.
func ParsePriority(s string) (int, error) {
	return ParseInt(s, record.MinPriority, record.MaxPriority)
}

// ParseRecord normalizes the text fields, parses the priority and validates
// the resulting record.
func (v *Validator) ParseRecord(name, category, priority string) (record.Record, error) {
	p, err := ParsePriority(priority)
	if err != nil {
		return record.Record{}, err
	}
	r := record.Record{
		Name:     Normalize(name),
		Category: Normalize(category),
		Priority: p,
	}
	if err := v.Validate(r); err != nil {
		return record.Record{}, err
	}
	return r, nil
}

// Clean normalizes the text fields of r and validates it. Used for records
// that arrive already structured, such as scenario setup entries.
func (v *Validator) Clean(r record.Record) (record.Record, error) {
	r.Name = Normalize(r.Name)
	r.Category = Normalize(r.Category)
	if err := v.Validate(r); err != nil {
		return record.Record{}, err
	}
	return r, nil
}

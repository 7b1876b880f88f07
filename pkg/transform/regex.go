package transform

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/d2jvkpn/faster/pkg/fastq"
)

// IDRegex keeps reads whose ID matches any of Patterns, tried in order.
type IDRegex struct {
	Patterns []*regexp.Regexp
}

func (IDRegex) operator() {}

func (op IDRegex) Apply(src fastq.Source, wt io.Writer) error {
	return each(src, func(rec *fastq.Record) error {
		if !op.Match(rec.ID) {
			return nil
		}
		return emit(wt, rec)
	})
}

func (op IDRegex) Match(id []byte) bool {
	for _, re := range op.Patterns {
		if re.Match(id) {
			return true
		}
	}
	return false
}

func ParseIDRegex(pattern string) (op IDRegex, err error) {
	var re *regexp.Regexp

	if re, err = regexp.Compile(pattern); err != nil {
		return op, &ArgError{Option: "regex-string", Value: pattern, Expected: "a valid regular expression", Err: err}
	}
	op.Patterns = []*regexp.Regexp{re}

	return op, nil
}

// LoadIDRegex reads one pattern per line from r; blank lines are skipped.
func LoadIDRegex(r io.Reader) (op IDRegex, err error) {
	var re *regexp.Regexp

	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		pattern := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(pattern) == "" {
			continue
		}
		if re, err = regexp.Compile(pattern); err != nil {
			return op, &ArgError{
				Option: "regex-file", Value: pattern,
				Expected: fmt.Sprintf("a valid regular expression on line %d", line), Err: err,
			}
		}
		op.Patterns = append(op.Patterns, re)
	}
	if err = scanner.Err(); err != nil {
		return op, err
	}

	if len(op.Patterns) == 0 {
		return op, &ArgError{Option: "regex-file", Value: "", Expected: "at least one pattern"}
	}
	return op, nil
}

func LoadIDRegexFile(path string) (op IDRegex, err error) {
	var file *os.File

	if file, err = os.Open(path); err != nil {
		return op, &ArgError{Option: "regex-file", Value: path, Expected: "a readable file", Err: err}
	}
	defer file.Close()

	return LoadIDRegex(file)
}

package scanner

import (
	"fmt"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/slrkit"
	"github.com/stretchr/testify/assert"
)

var inputStrings = []string{
	"1",
	"1+12",
	"Hello #World",
	`x="mystring" // commented `,
	"1,22,333",
}

var tokenCounts = []int{1, 3, 3, 3, 5}

func TestScan1(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrkit.scanner")
	defer teardown()
	//
	for i, input := range inputStrings {
		t.Logf("------+-----------------+--------")
		reader := strings.NewReader(input)
		name := fmt.Sprintf("input #%d", i)
		scanner := GoTokenizer(name, reader)
		token := scanner.NextToken()
		count := 0
		for token.TokType() != EOF {
			t.Logf(" %4d | %15s | @%5d", token.TokType(), token.Lexeme(), token.Span().From())
			token = scanner.NextToken()
			count++
		}
		if count != tokenCounts[i] {
			t.Errorf("Expected token count for #%d to be %d, is %d", i, tokenCounts[i], count)
		}
	}
	t.Logf("------+-----------------+--------")
}

func TestScanTerminals(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrkit.scanner")
	defer teardown()
	//
	scanner := GoTokenizer("terminals", strings.NewReader("count + 12"),
		Terminals(map[slrkit.TokType]string{Ident: "id", Int: "num"}))
	var terminals []string
	var lexemes []string
	for token := scanner.NextToken(); token.TokType() != EOF; token = scanner.NextToken() {
		terminals = append(terminals, slrkit.Terminal(token))
		lexemes = append(lexemes, Lexeme(token))
	}
	assert.Equal(t, []string{"id", "+", "num"}, terminals)
	assert.Equal(t, []string{"count", "+", "12"}, lexemes)
}

func TestScanSpans(t *testing.T) {
	scanner := GoTokenizer("spans", strings.NewReader("ab  cd"))
	token := scanner.NextToken()
	assert.Equal(t, slrkit.Span{0, 2}, token.Span())
	token = scanner.NextToken()
	assert.Equal(t, slrkit.Span{4, 6}, token.Span())
	assert.Equal(t, uint64(2), token.Span().Len())
}

func TestScanComments(t *testing.T) {
	scanner := GoTokenizer("comments", strings.NewReader("a // note"), SkipComments(false))
	scanner.NextToken()
	token := scanner.NextToken()
	assert.Equal(t, slrkit.TokType(Comment), token.TokType())
	assert.Equal(t, "// note", token.Lexeme())
}

func TestScanErrorHandler(t *testing.T) {
	var errs []error
	scanner := GoTokenizer("errors", strings.NewReader(`"unterminated`))
	scanner.SetErrorHandler(func(err error) {
		errs = append(errs, err)
	})
	for token := scanner.NextToken(); token.TokType() != EOF; token = scanner.NextToken() {
	}
	assert.NotEmpty(t, errs)
}

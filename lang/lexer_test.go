package lang_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbarrick/turtlelogo/lang"
)

func collect(t *testing.T, src string) []lang.Token {
	t.Helper()
	var toks []lang.Token
	for tok := range lang.Lex(strings.NewReader(src)) {
		toks = append(toks, tok)
		if tok.Kind == lang.EOF || tok.Kind == lang.Err {
			break
		}
	}
	return toks
}

func kinds(toks []lang.Token) []lang.Kind {
	ks := make([]lang.Kind, len(toks))
	for i, t := range toks {
		ks[i] = t.Kind
	}
	return ks
}

func TestLexKeywordsAndAliases(t *testing.T) {
	toks := collect(t, "forward fd backward bk back right rt left lt")
	require.NotEmpty(t, toks)
	assert.Equal(t, []lang.Kind{
		lang.KwForward, lang.KwForward,
		lang.KwBackward, lang.KwBackward, lang.KwBackward,
		lang.KwRight, lang.KwRight,
		lang.KwLeft, lang.KwLeft,
		lang.EOF,
	}, kinds(toks))
}

func TestLexToEndCaseInsensitive(t *testing.T) {
	toks := collect(t, "TO sq END")
	assert.Equal(t, []lang.Kind{lang.KwTo, lang.Ident, lang.KwEnd, lang.EOF}, kinds(toks))
}

func TestLexNumberForms(t *testing.T) {
	toks := collect(t, "3 4.5 100")
	require.Len(t, toks, 4)
	assert.Equal(t, 3.0, toks[0].Num)
	assert.Equal(t, 4.5, toks[1].Num)
	assert.Equal(t, 100.0, toks[2].Num)
}

func TestLexVariable(t *testing.T) {
	toks := collect(t, ":side")
	require.NotEmpty(t, toks)
	assert.Equal(t, lang.Variable, toks[0].Kind)
	assert.Equal(t, ":side", toks[0].Text)
}

func TestLexProcedureNameFallback(t *testing.T) {
	toks := collect(t, "square 30")
	require.Len(t, toks, 3)
	assert.Equal(t, lang.Ident, toks[0].Kind)
	assert.Equal(t, "square", toks[0].Text)
}

func TestLexUnknownCharacterIsFatal(t *testing.T) {
	toks := collect(t, "forward @")
	last := toks[len(toks)-1]
	assert.Equal(t, lang.Err, last.Kind)
}

func TestLexColorKeywords(t *testing.T) {
	toks := collect(t, "red orange yellow green blue violet black")
	assert.Equal(t, []lang.Kind{
		lang.KwRed, lang.KwOrange, lang.KwYellow, lang.KwGreen,
		lang.KwBlue, lang.KwViolet, lang.KwBlack, lang.EOF,
	}, kinds(toks))
}

func TestLexWhitespaceIsNotATokenRun(t *testing.T) {
	toks := collect(t, "forward   30\n\tright 90")
	assert.Equal(t, []lang.Kind{
		lang.KwForward, lang.Number, lang.KwRight, lang.Number, lang.EOF,
	}, kinds(toks))
}

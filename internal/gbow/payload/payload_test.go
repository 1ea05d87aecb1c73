package payload

import (
	"errors"
	"strings"
	"testing"

	"github.com/danmuck/gbowinfo/internal/testutil/testlog"
	"github.com/stretchr/testify/require"
)

func TestLocateStripsPaddingAndTrailingByte(t *testing.T) {
	testlog.Start(t)
	text, err := Locate([]byte("\x00\x00<?xml version=\"1.0\"?><a/>\x00"))
	require.NoError(t, err)
	require.Equal(t, `<?xml version="1.0"?><a/>`, text)
}

func TestLocateDropsFinalByteWhateverItIs(t *testing.T) {
	testlog.Start(t)
	text, err := Locate([]byte(`<?xml version="1.0"?><a/>>`))
	require.NoError(t, err)
	require.Equal(t, `<?xml version="1.0"?><a/>`, text)

	// Without a filler byte the closing bracket is the one dropped.
	text, err = Locate([]byte(`<?xml version="1.0"?><a/>`))
	require.NoError(t, err)
	require.Equal(t, `<?xml version="1.0"?><a/`, text)
}

func TestLocateUsesFirstMarker(t *testing.T) {
	testlog.Start(t)
	tail := []byte("junk<?xml version=\"1.0\"?><a/><?xml version=\"1.0\"?><b/>\n")
	text, err := Locate(tail)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(text, `<?xml version="1.0"?><a/>`))
	require.True(t, strings.HasSuffix(text, "<b/>"))
}

func TestLocateMarkerNotFound(t *testing.T) {
	testlog.Start(t)
	for _, tail := range [][]byte{nil, {}, []byte("<?xm"), []byte("<root/>\x00")} {
		_, err := Locate(tail)
		require.ErrorIs(t, err, ErrMarkerNotFound, "tail %q", tail)
	}
}

func TestLocateMapsBytesToCodePoints(t *testing.T) {
	testlog.Start(t)
	tail := append([]byte(`<?xml version="1.0" encoding="ISO-8859-1"?><n>caf`), 0xe9, '<', '/', 'n', '>', 0)
	doc, err := Extract(tail)
	require.NoError(t, err)
	require.Equal(t, "café", doc.Root.InnerText())
	require.Equal(t, `version="1.0" encoding="ISO-8859-1"`, doc.Declaration)
}

func TestExtractMalformedDocument(t *testing.T) {
	testlog.Start(t)
	_, err := Extract([]byte(`<?xml version="1.0"?><a>`))
	require.ErrorIs(t, err, ErrMalformedDocument)
}

func TestParseRejectsMalformedMarkup(t *testing.T) {
	testlog.Start(t)
	cases := map[string]string{
		"unclosed":        `<?xml version="1.0"?><a><b></b>`,
		"mismatched":      `<?xml version="1.0"?><a><b></a></b>`,
		"stray end":       `<?xml version="1.0"?><a/></b>`,
		"two roots":       `<?xml version="1.0"?><a/><b/>`,
		"text outside":    `<?xml version="1.0"?>hello<a/>`,
		"no root":         `<?xml version="1.0"?><!-- only a comment -->`,
		"duplicate attr":  `<?xml version="1.0"?><a x="1" x="2"/>`,
		"bad entity":      `<?xml version="1.0"?><a>&nope;</a>`,
		"nul in content":  "<?xml version=\"1.0\"?><a>\x00</a>",
		"unquoted attr":   `<?xml version="1.0"?><a x=1/>`,
		"unsupported ver": `<?xml version="2.0"?><a/>`,
	}
	for name, text := range cases {
		_, err := Parse(text)
		if !errors.Is(err, ErrMalformedDocument) {
			t.Fatalf("%s: expected ErrMalformedDocument, got %v", name, err)
		}
	}
}

func TestParseMalformedCarriesParserMessage(t *testing.T) {
	testlog.Start(t)
	_, err := Parse(`<?xml version="1.0"?><a><b></a>`)
	require.ErrorIs(t, err, ErrMalformedDocument)
	require.Contains(t, err.Error(), "element <b> closed by </a>")
}

func TestParseBuildsTree(t *testing.T) {
	testlog.Start(t)
	doc, err := Parse(`<?xml version="1.0"?>
<!-- saved session -->
<session name="pad" rate="44100">
  <generators>
    <generator id="0" enable="1"/>
    <generator id="1" enable="0"/>
  </generators>
  <note>hello &amp; bye</note>
</session>`)
	require.NoError(t, err)
	require.Equal(t, `version="1.0"`, doc.Declaration)
	require.Len(t, doc.Prolog, 1)
	require.Equal(t, CommentNode, doc.Prolog[0].Kind)
	require.Equal(t, "session", doc.Root.Name)

	name, ok := doc.Root.Attr("name")
	require.True(t, ok)
	require.Equal(t, "pad", name)
	_, ok = doc.Root.Attr("missing")
	require.False(t, ok)

	gens := doc.Find("session", "generators", "generator")
	require.Len(t, gens, 2)
	enable, _ := gens[1].Attr("enable")
	require.Equal(t, "0", enable)

	notes := doc.Find("session", "note")
	require.Len(t, notes, 1)
	require.Equal(t, "hello & bye", notes[0].InnerText())

	require.Nil(t, doc.Find("other"))
	require.Len(t, doc.Root.Elements(), 2)
}

func TestParseKeepsNamespacePrefixes(t *testing.T) {
	testlog.Start(t)
	doc, err := Parse(`<?xml version="1.0"?><g:root xmlns:g="urn:gbow"><g:item g:k="v"/></g:root>`)
	require.NoError(t, err)
	require.Equal(t, "g:root", doc.Root.Name)
	v, ok := doc.Root.Elements()[0].Attr("g:k")
	require.True(t, ok)
	require.Equal(t, "v", v)
}

func TestPrettyRendering(t *testing.T) {
	testlog.Start(t)
	doc, err := Parse(`<?xml version="1.0"?><session name="x &quot;y&quot;"><!-- c --><buffer rate="44100">a &lt; b</buffer>  <empty/><?hint keep?></session>`)
	require.NoError(t, err)

	want := strings.Join([]string{
		`<?xml version="1.0" ?>`,
		`<session name="x &quot;y&quot;">`,
		"\t<!-- c -->",
		"\t" + `<buffer rate="44100">a &lt; b</buffer>`,
		"\t<empty/>",
		"\t<?hint keep?>",
		`</session>`,
		``,
	}, "\n")
	require.Equal(t, want, doc.Pretty("\t"))
}

func TestPrettyMixedContent(t *testing.T) {
	testlog.Start(t)
	doc, err := Parse(`<?xml version="1.0"?><p> lead <b>bold</b> tail </p>`)
	require.NoError(t, err)
	want := "<?xml version=\"1.0\" ?>\n<p>\n  lead\n  <b>bold</b>\n  tail\n</p>\n"
	require.Equal(t, want, doc.Pretty("  "))
}

func TestPrettyOutputStartsWithMarkerAndReparses(t *testing.T) {
	testlog.Start(t)
	tails := []string{
		"\x00\x00<?xml version=\"1.0\"?><a/>\x00",
		"<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<!DOCTYPE preset>\n<preset><param id=\"gain\" value=\"0.5\"/><text>x</text></preset>\n",
		"\xff\xfe<?xml version=\"1.0\"?><r a=\"&lt;1&gt;\"><!--x--><![CDATA[<raw>]]></r>?",
	}
	for _, tail := range tails {
		doc, err := Extract([]byte(tail))
		require.NoError(t, err, "tail %q", tail)

		out := doc.Pretty("\t")
		require.Equal(t, Marker, out[:len(Marker)])

		again, err := Parse(out)
		require.NoError(t, err, "rendered %q", out)
		require.Equal(t, doc.Root.Name, again.Root.Name)
		require.Equal(t, strings.TrimSpace(doc.Root.InnerText()), strings.TrimSpace(again.Root.InnerText()))
	}
}

func TestParseRejectsMisplacedDeclaration(t *testing.T) {
	testlog.Start(t)
	for _, text := range []string{
		`<?xml version="1.0"?><a><?xml version="1.0"?></a>`,
		`<?xml version="1.0"?><a/><?xml version="1.0"?>`,
		`<?xml version="1.0"?><!-- c --><?XML version="1.0"?><a/>`,
	} {
		_, err := Parse(text)
		require.ErrorIs(t, err, ErrMalformedDocument, "text %q", text)
		require.Contains(t, err.Error(), "declaration not at start", "text %q", text)
	}

	doc, err := Parse(`<?xml version="1.0"?><a><?xml-stylesheet href="s.xsl"?></a>`)
	require.NoError(t, err)
	require.Equal(t, ProcInstNode, doc.Root.Children[0].Kind)
	require.Equal(t, "xml-stylesheet", doc.Root.Children[0].Name)
}

package unitfile

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoundTrip(t *testing.T) {
	text := `[Unit]
Description=Log shipper
After=network-online.target
Wants=network-online.target

[Service]
Type=simple
Environment=SHIPPER_MODE=batch
Environment=SHIPPER_FLUSH=5s
ExecStart=/usr/local/bin/shipper --config /etc/shipper.conf

[Install]
WantedBy=multi-user.target
`
	doc, err := Parse("shipper.service", text)
	require.NoError(t, err)
	assert.Equal(t, "shipper.service", doc.Name)
	assert.Equal(t, text, doc.String())

	again, err := Parse("shipper.service", doc.String())
	require.NoError(t, err)
	assert.Equal(t, doc.String(), again.String())
}

func TestParseDropsCommentsAndBlankLines(t *testing.T) {
	text := "# managed by sysunit\n\n[Unit]\n; legacy comment\nDescription=With comments\n\n\n[Service]\nType=oneshot\n"
	doc, err := Parse("c.service", text)
	require.NoError(t, err)

	assert.Equal(t, "[Unit]\nDescription=With comments\n\n[Service]\nType=oneshot\n", doc.String())
}

func TestParseMergesDuplicateSections(t *testing.T) {
	text := "[Unit]\nDescription=First\n\n[Service]\nType=simple\n\n[Unit]\nAfter=network.target\n"
	doc, err := Parse("m.service", text)
	require.NoError(t, err)

	require.Len(t, doc.Sections(), 2)
	unit, ok := doc.Lookup("Unit")
	require.True(t, ok)
	assert.Equal(t, []Entry{
		{Key: "Description", Value: "First"},
		{Key: "After", Value: "network.target"},
	}, unit.Entries)
}

func TestParseNormalizesWhitespace(t *testing.T) {
	doc, err := Parse("w.service", "[Service]\n  Type = oneshot  \n\tExecStart =   /bin/true\n")
	require.NoError(t, err)

	s, ok := doc.Lookup("Service")
	require.True(t, ok)
	v, _ := s.Value("Type")
	assert.Equal(t, "oneshot", v)
	v, _ = s.Value("ExecStart")
	assert.Equal(t, "/bin/true", v)
}

func TestParseKeepsSpecialCharactersInValues(t *testing.T) {
	text := "[Service]\nEnvironment=LEVEL=debug;color=on\nExecStart=/bin/sh -c 'echo #not-a-comment'\nExecStartPost=\n"
	doc, err := Parse("s.service", text)
	require.NoError(t, err)

	s, ok := doc.Lookup("Service")
	require.True(t, ok)
	v, _ := s.Value("Environment")
	assert.Equal(t, "LEVEL=debug;color=on", v)
	v, _ = s.Value("ExecStart")
	assert.Equal(t, "/bin/sh -c 'echo #not-a-comment'", v)
	v, hasEmpty := s.Value("ExecStartPost")
	assert.True(t, hasEmpty)
	assert.Equal(t, "", v)

	assert.Equal(t, text, doc.String())
}

func TestParseMalformedLines(t *testing.T) {
	cases := []struct {
		name   string
		text   string
		line   int
		reason string
	}{
		{"directive before any section", "Description=No header\n[Unit]\n", 1, "directive before any section header"},
		{"missing separator", "[Unit]\nDescription=ok\njust words\n", 3, `missing "=" separator`},
		{"unterminated section header", "[Unit\nDescription=x\n", 1, "unterminated section header"},
		{"empty section name", "[]\nKey=v\n", 1, "empty section name"},
		{"empty directive key", "[Unit]\n=value\n", 2, "empty directive key"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse("bad.service", tc.text)
			require.Error(t, err)

			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr))
			assert.Equal(t, tc.line, parseErr.Line)
			assert.Equal(t, tc.reason, parseErr.Reason)
			assert.True(t, IsParseError(err))
		})
	}
}

func TestParseEmptyInput(t *testing.T) {
	doc, err := Parse("empty.service", "")
	require.NoError(t, err)
	assert.Empty(t, doc.Sections())
	assert.Equal(t, "", doc.String())
}

func TestParseCarriageReturns(t *testing.T) {
	doc, err := Parse("crlf.service", "[Unit]\r\nDescription=dos file\r\n")
	require.NoError(t, err)

	v, ok := doc.Section("Unit").Value("Description")
	require.True(t, ok)
	assert.Equal(t, "dos file", v)
}

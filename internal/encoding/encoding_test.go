package encoding_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/pedidos/internal/encoding"
)

// "Cliente;Pagamento\nJoão;Crédito\n" as Windows-1252: ã = 0xE3, é = 0xE9.
var latin1Sheet = []byte{
	'C', 'l', 'i', 'e', 'n', 't', 'e', ';', 'P', 'a', 'g', 'a', 'm', 'e', 'n', 't', 'o', '\n',
	'J', 'o', 0xE3, 'o', ';', 'C', 'r', 0xE9, 'd', 'i', 't', 'o', '\n',
}

func TestNewUTF8Reader(t *testing.T) {
	type testCase struct {
		name        string
		input       []byte
		want        string
		wantCharset encoding.Charset
	}

	tests := []testCase{
		{
			name:        "UTF-8 Passthrough",
			input:       []byte("Cliente;Marca\nJoão;Boticário\n"),
			want:        "Cliente;Marca\nJoão;Boticário\n",
			wantCharset: encoding.UTF8,
		},
		{
			name:        "UTF-8 BOM Stripped",
			input:       append([]byte{0xEF, 0xBB, 0xBF}, "Cliente,Valor\n"...),
			want:        "Cliente,Valor\n",
			wantCharset: encoding.UTF8BOM,
		},
		{
			name:  "Windows-1252",
			input: latin1Sheet,
			want:  "Cliente;Pagamento\nJoão;Crédito\n",
		},
		{
			name:        "UTF-16LE",
			input:       []byte{0xFF, 0xFE, 'O', 0, 'i', 0},
			want:        "Oi",
			wantCharset: encoding.UTF16LE,
		},
		{
			name:        "Empty",
			input:       nil,
			want:        "",
			wantCharset: encoding.UTF8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, charset, err := encoding.NewUTF8Reader(bytes.NewReader(tt.input))
			require.NoError(t, err)

			if tt.wantCharset != "" {
				assert.Equal(t, tt.wantCharset, charset)
			} else {
				assert.NotEqual(t, encoding.UTF8, charset)
			}

			got, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestDetect_RuneCutAtSampleBoundary(t *testing.T) {
	sample := []byte(strings.Repeat("a", encoding.SampleSize-1) + "é")[:encoding.SampleSize]

	assert.Equal(t, encoding.UTF8, encoding.Detect(sample))
}

func TestSniffDelimiter(t *testing.T) {
	type testCase struct {
		name  string
		input string
		want  rune
	}

	tests := []testCase{
		{name: "Semicolon", input: "Cliente;Pagamento;Produto;Marca;Valor\n", want: ';'},
		{name: "Comma", input: "Cliente,Pagamento,Produto,Marca,Valor\n", want: ','},
		{name: "Decimal Commas Inside Semicolon Rows", input: "Cliente;Valor\nAna;10,50\n", want: ';'},
		{name: "Quoted Commas Ignored", input: "\"Silva, Ana\";Valor\n", want: ';'},
		{name: "Leading Blank Lines", input: "\n\n  \nCliente;Valor\n", want: ';'},
		{name: "Single Column Defaults To Comma", input: "Cliente\nAna\n", want: ','},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, encoding.SniffDelimiter([]byte(tt.input)))
		})
	}
}

func TestNewCSVReader(t *testing.T) {
	r, delim, err := encoding.NewCSVReader(bytes.NewReader(latin1Sheet))
	require.NoError(t, err)
	assert.Equal(t, ';', delim)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Cliente;Pagamento\nJoão;Crédito\n", string(got))
}

package markup

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLeadingInt(t *testing.T) {
	t.Parallel()

	cases := map[string]int{
		"150":     150,
		" 300 ":   300,
		"150 LEI": 150,
		"-20":     -20,
		"+7":      7,
		"abc":     0,
		"":        0,
		"LEI 150": 0,
		"12.5":    12,
	}
	for in, want := range cases {
		require.Equal(t, want, ParseLeadingInt(in), "input %q", in)
	}
}

func TestItemsAndData(t *testing.T) {
	t.Parallel()

	doc, err := Parse(strings.NewReader(`
<div id="box">
  <div class="row" data-id="a" data-price="10" data-flag="true"></div>
  <div class="row" data-id="b" data-price="x"></div>
</div>`))
	require.NoError(t, err)

	sel, found := doc.Items("box", "row")
	require.True(t, found)
	require.Equal(t, 2, sel.Length())
	require.Equal(t, "a", Data(sel.First(), "id"))
	require.Equal(t, 10, DataInt(sel.First(), "price"))
	require.True(t, DataBool(sel.First(), "flag"))
	require.Equal(t, 0, DataInt(sel.Last(), "price"))
	require.False(t, DataBool(sel.Last(), "flag"))

	_, found = doc.Items("missing", "row")
	require.False(t, found)
}

func TestOpenMissingFileIsEmpty(t *testing.T) {
	t.Parallel()

	doc, err := Open(filepath.Join(t.TempDir(), "index.html"))
	require.NoError(t, err)
	require.True(t, doc.Absent())

	sel, found := doc.Items("readyProductsData", "product-data")
	require.False(t, found)
	require.Zero(t, sel.Length())
}
